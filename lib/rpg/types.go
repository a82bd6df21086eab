// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpg

import (
	"errors"
	"fmt"
	"strconv"
)

// Spell names a spell. It is built from a command token.
type Spell struct {
	Name string
}

// UnmarshalText accepts any non-empty name.
func (s *Spell) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return errors.New("spell name is empty")
	}
	s.Name = string(text)
	return nil
}

// MarshalText returns the name.
func (s Spell) MarshalText() ([]byte, error) { return []byte(s.Name), nil }

func (s Spell) String() string { return s.Name }

// Wizard names a wizard. It is built from a command token.
type Wizard struct {
	Name string
}

// UnmarshalText accepts any non-empty name.
func (w *Wizard) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return errors.New("wizard name is empty")
	}
	w.Name = string(text)
	return nil
}

// MarshalText returns the name.
func (w Wizard) MarshalText() ([]byte, error) { return []byte(w.Name), nil }

func (w Wizard) String() string { return w.Name }

// Mana is an amount of magical energy.
type Mana uint32

// UnmarshalText parses a non-negative decimal integer.
func (m *Mana) UnmarshalText(text []byte) error {
	value, err := strconv.ParseUint(string(text), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid mana %q: %w", text, errors.Unwrap(err))
	}
	*m = Mana(value)
	return nil
}

// MarshalText formats the amount in decimal.
func (m Mana) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(m), 10), nil
}

// DiceResult is the face shown by a six-sided die.
type DiceResult struct {
	Value int
}

// SpellCost reports the mana a spell consumes.
type SpellCost struct {
	Spell Spell
	Cost  Mana
}

// WizardMana reports a wizard's current mana.
type WizardMana struct {
	Wizard Wizard
	Mana   Mana
}

// Game rule violations.
var (
	ErrUnknownWizard = errors.New("unknown wizard")
	ErrUnknownSpell  = errors.New("unknown spell")
	ErrWizardExists  = errors.New("wizard already exists")
	ErrSpellExists   = errors.New("spell already exists")
	ErrSpellNotKnown = errors.New("spell not learned")
	ErrNotEnoughMana = errors.New("not enough mana")
	ErrManaOverflow  = errors.New("mana pool overflow")
)
