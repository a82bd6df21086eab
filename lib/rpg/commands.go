// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpg

import (
	"fmt"
	"math"
	"slices"
)

// RollDice rolls a six-sided die.
func RollDice(state *State) DiceResult {
	state.mu.Lock()
	defer state.mu.Unlock()
	return DiceResult{Value: state.random.IntN(6) + 1}
}

// AddSpell defines a new spell with its mana cost.
func AddSpell(state *State, spell Spell, cost Mana) error {
	state.mu.Lock()
	defer state.mu.Unlock()

	if _, exists := state.spells[spell.Name]; exists {
		return fmt.Errorf("%w: %s", ErrSpellExists, spell)
	}
	state.spells[spell.Name] = cost
	return nil
}

// GetSpellCost reports what casting spell costs.
func GetSpellCost(state *State, spell Spell) (SpellCost, error) {
	state.mu.Lock()
	defer state.mu.Unlock()

	cost, ok := state.spells[spell.Name]
	if !ok {
		return SpellCost{}, fmt.Errorf("%w: %s", ErrUnknownSpell, spell)
	}
	return SpellCost{Spell: spell, Cost: cost}, nil
}

// AddWizard brings a new wizard into the world with an initial mana
// pool.
func AddWizard(state *State, wizard Wizard, mana Mana) error {
	state.mu.Lock()
	defer state.mu.Unlock()

	if _, exists := state.wizards[wizard.Name]; exists {
		return fmt.Errorf("%w: %s", ErrWizardExists, wizard)
	}
	state.wizards[wizard.Name] = mana
	return nil
}

// Learn teaches wizard a spell. Learning a spell twice is not an
// error.
func Learn(state *State, wizard Wizard, spell Spell) error {
	state.mu.Lock()
	defer state.mu.Unlock()

	if _, ok := state.wizards[wizard.Name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWizard, wizard)
	}
	if _, ok := state.spells[spell.Name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSpell, spell)
	}
	known := state.known[wizard.Name]
	if position, found := slices.BinarySearch(known, spell.Name); !found {
		state.known[wizard.Name] = slices.Insert(known, position, spell.Name)
	}
	return nil
}

// Cast spends the wizard's mana on a learned spell.
func Cast(state *State, wizard Wizard, spell Spell) error {
	state.mu.Lock()
	defer state.mu.Unlock()

	mana, ok := state.wizards[wizard.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWizard, wizard)
	}
	cost, ok := state.spells[spell.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSpell, spell)
	}
	if !state.knows(wizard.Name, spell.Name) {
		return fmt.Errorf("%w: %s does not know %s", ErrSpellNotKnown, wizard, spell)
	}
	if mana < cost {
		return fmt.Errorf("%w: %s has %d, %s costs %d", ErrNotEnoughMana, wizard, mana, spell, cost)
	}
	state.wizards[wizard.Name] = mana - cost
	return nil
}

// Channel adds mana to a wizard's pool. A pool never exceeds
// math.MaxUint32; channelling past it fails and leaves the pool
// unchanged.
func Channel(state *State, wizard Wizard, mana Mana) error {
	state.mu.Lock()
	defer state.mu.Unlock()

	current, ok := state.wizards[wizard.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWizard, wizard)
	}
	if mana > math.MaxUint32-current {
		return fmt.Errorf("%w: %s has %d, cannot channel %d more", ErrManaOverflow, wizard, current, mana)
	}
	state.wizards[wizard.Name] = current + mana
	return nil
}

// GetWizardMana reports a wizard's mana.
func GetWizardMana(state *State, wizard Wizard) (WizardMana, error) {
	state.mu.Lock()
	defer state.mu.Unlock()

	mana, ok := state.wizards[wizard.Name]
	if !ok {
		return WizardMana{}, fmt.Errorf("%w: %s", ErrUnknownWizard, wizard)
	}
	return WizardMana{Wizard: wizard, Mana: mana}, nil
}
