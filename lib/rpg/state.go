// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpg

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
)

// State is the game world. It is the dispatch context for every
// command and is safe for concurrent use.
type State struct {
	mu      sync.Mutex
	random  *rand.Rand
	spells  map[string]Mana
	wizards map[string]Mana
	known   map[string][]string
}

// NewState returns an empty world whose dice are seeded with seed.
func NewState(seed uint64) *State {
	return &State{
		random:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		spells:  make(map[string]Mana),
		wizards: make(map[string]Mana),
		known:   make(map[string][]string),
	}
}

// Snapshot is the persisted form of a State. Dice state is not
// persisted; a restored world is reseeded.
type Snapshot struct {
	Spells  map[string]uint32   `cbor:"spells"`
	Wizards map[string]uint32   `cbor:"wizards"`
	Known   map[string][]string `cbor:"known"`
}

// Snapshot copies the world into its persisted form.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Spells:  make(map[string]uint32, len(s.spells)),
		Wizards: make(map[string]uint32, len(s.wizards)),
		Known:   make(map[string][]string, len(s.known)),
	}
	for name, cost := range s.spells {
		snapshot.Spells[name] = uint32(cost)
	}
	for name, mana := range s.wizards {
		snapshot.Wizards[name] = uint32(mana)
	}
	for name, spells := range s.known {
		snapshot.Known[name] = slices.Clone(spells)
	}
	return snapshot
}

// Restore replaces the world with snapshot. Known spells that refer to
// missing wizards or spells are rejected.
func (s *State) Restore(snapshot Snapshot) error {
	for wizard, spells := range snapshot.Known {
		if _, ok := snapshot.Wizards[wizard]; !ok {
			return fmt.Errorf("rpg: snapshot: known spells for %w %q", ErrUnknownWizard, wizard)
		}
		for _, spell := range spells {
			if _, ok := snapshot.Spells[spell]; !ok {
				return fmt.Errorf("rpg: snapshot: wizard %q knows %w %q", wizard, ErrUnknownSpell, spell)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spells = make(map[string]Mana, len(snapshot.Spells))
	for name, cost := range snapshot.Spells {
		s.spells[name] = Mana(cost)
	}
	s.wizards = make(map[string]Mana, len(snapshot.Wizards))
	for name, mana := range snapshot.Wizards {
		s.wizards[name] = Mana(mana)
	}
	s.known = make(map[string][]string, len(snapshot.Known))
	for name, spells := range snapshot.Known {
		known := slices.Clone(spells)
		slices.Sort(known)
		s.known[name] = slices.Compact(known)
	}
	return nil
}

func (s *State) knows(wizard, spell string) bool {
	_, found := slices.BinarySearch(s.known[wizard], spell)
	return found
}
