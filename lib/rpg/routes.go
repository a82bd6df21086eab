// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpg

import (
	"fmt"

	"github.com/bureau-foundation/tokenroute/lib/router"
)

// Routes builds the game's command table.
func Routes() *router.Selector {
	return router.Select(
		router.On("roll_dice", RollDice),
		router.On("spells", router.Select(
			router.On("add", AddSpell),
			router.Arg[Spell](
				router.On("cost", GetSpellCost),
			),
		)),
		router.On("wizards", router.Select(
			router.On("add", AddWizard),
			router.Arg[Wizard](
				router.On("cast", Cast),
				router.On("learn", Learn),
				router.On("channel", Channel),
				router.On("mana", GetWizardMana),
			),
		)),
	)
}

// NewRouter validates [Routes] against *State.
func NewRouter() (*router.Router[*State], error) {
	return router.New[*State](Routes())
}

// Describe renders a command outcome as a line of text.
func Describe(value router.Value) string {
	switch payload := value.Payload().(type) {
	case DiceResult:
		return fmt.Sprintf("dice show %d", payload.Value)
	case SpellCost:
		return fmt.Sprintf("spell %s costs %d mana", payload.Spell, payload.Cost)
	case WizardMana:
		return fmt.Sprintf("wizard %s has %d mana", payload.Wizard, payload.Mana)
	case error:
		return "error: " + payload.Error()
	case nil:
		return "ok"
	default:
		return fmt.Sprintf("%v", payload)
	}
}
