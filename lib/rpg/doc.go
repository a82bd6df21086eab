// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpg is a small wizards-and-spells game driven by
// whitespace-separated commands through [router].
//
// Commands:
//
//	roll_dice
//	spells add <spell> <mana>
//	spells <spell> cost
//	wizards add <wizard> <mana>
//	wizards <wizard> cast <spell>
//	wizards <wizard> learn <spell>
//	wizards <wizard> channel <mana>
//	wizards <wizard> mana
//
// Game rule violations (unknown wizard, spell not learned, too little
// mana) are ordinary outcomes of type error, distinct from routing
// failures such as an unknown command or a malformed number.
package rpg
