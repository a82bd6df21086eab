// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"reflect"
	"strings"
)

// Unit is the result member contributed by a leaf function that
// returns nothing.
type Unit struct{}

var (
	unitType  = reflect.TypeFor[Unit]()
	errorType = reflect.TypeFor[error]()
)

// Union is an ordered set of result types. Members are distinct by
// type identity and keep the order in which they were first seen.
// A Union is immutable once built.
type Union struct {
	members []reflect.Type
	index   map[reflect.Type]int
}

// UnionOf builds a Union from types, dropping duplicates.
func UnionOf(types ...reflect.Type) Union {
	union := Union{index: make(map[reflect.Type]int, len(types))}
	for _, member := range types {
		if _, seen := union.index[member]; seen {
			continue
		}
		union.index[member] = len(union.members)
		union.members = append(union.members, member)
	}
	return union
}

// Merge flattens unions into one: members of each are spliced into the
// result in order, and a type already present is not repeated.
func Merge(unions ...Union) Union {
	var members []reflect.Type
	for _, union := range unions {
		members = append(members, union.members...)
	}
	return UnionOf(members...)
}

// Members returns a copy of the member types in order.
func (u Union) Members() []reflect.Type {
	members := make([]reflect.Type, len(u.members))
	copy(members, u.members)
	return members
}

// Len returns the number of members.
func (u Union) Len() int { return len(u.members) }

// Contains reports whether member belongs to the union.
func (u Union) Contains(member reflect.Type) bool {
	_, ok := u.index[member]
	return ok
}

// IndexOf returns the position of member, or -1.
func (u Union) IndexOf(member reflect.Type) int {
	if position, ok := u.index[member]; ok {
		return position
	}
	return -1
}

// String renders the union as "A | B | C".
func (u Union) String() string {
	names := make([]string, len(u.members))
	for i, member := range u.members {
		names[i] = member.String()
	}
	return strings.Join(names, " | ")
}
