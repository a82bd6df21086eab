// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"encoding"
	"reflect"
)

// Binder consumes one token, converts it to a typed value and
// continues into a nested [Selector] with that value appended to the
// bound arguments.
type Binder struct {
	typ      reflect.Type
	convert  func(token string) (reflect.Value, error)
	selector *Selector
}

// Argument returns a Binder that converts tokens with parse. Panics
// if parse is nil or branches do not form a valid Selector.
func Argument[T any](parse func(token string) (T, error), branches ...Branch) *Binder {
	if parse == nil {
		panic("router.Argument: nil parse function")
	}
	return &Binder{
		typ: reflect.TypeFor[T](),
		convert: func(token string) (reflect.Value, error) {
			value, err := parse(token)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&value).Elem(), nil
		},
		selector: Select(branches...),
	}
}

// Arg returns a Binder for a type whose pointer implements
// [encoding.TextUnmarshaler]; the token is passed to UnmarshalText.
//
//	router.Arg[rpg.Wizard](router.On("learn", rpg.Learn))
func Arg[T any, P interface {
	*T
	encoding.TextUnmarshaler
}](branches ...Branch) *Binder {
	return Argument(func(token string) (T, error) {
		var value T
		err := P(&value).UnmarshalText([]byte(token))
		return value, err
	}, branches...)
}

// Type returns the type of the bound value.
func (b *Binder) Type() reflect.Type { return b.typ }

// Selector returns the nested Selector.
func (b *Binder) Selector() *Selector { return b.selector }

// Outcomes returns the nested Selector's union.
func (b *Binder) Outcomes() Union { return b.selector.union }

func (b *Binder) action() Action { return Action{handler: b} }

func (b *Binder) route(input Cursor, args []reflect.Value) Result {
	token, ok := input.Peek()
	if !ok {
		return Fail(notEnoughInput(input))
	}
	value, err := b.convert(token)
	if err != nil {
		return Fail(conversionFailed(input, token, err))
	}
	return b.selector.route(input.Rest(), append(args[:len(args):len(args)], value))
}

func (b *Binder) check(bound []reflect.Type, path []string) error {
	return b.selector.check(
		append(bound[:len(bound):len(bound)], b.typ),
		append(path[:len(path):len(path)], placeholder(b.typ)),
	)
}

func (b *Binder) walk(visitor *walker, path []string, bound int) {
	b.selector.walk(visitor, append(path[:len(path):len(path)], placeholder(b.typ)), bound+1)
}
