// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"encoding"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// Leaf is a terminal handler wrapping an ordinary function.
//
// The function's parameters receive, in order, the bound arguments
// (the dispatch context, then one value per enclosing [Binder]) and
// then one converted token per remaining parameter. A remaining
// parameter must be a string kind, or a type whose pointer implements
// [encoding.TextUnmarshaler].
//
// The function returns nothing, one value, or a value and an error.
// The result contributes to the union as follows: no result adds
// [Unit]; one result adds its declared type; (T, error) adds both T
// and error, and a non-nil error is delivered as the error member.
type Leaf struct {
	function     reflect.Value
	functionType reflect.Type
	name         string
	outcomes     Union
	pairedError  bool
}

// NewLeaf wraps fn, which must be a non-nil, non-variadic function.
func NewLeaf(fn any) (*Leaf, error) {
	function := reflect.ValueOf(fn)
	if function.Kind() != reflect.Func {
		return nil, fmt.Errorf("router: leaf must be a function, got %T", fn)
	}
	if function.IsNil() {
		return nil, fmt.Errorf("router: leaf function is nil")
	}
	functionType := function.Type()
	if functionType.IsVariadic() {
		return nil, fmt.Errorf("router: leaf %s is variadic", functionType)
	}

	leaf := &Leaf{
		function:     function,
		functionType: functionType,
		name:         functionName(function),
	}
	switch functionType.NumOut() {
	case 0:
		leaf.outcomes = UnionOf(unitType)
	case 1:
		leaf.outcomes = UnionOf(functionType.Out(0))
	case 2:
		if functionType.Out(1) != errorType {
			return nil, fmt.Errorf("router: leaf %s: second result must be error", functionType)
		}
		leaf.outcomes = UnionOf(functionType.Out(0), errorType)
		leaf.pairedError = true
	default:
		return nil, fmt.Errorf("router: leaf %s returns %d results", functionType, functionType.NumOut())
	}
	return leaf, nil
}

// Func is like [NewLeaf] but panics on error. Routing tables are
// built from code, so a bad leaf is a programming error.
func Func(fn any) *Leaf {
	leaf, err := NewLeaf(fn)
	if err != nil {
		panic(err.Error())
	}
	return leaf
}

// Named returns a copy of the leaf reporting name instead of the
// function's symbol name.
func (l *Leaf) Named(name string) *Leaf {
	renamed := *l
	renamed.name = name
	return &renamed
}

// Name identifies the leaf in Values and route listings.
func (l *Leaf) Name() string { return l.name }

// Arity returns the total number of parameters.
func (l *Leaf) Arity() int { return l.functionType.NumIn() }

// Required returns how many more arguments the leaf needs once bound
// arguments have been supplied. Never negative.
func (l *Leaf) Required(bound int) int {
	return max(l.Arity()-bound, 0)
}

// Outcomes returns the union of the leaf's result types.
func (l *Leaf) Outcomes() Union { return l.outcomes }

func (l *Leaf) action() Action { return Action{handler: l} }

func (l *Leaf) route(input Cursor, args []reflect.Value) Result {
	if len(args) > l.Arity() {
		panic(fmt.Sprintf("router: leaf %s takes %d arguments, route binds %d", l.name, l.Arity(), len(args)))
	}

	for l.Required(len(args)) > 0 {
		token, ok := input.Peek()
		if !ok {
			return Fail(notEnoughInput(input))
		}
		value, err := convertToken(l.functionType.In(len(args)), token)
		if err != nil {
			return Fail(conversionFailed(input, token, err))
		}
		args = append(args[:len(args):len(args)], value)
		input = input.Rest()
	}

	if token, ok := input.Peek(); ok {
		return Fail(tooManyArguments(input, token))
	}

	for i, arg := range args {
		if parameter := l.functionType.In(i); !arg.Type().AssignableTo(parameter) {
			panic(fmt.Sprintf("router: leaf %s parameter %d is %s, route binds %s", l.name, i, parameter, arg.Type()))
		}
	}

	results := l.function.Call(args)
	return Ok(l.wrap(results))
}

func (l *Leaf) wrap(results []reflect.Value) Value {
	switch {
	case len(results) == 0:
		return Value{member: 0, typ: unitType, payload: Unit{}, leaf: l.name}
	case l.pairedError && !results[1].IsNil():
		return Value{member: l.outcomes.IndexOf(errorType), typ: errorType, payload: results[1].Interface(), leaf: l.name}
	default:
		return Value{member: 0, typ: l.functionType.Out(0), payload: results[0].Interface(), leaf: l.name}
	}
}

func (l *Leaf) check(bound []reflect.Type, path []string) error {
	if len(bound) > l.Arity() {
		return fmt.Errorf("route %q: leaf %s takes %d arguments but %d are bound",
			strings.Join(path, " "), l.name, l.Arity(), len(bound))
	}
	for i, argument := range bound {
		if parameter := l.functionType.In(i); !argument.AssignableTo(parameter) {
			return fmt.Errorf("route %q: leaf %s parameter %d is %s, cannot accept %s",
				strings.Join(path, " "), l.name, i, parameter, argument)
		}
	}
	for i := len(bound); i < l.Arity(); i++ {
		if parameter := l.functionType.In(i); !tokenConvertible(parameter) {
			return fmt.Errorf("route %q: leaf %s parameter %d (%s) cannot be built from a token",
				strings.Join(path, " "), l.name, i, parameter)
		}
	}
	return nil
}

func (l *Leaf) walk(visitor *walker, path []string, bound int) {
	pattern := append([]string(nil), path...)
	for i := bound; i < l.Arity(); i++ {
		pattern = append(pattern, placeholder(l.functionType.In(i)))
	}
	visitor.routes = append(visitor.routes, Route{
		Pattern:  pattern,
		Leaf:     l.name,
		Arity:    l.Arity(),
		Outcomes: l.outcomes,
	})
}

// tokenConvertible reports whether a leaf parameter of type target can
// be filled directly from a token.
func tokenConvertible(target reflect.Type) bool {
	return reflect.PointerTo(target).Implements(textUnmarshalerType) || target.Kind() == reflect.String
}

// convertToken builds a value of type target from token. Text
// unmarshalers take precedence over the string kind so that named
// string types can validate their input.
func convertToken(target reflect.Type, token string) (reflect.Value, error) {
	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		pointer := reflect.New(target)
		if err := pointer.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token)); err != nil {
			return reflect.Value{}, err
		}
		return pointer.Elem(), nil
	}
	if target.Kind() == reflect.String {
		return reflect.ValueOf(token).Convert(target), nil
	}
	panic(fmt.Sprintf("router: %s cannot be built from a token", target))
}

// functionName returns the package-qualified symbol of a function,
// trimmed to its last import path element ("rpg.AddWizard").
func functionName(function reflect.Value) string {
	info := runtime.FuncForPC(function.Pointer())
	if info == nil {
		return function.Type().String()
	}
	name := info.Name()
	if slash := strings.LastIndexByte(name, '/'); slash >= 0 {
		name = name[slash+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

// placeholder renders a bound type as a route segment ("<Wizard>").
func placeholder(typ reflect.Type) string {
	name := typ.Name()
	if name == "" {
		name = typ.String()
	}
	return "<" + name + ">"
}
