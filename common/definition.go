package common

import (
	"slices"

	"minic/kinds"
	"minic/report"
)

// Definition is one declared name: a variable, parameter, function, or
// class. Writable is true only for `let` bindings and non-this parameters.
// External marks `declare function` forms, which must have no body.
type Definition struct {
	Span *report.TextSpan

	Name string
	Kind kinds.Kind

	Writable bool
	External bool
	Exported bool

	// Decorators holds the leading @names in source order, deduplicated.
	Decorators []string
}

// DecoratorBuiltin steers the code generator toward a direct runtime call.
const DecoratorBuiltin = "builtin"

func (d *Definition) AddDecorator(name string) {
	if !slices.Contains(d.Decorators, name) {
		d.Decorators = append(d.Decorators, name)
	}
}

func (d *Definition) HasDecorator(name string) bool {
	return slices.Contains(d.Decorators, name)
}

func (d *Definition) FuncKind() *kinds.FuncKind {
	fk, _ := d.Kind.(*kinds.FuncKind)
	return fk
}
