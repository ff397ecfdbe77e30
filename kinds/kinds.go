package kinds

import (
	"fmt"
	"io"
)

// Kind is the static type attached to a declaration or expression.
type Kind interface {
	Dump(w io.Writer)
}

/* -------------------------------------------------------------------------- */

type AnyKind struct{}

func (ak *AnyKind) Dump(w io.Writer) {
	fmt.Fprint(w, "any")
}

type UndefinedKind struct{}

func (uk *UndefinedKind) Dump(w io.Writer) {
	fmt.Fprint(w, "undefined")
}

type NullKind struct{}

func (nk *NullKind) Dump(w io.Writer) {
	fmt.Fprint(w, "null")
}

type BoolKind struct{}

func (bk *BoolKind) Dump(w io.Writer) {
	fmt.Fprint(w, "boolean")
}

// NumberKind is the integer half of the numeric tower.
type NumberKind struct{}

func (nk *NumberKind) Dump(w io.Writer) {
	fmt.Fprint(w, "number")
}

type FloatKind struct{}

func (fk *FloatKind) Dump(w io.Writer) {
	fmt.Fprint(w, "float")
}

type StringKind struct{}

func (sk *StringKind) Dump(w io.Writer) {
	fmt.Fprint(w, "string")
}

/* -------------------------------------------------------------------------- */

type ArrayKind struct {
	ElemKind Kind
}

func (ak *ArrayKind) Dump(w io.Writer) {
	ak.ElemKind.Dump(w)
	fmt.Fprint(w, "[]")
}

/* -------------------------------------------------------------------------- */

// ObjectField keeps fields in insertion order; structural typing walks the
// slice rather than a map.
type ObjectField struct {
	Name string
	Kind Kind
}

type ObjectKind struct {
	Fields []ObjectField
}

func (ok *ObjectKind) Dump(w io.Writer) {
	fmt.Fprint(w, "{ ")

	for i, field := range ok.Fields {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}

		fmt.Fprintf(w, "%s: ", field.Name)
		field.Kind.Dump(w)
	}

	fmt.Fprint(w, " }")
}

func (ok *ObjectKind) FieldKind(name string) (Kind, bool) {
	for _, field := range ok.Fields {
		if field.Name == name {
			return field.Kind, true
		}
	}

	return nil, false
}

/* -------------------------------------------------------------------------- */

// ParamKind describes one function parameter. At most one rest parameter is
// allowed and it must be last; optional parameters may only follow required
// ones.
type ParamKind struct {
	Kind     Kind
	Optional bool
	Rest     bool
}

type FuncKind struct {
	Params     []ParamKind
	ReturnKind Kind
}

func (fk *FuncKind) Dump(w io.Writer) {
	fmt.Fprint(w, "(")

	for i, param := range fk.Params {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}

		if param.Rest {
			fmt.Fprint(w, "...")
		}

		param.Kind.Dump(w)

		if param.Optional {
			fmt.Fprint(w, "?")
		}
	}

	fmt.Fprint(w, ") -> ")
	fk.ReturnKind.Dump(w)
}

// RequiredCount returns how many leading parameters a call must supply.
func (fk *FuncKind) RequiredCount() int {
	n := 0
	for _, param := range fk.Params {
		if param.Optional || param.Rest {
			break
		}
		n++
	}

	return n
}

func (fk *FuncKind) RestParam() *ParamKind {
	if len(fk.Params) > 0 && fk.Params[len(fk.Params)-1].Rest {
		return &fk.Params[len(fk.Params)-1]
	}

	return nil
}

/* -------------------------------------------------------------------------- */

// ClassKind is nominal; the name lives on the owning definition.
type ClassKind struct{}

func (ck *ClassKind) Dump(w io.Writer) {
	fmt.Fprint(w, "class")
}
