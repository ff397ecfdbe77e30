package common

import (
	"minic/kinds"
	"minic/report"
)

type AstNode interface {
	GetSpan() *report.TextSpan
}

type AstBase struct {
	Span *report.TextSpan
}

func (ab *AstBase) GetSpan() *report.TextSpan {
	return ab.Span
}

/* -------------------------------------------------------------------------- */

// AstExpr carries the kind the semantic pass elaborates onto it. Until the
// pass runs, GetKind returns nil.
type AstExpr interface {
	AstNode

	GetKind() kinds.Kind
}

type AstExprBase struct {
	Span *report.TextSpan
	Kind kinds.Kind
}

func (ae *AstExprBase) GetSpan() *report.TextSpan {
	return ae.Span
}

func (ae *AstExprBase) GetKind() kinds.Kind {
	return ae.Kind
}

/* -------------------------------------------------------------------------- */

// VarIdent is a left-hand-side path: a name, a property access on a base
// path, or an index into a base path.
type VarIdent interface {
	AstNode

	// Root returns the name node the path hangs off of.
	Root() *IdentName
}

type IdentName struct {
	AstBase

	Name string

	// Def is the resolved declaration; non-owning, filled by the walker.
	Def *Definition
}

func (in *IdentName) Root() *IdentName {
	return in
}

type IdentProperty struct {
	AstBase

	Base VarIdent
	Name string
}

func (ip *IdentProperty) Root() *IdentName {
	return ip.Base.Root()
}

type IdentIndex struct {
	AstBase

	Base  VarIdent
	Index AstExpr
}

func (ii *IdentIndex) Root() *IdentName {
	return ii.Base.Root()
}
