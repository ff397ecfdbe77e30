package common

type AstEmptyStmt struct {
	AstBase
}

type AstExprStmt struct {
	AstBase

	Expr AstExpr
}

// AstVarDecl is a `let` or `const` definition statement. The writability of
// the binding lives on Def.
type AstVarDecl struct {
	AstBase

	Def         *Definition
	Initializer AstExpr
}

type AstReturn struct {
	AstBase

	Value AstExpr
}

/* -------------------------------------------------------------------------- */

// AstFuncDef covers `function`, `declare function`, and class methods. For
// methods, Params begins with the synthesized non-writable `this: any` and
// IsMethod is set.
type AstFuncDef struct {
	AstBase

	Def      *Definition
	Params   []*Definition
	Body     []AstNode
	IsMethod bool
}

type AstClassDef struct {
	AstBase

	Def     *Definition
	Methods []*AstFuncDef
}

/* -------------------------------------------------------------------------- */

type AstImport struct {
	AstBase

	Name string
	From string
}
