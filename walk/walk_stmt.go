package walk

import (
	"minic/common"
	"minic/kinds"
	"minic/report"
)

func (w *Walker) walkStmt(stmt common.AstNode) {
	switch v := stmt.(type) {
	case *common.AstEmptyStmt:
	case *common.AstImport:
		// Single-file compilation: the import introduces no binding.
	case *common.AstExprStmt:
		w.walkExpr(v.Expr)
	case *common.AstVarDecl:
		w.walkVarDecl(v)
	case *common.AstReturn:
		w.walkReturn(v)
	case *common.AstFuncDef:
		w.walkFuncDef(v)
	case *common.AstClassDef:
		w.walkClassDef(v)
	}
}

/* -------------------------------------------------------------------------- */

func (w *Walker) walkVarDecl(vd *common.AstVarDecl) {
	if vd.Initializer != nil {
		w.walkExpr(vd.Initializer)
	}

	if vd.Def.Kind == nil {
		if vd.Initializer == nil {
			w.error(report.CAT_RESOLVE, vd.Def.Span, "type of variable '%s' cannot be inferred", vd.Def.Name)
		}

		vd.Def.Kind = vd.Initializer.GetKind()
	} else if vd.Initializer != nil {
		if !kinds.Compatible(vd.Def.Kind, vd.Initializer.GetKind()) {
			w.kindError(
				vd.Initializer.GetSpan(),
				"cannot initialize variable of type %s with a value of type %s",
				vd.Def.Kind, vd.Initializer.GetKind(),
			)
		}
	}

	if !w.atTopLevel() {
		w.declareLocal(vd.Def)
	}
}

func (w *Walker) walkReturn(ret *common.AstReturn) {
	if w.enclosingFunc == nil {
		w.error(report.CAT_RESOLVE, ret.Span, "cannot use 'return' outside of a function")
	}

	actual := kinds.GlobUndefinedKind
	if ret.Value != nil {
		w.walkExpr(ret.Value)
		actual = ret.Value.GetKind()
	}

	expected := w.enclosingFunc.Def.FuncKind().ReturnKind
	if !kinds.Compatible(expected, actual) {
		w.kindError(ret.Span, "cannot return %s from a function returning %s", actual, expected)
	}
}

/* -------------------------------------------------------------------------- */

func (w *Walker) walkFuncDef(fd *common.AstFuncDef) {
	if !w.atTopLevel() && !fd.IsMethod {
		w.error(report.CAT_RESOLVE, fd.Def.Span, "nested functions are not supported")
	}

	if fd.Def.HasDecorator(common.DecoratorBuiltin) && !fd.Def.External {
		w.error(report.CAT_RESOLVE, fd.Def.Span, "'@builtin' is only valid on declare function forms")
	}

	if fd.Def.External {
		return
	}

	outer := w.enclosingFunc
	w.enclosingFunc = fd

	w.pushScope()

	for _, param := range fd.Params {
		w.declareLocal(param)
	}

	for _, stmt := range fd.Body {
		w.walkStmt(stmt)
	}

	w.popScope()
	w.enclosingFunc = outer
}

func (w *Walker) walkClassDef(cd *common.AstClassDef) {
	if !w.atTopLevel() {
		w.error(report.CAT_RESOLVE, cd.Def.Span, "classes may only be declared at the top level")
	}

	seen := make(map[string]bool)
	for _, method := range cd.Methods {
		if seen[method.Def.Name] {
			w.error(report.CAT_RESOLVE, method.Def.Span, "multiple methods with name '%s' in class '%s'", method.Def.Name, cd.Def.Name)
		}
		seen[method.Def.Name] = true

		w.walkFuncDef(method)
	}
}
