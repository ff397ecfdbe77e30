package walk

import (
	"minic/common"
	"minic/kinds"
	"minic/report"
	"minic/util"
)

// kindError reports a type diagnostic whose arguments may be kinds; kinds
// are rendered through their Dump form.
func (w *Walker) kindError(span *report.TextSpan, format string, a ...any) {
	rendered := make([]any, len(a))
	for i, arg := range a {
		if kind, ok := arg.(kinds.Kind); ok {
			rendered[i] = util.DumpString(kind)
		} else {
			rendered[i] = arg
		}
	}

	w.error(report.CAT_TYPE, span, format, rendered...)
}

/* -------------------------------------------------------------------------- */

func (w *Walker) walkExpr(expr common.AstExpr) {
	switch v := expr.(type) {
	case *common.AstIntLit:
		v.Kind = kinds.GlobNumberKind
	case *common.AstFloatLit:
		v.Kind = kinds.GlobFloatKind
	case *common.AstStrLit:
		v.Kind = kinds.GlobStringKind
	case *common.AstBoolLit:
		v.Kind = kinds.GlobBoolKind
	case *common.AstNullLit:
		v.Kind = kinds.GlobNullKind
	case *common.AstUndefinedLit:
		v.Kind = kinds.GlobUndefinedKind
	case *common.AstVarExpr:
		v.Kind = w.walkIdent(v.Ident)
	case *common.AstAssign:
		w.walkAssign(v)
	case *common.AstTypeOf:
		w.walkExpr(v.Operand)
		v.Kind = kinds.GlobStringKind
	case *common.AstUnaryOp:
		w.walkExpr(v.Operand)
		v.Kind = w.checkUnaryOp(v.OpKind, v.Operand)
	case *common.AstBinaryOp:
		w.walkExpr(v.Lhs)
		w.walkExpr(v.Rhs)
		v.Kind = w.checkBinaryOp(v.OpKind, v.Lhs, v.Rhs, v.Span)
	case *common.AstCall:
		w.walkCall(v)
	case *common.AstNew:
		w.walkNew(v)
	case *common.AstArrayLit:
		for _, item := range v.Items {
			w.walkExpr(item)
		}

		v.Kind = &kinds.ArrayKind{ElemKind: kinds.GlobAnyKind}
	case *common.AstObjectLit:
		fields := make([]kinds.ObjectField, len(v.Fields))
		for i, field := range v.Fields {
			w.walkExpr(field.Value)
			fields[i] = kinds.ObjectField{Name: field.Name, Kind: field.Value.GetKind()}
		}

		v.Kind = &kinds.ObjectKind{Fields: fields}
	}
}

/* -------------------------------------------------------------------------- */

// walkIdent resolves an identifier path and returns the kind of the value it
// denotes. Property access requires an object (or any) base; indexing
// requires an array (or any) base.
func (w *Walker) walkIdent(ident common.VarIdent) kinds.Kind {
	switch v := ident.(type) {
	case *common.IdentName:
		v.Def = w.lookup(v.Name, v.Span)

		if v.Def.Kind == nil {
			w.error(report.CAT_RESOLVE, v.Span, "cannot use '%s' before its type is known", v.Name)
		}

		return v.Def.Kind
	case *common.IdentProperty:
		baseKind := w.walkIdent(v.Base)

		switch bk := baseKind.(type) {
		case *kinds.AnyKind:
			return kinds.GlobAnyKind
		case *kinds.ObjectKind:
			if fieldKind, ok := bk.FieldKind(v.Name); ok {
				return fieldKind
			}

			w.kindError(v.Span, "object has no property '%s'", v.Name)
		default:
			w.kindError(v.Span, "cannot access property '%s' of %s", v.Name, baseKind)
		}
	case *common.IdentIndex:
		baseKind := w.walkIdent(v.Base)

		w.walkExpr(v.Index)
		if !kinds.IsNumeric(v.Index.GetKind()) {
			w.kindError(v.Index.GetSpan(), "array index must be a number, got %s", v.Index.GetKind())
		}

		switch bk := baseKind.(type) {
		case *kinds.AnyKind:
			return kinds.GlobAnyKind
		case *kinds.ArrayKind:
			return bk.ElemKind
		default:
			w.kindError(v.Span, "cannot index a value of type %s", baseKind)
		}
	}

	return nil
}

func (w *Walker) walkAssign(asn *common.AstAssign) {
	lhsKind := w.walkIdent(asn.Ident)

	// Rebinding a name requires a writable definition; mutating a property
	// or element of a const binding is allowed.
	if name, ok := asn.Ident.(*common.IdentName); ok && !name.Def.Writable {
		w.error(report.CAT_RESOLVE, asn.Span, "cannot assign to read-only binding '%s'", name.Name)
	}

	w.walkExpr(asn.Value)

	if !kinds.Compatible(lhsKind, asn.Value.GetKind()) {
		w.kindError(
			asn.Value.GetSpan(),
			"cannot assign a value of type %s to a target of type %s",
			asn.Value.GetKind(), lhsKind,
		)
	}

	asn.Kind = asn.Value.GetKind()
}

/* -------------------------------------------------------------------------- */

func (w *Walker) walkCall(call *common.AstCall) {
	for _, arg := range call.Args {
		w.walkExpr(arg)
	}

	fk := w.resolveCallTarget(call)

	w.checkCallArgs(call, fk)

	call.Kind = fk.ReturnKind
}

// resolveCallTarget binds the call to a statically known function: a plain
// name of Function kind, or ClassName.method. The runtime has no function
// values, so anything else cannot be lowered and is rejected here.
func (w *Walker) resolveCallTarget(call *common.AstCall) *kinds.FuncKind {
	switch v := call.Ident.(type) {
	case *common.IdentName:
		v.Def = w.lookup(v.Name, v.Span)

		if fk := v.Def.FuncKind(); fk != nil {
			call.Callee = v.Def
			return fk
		}

		w.kindError(v.Span, "'%s' is not a function", v.Name)
	case *common.IdentProperty:
		if base, ok := v.Base.(*common.IdentName); ok {
			base.Def = w.lookup(base.Name, base.Span)

			if _, isClass := base.Def.Kind.(*kinds.ClassKind); isClass {
				classDef := w.classes[base.Def.Name]

				for _, method := range classDef.Methods {
					if method.Def.Name == v.Name {
						call.Callee = method.Def
						call.MethodOwner = classDef.Def
						return method.Def.FuncKind()
					}
				}

				w.kindError(v.Span, "class '%s' has no method '%s'", base.Def.Name, v.Name)
			}
		}

		w.kindError(v.Span, "call target is not a statically known function")
	default:
		w.kindError(call.Ident.GetSpan(), "call target is not a statically known function")
	}

	return nil
}

func (w *Walker) checkCallArgs(call *common.AstCall, fk *kinds.FuncKind) {
	required := fk.RequiredCount()
	rest := fk.RestParam()

	fixed := len(fk.Params)
	if rest != nil {
		fixed--
	}

	if len(call.Args) < required {
		w.kindError(call.Span, "expected at least %d arguments, received %d", required, len(call.Args))
	}

	if rest == nil && len(call.Args) > fixed {
		w.kindError(call.Span, "expected at most %d arguments, received %d", fixed, len(call.Args))
	}

	var restElem kinds.Kind = kinds.GlobAnyKind
	if rest != nil {
		if arrKind, ok := rest.Kind.(*kinds.ArrayKind); ok {
			restElem = arrKind.ElemKind
		}
	}

	for i, arg := range call.Args {
		var expected kinds.Kind
		if i < fixed {
			expected = fk.Params[i].Kind
		} else {
			expected = restElem
		}

		if !kinds.Compatible(expected, arg.GetKind()) {
			w.kindError(
				arg.GetSpan(),
				"argument of type %s is not compatible with parameter of type %s",
				arg.GetKind(), expected,
			)
		}
	}
}

func (w *Walker) walkNew(n *common.AstNew) {
	for _, arg := range n.Args {
		w.walkExpr(arg)
	}

	name := n.Ident.Root()
	name.Def = w.lookup(name.Name, name.Span)

	if _, ok := name.Def.Kind.(*kinds.ClassKind); !ok {
		w.kindError(name.Span, "'%s' is not a class", name.Name)
	}

	// Class bodies declare no constructors or fields, so instantiation
	// takes no arguments and yields an untyped object handle.
	if len(n.Args) > 0 {
		w.kindError(n.Span, "class '%s' takes no constructor arguments", name.Name)
	}

	n.Class = name.Def
	n.Kind = kinds.GlobAnyKind
}
