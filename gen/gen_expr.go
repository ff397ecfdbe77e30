package gen

import (
	"math"

	"minic/common"
)

func (g *Generator) genExpr(expr common.AstExpr) value {
	switch v := expr.(type) {
	case *common.AstIntLit:
		tmp := g.newTemp()
		g.writef("  %s = call ptr @new_int_val(i64 %d)\n", tmp, v.Value)
		return value{reg: tmp}
	case *common.AstFloatLit:
		tmp := g.newTemp()
		g.writef("  %s = call ptr @new_float_val(double 0x%016X)\n", tmp, math.Float64bits(v.Value))
		return value{reg: tmp}
	case *common.AstStrLit:
		tmp := g.newTemp()
		g.writef("  %s = call ptr @new_str_val(ptr %s)\n", tmp, g.intern(v.Value))
		return value{reg: tmp}
	case *common.AstBoolLit:
		b := 0
		if v.Value {
			b = 1
		}

		tmp := g.newTemp()
		g.writef("  %s = call ptr @new_bool_val(i1 %d)\n", tmp, b)
		return value{reg: tmp}
	case *common.AstNullLit:
		tmp := g.newTemp()
		g.writef("  %s = call ptr @new_null_val()\n", tmp)
		return value{reg: tmp}
	case *common.AstUndefinedLit:
		return nullValue
	case *common.AstVarExpr:
		return g.genIdentGet(v.Ident)
	case *common.AstAssign:
		return g.genAssign(v)
	case *common.AstTypeOf:
		return g.genTypeOf(v)
	case *common.AstUnaryOp:
		operand := g.genExpr(v.Operand)

		tmp := g.newTemp()
		g.writef("  %s = call ptr @%s(ptr %s)\n", tmp, unaryOpFuncs[v.OpKind], operand.reg)

		// Unary plus passes numeric operands through unchanged, so the
		// result keeps the operand's ownership; the other operators
		// consume their input and return a fresh box.
		if v.OpKind == common.AOP_POS {
			return value{reg: tmp, owned: operand.owned}
		}

		g.release(operand)

		return value{reg: tmp}
	case *common.AstBinaryOp:
		lhs := g.genExpr(v.Lhs)
		rhs := g.genExpr(v.Rhs)

		tmp := g.newTemp()
		g.writef("  %s = call ptr @%s(ptr %s, ptr %s)\n", tmp, binaryOpFuncs[v.OpKind], lhs.reg, rhs.reg)
		g.release(lhs)
		g.release(rhs)

		return value{reg: tmp}
	case *common.AstCall:
		return g.genCall(v)
	case *common.AstNew:
		tmp := g.newTemp()
		g.writef("  %s = call ptr @new_object_val()\n", tmp)
		return value{reg: tmp}
	case *common.AstArrayLit:
		arr := g.newTemp()
		g.writef("  %s = call ptr @new_array_val(i64 %d)\n", arr, len(v.Items))

		for _, item := range v.Items {
			iv := g.genExpr(item)
			g.writef("  call ptr @val_array_push(ptr %s, ptr %s)\n", arr, iv.reg)
			g.release(iv)
		}

		return value{reg: arr}
	case *common.AstObjectLit:
		obj := g.newTemp()
		g.writef("  %s = call ptr @new_object_val()\n", obj)

		for _, field := range v.Fields {
			fv := g.genExpr(field.Value)
			g.writef("  call ptr @val_object_set(ptr %s, ptr %s, ptr %s)\n", obj, g.intern(field.Name), fv.reg)
			g.release(fv)
		}

		return value{reg: obj}
	}

	g.error(expr.GetSpan(), "expression cannot be lowered")
	return nullValue
}

/* -------------------------------------------------------------------------- */

func (g *Generator) slotOf(ident *common.IdentName) string {
	loc, ok := g.slots[ident.Def]
	if !ok {
		g.error(ident.Span, "identifier '%s' has no storage slot", ident.Name)
	}

	return loc
}

// genIdentGet loads the value an identifier path denotes. Results are
// unowned: name loads are held by their binding, and the aggregate getters
// return the stored pointer without transferring a reference.
func (g *Generator) genIdentGet(ident common.VarIdent) value {
	switch v := ident.(type) {
	case *common.IdentName:
		tmp := g.newTemp()
		g.writef("  %s = load ptr, ptr %s\n", tmp, g.slotOf(v))
		return value{reg: tmp}
	case *common.IdentProperty:
		base := g.genIdentGet(v.Base)

		tmp := g.newTemp()
		g.writef("  %s = call ptr @val_object_get(ptr %s, ptr %s)\n", tmp, base.reg, g.intern(v.Name))
		return value{reg: tmp}
	case *common.IdentIndex:
		base := g.genIdentGet(v.Base)
		idx := g.genExpr(v.Index)

		tmp := g.newTemp()
		g.writef("  %s = call ptr @val_array_get(ptr %s, ptr %s)\n", tmp, base.reg, idx.reg)
		g.release(idx)

		return value{reg: tmp}
	}

	g.error(ident.GetSpan(), "identifier path cannot be lowered")
	return nullValue
}

/* -------------------------------------------------------------------------- */

// genAssign stores through an identifier path, linking the incoming value
// and unlinking whatever the slot previously held.
func (g *Generator) genAssign(asn *common.AstAssign) value {
	switch v := asn.Ident.(type) {
	case *common.IdentName:
		loc := g.slotOf(v)

		newv := g.genExpr(asn.Value)

		old := g.newTemp()
		g.writef("  %s = load ptr, ptr %s\n", old, loc)

		g.writef("  store ptr %s, ptr %s\n", newv.reg, loc)
		if !newv.owned {
			g.link(newv)
		}

		g.unlink(old)

		return value{reg: newv.reg}
	case *common.IdentProperty:
		base := g.genIdentGet(v.Base)
		key := g.intern(v.Name)

		old := g.newTemp()
		g.writef("  %s = call ptr @val_object_get(ptr %s, ptr %s)\n", old, base.reg, key)

		newv := g.genExpr(asn.Value)

		g.writef("  call ptr @val_object_set(ptr %s, ptr %s, ptr %s)\n", base.reg, key, newv.reg)
		g.release(newv)

		g.unlink(old)

		return value{reg: newv.reg}
	case *common.IdentIndex:
		base := g.genIdentGet(v.Base)

		idx := g.genExpr(v.Index)
		g.link(idx)

		old := g.newTemp()
		g.writef("  %s = call ptr @val_array_get(ptr %s, ptr %s)\n", old, base.reg, idx.reg)

		newv := g.genExpr(asn.Value)

		g.writef("  call ptr @val_array_set(ptr %s, ptr %s, ptr %s)\n", base.reg, idx.reg, newv.reg)

		g.unlink(idx.reg)
		g.release(idx)
		g.release(newv)

		g.unlink(old)

		return value{reg: newv.reg}
	}

	g.error(asn.Span, "assignment target cannot be lowered")
	return nullValue
}

/* -------------------------------------------------------------------------- */

// genTypeOf pins the operand across val_get_type, which does not consume
// its input, so fresh temporaries are freed rather than leaked.
func (g *Generator) genTypeOf(t *common.AstTypeOf) value {
	operand := g.genExpr(t.Operand)

	if !operand.owned {
		g.link(operand)
	}

	tmp := g.newTemp()
	g.writef("  %s = call ptr @val_get_type(ptr %s)\n", tmp, operand.reg)

	g.unlink(operand.reg)

	return value{reg: tmp}
}

/* -------------------------------------------------------------------------- */

func (g *Generator) genCall(call *common.AstCall) value {
	fk := call.Callee.FuncKind()

	fixed := len(fk.Params)
	rest := fk.RestParam()
	if rest != nil {
		fixed--
	}

	args := make([]value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genExpr(arg)
	}

	// Missing optional arguments are passed as undefined.
	operands := make([]value, 0, fixed+1)
	for i := 0; i < fixed; i++ {
		if i < len(args) {
			operands = append(operands, args[i])
		} else {
			operands = append(operands, nullValue)
		}
	}

	// The rest portion materialises as a fresh array box.
	if rest != nil {
		arr := g.newTemp()

		surplus := args[min(fixed, len(args)):]
		g.writef("  %s = call ptr @new_array_val(i64 %d)\n", arr, len(surplus))

		for _, sv := range surplus {
			g.writef("  call ptr @val_array_push(ptr %s, ptr %s)\n", arr, sv.reg)
			g.release(sv)
		}

		operands = append(operands, value{reg: arr})
	}

	name := call.Callee.Name
	if call.MethodOwner != nil {
		name = call.MethodOwner.Name + "_" + call.Callee.Name
	}

	if call.Callee.External && call.Callee.HasDecorator(common.DecoratorBuiltin) {
		return g.genBuiltinCall(name, operands)
	}

	return g.genUserCall(name, operands)
}

// genBuiltinCall emits a direct runtime intrinsic call. Runtime helpers
// consume fresh temporaries themselves, so no handoff links are emitted.
func (g *Generator) genBuiltinCall(name string, operands []value) value {
	tmp := g.newTemp()

	g.writef("  %s = call ptr @%s(", tmp, name)
	for i, op := range operands {
		if i > 0 {
			g.writef(", ")
		}
		g.writef("ptr %s", op.reg)
	}
	g.writef(")\n")

	for _, op := range operands {
		g.release(op)
	}

	return value{reg: tmp}
}

// genUserCall hands off one owned reference per argument and receives an
// owned result back.
func (g *Generator) genUserCall(name string, operands []value) value {
	for _, op := range operands {
		if !op.owned {
			g.link(op)
		}
	}

	tmp := g.newTemp()

	g.writef("  %s = call ptr @%s(", tmp, name)
	for i, op := range operands {
		if i > 0 {
			g.writef(", ")
		}
		g.writef("ptr %s", op.reg)
	}
	g.writef(")\n")

	return value{reg: tmp, owned: true}
}
