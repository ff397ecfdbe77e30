package gen

import (
	"fmt"
	"strings"

	"minic/common"
)

// genFunction emits one user function or class method. Methods are free
// functions named <Class>_<method>. Parameters arrive pre-linked (the
// caller hands off an owned reference) and are stored into alloca slots;
// the epilogue unlinks every live local before ret.
func (g *Generator) genFunction(fd *common.AstFuncDef, className string) {
	name := fd.Def.Name
	if className != "" {
		name = className + "_" + fd.Def.Name
	}

	g.temp = 0
	g.locals = nil
	g.terminated = false

	params := make([]string, len(fd.Params))
	for i := range fd.Params {
		params[i] = fmt.Sprintf("ptr %%p%d", i)
	}

	g.writef("define ptr @%s(%s) {\nentry:\n", name, strings.Join(params, ", "))

	for i, param := range fd.Params {
		loc := fmt.Sprintf("%%%s.slot", param.Name)
		g.writef("  %s = alloca ptr\n", loc)
		g.writef("  store ptr %%p%d, ptr %s\n", i, loc)

		g.slots[param] = loc
		g.locals = append(g.locals, param)
	}

	for _, stmt := range fd.Body {
		if g.terminated {
			break
		}

		g.genStmt(stmt)
	}

	if !g.terminated {
		g.genTeardown()
		g.writef("  ret ptr null\n")
	}

	g.writef("}\n\n")
}

// genMain wraps the top-level statements in @main. Top-level bindings live
// in module globals so function bodies can reference them; they are
// unlinked before exit so the runtime's active value count drains to zero.
func (g *Generator) genMain() {
	g.temp = 0
	g.locals = nil
	g.terminated = false

	g.writef("define i32 @main() {\nentry:\n")

	for _, stmt := range g.srcFile.Stmts {
		switch stmt.(type) {
		case *common.AstFuncDef, *common.AstClassDef, *common.AstImport:
			continue
		}

		g.genStmt(stmt)
	}

	for _, def := range g.globals {
		tmp := g.newTemp()
		g.writef("  %s = load ptr, ptr %s\n", tmp, g.slots[def])
		g.unlink(tmp)
	}

	g.writef("  ret i32 0\n}\n")
}

/* -------------------------------------------------------------------------- */

func (g *Generator) genStmt(stmt common.AstNode) {
	switch v := stmt.(type) {
	case *common.AstEmptyStmt, *common.AstImport:
	case *common.AstExprStmt:
		result := g.genExpr(v.Expr)
		g.release(result)
	case *common.AstVarDecl:
		g.genVarDecl(v)
	case *common.AstReturn:
		g.genReturn(v)
	default:
		g.error(stmt.GetSpan(), "statement cannot be lowered in this position")
	}
}

func (g *Generator) genVarDecl(vd *common.AstVarDecl) {
	loc, ok := g.slots[vd.Def]
	if !ok {
		loc = fmt.Sprintf("%%%s.slot", vd.Def.Name)

		g.writef("  %s = alloca ptr\n", loc)
		g.slots[vd.Def] = loc
		g.locals = append(g.locals, vd.Def)
	}

	init := nullValue
	if vd.Initializer != nil {
		init = g.genExpr(vd.Initializer)
	}

	g.writef("  store ptr %s, ptr %s\n", init.reg, loc)

	// The slot takes ownership: fresh temporaries gain their first
	// reference here, owned call results transfer theirs.
	if !init.owned {
		g.link(init)
	}
}

// genReturn protects the result across the scope teardown by linking it
// first, so returning a local does not hand back freed memory. The caller
// receives an owned reference and consumes it exactly once.
func (g *Generator) genReturn(ret *common.AstReturn) {
	result := nullValue
	if ret.Value != nil {
		result = g.genExpr(ret.Value)
	}

	if !result.owned {
		g.link(result)
	}

	g.genTeardown()
	g.writef("  ret ptr %s\n", result.reg)

	g.terminated = true
}

func (g *Generator) genTeardown() {
	for i := len(g.locals) - 1; i >= 0; i-- {
		tmp := g.newTemp()
		g.writef("  %s = load ptr, ptr %s\n", tmp, g.slots[g.locals[i]])
		g.unlink(tmp)
	}
}
