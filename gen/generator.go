package gen

import (
	"fmt"
	"io"
	"strings"

	"minic/common"
	"minic/report"
)

// Generator lowers one elaborated translation unit to textual LLVM-IR.
// Runtime externs and interned string constants head the module, user
// functions and class methods follow, and the top-level statements become
// the body of @main.
type Generator struct {
	srcFile *common.SourceFile

	body *strings.Builder
	temp int

	strs []string
	strM map[string]int

	slots   map[*common.Definition]string
	globals []*common.Definition
	locals  []*common.Definition

	terminated bool
}

func NewGenerator(srcFile *common.SourceFile) *Generator {
	return &Generator{
		srcFile: srcFile,
		body:    &strings.Builder{},
		strM:    make(map[string]int),
		slots:   make(map[*common.Definition]string),
	}
}

// Generate emits the whole module to w. Codegen invariant breaches throw an
// internal diagnostic; nothing is written unless emission completes.
func (g *Generator) Generate(w io.Writer) {
	// Register every top-level binding first so function bodies can refer
	// to bindings declared after them.
	for _, stmt := range g.srcFile.Stmts {
		if vd, ok := stmt.(*common.AstVarDecl); ok {
			g.globals = append(g.globals, vd.Def)
			g.slots[vd.Def] = "@g." + vd.Def.Name
		}
	}

	for _, stmt := range g.srcFile.Stmts {
		switch v := stmt.(type) {
		case *common.AstFuncDef:
			if !v.Def.External {
				g.genFunction(v, "")
			}
		case *common.AstClassDef:
			for _, method := range v.Methods {
				g.genFunction(method, v.Def.Name)
			}
		}
	}

	g.genMain()

	g.flush(w)
}

func (g *Generator) flush(w io.Writer) {
	fmt.Fprintf(w, "; ModuleID = '%s'\n", g.srcFile.Parent.Name)
	fmt.Fprintf(w, "source_filename = \"%s\"\n\n", g.srcFile.DisplayPath)

	for _, decl := range runtimeDecls {
		fmt.Fprintln(w, decl)
	}

	for _, stmt := range g.srcFile.Stmts {
		if fd, ok := stmt.(*common.AstFuncDef); ok && fd.Def.External && !runtimeNames[fd.Def.Name] {
			fmt.Fprintln(w, g.externDecl(fd))
		}
	}

	fmt.Fprintln(w)

	for i, s := range g.strs {
		fmt.Fprintf(
			w, "@.str.%d = private unnamed_addr constant [%d x i8] c\"%s\\00\"\n",
			i, len(s)+1, escapeIR(s),
		)
	}

	for _, def := range g.globals {
		fmt.Fprintf(w, "@g.%s = private global ptr null\n", def.Name)
	}

	if len(g.strs) > 0 || len(g.globals) > 0 {
		fmt.Fprintln(w)
	}

	io.WriteString(w, g.body.String())
}

func (g *Generator) externDecl(fd *common.AstFuncDef) string {
	fk := fd.Def.FuncKind()

	n := len(fk.Params)
	params := make([]string, n)
	for i := range params {
		params[i] = "ptr"
	}

	return fmt.Sprintf("declare ptr @%s(%s)", fd.Def.Name, strings.Join(params, ", "))
}

/* -------------------------------------------------------------------------- */

// value is one computed ptr operand. Owned values carry a reference the
// consumer must release exactly once; unowned values are either fresh
// zero-count temporaries (consumed by runtime helpers) or pointers whose
// reference is held by a binding.
type value struct {
	reg   string
	owned bool
}

var nullValue = value{reg: "null"}

/* -------------------------------------------------------------------------- */

func (g *Generator) writef(format string, a ...any) {
	fmt.Fprintf(g.body, format, a...)
}

func (g *Generator) newTemp() string {
	g.temp++
	return fmt.Sprintf("%%t%d", g.temp)
}

// intern returns the global naming a NUL-terminated string constant.
func (g *Generator) intern(s string) string {
	if idx, ok := g.strM[s]; ok {
		return fmt.Sprintf("@.str.%d", idx)
	}

	idx := len(g.strs)
	g.strs = append(g.strs, s)
	g.strM[s] = idx

	return fmt.Sprintf("@.str.%d", idx)
}

func escapeIR(s string) string {
	b := strings.Builder{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "\\%02X", c)
		}
	}

	return b.String()
}

/* -------------------------------------------------------------------------- */

func (g *Generator) link(v value) {
	if v.reg != "null" {
		g.writef("  call void @link_val(ptr %s)\n", v.reg)
	}
}

func (g *Generator) unlink(reg string) {
	if reg != "null" {
		g.writef("  call void @unlink_val(ptr %s)\n", reg)
	}
}

// release drops a value the current expression no longer needs: owned values
// give back their reference, unowned temporaries are already consumed or
// held elsewhere.
func (g *Generator) release(v value) {
	if v.owned {
		g.unlink(v.reg)
	}
}

/* -------------------------------------------------------------------------- */

func (g *Generator) error(span *report.TextSpan, format string, a ...any) {
	report.Throw(&report.SourceError{
		Category: report.CAT_INTERNAL,
		Message:  fmt.Sprintf(format, a...),
		Info: &report.SourceInfo{
			ModName:     g.srcFile.Parent.Name,
			DisplayPath: g.srcFile.DisplayPath,
			Span:        span,
		},
	})
}
