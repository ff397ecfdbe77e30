package walk

import (
	"fmt"

	"minic/common"
	"minic/report"
)

type Scope map[string]*common.Definition

type Walker struct {
	srcFile *common.SourceFile

	localScopes []Scope

	// enclosingFunc is the function whose body is being walked; nil at the
	// top level, where `return` is illegal.
	enclosingFunc *common.AstFuncDef

	classes map[string]*common.AstClassDef
}

/* -------------------------------------------------------------------------- */

func NewWalker(srcFile *common.SourceFile) *Walker {
	return &Walker{
		srcFile: srcFile,
		classes: make(map[string]*common.AstClassDef),
	}
}

// WalkFile elaborates the whole translation unit: builtins and top-level
// names are registered first so forward references across the top level
// resolve, then every statement is walked.
func (w *Walker) WalkFile() {
	w.registerBuiltins()
	w.registerTopLevel()

	for _, stmt := range w.srcFile.Stmts {
		w.walkTopLevel(stmt)
	}
}

func (w *Walker) walkTopLevel(stmt common.AstNode) {
	defer w.cleanup()
	defer report.Catch()

	w.walkStmt(stmt)
}

// registerTopLevel populates the module symbol table: all declare-function
// forms first, then every other top-level name, before any body is walked.
func (w *Walker) registerTopLevel() {
	for _, stmt := range w.srcFile.Stmts {
		if fd, ok := stmt.(*common.AstFuncDef); ok && fd.Def.External {
			w.declareGlobal(fd.Def)
		}
	}

	for _, stmt := range w.srcFile.Stmts {
		switch v := stmt.(type) {
		case *common.AstFuncDef:
			if !v.Def.External {
				w.declareGlobal(v.Def)
			}
		case *common.AstVarDecl:
			w.declareGlobal(v.Def)
		case *common.AstClassDef:
			w.declareGlobal(v.Def)
			w.classes[v.Def.Name] = v
		}
	}
}

func (w *Walker) declareGlobal(def *common.Definition) {
	defer report.Catch()

	if _, ok := w.srcFile.Parent.SymbolTable[def.Name]; ok {
		w.error(report.CAT_RESOLVE, def.Span, "multiple symbols with name '%s' defined in same scope", def.Name)
	}

	w.srcFile.Parent.SymbolTable[def.Name] = def
}

/* -------------------------------------------------------------------------- */

func (w *Walker) lookup(name string, span *report.TextSpan) *common.Definition {
	for i := len(w.localScopes) - 1; i >= 0; i-- {
		if def, ok := w.localScopes[i][name]; ok {
			return def
		}
	}

	if def, ok := w.srcFile.Parent.SymbolTable[name]; ok {
		return def
	}

	w.error(report.CAT_RESOLVE, span, "undefined symbol: '%s'", name)
	return nil
}

func (w *Walker) declareLocal(def *common.Definition) {
	scope := w.localScopes[len(w.localScopes)-1]
	if _, ok := scope[def.Name]; ok {
		w.error(report.CAT_RESOLVE, def.Span, "multiple symbols with name '%s' defined in same scope", def.Name)
	}

	scope[def.Name] = def
}

func (w *Walker) pushScope() {
	w.localScopes = append(w.localScopes, make(Scope))
}

func (w *Walker) popScope() {
	w.localScopes = w.localScopes[:len(w.localScopes)-1]
}

func (w *Walker) atTopLevel() bool {
	return len(w.localScopes) == 0
}

/* -------------------------------------------------------------------------- */

func (w *Walker) cleanup() {
	w.localScopes = nil
	w.enclosingFunc = nil
}

func (w *Walker) error(cat report.Category, span *report.TextSpan, format string, a ...any) {
	report.Throw(&report.SourceError{
		Category: cat,
		Message:  fmt.Sprintf(format, a...),
		Info: &report.SourceInfo{
			ModName:     w.srcFile.Parent.Name,
			DisplayPath: w.srcFile.DisplayPath,
			Span:        span,
		},
	})
}
