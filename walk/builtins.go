package walk

import (
	"minic/common"
	"minic/kinds"
	"minic/report"
)

// Builtins are compiler-known externals available in every translation unit
// without a declare statement. Each carries the builtin decorator so the
// code generator emits a direct runtime call.
func builtinDefs() []*common.Definition {
	return []*common.Definition{
		{
			Span: &report.TextSpan{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1},
			Name: "echo",
			Kind: &kinds.FuncKind{
				Params: []kinds.ParamKind{
					{Kind: &kinds.ArrayKind{ElemKind: kinds.GlobAnyKind}, Rest: true},
				},
				ReturnKind: kinds.GlobUndefinedKind,
			},
			External:   true,
			Decorators: []string{common.DecoratorBuiltin},
		},
	}
}

func (w *Walker) registerBuiltins() {
	for _, def := range builtinDefs() {
		if _, ok := w.srcFile.Parent.SymbolTable[def.Name]; !ok {
			w.srcFile.Parent.SymbolTable[def.Name] = def
		}
	}
}
