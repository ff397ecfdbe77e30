package cmd

import (
	"bytes"
	"os"

	"minic/common"
	"minic/gen"
	"minic/report"
	"minic/syntax"
	"minic/walk"
)

type Compiler struct {
	rep report.Reporter
}

func NewCompiler(rep report.Reporter) *Compiler {
	return &Compiler{rep: rep}
}

func (c *Compiler) Compile(srcPath, outPath string) bool {
	report.SetGlobalReporter(c.rep)

	c.compileFile(srcPath, outPath)

	return report.NoErrors()
}

// compileFile runs the pipeline for one translation unit: parse, walk,
// generate. A failing stage stops the pipeline and nothing is written.
func (c *Compiler) compileFile(srcPath, outPath string) {
	file, err := os.Open(srcPath)
	if err != nil {
		report.Error(err)
		return
	}
	defer file.Close()

	mod := common.NewModule("main")
	srcFile, err := mod.AddSourceFile(srcPath)
	if err != nil {
		report.Error(err)
		return
	}

	func() {
		defer report.Catch()

		p := syntax.NewParser(srcFile, file)
		p.Parse()
	}()

	if !report.NoErrors() {
		return
	}

	w := walk.NewWalker(srcFile)
	w.WalkFile()

	if !report.NoErrors() {
		return
	}

	buff := bytes.Buffer{}
	func() {
		defer report.Catch()

		g := gen.NewGenerator(srcFile)
		g.Generate(&buff)
	}()

	if !report.NoErrors() {
		return
	}

	if err := os.WriteFile(outPath, buff.Bytes(), 0o644); err != nil {
		report.Error(err)
	}
}
