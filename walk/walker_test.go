package walk

import (
	"strings"
	"testing"

	"minic/common"
	"minic/kinds"
	"minic/report"
	"minic/syntax"
	"minic/util"
)

type testReporter struct {
	errs []error
}

func (tr *testReporter) ReportError(err error) {
	tr.errs = append(tr.errs, err)
}

func walkSource(src string) (*common.SourceFile, *testReporter) {
	rep := &testReporter{}
	report.SetGlobalReporter(rep)

	mod := common.NewModule("test")
	srcFile, err := mod.AddSourceFile("test.mini")
	if err != nil {
		panic(err)
	}

	func() {
		defer report.Catch()

		p := syntax.NewParser(srcFile, strings.NewReader(src))
		p.Parse()
	}()

	if len(rep.errs) == 0 {
		w := NewWalker(srcFile)
		w.WalkFile()
	}

	return srcFile, rep
}

func walkOK(t *testing.T, src string) *common.SourceFile {
	t.Helper()

	srcFile, rep := walkSource(src)
	if len(rep.errs) > 0 {
		t.Fatalf("unexpected error: %v", rep.errs[0])
	}

	return srcFile
}

func walkFails(t *testing.T, src string, cat report.Category) {
	t.Helper()

	_, rep := walkSource(src)
	if len(rep.errs) == 0 {
		t.Fatalf("expected an error for %q", src)
	}

	serr, ok := rep.errs[0].(*report.SourceError)
	if !ok {
		t.Fatalf("expected a source error, got %v", rep.errs[0])
	}

	if serr.Category != cat {
		t.Errorf("expected a %s error, got %s: %s", cat, serr.Category, serr.Message)
	}
}

func initKind(t *testing.T, srcFile *common.SourceFile, i int) kinds.Kind {
	t.Helper()

	vd, ok := srcFile.Stmts[i].(*common.AstVarDecl)
	if !ok {
		t.Fatalf("statement %d is not a definition", i)
	}

	return vd.Initializer.GetKind()
}

/* -------------------------------------------------------------------------- */

func TestWalkLiteralKinds(t *testing.T) {
	srcFile := walkOK(t, "let a = 1; let b = 1.5; let c = 'x'; let d = true; let e = null;")

	expect := []kinds.Kind{
		kinds.GlobNumberKind,
		kinds.GlobFloatKind,
		kinds.GlobStringKind,
		kinds.GlobBoolKind,
		kinds.GlobNullKind,
	}

	for i, want := range expect {
		got := initKind(t, srcFile, i)
		if !kinds.Equal(want, got) {
			t.Errorf("statement %d: expected %s, got %s", i, util.DumpString(want), util.DumpString(got))
		}
	}
}

func TestWalkNumericPromotion(t *testing.T) {
	srcFile := walkOK(t, "let a = 1 + 2; let b = 1 + 2.5; let c = 1.5 * 2.5;")

	if !kinds.Equal(initKind(t, srcFile, 0), kinds.GlobNumberKind) {
		t.Error("integer + integer must stay integer")
	}
	if !kinds.Equal(initKind(t, srcFile, 1), kinds.GlobFloatKind) {
		t.Error("integer + float must widen to float")
	}
	if !kinds.Equal(initKind(t, srcFile, 2), kinds.GlobFloatKind) {
		t.Error("float * float must stay float")
	}
}

func TestWalkStringConcat(t *testing.T) {
	srcFile := walkOK(t, "let s: string = 'a' + 'b';")

	if !kinds.Equal(initKind(t, srcFile, 0), kinds.GlobStringKind) {
		t.Error("string + string must be string")
	}
}

func TestWalkComparisonAndLogic(t *testing.T) {
	srcFile := walkOK(t, "let a = 1 < 2; let b = a && !a; let c = 1 == 2.0; let d = 'x' === 1;")

	for i := 0; i < 4; i++ {
		if !kinds.Equal(initKind(t, srcFile, i), kinds.GlobBoolKind) {
			t.Errorf("statement %d must produce boolean", i)
		}
	}
}

func TestWalkOperatorErrors(t *testing.T) {
	walkFails(t, "'a' - 'b';", report.CAT_TYPE)
	walkFails(t, "1.5 % 2;", report.CAT_TYPE)
	walkFails(t, "1 && true;", report.CAT_TYPE)
	walkFails(t, "'a' == 1;", report.CAT_TYPE)
	walkFails(t, "!1;", report.CAT_TYPE)
	walkFails(t, "-'a';", report.CAT_TYPE)
}

func TestWalkTypeofIsString(t *testing.T) {
	srcFile := walkOK(t, "let k = typeof 1;")

	if !kinds.Equal(initKind(t, srcFile, 0), kinds.GlobStringKind) {
		t.Error("typeof must produce string")
	}
}

/* -------------------------------------------------------------------------- */

func TestWalkUndefinedSymbol(t *testing.T) {
	walkFails(t, "missing;", report.CAT_RESOLVE)
}

func TestWalkDuplicateDeclaration(t *testing.T) {
	walkFails(t, "let x = 1; let x = 2;", report.CAT_RESOLVE)
}

func TestWalkConstNotWritable(t *testing.T) {
	walkFails(t, "const c: number = 1; c = 2;", report.CAT_RESOLVE)
}

func TestWalkLetIsWritable(t *testing.T) {
	walkOK(t, "let n: number = 1; n = n + 2;")
}

func TestWalkAssignmentKindMismatch(t *testing.T) {
	walkFails(t, "let n: number = 1; n = 'x';", report.CAT_TYPE)
}

func TestWalkInitializerKindMismatch(t *testing.T) {
	walkFails(t, "let n: number = 'x';", report.CAT_TYPE)
}

func TestWalkCannotInfer(t *testing.T) {
	walkFails(t, "let x;", report.CAT_RESOLVE)
}

func TestWalkIntWidensToFloatSlot(t *testing.T) {
	walkOK(t, "let n = 1 + 2.5; n = 1;")
}

/* -------------------------------------------------------------------------- */

func TestWalkCallChecking(t *testing.T) {
	walkOK(t, "declare function f(n: number): number; let r: number = f(1);")
	walkFails(t, "declare function f(n: number): number; f('x');", report.CAT_TYPE)
	walkFails(t, "declare function f(n: number): number; f();", report.CAT_TYPE)
	walkFails(t, "declare function f(n: number): number; f(1, 2);", report.CAT_TYPE)
	walkFails(t, "let x = 1; x();", report.CAT_TYPE)
}

func TestWalkOptionalAndRestArity(t *testing.T) {
	walkOK(t, "declare function f(a: number, b?: number): void; f(1); f(1, 2);")
	walkFails(t, "declare function f(a: number, b?: number): void; f(1, 2, 3);", report.CAT_TYPE)
	walkOK(t, "declare function g(a: number, ...rest: string[]): void; g(1); g(1, 'a', 'b');")
	walkFails(t, "declare function g(a: number, ...rest: string[]): void; g(1, 2);", report.CAT_TYPE)
}

func TestWalkForwardReferenceAtTopLevel(t *testing.T) {
	walkOK(t, "function f(): number { return g(); } function g(): number { return 1; }")
}

func TestWalkEchoBuiltin(t *testing.T) {
	walkOK(t, "echo(1, 'two', true);")
}

func TestWalkReturnChecking(t *testing.T) {
	walkOK(t, "function f(): number { return 1; }")
	walkOK(t, "function f(): void { return; }")
	walkFails(t, "function f(): number { return 'x'; }", report.CAT_TYPE)
	walkFails(t, "function f(): void { return 1; }", report.CAT_TYPE)
	walkFails(t, "return 1;", report.CAT_RESOLVE)
}

func TestWalkParamsAreWritable(t *testing.T) {
	walkOK(t, "function f(n: number): number { n = n + 1; return n; }")
}

/* -------------------------------------------------------------------------- */

func TestWalkObjectPropertyKinds(t *testing.T) {
	srcFile := walkOK(t, "let o = { a: 1, b: 'x' }; let p: number = o.a; let q: string = o.b;")

	objKind, ok := initKind(t, srcFile, 0).(*kinds.ObjectKind)
	if !ok {
		t.Fatal("object literal must produce an object kind")
	}

	if len(objKind.Fields) != 2 || objKind.Fields[0].Name != "a" {
		t.Fatalf("bad object kind fields: %+v", objKind.Fields)
	}
}

func TestWalkObjectPropertyErrors(t *testing.T) {
	walkFails(t, "let o = { a: 1 }; o.missing;", report.CAT_TYPE)
	walkFails(t, "let n = 1; n.a;", report.CAT_TYPE)
}

func TestWalkArrayIndexing(t *testing.T) {
	srcFile := walkOK(t, "let xs: number[] = [1]; let x: number = xs[0];")

	vd := srcFile.Stmts[1].(*common.AstVarDecl)
	if !kinds.Equal(vd.Initializer.GetKind(), kinds.GlobNumberKind) {
		t.Error("indexing a number array must produce number")
	}

	walkFails(t, "let n = 1; n[0];", report.CAT_TYPE)
	walkFails(t, "let xs = [1]; xs['k'];", report.CAT_TYPE)
}

func TestWalkClassAndNew(t *testing.T) {
	walkOK(t, "class Point { getX(): number { return 1; } } let p = new Point(); Point.getX(p);")
	walkFails(t, "let x = 1; new x();", report.CAT_TYPE)
	walkFails(t, "class C { } new C(1);", report.CAT_TYPE)
	walkFails(t, "class C { } C.missing(1);", report.CAT_TYPE)
}

func TestWalkMethodThisBinding(t *testing.T) {
	walkOK(t, "class C { self(): any { return this; } }")
	walkFails(t, "class C { bad(): void { this = 1; } }", report.CAT_RESOLVE)
}

func TestWalkBuiltinDecoratorPlacement(t *testing.T) {
	walkFails(t, "@builtin function f(): void { return; }", report.CAT_RESOLVE)
	walkOK(t, "@builtin declare function put_str(s: string): void; put_str('hi');")
}

func TestWalkImportIntroducesNoBinding(t *testing.T) {
	walkFails(t, "import lib from 'lib'; lib;", report.CAT_RESOLVE)
}

func TestWalkAnyIsCompatibleEverywhere(t *testing.T) {
	walkOK(t, `
		declare function f(n: number): any;
		let a = f(1);
		let n: number = a + 1;
		let b = !a && true;
		a.anything;
		a[0];
	`)
}
