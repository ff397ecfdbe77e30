package gen

import (
	"bytes"
	"strings"
	"testing"

	"minic/common"
	"minic/report"
	"minic/syntax"
	"minic/walk"
)

type testReporter struct {
	errs []error
}

func (tr *testReporter) ReportError(err error) {
	tr.errs = append(tr.errs, err)
}

func compileIR(t *testing.T, src string) string {
	t.Helper()

	rep := &testReporter{}
	report.SetGlobalReporter(rep)

	mod := common.NewModule("test")
	srcFile, err := mod.AddSourceFile("test.mini")
	if err != nil {
		t.Fatal(err)
	}

	func() {
		defer report.Catch()

		p := syntax.NewParser(srcFile, strings.NewReader(src))
		p.Parse()
	}()

	if len(rep.errs) > 0 {
		t.Fatalf("parse error: %v", rep.errs[0])
	}

	w := walk.NewWalker(srcFile)
	w.WalkFile()

	if len(rep.errs) > 0 {
		t.Fatalf("walk error: %v", rep.errs[0])
	}

	buff := bytes.Buffer{}
	func() {
		defer report.Catch()

		g := NewGenerator(srcFile)
		g.Generate(&buff)
	}()

	if len(rep.errs) > 0 {
		t.Fatalf("codegen error: %v", rep.errs[0])
	}

	return buff.String()
}

// normalize collapses all whitespace so comparisons ignore indentation and
// blank lines.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wantIR(t *testing.T, ir, fragment string) {
	t.Helper()

	if !strings.Contains(normalize(ir), normalize(fragment)) {
		t.Errorf("emitted IR does not contain:\n%s\n\nfull IR:\n%s", fragment, ir)
	}
}

func wantNoIR(t *testing.T, ir, fragment string) {
	t.Helper()

	if strings.Contains(normalize(ir), normalize(fragment)) {
		t.Errorf("emitted IR must not contain:\n%s\n\nfull IR:\n%s", fragment, ir)
	}
}

/* -------------------------------------------------------------------------- */

func TestGenRuntimeExterns(t *testing.T) {
	ir := compileIR(t, ";")

	for _, decl := range []string{
		"declare ptr @new_int_val(i64)",
		"declare ptr @val_op_add(ptr, ptr)",
		"declare void @link_val(ptr)",
		"declare void @unlink_val(ptr)",
		"declare ptr @echo(ptr)",
	} {
		wantIR(t, ir, decl)
	}
}

func TestGenStringConcatAndEcho(t *testing.T) {
	ir := compileIR(t, "let s: string = 'a' + 'b'; echo(s);")

	wantIR(t, ir, `@.str.0 = private unnamed_addr constant [2 x i8] c"a\00"`)
	wantIR(t, ir, `@.str.1 = private unnamed_addr constant [2 x i8] c"b\00"`)
	wantIR(t, ir, "@g.s = private global ptr null")

	wantIR(t, ir, `
define i32 @main() {
entry:
  %t1 = call ptr @new_str_val(ptr @.str.0)
  %t2 = call ptr @new_str_val(ptr @.str.1)
  %t3 = call ptr @val_op_add(ptr %t1, ptr %t2)
  store ptr %t3, ptr @g.s
  call void @link_val(ptr %t3)
  %t4 = load ptr, ptr @g.s
  %t5 = call ptr @new_array_val(i64 1)
  call ptr @val_array_push(ptr %t5, ptr %t4)
  %t6 = call ptr @echo(ptr %t5)
  %t7 = load ptr, ptr @g.s
  call void @unlink_val(ptr %t7)
  ret i32 0
}
`)
}

func TestGenRebinding(t *testing.T) {
	ir := compileIR(t, "let n: number = 1; n = n + 2;")

	wantIR(t, ir, `
  %t1 = call ptr @new_int_val(i64 1)
  store ptr %t1, ptr @g.n
  call void @link_val(ptr %t1)
  %t2 = load ptr, ptr @g.n
  %t3 = call ptr @new_int_val(i64 2)
  %t4 = call ptr @val_op_add(ptr %t2, ptr %t3)
  %t5 = load ptr, ptr @g.n
  store ptr %t4, ptr @g.n
  call void @link_val(ptr %t4)
  call void @unlink_val(ptr %t5)
`)
}

func TestGenArrayLiteral(t *testing.T) {
	ir := compileIR(t, "let xs = [1, 2];")

	wantIR(t, ir, `
  %t1 = call ptr @new_array_val(i64 2)
  %t2 = call ptr @new_int_val(i64 1)
  call ptr @val_array_push(ptr %t1, ptr %t2)
  %t3 = call ptr @new_int_val(i64 2)
  call ptr @val_array_push(ptr %t1, ptr %t3)
  store ptr %t1, ptr @g.xs
  call void @link_val(ptr %t1)
`)
}

func TestGenObjectLiteralAndPropertyGet(t *testing.T) {
	ir := compileIR(t, "let o = { a: 1, b: 'x' }; echo(o.a);")

	wantIR(t, ir, `
  %t1 = call ptr @new_object_val()
  %t2 = call ptr @new_int_val(i64 1)
  call ptr @val_object_set(ptr %t1, ptr @.str.0, ptr %t2)
  %t3 = call ptr @new_str_val(ptr @.str.1)
  call ptr @val_object_set(ptr %t1, ptr @.str.2, ptr %t3)
  store ptr %t1, ptr @g.o
  call void @link_val(ptr %t1)
`)

	wantIR(t, ir, `
  %t4 = load ptr, ptr @g.o
  %t5 = call ptr @val_object_get(ptr %t4, ptr @.str.0)
  %t6 = call ptr @new_array_val(i64 1)
  call ptr @val_array_push(ptr %t6, ptr %t5)
  %t7 = call ptr @echo(ptr %t6)
`)
}

func TestGenFunctionDefinitionAndCall(t *testing.T) {
	ir := compileIR(t, "function add(a: number, b: number): number { return a + b; } let r: number = add(1, 2);")

	wantIR(t, ir, `
define ptr @add(ptr %p0, ptr %p1) {
entry:
  %a.slot = alloca ptr
  store ptr %p0, ptr %a.slot
  %b.slot = alloca ptr
  store ptr %p1, ptr %b.slot
  %t1 = load ptr, ptr %a.slot
  %t2 = load ptr, ptr %b.slot
  %t3 = call ptr @val_op_add(ptr %t1, ptr %t2)
  call void @link_val(ptr %t3)
  %t4 = load ptr, ptr %b.slot
  call void @unlink_val(ptr %t4)
  %t5 = load ptr, ptr %a.slot
  call void @unlink_val(ptr %t5)
  ret ptr %t3
}
`)

	// Arguments are handed off linked; the owned result transfers straight
	// into the binding with no extra link.
	wantIR(t, ir, `
  %t1 = call ptr @new_int_val(i64 1)
  %t2 = call ptr @new_int_val(i64 2)
  call void @link_val(ptr %t1)
  call void @link_val(ptr %t2)
  %t3 = call ptr @add(ptr %t1, ptr %t2)
  store ptr %t3, ptr @g.r
`)

	wantNoIR(t, ir, `
  %t3 = call ptr @add(ptr %t1, ptr %t2)
  store ptr %t3, ptr @g.r
  call void @link_val(ptr %t3)
`)
}

func TestGenVoidFunctionImplicitReturn(t *testing.T) {
	ir := compileIR(t, "function f(): void { 1; }")

	wantIR(t, ir, `
define ptr @f() {
entry:
  %t1 = call ptr @new_int_val(i64 1)
  ret ptr null
}
`)
}

func TestGenDiscardedCallResultIsReleased(t *testing.T) {
	ir := compileIR(t, "function f(): number { return 1; } f();")

	wantIR(t, ir, `
  %t1 = call ptr @f()
  call void @unlink_val(ptr %t1)
`)
}

func TestGenMethodsAreFreeFunctions(t *testing.T) {
	ir := compileIR(t, "class Point { getX(): number { return 1; } } let p = new Point(); Point.getX(p);")

	wantIR(t, ir, "define ptr @Point_getX(ptr %p0)")
	wantIR(t, ir, `
  %this.slot = alloca ptr
  store ptr %p0, ptr %this.slot
`)
	wantIR(t, ir, "call ptr @new_object_val()")
	wantIR(t, ir, "call ptr @Point_getX(ptr")
}

func TestGenTypeOf(t *testing.T) {
	ir := compileIR(t, "let k = typeof 1;")

	wantIR(t, ir, `
  %t1 = call ptr @new_int_val(i64 1)
  call void @link_val(ptr %t1)
  %t2 = call ptr @val_get_type(ptr %t1)
  call void @unlink_val(ptr %t1)
`)
}

func TestGenBuiltinDecoratorCallsRuntimeDirectly(t *testing.T) {
	ir := compileIR(t, "@builtin declare function val_get_type(v: any): string; val_get_type(1);")

	wantIR(t, ir, `
  %t1 = call ptr @new_int_val(i64 1)
  %t2 = call ptr @val_get_type(ptr %t1)
`)

	wantNoIR(t, ir, "call void @link_val(ptr %t1)")
}

func TestGenExternDeclaration(t *testing.T) {
	ir := compileIR(t, "declare function compute(n: number, m: number): number; let r: number = compute(1, 2);")

	wantIR(t, ir, "declare ptr @compute(ptr, ptr)")
	wantIR(t, ir, "%t3 = call ptr @compute(ptr %t1, ptr %t2)")
}

func TestGenFloatLiteralUsesBitPattern(t *testing.T) {
	ir := compileIR(t, "let f = 1.5;")

	wantIR(t, ir, "call ptr @new_float_val(double 0x3FF8000000000000)")
}

func TestGenBoolAndNullLiterals(t *testing.T) {
	ir := compileIR(t, "let a = true; let b = false; let c = null;")

	wantIR(t, ir, "call ptr @new_bool_val(i1 1)")
	wantIR(t, ir, "call ptr @new_bool_val(i1 0)")
	wantIR(t, ir, "call ptr @new_null_val()")
}

func TestGenRestParameterMaterialization(t *testing.T) {
	ir := compileIR(t, "function f(first: number, ...rest: any[]): void { return; } f(1, 2, 3);")

	wantIR(t, ir, "define ptr @f(ptr %p0, ptr %p1)")
	wantIR(t, ir, `
  %t4 = call ptr @new_array_val(i64 2)
  call ptr @val_array_push(ptr %t4, ptr %t2)
  call ptr @val_array_push(ptr %t4, ptr %t3)
`)
}

func TestGenMissingOptionalArgsPassUndefined(t *testing.T) {
	ir := compileIR(t, "function f(a: number, b?: number): void { return; } f(1);")

	wantIR(t, ir, "call ptr @f(ptr %t1, ptr null)")
}

func TestGenIndexAssignment(t *testing.T) {
	ir := compileIR(t, "let xs = [1]; xs[0] = 2;")

	wantIR(t, ir, `
  %t3 = load ptr, ptr @g.xs
  %t4 = call ptr @new_int_val(i64 0)
  call void @link_val(ptr %t4)
  %t5 = call ptr @val_array_get(ptr %t3, ptr %t4)
  %t6 = call ptr @new_int_val(i64 2)
  call ptr @val_array_set(ptr %t3, ptr %t4, ptr %t6)
  call void @unlink_val(ptr %t4)
  call void @unlink_val(ptr %t5)
`)
}

func TestGenPropertyAssignment(t *testing.T) {
	ir := compileIR(t, "let o = { a: 1 }; o.a = 2;")

	wantIR(t, ir, `
  %t3 = load ptr, ptr @g.o
  %t4 = call ptr @val_object_get(ptr %t3, ptr @.str.0)
  %t5 = call ptr @new_int_val(i64 2)
  call ptr @val_object_set(ptr %t3, ptr @.str.0, ptr %t5)
  call void @unlink_val(ptr %t4)
`)
}

func TestGenMainDrainsGlobals(t *testing.T) {
	ir := compileIR(t, "let a = 1; let b = 2;")

	wantIR(t, ir, `
  %t3 = load ptr, ptr @g.a
  call void @unlink_val(ptr %t3)
  %t4 = load ptr, ptr @g.b
  call void @unlink_val(ptr %t4)
  ret i32 0
`)
}

func TestGenStringInterning(t *testing.T) {
	ir := compileIR(t, "let a = 'dup'; let b = 'dup';")

	if strings.Count(ir, `c"dup\00"`) != 1 {
		t.Error("identical string literals must share one constant")
	}
}

func TestGenStatementsAfterReturnAreDropped(t *testing.T) {
	ir := compileIR(t, "function f(): number { return 1; 2; }")

	wantNoIR(t, ir, "call ptr @new_int_val(i64 2)")
}
