package kinds

import "testing"

func TestEqualStructural(t *testing.T) {
	a := &ArrayKind{ElemKind: GlobNumberKind}
	b := &ArrayKind{ElemKind: &NumberKind{}}

	if !Equal(a, b) {
		t.Error("array kinds with equal element kinds must be equal")
	}

	if Equal(a, &ArrayKind{ElemKind: GlobStringKind}) {
		t.Error("array kinds with different element kinds must differ")
	}

	if Equal(GlobNumberKind, GlobFloatKind) {
		t.Error("number and float are distinct kinds")
	}
}

func TestEqualObjectFieldsOrdered(t *testing.T) {
	a := &ObjectKind{Fields: []ObjectField{{"a", GlobNumberKind}, {"b", GlobStringKind}}}
	b := &ObjectKind{Fields: []ObjectField{{"a", GlobNumberKind}, {"b", GlobStringKind}}}
	c := &ObjectKind{Fields: []ObjectField{{"b", GlobStringKind}, {"a", GlobNumberKind}}}

	if !Equal(a, b) {
		t.Error("identical object kinds must be equal")
	}

	if Equal(a, c) {
		t.Error("object kinds compare fields in insertion order")
	}
}

func TestCompatible(t *testing.T) {
	cases := []struct {
		expected, actual Kind
		want             bool
	}{
		{GlobAnyKind, GlobStringKind, true},
		{GlobStringKind, GlobAnyKind, true},
		{GlobFloatKind, GlobNumberKind, true},
		{GlobNumberKind, GlobFloatKind, false},
		{GlobStringKind, GlobNumberKind, false},
		{GlobNumberKind, GlobNumberKind, true},
	}

	for _, tc := range cases {
		if got := Compatible(tc.expected, tc.actual); got != tc.want {
			t.Errorf("Compatible(%T, %T) = %v, want %v", tc.expected, tc.actual, got, tc.want)
		}
	}
}

func TestFuncKindArity(t *testing.T) {
	fk := &FuncKind{
		Params: []ParamKind{
			{Kind: GlobNumberKind},
			{Kind: GlobStringKind, Optional: true},
			{Kind: &ArrayKind{ElemKind: GlobAnyKind}, Rest: true},
		},
		ReturnKind: GlobUndefinedKind,
	}

	if fk.RequiredCount() != 1 {
		t.Errorf("expected 1 required parameter, got %d", fk.RequiredCount())
	}

	rest := fk.RestParam()
	if rest == nil || !rest.Rest {
		t.Fatal("expected a rest parameter")
	}

	noRest := &FuncKind{Params: []ParamKind{{Kind: GlobNumberKind}}, ReturnKind: GlobAnyKind}
	if noRest.RestParam() != nil {
		t.Error("expected no rest parameter")
	}
}
