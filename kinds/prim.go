package kinds

var (
	GlobAnyKind       Kind = &AnyKind{}
	GlobUndefinedKind Kind = &UndefinedKind{}
	GlobNullKind      Kind = &NullKind{}
	GlobBoolKind      Kind = &BoolKind{}
	GlobNumberKind    Kind = &NumberKind{}
	GlobFloatKind     Kind = &FloatKind{}
	GlobStringKind    Kind = &StringKind{}
)

/* -------------------------------------------------------------------------- */

func IsAny(k Kind) bool {
	_, ok := k.(*AnyKind)
	return ok
}

func IsNumeric(k Kind) bool {
	switch k.(type) {
	case *NumberKind, *FloatKind, *AnyKind:
		return true
	default:
		return false
	}
}

func IsBool(k Kind) bool {
	switch k.(type) {
	case *BoolKind, *AnyKind:
		return true
	default:
		return false
	}
}
