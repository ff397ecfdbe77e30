package kinds

// Equal reports structural kind identity. Object kinds compare fields in
// order; function kinds compare parameter shapes and return kinds.
func Equal(a, b Kind) bool {
	switch v := a.(type) {
	case *AnyKind:
		_, ok := b.(*AnyKind)
		return ok
	case *UndefinedKind:
		_, ok := b.(*UndefinedKind)
		return ok
	case *NullKind:
		_, ok := b.(*NullKind)
		return ok
	case *BoolKind:
		_, ok := b.(*BoolKind)
		return ok
	case *NumberKind:
		_, ok := b.(*NumberKind)
		return ok
	case *FloatKind:
		_, ok := b.(*FloatKind)
		return ok
	case *StringKind:
		_, ok := b.(*StringKind)
		return ok
	case *ArrayKind:
		if barr, ok := b.(*ArrayKind); ok {
			return Equal(v.ElemKind, barr.ElemKind)
		}
	case *ObjectKind:
		if bobj, ok := b.(*ObjectKind); ok {
			if len(v.Fields) != len(bobj.Fields) {
				return false
			}

			for i, field := range v.Fields {
				if field.Name != bobj.Fields[i].Name || !Equal(field.Kind, bobj.Fields[i].Kind) {
					return false
				}
			}

			return true
		}
	case *FuncKind:
		if bfn, ok := b.(*FuncKind); ok {
			if len(v.Params) != len(bfn.Params) {
				return false
			}

			for i, param := range v.Params {
				bparam := bfn.Params[i]
				if param.Optional != bparam.Optional || param.Rest != bparam.Rest {
					return false
				}

				if !Equal(param.Kind, bparam.Kind) {
					return false
				}
			}

			return Equal(v.ReturnKind, bfn.ReturnKind)
		}
	case *ClassKind:
		_, ok := b.(*ClassKind)
		return ok
	}

	return false
}

// Compatible reports whether a value of kind `actual` may flow into a slot
// expecting `expected`. Any absorbs everything in both directions; integers
// widen to floats; array kinds compare their element kinds by these same
// rules; otherwise kinds must match structurally.
func Compatible(expected, actual Kind) bool {
	if IsAny(expected) || IsAny(actual) {
		return true
	}

	if earr, ok := expected.(*ArrayKind); ok {
		if aarr, ok := actual.(*ArrayKind); ok {
			return Compatible(earr.ElemKind, aarr.ElemKind)
		}
	}

	if _, ok := expected.(*FloatKind); ok {
		if _, ok := actual.(*NumberKind); ok {
			return true
		}
	}

	return Equal(expected, actual)
}
