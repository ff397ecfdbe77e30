package walk

import (
	"minic/common"
	"minic/kinds"
	"minic/report"
)

// checkBinaryOp computes the result kind of a binary operator application.
// Any propagates as Any; integers and floats mix to float; `+` also
// concatenates strings; `%` is integer-only.
func (w *Walker) checkBinaryOp(op common.AstOpKind, lhs, rhs common.AstExpr, span *report.TextSpan) kinds.Kind {
	lk := lhs.GetKind()
	rk := rhs.GetKind()

	switch op {
	case common.AOP_ADD:
		if isString(lk) && isString(rk) {
			if kinds.IsAny(lk) || kinds.IsAny(rk) {
				return kinds.GlobAnyKind
			}

			return kinds.GlobStringKind
		}

		if result := arithResult(lk, rk); result != nil {
			return result
		}
	case common.AOP_SUB, common.AOP_MUL, common.AOP_DIV:
		if result := arithResult(lk, rk); result != nil {
			return result
		}
	case common.AOP_MOD:
		if isInteger(lk) && isInteger(rk) {
			if kinds.IsAny(lk) || kinds.IsAny(rk) {
				return kinds.GlobAnyKind
			}

			return kinds.GlobNumberKind
		}
	case common.AOP_LT, common.AOP_LTE, common.AOP_GT, common.AOP_GTE:
		if kinds.IsNumeric(lk) && kinds.IsNumeric(rk) {
			return kinds.GlobBoolKind
		}
	case common.AOP_EQ, common.AOP_NEQ:
		if kinds.Equal(lk, rk) || kinds.IsAny(lk) || kinds.IsAny(rk) {
			return kinds.GlobBoolKind
		}

		// Numeric cross-type comparison promotes at runtime.
		if kinds.IsNumeric(lk) && kinds.IsNumeric(rk) {
			return kinds.GlobBoolKind
		}
	case common.AOP_SEQ, common.AOP_SNEQ:
		// Strict comparison is defined for every pair of tags; mismatched
		// tags compare unequal at runtime without examining payloads.
		return kinds.GlobBoolKind
	case common.AOP_AND, common.AOP_OR:
		if kinds.IsBool(lk) && kinds.IsBool(rk) {
			return kinds.GlobBoolKind
		}
	}

	w.kindError(span, "cannot apply '%s' to %s and %s", op, lk, rk)
	return nil
}

func (w *Walker) checkUnaryOp(op common.AstOpKind, operand common.AstExpr) kinds.Kind {
	kind := operand.GetKind()

	switch op {
	case common.AOP_POS, common.AOP_NEG:
		if kinds.IsNumeric(kind) {
			return kind
		}
	case common.AOP_NOT:
		if kinds.IsBool(kind) {
			return kinds.GlobBoolKind
		}
	}

	w.kindError(operand.GetSpan(), "cannot apply '%s' to %s", op, kind)
	return nil
}

/* -------------------------------------------------------------------------- */

// arithResult implements the numeric promotion lattice: integer with
// integer stays integer, any float operand floats the result, and Any wins
// over both. Returns nil when an operand is not numeric.
func arithResult(lk, rk kinds.Kind) kinds.Kind {
	if !kinds.IsNumeric(lk) || !kinds.IsNumeric(rk) {
		return nil
	}

	if kinds.IsAny(lk) || kinds.IsAny(rk) {
		return kinds.GlobAnyKind
	}

	if isFloat(lk) || isFloat(rk) {
		return kinds.GlobFloatKind
	}

	return kinds.GlobNumberKind
}

func isString(k kinds.Kind) bool {
	switch k.(type) {
	case *kinds.StringKind, *kinds.AnyKind:
		return true
	default:
		return false
	}
}

func isInteger(k kinds.Kind) bool {
	switch k.(type) {
	case *kinds.NumberKind, *kinds.AnyKind:
		return true
	default:
		return false
	}
}

func isFloat(k kinds.Kind) bool {
	_, ok := k.(*kinds.FloatKind)
	return ok
}
