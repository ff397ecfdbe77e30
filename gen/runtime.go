package gen

import "minic/common"

// The runtime ABI: every user-visible value is a ptr to a tagged,
// reference-counted box. Helpers taking two value pointers consume both
// inputs (free at refcount zero) after computing their result, so aliased
// operands are safe. val_array_get/val_array_set consume the boxed index;
// val_array_push, val_object_set, and val_array_set link the stored value.
var runtimeDecls = []string{
	"declare ptr @new_null_val()",
	"declare ptr @new_bool_val(i1)",
	"declare ptr @new_int_val(i64)",
	"declare ptr @new_float_val(double)",
	"declare ptr @new_str_val(ptr)",
	"declare ptr @new_array_val(i64)",
	"declare ptr @new_object_val()",
	"declare void @link_val(ptr)",
	"declare void @unlink_val(ptr)",
	"declare ptr @val_op_add(ptr, ptr)",
	"declare ptr @val_op_sub(ptr, ptr)",
	"declare ptr @val_op_mul(ptr, ptr)",
	"declare ptr @val_op_div(ptr, ptr)",
	"declare ptr @val_op_mod(ptr, ptr)",
	"declare ptr @val_op_eq(ptr, ptr)",
	"declare ptr @val_op_neq(ptr, ptr)",
	"declare ptr @val_op_seq(ptr, ptr)",
	"declare ptr @val_op_sneq(ptr, ptr)",
	"declare ptr @val_op_lt(ptr, ptr)",
	"declare ptr @val_op_lte(ptr, ptr)",
	"declare ptr @val_op_gt(ptr, ptr)",
	"declare ptr @val_op_gte(ptr, ptr)",
	"declare ptr @val_op_and(ptr, ptr)",
	"declare ptr @val_op_or(ptr, ptr)",
	"declare ptr @val_op_pos(ptr)",
	"declare ptr @val_op_neg(ptr)",
	"declare ptr @val_op_not(ptr)",
	"declare ptr @val_array_push(ptr, ptr)",
	"declare ptr @val_array_get(ptr, ptr)",
	"declare ptr @val_array_set(ptr, ptr, ptr)",
	"declare ptr @val_object_set(ptr, ptr, ptr)",
	"declare ptr @val_object_get(ptr, ptr)",
	"declare ptr @val_get_type(ptr)",
	"declare ptr @echo(ptr)",
}

// runtimeNames guards against re-declaring a runtime symbol for a
// user-written declare-function of the same name.
var runtimeNames = map[string]bool{
	"new_null_val":   true,
	"new_bool_val":   true,
	"new_int_val":    true,
	"new_float_val":  true,
	"new_str_val":    true,
	"new_array_val":  true,
	"new_object_val": true,
	"link_val":       true,
	"unlink_val":     true,
	"val_op_add":     true,
	"val_op_sub":     true,
	"val_op_mul":     true,
	"val_op_div":     true,
	"val_op_mod":     true,
	"val_op_eq":      true,
	"val_op_neq":     true,
	"val_op_seq":     true,
	"val_op_sneq":    true,
	"val_op_lt":      true,
	"val_op_lte":     true,
	"val_op_gt":      true,
	"val_op_gte":     true,
	"val_op_and":     true,
	"val_op_or":      true,
	"val_op_pos":     true,
	"val_op_neg":     true,
	"val_op_not":     true,
	"val_array_push": true,
	"val_array_get":  true,
	"val_array_set":  true,
	"val_object_set": true,
	"val_object_get": true,
	"val_get_type":   true,
	"echo":           true,
}

var binaryOpFuncs = map[common.AstOpKind]string{
	common.AOP_ADD:  "val_op_add",
	common.AOP_SUB:  "val_op_sub",
	common.AOP_MUL:  "val_op_mul",
	common.AOP_DIV:  "val_op_div",
	common.AOP_MOD:  "val_op_mod",
	common.AOP_EQ:   "val_op_eq",
	common.AOP_NEQ:  "val_op_neq",
	common.AOP_SEQ:  "val_op_seq",
	common.AOP_SNEQ: "val_op_sneq",
	common.AOP_LT:   "val_op_lt",
	common.AOP_LTE:  "val_op_lte",
	common.AOP_GT:   "val_op_gt",
	common.AOP_GTE:  "val_op_gte",
	common.AOP_AND:  "val_op_and",
	common.AOP_OR:   "val_op_or",
}

var unaryOpFuncs = map[common.AstOpKind]string{
	common.AOP_POS: "val_op_pos",
	common.AOP_NEG: "val_op_neg",
	common.AOP_NOT: "val_op_not",
}
