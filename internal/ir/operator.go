package ir

import "fmt"

// Operator is the operator of a BinaryExpr.
type Operator uint8

const (
	OpEq Operator = iota
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpTrueDivide
	OpModulus
	OpAnd
	OpOr
	OpNot
	OpLike
	OpNotLike
)

var operatorSymbols = [...]string{
	OpEq:         "==",
	OpNotEq:      "!=",
	OpLt:         "<",
	OpLtEq:       "<=",
	OpGt:         ">",
	OpGtEq:       ">=",
	OpPlus:       "+",
	OpMinus:      "-",
	OpMultiply:   "*",
	OpDivide:     "//",
	OpTrueDivide: "/",
	OpModulus:    "%",
	OpAnd:        "&",
	OpOr:         "|",
	OpNot:        "!",
	OpLike:       "like",
	OpNotLike:    "not like",
}

func (op Operator) String() string {
	if int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// ParseOperator maps an operator symbol back to the Operator.
func ParseOperator(s string) (Operator, bool) {
	for op, sym := range operatorSymbols {
		if sym == s {
			return Operator(op), true
		}
	}
	return 0, false
}

// IsComparison reports whether op yields a boolean from two operands of the
// same type.
func (op Operator) IsComparison() bool {
	return op <= OpGtEq
}

// JoinType selects the join semantics of a Join plan.
type JoinType uint8

const (
	JoinLeft JoinType = iota
	JoinInner
	JoinOuter
)

func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "left"
	case JoinInner:
		return "inner"
	case JoinOuter:
		return "outer"
	default:
		return fmt.Sprintf("join(%d)", uint8(j))
	}
}

// ParseJoinType maps a name produced by JoinType.String back to the type.
func ParseJoinType(s string) (JoinType, bool) {
	for _, j := range []JoinType{JoinLeft, JoinInner, JoinOuter} {
		if j.String() == s {
			return j, true
		}
	}
	return 0, false
}
