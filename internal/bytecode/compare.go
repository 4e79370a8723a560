package bytecode

import "fmt"

// CompareOp is the argument of COMPARE_OP.
type CompareOp int

// Comparison operators.
const (
	CompareLT CompareOp = iota
	CompareLE
	CompareEQ
	CompareNE
	CompareGT
	CompareGE
	CompareIn
	CompareNotIn
	CompareIs
	CompareIsNot
)

var compareSymbols = map[CompareOp]string{
	CompareLT:    "<",
	CompareLE:    "<=",
	CompareEQ:    "==",
	CompareNE:    "!=",
	CompareGT:    ">",
	CompareGE:    ">=",
	CompareIn:    "in",
	CompareNotIn: "not_in",
	CompareIs:    "is",
	CompareIsNot: "is_not",
}

// CompareOps lists every comparison operator in argument order.
func CompareOps() []CompareOp {
	return []CompareOp{
		CompareLT, CompareLE, CompareEQ, CompareNE, CompareGT,
		CompareGE, CompareIn, CompareNotIn, CompareIs, CompareIsNot,
	}
}

// ParseCompareOp resolves an operator symbol such as "<=" or "not_in".
func ParseCompareOp(symbol string) (CompareOp, bool) {
	for op, s := range compareSymbols {
		if s == symbol {
			return op, true
		}
	}

	return 0, false
}

func (c CompareOp) String() string {
	if s, ok := compareSymbols[c]; ok {
		return s
	}

	return fmt.Sprintf("CompareOp(%d)", int(c))
}
