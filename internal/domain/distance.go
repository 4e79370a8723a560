package domain

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// CompareDistances returns the distances of lhs op rhs to evaluating true and
// to evaluating false. The distance of the outcome actually taken is 0.
// Comparisons involving NaN only report the outcome the machine took.
func CompareDistances(op bytecode.CompareOp, lhs, rhs any) (float64, float64) {
	switch op {
	case bytecode.CompareEQ, bytecode.CompareNE, bytecode.CompareLT,
		bytecode.CompareLE, bytecode.CompareGT, bytecode.CompareGE:
		if a, ok := vm.AsNumber(lhs); ok {
			if b, ok := vm.AsNumber(rhs); ok && !math.IsNaN(a) && !math.IsNaN(b) {
				return orderedDistances(op, compareNumbers(a, b), numberGap(a, b))
			}
		}

		if a, ok := lhs.(string); ok {
			if b, ok := rhs.(string); ok {
				return stringDistances(op, a, b)
			}
		}
	}

	taken, err := vm.Compare(op, lhs, rhs)
	if err != nil {
		return math.Inf(1), math.Inf(1)
	}

	return outcomeDistances(taken)
}

// BoolDistances returns 0/1 distances for a truthiness test.
func BoolDistances(value any) (float64, float64) {
	if vm.Truthy(value) {
		return 0, 1
	}

	return 1, 0
}

// ExceptionDistances returns 0/1 distances for an exception type match.
func ExceptionDistances(raised, expected any) (float64, float64) {
	if vm.ExceptionMatches(raised, expected) {
		return 0, 1
	}

	return 1, 0
}

func outcomeDistances(taken bool) (float64, float64) {
	if taken {
		return 0, math.Inf(1)
	}

	return math.Inf(1), 0
}

func compareNumbers(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// numberGap is |a-b|, and 0 for equal infinities.
func numberGap(a, b float64) float64 {
	if a == b {
		return 0
	}

	return math.Abs(a - b)
}

// orderedDistances maps the sign and magnitude of a difference to distances.
// The strict side of an ordering adds one so that crossing the boundary is
// still a positive distance.
func orderedDistances(op bytecode.CompareOp, cmp int, gap float64) (float64, float64) {
	switch op {
	case bytecode.CompareEQ:
		if cmp == 0 {
			return 0, 1
		}

		return gap, 0
	case bytecode.CompareNE:
		if cmp == 0 {
			return 1, 0
		}

		return 0, gap
	case bytecode.CompareLT:
		if cmp < 0 {
			return 0, gap
		}

		return gap + 1, 0
	case bytecode.CompareLE:
		if cmp <= 0 {
			return 0, gap + 1
		}

		return gap, 0
	case bytecode.CompareGT:
		if cmp > 0 {
			return 0, gap
		}

		return gap + 1, 0
	case bytecode.CompareGE:
		if cmp >= 0 {
			return 0, gap + 1
		}

		return gap, 0
	}

	return math.Inf(1), math.Inf(1)
}

func stringDistances(op bytecode.CompareOp, a, b string) (float64, float64) {
	cmp := strings.Compare(a, b)

	if op == bytecode.CompareEQ || op == bytecode.CompareNE {
		return orderedDistances(op, cmp, float64(levenshtein.ComputeDistance(a, b)))
	}

	return orderedDistances(op, cmp, lexicalGap(a, b))
}

// lexicalGap is the code point difference at the first differing rune, or the
// length difference when one string is a prefix of the other.
func lexicalGap(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)

	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] != rb[i] {
			return math.Abs(float64(ra[i]) - float64(rb[i]))
		}
	}

	return math.Abs(float64(len(ra) - len(rb)))
}
