package vm

import (
	"math"
	"strings"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
)

// AsNumber converts int64, float64 and bool to float64.
func AsNumber(v Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// Equal implements value equality: numerically across numbers, element-wise
// for lists and by identity otherwise.
func Equal(a, b Value) bool {
	if fa, ok := AsNumber(a); ok {
		if fb, ok := AsNumber(b); ok {
			return fa == fb
		}

		return false
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)

		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}

		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}

		return true
	}

	return a == b
}

// Compare evaluates a COMPARE_OP.
func Compare(op bytecode.CompareOp, a, b Value) (bool, error) {
	switch op {
	case bytecode.CompareEQ:
		return Equal(a, b), nil
	case bytecode.CompareNE:
		return !Equal(a, b), nil
	case bytecode.CompareIs:
		return a == b, nil
	case bytecode.CompareIsNot:
		return a != b, nil
	case bytecode.CompareIn, bytecode.CompareNotIn:
		in, err := contains(b, a)
		if err != nil {
			return false, err
		}

		return in == (op == bytecode.CompareIn), nil
	}

	if fa, ok := AsNumber(a); ok {
		if fb, ok := AsNumber(b); ok {
			return compareFloats(op, fa, fb)
		}
	}

	c, err := order(op, a, b)
	if err != nil {
		return false, err
	}

	switch op {
	case bytecode.CompareLT:
		return c < 0, nil
	case bytecode.CompareLE:
		return c <= 0, nil
	case bytecode.CompareGT:
		return c > 0, nil
	case bytecode.CompareGE:
		return c >= 0, nil
	}

	return false, NewException(TypeError, "unsupported comparison %s", op)
}

// compareFloats keeps IEEE semantics: every ordering involving NaN is false.
func compareFloats(op bytecode.CompareOp, a, b float64) (bool, error) {
	switch op {
	case bytecode.CompareLT:
		return a < b, nil
	case bytecode.CompareLE:
		return a <= b, nil
	case bytecode.CompareGT:
		return a > b, nil
	case bytecode.CompareGE:
		return a >= b, nil
	}

	return false, NewException(TypeError, "unsupported comparison %s", op)
}

func order(op bytecode.CompareOp, a, b Value) (int, error) {
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb), nil
		}
	}

	return 0, NewException(TypeError, "'%s' not supported between instances of '%s' and '%s'", op, TypeName(a), TypeName(b))
}

func contains(container, item Value) (bool, error) {
	switch c := container.(type) {
	case string:
		s, ok := item.(string)
		if !ok {
			return false, NewException(TypeError, "'in <string>' requires string as left operand, not %s", TypeName(item))
		}

		return strings.Contains(c, s), nil
	case *List:
		for _, v := range c.Items {
			if Equal(v, item) {
				return true, nil
			}
		}

		return false, nil
	}

	return false, NewException(TypeError, "argument of type '%s' is not iterable", TypeName(container))
}

func binaryOp(op bytecode.Opcode, a, b Value) (Value, error) {
	ia, aInt := a.(int64)
	ib, bInt := b.(int64)

	if aInt && bInt {
		switch op {
		case bytecode.BINARY_ADD:
			return ia + ib, nil
		case bytecode.BINARY_SUBTRACT:
			return ia - ib, nil
		case bytecode.BINARY_MULTIPLY:
			return ia * ib, nil
		case bytecode.BINARY_MODULO:
			if ib == 0 {
				return nil, NewException(ZeroDivisionError, "integer modulo by zero")
			}

			m := ia % ib
			if m != 0 && (m < 0) != (ib < 0) {
				m += ib
			}

			return m, nil
		}
	}

	if fa, ok := AsNumber(a); ok {
		if fb, ok := AsNumber(b); ok {
			switch op {
			case bytecode.BINARY_ADD:
				return fa + fb, nil
			case bytecode.BINARY_SUBTRACT:
				return fa - fb, nil
			case bytecode.BINARY_MULTIPLY:
				return fa * fb, nil
			case bytecode.BINARY_MODULO:
				if fb == 0 {
					return nil, NewException(ZeroDivisionError, "float modulo")
				}

				return fa - fb*math.Floor(fa/fb), nil
			}
		}
	}

	if op == bytecode.BINARY_ADD {
		switch x := a.(type) {
		case string:
			if y, ok := b.(string); ok {
				return x + y, nil
			}
		case *List:
			if y, ok := b.(*List); ok {
				items := append(append([]Value(nil), x.Items...), y.Items...)

				return NewList(items...), nil
			}
		}
	}

	return nil, NewException(TypeError, "unsupported operand type(s) for %s: '%s' and '%s'", op, TypeName(a), TypeName(b))
}

func iterate(v Value) (Iterator, error) {
	switch x := v.(type) {
	case Iterator:
		return x, nil
	case *List:
		return &sliceIterator{items: append([]Value(nil), x.Items...)}, nil
	case string:
		items := make([]Value, 0, len(x))
		for _, r := range x {
			items = append(items, string(r))
		}

		return &sliceIterator{items: items}, nil
	}

	return nil, NewException(TypeError, "'%s' object is not iterable", TypeName(v))
}
