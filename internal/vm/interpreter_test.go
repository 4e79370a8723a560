package vm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
)

const testThread ThreadID = 7

func run(t *testing.T, src string, args ...Value) (Value, error) {
	t.Helper()

	return NewInterpreter().Call(context.Background(), testThread, NewFunction(bytecode.MustAssemble(src)), args...)
}

func TestInterpreter_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		a, b     Value
		expected Value
	}{
		{name: "int add", op: "BINARY_ADD", a: int64(2), b: int64(3), expected: int64(5)},
		{name: "mixed add", op: "BINARY_ADD", a: int64(2), b: 0.5, expected: 2.5},
		{name: "string concat", op: "BINARY_ADD", a: "ab", b: "cd", expected: "abcd"},
		{name: "subtract", op: "BINARY_SUBTRACT", a: int64(2), b: int64(5), expected: int64(-3)},
		{name: "multiply", op: "BINARY_MULTIPLY", a: int64(4), b: int64(-2), expected: int64(-8)},
		{name: "floor modulo", op: "BINARY_MODULO", a: int64(-7), b: int64(3), expected: int64(2)},
		{name: "bool counts as int", op: "BINARY_ADD", a: true, b: int64(1), expected: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := run(t, "func f(a, b)\n  LOAD_FAST a\n  LOAD_FAST b\n  "+tt.op+"\n  RETURN_VALUE\nend\n", tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestInterpreter_RaisedExceptions(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		args     []Value
		expected *ExceptionType
	}{
		{
			name:     "modulo by zero",
			src:      "func f(a, b)\n  LOAD_FAST a\n  LOAD_FAST b\n  BINARY_MODULO\n  RETURN_VALUE\nend\n",
			args:     []Value{int64(1), int64(0)},
			expected: ZeroDivisionError,
		},
		{
			name:     "bad operands",
			src:      "func f(a, b)\n  LOAD_FAST a\n  LOAD_FAST b\n  BINARY_SUBTRACT\n  RETURN_VALUE\nend\n",
			args:     []Value{"a", int64(1)},
			expected: TypeError,
		},
		{
			name:     "undefined global",
			src:      "func f()\n  LOAD_GLOBAL missing\n  RETURN_VALUE\nend\n",
			expected: NameError,
		},
		{
			name:     "wrong arity",
			src:      "func f(a)\n  LOAD_FAST a\n  RETURN_VALUE\nend\n",
			expected: TypeError,
		},
		{
			name:     "raise exception type",
			src:      "func f()\n  LOAD_GLOBAL ValueError\n  RAISE_VARARGS 1\nend\n",
			expected: ValueError,
		},
		{
			name:     "raise non exception",
			src:      "func f()\n  LOAD_CONST 1\n  RAISE_VARARGS 1\nend\n",
			expected: TypeError,
		},
		{
			name:     "unknown string method",
			src:      "func f()\n  LOAD_CONST \"x\"\n  LOAD_METHOD shout\n  CALL_METHOD 0\n  RETURN_VALUE\nend\n",
			expected: AttributeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.src, tt.args...)

			var exc *Exception
			require.ErrorAs(t, err, &exc)
			assert.Equal(t, tt.expected, exc.Type)
		})
	}
}

func TestInterpreter_MachineFaults(t *testing.T) {
	_, err := run(t, "func f()\n  POP_TOP\n  RETURN_VALUE\nend\n")
	require.ErrorIs(t, err, ErrStackUnderflow)

	_, err = run(t, "func f()\n  NOP\nend\n")
	require.ErrorIs(t, err, ErrFellOffEnd)

	_, err = run(t, "func f()\n  LOAD_CONST 1\n  MAKE_FUNCTION 0\n  RETURN_VALUE\nend\n")
	require.ErrorIs(t, err, ErrBadConstant)
}

func TestInterpreter_ForLoopOverRange(t *testing.T) {
	res, err := run(t, `
func sum(n)
  LOAD_CONST 0
  STORE_FAST total
  LOAD_GLOBAL range
  LOAD_FAST n
  CALL_FUNCTION 1
  GET_ITER
head:
  FOR_ITER done
  LOAD_FAST total
  BINARY_ADD
  STORE_FAST total
  JUMP_ABSOLUTE head
done:
  LOAD_FAST total
  RETURN_VALUE
end
`, int64(5))
	require.NoError(t, err)
	assert.Equal(t, int64(10), res)
}

func TestInterpreter_ListsAndLen(t *testing.T) {
	res, err := run(t, `
func f(s)
  BUILD_LIST 0
  LOAD_FAST s
  GET_ITER
head:
  FOR_ITER done
  LIST_APPEND 2
  JUMP_ABSOLUTE head
done:
  DUP_TOP
  STORE_FAST out
  LOAD_GLOBAL len
  ROT_TWO
  CALL_FUNCTION 1
  LOAD_FAST out
  BUILD_LIST 2
  RETURN_VALUE
end
`, "héy")
	require.NoError(t, err)
	assert.Equal(t, NewList(int64(3), NewList("h", "é", "y")), res)
}

func TestInterpreter_ExceptionHandler(t *testing.T) {
	src := `
func guard(x)
  SETUP_FINALLY handler
  LOAD_FAST x
  RAISE_VARARGS 1
handler:
  DUP_TOP
  LOAD_GLOBAL ArithmeticError
  JUMP_IF_NOT_EXC_MATCH reraise
  POP_TOP
  LOAD_CONST "handled"
  RETURN_VALUE
reraise:
  RERAISE
end
`

	res, err := run(t, src, NewException(ZeroDivisionError, "x"))
	require.NoError(t, err)
	assert.Equal(t, "handled", res)

	raised := NewException(ValueError, "y")
	_, err = run(t, src, raised)
	require.ErrorIs(t, err, raised)
}

func TestInterpreter_ClosureBinding(t *testing.T) {
	units, err := bytecode.AssembleModule(`
func outer(a)
  LOAD_FAST a
  LOAD_CONST func:inner
  MAKE_FUNCTION 1
  LOAD_CONST 10
  CALL_FUNCTION 1
  RETURN_VALUE
end

func inner(x, y)
  LOAD_FAST x
  LOAD_FAST y
  BINARY_SUBTRACT
  RETURN_VALUE
end
`)
	require.NoError(t, err)

	res, err := NewInterpreter().Call(context.Background(), testThread, NewFunction(units[0]), int64(3))
	require.NoError(t, err)
	assert.Equal(t, int64(-7), res)
}

func TestInterpreter_BuiltinSeesThread(t *testing.T) {
	var seen ThreadID

	interp := NewInterpreter()
	interp.Globals["probe"] = NewBuiltin("probe", func(th *Thread, _ []Value) (Value, error) {
		seen = th.ID()

		return nil, nil
	})

	unit := bytecode.MustAssemble("func f()\n  LOAD_GLOBAL probe\n  CALL_FUNCTION 0\n  RETURN_VALUE\nend\n")

	_, err := interp.Call(context.Background(), testThread, NewFunction(unit))
	require.NoError(t, err)
	assert.Equal(t, testThread, seen)
}

func TestInterpreter_Recursion(t *testing.T) {
	interp := NewInterpreter()
	unit := bytecode.MustAssemble("func f()\n  LOAD_GLOBAL f\n  CALL_FUNCTION 0\n  RETURN_VALUE\nend\n")
	interp.Globals["f"] = NewFunction(unit)

	_, err := interp.Call(context.Background(), testThread, interp.Globals["f"])

	var exc *Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, RecursionError, exc.Type)
}

func TestInterpreter_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	unit := bytecode.MustAssemble("func spin()\ntop:\n  JUMP_ABSOLUTE top\nend\n")

	_, err := NewInterpreter().Call(ctx, testThread, NewFunction(unit))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExceptionMatches(t *testing.T) {
	tests := []struct {
		name     string
		raised   Value
		expected Value
		matches  bool
	}{
		{name: "same type", raised: NewException(ValueError, ""), expected: ValueError, matches: true},
		{name: "subtype", raised: NewException(ZeroDivisionError, ""), expected: ExceptionBase, matches: true},
		{name: "supertype", raised: NewException(ArithmeticError, ""), expected: ZeroDivisionError},
		{name: "bare type", raised: IndexError, expected: LookupError, matches: true},
		{name: "tuple of types", raised: NewException(TypeError, ""), expected: NewList(ValueError, TypeError), matches: true},
		{name: "not an exception", raised: "x", expected: ValueError},
		{name: "not a type", raised: NewException(ValueError, ""), expected: "ValueError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, ExceptionMatches(tt.raised, tt.expected))
		})
	}
}
