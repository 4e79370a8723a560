package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pickSource = `
# picks a or b
func pick(a, b) @pick.cov:10
  .line 11
  LOAD_FAST a
  LOAD_FAST b
  COMPARE_OP <=   # inline comment
  POP_JUMP_IF_FALSE other
  .line 12
  LOAD_CONST "a#b"
  RETURN_VALUE
other:
  .line 13
  LOAD_CONST 2.5
  RETURN_VALUE
end
`

func TestAssemble(t *testing.T) {
	unit, err := Assemble(pickSource)
	require.NoError(t, err)

	assert.Equal(t, "pick", unit.Name)
	assert.Equal(t, "pick.cov", unit.Filename)
	assert.Equal(t, 10, unit.FirstLine)
	assert.Equal(t, []string{"a", "b"}, unit.Params)
	assert.Equal(t, []string{"a", "b"}, unit.Locals)
	assert.Equal(t, []any{"a#b", 2.5}, unit.Consts)
	assert.False(t, unit.Instrumented)

	assert.Equal(t, []Instr{
		{Op: LOAD_FAST, Arg: 0, Line: 11},
		{Op: LOAD_FAST, Arg: 1, Line: 11},
		{Op: COMPARE_OP, Arg: int(CompareLE), Line: 11},
		{Op: POP_JUMP_IF_FALSE, Arg: 6, Line: 11},
		{Op: LOAD_CONST, Arg: 0, Line: 12},
		{Op: RETURN_VALUE, Line: 12},
		{Op: LOAD_CONST, Arg: 1, Line: 13},
		{Op: RETURN_VALUE, Line: 13},
	}, unit.Code)
}

func TestAssemble_Literals(t *testing.T) {
	tests := []struct {
		literal  string
		expected any
	}{
		{literal: "None", expected: nil},
		{literal: "True", expected: true},
		{literal: "false", expected: false},
		{literal: "-7", expected: int64(-7)},
		{literal: "1e3", expected: 1000.0},
		{literal: `"tab\there"`, expected: "tab\there"},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			unit, err := Assemble("func f()\n  LOAD_CONST " + tt.literal + "\n  RETURN_VALUE\nend\n")
			require.NoError(t, err)
			assert.Equal(t, []any{tt.expected}, unit.Consts)
		})
	}
}

func TestAssemble_LocalsAndNamesAreInterned(t *testing.T) {
	unit, err := Assemble(`
func f(a)
  STORE_FAST tmp
  LOAD_FAST tmp
  LOAD_FAST a
  LOAD_GLOBAL len
  LOAD_GLOBAL len
  LOAD_METHOD upper
  RETURN_VALUE
end
`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "tmp"}, unit.Locals)
	assert.Equal(t, []string{"len", "upper"}, unit.Names)
	assert.Equal(t, 1, unit.Code[0].Arg)
	assert.Equal(t, 0, unit.Code[2].Arg)
	assert.Equal(t, 0, unit.Code[4].Arg)
	assert.Equal(t, 1, unit.Code[5].Arg)
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{name: "empty", src: "# nothing\n", expected: ErrSyntax},
		{name: "missing header", src: "LOAD_CONST 1\n", expected: ErrSyntax},
		{name: "missing end", src: "func f()\n  NOP\n", expected: ErrSyntax},
		{name: "unknown opcode", src: "func f()\n  FLY\nend\n", expected: ErrUnknownOpcode},
		{name: "missing operand", src: "func f()\n  LOAD_CONST\nend\n", expected: ErrSyntax},
		{name: "unexpected operand", src: "func f()\n  NOP 3\nend\n", expected: ErrSyntax},
		{name: "undefined label", src: "func f()\n  JUMP_ABSOLUTE nowhere\nend\n", expected: ErrUndefinedLabel},
		{name: "duplicate label", src: "func f()\nx:\nx:\n  NOP\nend\n", expected: ErrSyntax},
		{name: "bad compare", src: "func f()\n  COMPARE_OP <>\nend\n", expected: ErrSyntax},
		{name: "bad literal", src: "func f()\n  LOAD_CONST nope\nend\n", expected: ErrSyntax},
		{name: "bad count", src: "func f()\n  CALL_FUNCTION x\nend\n", expected: ErrSyntax},
		{name: "bad line", src: "func f()\n  .line x\nend\n", expected: ErrSyntax},
		{name: "bad location", src: "func f() pick.cov\nend\n", expected: ErrSyntax},
		{name: "duplicate function", src: "func f()\nend\nfunc f()\nend\n", expected: ErrSyntax},
		{name: "undefined function", src: "func f()\n  LOAD_CONST func:g\nend\n", expected: ErrUndefinedFunc},
		{name: "self nesting", src: "func f()\n  LOAD_CONST func:f\nend\n", expected: ErrRecursiveNested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.src)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestAssembleModule_RootsAndNestedUnits(t *testing.T) {
	units, err := AssembleModule(`
func helper(x)
  LOAD_FAST x
  RETURN_VALUE
end

func main(a)
  LOAD_CONST func:helper
  LOAD_FAST a
  CALL_FUNCTION 1
  RETURN_VALUE
end

func other()
  LOAD_CONST None
  RETURN_VALUE
end
`)
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, "main", units[0].Name)
	assert.Equal(t, "other", units[1].Name)

	nested := units[0].Nested()
	require.Len(t, nested, 1)
	assert.Equal(t, "helper", nested[0].Name)
}

func TestMustAssemble_Panics(t *testing.T) {
	assert.Panics(t, func() { MustAssemble("func f()\n") })
}
