package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeUnit_Clone(t *testing.T) {
	unit := MustAssemble(pickSource)
	clone := unit.Clone()

	clone.Code[0].Arg = 1
	clone.Consts[0] = "changed"
	clone.Locals = append(clone.Locals, "extra")

	assert.Equal(t, 0, unit.Code[0].Arg)
	assert.Equal(t, "a#b", unit.Consts[0])
	assert.Len(t, unit.Locals, 2)
}

func TestCodeUnit_Validate(t *testing.T) {
	tests := []struct {
		name  string
		instr Instr
	}{
		{name: "jump past end", instr: Instr{Op: JUMP_ABSOLUTE, Arg: 1}},
		{name: "negative jump", instr: Instr{Op: JUMP_ABSOLUTE, Arg: -1}},
		{name: "const", instr: Instr{Op: LOAD_CONST, Arg: 0}},
		{name: "local", instr: Instr{Op: LOAD_FAST, Arg: 0}},
		{name: "name", instr: Instr{Op: LOAD_GLOBAL, Arg: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &CodeUnit{Name: "f", Code: []Instr{tt.instr}}
			require.ErrorIs(t, unit.Validate(), ErrArgOutOfRange)
		})
	}

	unknown := &CodeUnit{Name: "f", Code: []Instr{{Op: opcodeCount}}}
	require.ErrorIs(t, unknown.Validate(), ErrUnknownOpcode)

	require.NoError(t, MustAssemble(pickSource).Validate())
}

func TestDisassemble(t *testing.T) {
	unit := MustAssemble(`
func outer(a) @outer.cov:1
  .line 2
  LOAD_CONST func:inner
  LOAD_FAST a
  COMPARE_OP not_in
  RETURN_VALUE
end

func inner() @outer.cov:4
  .line 5
  LOAD_CONST None
  RETURN_VALUE
end
`)

	expected := "func outer(a) @outer.cov:1\n" +
		"   2    0 LOAD_CONST            0 (code inner)\n" +
		"        1 LOAD_FAST             0 (a)\n" +
		"        2 COMPARE_OP            not_in\n" +
		"        3 RETURN_VALUE          \n" +
		"  func inner() @outer.cov:4\n" +
		"     5    0 LOAD_CONST            0 (None)\n" +
		"          1 RETURN_VALUE          \n"

	assert.Equal(t, expected, Disassemble(unit))
}

func TestOpcode_Properties(t *testing.T) {
	assert.True(t, POP_JUMP_IF_FALSE.IsConditionalJump())
	assert.True(t, FOR_ITER.HasJump())
	assert.False(t, JUMP_ABSOLUTE.IsConditionalJump())
	assert.True(t, RETURN_VALUE.IsTerminal())
	assert.True(t, RETURN_VALUE.EndsBlock())
	assert.True(t, JUMP_ABSOLUTE.EndsBlock())
	assert.False(t, NOP.HasArg())
	assert.True(t, LOAD_CONST.HasConst())

	op, ok := ParseOpcode("JUMP_IF_NOT_EXC_MATCH")
	require.True(t, ok)
	assert.Equal(t, JUMP_IF_NOT_EXC_MATCH, op)
	assert.Equal(t, "JUMP_IF_NOT_EXC_MATCH", op.String())

	_, ok = ParseOpcode("nop")
	assert.False(t, ok)
}

func TestCompareOp_RoundTrip(t *testing.T) {
	for _, op := range CompareOps() {
		parsed, ok := ParseCompareOp(op.String())
		require.True(t, ok, op.String())
		assert.Equal(t, op, parsed)
	}

	assert.Equal(t, "CompareOp(42)", CompareOp(42).String())
}
