// Package bytecode defines the native instruction representation of code units
// executed by the coverprobe virtual machine.
package bytecode

import "fmt"

// Opcode identifies a single virtual machine operation.
type Opcode uint8

// Supported opcodes. Jump arguments are absolute instruction indices.
const (
	NOP Opcode = iota
	POP_TOP
	ROT_TWO
	ROT_THREE
	DUP_TOP
	DUP_TOP_TWO
	LOAD_CONST
	LOAD_FAST
	STORE_FAST
	LOAD_GLOBAL
	BINARY_ADD
	BINARY_SUBTRACT
	BINARY_MULTIPLY
	BINARY_MODULO
	UNARY_NOT
	UNARY_NEGATIVE
	COMPARE_OP
	POP_JUMP_IF_FALSE
	POP_JUMP_IF_TRUE
	JUMP_IF_FALSE_OR_POP
	JUMP_IF_TRUE_OR_POP
	JUMP_ABSOLUTE
	GET_ITER
	FOR_ITER
	BUILD_LIST
	LIST_APPEND
	MAKE_FUNCTION
	CALL_FUNCTION
	LOAD_METHOD
	CALL_METHOD
	RETURN_VALUE
	RAISE_VARARGS
	SETUP_FINALLY
	POP_BLOCK
	JUMP_IF_NOT_EXC_MATCH
	RERAISE

	opcodeCount
)

type opcodeFlags uint8

const (
	flagHasArg opcodeFlags = 1 << iota
	flagJump
	flagConditional
	flagTerminal
	flagConst
	flagLocal
	flagName
)

type opcodeInfo struct {
	name  string
	flags opcodeFlags
}

var opcodeTable = [opcodeCount]opcodeInfo{
	NOP:                   {"NOP", 0},
	POP_TOP:               {"POP_TOP", 0},
	ROT_TWO:               {"ROT_TWO", 0},
	ROT_THREE:             {"ROT_THREE", 0},
	DUP_TOP:               {"DUP_TOP", 0},
	DUP_TOP_TWO:           {"DUP_TOP_TWO", 0},
	LOAD_CONST:            {"LOAD_CONST", flagHasArg | flagConst},
	LOAD_FAST:             {"LOAD_FAST", flagHasArg | flagLocal},
	STORE_FAST:            {"STORE_FAST", flagHasArg | flagLocal},
	LOAD_GLOBAL:           {"LOAD_GLOBAL", flagHasArg | flagName},
	BINARY_ADD:            {"BINARY_ADD", 0},
	BINARY_SUBTRACT:       {"BINARY_SUBTRACT", 0},
	BINARY_MULTIPLY:       {"BINARY_MULTIPLY", 0},
	BINARY_MODULO:         {"BINARY_MODULO", 0},
	UNARY_NOT:             {"UNARY_NOT", 0},
	UNARY_NEGATIVE:        {"UNARY_NEGATIVE", 0},
	COMPARE_OP:            {"COMPARE_OP", flagHasArg},
	POP_JUMP_IF_FALSE:     {"POP_JUMP_IF_FALSE", flagHasArg | flagJump | flagConditional},
	POP_JUMP_IF_TRUE:      {"POP_JUMP_IF_TRUE", flagHasArg | flagJump | flagConditional},
	JUMP_IF_FALSE_OR_POP:  {"JUMP_IF_FALSE_OR_POP", flagHasArg | flagJump | flagConditional},
	JUMP_IF_TRUE_OR_POP:   {"JUMP_IF_TRUE_OR_POP", flagHasArg | flagJump | flagConditional},
	JUMP_ABSOLUTE:         {"JUMP_ABSOLUTE", flagHasArg | flagJump | flagTerminal},
	GET_ITER:              {"GET_ITER", 0},
	FOR_ITER:              {"FOR_ITER", flagHasArg | flagJump | flagConditional},
	BUILD_LIST:            {"BUILD_LIST", flagHasArg},
	LIST_APPEND:           {"LIST_APPEND", flagHasArg},
	MAKE_FUNCTION:         {"MAKE_FUNCTION", flagHasArg},
	CALL_FUNCTION:         {"CALL_FUNCTION", flagHasArg},
	LOAD_METHOD:           {"LOAD_METHOD", flagHasArg | flagName},
	CALL_METHOD:           {"CALL_METHOD", flagHasArg},
	RETURN_VALUE:          {"RETURN_VALUE", flagTerminal},
	RAISE_VARARGS:         {"RAISE_VARARGS", flagHasArg | flagTerminal},
	SETUP_FINALLY:         {"SETUP_FINALLY", flagHasArg | flagJump},
	POP_BLOCK:             {"POP_BLOCK", 0},
	JUMP_IF_NOT_EXC_MATCH: {"JUMP_IF_NOT_EXC_MATCH", flagHasArg | flagJump | flagConditional},
	RERAISE:               {"RERAISE", flagTerminal},
}

var opcodeByName = func() map[string]Opcode {
	byName := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		byName[info.name] = Opcode(op)
	}

	return byName
}()

// ParseOpcode resolves an opcode mnemonic.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]

	return op, ok
}

func (op Opcode) String() string {
	if op >= opcodeCount {
		return fmt.Sprintf("Opcode(%d)", uint8(op))
	}

	return opcodeTable[op].name
}

func (op Opcode) is(f opcodeFlags) bool {
	return op < opcodeCount && opcodeTable[op].flags&f != 0
}

// HasArg reports whether the opcode consumes its integer argument.
func (op Opcode) HasArg() bool { return op.is(flagHasArg) }

// HasJump reports whether the argument is an instruction index.
func (op Opcode) HasJump() bool { return op.is(flagJump) }

// IsConditionalJump reports whether control may either jump or fall through.
func (op Opcode) IsConditionalJump() bool { return op.is(flagConditional) }

// IsTerminal reports whether control never falls through to the next instruction.
func (op Opcode) IsTerminal() bool { return op.is(flagTerminal) }

// HasConst reports whether the argument indexes the constant table.
func (op Opcode) HasConst() bool { return op.is(flagConst) }

// HasLocal reports whether the argument indexes the local variable table.
func (op Opcode) HasLocal() bool { return op.is(flagLocal) }

// HasName reports whether the argument indexes the name table.
func (op Opcode) HasName() bool { return op.is(flagName) }

// EndsBlock reports whether a basic block must end after this opcode.
// SETUP_FINALLY ends a block because it opens an exception boundary.
func (op Opcode) EndsBlock() bool {
	return op.HasJump() || op.IsTerminal()
}
