package bytecode

import "errors"

// Errors reported while validating or assembling code units.
var (
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrArgOutOfRange   = errors.New("argument out of range")
	ErrSyntax          = errors.New("syntax error")
	ErrUndefinedLabel  = errors.New("undefined label")
	ErrUndefinedFunc   = errors.New("undefined function")
	ErrRecursiveNested = errors.New("code unit nests itself")
)
