package vm

import "fmt"

// ExceptionType is a node in the exception class hierarchy.
type ExceptionType struct {
	Name string
	Base *ExceptionType
}

// NewExceptionType declares a subtype of base.
func NewExceptionType(name string, base *ExceptionType) *ExceptionType {
	return &ExceptionType{Name: name, Base: base}
}

func (t *ExceptionType) String() string { return "<class " + t.Name + ">" }

// IsSubtypeOf reports whether t equals other or derives from it.
func (t *ExceptionType) IsSubtypeOf(other *ExceptionType) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur == other {
			return true
		}
	}

	return false
}

// Builtin exception hierarchy.
var (
	BaseException     = NewExceptionType("BaseException", nil)
	ExceptionBase     = NewExceptionType("Exception", BaseException)
	ArithmeticError   = NewExceptionType("ArithmeticError", ExceptionBase)
	ZeroDivisionError = NewExceptionType("ZeroDivisionError", ArithmeticError)
	AttributeError    = NewExceptionType("AttributeError", ExceptionBase)
	LookupError       = NewExceptionType("LookupError", ExceptionBase)
	IndexError        = NewExceptionType("IndexError", LookupError)
	NameError         = NewExceptionType("NameError", ExceptionBase)
	RuntimeError      = NewExceptionType("RuntimeError", ExceptionBase)
	RecursionError    = NewExceptionType("RecursionError", RuntimeError)
	TypeError         = NewExceptionType("TypeError", ExceptionBase)
	ValueError        = NewExceptionType("ValueError", ExceptionBase)
)

// Exception is a raised exception instance. It satisfies error so an uncaught
// exception leaves the interpreter as a regular Go error.
type Exception struct {
	Type    *ExceptionType
	Message string
}

// NewException instantiates an exception of type t.
func NewException(t *ExceptionType, format string, args ...any) *Exception {
	return &Exception{Type: t, Message: fmt.Sprintf(format, args...)}
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Type.Name
	}

	return e.Type.Name + ": " + e.Message
}

func (e *Exception) String() string { return e.Error() }
