// Package vm implements the stack machine that executes bytecode.CodeUnit
// values. It is the host runtime whose code units get instrumented.
package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
)

// Value is any value living on the machine stack: int64, float64, string,
// bool, nil, or one of the pointer types declared in this package.
type Value = any

// List is a mutable sequence.
type List struct {
	Items []Value
}

// NewList builds a list from items.
func NewList(items ...Value) *List {
	return &List{Items: items}
}

// Function is a code unit closed over its leading bound parameters.
type Function struct {
	Code  *bytecode.CodeUnit
	Bound []Value
}

// NewFunction wraps a code unit without bound parameters.
func NewFunction(code *bytecode.CodeUnit) *Function {
	return &Function{Code: code}
}

func (f *Function) String() string { return "<function " + f.Code.Name + ">" }

// BuiltinFunc is the Go implementation behind a Builtin.
type BuiltinFunc func(th *Thread, args []Value) (Value, error)

// Builtin is a host callable. Instrumentation probes are builtins.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// NewBuiltin names fn.
func NewBuiltin(name string, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

func (b *Builtin) String() string { return "<builtin " + b.Name + ">" }

// BoundMethod is produced by LOAD_METHOD and consumed by CALL_METHOD.
type BoundMethod struct {
	Receiver Value
	Name     string
}

func (m *BoundMethod) String() string {
	return fmt.Sprintf("<method %s of %s>", m.Name, TypeName(m.Receiver))
}

// Iterator yields values for FOR_ITER.
type Iterator interface {
	Next() (Value, bool)
}

type sliceIterator struct {
	items []Value
	pos   int
}

func (it *sliceIterator) Next() (Value, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}

	v := it.items[it.pos]
	it.pos++

	return v, true
}

type rangeIterator struct {
	next, stop, step int64
}

func (it *rangeIterator) Next() (Value, bool) {
	if (it.step > 0 && it.next >= it.stop) || (it.step < 0 && it.next <= it.stop) {
		return nil, false
	}

	v := it.next
	it.next += it.step

	return v, true
}

// Truthy applies the usual truthiness rules: zero values and empty
// containers are false.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case *List:
		return len(x.Items) > 0
	default:
		return true
	}
}

// TypeName names the dynamic type of v.
func TypeName(v Value) string {
	switch x := v.(type) {
	case nil:
		return "NoneType"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "str"
	case *List:
		return "list"
	case *Function, *Builtin:
		return "function"
	case *BoundMethod:
		return "method"
	case *ExceptionType:
		return "type"
	case *Exception:
		return x.Type.Name
	case Iterator:
		return "iterator"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Repr renders v for reports.
func Repr(v Value) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}

		return "False"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	case *List:
		parts := make([]string, len(x.Items))
		for i, item := range x.Items {
			parts[i] = Repr(item)
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FromGo converts decoded YAML/JSON scalars and slices into machine values.
func FromGo(v any) Value {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromGo(item)
		}

		return NewList(items...)
	default:
		return v
	}
}
