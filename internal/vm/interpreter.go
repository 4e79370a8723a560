package vm

import (
	"context"
	"errors"
	"fmt"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
)

const (
	maxCallDepth = 200
	pollInterval = 1024
)

// Errors raised by the machine itself rather than by the executed code.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrFellOffEnd     = errors.New("execution fell off the end of the code unit")
	ErrBadConstant    = errors.New("unexpected constant kind")
)

// ThreadID identifies the logical thread a run executes on. Tracers compare
// it against the identifier they are armed with.
type ThreadID uint64

// Thread is one run of the interpreter. It carries the thread identifier
// that host callables observe.
type Thread struct {
	id     ThreadID
	ctx    context.Context
	interp *Interpreter
	depth  int
	steps  int
}

// ID returns the thread identifier.
func (th *Thread) ID() ThreadID { return th.id }

// Interpreter holds the global namespace shared by every run.
type Interpreter struct {
	Globals map[string]Value
}

// NewInterpreter creates an interpreter with the builtin globals installed.
func NewInterpreter() *Interpreter {
	return &Interpreter{Globals: builtinGlobals()}
}

// Call runs fn on a new thread identified by id. An exception escaping fn is
// returned as a *Exception error.
func (in *Interpreter) Call(ctx context.Context, id ThreadID, fn Value, args ...Value) (Value, error) {
	th := &Thread{id: id, ctx: ctx, interp: in}

	return th.Call(fn, args...)
}

// Call invokes fn on the thread.
func (th *Thread) Call(fn Value, args ...Value) (Value, error) {
	switch f := fn.(type) {
	case *Function:
		all := append(append([]Value(nil), f.Bound...), args...)
		if len(all) != len(f.Code.Params) {
			return nil, NewException(TypeError, "%s() takes %d positional arguments but %d were given",
				f.Code.Name, len(f.Code.Params)-len(f.Bound), len(args))
		}

		if th.depth >= maxCallDepth {
			return nil, NewException(RecursionError, "maximum recursion depth exceeded")
		}

		th.depth++
		defer func() { th.depth-- }()

		return th.run(f.Code, all)
	case *Builtin:
		return f.Fn(th, args)
	case *ExceptionType:
		if len(args) == 0 {
			return &Exception{Type: f}, nil
		}

		if msg, ok := args[0].(string); ok {
			return &Exception{Type: f, Message: msg}, nil
		}

		return &Exception{Type: f, Message: Repr(args[0])}, nil
	case *BoundMethod:
		return th.callMethod(f, args)
	}

	return nil, NewException(TypeError, "'%s' object is not callable", TypeName(fn))
}

func (th *Thread) callMethod(m *BoundMethod, args []Value) (Value, error) {
	switch recv := m.Receiver.(type) {
	case string:
		return callStringMethod(recv, m.Name, args)
	case *List:
		if m.Name == "append" && len(args) == 1 {
			recv.Items = append(recv.Items, args[0])

			return nil, nil
		}
	}

	return nil, NewException(AttributeError, "'%s' object has no attribute '%s'", TypeName(m.Receiver), m.Name)
}

type handler struct {
	target     int
	stackDepth int
}

type frame struct {
	code     *bytecode.CodeUnit
	locals   []Value
	stack    []Value
	handlers []handler
}

func (f *frame) push(v Value) { f.stack = append(f.stack, v) }

func (f *frame) pop() (Value, error) {
	if len(f.stack) == 0 {
		return nil, ErrStackUnderflow
	}

	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]

	return v, nil
}

func (f *frame) popN(n int) ([]Value, error) {
	if n < 0 || len(f.stack) < n {
		return nil, ErrStackUnderflow
	}

	vals := append([]Value(nil), f.stack[len(f.stack)-n:]...)
	f.stack = f.stack[:len(f.stack)-n]

	return vals, nil
}

func (f *frame) top(n int) (Value, error) {
	if len(f.stack) < n {
		return nil, ErrStackUnderflow
	}

	return f.stack[len(f.stack)-n], nil
}

func (th *Thread) run(code *bytecode.CodeUnit, args []Value) (Value, error) {
	f := &frame{code: code, locals: make([]Value, len(code.Locals))}
	copy(f.locals, args)

	pc := 0

	for {
		if pc < 0 || pc >= len(code.Code) {
			return nil, fmt.Errorf("%s: %w", code.Name, ErrFellOffEnd)
		}

		th.steps++
		if th.steps%pollInterval == 0 && th.ctx != nil {
			if err := th.ctx.Err(); err != nil {
				return nil, err
			}
		}

		instr := code.Code[pc]

		next, ret, done, err := th.step(f, pc, instr)
		if err != nil {
			var exc *Exception
			if !errors.As(err, &exc) {
				return nil, fmt.Errorf("%s: pc %d %s: %w", code.Name, pc, instr.Op, err)
			}

			if len(f.handlers) == 0 {
				return nil, exc
			}

			h := f.handlers[len(f.handlers)-1]
			f.handlers = f.handlers[:len(f.handlers)-1]
			f.stack = f.stack[:h.stackDepth]
			f.push(exc)
			pc = h.target

			continue
		}

		if done {
			return ret, nil
		}

		pc = next
	}
}

// step executes one instruction and returns the next pc.
//
//nolint:gocyclo,cyclop,funlen // one case per opcode.
func (th *Thread) step(f *frame, pc int, instr bytecode.Instr) (int, Value, bool, error) {
	next := pc + 1

	switch instr.Op {
	case bytecode.NOP:
	case bytecode.POP_TOP:
		if _, err := f.pop(); err != nil {
			return 0, nil, false, err
		}
	case bytecode.ROT_TWO:
		vals, err := f.popN(2)
		if err != nil {
			return 0, nil, false, err
		}

		f.push(vals[1])
		f.push(vals[0])
	case bytecode.ROT_THREE:
		vals, err := f.popN(3)
		if err != nil {
			return 0, nil, false, err
		}

		f.push(vals[2])
		f.push(vals[0])
		f.push(vals[1])
	case bytecode.DUP_TOP:
		v, err := f.top(1)
		if err != nil {
			return 0, nil, false, err
		}

		f.push(v)
	case bytecode.DUP_TOP_TWO:
		a, err := f.top(2)
		if err != nil {
			return 0, nil, false, err
		}

		b, _ := f.top(1)
		f.push(a)
		f.push(b)
	case bytecode.LOAD_CONST:
		k := f.code.Consts[instr.Arg]
		if unit, ok := k.(*bytecode.CodeUnit); ok {
			f.push(NewFunction(unit))
		} else {
			f.push(k)
		}
	case bytecode.LOAD_FAST:
		f.push(f.locals[instr.Arg])
	case bytecode.STORE_FAST:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		f.locals[instr.Arg] = v
	case bytecode.LOAD_GLOBAL:
		name := f.code.Names[instr.Arg]

		v, ok := th.interp.Globals[name]
		if !ok {
			return 0, nil, false, NewException(NameError, "name '%s' is not defined", name)
		}

		f.push(v)
	case bytecode.BINARY_ADD, bytecode.BINARY_SUBTRACT, bytecode.BINARY_MULTIPLY, bytecode.BINARY_MODULO:
		vals, err := f.popN(2)
		if err != nil {
			return 0, nil, false, err
		}

		res, err := binaryOp(instr.Op, vals[0], vals[1])
		if err != nil {
			return 0, nil, false, err
		}

		f.push(res)
	case bytecode.UNARY_NOT:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		f.push(!Truthy(v))
	case bytecode.UNARY_NEGATIVE:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		switch x := v.(type) {
		case int64:
			f.push(-x)
		case float64:
			f.push(-x)
		default:
			return 0, nil, false, NewException(TypeError, "bad operand type for unary -: '%s'", TypeName(v))
		}
	case bytecode.COMPARE_OP:
		vals, err := f.popN(2)
		if err != nil {
			return 0, nil, false, err
		}

		res, err := Compare(bytecode.CompareOp(instr.Arg), vals[0], vals[1])
		if err != nil {
			return 0, nil, false, err
		}

		f.push(res)
	case bytecode.POP_JUMP_IF_FALSE, bytecode.POP_JUMP_IF_TRUE:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		if Truthy(v) == (instr.Op == bytecode.POP_JUMP_IF_TRUE) {
			next = instr.Arg
		}
	case bytecode.JUMP_IF_FALSE_OR_POP, bytecode.JUMP_IF_TRUE_OR_POP:
		v, err := f.top(1)
		if err != nil {
			return 0, nil, false, err
		}

		if Truthy(v) == (instr.Op == bytecode.JUMP_IF_TRUE_OR_POP) {
			next = instr.Arg
		} else {
			_, _ = f.pop()
		}
	case bytecode.JUMP_ABSOLUTE:
		next = instr.Arg
	case bytecode.GET_ITER:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		it, err := iterate(v)
		if err != nil {
			return 0, nil, false, err
		}

		f.push(it)
	case bytecode.FOR_ITER:
		v, err := f.top(1)
		if err != nil {
			return 0, nil, false, err
		}

		it, ok := v.(Iterator)
		if !ok {
			return 0, nil, false, NewException(TypeError, "'%s' object is not an iterator", TypeName(v))
		}

		if item, more := it.Next(); more {
			f.push(item)
		} else {
			_, _ = f.pop()
			next = instr.Arg
		}
	case bytecode.BUILD_LIST:
		items, err := f.popN(instr.Arg)
		if err != nil {
			return 0, nil, false, err
		}

		f.push(NewList(items...))
	case bytecode.LIST_APPEND:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		target, err := f.top(instr.Arg)
		if err != nil {
			return 0, nil, false, err
		}

		list, ok := target.(*List)
		if !ok {
			return 0, nil, false, NewException(TypeError, "LIST_APPEND target is '%s'", TypeName(target))
		}

		list.Items = append(list.Items, v)
	case bytecode.MAKE_FUNCTION:
		vals, err := f.popN(instr.Arg + 1)
		if err != nil {
			return 0, nil, false, err
		}

		fn, ok := vals[len(vals)-1].(*Function)
		if !ok {
			return 0, nil, false, fmt.Errorf("MAKE_FUNCTION on %s: %w", TypeName(vals[len(vals)-1]), ErrBadConstant)
		}

		f.push(&Function{Code: fn.Code, Bound: vals[:len(vals)-1]})
	case bytecode.CALL_FUNCTION, bytecode.CALL_METHOD:
		vals, err := f.popN(instr.Arg + 1)
		if err != nil {
			return 0, nil, false, err
		}

		res, err := th.Call(vals[0], vals[1:]...)
		if err != nil {
			return 0, nil, false, err
		}

		f.push(res)
	case bytecode.LOAD_METHOD:
		recv, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		f.push(&BoundMethod{Receiver: recv, Name: f.code.Names[instr.Arg]})
	case bytecode.RETURN_VALUE:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		return 0, v, true, nil
	case bytecode.RAISE_VARARGS:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		return 0, nil, false, toException(v)
	case bytecode.RERAISE:
		v, err := f.pop()
		if err != nil {
			return 0, nil, false, err
		}

		return 0, nil, false, toException(v)
	case bytecode.SETUP_FINALLY:
		f.handlers = append(f.handlers, handler{target: instr.Arg, stackDepth: len(f.stack)})
	case bytecode.POP_BLOCK:
		if len(f.handlers) > 0 {
			f.handlers = f.handlers[:len(f.handlers)-1]
		}
	case bytecode.JUMP_IF_NOT_EXC_MATCH:
		vals, err := f.popN(2)
		if err != nil {
			return 0, nil, false, err
		}

		if !ExceptionMatches(vals[0], vals[1]) {
			next = instr.Arg
		}
	default:
		return 0, nil, false, fmt.Errorf("%s: %w", instr.Op, bytecode.ErrUnknownOpcode)
	}

	return next, nil, false, nil
}

// ExceptionMatches reports whether raised is an instance or subtype of
// expected. expected may be a list of exception types.
func ExceptionMatches(raised, expected Value) bool {
	var rt *ExceptionType

	switch r := raised.(type) {
	case *Exception:
		rt = r.Type
	case *ExceptionType:
		rt = r
	default:
		return false
	}

	switch e := expected.(type) {
	case *ExceptionType:
		return rt.IsSubtypeOf(e)
	case *List:
		for _, item := range e.Items {
			if ExceptionMatches(rt, item) {
				return true
			}
		}
	}

	return false
}

func toException(v Value) *Exception {
	switch x := v.(type) {
	case *Exception:
		return x
	case *ExceptionType:
		return &Exception{Type: x}
	}

	return NewException(TypeError, "exceptions must derive from BaseException, not %s", TypeName(v))
}

func builtinGlobals() map[string]Value {
	globals := map[string]Value{
		"range": NewBuiltin("range", builtinRange),
		"len":   NewBuiltin("len", builtinLen),
	}

	for _, t := range []*ExceptionType{
		BaseException, ExceptionBase, ArithmeticError, ZeroDivisionError, AttributeError,
		LookupError, IndexError, NameError, RuntimeError, RecursionError, TypeError, ValueError,
	} {
		globals[t.Name] = t
	}

	return globals
}

func builtinRange(_ *Thread, args []Value) (Value, error) {
	ints := make([]int64, len(args))

	for i, a := range args {
		n, ok := a.(int64)
		if !ok {
			return nil, NewException(TypeError, "'%s' object cannot be interpreted as an integer", TypeName(a))
		}

		ints[i] = n
	}

	switch len(ints) {
	case 1:
		return &rangeIterator{next: 0, stop: ints[0], step: 1}, nil
	case 2:
		return &rangeIterator{next: ints[0], stop: ints[1], step: 1}, nil
	case 3:
		if ints[2] == 0 {
			return nil, NewException(ValueError, "range() arg 3 must not be zero")
		}

		return &rangeIterator{next: ints[0], stop: ints[1], step: ints[2]}, nil
	}

	return nil, NewException(TypeError, "range expected 1 to 3 arguments, got %d", len(args))
}

func builtinLen(_ *Thread, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NewException(TypeError, "len() takes exactly one argument (%d given)", len(args))
	}

	switch x := args[0].(type) {
	case string:
		return int64(len([]rune(x))), nil
	case *List:
		return int64(len(x.Items)), nil
	}

	return nil, NewException(TypeError, "object of type '%s' has no len()", TypeName(args[0]))
}
