package domain

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

const loopSource = `
func loop(n) @loop.cov:1
  .line 2
  LOAD_GLOBAL range
  LOAD_FAST n
  CALL_FUNCTION 1
  GET_ITER
head:
  FOR_ITER done
  .line 3
  STORE_FAST i
  JUMP_ABSOLUTE head
done:
  .line 4
  LOAD_CONST None
  RETURN_VALUE
end
`

const guardSource = `
func guard(x) @guard.cov:1
  .line 2
  SETUP_FINALLY handler
  .line 3
  LOAD_FAST x
  RAISE_VARARGS 1
handler:
  .line 4
  DUP_TOP
  LOAD_GLOBAL ValueError
  JUMP_IF_NOT_EXC_MATCH reraise
  POP_TOP
  .line 5
  LOAD_CONST "handled"
  RETURN_VALUE
reraise:
  RERAISE
end
`

const wordSource = `
func word(s) @word.cov:1
  .line 2
  LOAD_FAST s
  LOAD_METHOD isalpha
  CALL_METHOD 0
  POP_JUMP_IF_FALSE other
  .line 3
  LOAD_CONST "word"
  RETURN_VALUE
other:
  .line 4
  LOAD_CONST "other"
  RETURN_VALUE
end
`

const straightSource = `
func plain(a) @plain.cov:1
  .line 2
  LOAD_FAST a
  LOAD_CONST 1
  BINARY_ADD
  .line 3
  RETURN_VALUE
end
`

// instrumentSource instruments the first function in src with the branch
// and line adapters, plus seeding into sink when sink is not nil.
func instrumentSource(t *testing.T, tracer *ExecutionTracer, sink instrumentations.ConstantSink, src string) *bytecode.CodeUnit {
	t.Helper()

	adapters := []instrumentations.Adapter{
		instrumentations.NewBranchCoverage(tracer),
		instrumentations.NewLineCoverage(tracer),
	}
	if sink != nil {
		adapters = append(adapters, instrumentations.NewDynamicSeeding(sink))
	}

	unit, err := NewInstrumentationTransformer(tracer, adapters, zerolog.Nop()).InstrumentModule(bytecode.MustAssemble(src))
	require.NoError(t, err)

	return unit
}

// runOn calls unit on thread with the tracer armed for armed.
func runOn(tracer *ExecutionTracer, armed, thread vm.ThreadID, unit *bytecode.CodeUnit, args ...vm.Value) (vm.Value, error) {
	tracer.SetCurrentThreadIdentifier(armed)
	defer tracer.Disarm()

	return vm.NewInterpreter().Call(context.Background(), thread, vm.NewFunction(unit), args...)
}
