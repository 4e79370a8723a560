package instrumentations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

const testThread = vm.ThreadID(7)

const compareSource = `
func positive(a) @positive.cov:1
  .line 2
  LOAD_FAST a
  LOAD_CONST 0
  COMPARE_OP >
  POP_JUMP_IF_FALSE neg
  .line 3
  LOAD_CONST "pos"
  RETURN_VALUE
neg:
  .line 4
  LOAD_CONST "neg"
  RETURN_VALUE
end
`

const boolSource = `
func truthy(a) @truthy.cov:1
  .line 2
  LOAD_FAST a
  POP_JUMP_IF_FALSE no
  .line 3
  LOAD_CONST 1
  RETURN_VALUE
no:
  .line 4
  LOAD_CONST 0
  RETURN_VALUE
end
`

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

// instrument runs adapters over the single code unit in src the same way the
// transformer does, using code object id 0.
func instrument(t *testing.T, src string, adapters ...Adapter) *bytecode.CodeUnit {
	t.Helper()

	graph, err := cfg.Build(bytecode.MustAssemble(src))
	require.NoError(t, err)

	blocks := graph.Blocks()

	for _, a := range adapters {
		a.VisitEntryNode(graph, graph.Entry(), 0)
	}

	for _, b := range blocks {
		for _, a := range adapters {
			a.VisitNode(graph, 0, b)
		}
	}

	for _, a := range adapters {
		a.VisitGraph(graph, 0)
	}

	out, err := graph.Emit()
	require.NoError(t, err)

	return out
}

func call(unit *bytecode.CodeUnit, args ...vm.Value) (vm.Value, error) {
	return vm.NewInterpreter().Call(context.Background(), testThread, vm.NewFunction(unit), args...)
}
