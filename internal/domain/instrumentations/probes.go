package instrumentations

import (
	"fmt"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// probe builds the artificial instruction runs inserted into blocks.
type probe struct {
	graph *cfg.Graph
	line  int
	code  []cfg.Instr
}

func newProbe(graph *cfg.Graph, line int) *probe {
	return &probe{graph: graph, line: line}
}

func (p *probe) op(op bytecode.Opcode, arg int) *probe {
	p.code = append(p.code, cfg.NewInstr(op, arg, p.line))

	return p
}

func (p *probe) constant(v any) *probe {
	return p.op(bytecode.LOAD_CONST, p.graph.AddConst(v))
}

func (p *probe) jump(op bytecode.Opcode, target *cfg.Block) *probe {
	p.code = append(p.code, cfg.NewJump(op, target, p.line))

	return p
}

// call invokes the function n+1 slots below the top with n arguments and
// drops the result.
func (p *probe) call(n int) *probe {
	return p.op(bytecode.CALL_FUNCTION, n).op(bytecode.POP_TOP, 0)
}

func (p *probe) instrs() []cfg.Instr { return p.code }

// originalAt returns the original instruction n of block together with its
// current position.
func originalAt(block *cfg.Block, n int) (cfg.Instr, int) {
	pos := block.PositionOf(n)

	return block.At(pos), pos
}

func intArg(args []vm.Value, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("probe argument %d missing: %w", i, vm.ErrStackUnderflow)
	}

	n, ok := args[i].(int64)
	if !ok {
		return 0, fmt.Errorf("probe argument %d is %s: %w", i, vm.TypeName(args[i]), vm.ErrBadConstant)
	}

	return int(n), nil
}
