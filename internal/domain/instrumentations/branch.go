package instrumentations

import (
	"github.com/rs/zerolog"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// BranchCoverage reports code object entries and the outcome and branch
// distances of every predicate.
type BranchCoverage struct {
	tracer     Tracer
	log        zerolog.Logger
	predicates map[int]int

	enteredHook   *vm.Builtin
	boolHook      *vm.Builtin
	compareHook   *vm.Builtin
	exceptionHook *vm.Builtin
}

// NewBranchCoverage creates the branch coverage adapter.
func NewBranchCoverage(tracer Tracer, opts ...Option) *BranchCoverage {
	o := newOptions(opts)
	b := &BranchCoverage{tracer: tracer, log: o.log, predicates: make(map[int]int)}

	b.enteredHook = vm.NewBuiltin("executed_code_object", func(th *vm.Thread, args []vm.Value) (vm.Value, error) {
		id, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}

		tracer.ExecutedCodeObject(th.ID(), id)

		return nil, nil
	})

	b.boolHook = vm.NewBuiltin("executed_bool_predicate", func(th *vm.Thread, args []vm.Value) (vm.Value, error) {
		id, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}

		tracer.ExecutedBoolPredicate(th.ID(), args[0], id)

		return nil, nil
	})

	b.compareHook = vm.NewBuiltin("executed_compare_predicate", func(th *vm.Thread, args []vm.Value) (vm.Value, error) {
		id, err := intArg(args, 2)
		if err != nil {
			return nil, err
		}

		op, err := intArg(args, 3)
		if err != nil {
			return nil, err
		}

		tracer.ExecutedComparePredicate(th.ID(), args[0], args[1], id, bytecode.CompareOp(op))

		return nil, nil
	})

	b.exceptionHook = vm.NewBuiltin("executed_exception_match", func(th *vm.Thread, args []vm.Value) (vm.Value, error) {
		id, err := intArg(args, 2)
		if err != nil {
			return nil, err
		}

		tracer.ExecutedExceptionMatch(th.ID(), args[0], args[1], id)

		return nil, nil
	})

	return b
}

// VisitEntryNode reports every entry into the code object.
func (b *BranchCoverage) VisitEntryNode(graph *cfg.Graph, block *cfg.Block, codeObjectID int) {
	line := graph.Unit().FirstLine

	p := newProbe(graph, line).
		constant(b.enteredHook).
		constant(int64(codeObjectID)).
		call(1)

	block.Insert(0, p.instrs()...)
}

// VisitNode instruments the predicate that ends block, if any.
func (b *BranchCoverage) VisitNode(graph *cfg.Graph, codeObjectID int, block *cfg.Block) {
	n := block.OriginalLen()
	if n == 0 {
		return
	}

	jump, jumpPos := originalAt(block, n-1)
	if !jump.Op.IsConditionalJump() {
		return
	}

	switch {
	case jump.Op == bytecode.FOR_ITER:
		b.instrumentForLoop(graph, codeObjectID, block, jump, jumpPos)
	case jump.Op == bytecode.JUMP_IF_NOT_EXC_MATCH:
		b.instrumentExceptionMatch(graph, codeObjectID, block, jump, jumpPos)
	case n >= 2 && block.At(block.PositionOf(n-2)).Op == bytecode.COMPARE_OP:
		b.instrumentCompare(graph, codeObjectID, block, n-2)
	default:
		b.instrumentBool(graph, codeObjectID, block, jump, jumpPos)
	}
}

// VisitGraph registers code objects without any predicate as branch-less.
func (b *BranchCoverage) VisitGraph(_ *cfg.Graph, codeObjectID int) {
	if b.predicates[codeObjectID] == 0 {
		b.tracer.RegisterBranchLessCodeObject(codeObjectID)
	}
}

func (b *BranchCoverage) register(codeObjectID, line int, kind model.PredicateKind) int {
	b.predicates[codeObjectID]++

	id := b.tracer.RegisterPredicate(model.PredicateMetaData{CodeObjectID: codeObjectID, Line: line, Kind: kind})
	b.log.Debug().Int("code_object", codeObjectID).Int("predicate", id).Int("line", line).
		Str("kind", string(kind)).Msg("instrumented predicate")

	return id
}

// instrumentBool duplicates the tested value in front of the jump.
func (b *BranchCoverage) instrumentBool(graph *cfg.Graph, codeObjectID int, block *cfg.Block, jump cfg.Instr, pos int) {
	id := b.register(codeObjectID, jump.Line, model.PredicateBool)

	p := newProbe(graph, jump.Line).
		op(bytecode.DUP_TOP, 0).
		constant(b.boolHook).
		op(bytecode.ROT_TWO, 0).
		constant(int64(id)).
		call(2)

	block.Insert(pos, p.instrs()...)
}

// instrumentCompare duplicates both operands in front of the comparison.
func (b *BranchCoverage) instrumentCompare(graph *cfg.Graph, codeObjectID int, block *cfg.Block, original int) {
	cmp, pos := originalAt(block, original)
	id := b.register(codeObjectID, cmp.Line, model.PredicateCompare)

	p := newProbe(graph, cmp.Line).
		op(bytecode.DUP_TOP_TWO, 0).
		constant(b.compareHook).
		op(bytecode.ROT_THREE, 0).
		constant(int64(id)).
		constant(int64(cmp.Arg)).
		call(4)

	block.Insert(pos, p.instrs()...)
}

// instrumentExceptionMatch duplicates the exception and the expected type.
func (b *BranchCoverage) instrumentExceptionMatch(graph *cfg.Graph, codeObjectID int, block *cfg.Block, jump cfg.Instr, pos int) {
	id := b.register(codeObjectID, jump.Line, model.PredicateException)

	p := newProbe(graph, jump.Line).
		op(bytecode.DUP_TOP_TWO, 0).
		constant(b.exceptionHook).
		op(bytecode.ROT_THREE, 0).
		constant(int64(id)).
		call(3)

	block.Insert(pos, p.instrs()...)
}

// instrumentForLoop reports true in a block entered when the iterator yields
// and false in a block the exhaustion jump is routed through.
func (b *BranchCoverage) instrumentForLoop(graph *cfg.Graph, codeObjectID int, block *cfg.Block, jump cfg.Instr, pos int) {
	id := b.register(codeObjectID, jump.Line, model.PredicateForLoop)

	taken := graph.InsertBlockAfter(block)
	taken.Append(newProbe(graph, jump.Line).
		constant(b.boolHook).
		constant(true).
		constant(int64(id)).
		call(2).
		instrs()...)

	exhausted := graph.AppendBlock()
	exhausted.Append(newProbe(graph, jump.Line).
		constant(b.boolHook).
		constant(false).
		constant(int64(id)).
		call(2).
		jump(bytecode.JUMP_ABSOLUTE, jump.Target).
		instrs()...)

	block.Retarget(pos, exhausted)
}

var _ Adapter = (*BranchCoverage)(nil)
