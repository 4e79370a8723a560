// Package cfg splits code units into basic blocks, lets instrumentation
// insert instructions and blocks, and re-linearises the result.
package cfg

import (
	"errors"
	"fmt"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
)

// Errors returned while building or emitting a graph.
var (
	ErrEmptyUnit      = errors.New("code unit has no instructions")
	ErrBadJumpTarget  = errors.New("jump target out of range")
	ErrFallsOffEnd    = errors.New("last block falls through past the end")
	ErrForeignBlock   = errors.New("block does not belong to graph")
	ErrUnresolvedJump = errors.New("jump without target block")
)

// Graph is the basic-block view of one code unit.
type Graph struct {
	unit   *bytecode.CodeUnit
	blocks []*Block
	consts []any
}

// Build splits unit into basic blocks. A block starts at instruction 0, at
// every jump target and after every instruction that ends a block. When
// instruction 0 is itself a jump target an empty artificial entry block is
// placed in front of it, so the entry block runs once per call.
func Build(unit *bytecode.CodeUnit) (*Graph, error) {
	if len(unit.Code) == 0 {
		return nil, fmt.Errorf("%s: %w", unit.Name, ErrEmptyUnit)
	}

	starts := map[int]bool{0: true}
	entryIsTarget := false

	for pc, instr := range unit.Code {
		if instr.Op.HasJump() {
			if instr.Arg < 0 || instr.Arg >= len(unit.Code) {
				return nil, fmt.Errorf("%s: pc %d: %s %d: %w", unit.Name, pc, instr.Op, instr.Arg, ErrBadJumpTarget)
			}

			starts[instr.Arg] = true
			entryIsTarget = entryIsTarget || instr.Arg == 0
		}

		if instr.Op.EndsBlock() && pc+1 < len(unit.Code) {
			starts[pc+1] = true
		}
	}

	g := &Graph{unit: unit}
	if entryIsTarget {
		g.blocks = append(g.blocks, &Block{start: -1, artificial: true})
	}

	byStart := make(map[int]*Block, len(starts))

	var current *Block

	for pc := range unit.Code {
		if starts[pc] {
			current = &Block{start: pc}
			byStart[pc] = current
			g.blocks = append(g.blocks, current)
		}

		instr := unit.Code[pc]
		current.instrs = append(current.instrs, Instr{Op: instr.Op, Arg: instr.Arg, Line: instr.Line})
	}

	for _, b := range g.blocks {
		for i := range b.instrs {
			if b.instrs[i].Op.HasJump() {
				b.instrs[i].Target = byStart[b.instrs[i].Arg]
			}
		}
	}

	return g, nil
}

// Unit returns the code unit the graph was built from.
func (g *Graph) Unit() *bytecode.CodeUnit { return g.unit }

// Blocks returns the blocks in layout order.
func (g *Graph) Blocks() []*Block {
	return append([]*Block(nil), g.blocks...)
}

// Entry returns the block executed first.
func (g *Graph) Entry() *Block { return g.blocks[0] }

// InsertBlockAfter places a new empty artificial block directly after b, so
// b now falls through into it.
func (g *Graph) InsertBlockAfter(b *Block) *Block {
	idx := g.indexOf(b)
	if idx < 0 {
		panic(ErrForeignBlock)
	}

	nb := &Block{start: -1, artificial: true}
	g.blocks = append(g.blocks[:idx+1], append([]*Block{nb}, g.blocks[idx+1:]...)...)

	return nb
}

// AppendBlock adds a new empty artificial block at the end of the layout.
// The caller must end it with a terminal instruction.
func (g *Graph) AppendBlock() *Block {
	nb := &Block{start: -1, artificial: true}
	g.blocks = append(g.blocks, nb)

	return nb
}

// AddConst appends v to the constant table of the emitted unit and returns
// its index. Values are not deduplicated.
func (g *Graph) AddConst(v any) int {
	g.consts = append(g.consts, v)

	return len(g.unit.Consts) + len(g.consts) - 1
}

func (g *Graph) indexOf(b *Block) int {
	for i, candidate := range g.blocks {
		if candidate == b {
			return i
		}
	}

	return -1
}

// Emit linearises the blocks into a new code unit. Jump arguments are
// recomputed from the new offsets of their target blocks. The source unit is
// left untouched.
func (g *Graph) Emit() (*bytecode.CodeUnit, error) {
	last, ok := g.blocks[len(g.blocks)-1].Last()
	if !ok || !last.Op.IsTerminal() {
		return nil, fmt.Errorf("%s: %w", g.unit.Name, ErrFallsOffEnd)
	}

	offsets := make(map[*Block]int, len(g.blocks))
	size := 0

	for _, b := range g.blocks {
		offsets[b] = size
		size += len(b.instrs)
	}

	code := make([]bytecode.Instr, 0, size)

	for _, b := range g.blocks {
		for _, instr := range b.instrs {
			arg := instr.Arg

			if instr.Op.HasJump() {
				if instr.Target == nil {
					return nil, fmt.Errorf("%s: %s: %w", g.unit.Name, instr.Op, ErrUnresolvedJump)
				}

				off, ok := offsets[instr.Target]
				if !ok {
					return nil, fmt.Errorf("%s: %s: %w", g.unit.Name, instr.Op, ErrForeignBlock)
				}

				arg = off
			}

			code = append(code, bytecode.Instr{Op: instr.Op, Arg: arg, Line: instr.Line})
		}
	}

	out := g.unit.Clone()
	out.Code = code
	out.Consts = append(out.Consts, g.consts...)

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}

	return out, nil
}
