package cfg

import "github.com/mouse-blink/coverprobe/internal/bytecode"

// Instr is an instruction inside a basic block. Jumps refer to their
// destination block instead of an instruction index; Arg of a jump is
// recomputed on emission.
type Instr struct {
	Op         bytecode.Opcode
	Arg        int
	Target     *Block
	Line       int
	Artificial bool
}

// NewInstr creates an artificial instruction attributed to line.
func NewInstr(op bytecode.Opcode, arg int, line int) Instr {
	return Instr{Op: op, Arg: arg, Line: line, Artificial: true}
}

// NewJump creates an artificial jump to target.
func NewJump(op bytecode.Opcode, target *Block, line int) Instr {
	return Instr{Op: op, Target: target, Line: line, Artificial: true}
}

// Block is a maximal straight-line run of instructions.
type Block struct {
	instrs     []Instr
	start      int
	artificial bool

	// positions maps original instruction index to current index. It is
	// rebuilt lazily after the block changes.
	positions map[int]int
	original  int
}

// Instrs returns a copy of the block's instructions.
func (b *Block) Instrs() []Instr {
	return append([]Instr(nil), b.instrs...)
}

// Len returns the current number of instructions.
func (b *Block) Len() int { return len(b.instrs) }

// At returns the instruction at current position i.
func (b *Block) At(i int) Instr { return b.instrs[i] }

// Last returns the terminating instruction, if any.
func (b *Block) Last() (Instr, bool) {
	if len(b.instrs) == 0 {
		return Instr{}, false
	}

	return b.instrs[len(b.instrs)-1], true
}

// Start is the index of the block's first instruction in the unit it was
// built from. Artificial blocks report -1.
func (b *Block) Start() int { return b.start }

// IsArtificial reports whether the block was created by instrumentation.
func (b *Block) IsArtificial() bool { return b.artificial }

// Insert places instrs before current position pos. pos == Len() appends.
func (b *Block) Insert(pos int, instrs ...Instr) {
	if pos < 0 || pos > len(b.instrs) {
		panic("cfg: insert position out of range")
	}

	tail := append([]Instr(nil), b.instrs[pos:]...)
	b.instrs = append(append(b.instrs[:pos], instrs...), tail...)
	b.positions = nil
}

// Append adds instrs at the end of the block.
func (b *Block) Append(instrs ...Instr) {
	b.Insert(len(b.instrs), instrs...)
}

// Retarget changes the destination of the jump at current position pos.
func (b *Block) Retarget(pos int, target *Block) {
	if !b.instrs[pos].Op.HasJump() {
		panic("cfg: retarget of a non-jump instruction")
	}

	b.instrs[pos].Target = target
}

// PositionMap maps the index of each original instruction, counted among the
// non-artificial instructions of the block, to its current position.
func (b *Block) PositionMap() map[int]int {
	if b.positions == nil {
		b.positions = make(map[int]int)
		b.original = 0

		for i, instr := range b.instrs {
			if instr.Artificial {
				continue
			}

			b.positions[b.original] = i
			b.original++
		}
	}

	out := make(map[int]int, len(b.positions))
	for k, v := range b.positions {
		out[k] = v
	}

	return out
}

// OriginalLen returns the number of non-artificial instructions.
func (b *Block) OriginalLen() int {
	b.PositionMap()

	return b.original
}

// PositionOf returns the current position of original instruction n. The
// one-past-the-end index maps to Len(). Unknown indices return -1.
func (b *Block) PositionOf(n int) int {
	b.PositionMap()

	if n == b.original {
		return len(b.instrs)
	}

	pos, ok := b.positions[n]
	if !ok {
		return -1
	}

	return pos
}
