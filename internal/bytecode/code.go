package bytecode

import (
	"fmt"
	"strings"
)

// Instr is one native instruction. Line is the source line the instruction
// was compiled from; zero means the instruction has no source attribution.
type Instr struct {
	Op   Opcode
	Arg  int
	Line int
}

func (i Instr) String() string {
	if !i.Op.HasArg() {
		return i.Op.String()
	}

	return fmt.Sprintf("%s %d", i.Op, i.Arg)
}

// CodeUnit is one function body. Consts may hold literals, nested code units,
// exception types or host callables. Params are the first len(Params) entries
// of Locals.
type CodeUnit struct {
	Name      string
	Filename  string
	FirstLine int
	Params    []string
	Locals    []string
	Consts    []any
	Names     []string
	Code      []Instr

	// Instrumented marks units produced by an instrumentation pass.
	Instrumented bool
}

// Clone returns a shallow copy with its own slices. Nested units are shared.
func (c *CodeUnit) Clone() *CodeUnit {
	out := *c
	out.Params = append([]string(nil), c.Params...)
	out.Locals = append([]string(nil), c.Locals...)
	out.Consts = append([]any(nil), c.Consts...)
	out.Names = append([]string(nil), c.Names...)
	out.Code = append([]Instr(nil), c.Code...)

	return &out
}

// Nested returns the code units stored directly in the constant table.
func (c *CodeUnit) Nested() []*CodeUnit {
	var nested []*CodeUnit

	for _, k := range c.Consts {
		if unit, ok := k.(*CodeUnit); ok {
			nested = append(nested, unit)
		}
	}

	return nested
}

// Validate checks argument ranges of every instruction.
func (c *CodeUnit) Validate() error {
	for pc, instr := range c.Code {
		if instr.Op >= opcodeCount {
			return fmt.Errorf("%s: pc %d: %w", c.Name, pc, ErrUnknownOpcode)
		}

		var limit int

		switch {
		case instr.Op.HasJump():
			limit = len(c.Code)
		case instr.Op.HasConst():
			limit = len(c.Consts)
		case instr.Op.HasLocal():
			limit = len(c.Locals)
		case instr.Op.HasName():
			limit = len(c.Names)
		default:
			continue
		}

		if instr.Arg < 0 || instr.Arg >= limit {
			return fmt.Errorf("%s: pc %d: %s argument %d: %w", c.Name, pc, instr.Op, instr.Arg, ErrArgOutOfRange)
		}
	}

	return nil
}

// Disassemble renders the unit and its nested units in a readable listing.
func Disassemble(c *CodeUnit) string {
	var sb strings.Builder

	disassemble(&sb, c, "")

	return sb.String()
}

func disassemble(sb *strings.Builder, c *CodeUnit, indent string) {
	fmt.Fprintf(sb, "%sfunc %s(%s) @%s:%d\n", indent, c.Name, strings.Join(c.Params, ", "), c.Filename, c.FirstLine)

	line := 0

	for pc, instr := range c.Code {
		lineCol := "    "
		if instr.Line != 0 && instr.Line != line {
			line = instr.Line
			lineCol = fmt.Sprintf("%4d", line)
		}

		fmt.Fprintf(sb, "%s%s %4d %-22s%s\n", indent, lineCol, pc, instr.Op, describeArg(c, instr))
	}

	for _, nested := range c.Nested() {
		disassemble(sb, nested, indent+"  ")
	}
}

func describeArg(c *CodeUnit, instr Instr) string {
	switch {
	case !instr.Op.HasArg():
		return ""
	case instr.Op == COMPARE_OP:
		return CompareOp(instr.Arg).String()
	case instr.Op.HasJump():
		return fmt.Sprintf("-> %d", instr.Arg)
	case instr.Op.HasConst() && instr.Arg < len(c.Consts):
		return fmt.Sprintf("%d (%s)", instr.Arg, describeConst(c.Consts[instr.Arg]))
	case instr.Op.HasLocal() && instr.Arg < len(c.Locals):
		return fmt.Sprintf("%d (%s)", instr.Arg, c.Locals[instr.Arg])
	case instr.Op.HasName() && instr.Arg < len(c.Names):
		return fmt.Sprintf("%d (%s)", instr.Arg, c.Names[instr.Arg])
	default:
		return fmt.Sprintf("%d", instr.Arg)
	}
}

func describeConst(k any) string {
	switch v := k.(type) {
	case *CodeUnit:
		return "code " + v.Name
	case string:
		return fmt.Sprintf("%q", v)
	case nil:
		return "None"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
