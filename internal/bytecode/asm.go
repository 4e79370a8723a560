package bytecode

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

const funcRefPrefix = "func:"

// funcRef is a placeholder constant resolved to a nested unit after parsing.
type funcRef string

type pendingJump struct {
	pc     int
	label  string
	lineNo int
}

type asmFunc struct {
	unit   *CodeUnit
	labels map[string]int
	jumps  []pendingJump
	line   int
}

// Assemble parses the textual assembly format and returns the first top-level
// function it declares. Functions referenced through func:<name> constants become
// nested units of their referrer.
//
//	func cmp(a, b) @simple.cov:10
//	  .line 11
//	  LOAD_FAST a
//	  LOAD_FAST b
//	  COMPARE_OP <
//	  POP_JUMP_IF_FALSE other
//	  LOAD_CONST 1
//	  RETURN_VALUE
//	other:
//	  LOAD_CONST 0
//	  RETURN_VALUE
//	end
func Assemble(src string) (*CodeUnit, error) {
	units, err := AssembleModule(src)
	if err != nil {
		return nil, err
	}

	return units[0], nil
}

// AssembleModule parses every function in src and returns, in declaration
// order, those not referenced as a nested unit by another function.
func AssembleModule(src string) ([]*CodeUnit, error) {
	funcs, order, err := parseFuncs(src)
	if err != nil {
		return nil, err
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("no function declared: %w", ErrSyntax)
	}

	nested := make(map[*CodeUnit]bool)

	for _, name := range order {
		unit := funcs[name]
		for i, k := range unit.Consts {
			ref, ok := k.(funcRef)
			if !ok {
				continue
			}

			target, ok := funcs[string(ref)]
			if !ok {
				return nil, fmt.Errorf("%s: %q: %w", name, string(ref), ErrUndefinedFunc)
			}

			unit.Consts[i] = target
			nested[target] = true
		}
	}

	roots := make([]*CodeUnit, 0, len(order))

	for _, name := range order {
		unit := funcs[name]
		if err := checkAcyclic(unit, map[*CodeUnit]bool{}); err != nil {
			return nil, err
		}

		if !nested[unit] {
			roots = append(roots, unit)
		}
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("every function is nested: %w", ErrRecursiveNested)
	}

	return roots, nil
}

// MustAssemble is Assemble for fixtures known to be valid.
func MustAssemble(src string) *CodeUnit {
	unit, err := Assemble(src)
	if err != nil {
		panic(err)
	}

	return unit
}

func checkAcyclic(unit *CodeUnit, onPath map[*CodeUnit]bool) error {
	if onPath[unit] {
		return fmt.Errorf("%s: %w", unit.Name, ErrRecursiveNested)
	}

	onPath[unit] = true
	defer delete(onPath, unit)

	for _, nested := range unit.Nested() {
		if err := checkAcyclic(nested, onPath); err != nil {
			return err
		}
	}

	return nil
}

func parseFuncs(src string) (map[string]*CodeUnit, []string, error) {
	funcs := make(map[string]*CodeUnit)

	var (
		order   []string
		current *asmFunc
	)

	scanner := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		text := strings.TrimSpace(stripComment(scanner.Text()))
		if text == "" {
			continue
		}

		if current == nil {
			fn, err := parseHeader(text)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

			if _, dup := funcs[fn.unit.Name]; dup {
				return nil, nil, fmt.Errorf("line %d: duplicate function %q: %w", lineNo, fn.unit.Name, ErrSyntax)
			}

			current = fn

			continue
		}

		if text == "end" {
			if err := current.resolveJumps(); err != nil {
				return nil, nil, err
			}

			funcs[current.unit.Name] = current.unit
			order = append(order, current.unit.Name)
			current = nil

			continue
		}

		if err := current.parseLine(text, lineNo); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if current != nil {
		return nil, nil, fmt.Errorf("function %q: missing end: %w", current.unit.Name, ErrSyntax)
	}

	return funcs, order, nil
}

func parseHeader(text string) (*asmFunc, error) {
	rest, ok := strings.CutPrefix(text, "func ")
	if !ok {
		return nil, fmt.Errorf("expected func header, got %q: %w", text, ErrSyntax)
	}

	open := strings.Index(rest, "(")
	closing := strings.Index(rest, ")")

	if open <= 0 || closing < open {
		return nil, fmt.Errorf("malformed header %q: %w", text, ErrSyntax)
	}

	unit := &CodeUnit{Name: strings.TrimSpace(rest[:open])}

	for _, p := range strings.Split(rest[open+1:closing], ",") {
		if p = strings.TrimSpace(p); p != "" {
			unit.Params = append(unit.Params, p)
			unit.Locals = append(unit.Locals, p)
		}
	}

	if loc := strings.TrimSpace(rest[closing+1:]); loc != "" {
		loc, ok = strings.CutPrefix(loc, "@")
		if !ok {
			return nil, fmt.Errorf("malformed location %q: %w", loc, ErrSyntax)
		}

		file, line, found := strings.Cut(loc, ":")
		unit.Filename = file

		if found {
			n, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("malformed first line %q: %w", line, ErrSyntax)
			}

			unit.FirstLine = n
		}
	}

	return &asmFunc{unit: unit, labels: map[string]int{}, line: unit.FirstLine}, nil
}

func (f *asmFunc) parseLine(text string, lineNo int) error {
	if rest, ok := strings.CutPrefix(text, ".line"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return fmt.Errorf("malformed .line %q: %w", rest, ErrSyntax)
		}

		f.line = n

		return nil
	}

	if label, ok := strings.CutSuffix(text, ":"); ok && !strings.ContainsAny(label, " \t") {
		if _, dup := f.labels[label]; dup {
			return fmt.Errorf("duplicate label %q: %w", label, ErrSyntax)
		}

		f.labels[label] = len(f.unit.Code)

		return nil
	}

	mnemonic, operand, _ := strings.Cut(text, " ")
	operand = strings.TrimSpace(operand)

	op, ok := ParseOpcode(mnemonic)
	if !ok {
		return fmt.Errorf("%q: %w", mnemonic, ErrUnknownOpcode)
	}

	instr := Instr{Op: op, Line: f.line}

	if op.HasArg() != (operand != "") {
		return fmt.Errorf("%s: operand %q: %w", op, operand, ErrSyntax)
	}

	arg, err := f.parseOperand(op, operand, lineNo)
	if err != nil {
		return err
	}

	instr.Arg = arg
	f.unit.Code = append(f.unit.Code, instr)

	return nil
}

func (f *asmFunc) parseOperand(op Opcode, operand string, lineNo int) (int, error) {
	switch {
	case !op.HasArg():
		return 0, nil
	case op.HasJump():
		f.jumps = append(f.jumps, pendingJump{pc: len(f.unit.Code), label: operand, lineNo: lineNo})

		return -1, nil
	case op.HasConst():
		k, err := parseLiteral(operand)
		if err != nil {
			return 0, err
		}

		f.unit.Consts = append(f.unit.Consts, k)

		return len(f.unit.Consts) - 1, nil
	case op.HasLocal():
		return indexOf(&f.unit.Locals, operand), nil
	case op.HasName():
		return indexOf(&f.unit.Names, operand), nil
	case op == COMPARE_OP:
		cmp, ok := ParseCompareOp(operand)
		if !ok {
			return 0, fmt.Errorf("compare operator %q: %w", operand, ErrSyntax)
		}

		return int(cmp), nil
	default:
		n, err := strconv.Atoi(operand)
		if err != nil {
			return 0, fmt.Errorf("%s: count %q: %w", op, operand, ErrSyntax)
		}

		return n, nil
	}
}

func (f *asmFunc) resolveJumps() error {
	for _, j := range f.jumps {
		target, ok := f.labels[j.label]
		if !ok {
			return fmt.Errorf("line %d: %q: %w", j.lineNo, j.label, ErrUndefinedLabel)
		}

		f.unit.Code[j.pc].Arg = target
	}

	return f.unit.Validate()
}

func indexOf(table *[]string, name string) int {
	for i, existing := range *table {
		if existing == name {
			return i
		}
	}

	*table = append(*table, name)

	return len(*table) - 1
}

func parseLiteral(s string) (any, error) {
	switch s {
	case "None":
		return nil, nil
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	}

	if ref, ok := strings.CutPrefix(s, funcRefPrefix); ok {
		return funcRef(ref), nil
	}

	if strings.HasPrefix(s, `"`) {
		v, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("string literal %s: %w", s, ErrSyntax)
		}

		return v, nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}

	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return fl, nil
	}

	return nil, fmt.Errorf("literal %q: %w", s, ErrSyntax)
}

// stripComment drops a trailing # comment that is not inside a string literal.
func stripComment(line string) string {
	inString := false
	escaped := false

	for i, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case r == '#' && !inString:
			return line[:i]
		}
	}

	return line
}
