package instrumentations

import (
	"github.com/rs/zerolog"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

const (
	methodStartsWith = "startswith"
	methodEndsWith   = "endswith"
)

// DynamicSeeding copies values compared at runtime into a constant sink.
type DynamicSeeding struct {
	NopAdapter

	sink ConstantSink
	log  zerolog.Logger

	compareHook *vm.Builtin
	stringHook  *vm.Builtin
	affixHook   *vm.Builtin
}

// NewDynamicSeeding creates the dynamic seeding adapter.
func NewDynamicSeeding(sink ConstantSink, opts ...Option) *DynamicSeeding {
	o := newOptions(opts)

	return &DynamicSeeding{
		sink: sink,
		log:  o.log,
		compareHook: vm.NewBuiltin("seed_compare", func(_ *vm.Thread, args []vm.Value) (vm.Value, error) {
			for _, v := range args {
				sink.AddValue(v)
			}

			return nil, nil
		}),
		stringHook: vm.NewBuiltin("seed_string_predicate", func(_ *vm.Thread, args []vm.Value) (vm.Value, error) {
			if len(args) != 2 {
				return nil, vm.ErrStackUnderflow
			}

			s, ok := args[0].(string)
			method, _ := args[1].(string)

			if ok {
				sink.AddValueForStrings(s, method)
			}

			return nil, nil
		}),
		affixHook: vm.NewBuiltin("seed_affix", func(_ *vm.Thread, args []vm.Value) (vm.Value, error) {
			if len(args) != 2 {
				return nil, vm.ErrStackUnderflow
			}

			if v, ok := AffixValue(args[0], args[1]); ok {
				sink.AddValue(v)
			}

			return nil, nil
		}),
	}
}

// AffixValue builds the string that satisfies a startswith or endswith call:
// the affix prepended or appended to the receiver.
func AffixValue(method, arg vm.Value) (string, bool) {
	bound, ok := method.(*vm.BoundMethod)
	if !ok {
		return "", false
	}

	recv, ok := bound.Receiver.(string)
	if !ok {
		return "", false
	}

	affix, ok := arg.(string)
	if !ok {
		return "", false
	}

	switch bound.Name {
	case methodStartsWith:
		return affix + recv, true
	case methodEndsWith:
		return recv + affix, true
	}

	return "", false
}

type seedSite struct {
	original int
	kind     int
	method   string
}

const (
	siteCompare = iota
	siteStringPredicate
	siteAffix
)

// VisitNode instruments comparisons and string method calls in block.
func (d *DynamicSeeding) VisitNode(graph *cfg.Graph, codeObjectID int, block *cfg.Block) {
	names := graph.Unit().Names
	sites := d.findSites(block, names)

	for _, site := range sites {
		instr, pos := originalAt(block, site.original)
		p := newProbe(graph, instr.Line)

		switch site.kind {
		case siteCompare:
			p.op(bytecode.DUP_TOP_TWO, 0).
				constant(d.compareHook).
				op(bytecode.ROT_THREE, 0).
				call(2)
		case siteStringPredicate:
			p.op(bytecode.DUP_TOP, 0).
				constant(d.stringHook).
				op(bytecode.ROT_TWO, 0).
				constant(site.method).
				call(2)
		case siteAffix:
			p.op(bytecode.DUP_TOP_TWO, 0).
				constant(d.affixHook).
				op(bytecode.ROT_THREE, 0).
				call(2)
		}

		d.log.Debug().Int("code_object", codeObjectID).Int("line", instr.Line).
			Str("op", instr.Op.String()).Str("method", site.method).Msg("instrumented seeding site")

		block.Insert(pos, p.instrs()...)
	}
}

// findSites scans the original instructions of block. startswith and endswith
// are probed at their CALL_METHOD, where both the bound method and the
// argument are on the stack.
func (d *DynamicSeeding) findSites(block *cfg.Block, names []string) []seedSite {
	var (
		sites   []seedSite
		pending []string
	)

	for n := 0; n < block.OriginalLen(); n++ {
		instr, _ := originalAt(block, n)

		switch instr.Op {
		case bytecode.COMPARE_OP:
			sites = append(sites, seedSite{original: n, kind: siteCompare})
		case bytecode.LOAD_METHOD:
			name := names[instr.Arg]
			if _, ok := vm.StringPredicates[name]; ok {
				sites = append(sites, seedSite{original: n, kind: siteStringPredicate, method: name})
			}

			pending = append(pending, name)
		case bytecode.CALL_METHOD:
			if len(pending) == 0 {
				continue
			}

			name := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			if instr.Arg == 1 && (name == methodStartsWith || name == methodEndsWith) {
				sites = append(sites, seedSite{original: n, kind: siteAffix, method: name})
			}
		}
	}

	return sites
}

var _ Adapter = (*DynamicSeeding)(nil)
