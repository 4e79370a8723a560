package domain

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations"
	m "github.com/mouse-blink/coverprobe/internal/model"
)

// ErrAlreadyInstrumented is the panic value when a code unit produced by a
// transformer is instrumented again.
var ErrAlreadyInstrumented = errors.New("code unit is already instrumented")

// CodeObjectRegistry assigns code object ids.
type CodeObjectRegistry interface {
	RegisterCodeObject(meta m.CodeObjectMetaData) int
}

// InstrumentationTransformer runs a set of adapters over a code unit and all
// units nested in it.
type InstrumentationTransformer struct {
	tracer   CodeObjectRegistry
	adapters []instrumentations.Adapter
	names    []string
	ignore   IgnoreRules
	log      zerolog.Logger
}

// TransformerOption configures an InstrumentationTransformer.
type TransformerOption func(*InstrumentationTransformer)

// WithIgnoreRules skips the i-th adapter, named names[i], for the functions
// rules exclude it from.
func WithIgnoreRules(rules IgnoreRules, names []string) TransformerOption {
	return func(t *InstrumentationTransformer) {
		t.ignore = rules
		t.names = names
	}
}

// NewInstrumentationTransformer creates a transformer applying adapters in
// the given order.
func NewInstrumentationTransformer(tracer CodeObjectRegistry, adapters []instrumentations.Adapter, log zerolog.Logger, opts ...TransformerOption) *InstrumentationTransformer {
	t := &InstrumentationTransformer{tracer: tracer, adapters: adapters, log: log}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// activeAdapters returns the adapters not ignored for the named function.
func (t *InstrumentationTransformer) activeAdapters(function string) []instrumentations.Adapter {
	if len(t.names) == 0 {
		return t.adapters
	}

	active := make([]instrumentations.Adapter, 0, len(t.adapters))

	for i, adapter := range t.adapters {
		if i < len(t.names) && t.ignore.Skips(function, t.names[i]) {
			t.log.Debug().Str("unit", function).Str("adapter", t.names[i]).Msg("adapter ignored")

			continue
		}

		active = append(active, adapter)
	}

	return active
}

// InstrumentModule returns an instrumented copy of unit. It panics with
// ErrAlreadyInstrumented if unit is the output of a previous pass.
func (t *InstrumentationTransformer) InstrumentModule(unit *bytecode.CodeUnit) (*bytecode.CodeUnit, error) {
	return t.instrument(unit, m.NoParent)
}

func (t *InstrumentationTransformer) instrument(unit *bytecode.CodeUnit, parentID int) (*bytecode.CodeUnit, error) {
	if unit.Instrumented {
		panic(fmt.Errorf("%s: %w", unit.Name, ErrAlreadyInstrumented))
	}

	graph, err := cfg.Build(unit)
	if err != nil {
		return nil, fmt.Errorf("failed to split %s into blocks: %w", unit.Name, err)
	}

	blocks := graph.Blocks()

	id := t.tracer.RegisterCodeObject(m.CodeObjectMetaData{
		Name:       unit.Name,
		Filename:   unit.Filename,
		FirstLine:  unit.FirstLine,
		ParentID:   parentID,
		BlockCount: len(blocks),
	})

	adapters := t.activeAdapters(unit.Name)

	for _, adapter := range adapters {
		adapter.VisitEntryNode(graph, graph.Entry(), id)
	}

	for _, block := range blocks {
		for _, adapter := range adapters {
			adapter.VisitNode(graph, id, block)
		}
	}

	for _, adapter := range adapters {
		adapter.VisitGraph(graph, id)
	}

	out, err := graph.Emit()
	if err != nil {
		return nil, fmt.Errorf("failed to emit %s: %w", unit.Name, err)
	}

	for i, k := range out.Consts {
		nested, ok := k.(*bytecode.CodeUnit)
		if !ok {
			continue
		}

		instrumented, err := t.instrument(nested, id)
		if err != nil {
			return nil, err
		}

		out.Consts[i] = instrumented
	}

	out.Instrumented = true

	t.log.Debug().Str("unit", unit.Name).Int("code_object", id).
		Int("blocks", len(blocks)).Int("size", len(out.Code)).Msg("instrumented code unit")

	return out, nil
}
