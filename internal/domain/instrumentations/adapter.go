// Package instrumentations contains the adapters that insert probes into the
// basic blocks of a code unit.
package instrumentations

import (
	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// Adapter inserts probes for one coverage criterion. The transformer calls
// VisitEntryNode once per code unit, VisitNode for every block of the
// original layout and VisitGraph after all blocks were visited.
type Adapter interface {
	VisitEntryNode(graph *cfg.Graph, block *cfg.Block, codeObjectID int)
	VisitNode(graph *cfg.Graph, codeObjectID int, block *cfg.Block)
	VisitGraph(graph *cfg.Graph, codeObjectID int)
}

// NopAdapter implements Adapter with no-ops. Embed it to override only the
// visits an adapter cares about.
type NopAdapter struct{}

// VisitEntryNode does nothing.
func (NopAdapter) VisitEntryNode(*cfg.Graph, *cfg.Block, int) {}

// VisitNode does nothing.
func (NopAdapter) VisitNode(*cfg.Graph, int, *cfg.Block) {}

// VisitGraph does nothing.
func (NopAdapter) VisitGraph(*cfg.Graph, int) {}

// Tracer is the part of the execution tracer the probes talk to.
type Tracer interface {
	RegisterPredicate(meta model.PredicateMetaData) int
	RegisterLine(meta model.LineMetaData) int
	RegisterBranchLessCodeObject(codeObjectID int)

	ExecutedCodeObject(thread vm.ThreadID, codeObjectID int)
	ExecutedBoolPredicate(thread vm.ThreadID, value any, predicate int)
	ExecutedComparePredicate(thread vm.ThreadID, lhs, rhs any, predicate int, op bytecode.CompareOp)
	ExecutedExceptionMatch(thread vm.ThreadID, raised, expected any, predicate int)
	TrackLineVisit(thread vm.ThreadID, lineID int)
}

// ConstantSink receives values observed at runtime for dynamic seeding.
type ConstantSink interface {
	AddValue(value any)
	AddValueForStrings(value string, method string)
}
