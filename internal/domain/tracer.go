package domain

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations"
	m "github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// NoThread is never armed; a disarmed tracer ignores every runtime call.
const NoThread vm.ThreadID = 0

// ExecutionTracer assigns identifiers to code objects, predicates and lines
// during instrumentation and records what executes at runtime. Runtime calls
// are only recorded for the thread the tracer is armed with.
type ExecutionTracer struct {
	armed atomic.Uint64

	mu      sync.Mutex
	known   m.KnownData
	lineIDs map[m.LineMetaData]int
	trace   m.ExecutionTrace
	log     zerolog.Logger
}

// TracerOption configures an ExecutionTracer.
type TracerOption func(*ExecutionTracer)

// WithTracerLogger sets the tracer's logger.
func WithTracerLogger(log zerolog.Logger) TracerOption {
	return func(t *ExecutionTracer) { t.log = log }
}

// NewExecutionTracer creates a disarmed tracer with empty known data.
func NewExecutionTracer(opts ...TracerOption) *ExecutionTracer {
	t := &ExecutionTracer{
		known:   m.NewKnownData(),
		lineIDs: make(map[m.LineMetaData]int),
		trace:   m.NewExecutionTrace(),
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SetCurrentThreadIdentifier arms the tracer for thread.
func (t *ExecutionTracer) SetCurrentThreadIdentifier(thread vm.ThreadID) {
	t.armed.Store(uint64(thread))
}

// Disarm stops recording until the tracer is armed again.
func (t *ExecutionTracer) Disarm() {
	t.armed.Store(uint64(NoThread))
}

// CurrentThreadIdentifier returns the armed thread, or NoThread.
func (t *ExecutionTracer) CurrentThreadIdentifier() vm.ThreadID {
	return vm.ThreadID(t.armed.Load())
}

func (t *ExecutionTracer) accepts(thread vm.ThreadID) bool {
	return thread != NoThread && uint64(thread) == t.armed.Load()
}

// RegisterCodeObject assigns the next code object id.
func (t *ExecutionTracer) RegisterCodeObject(meta m.CodeObjectMetaData) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := len(t.known.ExistingCodeObjects)
	t.known.ExistingCodeObjects[id] = meta

	t.log.Debug().Int("id", id).Str("name", meta.Name).Int("parent", meta.ParentID).Msg("registered code object")

	return id
}

// RegisterBranchLessCodeObject marks a code object that has no predicates.
func (t *ExecutionTracer) RegisterBranchLessCodeObject(codeObjectID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.known.BranchLessCodeObjects.Add(codeObjectID)
}

// RegisterPredicate assigns the next predicate id.
func (t *ExecutionTracer) RegisterPredicate(meta m.PredicateMetaData) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := len(t.known.ExistingPredicates)
	t.known.ExistingPredicates[id] = meta

	return id
}

// RegisterLine returns the id of the line, assigning a new one the first time
// the metadata is seen.
func (t *ExecutionTracer) RegisterLine(meta m.LineMetaData) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.lineIDs[meta]; ok {
		return id
	}

	id := len(t.known.ExistingLines)
	t.known.ExistingLines[id] = meta
	t.lineIDs[meta] = id

	return id
}

// ExecutedCodeObject records an entry into a code object.
func (t *ExecutionTracer) ExecutedCodeObject(thread vm.ThreadID, codeObjectID int) {
	if !t.accepts(thread) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.trace.ExecutedCodeObjects.Add(codeObjectID)
}

// ExecutedBoolPredicate records a truthiness test.
func (t *ExecutionTracer) ExecutedBoolPredicate(thread vm.ThreadID, value any, predicate int) {
	if !t.accepts(thread) {
		return
	}

	dTrue, dFalse := BoolDistances(value)
	t.update(predicate, dTrue, dFalse)
}

// ExecutedComparePredicate records a comparison.
func (t *ExecutionTracer) ExecutedComparePredicate(thread vm.ThreadID, lhs, rhs any, predicate int, op bytecode.CompareOp) {
	if !t.accepts(thread) {
		return
	}

	dTrue, dFalse := CompareDistances(op, lhs, rhs)
	t.update(predicate, dTrue, dFalse)
}

// ExecutedExceptionMatch records an exception handler type check.
func (t *ExecutionTracer) ExecutedExceptionMatch(thread vm.ThreadID, raised, expected any, predicate int) {
	if !t.accepts(thread) {
		return
	}

	dTrue, dFalse := ExceptionDistances(raised, expected)
	t.update(predicate, dTrue, dFalse)
}

// TrackLineVisit records a visited line.
func (t *ExecutionTracer) TrackLineVisit(thread vm.ThreadID, lineID int) {
	if !t.accepts(thread) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.trace.CoveredLineIDs.Add(lineID)
}

func (t *ExecutionTracer) update(predicate int, dTrue, dFalse float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trace.UpdatePredicateDistances(predicate, dTrue, dFalse)
}

// GetKnownData returns a copy of the static registry.
func (t *ExecutionTracer) GetKnownData() m.KnownData {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.known.Clone()
}

// GetTrace returns a copy of the active trace. The trace keeps accumulating.
func (t *ExecutionTracer) GetTrace() m.ExecutionTrace {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.trace.Clone()
}

// TakeTrace returns the active trace and replaces it with an empty one.
func (t *ExecutionTracer) TakeTrace() m.ExecutionTrace {
	t.mu.Lock()
	defer t.mu.Unlock()

	trace := t.trace
	t.trace = m.NewExecutionTrace()

	return trace
}

// ClearTrace starts a fresh trace.
func (t *ExecutionTracer) ClearTrace() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trace = m.NewExecutionTrace()
}

// Reset forgets known data and the trace and disarms the tracer.
func (t *ExecutionTracer) Reset() {
	t.Disarm()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.known = m.NewKnownData()
	t.lineIDs = make(map[m.LineMetaData]int)
	t.trace = m.NewExecutionTrace()
}

// LineIDsToLineNumbers maps line ids to the distinct line numbers they
// denote, in ascending order. Unknown ids are skipped.
func (t *ExecutionTracer) LineIDsToLineNumbers(ids m.IDSet) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	numbers := m.NewIDSet()

	for id := range ids {
		if meta, ok := t.known.ExistingLines[id]; ok {
			numbers.Add(meta.LineNumber)
		}
	}

	return numbers.Sorted()
}

var _ instrumentations.Tracer = (*ExecutionTracer)(nil)
