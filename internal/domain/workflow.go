package domain

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/coverprobe/internal/adapter"
	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/config"
	"github.com/mouse-blink/coverprobe/internal/controller"
	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations"
	m "github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// ErrEntryNotFound is returned when a program names an entry function its
// source does not declare at top level.
var ErrEntryNotFound = errors.New("entry function not found")

// InspectArgs selects the programs to instrument.
type InspectArgs struct {
	Paths []m.Path
}

// RunArgs configures a traced run over the selected programs.
type RunArgs struct {
	InspectArgs
	Reports  m.Path
	Parallel int
}

// ViewArgs locates previously saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the interface for coverage operations.
type Workflow interface {
	Inspect(args InspectArgs) error
	Run(ctx context.Context, args RunArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fsAdapter   adapter.ProgramFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	cfg         config.Configuration
	log         zerolog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.ProgramFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	cfg config.Configuration,
	log zerolog.Logger,
) Workflow {
	return &workflow{
		fsAdapter:   fsAdapter,
		reportStore: reportStore,
		ui:          ui,
		cfg:         cfg,
		log:         log,
	}
}

// Inspect instruments every program without running it and displays what
// the instrumentation registered.
func (w *workflow) Inspect(args InspectArgs) error {
	if err := w.ui.Start(controller.WithInspectMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	programs, err := w.fsAdapter.Get(args.Paths)
	if err != nil {
		return w.ui.DisplayInspection(nil, fmt.Errorf("failed to load programs: %w", err))
	}

	summaries := make([]m.Summary, 0, len(programs))

	for _, program := range programs {
		s, err := w.newSession(program)
		if err != nil {
			return w.ui.DisplayInspection(nil, err)
		}

		summaries = append(summaries, s.summary(m.NewExecutionTrace(), s.static))
	}

	return w.ui.DisplayInspection(summaries, nil)
}

// View loads the reports saved by earlier runs and displays them.
func (w *workflow) View(args ViewArgs) error {
	if err := w.ui.Start(controller.WithViewMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	reports, err := w.reportStore.LoadReports(args.Reports)
	if err != nil {
		return w.ui.DisplayReports(nil, fmt.Errorf("failed to load reports: %w", err))
	}

	return w.ui.DisplayReports(reports, nil)
}

// Run executes every input of every program under the tracer, saves one
// report per input and displays aggregated coverage.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	programs, err := w.fsAdapter.Get(args.Paths)
	if err != nil {
		return fmt.Errorf("failed to load programs: %w", err)
	}

	if err := w.ui.Start(controller.WithRunMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	runs := 0
	for _, program := range programs {
		runs += max(len(program.Inputs), 1)
	}

	w.ui.DisplayUpcomingRuns(runs)

	summaries := make([]m.Summary, len(programs))
	reports := make([][]m.Report, len(programs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(args.Parallel, 1))

	for i, program := range programs {
		g.Go(func() error {
			summary, programReports, err := w.runProgram(gctx, program)
			if err != nil {
				return err
			}

			summaries[i], reports[i] = summary, programReports

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if args.Reports != "" {
		if err := w.reportStore.SaveReports(args.Reports, slices.Concat(reports...)); err != nil {
			return fmt.Errorf("failed to save reports: %w", err)
		}
	}

	return w.ui.DisplaySummary(summaries)
}

func (w *workflow) runProgram(ctx context.Context, program m.Program) (m.Summary, []m.Report, error) {
	s, err := w.newSession(program)
	if err != nil {
		return m.Summary{}, nil, err
	}

	exec := NewExecutor(s.tracer, s.interp, w.cfg.Timeout, w.log)

	inputs := program.Inputs
	if len(inputs) == 0 {
		inputs = [][]any{nil}
	}

	merged := m.NewExecutionTrace()
	reports := make([]m.Report, 0, len(inputs))

	for _, input := range inputs {
		args := make([]vm.Value, len(input))
		rendered := make([]string, len(input))

		for i, v := range input {
			args[i] = vm.FromGo(v)
			rendered[i] = vm.Repr(args[i])
		}

		w.ui.DisplayStartingRun(program.Name, rendered)

		result, err := exec.Execute(ctx, s.entry, args...)
		if err != nil {
			return m.Summary{}, nil, fmt.Errorf("failed to run %s: %w", program.Name, err)
		}

		merged.Merge(result.Trace)

		report := s.report(rendered, result)
		w.ui.DisplayCompletedRun(report)

		reports = append(reports, report)
	}

	w.log.Info().Str("program", program.Name).Int("runs", len(reports)).Msg("program traced")

	return s.summary(merged, s.dynamic), reports, nil
}

// session is one program assembled, instrumented and installed into its own
// interpreter.
type session struct {
	program m.Program
	tracer  *ExecutionTracer
	static  *ConstantPool
	dynamic *ConstantPool
	interp  *vm.Interpreter
	entry   *vm.Function
}

func (w *workflow) newSession(program m.Program) (*session, error) {
	units, err := bytecode.AssembleModule(program.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble %s: %w", program.Name, err)
	}

	s := &session{
		program: program,
		tracer:  NewExecutionTracer(WithTracerLogger(w.log)),
		static:  CollectConstants(units...),
		dynamic: NewConstantPool(),
		interp:  vm.NewInterpreter(),
	}

	provider := NewDynamicConstantProvider(
		s.dynamic,
		NewStaticConstantProvider(s.static, w.cfg.Seed),
		w.cfg.SeedingProbability,
		w.cfg.MaxConstantLength,
		w.cfg.Seed,
	)

	transformer := NewInstrumentationTransformer(s.tracer, w.adapters(s.tracer, provider), w.log,
		WithIgnoreRules(ParseIgnoreRules(program.Source), w.cfg.Adapters))

	for _, unit := range units {
		instrumented, err := transformer.InstrumentModule(unit)
		if err != nil {
			return nil, fmt.Errorf("failed to instrument %s: %w", program.Name, err)
		}

		s.interp.Globals[unit.Name] = vm.NewFunction(instrumented)
	}

	entry, ok := s.interp.Globals[program.Entry].(*vm.Function)
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", program.Name, program.Entry, ErrEntryNotFound)
	}

	s.entry = entry

	w.log.Debug().Str("program", program.Name).Int("units", len(units)).Msg("program instrumented")

	return s, nil
}

// adapters builds the configured adapters in configuration order, index
// aligned with the configured names.
func (w *workflow) adapters(tracer instrumentations.Tracer, sink instrumentations.ConstantSink) []instrumentations.Adapter {
	opts := []instrumentations.Option{instrumentations.WithLogger(w.log)}
	out := make([]instrumentations.Adapter, 0, len(w.cfg.Adapters))

	for _, name := range w.cfg.Adapters {
		switch name {
		case config.AdapterBranch:
			out = append(out, instrumentations.NewBranchCoverage(tracer, opts...))
		case config.AdapterLine:
			out = append(out, instrumentations.NewLineCoverage(tracer, opts...))
		case config.AdapterSeeding:
			out = append(out, instrumentations.NewDynamicSeeding(sink, opts...))
		default:
			out = append(out, instrumentations.NopAdapter{})
		}
	}

	return out
}

func (s *session) report(input []string, result m.ExecutionResult) m.Report {
	report := m.Report{
		Program:      s.program.Name,
		Entry:        s.program.Entry,
		Input:        input,
		TimedOut:     result.TimedOut,
		CodeObjects:  result.Trace.ExecutedCodeObjects.Sorted(),
		CoveredLines: s.tracer.LineIDsToLineNumbers(result.Trace.CoveredLineIDs),
		Predicates:   []m.PredicateReport{},
	}

	switch {
	case result.TimedOut:
	case result.Exception != nil:
		report.Exception = result.Exception.Error()
	default:
		report.Output = vm.Repr(result.Value)
	}

	known := s.tracer.GetKnownData()

	for _, id := range slices.Sorted(maps.Keys(result.Trace.ExecutedPredicates)) {
		meta := known.ExistingPredicates[id]
		report.Predicates = append(report.Predicates, m.PredicateReport{
			ID:            id,
			Line:          meta.Line,
			Kind:          string(meta.Kind),
			Executions:    result.Trace.ExecutedPredicates[id],
			TrueDistance:  result.Trace.TrueDistances[id],
			FalseDistance: result.Trace.FalseDistances[id],
		})
	}

	return report
}

// summary counts registered and covered goals. A branch is covered when its
// outcome was observed, that is its distance reached zero.
func (s *session) summary(trace m.ExecutionTrace, pool *ConstantPool) m.Summary {
	known := s.tracer.GetKnownData()

	branches := 0

	for id := range known.ExistingPredicates {
		if d, ok := trace.TrueDistances[id]; ok && d == 0 {
			branches++
		}

		if d, ok := trace.FalseDistances[id]; ok && d == 0 {
			branches++
		}
	}

	constants := make(map[m.ValueType][]string)

	for typ, values := range pool.Snapshot() {
		for _, v := range values {
			constants[typ] = append(constants[typ], vm.Repr(v))
		}
	}

	return m.Summary{
		Program:           s.program.Name,
		CodeObjects:       len(known.ExistingCodeObjects),
		CoveredCodeObject: len(trace.ExecutedCodeObjects),
		Predicates:        len(known.ExistingPredicates),
		CoveredBranches:   branches,
		Lines:             len(known.ExistingLines),
		CoveredLines:      len(trace.CoveredLineIDs),
		Constants:         constants,
	}
}
