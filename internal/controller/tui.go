package controller

import (
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/coverprobe/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	started bool
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the run view. Inspection and report output is static and
// needs no running program.
func (t *TUI) Start(options ...StartOption) error {
	cfg := &StartConfig{mode: ModeRun}
	for _, option := range options {
		option(cfg)
	}

	if cfg.mode == ModeInspect || cfg.mode == ModeView {
		return nil
	}

	return t.startWithModel(newRunModel())
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	opts := []tea.ProgramOption{tea.WithOutput(t.output)}
	if IsTTY(t.output) {
		opts = append(opts, tea.WithInputTTY())
	} else {
		opts = append(opts, tea.WithInput(nil))
	}

	t.program = tea.NewProgram(model, opts...)
	t.done = make(chan struct{})
	t.started = true

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

func (t *TUI) ensureStarted() {
	_ = t.startWithModel(newRunModel())
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(msg)
}

// Close stops the program after it has drawn everything sent so far.
func (t *TUI) Close() {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	t.Wait()
}

// Wait blocks until the program exits.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	<-done
}

// DisplayInspection renders the static instrumentation results.
func (t *TUI) DisplayInspection(summaries []m.Summary, err error) error {
	if err != nil {
		_, _ = fmt.Fprintf(t.output, "inspection error: %v\n", err)

		return err
	}

	_, err = fmt.Fprintln(t.output, renderInspection(summaries))

	return err
}

// DisplayReports renders saved reports grouped under their program.
func (t *TUI) DisplayReports(reports []m.Report, err error) error {
	if err != nil {
		_, _ = fmt.Fprintf(t.output, "view error: %v\n", err)

		return err
	}

	_, err = fmt.Fprintln(t.output, renderReports(reports))

	return err
}

// DisplayUpcomingRuns shows the number of inputs about to be executed.
func (t *TUI) DisplayUpcomingRuns(count int) {
	t.ensureStarted()
	t.send(upcomingMsg{count: count})
}

// DisplayStartingRun shows the run in progress.
func (t *TUI) DisplayStartingRun(program string, input []string) {
	t.send(startRunMsg{program: program, input: strings.Join(input, ", ")})
}

// DisplayCompletedRun adds a finished run to the results list.
func (t *TUI) DisplayCompletedRun(report m.Report) {
	t.send(completedRunMsg{
		program: report.Program,
		input:   strings.Join(report.Input, ", "),
		outcome: formatOutcome(report),
		status:  runStatus(report),
		lines:   len(report.CoveredLines),
	})
}

// DisplaySummary switches the run view to the coverage summary.
func (t *TUI) DisplaySummary(summaries []m.Summary) error {
	rows := make([]summaryRow, 0, len(summaries))

	for _, summary := range summaries {
		rows = append(rows, summaryRow{
			program:  summary.Program,
			objects:  formatRatio(summary.CoveredCodeObject, summary.CodeObjects),
			branches: formatRatio(summary.CoveredBranches, 2*summary.Predicates),
			lines:    formatRatio(summary.CoveredLines, summary.Lines),
		})
	}

	t.ensureStarted()
	t.send(summaryMsg{rows: rows})

	return nil
}

func runStatus(report m.Report) string {
	switch {
	case report.TimedOut:
		return "timeout"
	case report.Exception != "":
		return "raised"
	default:
		return "returned"
	}
}

func renderInspection(summaries []m.Summary) string {
	title := titleStyle().Render("Coverprobe Inspection")

	if len(summaries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, summaryStyle().Render("No programs found"))
	}

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	programStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(20)

	rows := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, fmt.Sprintf("%s  objects %s  predicates %s  lines %s  constants %s",
			programStyle.Render(truncateToWidth(summary.Program, 20)),
			accentStyle.Render(fmt.Sprintf("%d", summary.CodeObjects)),
			accentStyle.Render(fmt.Sprintf("%d", summary.Predicates)),
			accentStyle.Render(fmt.Sprintf("%d", summary.Lines)),
			formatConstants(summary.Constants),
		))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}

func renderReports(reports []m.Report) string {
	title := titleStyle().Render("Coverprobe Reports")

	if len(reports) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, summaryStyle().Render("No reports found"))
	}

	programStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(16)
	statusStyle := lipgloss.NewStyle().Bold(true).Width(10)

	rows := make([]string, 0, len(reports))
	for _, report := range reports {
		status := runStatus(report)
		rows = append(rows, fmt.Sprintf("%s %s %s(%s) -> %s  lines %v",
			programStyle.Render(truncateToWidth(report.Program, 16)),
			statusStyle.Foreground(statusColors[status]).Render(status),
			report.Entry,
			strings.Join(report.Input, ", "),
			formatOutcome(report),
			report.CoveredLines,
		))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}
