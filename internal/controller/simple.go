package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/coverprobe/internal/model"
)

// SimpleUI implements UI by printing plain tables to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait returns immediately; there is nothing to close interactively.
func (s *SimpleUI) Wait() {}

// DisplayInspection prints the static instrumentation results or error.
func (s *SimpleUI) DisplayInspection(summaries []m.Summary, err error) error {
	if err != nil {
		s.printf("inspection error: %v\n", err)
		return err
	}

	if len(summaries) == 0 {
		s.printf("No programs found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Program", "Code Objects", "Predicates", "Lines", "Constants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	predicates := 0

	for _, summary := range summaries {
		table.Append([]string{
			summary.Program,
			fmt.Sprintf("%d", summary.CodeObjects),
			fmt.Sprintf("%d", summary.Predicates),
			fmt.Sprintf("%d", summary.Lines),
			formatConstants(summary.Constants),
		})

		predicates += summary.Predicates
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Programs %d", len(summaries)),
		"",
		fmt.Sprintf("%d", predicates),
		"",
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayUpcomingRuns shows the number of inputs about to be executed.
func (s *SimpleUI) DisplayUpcomingRuns(count int) {
	s.printf("Running %d input(s)\n", count)
}

// DisplayStartingRun is silent in plain mode; results are printed on completion.
func (s *SimpleUI) DisplayStartingRun(_ string, _ []string) {}

// DisplayCompletedRun prints one line per finished run.
func (s *SimpleUI) DisplayCompletedRun(report m.Report) {
	s.printf("%s(%s) -> %s\n", report.Entry, strings.Join(report.Input, ", "), formatOutcome(report))
}

// DisplaySummary prints aggregated coverage per program.
func (s *SimpleUI) DisplaySummary(summaries []m.Summary) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Program", "Code Objects", "Branches", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, summary := range summaries {
		table.Append([]string{
			summary.Program,
			formatRatio(summary.CoveredCodeObject, summary.CodeObjects),
			formatRatio(summary.CoveredBranches, 2*summary.Predicates),
			formatRatio(summary.CoveredLines, summary.Lines),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReports prints one row per saved report.
func (s *SimpleUI) DisplayReports(reports []m.Report, err error) error {
	if err != nil {
		s.printf("view error: %v\n", err)
		return err
	}

	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Program", "Input", "Outcome", "Lines", "Predicates"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, report := range reports {
		table.Append([]string{
			report.Program,
			strings.Join(report.Input, ", "),
			formatOutcome(report),
			fmt.Sprintf("%d", len(report.CoveredLines)),
			fmt.Sprintf("%d", len(report.Predicates)),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatOutcome(report m.Report) string {
	switch {
	case report.TimedOut:
		return "timed out"
	case report.Exception != "":
		return "raised " + report.Exception
	default:
		return report.Output
	}
}

func formatRatio(covered, total int) string {
	if total == 0 {
		return "-"
	}

	return fmt.Sprintf("%d/%d (%.1f%%)", covered, total, 100*float64(covered)/float64(total))
}

func formatConstants(constants map[m.ValueType][]string) string {
	parts := make([]string, 0, len(constants))

	for _, typ := range []m.ValueType{m.ValueInt, m.ValueFloat, m.ValueString} {
		if n := len(constants[typ]); n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", typ, n))
		}
	}

	if len(parts) == 0 {
		return "-"
	}

	return strings.Join(parts, " ")
}
