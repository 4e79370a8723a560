package controller

import (
	"bytes"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/coverprobe/internal/model"
)

type quitModel struct{}

func (q quitModel) Init() tea.Cmd { return tea.Quit }
func (q quitModel) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return q, tea.Quit
}
func (q quitModel) View() string { return "" }

func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("timed out")
	}
}

func TestTUI_StartWithModel_WaitAndClose(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.startWithModel(quitModel{}))

	tui.send(upcomingMsg{count: 2})

	within(t, 2*time.Second, tui.Wait)
	within(t, 2*time.Second, tui.Close)
}

func TestTUI_Send_And_EnsureStarted_NoPanic(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	// no program yet
	tui.send(upcomingMsg{count: 1})
	tui.Close()
	tui.Wait()

	tui.started = true
	tui.ensureStarted()
	assert.Nil(t, tui.program)
}

func TestTUI_InspectModeDoesNotStartProgram(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.Start(WithInspectMode()))
	assert.False(t, tui.started)

	require.NoError(t, tui.DisplayInspection([]m.Summary{{
		Program:     "classify",
		CodeObjects: 2,
		Predicates:  4,
		Lines:       7,
		Constants:   map[m.ValueType][]string{m.ValueString: {`"a"`}},
	}}, nil))

	output := buf.String()
	assert.Contains(t, output, "Coverprobe Inspection")
	assert.Contains(t, output, "classify")
	assert.Contains(t, output, "str:1")
}

func TestTUI_DisplayInspection_Error(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")

	err := NewTUI(&buf).DisplayInspection(nil, boom)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "inspection error: boom")
}

func TestTUI_RunLifecycle(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.Start(WithRunMode()))
	tui.DisplayUpcomingRuns(1)
	tui.DisplayStartingRun("classify", []string{"5"})
	tui.DisplayCompletedRun(m.Report{Program: "classify", Entry: "classify", Input: []string{"5"}, Output: `"pos"`})
	require.NoError(t, tui.DisplaySummary([]m.Summary{{Program: "classify", CodeObjects: 1, CoveredCodeObject: 1}}))

	within(t, 5*time.Second, tui.Close)
	assert.NotEmpty(t, buf.String())
}

func TestRunStatus(t *testing.T) {
	assert.Equal(t, "returned", runStatus(m.Report{Output: "1"}))
	assert.Equal(t, "raised", runStatus(m.Report{Exception: "ValueError"}))
	assert.Equal(t, "timeout", runStatus(m.Report{TimedOut: true, Exception: "ignored"}))
}

func TestRenderInspection_Empty(t *testing.T) {
	assert.Contains(t, renderInspection(nil), "No programs found")
}

func TestTUI_ViewModeDoesNotStartProgram(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.Start(WithViewMode()))
	assert.False(t, tui.started)

	require.NoError(t, tui.DisplayReports([]m.Report{
		{Program: "classify", Entry: "classify", Input: []string{"5"}, Output: `"pos"`, CoveredLines: []int{2, 3}},
		{Program: "countdown", Entry: "countdown", Input: []string{"-1"}, TimedOut: true},
	}, nil))

	output := buf.String()
	assert.Contains(t, output, "Coverprobe Reports")
	assert.Contains(t, output, `classify(5) -> "pos"`)
	assert.Contains(t, output, "countdown(-1) -> timed out")
}

func TestTUI_DisplayReports_Error(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")

	err := NewTUI(&buf).DisplayReports(nil, boom)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "view error: boom")
}

func TestRenderReports_Empty(t *testing.T) {
	assert.Contains(t, renderReports(nil), "No reports found")
}
