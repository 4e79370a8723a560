package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

var statusColors = map[string]lipgloss.Color{
	"returned": lipgloss.Color("2"), // Green
	"raised":   lipgloss.Color("3"), // Yellow
	"timeout":  lipgloss.Color("1"), // Red
}

// runDelegate renders one finished run per line.
type runDelegate struct{}

func (d runDelegate) Height() int  { return 1 }
func (d runDelegate) Spacing() int { return 0 }
func (d runDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d runDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	run, ok := item.(runItem)
	if !ok {
		return
	}

	programStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(16)
	statusStyle := lipgloss.NewStyle().Bold(true).Width(10)
	outcomeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	if color, ok := statusColors[run.status]; ok {
		statusStyle = statusStyle.Foreground(color)
	} else {
		statusStyle = statusStyle.Foreground(lipgloss.Color("8"))
	}

	if index == m.Index() {
		programStyle = programStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
		statusStyle = statusStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
		outcomeStyle = outcomeStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	}

	width := m.Width() - 30

	line := fmt.Sprintf("%s  %s  %s",
		programStyle.Render(truncateToWidth(run.program, 16)),
		statusStyle.Render(run.status),
		outcomeStyle.Render(truncateToWidth(fmt.Sprintf("(%s) -> %s", run.input, run.outcome), width)),
	)
	_, _ = fmt.Fprint(w, line)
}

// runModel shows progress while inputs execute and the coverage summary
// once they are all done.
type runModel struct {
	width       int
	height      int
	progressBar progress.Model
	current     string
	total       int
	completed   int
	rendered    bool
	finished    bool
	results     []runItem
	resultsList list.Model
	summary     []summaryRow
}

func newRunModel() runModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	resultsList := list.New([]list.Item{}, runDelegate{}, 80, 10)
	resultsList.SetShowPagination(false)
	resultsList.SetShowFilter(true)
	resultsList.SetShowHelp(false)
	resultsList.SetShowTitle(false)
	resultsList.SetShowStatusBar(false)

	return runModel{
		progressBar: prog,
		resultsList: resultsList,
	}
}

func (m runModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)

	case tea.KeyMsg:
		m, cmd = m.handleKeyMsg(msg)

	case tickMsg:
		return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case upcomingMsg:
		m.total = msg.count
		m.completed = 0
		m.rendered = true

	case startRunMsg:
		m.current = fmt.Sprintf("%s(%s)", msg.program, msg.input)
		m.rendered = true

	case completedRunMsg:
		m = m.handleCompletedRun(msg)

	case summaryMsg:
		m.summary = msg.rows
		m.finished = true
		m.rendered = true
	}

	return m, cmd
}

func (m runModel) View() string {
	if !m.rendered {
		return "Initializing runs…\n"
	}

	if m.finished {
		return m.viewSummary()
	}

	return m.viewProgress()
}

func (m runModel) viewProgress() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle().Render("Coverprobe Traced Runs")
	summary := summaryStyle().Render(fmt.Sprintf(
		"Progress: %s / %s",
		accentStyle.Render(fmt.Sprintf("%d", m.completed)),
		accentStyle.Render(fmt.Sprintf("%d", m.total)),
	))

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}

	progressView := lipgloss.NewStyle().Padding(0, 2).Render(m.progressBar.ViewAs(percent))

	current := m.current
	if current == "" {
		current = "idle"
	}

	currentBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Margin(1, 1, 1, 0).
		Render(lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(current))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		currentBox,
		footerStyle(m.width).Render("Press q to quit"),
	)
}

func (m runModel) viewSummary() string {
	title := titleStyle().Render("Coverprobe Coverage")

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8"))

	rows := []string{headerStyle.Render(fmt.Sprintf("%-16s  %-16s  %-16s  %-16s", "Program", "Code Objects", "Branches", "Lines"))}
	for _, row := range m.summary {
		rows = append(rows, fmt.Sprintf("%-16s  %-16s  %-16s  %-16s",
			truncateToWidth(row.program, 16), row.objects, row.branches, row.lines))
	}

	summaryBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	resultsBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(m.resultsList.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summaryBox,
		resultsBox,
		footerStyle(m.width).Render("↑/k up • ↓/j down • / filter • q quit"),
	)
}

func (m runModel) handleCompletedRun(msg completedRunMsg) runModel {
	m.completed++
	m.current = ""
	m.rendered = true
	m.results = append(m.results, runItem(msg))

	items := make([]list.Item, 0, len(m.results))
	for _, r := range m.results {
		items = append(items, r)
	}

	m.resultsList.SetItems(items)

	return m
}

func (m runModel) handleKeyMsg(msg tea.KeyMsg) (runModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	if !m.finished {
		return m, nil
	}

	var cmd tea.Cmd

	m.resultsList, cmd = m.resultsList.Update(msg)

	return m, cmd
}

func (m runModel) handleWindowSize(msg tea.WindowSizeMsg) runModel {
	m.width = msg.Width
	m.height = msg.Height

	m.progressBar.Width = max(m.width-8, 20)

	m.resultsList.SetSize(max(m.width-6, 20), max(m.height-12, 5))

	return m
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)
}

func summaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)
}

func footerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(width)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + ellipsis
}
