package controller

// Message types.
type upcomingMsg struct {
	count int
}

type startRunMsg struct {
	program string
	input   string
}

type completedRunMsg struct {
	program string
	input   string
	outcome string
	status  string
	lines   int
}

type summaryMsg struct {
	rows []summaryRow
}

type summaryRow struct {
	program  string
	objects  string
	branches string
	lines    string
}

// runItem is a finished run shown in the results list.
type runItem struct {
	program string
	input   string
	outcome string
	status  string
	lines   int
}

func (r runItem) FilterValue() string {
	return r.program + " " + r.input + " " + r.status
}
