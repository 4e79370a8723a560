// Package controller provides output adapters for displaying coverage results.
package controller

import (
	m "github.com/mouse-blink/coverprobe/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeInspect StartMode = iota
	ModeRun
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithInspectMode sets the UI to static inspection mode.
func WithInspectMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeInspect
	}
}

// WithRunMode sets the UI to traced execution mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to static report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// UI defines the interface for displaying instrumentation and coverage results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayInspection(summaries []m.Summary, err error) error
	DisplayUpcomingRuns(count int)
	DisplayStartingRun(program string, input []string)
	DisplayCompletedRun(report m.Report)
	DisplaySummary(summaries []m.Summary) error
	DisplayReports(reports []m.Report, err error) error
}
