package controller

import "testing"

func TestStartOptions(t *testing.T) {
	cfg := &StartConfig{}
	WithRunMode()(cfg)
	if cfg.mode != ModeRun {
		t.Fatalf("WithRunMode() mode = %v, want %v", cfg.mode, ModeRun)
	}

	WithInspectMode()(cfg)
	if cfg.mode != ModeInspect {
		t.Fatalf("WithInspectMode() mode = %v, want %v", cfg.mode, ModeInspect)
	}

	WithViewMode()(cfg)
	if cfg.mode != ModeView {
		t.Fatalf("WithViewMode() mode = %v, want %v", cfg.mode, ModeView)
	}
}
