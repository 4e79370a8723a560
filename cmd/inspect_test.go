package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/config"
	"github.com/mouse-blink/coverprobe/internal/domain"
	m "github.com/mouse-blink/coverprobe/internal/model"
)

func TestInspectCmd(t *testing.T) {
	var cfg config.Configuration

	cmd, mockWorkflow, _ := newTestRootCmd(t, &cfg, newInspectCmd())
	mockWorkflow.EXPECT().Inspect(domain.InspectArgs{Paths: []m.Path{"./examples/..."}}).Return(nil).Once()

	cmd.SetArgs([]string{"inspect", "--adapters", "line", "./examples/..."})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []string{config.AdapterLine}, cfg.Adapters)
}

func TestInspectCmd_Error(t *testing.T) {
	var cfg config.Configuration

	cmd, mockWorkflow, _ := newTestRootCmd(t, &cfg, newInspectCmd())

	failure := errors.New("no programs")
	mockWorkflow.EXPECT().Inspect(domain.InspectArgs{Paths: []m.Path{"./..."}}).Return(failure).Once()

	cmd.SetArgs([]string{"inspect"})
	require.ErrorIs(t, cmd.Execute(), failure)
}

func TestNewInspectCmd(t *testing.T) {
	cmd := newInspectCmd()

	assert.Equal(t, "inspect [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
