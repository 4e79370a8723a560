package controller

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
}

func TestIsTTY(t *testing.T) {
	regular, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer regular.Close()

	closed, err := os.Create(filepath.Join(t.TempDir(), "closed.txt"))
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	assert.False(t, IsTTY(&bytes.Buffer{}), "buffer")
	assert.False(t, IsTTY(regular), "regular file")
	assert.False(t, IsTTY(closed), "closed file")

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip("null device not available")
	}
	defer devNull.Close()

	assert.True(t, IsTTY(devNull), "character device")
}
