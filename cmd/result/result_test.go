package result

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/weatherfile/internal/config"
	"github.com/leefowlercu/weatherfile/internal/storage"
	"github.com/leefowlercu/weatherfile/internal/testutil"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func seedResult(t *testing.T, text string) {
	t.Helper()
	store, err := storage.Open(context.Background(), config.GetPath("storage.path"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SetResult(context.Background(), text, time.Now()))
}

func TestShowCmd_Empty(t *testing.T) {
	testutil.NewTestEnv(t)

	stdout, stderr, err := execute(t, ShowCmd)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No result yet")
}

func TestShowCmd_PrintsStoredResult(t *testing.T) {
	testutil.NewTestEnv(t)
	seedResult(t, "Current temperature in Oslo is 4.2°C")

	stdout, _, err := execute(t, ShowCmd)
	require.NoError(t, err)
	assert.Equal(t, "Current temperature in Oslo is 4.2°C\n", stdout)
}

func TestClearCmd(t *testing.T) {
	testutil.NewTestEnv(t)
	seedResult(t, "something")

	_, stderr, err := execute(t, ClearCmd)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Connection closed successfully")

	stdout, stderr, err := execute(t, ShowCmd)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No result yet")
}

func TestClearCmd_RejectsArgs(t *testing.T) {
	testutil.NewTestEnv(t)

	_, _, err := execute(t, ClearCmd, "extra")
	assert.Error(t, err)
}
