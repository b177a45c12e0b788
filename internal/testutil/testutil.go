// Package testutil provides testing utilities for isolated test environments.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leefowlercu/weatherfile/internal/config"
)

// TestEnv provides an isolated test environment with its own config directory.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	OutputDir string
}

// NewTestEnv creates an isolated test environment.
// Environment variables override every path, so tests do not touch the
// user's real config, session database, or log file.
// Cleanup is automatic via t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	outputDir := filepath.Join(root, "out")
	for _, dir := range []string{configDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create test dir %s: %v", dir, err)
		}
	}

	t.Setenv(config.ConfigDirEnv, configDir)
	t.Setenv("WEATHERFILE_STORAGE_PATH", filepath.Join(configDir, "weatherfile.db"))
	t.Setenv("WEATHERFILE_LOG_FILE", filepath.Join(configDir, "weatherfile.log"))
	t.Setenv("WEATHERFILE_FILES_OUTPUT_DIR", outputDir)
	t.Setenv("WEATHERFILE_FILES_COMMIT_DELAY_MS", "0")
	t.Setenv("WEATHERFILE_WEATHER_API_KEY", "")

	config.Reset()
	if err := config.Init(); err != nil {
		t.Fatalf("failed to initialize test config: %v", err)
	}

	env := &TestEnv{
		t:         t,
		ConfigDir: configDir,
		OutputDir: outputDir,
	}

	t.Cleanup(func() {
		config.Reset()
	})

	return env
}

// StoragePath returns the path where the test session database will be created.
func (e *TestEnv) StoragePath() string {
	return filepath.Join(e.ConfigDir, "weatherfile.db")
}

// CreateTestFile creates a file with the given content in a fresh temp directory.
// Returns the absolute path to the created file.
func (e *TestEnv) CreateTestFile(name, content string) string {
	e.t.Helper()

	filePath := filepath.Join(e.t.TempDir(), name)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to create test file %s: %v", filePath, err)
	}
	return filePath
}
