package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite_CreatesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := NewDefaultConfig()
	if err := Write(&cfg, configPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Write() did not create config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func TestWrite_CreatesDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "nested", "config.yaml")

	cfg := NewDefaultConfig()
	if err := Write(&cfg, configPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(configPath)); os.IsNotExist(err) {
		t.Error("Write() did not create directory")
	}
}

func TestWrite_HeaderAndContent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := NewDefaultConfig()
	if err := Write(&cfg, configPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "# weatherfile configuration\n") {
		t.Error("config should start with header comment")
	}
	for _, key := range []string{"log_level: info", "base_url:", "commit_delay_ms: 500", "storage:"} {
		if !strings.Contains(content, key) {
			t.Errorf("config should contain %q", key)
		}
	}
	if strings.Contains(content, "api_key:") {
		t.Error("empty api_key should be omitted")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := NewDefaultConfig()
	cfg.Weather.Units = "imperial"
	cfg.Files.OutputDir = "/data/weather"
	if err := Write(&cfg, configPath); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Weather.Units != "imperial" || loaded.Files.OutputDir != "/data/weather" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if len(loaded.Files.AcceptedTypes) != 2 {
		t.Errorf("AcceptedTypes = %v", loaded.Files.AcceptedTypes)
	}
}
