package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig_ReturnsNil(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil for valid config", err)
	}
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"zero log size", func(c *Config) { c.LogMaxSizeMB = 0 }, "log_max_size_mb"},
		{"negative log backups", func(c *Config) { c.LogMaxBackups = -1 }, "log_max_backups"},
		{"relative base url", func(c *Config) { c.Weather.BaseURL = "api/weather" }, "weather.base_url"},
		{"empty base url", func(c *Config) { c.Weather.BaseURL = "" }, "weather.base_url"},
		{"unknown units", func(c *Config) { c.Weather.Units = "kelvin" }, "weather.units"},
		{"zero timeout", func(c *Config) { c.Weather.TimeoutSeconds = 0 }, "weather.timeout_seconds"},
		{"negative rate", func(c *Config) { c.Weather.RequestsPerMinute = -5 }, "weather.requests_per_minute"},
		{"zero forecast entries", func(c *Config) { c.Weather.ForecastEntries = 0 }, "weather.forecast_entries"},
		{"zero max size", func(c *Config) { c.Files.MaxSizeBytes = 0 }, "files.max_size_bytes"},
		{"no accepted types", func(c *Config) { c.Files.AcceptedTypes = nil }, "files.accepted_types"},
		{"negative commit delay", func(c *Config) { c.Files.CommitDelayMs = -1 }, "files.commit_delay_ms"},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !IsValidationError(err) {
				t.Errorf("expected validation error, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %s", err.Error(), tt.field)
			}
		})
	}
}

func TestValidate_ZeroValuesAllowed(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Files.CommitDelayMs = 0
	cfg.Weather.RequestsPerMinute = 0
	cfg.LogMaxBackups = 0
	cfg.LogLevel = "DEBUG"

	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Weather.Units = "kelvin"
	cfg.Storage.Path = ""

	err := Validate(&cfg)
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d", len(errs))
	}
	if !strings.HasPrefix(err.Error(), "config validation failed:") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "weather.units", Message: "bad"}
	if err.Error() != "weather.units: bad" {
		t.Errorf("Error() = %q", err.Error())
	}
	if ValidationErrors(nil).Error() != "" {
		t.Error("empty ValidationErrors should render empty")
	}
}
