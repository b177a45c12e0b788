package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// validLogLevels lists accepted log_level values.
var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// validUnits lists the unit systems the weather API understands.
var validUnits = map[string]bool{
	"metric":   true,
	"imperial": true,
	"standard": true,
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error; got %q", cfg.LogLevel),
		})
	}

	if cfg.LogMaxSizeMB < 1 {
		errs = append(errs, ValidationError{
			Field:   "log_max_size_mb",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.LogMaxSizeMB),
		})
	}

	if cfg.LogMaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "log_max_backups",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.LogMaxBackups),
		})
	}

	// Validate weather config
	if u, err := url.Parse(cfg.Weather.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "weather.base_url",
			Message: fmt.Sprintf("must be an absolute URL, got %q", cfg.Weather.BaseURL),
		})
	}

	if !validUnits[cfg.Weather.Units] {
		errs = append(errs, ValidationError{
			Field:   "weather.units",
			Message: fmt.Sprintf("must be one of: metric, imperial, standard; got %q", cfg.Weather.Units),
		})
	}

	if cfg.Weather.TimeoutSeconds < 1 {
		errs = append(errs, ValidationError{
			Field:   "weather.timeout_seconds",
			Message: fmt.Sprintf("must be at least 1 second, got %d", cfg.Weather.TimeoutSeconds),
		})
	}

	if cfg.Weather.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "weather.requests_per_minute",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Weather.RequestsPerMinute),
		})
	}

	if cfg.Weather.ForecastEntries < 1 {
		errs = append(errs, ValidationError{
			Field:   "weather.forecast_entries",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Weather.ForecastEntries),
		})
	}

	// Validate files config
	if cfg.Files.MaxSizeBytes < 1 {
		errs = append(errs, ValidationError{
			Field:   "files.max_size_bytes",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Files.MaxSizeBytes),
		})
	}

	if len(cfg.Files.AcceptedTypes) == 0 {
		errs = append(errs, ValidationError{
			Field:   "files.accepted_types",
			Message: "must list at least one media type",
		})
	}

	if cfg.Files.CommitDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "files.commit_delay_ms",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Files.CommitDelayMs),
		})
	}

	if cfg.Storage.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "storage.path",
			Message: "must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
