package config

import (
	"os"
	"time"
)

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel      string        `yaml:"log_level" mapstructure:"log_level"`
	LogFile       string        `yaml:"log_file" mapstructure:"log_file"`
	LogMaxSizeMB  int           `yaml:"log_max_size_mb" mapstructure:"log_max_size_mb"`
	LogMaxBackups int           `yaml:"log_max_backups" mapstructure:"log_max_backups"`
	Weather       WeatherConfig `yaml:"weather" mapstructure:"weather"`
	Files         FilesConfig   `yaml:"files" mapstructure:"files"`
	Storage       StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// WeatherConfig holds weather API settings.
type WeatherConfig struct {
	BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
	APIKey            string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	APIKeyEnv         string `yaml:"api_key_env" mapstructure:"api_key_env"`
	Units             string `yaml:"units" mapstructure:"units"`
	TimeoutSeconds    int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	ForecastEntries   int    `yaml:"forecast_entries" mapstructure:"forecast_entries"`
}

// ResolveAPIKey returns the API key from config or falls back to environment variable.
func (c *WeatherConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// Timeout returns the request timeout as a duration.
func (c *WeatherConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FilesConfig holds save and open settings.
type FilesConfig struct {
	OutputDir     string   `yaml:"output_dir" mapstructure:"output_dir"`
	MaxSizeBytes  int64    `yaml:"max_size_bytes" mapstructure:"max_size_bytes"`
	AcceptedTypes []string `yaml:"accepted_types,flow" mapstructure:"accepted_types"`
	CommitDelayMs int      `yaml:"commit_delay_ms" mapstructure:"commit_delay_ms"`
}

// CommitDelay returns the save commit delay as a duration.
func (c *FilesConfig) CommitDelay() time.Duration {
	return time.Duration(c.CommitDelayMs) * time.Millisecond
}

// StorageConfig holds session database settings.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}
