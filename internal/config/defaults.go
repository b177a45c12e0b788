package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultLogFile       = "~/.config/weatherfile/weatherfile.log"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3

	DefaultWeatherBaseURL           = "https://api.openweathermap.org/data/2.5"
	DefaultWeatherAPIKeyEnv         = "OPENWEATHER_API_KEY"
	DefaultWeatherUnits             = "metric"
	DefaultWeatherTimeoutSeconds    = 10
	DefaultWeatherRequestsPerMinute = 60
	DefaultWeatherForecastEntries   = 5

	DefaultFilesOutputDir     = "."
	DefaultFilesMaxSizeBytes  = 5 * 1024 * 1024
	DefaultFilesCommitDelayMs = 500

	DefaultStoragePath = "~/.config/weatherfile/weatherfile.db"
)

// DefaultFilesAcceptedTypes returns the media types accepted for import.
func DefaultFilesAcceptedTypes() []string {
	return []string{"application/json", "text/plain"}
}

// setDefaults registers all default configuration values with v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("log_max_size_mb", DefaultLogMaxSizeMB)
	v.SetDefault("log_max_backups", DefaultLogMaxBackups)

	v.SetDefault("weather.base_url", DefaultWeatherBaseURL)
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.api_key_env", DefaultWeatherAPIKeyEnv)
	v.SetDefault("weather.units", DefaultWeatherUnits)
	v.SetDefault("weather.timeout_seconds", DefaultWeatherTimeoutSeconds)
	v.SetDefault("weather.requests_per_minute", DefaultWeatherRequestsPerMinute)
	v.SetDefault("weather.forecast_entries", DefaultWeatherForecastEntries)

	v.SetDefault("files.output_dir", DefaultFilesOutputDir)
	v.SetDefault("files.max_size_bytes", DefaultFilesMaxSizeBytes)
	v.SetDefault("files.accepted_types", DefaultFilesAcceptedTypes())
	v.SetDefault("files.commit_delay_ms", DefaultFilesCommitDelayMs)

	v.SetDefault("storage.path", DefaultStoragePath)
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:      DefaultLogLevel,
		LogFile:       DefaultLogFile,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		LogMaxBackups: DefaultLogMaxBackups,
		Weather: WeatherConfig{
			BaseURL:           DefaultWeatherBaseURL,
			APIKeyEnv:         DefaultWeatherAPIKeyEnv,
			Units:             DefaultWeatherUnits,
			TimeoutSeconds:    DefaultWeatherTimeoutSeconds,
			RequestsPerMinute: DefaultWeatherRequestsPerMinute,
			ForecastEntries:   DefaultWeatherForecastEntries,
		},
		Files: FilesConfig{
			OutputDir:     DefaultFilesOutputDir,
			MaxSizeBytes:  DefaultFilesMaxSizeBytes,
			AcceptedTypes: DefaultFilesAcceptedTypes(),
			CommitDelayMs: DefaultFilesCommitDelayMs,
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath,
		},
	}
}
