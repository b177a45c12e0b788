// Package config loads weatherfile settings from a YAML file, environment
// variables and built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "WEATHERFILE"

// ConfigDirEnv names the environment variable that overrides the config directory.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// configFilePath stores the path to the loaded config file
var configFilePath string

// Init initializes the configuration subsystem.
// It searches for configuration files in priority order:
//  1. Directory specified by WEATHERFILE_CONFIG_DIR environment variable
//  2. ~/.config/weatherfile/
//  3. Current working directory (.)
//
// If no config file is found, defaults are used.
// If a config file exists but is invalid or unreadable, Init returns an error.
func Init() error {
	configure(viper.GetViper())

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			configFilePath = ""
			return nil
		}
		return fmt.Errorf("failed to read config; %w", err)
	}

	configFilePath = viper.ConfigFileUsed()
	slog.Debug("config initialized", "file", configFilePath)

	return nil
}

// configure applies file search paths, env binding and defaults to v.
func configure(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if envPath := os.Getenv(ConfigDirEnv); envPath != "" {
		v.AddConfigPath(envPath)
	}
	if home := os.Getenv("HOME"); home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "weatherfile"))
	}
	v.AddConfigPath(".")
}

// Get returns the typed configuration from the initialized global state.
func Get() (*Config, error) {
	return unmarshalConfig(viper.GetViper())
}

// ConfigFilePath returns the path to the loaded config file,
// or empty string if using defaults only.
func ConfigFilePath() string {
	return configFilePath
}

// Reset clears the configuration state for testing purposes.
func Reset() {
	viper.Reset()
	configFilePath = ""
}

// GetString returns the string value for the given key.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns the integer value for the given key.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns the boolean value for the given key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set sets a value for the given key, overriding defaults and config file values.
// Primarily used for testing.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetPath returns the string value for the given key with ~ expanded to $HOME.
func GetPath(key string) string {
	return ExpandPath(viper.GetString(key))
}

// ExpandPath expands a leading ~ in path to the user's home directory.
// Only "~" alone or "~/..." is expanded; "~user" is returned unchanged.
func ExpandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) > 1 && path[1] != '/' {
		return path
	}

	home := resolveHomeDir()
	if home == "" {
		return path
	}

	if len(path) == 1 {
		return home
	}

	return filepath.Join(home, path[2:])
}

// GetConfigPath returns the loaded config file path, or the default path
// when running on defaults.
func GetConfigPath() string {
	if configFilePath != "" {
		return configFilePath
	}
	return DefaultConfigPath()
}

// GetAllSettings returns all configuration settings as a map.
func GetAllSettings() map[string]any {
	return viper.AllSettings()
}
