package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default path for the config file. When
// WEATHERFILE_CONFIG_DIR is set the file lives there.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	home := resolveHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "weatherfile")
}

// ConfigExistsAt returns true if a config file exists at the specified path.
func ConfigExistsAt(path string) bool {
	_, err := os.Stat(ExpandPath(path))
	return err == nil
}

// resolveHomeDir prefers $HOME so tests can redirect it.
func resolveHomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
