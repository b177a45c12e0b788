package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and returns the typed configuration using the same search
// order as Init. A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	configure(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config; %w", err)
		}
	}

	return unmarshalConfig(v)
}

// LoadFromPath reads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(ExpandPath(path))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// LoadWithDefaults returns configuration using defaults only.
func LoadWithDefaults() *Config {
	cfg := NewDefaultConfig()
	return &cfg
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
