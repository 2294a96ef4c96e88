// Package democonfig loads configuration for the clirouter-demo command
// host.
package democonfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the demo host's configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Color    bool   `mapstructure:"color"`
}

// Load reads clirouter-demo.yml from the current directory, if present,
// layering environment variables and falling back to defaults when no
// file exists.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("color", true)

	v.SetConfigName("clirouter-demo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
