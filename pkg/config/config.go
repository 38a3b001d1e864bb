// Package config handles runtime configuration for the validator.
// Settings come from built-in defaults, an optional dqv.yaml file and DQV_*
// environment variables, in increasing order of precedence. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"dqv/pkg/suite"
)

// EnvPrefix is prepended to every environment variable name, e.g. DQV_DATASET.
const EnvPrefix = "DQV"

// Config holds all configuration for a run.
type Config struct {
	Dataset  string `mapstructure:"dataset"`
	Suite    string `mapstructure:"suite"`
	Format   string `mapstructure:"format"`
	Policy   string `mapstructure:"policy"`
	Workers  int    `mapstructure:"workers"`
	LogLevel string `mapstructure:"log_level"`
	NoColor  bool   `mapstructure:"no_color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset", suite.DefaultDatasetPath)
	v.SetDefault("suite", "")
	v.SetDefault("format", "")
	v.SetDefault("policy", "continue")
	v.SetDefault("workers", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("no_color", false)
}

// Load reads configuration. With an empty configPath, dqv.yaml is looked up
// in the working directory and ./configs/, and its absence is not an error.
// An explicit configPath must exist. The result is not validated; callers
// apply their overrides first and then call Validate.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dqv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	} else {
		slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d: must be at least 1", c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level '%s'", c.LogLevel)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
