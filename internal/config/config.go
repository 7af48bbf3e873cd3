// Package config loads coverlay settings from an optional
// .coverlay.yaml in the workspace, COVERLAY_* environment variables,
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultGlobs are the report patterns used when lcov_glob is absent or
// empty: lcov.info files and *.lcov files anywhere in the workspace.
var DefaultGlobs = []string{"**/lcov.info", "**/*.lcov"}

const defaultDebounceMS = 150

// Config holds the tool settings.
type Config struct {
	Workspace  string   `mapstructure:"workspace"`
	LcovGlob   []string `mapstructure:"lcov_glob"`
	DebounceMS int      `mapstructure:"debounce_ms"`
	Verbosity  string   `mapstructure:"verbosity"`
}

// Default returns the configuration used when nothing overrides it.
func Default(workspace string) Config {
	return Config{
		Workspace:  workspace,
		LcovGlob:   append([]string(nil), DefaultGlobs...),
		DebounceMS: defaultDebounceMS,
		Verbosity:  "Info",
	}
}

// Load reads configuration for the given workspace. When file is
// non-empty that exact file must exist and parse; otherwise a
// .coverlay.yaml in the workspace root is used if present, and its
// absence is not an error.
func Load(workspace, file string) (Config, error) {
	v := viper.New()
	v.SetDefault("workspace", workspace)
	v.SetDefault("lcov_glob", DefaultGlobs)
	v.SetDefault("debounce_ms", defaultDebounceMS)
	v.SetDefault("verbosity", "Info")

	v.SetEnvPrefix("COVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(".coverlay")
		v.SetConfigType("yaml")
		v.AddConfigPath(workspace)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read workspace config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Globs returns the report patterns, falling back to DefaultGlobs when
// the configured list is empty.
func (c Config) Globs() []string {
	if len(c.LcovGlob) == 0 {
		return DefaultGlobs
	}
	return c.LcovGlob
}

// Debounce returns the rebuild coalescing window.
func (c Config) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return defaultDebounceMS * time.Millisecond
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}
