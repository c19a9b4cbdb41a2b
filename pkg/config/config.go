// Package config resolves tool configuration from ~/.cwa/config.yaml,
// CWA_* environment variables and built-in defaults, in that order of
// increasing precedence for the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the recognized options.
type Config struct {
	// ClaudeDir is the Claude home directory holding projects/ transcripts.
	ClaudeDir string `mapstructure:"claude_dir"`
	// SessionGap is the silence between entries that forces a new session.
	SessionGap time.Duration `mapstructure:"session_gap"`
	// MinSessionMessages is the entry count below which sessions are
	// discarded.
	MinSessionMessages int `mapstructure:"min_session_messages"`
}

// Load reads the config file if present and applies env overrides. A
// missing config file is not an error.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	v := viper.New()
	v.SetDefault("claude_dir", filepath.Join(home, ".claude"))
	v.SetDefault("session_gap", "2h")
	v.SetDefault("min_session_messages", 3)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, ".cwa"))

	v.SetEnvPrefix("CWA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ProjectsDir returns the Claude projects directory.
func (c *Config) ProjectsDir() string {
	return filepath.Join(c.ClaudeDir, "projects")
}
