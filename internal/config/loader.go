package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DIFFSCOPE_*)
// 2. Config file (.diffscope/config.yml or .diffscope/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".diffscope")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Enable environment variable overrides
	v.SetEnvPrefix("DIFFSCOPE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., DIFFSCOPE_LIMITS_MAX_DEPTH)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys
	v.BindEnv("limits.max_block_chars")
	v.BindEnv("limits.max_block_lines")
	v.BindEnv("limits.window_radius")
	v.BindEnv("limits.parse_timeout_ms")
	v.BindEnv("limits.max_depth")

	v.BindEnv("budget.model")
	v.BindEnv("budget.model_token_ceiling")
	v.BindEnv("budget.reserved_output_tokens")

	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("limits.max_block_chars", defaults.Limits.MaxBlockChars)
	v.SetDefault("limits.max_block_lines", defaults.Limits.MaxBlockLines)
	v.SetDefault("limits.window_radius", defaults.Limits.WindowRadius)
	v.SetDefault("limits.parse_timeout_ms", defaults.Limits.ParseTimeoutMs)
	v.SetDefault("limits.max_depth", defaults.Limits.MaxDepth)

	v.SetDefault("budget.model", defaults.Budget.Model)
	v.SetDefault("budget.model_token_ceiling", defaults.Budget.ModelTokenCeiling)
	v.SetDefault("budget.reserved_output_tokens", defaults.Budget.ReservedOutputTokens)

	v.SetDefault("paths.extensions", defaults.Paths.Extensions)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
