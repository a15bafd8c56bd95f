package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for configuration loading and validation:
// - Defaults are complete and pass validation
// - A missing config file falls back to defaults
// - A config file under .diffscope/ overrides defaults, partially or fully
// - Environment variables override both file and defaults
// - Malformed YAML and invalid values are rejected at load time
// - Validation rejects non-positive ceilings, inverted budgets, and
//   extensions without a leading dot

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, 8000, cfg.Limits.MaxBlockChars)
	assert.Equal(t, 150, cfg.Limits.MaxBlockLines)
	assert.Equal(t, 8, cfg.Limits.WindowRadius)
	assert.Equal(t, 2000, cfg.Limits.ParseTimeoutMs)
	assert.Equal(t, 50, cfg.Limits.MaxDepth)
	assert.Equal(t, "gpt-4o", cfg.Budget.Model)
	assert.Equal(t, 128000, cfg.Budget.ModelTokenCeiling)
	assert.Equal(t, 4096, cfg.Budget.ReservedOutputTokens)
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
limits:
  max_block_chars: 4000
  max_block_lines: 80
budget:
  model: gpt-4o-mini
paths:
  extensions:
    - .ts
    - .py
`)

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Limits.MaxBlockChars)
	assert.Equal(t, 80, cfg.Limits.MaxBlockLines)
	assert.Equal(t, "gpt-4o-mini", cfg.Budget.Model)
	assert.Equal(t, []string{".ts", ".py"}, cfg.Paths.Extensions)

	// Keys the file omits keep their defaults.
	assert.Equal(t, 8, cfg.Limits.WindowRadius)
	assert.Equal(t, 128000, cfg.Budget.ModelTokenCeiling)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "limits:\n  max_block_lines: 80\n")

	t.Setenv("DIFFSCOPE_LIMITS_MAX_BLOCK_LINES", "40")
	t.Setenv("DIFFSCOPE_BUDGET_MODEL", "gpt-4.1")

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Limits.MaxBlockLines)
	assert.Equal(t, "gpt-4.1", cfg.Budget.Model)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "limits: [not a mapping\n")

	_, err := LoadConfigFromDir(dir)
	assert.Error(t, err)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "limits:\n  max_block_chars: -1\n")

	_, err := LoadConfigFromDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestValidate_Limits(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Limits.MaxBlockLines = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidLimit)

	cfg = Default()
	cfg.Limits.WindowRadius = -1
	assert.ErrorIs(t, Validate(cfg), ErrInvalidLimit)

	cfg = Default()
	cfg.Limits.MaxDepth = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidLimit)
}

func TestValidate_Budget(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Budget.ModelTokenCeiling = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidBudget)

	cfg = Default()
	cfg.Budget.ReservedOutputTokens = cfg.Budget.ModelTokenCeiling
	assert.ErrorIs(t, Validate(cfg), ErrInvalidBudget)
}

func TestValidate_Extensions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.Extensions = []string{"ts"}
	assert.ErrorIs(t, Validate(cfg), ErrInvalidExtension)

	cfg.Paths.Extensions = []string{".ts"}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_JoinsMultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Limits.MaxBlockChars = 0
	cfg.Budget.ModelTokenCeiling = 0

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidLimit)
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	configDir := filepath.Join(dir, ".diffscope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(contents), 0o644))
}
