package config

// Config represents the complete diffscope configuration.
// It can be loaded from .diffscope/config.yml with environment variable
// overrides.
type Config struct {
	Limits LimitsConfig `yaml:"limits" mapstructure:"limits"`
	Budget BudgetConfig `yaml:"budget" mapstructure:"budget"`
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
}

// LimitsConfig holds the extraction ceilings. Every ceiling the pipeline
// enforces is configurable here.
type LimitsConfig struct {
	MaxBlockChars  int `yaml:"max_block_chars" mapstructure:"max_block_chars"`   // character ceiling per extracted block
	MaxBlockLines  int `yaml:"max_block_lines" mapstructure:"max_block_lines"`   // line ceiling per extracted block
	WindowRadius   int `yaml:"window_radius" mapstructure:"window_radius"`       // context lines each side when windowing
	ParseTimeoutMs int `yaml:"parse_timeout_ms" mapstructure:"parse_timeout_ms"` // structural parse wall-clock budget
	MaxDepth       int `yaml:"max_depth" mapstructure:"max_depth"`               // tree traversal depth ceiling
}

// BudgetConfig holds the model token budget.
type BudgetConfig struct {
	Model                string `yaml:"model" mapstructure:"model"`                                   // model name for exact tokenization; empty uses the heuristic
	ModelTokenCeiling    int    `yaml:"model_token_ceiling" mapstructure:"model_token_ceiling"`       // max input+output tokens per request
	ReservedOutputTokens int    `yaml:"reserved_output_tokens" mapstructure:"reserved_output_tokens"` // allowance reserved for the model's reply
}

// PathsConfig defines which files take the structural path and which are
// skipped entirely.
type PathsConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions"` // allowlist of extensions; empty means all supported
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`         // glob patterns to skip
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxBlockChars:  8000,
			MaxBlockLines:  150,
			WindowRadius:   8,
			ParseTimeoutMs: 2000,
			MaxDepth:       50,
		},
		Budget: BudgetConfig{
			Model:                "gpt-4o",
			ModelTokenCeiling:    128000,
			ReservedOutputTokens: 4096,
		},
		Paths: PathsConfig{
			Extensions: []string{}, // empty means every supported extension
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				"dist/**",
				"build/**",
				"**/*.min.js",
				"**/*.lock",
			},
		},
	}
}
