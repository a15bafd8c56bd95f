package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLimit indicates a non-positive extraction ceiling
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidBudget indicates an unusable token budget
	ErrInvalidBudget = errors.New("invalid budget")

	// ErrInvalidExtension indicates a malformed extension entry
	ErrInvalidExtension = errors.New("invalid extension")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateLimits(&cfg.Limits); err != nil {
		errs = append(errs, err)
	}
	if err := validateBudget(&cfg.Budget); err != nil {
		errs = append(errs, err)
	}
	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateLimits(limits *LimitsConfig) error {
	if limits.MaxBlockChars <= 0 {
		return fmt.Errorf("%w: max_block_chars must be positive, got %d", ErrInvalidLimit, limits.MaxBlockChars)
	}
	if limits.MaxBlockLines <= 0 {
		return fmt.Errorf("%w: max_block_lines must be positive, got %d", ErrInvalidLimit, limits.MaxBlockLines)
	}
	if limits.WindowRadius < 0 {
		return fmt.Errorf("%w: window_radius must be non-negative, got %d", ErrInvalidLimit, limits.WindowRadius)
	}
	if limits.ParseTimeoutMs <= 0 {
		return fmt.Errorf("%w: parse_timeout_ms must be positive, got %d", ErrInvalidLimit, limits.ParseTimeoutMs)
	}
	if limits.MaxDepth <= 0 {
		return fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidLimit, limits.MaxDepth)
	}
	return nil
}

func validateBudget(budget *BudgetConfig) error {
	if budget.ModelTokenCeiling <= 0 {
		return fmt.Errorf("%w: model_token_ceiling must be positive, got %d", ErrInvalidBudget, budget.ModelTokenCeiling)
	}
	if budget.ReservedOutputTokens < 0 {
		return fmt.Errorf("%w: reserved_output_tokens must be non-negative, got %d", ErrInvalidBudget, budget.ReservedOutputTokens)
	}
	if budget.ReservedOutputTokens >= budget.ModelTokenCeiling {
		return fmt.Errorf("%w: reserved_output_tokens %d leaves no input headroom under ceiling %d",
			ErrInvalidBudget, budget.ReservedOutputTokens, budget.ModelTokenCeiling)
	}
	return nil
}

func validatePaths(paths *PathsConfig) error {
	for _, ext := range paths.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q must start with a dot", ErrInvalidExtension, ext)
		}
	}
	return nil
}
