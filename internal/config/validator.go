package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks cfg and returns every problem found in a single error.
func Validate(cfg *Config) error {
	var errors []string

	if cfg.Sizes.Min <= 0 {
		errors = append(errors, fmt.Sprintf("sizes.min must be positive, got: %d", cfg.Sizes.Min))
	}
	if cfg.Sizes.Max < cfg.Sizes.Min {
		errors = append(errors, fmt.Sprintf("sizes.max must be at least sizes.min (%d), got: %d", cfg.Sizes.Min, cfg.Sizes.Max))
	}
	if cfg.Sizes.Steps <= 0 {
		errors = append(errors, fmt.Sprintf("sizes.steps must be positive, got: %d", cfg.Sizes.Steps))
	}

	if len(cfg.Aligns) == 0 {
		errors = append(errors, "aligns must not be empty")
	}
	for _, a := range cfg.Aligns {
		if a <= 0 {
			errors = append(errors, fmt.Sprintf("aligns must be positive, got: %d", a))
		}
	}

	if cfg.Alphas.Step <= 0 {
		errors = append(errors, fmt.Sprintf("alphas.step must be positive, got: %d", cfg.Alphas.Step))
	} else if cfg.Alphas.Stop <= cfg.Alphas.Start {
		errors = append(errors, fmt.Sprintf("alphas.stop must be greater than alphas.start (%d), got: %d", cfg.Alphas.Start, cfg.Alphas.Stop))
	} else {
		last := cfg.Alphas.Start + (cfg.Alphas.Stop-cfg.Alphas.Start-1)/cfg.Alphas.Step*cfg.Alphas.Step
		if cfg.Alphas.Start < 0 || last > 100 {
			errors = append(errors, fmt.Sprintf("alphas must lie within 0..100, got: %d..%d", cfg.Alphas.Start, last))
		}
	}

	if cfg.Repeats <= 0 {
		errors = append(errors, fmt.Sprintf("repeats must be positive, got: %d", cfg.Repeats))
	}
	if cfg.RepeatDelay < 0 {
		errors = append(errors, fmt.Sprintf("repeat_delay must not be negative, got: %v", cfg.RepeatDelay))
	}
	if cfg.AttemptTimeout < 0 {
		errors = append(errors, fmt.Sprintf("attempt_timeout must not be negative, got: %v", cfg.AttemptTimeout))
	}
	if cfg.Marker == "" {
		errors = append(errors, "marker must not be empty")
	}

	for key, path := range map[string]string{
		"exec.generator": cfg.Exec.Generator,
		"exec.serial":    cfg.Exec.Serial,
		"exec.simd":      cfg.Exec.SIMD,
		"output.csv":     cfg.Output.CSV,
		"output.figures": cfg.Output.Figures,
	} {
		if path == "" {
			errors = append(errors, fmt.Sprintf("%s must not be empty", key))
		}
	}

	switch strings.ToLower(cfg.History.Type) {
	case "", "sqlite", "sqlite3":
	case "postgres", "postgresql":
		if cfg.History.DSN == "" {
			errors = append(errors, "history.dsn is required for postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("history.type must be sqlite or postgres, got: %q", cfg.History.Type))
	}

	if len(errors) > 0 {
		// Map iteration above is unordered; keep the message stable.
		sort.Strings(errors)
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}
