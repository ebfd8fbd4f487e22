package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Decode(New())
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
		errMsg    string
	}{
		{
			name:   "Valid Configuration",
			mutate: func(c *Config) {},
		},
		{
			name:      "Non-Positive Min Size",
			mutate:    func(c *Config) { c.Sizes.Min = 0 },
			wantError: true,
			errMsg:    "sizes.min must be positive",
		},
		{
			name:      "Max Below Min",
			mutate:    func(c *Config) { c.Sizes.Min, c.Sizes.Max = 64, 32 },
			wantError: true,
			errMsg:    "sizes.max must be at least sizes.min",
		},
		{
			name:      "Zero Steps",
			mutate:    func(c *Config) { c.Sizes.Steps = 0 },
			wantError: true,
			errMsg:    "sizes.steps must be positive",
		},
		{
			name:      "Empty Aligns",
			mutate:    func(c *Config) { c.Aligns = nil },
			wantError: true,
			errMsg:    "aligns must not be empty",
		},
		{
			name:      "Empty Alpha Range",
			mutate:    func(c *Config) { c.Alphas.Stop = c.Alphas.Start },
			wantError: true,
			errMsg:    "alphas.stop must be greater",
		},
		{
			name:      "Alpha Above 100",
			mutate:    func(c *Config) { c.Alphas.Stop = 120 },
			wantError: true,
			errMsg:    "alphas must lie within 0..100",
		},
		{
			name:      "Zero Repeats",
			mutate:    func(c *Config) { c.Repeats = 0 },
			wantError: true,
			errMsg:    "repeats must be positive",
		},
		{
			name:      "Negative Delay",
			mutate:    func(c *Config) { c.RepeatDelay = -time.Second },
			wantError: true,
			errMsg:    "repeat_delay must not be negative",
		},
		{
			name:      "Empty Serial Path",
			mutate:    func(c *Config) { c.Exec.Serial = "" },
			wantError: true,
			errMsg:    "exec.serial must not be empty",
		},
		{
			name:      "Postgres Without DSN",
			mutate:    func(c *Config) { c.History.Type = "postgres" },
			wantError: true,
			errMsg:    "history.dsn is required",
		},
		{
			name:      "Unknown History Type",
			mutate:    func(c *Config) { c.History.Type = "mongo" },
			wantError: true,
			errMsg:    "history.type must be sqlite or postgres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Repeats = 0
	cfg.Marker = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeats must be positive")
	assert.Contains(t, err.Error(), "marker must not be empty")
}
