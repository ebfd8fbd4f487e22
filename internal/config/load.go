package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CASEBENCH_REPEATS.
const EnvPrefix = "CASEBENCH"

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the stock sweep: the converters next to the working
// directory, 25 sizes from 8 to 4096 bytes, alignments 16 and 32, and alpha
// from 0 to 90 in steps of 10.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sizes.min", 8)
	v.SetDefault("sizes.max", 4096)
	v.SetDefault("sizes.steps", 25)
	v.SetDefault("aligns", []int{16, 32})
	v.SetDefault("alphas.start", 0)
	v.SetDefault("alphas.stop", 100)
	v.SetDefault("alphas.step", 10)
	v.SetDefault("repeats", 3)
	v.SetDefault("repeat_delay", "50ms")
	v.SetDefault("attempt_timeout", "0s")
	v.SetDefault("mode", "upper")
	v.SetDefault("marker", "Tiempo")
	v.SetDefault("exec.generator", "./string_generator")
	v.SetDefault("exec.serial", "./case_converter_serial")
	v.SetDefault("exec.simd", "./case_converter_SIMD")
	v.SetDefault("output.csv", "results_benchmark_all.csv")
	v.SetDefault("output.figures", "figures")
	v.SetDefault("work_dir", "")
	v.SetDefault("history.type", "")
	v.SetDefault("history.dsn", "")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")
}

// Load reads .env, the config file and the environment into a validated
// Config. Without cfgFile, ./casebench.yaml is used when present.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("casebench")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		slog.Debug("using config file", "path", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals the current viper state without validating it.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// WriteDefaults writes the default configuration to path. It refuses to
// overwrite an existing file.
func WriteDefaults(path string) error {
	v := viper.New()
	SetDefaults(v)
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
