package config

import "time"

// Config is everything a sweep needs. It is built once by Load and passed
// down explicitly.
type Config struct {
	Sizes          SizeRange     `mapstructure:"sizes" yaml:"sizes"`
	Aligns         []int         `mapstructure:"aligns" yaml:"aligns"`
	Alphas         AlphaRange    `mapstructure:"alphas" yaml:"alphas"`
	Repeats        int           `mapstructure:"repeats" yaml:"repeats"`
	RepeatDelay    time.Duration `mapstructure:"repeat_delay" yaml:"repeat_delay"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" yaml:"attempt_timeout"`
	Mode           string        `mapstructure:"mode" yaml:"mode"`
	Marker         string        `mapstructure:"marker" yaml:"marker"`
	Exec           Executables   `mapstructure:"exec" yaml:"exec"`
	Output         Output        `mapstructure:"output" yaml:"output"`
	WorkDir        string        `mapstructure:"work_dir" yaml:"work_dir"`
	History        History       `mapstructure:"history" yaml:"history"`
	Metrics        Metrics       `mapstructure:"metrics" yaml:"metrics"`
	Verbose        bool          `mapstructure:"verbose" yaml:"verbose"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
}

// SizeRange describes Steps geometrically spaced sizes from Min to Max.
type SizeRange struct {
	Min   int `mapstructure:"min" yaml:"min"`
	Max   int `mapstructure:"max" yaml:"max"`
	Steps int `mapstructure:"steps" yaml:"steps"`
}

// AlphaRange is the half-open range [Start, Stop) in Step increments.
type AlphaRange struct {
	Start int `mapstructure:"start" yaml:"start"`
	Stop  int `mapstructure:"stop" yaml:"stop"`
	Step  int `mapstructure:"step" yaml:"step"`
}

type Executables struct {
	Generator string `mapstructure:"generator" yaml:"generator"`
	Serial    string `mapstructure:"serial" yaml:"serial"`
	SIMD      string `mapstructure:"simd" yaml:"simd"`
}

type Output struct {
	CSV     string `mapstructure:"csv" yaml:"csv"`
	Figures string `mapstructure:"figures" yaml:"figures"`
}

// History selects the optional run database. An empty Type disables it.
type History struct {
	Type string `mapstructure:"type" yaml:"type"` // "sqlite" or "postgres"
	DSN  string `mapstructure:"dsn" yaml:"dsn"`
}

type Metrics struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	File string `mapstructure:"file" yaml:"file"`
}
