// Package config loads run settings from defaults, an optional config file,
// environment variables and command-line flags. Flags always win.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every knob of a single pipeline run.
type Config struct {
	// InputPath points at the flight-records CSV. Required.
	InputPath string
	// OutputDir receives the rendered charts and the report workbook.
	OutputDir string

	// SampleFraction of rows drawn from the full table, in (0, 1].
	SampleFraction float64
	// Seed feeds the sampler and the train/test partitioner.
	Seed int64
	// DelayThresholdMinutes separates significant arrival delays (label 1).
	DelayThresholdMinutes float64
	// TrainFraction of each label class that lands in the training set.
	TrainFraction float64

	// Encoding of the input file: utf-8, latin-1 or gbk.
	Encoding string
	// ReportFile is the workbook name inside OutputDir; empty disables it.
	ReportFile string

	Debug bool
}

// Load assembles the configuration. flags may be nil when running without a
// command line (tests). configFile, when non-empty, must exist and parse.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("input", "")
	v.SetDefault("output-dir", "output")
	v.SetDefault("sample-fraction", 0.001)
	v.SetDefault("seed", 123)
	v.SetDefault("delay-threshold", 30.0)
	v.SetDefault("train-fraction", 0.8)
	v.SetDefault("encoding", "utf-8")
	v.SetDefault("report", "delay_report.xlsx")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("FLIGHTDELAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := &Config{
		InputPath:             v.GetString("input"),
		OutputDir:             v.GetString("output-dir"),
		SampleFraction:        v.GetFloat64("sample-fraction"),
		Seed:                  v.GetInt64("seed"),
		DelayThresholdMinutes: v.GetFloat64("delay-threshold"),
		TrainFraction:         v.GetFloat64("train-fraction"),
		Encoding:              v.GetString("encoding"),
		ReportFile:            v.GetString("report"),
		Debug:                 v.GetBool("debug"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges before any file is touched.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("config: input path is required")
	}
	if c.SampleFraction <= 0 || c.SampleFraction > 1 {
		return fmt.Errorf("config: sample fraction %v outside (0,1]", c.SampleFraction)
	}
	if c.TrainFraction <= 0 || c.TrainFraction >= 1 {
		return fmt.Errorf("config: train fraction %v outside (0,1)", c.TrainFraction)
	}
	if c.DelayThresholdMinutes <= 0 {
		return fmt.Errorf("config: delay threshold %v must be positive", c.DelayThresholdMinutes)
	}
	switch strings.ToLower(c.Encoding) {
	case "utf-8", "utf8", "latin-1", "latin1", "iso-8859-1", "gbk":
	default:
		return fmt.Errorf("config: unknown encoding %q", c.Encoding)
	}
	return nil
}
