// Package config handles global configuration loading using viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// ErrConfigInvalid is wrapped by every validation failure.
var ErrConfigInvalid = errors.New("veribench: invalid configuration")

// GlobalConfig represents the top-level configuration.
// Maps to the `veribench:` root key in YAML.
type GlobalConfig struct {
	Log     LogConfig     `mapstructure:"log"`
	Bench   BenchConfig   `mapstructure:"bench"`
	Session SessionConfig `mapstructure:"session"`
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string           `mapstructure:"level"`  // debug / info / warn / error
	Format  string           `mapstructure:"format"` // json / text
	Outputs LogOutputsConfig `mapstructure:"outputs"`
}

// LogOutputsConfig contains structured log output destinations.
type LogOutputsConfig struct {
	File FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// ─── Bench ───

// BenchConfig selects the benchmark cases to run and where the report goes.
type BenchConfig struct {
	Cases      []string      `mapstructure:"cases"`
	ReportPath string        `mapstructure:"report_path"` // empty = no report file
	Timeout    time.Duration `mapstructure:"timeout"`     // 0 = no deadline
}

// ─── Session ───

// SessionConfig drives the random command source of the call session case.
type SessionConfig struct {
	Seed       uint64 `mapstructure:"seed"`
	CommandMin int    `mapstructure:"command_min"`
	CommandMax int    `mapstructure:"command_max"`
	MaxSteps   int    `mapstructure:"max_steps"` // Commands pulled before forcing Exit
}

// ─── Loading ───

// configRoot is the top-level wrapper matching the YAML structure `veribench: ...`.
type configRoot struct {
	Veribench GlobalConfig `mapstructure:"veribench"`
}

// Load loads configuration from file.
// The YAML file uses `veribench:` as root key; env vars use the VERIBENCH_ prefix
// (e.g., VERIBENCH_LOG_LEVEL).
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// Default returns the configuration used when no file is given. Environment
// overrides still apply.
func Default() (*GlobalConfig, error) {
	return decode(viper.New())
}

func decode(v *viper.Viper) (*GlobalConfig, error) {
	// key "veribench.log.level" → env "VERIBENCH_LOG_LEVEL"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&root, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.Veribench

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values for configuration.
// All keys use the "veribench." prefix to match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("veribench.log.level", "info")
	v.SetDefault("veribench.log.format", "text")
	v.SetDefault("veribench.log.outputs.file.enabled", false)
	v.SetDefault("veribench.log.outputs.file.path", "veribench.log")
	v.SetDefault("veribench.log.outputs.file.rotation.max_size_mb", 100)
	v.SetDefault("veribench.log.outputs.file.rotation.max_age_days", 30)
	v.SetDefault("veribench.log.outputs.file.rotation.max_backups", 5)
	v.SetDefault("veribench.log.outputs.file.rotation.compress", true)

	// Bench defaults
	v.SetDefault("veribench.bench.cases", []string{"cve_2014_7841", "resource_manager"})
	v.SetDefault("veribench.bench.report_path", "")
	v.SetDefault("veribench.bench.timeout", "30s")

	// Session defaults: codes -1..5 cover Exit, every command and unknown codes on both sides.
	v.SetDefault("veribench.session.seed", 1)
	v.SetDefault("veribench.session.command_min", -1)
	v.SetDefault("veribench.session.command_max", 5)
	v.SetDefault("veribench.session.max_steps", 10000)
}

// ValidateAndApplyDefaults validates configuration and applies runtime defaults.
func (cfg *GlobalConfig) ValidateAndApplyDefaults() error {
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("%w: invalid log level: %s (must be debug/info/warn/error)", ErrConfigInvalid, cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("%w: invalid log format: %s (must be json/text)", ErrConfigInvalid, cfg.Log.Format)
	}
	if cfg.Log.Outputs.File.Enabled && cfg.Log.Outputs.File.Path == "" {
		return fmt.Errorf("%w: log.outputs.file.path is required when file output is enabled", ErrConfigInvalid)
	}

	if len(cfg.Bench.Cases) == 0 {
		return fmt.Errorf("%w: bench.cases must name at least one case", ErrConfigInvalid)
	}
	if cfg.Bench.Timeout < 0 {
		return fmt.Errorf("%w: bench.timeout must not be negative", ErrConfigInvalid)
	}

	if cfg.Session.CommandMin > cfg.Session.CommandMax {
		cfg.Session.CommandMin, cfg.Session.CommandMax = cfg.Session.CommandMax, cfg.Session.CommandMin
	}
	if cfg.Session.MaxSteps <= 0 {
		return fmt.Errorf("%w: session.max_steps must be positive", ErrConfigInvalid)
	}

	return nil
}
