// Package config holds the gorcc settings shared by all commands.
//
// Configuration hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (GORCC_*)
//  3. Config file (~/.gorcc/config.yaml)
//  4. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/alexiusacademia/gorcc/internal/nscp"
)

// EnvPrefix is the prefix of environment variables read by gorcc.
const EnvPrefix = "GORCC"

// Config holds the tributary load settings
type Config struct {
	// Maximum spacing of seeds along wall boundaries (mm)
	WallSegmentLength float64 `yaml:"wall_segment_length" mapstructure:"wall_segment_length"`

	// NSCP combination ID used for combined loads; empty means LoadFactors
	Combination string `yaml:"combination" mapstructure:"combination"`

	// Factors per load case when no combination is given
	LoadFactors []float64 `yaml:"load_factors" mapstructure:"load_factors"`

	// Multiplier applied to combined loads, e.g. number of typical floors
	Scale float64 `yaml:"scale" mapstructure:"scale"`

	// Directory for exported diagrams and reports
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// Floors partitioned concurrently by batch runs
	Workers int `yaml:"workers" mapstructure:"workers"`

	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig selects the logger level and encoding
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns the built-in settings: 300 mm wall segments and
// 1.4D + 1.7L.
func DefaultConfig() Config {
	return Config{
		WallSegmentLength: 300,
		LoadFactors:       []float64{1.4, 1.7},
		Scale:             1,
		OutputDir:         ".",
		Workers:           4,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// SetDefaults registers the defaults on v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("wall_segment_length", d.WallSegmentLength)
	v.SetDefault("combination", d.Combination)
	v.SetDefault("load_factors", d.LoadFactors)
	v.SetDefault("scale", d.Scale)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Init prepares v to read the config file and GORCC_* environment
// variables. cfgFile overrides the default location.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes the effective configuration from v and validates it
func Load(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings
func (c Config) Validate() error {
	if c.WallSegmentLength <= 0 {
		return fmt.Errorf("wall_segment_length must be positive, got %g", c.WallSegmentLength)
	}
	if c.Combination != "" {
		if _, ok := nscp.FindCombination(c.Combination); !ok {
			return fmt.Errorf("unknown load combination %q", c.Combination)
		}
	} else if len(c.LoadFactors) == 0 {
		return fmt.Errorf("either combination or load_factors must be set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Factors returns the load factor for each of cases, from the configured
// combination when set and from LoadFactors otherwise
func (c Config) Factors(cases []string) ([]float64, error) {
	if c.Combination != "" {
		combo, ok := nscp.FindCombination(c.Combination)
		if !ok {
			return nil, fmt.Errorf("unknown load combination %q", c.Combination)
		}
		return combo.Factors(cases)
	}
	if len(c.LoadFactors) != len(cases) {
		return nil, fmt.Errorf("%d load factors configured for %d load cases (%s)",
			len(c.LoadFactors), len(cases), strings.Join(cases, ", "))
	}
	return append([]float64(nil), c.LoadFactors...), nil
}

// DefaultDir returns ~/.gorcc
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".gorcc"), nil
}

// DefaultPath returns ~/.gorcc/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
