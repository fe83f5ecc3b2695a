package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 300.0, cfg.WallSegmentLength)
	assert.Equal(t, []float64{1.4, 1.7}, cfg.LoadFactors)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gorcc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wall_segment_length: 250
combination: "2"
workers: 2
log:
  level: info
`), 0o644))
	t.Setenv("GORCC_WORKERS", "8")
	t.Setenv("GORCC_LOG_FORMAT", "json")

	v := viper.New()
	require.NoError(t, Init(v, path))
	assert.Equal(t, path, v.ConfigFileUsed())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.WallSegmentLength)
	assert.Equal(t, "2", cfg.Combination)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestInitMissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"segment", func(c *Config) { c.WallSegmentLength = 0 }},
		{"combination", func(c *Config) { c.Combination = "42" }},
		{"no factors", func(c *Config) { c.LoadFactors = nil }},
		{"workers", func(c *Config) { c.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestFactors(t *testing.T) {
	cfg := DefaultConfig()

	f, err := cfg.Factors([]string{"dead", "live"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.4, 1.7}, f)

	_, err = cfg.Factors([]string{"dead", "sdl", "live"})
	assert.Error(t, err)

	cfg.Combination = "2"
	f, err = cfg.Factors([]string{"dead", "sdl", "live"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.2, 1.2, 1.6}, f)
}

func TestDefaultConfigYAML(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "wall_segment_length: 300")

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, DefaultConfig(), back)
}
