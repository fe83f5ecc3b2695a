package cmd

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcc/internal/config"
)

func TestReportBaseName(t *testing.T) {
	assert.Equal(t, "Level_2", reportBaseName(" Level 2 "))
	assert.Equal(t, "roof_deck_A", reportBaseName("roof/deck:A"))
	assert.Equal(t, "floor", reportBaseName(""))
}

func TestOutputPath(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "map.png", outputPath(cfg, "map.png"))

	cfg.OutputDir = "reports"
	assert.Equal(t, filepath.Join("reports", "map.png"), outputPath(cfg, "map.png"))

	abs := filepath.Join(t.TempDir(), "map.png")
	assert.Equal(t, abs, outputPath(cfg, abs))
}

func TestCombinationLabel(t *testing.T) {
	cfg := config.DefaultConfig()
	cases := []string{"dead", "live"}

	assert.Equal(t, "1.4·dead + 1.7·live", combinationLabel(cfg, cases, []float64{1.4, 1.7}))

	cfg.Combination = "2"
	factors, err := cfg.Factors(cases)
	require.NoError(t, err)
	assert.Equal(t, "NSCP 2: 1.2D + 1.6L + 0.5(Lr or R)", combinationLabel(cfg, cases, factors))
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "1.849", formatDelta(1.8493))
	assert.Equal(t, "n/a", formatMoment(120, math.Inf(1)))
	assert.Equal(t, "240.00", formatMoment(120, 2))
}
