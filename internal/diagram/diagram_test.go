package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func twoSupportMap() LoadMapData {
	return LoadMapData{
		Title: "Level 2",
		Slab:  square(0, 0, 10000, 5000),
		Supports: []SupportShape{
			{
				Label:   "C1",
				Outline: square(2200, 2200, 2800, 2800),
				Region:  orb.MultiPolygon{{square(0, 0, 5000, 5000)}},
				LabelAt: orb.Point{2500, 2500},
				Value:   120.5,
			},
			{
				Label:   "C2",
				Outline: square(7200, 2200, 7800, 2800),
				Region:  orb.MultiPolygon{{square(5000, 0, 10000, 5000)}},
				LabelAt: orb.Point{7500, 2500},
				Value:   98.3,
			},
		},
	}
}

func TestDrawASCIILoadMap(t *testing.T) {
	out := DrawASCIILoadMap(twoSupportMap(), 40)

	lines := strings.Split(out, "\n")
	// blank, top border, 10 rows, bottom border
	require.Greater(t, len(lines), 13)
	row := lines[3]
	assert.True(t, strings.HasPrefix(row, "  │A"), row)
	assert.True(t, strings.HasSuffix(row, "B│"), row)
	assert.Equal(t, 20, strings.Count(row, "A"))
	assert.Equal(t, 20, strings.Count(row, "B"))

	assert.Contains(t, out, "A = C1  120.5 kN")
	assert.Contains(t, out, "B = C2  98.3 kN")
	assert.Contains(t, out, "█")
}

func TestDrawASCIILoadMapOpening(t *testing.T) {
	data := twoSupportMap()
	data.Openings = []orb.Ring{square(4000, 1000, 6000, 4000)}
	data.Unit = "kips"

	out := DrawASCIILoadMap(data, 40)
	lines := strings.Split(out, "\n")
	mid := lines[2+5]
	assert.Contains(t, mid, "        ")
	assert.Contains(t, out, "kips")
}

func TestDrawASCIILoadMapDegenerate(t *testing.T) {
	assert.Empty(t, DrawASCIILoadMap(LoadMapData{}, 40))
	assert.Empty(t, DrawASCIILoadMap(LoadMapData{Slab: orb.Ring{{0, 0}, {1, 0}, {2, 0}}}, 40))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("FLOOR", []string{"Supports: 2", "Total: 218.8 kN"})
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "FLOOR")
	assert.Contains(t, out, "Total: 218.8 kN")
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

func TestExportLoadMap(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name, file, want string
	}{
		{"png", "plan.png", "plan.png"},
		{"svg", "plan.svg", "plan.svg"},
		{"default extension", "nested/plan", "nested/plan.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ExportLoadMap(twoSupportMap(), filepath.Join(dir, tt.file)))
			info, err := os.Stat(filepath.Join(dir, tt.want))
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestExportLoadMapNoSlab(t *testing.T) {
	err := ExportLoadMap(LoadMapData{}, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
