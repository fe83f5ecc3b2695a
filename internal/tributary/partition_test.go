package tributary

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/geometry"
)

func rect(x0, y0, x1, y1 float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

// column returns a square column of the given size centred on (cx, cy).
func column(cx, cy, size float64) orb.Ring {
	h := size / 2
	return rect(cx-h, cy-h, cx+h, cy+h)
}

func testTable() LoadTable {
	return LoadTable{
		Cases: []string{"dead", "live"},
		Categories: map[string][]float64{
			LightOccupancy: {2, 3},
			HeavyOccupancy: {4, 5},
		},
	}
}

func fourColumnFloor(size float64) *FloorDefinition {
	a, b := size/4, size*3/4
	return &FloorDefinition{
		Name:        "four columns",
		SlabOutline: rect(0, 0, size, size),
		Columns: []orb.Ring{
			column(a, a, 400),
			column(b, a, 400),
			column(a, b, 400),
			column(b, b, 400),
		},
	}
}

func totalArea(areas []*ColumnArea) float64 {
	var sum float64
	for _, a := range areas {
		sum += a.Area
	}
	return sum
}

func TestPartitionSingleColumnTwoZones(t *testing.T) {
	floor := &FloorDefinition{
		SlabOutline: rect(0, 0, 10000, 10000),
		Columns:     []orb.Ring{column(5000, 5000, 400)},
		Zones: []Zone{
			{Category: LightOccupancy, Outline: rect(0, 0, 5000, 10000)},
			{Category: HeavyOccupancy, Outline: rect(5000, 0, 10000, 10000)},
		},
	}

	areas, err := NewPartitioner(zap.NewNop()).Partition(floor, testTable(), 300)
	require.NoError(t, err)
	require.Len(t, areas, 1)

	a := areas[0]
	assert.Equal(t, "C1", a.Support.Label)
	assert.Equal(t, ColumnSupport, a.Support.Kind)
	assert.InDelta(t, 1e8, a.Area, 1e-2)
	assert.InDelta(t, 100, a.AreaM2(), 1e-8)
	assert.InDelta(t, 0.5, a.Occupancies[LightOccupancy], 1e-9)
	assert.InDelta(t, 0.5, a.Occupancies[HeavyOccupancy], 1e-9)

	require.Len(t, a.Loads, 2)
	assert.InDelta(t, 300, a.Loads[0], 1e-6)
	assert.InDelta(t, 400, a.Loads[1], 1e-6)

	combined, err := a.CombinedLoad([]float64{1.4, 1.7}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1100, combined, 1e-6)
}

func TestPartitionFourColumnSymmetry(t *testing.T) {
	areas, err := Partition(fourColumnFloor(12000), testTable(), 300)
	require.NoError(t, err)
	require.Len(t, areas, 4)

	for i, a := range areas {
		assert.InDelta(t, 36e6, a.Area, 1, "support %d", i)
		assert.Empty(t, a.Occupancies)
		assert.Equal(t, []float64{0, 0}, a.Loads)
	}
	assert.InDelta(t, 144e6, totalArea(areas), 1)

	// regions meet only along their boundaries
	for i := range areas {
		for j := i + 1; j < len(areas); j++ {
			var overlap float64
			for _, p := range areas[i].Region {
				for _, q := range areas[j].Region {
					overlap += geometry.OverlapArea(p, q[0])
				}
			}
			assert.InDelta(t, 0, overlap, 1e-3, "C%d/C%d", i+1, j+1)
		}
	}

	// every region holds its own column and no other
	for _, a := range areas {
		for _, b := range areas {
			assert.Equal(t, a == b, a.Covers(b.Centroid()), "%s holds %s", a.Support.Label, b.Support.Label)
		}
	}
}

func TestPartitionFourColumnSlabSizes(t *testing.T) {
	for _, size := range []float64{7000, 9000, 10000, 12000, 15500, 23456.7} {
		first, err := Partition(fourColumnFloor(size), testTable(), 300)
		require.NoError(t, err, "slab %g", size)
		require.Len(t, first, 4)

		quarter := size * size / 4
		for _, a := range first {
			assert.InDelta(t, quarter, a.Area, quarter*1e-6, "slab %g %s", size, a.Support.Label)
		}

		again, err := Partition(fourColumnFloor(size), testTable(), 300)
		require.NoError(t, err)
		for i := range first {
			assert.Equal(t, first[i].Area, again[i].Area, "slab %g %s", size, first[i].Support.Label)
			assert.Equal(t, first[i].Region, again[i].Region)
		}
	}
}

func TestPartitionRegionArea(t *testing.T) {
	floor := &FloorDefinition{
		SlabOutline: rect(0, 0, 10000, 10000),
		Columns:     []orb.Ring{column(5000, 5000, 400)},
	}

	areas, err := Partition(floor, testTable(), 300)
	require.NoError(t, err)
	require.Len(t, areas, 1)

	a := areas[0]
	assert.InDelta(t, 1e8, a.Area, 1e-2)
	assert.InDelta(t, a.Area, geometry.Area(a.Region), 1e-6)
	for _, piece := range a.Region {
		assert.Greater(t, planar.Area(piece), 0.0)
	}
	assert.InDelta(t, 5000, a.RegionCentroid()[0], 1e-6)
	assert.InDelta(t, 5000, a.RegionCentroid()[1], 1e-6)
}

func TestPartitionWithOpening(t *testing.T) {
	floor := fourColumnFloor(10000)
	floor.SlabOpenings = []orb.Ring{rect(4000, 4000, 6000, 6000)}

	areas, err := Partition(floor, testTable(), 300)
	require.NoError(t, err)

	assert.InDelta(t, 96e6, totalArea(areas), 1)
	for _, a := range areas {
		assert.InDelta(t, 24e6, a.Area, 1, a.Support.Label)
	}
}

func TestPartitionDuplicateColumn(t *testing.T) {
	floor := &FloorDefinition{
		SlabOutline: rect(0, 0, 10000, 10000),
		Columns: []orb.Ring{
			column(2500, 2500, 400),
			column(7500, 7500, 400),
			column(2500, 2500, 400),
		},
	}

	areas, err := Partition(floor, testTable(), 300)
	assert.Nil(t, areas)

	var pce *PartitionConsistencyError
	require.True(t, errors.As(err, &pce), "got %v", err)
	assert.Equal(t, 12, pce.Seeds)
	assert.Equal(t, 8, pce.Cells)
	assert.Equal(t, []int{8, 9, 10, 11}, pce.Missing)
}

func TestPartitionColumnOutsideSlab(t *testing.T) {
	floor := &FloorDefinition{
		SlabOutline: rect(0, 0, 10000, 10000),
		Columns: []orb.Ring{
			column(5000, 5000, 400),
			column(20000, 5000, 400),
		},
	}

	_, err := Partition(floor, testTable(), 300)
	var pce *PartitionConsistencyError
	assert.ErrorAs(t, err, &pce)
}

func TestPartitionWallSegmentation(t *testing.T) {
	newFloor := func() *FloorDefinition {
		return &FloorDefinition{
			SlabOutline: rect(0, 0, 10000, 10000),
			Columns:     []orb.Ring{column(5000, 8500, 400)},
			Walls:       []orb.Ring{rect(2000, 4900, 8000, 5100)},
			Zones:       []Zone{{Category: LightOccupancy, Outline: rect(0, 0, 10000, 10000)}},
		}
	}

	coarse, err := Partition(newFloor(), testTable(), 6000.0/4)
	require.NoError(t, err)
	fine, err := Partition(newFloor(), testTable(), 6000.0/8)
	require.NoError(t, err)

	require.Len(t, coarse, 2)
	require.Len(t, fine, 2)
	assert.Equal(t, "C1", coarse[0].Support.Label)
	assert.Equal(t, "W1", coarse[1].Support.Label)
	assert.Equal(t, WallSupport, coarse[1].Support.Kind)

	assert.InDelta(t, 1e8, totalArea(coarse), 1)
	assert.InDelta(t, 1e8, totalArea(fine), 1)

	// a finer segmentation only moves the boundary between supports
	assert.InDelta(t, 1e8, coarse[0].Area+coarse[1].Area, 1)
	assert.InDelta(t, 1, fine[1].Occupancies[LightOccupancy], 1e-9)
}

func TestPartitionWallOnly(t *testing.T) {
	floor := &FloorDefinition{
		SlabOutline: rect(0, 0, 10000, 10000),
		Walls:       []orb.Ring{rect(2000, 4900, 8000, 5100)},
	}

	for _, seg := range []float64{6000.0 / 4, 6000.0 / 8} {
		areas, err := Partition(floor, testTable(), seg)
		require.NoError(t, err)
		require.Len(t, areas, 1)
		assert.InDelta(t, 1e8, areas[0].Area, 1)
	}
}

func TestPartitionOverlappingZones(t *testing.T) {
	floor := &FloorDefinition{
		SlabOutline: rect(0, 0, 10000, 10000),
		Columns:     []orb.Ring{column(5000, 5000, 400)},
		Zones: []Zone{
			{Category: LightOccupancy, Outline: rect(0, 0, 10000, 10000)},
			{Category: HeavyOccupancy, Outline: rect(0, 0, 10000, 2500)},
			{Category: LightOccupancy, Outline: rect(0, 0, 5000, 5000)},
			{Category: HeavyOccupancy},
		},
	}

	areas, err := Partition(floor, testTable(), 300)
	require.NoError(t, err)

	a := areas[0]
	// independent zones: the light fraction is capped, heavy overlaps it
	assert.InDelta(t, 1, a.Occupancies[LightOccupancy], 1e-9)
	assert.InDelta(t, 0.25, a.Occupancies[HeavyOccupancy], 1e-9)
	for cat, frac := range a.Occupancies {
		assert.GreaterOrEqual(t, frac, 0.0, cat)
		assert.LessOrEqual(t, frac, 1.0, cat)
	}
	assert.InDelta(t, 100*2+0.25*100*4, a.Loads[0], 1e-6)
	assert.InDelta(t, 100*3+0.25*100*5, a.Loads[1], 1e-6)
}

func TestPartitionInputErrors(t *testing.T) {
	valid := func() *FloorDefinition {
		return &FloorDefinition{
			SlabOutline: rect(0, 0, 10000, 10000),
			Columns:     []orb.Ring{column(5000, 5000, 400)},
		}
	}

	t.Run("nil floor", func(t *testing.T) {
		_, err := Partition(nil, testTable(), 300)
		var ige *InputGeometryError
		assert.ErrorAs(t, err, &ige)
	})

	t.Run("no supports", func(t *testing.T) {
		f := valid()
		f.Columns = nil
		_, err := Partition(f, testTable(), 300)
		var ige *InputGeometryError
		require.ErrorAs(t, err, &ige)
		assert.Equal(t, "supports", ige.Item)
	})

	t.Run("self-intersecting column", func(t *testing.T) {
		f := valid()
		f.Columns = append(f.Columns, orb.Ring{{0, 0}, {400, 400}, {400, 0}, {0, 400}})
		_, err := Partition(f, testTable(), 300)
		var ige *InputGeometryError
		require.ErrorAs(t, err, &ige)
		assert.Equal(t, "column 2", ige.Item)
		assert.ErrorIs(t, err, geometry.ErrSelfIntersecting)
	})

	t.Run("degenerate slab", func(t *testing.T) {
		f := valid()
		f.SlabOutline = orb.Ring{{0, 0}, {10000, 0}}
		_, err := Partition(f, testTable(), 300)
		assert.ErrorIs(t, err, geometry.ErrTooFewVertices)
	})

	t.Run("opening outside slab", func(t *testing.T) {
		f := valid()
		f.SlabOpenings = []orb.Ring{rect(9000, 9000, 11000, 11000)}
		_, err := Partition(f, testTable(), 300)
		var ige *InputGeometryError
		require.ErrorAs(t, err, &ige)
		assert.Equal(t, "opening 1", ige.Item)
	})

	t.Run("non-positive segment length", func(t *testing.T) {
		for _, seg := range []float64{0, -1, math.NaN()} {
			_, err := Partition(valid(), testTable(), seg)
			var ige *InputGeometryError
			assert.ErrorAs(t, err, &ige, "segment %v", seg)
		}
	})

	t.Run("unknown zone category", func(t *testing.T) {
		f := valid()
		f.Zones = []Zone{{Category: "storage", Outline: rect(0, 0, 100, 100)}}
		_, err := Partition(f, testTable(), 300)
		var lte *LoadTableError
		require.ErrorAs(t, err, &lte)
		assert.Equal(t, "storage", lte.Category)
	})

	t.Run("ragged load table", func(t *testing.T) {
		table := LoadTable{Cases: []string{"dead", "live"}, Categories: map[string][]float64{
			LightOccupancy: {2, 3},
			HeavyOccupancy: {4},
		}}
		_, err := Partition(valid(), table, 300)
		var lte *LoadTableError
		require.ErrorAs(t, err, &lte)
		assert.Equal(t, HeavyOccupancy, lte.Category)
	})
}

func TestCombinedLoad(t *testing.T) {
	a := &ColumnArea{Support: Support{Label: "C1"}, Loads: []float64{300, 400}}

	got, err := a.CombinedLoad([]float64{1.2, 1.6}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1000, got, 1e-9)

	doubled, err := a.CombinedLoad([]float64{2.4, 3.2}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 2*got, doubled, 1e-9)

	scaled, err := a.CombinedLoad([]float64{1.2, 1.6}, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 500, scaled, 1e-9)

	zero, err := a.CombinedLoad([]float64{0, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	_, err = a.CombinedLoad([]float64{1.4}, 1)
	assert.Error(t, err)

	empty := &ColumnArea{Loads: []float64{0, 0}}
	v, err := empty.CombinedLoad([]float64{1, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestSupportKindString(t *testing.T) {
	assert.Equal(t, "column", ColumnSupport.String())
	assert.Equal(t, "wall", WallSupport.String())
}
