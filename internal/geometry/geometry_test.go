package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, size float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0}}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		ring orb.Ring
		want error
	}{
		{"closed square", square(0, 0, 10), nil},
		{"open square", Open(square(0, 0, 10)), nil},
		{"clockwise square", orb.Ring{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, nil},
		{"two points", orb.Ring{{0, 0}, {1, 1}}, ErrTooFewVertices},
		{"repeated vertices", orb.Ring{{0, 0}, {0, 0}, {1, 1}, {1, 1}}, ErrTooFewVertices},
		{"collinear", orb.Ring{{0, 0}, {5, 0}, {10, 0}}, ErrZeroArea},
		{"bow tie", orb.Ring{{0, 0}, {10, 10}, {10, 0}, {0, 10}}, ErrSelfIntersecting},
		{"touching vertex", orb.Ring{{0, 0}, {10, 0}, {5, 5}, {10, 10}, {0, 10}, {5, 0}}, ErrSelfIntersecting},
		{"nan", orb.Ring{{0, 0}, {math.NaN(), 0}, {1, 1}}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ring)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDensify(t *testing.T) {
	wall := orb.Ring{{0, 0}, {1000, 0}, {1000, 100}, {0, 100}, {0, 0}}

	got := Densify(wall, 300)
	// 1000 mm edges split into 4, 100 mm edges untouched
	require.Len(t, got, 10)
	assert.Equal(t, orb.Point{0, 0}, got[0])
	assert.Equal(t, orb.Point{250, 0}, got[1])
	assert.Equal(t, orb.Point{1000, 0}, got[4])

	for i := range got {
		a, b := got[i], got[(i+1)%len(got)]
		assert.LessOrEqual(t, planar.Distance(a, b), 300.0+1e-9)
	}

	assert.Len(t, Densify(wall, 0), 4)
	assert.InDelta(t, planar.Area(Close(wall)), planar.Area(Close(got)), 1e-6)
}

func TestVoronoiCellsSplitBox(t *testing.T) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	seeds := []orb.Point{{25, 25}, {75, 25}, {25, 75}, {75, 75}}

	cells, err := VoronoiCells(seeds, box)
	require.NoError(t, err)
	require.Len(t, cells, 4)

	for i, c := range cells {
		require.NotNil(t, c, "seed %d", i)
		assert.InDelta(t, 2500, math.Abs(planar.Area(c)), 1e-6)
		assert.True(t, planar.RingContains(c, seeds[i]))
	}
}

func TestVoronoiCellsTwoSeeds(t *testing.T) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 50}}
	cells, err := VoronoiCells([]orb.Point{{10, 25}, {30, 25}}, box)
	require.NoError(t, err)

	assert.InDelta(t, 1000, math.Abs(planar.Area(cells[0])), 1e-6)
	assert.InDelta(t, 4000, math.Abs(planar.Area(cells[1])), 1e-6)
}

func TestVoronoiCellsDuplicateSeed(t *testing.T) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	seeds := []orb.Point{{10, 10}, {90, 10}, {50, 90}, {90, 10}}

	cells, err := VoronoiCells(seeds, box)
	require.NoError(t, err)
	assert.NotNil(t, cells[1])
	assert.Nil(t, cells[3])

	var total float64
	for _, c := range cells {
		if c != nil {
			total += math.Abs(planar.Area(c))
		}
	}
	assert.InDelta(t, 10000, total, 1e-6)
}

func TestVoronoiCellsSingleSeed(t *testing.T) {
	box := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	cells, err := VoronoiCells([]orb.Point{{3, 3}}, box)
	require.NoError(t, err)
	assert.InDelta(t, 100, math.Abs(planar.Area(cells[0])), 1e-9)
}

func TestClipPolygonWithHole(t *testing.T) {
	slab := orb.Polygon{square(0, 0, 100), square(40, 40, 20)}

	whole := ClipPolygon(slab, square(-10, -10, 200))
	require.Len(t, whole, 2)
	assert.Equal(t, orb.CCW, whole[0].Orientation())
	assert.Equal(t, orb.CW, whole[1].Orientation())
	assert.InDelta(t, 9600, planar.Area(whole), 1e-9)

	// the left half keeps half of the hole
	left := ClipPolygon(slab, orb.Ring{{-10, -10}, {50, -10}, {50, 110}, {-10, 110}, {-10, -10}})
	require.Len(t, left, 2)
	assert.InDelta(t, 4800, planar.Area(left), 1e-9)

	// a cell clear of the hole drops it
	corner := ClipPolygon(slab, square(0, 0, 30))
	require.Len(t, corner, 1)
	assert.InDelta(t, 900, planar.Area(corner), 1e-9)

	assert.Nil(t, ClipPolygon(slab, square(200, 200, 10)))
	assert.Nil(t, ClipPolygon(slab, square(45, 45, 10)))
}

func TestClipPolygonNoisyCell(t *testing.T) {
	slab := orb.Polygon{square(0, 0, 10000)}
	cell := orb.Ring{
		{7500.000000000001, 7500},
		{24142.13, 7500.000000000002},
		{24142.13, 24142.13},
		{7500, 24142.13},
		{7500.000000000001, 7500},
	}

	piece := ClipPolygon(slab, cell)
	require.NotNil(t, piece)
	assert.InDelta(t, 2500*2500, planar.Area(piece), 1e-3)
	assert.True(t, Covers(orb.MultiPolygon{piece}, orb.Point{7500, 7500}, SnapTolerance))
	assert.InDelta(t, 2500*2500, planar.Area(ClipPolygon(slab, Snap(cell))), 1e-6)
}

func TestClipConvexConcaveSubject(t *testing.T) {
	// L-shaped slab cut by a band crossing both legs
	l := orb.Ring{{0, 0}, {100, 0}, {100, 40}, {40, 40}, {40, 100}, {0, 100}, {0, 0}}
	band := orb.Ring{{-10, 20}, {110, 20}, {110, 60}, {-10, 60}, {-10, 20}}

	got := ClipConvex(l, band)
	require.NotNil(t, got)
	assert.InDelta(t, 100*20+40*20, planar.Area(got), 1e-9)

	cw := l.Clone()
	cw.Reverse()
	assert.InDelta(t, -(100*20 + 40*20), planar.Area(ClipConvex(cw, band)), 1e-9)
}

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		p    orb.Polygon
		r    orb.Ring
		want float64
	}{
		{"offset squares", orb.Polygon{square(0, 0, 10)}, square(5, 5, 10), 25},
		{"disjoint", orb.Polygon{square(0, 0, 10)}, square(20, 20, 10), 0},
		{"contained", orb.Polygon{square(0, 0, 100)}, square(10, 10, 10), 100},
		{"clockwise ring", orb.Polygon{square(0, 0, 10)}, orb.Ring{{5, 5}, {5, 15}, {15, 15}, {15, 5}, {5, 5}}, 25},
		{"with hole", orb.Polygon{square(0, 0, 100), square(40, 40, 20)}, square(0, 0, 100), 9600},
		{"shared edge", orb.Polygon{square(0, 0, 10)}, square(10, 0, 10), 0},
		{
			"concave ring",
			orb.Polygon{square(0, 0, 100)},
			orb.Ring{{50, 50}, {150, 50}, {150, 150}, {100, 150}, {100, 100}, {50, 100}, {50, 50}},
			2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverlapArea(tt.p, tt.r), 1e-9)
		})
	}
}

func TestSnap(t *testing.T) {
	got := Snap(orb.Ring{{7500.000000000001, 7500}, {10000, 7500.000000000002}, {10000, 10000}, {7500, 10000}})
	require.Len(t, got, 5)
	assert.Equal(t, orb.Point{7500, 7500}, got[0])
	assert.Equal(t, orb.Point{10000, 7500}, got[1])
	assert.Equal(t, got[0], got[4])

	assert.Nil(t, Snap(orb.Ring{{0, 0}, {1e-9, 0}, {0, 1e-9}}))
}

func TestCovers(t *testing.T) {
	mp := orb.MultiPolygon{
		{square(0, 0, 10)},
		{square(10, 0, 10), square(12, 2, 4)},
	}

	assert.True(t, Covers(mp, orb.Point{5, 5}, 0))
	assert.True(t, Covers(mp, orb.Point{10, 5}, 0))
	assert.True(t, Covers(mp, orb.Point{20 + 1e-7, 5}, 1e-6))
	assert.False(t, Covers(mp, orb.Point{21, 5}, 1e-6))
	assert.False(t, Covers(mp, orb.Point{14, 4}, 1e-6))
	assert.InDelta(t, 200-16, Area(mp), 1e-9)
}

func TestCentroid(t *testing.T) {
	c := Centroid(square(100, 200, 400))
	assert.InDelta(t, 300, c[0], 1e-9)
	assert.InDelta(t, 400, c[1], 1e-9)
}
