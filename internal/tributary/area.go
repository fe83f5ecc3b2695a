package tributary

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gorcc/internal/geometry"
)

// MM2PerM2 converts areas in mm² to m².
const MM2PerM2 = 1e6

// SupportKind distinguishes columns from walls.
type SupportKind int

const (
	ColumnSupport SupportKind = iota
	WallSupport
)

func (k SupportKind) String() string {
	if k == WallSupport {
		return "wall"
	}
	return "column"
}

// Support identifies a column or wall of the floor.
type Support struct {
	Kind    SupportKind
	Index   int    // position within the columns or walls list
	Label   string // C1, C2, ... W1, W2, ...
	Outline orb.Ring
}

// ColumnArea is the tributary region of one support and the loads it
// collects. Values are built once by Partition and not modified afterwards.
type ColumnArea struct {
	Support Support

	// Slab pieces drained by the support, one per Voronoi cell. Pieces do
	// not overlap and may share edges.
	Region orb.MultiPolygon

	// Area of Region (mm²)
	Area float64

	// Fraction of Area covered by each occupancy category, zero overlaps omitted
	Occupancies map[string]float64

	// Force per load case (kN)
	Loads []float64
}

// CombinedLoad returns scale × Σ Loads[i]·factors[i].
// A support without load returns 0 for any factors.
func (a *ColumnArea) CombinedLoad(factors []float64, scale float64) (float64, error) {
	if len(a.Loads) == 0 || floats.Norm(a.Loads, 1) == 0 {
		return 0, nil
	}
	if len(factors) != len(a.Loads) {
		return 0, fmt.Errorf("%s: %d load factors given for %d load cases", a.Support.Label, len(factors), len(a.Loads))
	}
	return floats.Dot(a.Loads, factors) * scale, nil
}

// AreaM2 returns the tributary area in m².
func (a *ColumnArea) AreaM2() float64 {
	return a.Area / MM2PerM2
}

// Covers reports whether pt lies in the tributary region, boundary
// included.
func (a *ColumnArea) Covers(pt orb.Point) bool {
	return geometry.Covers(a.Region, pt, geometry.SnapTolerance)
}

// Centroid returns the centroid of the support outline.
func (a *ColumnArea) Centroid() orb.Point {
	return geometry.Centroid(a.Support.Outline)
}

// RegionCentroid returns the centroid of the tributary region.
func (a *ColumnArea) RegionCentroid() orb.Point {
	c, _ := planar.CentroidArea(a.Region)
	return c
}
