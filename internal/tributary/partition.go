// Package tributary assigns the area of a floor slab to the columns and
// walls that support it and accumulates the occupancy loads each support
// collects.
//
// The slab is divided by the Voronoi diagram of the support boundary
// vertices. Walls are densified first so that long walls attract load along
// their whole length. The slab pieces of all seeds belonging to the same
// support form its tributary region.
package tributary

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gorcc/internal/geometry"
)

// DefaultWallSegment is the default maximum wall segment length (mm).
const DefaultWallSegment = 300.0

// seed is a Voronoi site and the support it came from.
type seed struct {
	pt      orb.Point
	support int
}

// Partitioner computes tributary regions. It holds no state besides its
// logger and is safe for concurrent use.
type Partitioner struct {
	logger *zap.Logger
}

// NewPartitioner creates a partitioner that logs to logger. A nil logger
// discards all output.
func NewPartitioner(logger *zap.Logger) *Partitioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Partitioner{logger: logger}
}

// Partition is a convenience wrapper around a partitioner without logging.
func Partition(floor *FloorDefinition, table LoadTable, maxWallSegment float64) ([]*ColumnArea, error) {
	return NewPartitioner(nil).Partition(floor, table, maxWallSegment)
}

// Partition divides the slab of floor among its supports and computes the
// load each support collects from table. maxWallSegment (mm) bounds the
// spacing of seeds along wall boundaries.
//
// Columns are returned first in input order, followed by walls in input
// order. Either every support gets an area or an error is returned.
func (p *Partitioner) Partition(floor *FloorDefinition, table LoadTable, maxWallSegment float64) ([]*ColumnArea, error) {
	if floor == nil {
		return nil, &InputGeometryError{Item: "floor", Err: errors.New("no floor definition")}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	for _, cat := range floor.Categories() {
		if _, ok := table.Categories[cat]; !ok {
			return nil, &LoadTableError{Category: cat, Reason: "occupancy zone has no loads in the table"}
		}
	}
	if !(maxWallSegment > 0) || math.IsInf(maxWallSegment, 0) {
		return nil, &InputGeometryError{
			Item: "wall segment length",
			Err:  fmt.Errorf("must be a positive length, got %g", maxWallSegment),
		}
	}
	if err := floor.Validate(); err != nil {
		return nil, err
	}

	log := p.logger.With(zap.String("floor", floor.Name))

	supports := floor.Supports()
	seeds := collectSeeds(floor, maxWallSegment)
	log.Debug("collected seeds",
		zap.Int("columns", len(floor.Columns)),
		zap.Int("walls", len(floor.Walls)),
		zap.Int("seeds", len(seeds)))

	bound := floor.SlabOutline.Bound()
	pts := make([]orb.Point, len(seeds))
	for i, s := range seeds {
		pts[i] = s.pt
		bound = bound.Extend(s.pt)
	}
	diag := planar.Distance(bound.Min, bound.Max)

	cells, err := geometry.VoronoiCells(pts, bound.Pad(diag))
	if err != nil {
		return nil, &PartitionConsistencyError{Seeds: len(seeds), Err: err}
	}

	slab := floor.Slab()
	tol := geometry.Tolerance(diag)
	regions := make([]orb.MultiPolygon, len(supports))
	var missing []int
	matched := 0
	for id, cell := range cells {
		if cell == nil {
			missing = append(missing, id)
			continue
		}
		piece := geometry.ClipPolygon(slab, cell)
		if piece == nil || !geometry.Covers(orb.MultiPolygon{piece}, seeds[id].pt, tol) {
			missing = append(missing, id)
			continue
		}
		matched++
		s := seeds[id].support
		regions[s] = append(regions[s], piece)
	}
	log.Debug("clipped voronoi cells", zap.Int("cells", matched), zap.Int("unmatched", len(missing)))

	if len(missing) > 0 {
		return nil, &PartitionConsistencyError{Seeds: len(seeds), Cells: matched, Missing: missing}
	}

	areas := make([]*ColumnArea, len(supports))
	var total float64
	for i, sup := range supports {
		areas[i] = newColumnArea(sup, regions[i], floor.Zones, table)
		total += areas[i].Area
	}
	if net := planar.Area(slab); math.Abs(total-net) > net*1e-6 {
		return nil, &PartitionConsistencyError{
			Seeds: len(seeds),
			Cells: matched,
			Err:   fmt.Errorf("tributary areas sum to %.6g mm², slab has %.6g mm²", total, net),
		}
	}
	log.Debug("partitioned slab", zap.Int("supports", len(areas)), zap.Float64("slab_area", planar.Area(slab)))
	return areas, nil
}

// collectSeeds returns the boundary vertices of every column, then of every
// densified wall, tagged with the index of their support in Supports order.
func collectSeeds(floor *FloorDefinition, maxWallSegment float64) []seed {
	var seeds []seed
	for i, c := range floor.Columns {
		for _, pt := range geometry.Open(c) {
			seeds = append(seeds, seed{pt: pt, support: i})
		}
	}
	for i, w := range floor.Walls {
		for _, pt := range geometry.Densify(w, maxWallSegment) {
			seeds = append(seeds, seed{pt: pt, support: len(floor.Columns) + i})
		}
	}
	return seeds
}

func newColumnArea(sup Support, region orb.MultiPolygon, zones []Zone, table LoadTable) *ColumnArea {
	area := geometry.Area(region)
	ca := &ColumnArea{
		Support:     sup,
		Region:      region,
		Area:        area,
		Occupancies: make(map[string]float64),
		Loads:       make([]float64, table.NumCases()),
	}
	if area <= 0 {
		return ca
	}

	var order []string
	for _, z := range zones {
		if len(z.Outline) == 0 {
			continue
		}
		var overlap float64
		for _, piece := range region {
			overlap += geometry.OverlapArea(piece, z.Outline)
		}
		if overlap <= 0 {
			continue
		}
		if _, ok := ca.Occupancies[z.Category]; !ok {
			order = append(order, z.Category)
		}
		ca.Occupancies[z.Category] = math.Min(ca.Occupancies[z.Category]+overlap/area, 1)
	}

	for _, cat := range order {
		floats.AddScaled(ca.Loads, ca.Occupancies[cat]*area/MM2PerM2, table.Categories[cat])
	}
	return ca
}
