package tributary

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/alexiusacademia/gorcc/internal/geometry"
)

// Occupancy categories of the two-zone floor format.
const (
	LightOccupancy = "light_occupancy"
	HeavyOccupancy = "heavy_occupancy"
)

// Zone is an occupancy zone. Zones may overlap and are interpreted
// independently of each other.
type Zone struct {
	Category string
	Outline  orb.Ring
}

// FloorDefinition is the geometry of one floor in millimetres.
type FloorDefinition struct {
	Name         string
	SlabOutline  orb.Ring
	SlabOpenings []orb.Ring
	Columns      []orb.Ring
	Walls        []orb.Ring
	Zones        []Zone
}

// Validate checks every outline of the floor.
// Zones with an empty outline are ignored.
func (f *FloorDefinition) Validate() error {
	if len(f.SlabOutline) == 0 {
		return &InputGeometryError{Item: "slab", Err: fmt.Errorf("slab outline is missing")}
	}
	if err := geometry.Validate(f.SlabOutline); err != nil {
		return &InputGeometryError{Item: "slab", Err: err}
	}

	slab := orb.Polygon{f.SlabOutline}
	for i, o := range f.SlabOpenings {
		item := fmt.Sprintf("opening %d", i+1)
		if err := geometry.Validate(o); err != nil {
			return &InputGeometryError{Item: item, Err: err}
		}
		for _, v := range geometry.Open(o) {
			if !planar.RingContains(f.SlabOutline, v) {
				return &InputGeometryError{Item: item, Err: fmt.Errorf("opening is not inside the slab")}
			}
		}
		area := math.Abs(planar.Area(geometry.Close(o)))
		if geometry.OverlapArea(slab, o) < area*(1-1e-9) {
			return &InputGeometryError{Item: item, Err: fmt.Errorf("opening is not inside the slab")}
		}
		for j := 0; j < i; j++ {
			if geometry.OverlapArea(orb.Polygon{f.SlabOpenings[j]}, o) > area*1e-9 {
				return &InputGeometryError{Item: item, Err: fmt.Errorf("overlaps opening %d", j+1)}
			}
		}
	}

	if len(f.Columns)+len(f.Walls) == 0 {
		return &InputGeometryError{Item: "supports", Err: fmt.Errorf("floor has no columns or walls")}
	}
	for i, c := range f.Columns {
		if err := geometry.Validate(c); err != nil {
			return &InputGeometryError{Item: fmt.Sprintf("column %d", i+1), Err: err}
		}
	}
	for i, w := range f.Walls {
		if err := geometry.Validate(w); err != nil {
			return &InputGeometryError{Item: fmt.Sprintf("wall %d", i+1), Err: err}
		}
	}
	for i, z := range f.Zones {
		if len(z.Outline) == 0 {
			continue
		}
		if z.Category == "" {
			return &InputGeometryError{Item: fmt.Sprintf("zone %d", i+1), Err: fmt.Errorf("zone has no category")}
		}
		if err := geometry.Validate(z.Outline); err != nil {
			return &InputGeometryError{Item: fmt.Sprintf("zone %d (%s)", i+1, z.Category), Err: err}
		}
	}
	return nil
}

// Slab returns the slab outline with its openings as holes, the shell
// counter-clockwise and the holes clockwise.
func (f *FloorDefinition) Slab() orb.Polygon {
	p := orb.Polygon{f.SlabOutline}
	p = append(p, f.SlabOpenings...)
	return geometry.Orient(p)
}

// NetArea returns the slab area less its openings (mm²).
func (f *FloorDefinition) NetArea() float64 {
	return planar.Area(f.Slab())
}

// Supports lists the columns followed by the walls.
func (f *FloorDefinition) Supports() []Support {
	out := make([]Support, 0, len(f.Columns)+len(f.Walls))
	for i, c := range f.Columns {
		out = append(out, Support{Kind: ColumnSupport, Index: i, Label: fmt.Sprintf("C%d", i+1), Outline: geometry.Close(c)})
	}
	for i, w := range f.Walls {
		out = append(out, Support{Kind: WallSupport, Index: i, Label: fmt.Sprintf("W%d", i+1), Outline: geometry.Close(w)})
	}
	return out
}

// Categories returns the distinct zone categories in first-seen order.
func (f *FloorDefinition) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, z := range f.Zones {
		if len(z.Outline) == 0 || seen[z.Category] {
			continue
		}
		seen[z.Category] = true
		out = append(out, z.Category)
	}
	return out
}
