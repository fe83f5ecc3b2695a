package tributary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature roles recognised in GeoJSON floor files.
const (
	RoleSlab    = "slab"
	RoleOpening = "opening"
	RoleColumn  = "column"
	RoleWall    = "wall"
	RoleZone    = "zone"
)

// floorFile is the JSON layout of a floor definition. Outlines are arrays
// of [x, y] pairs in millimetres.
type floorFile struct {
	Name           string      `json:"name,omitempty"`
	SlabOutline    orb.Ring    `json:"slab_outline"`
	SlabOpenings   []orb.Ring  `json:"slab_openings,omitempty"`
	Columns        []orb.Ring  `json:"columns,omitempty"`
	Walls          []orb.Ring  `json:"walls,omitempty"`
	LightOccupancy orb.Ring    `json:"light_occupancy,omitempty"`
	HeavyOccupancy orb.Ring    `json:"heavy_occupancy,omitempty"`
	OccupancyZones []zoneEntry `json:"occupancy_zones,omitempty"`
}

type zoneEntry struct {
	Category string   `json:"category"`
	Outline  orb.Ring `json:"outline"`
}

// LoadFloorFromFile reads a floor definition from a JSON or GeoJSON file
// and validates it. The floor name defaults to the file name.
func LoadFloorFromFile(path string) (*FloorDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var floor *FloorDefinition
	if strings.EqualFold(filepath.Ext(path), ".geojson") || isFeatureCollection(data) {
		floor, err = ParseGeoJSONFloor(data)
	} else {
		floor, err = ParseFloorJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if floor.Name == "" {
		floor.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := floor.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return floor, nil
}

func isFeatureCollection(data []byte) bool {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &probe); err != nil {
		return false
	}
	return probe.Type == "FeatureCollection"
}

// ParseFloorJSON decodes the JSON floor layout. The light_occupancy and
// heavy_occupancy outlines become zones of the same category.
func ParseFloorJSON(data []byte) (*FloorDefinition, error) {
	var ff floorFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, err
	}

	floor := &FloorDefinition{
		Name:         ff.Name,
		SlabOutline:  ff.SlabOutline,
		SlabOpenings: ff.SlabOpenings,
		Columns:      ff.Columns,
		Walls:        ff.Walls,
	}
	if len(ff.LightOccupancy) > 0 {
		floor.Zones = append(floor.Zones, Zone{Category: LightOccupancy, Outline: ff.LightOccupancy})
	}
	if len(ff.HeavyOccupancy) > 0 {
		floor.Zones = append(floor.Zones, Zone{Category: HeavyOccupancy, Outline: ff.HeavyOccupancy})
	}
	for _, z := range ff.OccupancyZones {
		floor.Zones = append(floor.Zones, Zone{Category: z.Category, Outline: z.Outline})
	}
	return floor, nil
}

// MarshalFloorJSON encodes floor in the JSON floor layout.
func MarshalFloorJSON(floor *FloorDefinition) ([]byte, error) {
	ff := floorFile{
		Name:         floor.Name,
		SlabOutline:  floor.SlabOutline,
		SlabOpenings: floor.SlabOpenings,
		Columns:      floor.Columns,
		Walls:        floor.Walls,
	}
	for _, z := range floor.Zones {
		ff.OccupancyZones = append(ff.OccupancyZones, zoneEntry{Category: z.Category, Outline: z.Outline})
	}
	return json.MarshalIndent(ff, "", "  ")
}

// ParseGeoJSONFloor builds a floor from a FeatureCollection. Each feature
// carries a "role" property; zones also carry a "category". Holes of the
// slab polygon are taken as openings.
func ParseGeoJSONFloor(data []byte) (*FloorDefinition, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	floor := &FloorDefinition{}
	if name, ok := fc.ExtraMembers["name"].(string); ok {
		floor.Name = name
	}

	for i, f := range fc.Features {
		role := stringProperty(f.Properties, "role")
		polys, err := featurePolygons(f)
		if err != nil {
			return nil, &InputGeometryError{Item: fmt.Sprintf("feature %d (%s)", i+1, role), Err: err}
		}

		switch role {
		case RoleSlab:
			if len(floor.SlabOutline) > 0 || len(polys) != 1 || len(polys[0]) == 0 {
				return nil, &InputGeometryError{Item: "slab", Err: fmt.Errorf("expected exactly one slab polygon")}
			}
			floor.SlabOutline = polys[0][0]
			floor.SlabOpenings = append(floor.SlabOpenings, polys[0][1:]...)
		case RoleOpening:
			floor.SlabOpenings = append(floor.SlabOpenings, shells(polys)...)
		case RoleColumn:
			floor.Columns = append(floor.Columns, shells(polys)...)
		case RoleWall:
			floor.Walls = append(floor.Walls, shells(polys)...)
		case RoleZone:
			cat := stringProperty(f.Properties, "category")
			for _, r := range shells(polys) {
				floor.Zones = append(floor.Zones, Zone{Category: cat, Outline: r})
			}
		default:
			return nil, &InputGeometryError{Item: fmt.Sprintf("feature %d", i+1), Err: fmt.Errorf("unknown role %q", role)}
		}
	}
	return floor, nil
}

func featurePolygons(f *geojson.Feature) ([]orb.Polygon, error) {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}, nil
	case orb.MultiPolygon:
		return []orb.Polygon(g), nil
	case nil:
		return nil, fmt.Errorf("feature has no geometry")
	default:
		return nil, fmt.Errorf("unsupported geometry type %s", g.GeoJSONType())
	}
}

func stringProperty(p geojson.Properties, key string) string {
	s, _ := p[key].(string)
	return s
}

func shells(polys []orb.Polygon) []orb.Ring {
	out := make([]orb.Ring, 0, len(polys))
	for _, p := range polys {
		if len(p) > 0 {
			out = append(out, p[0])
		}
	}
	return out
}
