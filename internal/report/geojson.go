package report

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/tributary"
)

// FeatureCollection returns one feature per support whose geometry is the
// tributary region. Properties hold the label, kind, area, occupancy
// fractions, loads per case and the combined load.
func FeatureCollection(areas []*tributary.ColumnArea, table tributary.LoadTable, factors []float64, scale float64) (*geojson.FeatureCollection, error) {
	cases := table.CaseNames()
	fc := geojson.NewFeatureCollection()

	for _, a := range areas {
		combined, err := a.CombinedLoad(factors, scale)
		if err != nil {
			return nil, err
		}

		var g orb.Geometry = a.Region
		if len(a.Region) == 1 {
			g = a.Region[0]
		}

		loads := make(map[string]any, len(a.Loads))
		for i, v := range a.Loads {
			name := fmt.Sprintf("case%d", i+1)
			if i < len(cases) {
				name = cases[i]
			}
			loads[name] = v
		}
		occupancies := make(map[string]any, len(a.Occupancies))
		for k, v := range a.Occupancies {
			occupancies[k] = v
		}

		f := geojson.NewFeature(g)
		f.Properties["support"] = a.Support.Label
		f.Properties["kind"] = a.Support.Kind.String()
		f.Properties["area_m2"] = a.AreaM2()
		f.Properties["occupancies"] = occupancies
		f.Properties["loads"] = loads
		f.Properties["combined"] = combined
		fc.Append(f)
	}
	return fc, nil
}

// LoadMap prepares the load map of a partitioned floor. Each support is
// labelled with its combined load.
func LoadMap(floor *tributary.FloorDefinition, areas []*tributary.ColumnArea, factors []float64, scale float64) (diagram.LoadMapData, error) {
	data := diagram.LoadMapData{
		Title:    floor.Name,
		Slab:     floor.SlabOutline,
		Openings: floor.SlabOpenings,
	}
	for _, a := range areas {
		combined, err := a.CombinedLoad(factors, scale)
		if err != nil {
			return diagram.LoadMapData{}, err
		}
		data.Supports = append(data.Supports, diagram.SupportShape{
			Label:   a.Support.Label,
			Outline: a.Support.Outline,
			Region:  a.Region,
			LabelAt: a.Centroid(),
			Value:   combined,
		})
	}
	return data, nil
}
