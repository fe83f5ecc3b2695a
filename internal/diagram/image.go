package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// regionColors are cycled over the tributary regions
var regionColors = []color.RGBA{
	{R: 100, G: 149, B: 237, A: 120},
	{R: 255, G: 165, B: 0, A: 120},
	{R: 60, G: 179, B: 113, A: 120},
	{R: 238, G: 130, B: 238, A: 120},
	{R: 240, G: 230, B: 140, A: 120},
	{R: 255, G: 99, B: 71, A: 120},
	{R: 72, G: 209, B: 204, A: 120},
	{R: 188, G: 143, B: 143, A: 120},
}

// ExportLoadMap exports a plan of the slab showing each tributary region
// and the combined load of its support
func ExportLoadMap(data LoadMapData, filename string) error {
	if len(data.Slab) < 3 {
		return fmt.Errorf("load map needs a slab outline")
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Tributary Areas"
	}
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"

	// Tributary regions
	for i, s := range data.Supports {
		for _, poly := range s.Region {
			rings := make([]plotter.XYer, 0, len(poly))
			for _, r := range poly {
				rings = append(rings, ringXYs(r))
			}
			region, err := plotter.NewPolygon(rings...)
			if err != nil {
				return err
			}
			region.Color = regionColors[i%len(regionColors)]
			// pieces of one region share edges, so only the fill is drawn
			region.LineStyle.Color = color.Transparent
			p.Add(region)
		}
	}

	// Slab edge and openings
	outlines := append([]orb.Ring{data.Slab}, data.Openings...)
	for _, r := range outlines {
		edge, err := plotter.NewLine(ringXYs(r))
		if err != nil {
			return err
		}
		edge.LineStyle.Width = vg.Points(2)
		edge.LineStyle.Color = color.Black
		p.Add(edge)
	}

	// Supports
	for _, s := range data.Supports {
		support, err := plotter.NewPolygon(ringXYs(s.Outline))
		if err != nil {
			return err
		}
		support.Color = color.RGBA{R: 64, G: 64, B: 64, A: 255}
		support.LineStyle.Color = color.Black
		p.Add(support)
	}

	// Labels at support centroids
	if len(data.Supports) > 0 {
		xys := make(plotter.XYs, len(data.Supports))
		texts := make([]string, len(data.Supports))
		for i, s := range data.Supports {
			xys[i] = plotter.XY{X: s.LabelAt[0], Y: s.LabelAt[1]}
			texts[i] = supportLabel(s, data.Unit)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return err
		}
		p.Add(labels)

		marks, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		marks.GlyphStyle.Color = color.RGBA{R: 139, G: 0, B: 0, A: 255}
		marks.GlyphStyle.Radius = vg.Points(2)
		marks.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(marks)
	}

	// Keep the plan to scale
	b := data.Slab.Bound()
	pad := 0.05 * math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	p.X.Min, p.X.Max = b.Min[0]-pad, b.Max[0]+pad
	p.Y.Min, p.Y.Max = b.Min[1]-pad, b.Max[1]+pad

	width := 8 * vg.Inch
	height := width * vg.Length((p.Y.Max-p.Y.Min)/(p.X.Max-p.X.Min))
	height = vg.Length(math.Min(math.Max(float64(height), float64(3*vg.Inch)), float64(12*vg.Inch)))

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func supportLabel(s SupportShape, unit string) string {
	if unit == "" {
		unit = "kN"
	}
	return fmt.Sprintf("%s\n%.1f %s", s.Label, s.Value, unit)
}

func ringXYs(r orb.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(r))
	for i, pt := range r {
		xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		xys = append(xys, plotter.XY{X: r[0][0], Y: r[0][1]})
	}
	return xys
}
