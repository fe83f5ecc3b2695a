package geometry

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Path converts an orb ring into an open geom path.
func Path(r orb.Ring) geom.Path {
	pts := Open(r)
	path := make(geom.Path, len(pts))
	for i, p := range pts {
		path[i] = geom.Point{X: p[0], Y: p[1]}
	}
	return path
}

// Polygon converts an orb polygon into a geom polygon.
func Polygon(p orb.Polygon) geom.Polygon {
	poly := make(geom.Polygon, 0, len(p))
	for _, r := range p {
		poly = append(poly, Path(r))
	}
	return poly
}

// Area returns the total area of mp. Polygons are assumed not to overlap.
func Area(mp orb.MultiPolygon) float64 {
	var a float64
	for _, p := range mp {
		a += planar.Area(Orient(p))
	}
	return a
}

// Covers reports whether pt lies inside one of the polygons of mp or within
// tol of a boundary.
func Covers(mp orb.MultiPolygon, pt orb.Point, tol float64) bool {
	gp := geom.Point{X: pt[0], Y: pt[1]}
	for _, p := range mp {
		switch gp.Within(Polygon(p)) {
		case geom.Inside, geom.OnEdge:
			return true
		}
	}
	for _, p := range mp {
		for _, r := range p {
			if distanceToRing(Close(r), pt) <= tol {
				return true
			}
		}
	}
	return false
}

func distanceToRing(r orb.Ring, pt orb.Point) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(r); i++ {
		best = math.Min(best, planar.DistanceFromSegment(r[i], r[i+1], pt))
	}
	return best
}
