// Package geometry adapts the planar geometry libraries used by gorcc.
//
// Outlines are carried as orb rings in millimetres. Voronoi cells are
// derived from a Delaunay triangulation computed by github.com/fogleman/delaunay
// and, being convex, are intersected with the slab by convex clipping.
// Point location uses github.com/ctessum/geom.
package geometry

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Validation errors returned by Validate.
var (
	ErrTooFewVertices   = errors.New("outline needs at least 3 distinct vertices")
	ErrZeroArea         = errors.New("outline encloses no area")
	ErrSelfIntersecting = errors.New("outline is self-intersecting")
	ErrNonFinite        = errors.New("outline has a non-finite coordinate")
)

// Open returns r without its closing vertex.
func Open(r orb.Ring) orb.Ring {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// Close returns a copy of r that ends on its first vertex.
func Close(r orb.Ring) orb.Ring {
	open := Open(r)
	closed := make(orb.Ring, 0, len(open)+1)
	closed = append(closed, open...)
	if len(open) > 0 {
		closed = append(closed, open[0])
	}
	return closed
}

// Validate checks that r describes a simple polygon with a non-zero area.
func Validate(r orb.Ring) error {
	pts := distinct(Open(r))
	for _, p := range pts {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return ErrNonFinite
		}
	}
	if len(pts) < 3 {
		return ErrTooFewVertices
	}

	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// adjacent edges share a vertex
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsIntersect(a1, a2, pts[j], pts[(j+1)%n]) {
				return ErrSelfIntersecting
			}
		}
	}
	if planar.Area(Close(pts)) == 0 {
		return ErrZeroArea
	}
	return nil
}

// Densify inserts vertices along every edge of r so that no edge is longer
// than maxLen. The original vertices are kept. The result is open.
func Densify(r orb.Ring, maxLen float64) orb.Ring {
	pts := Open(r)
	if maxLen <= 0 || len(pts) < 2 {
		return append(orb.Ring(nil), pts...)
	}

	out := make(orb.Ring, 0, len(pts))
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		out = append(out, a)

		n := int(math.Ceil(planar.Distance(a, b) / maxLen))
		for k := 1; k < n; k++ {
			out = append(out, lerp(a, b, float64(k)/float64(n)))
		}
	}
	return out
}

// Centroid returns the area centroid of r.
func Centroid(r orb.Ring) orb.Point {
	c, _ := planar.CentroidArea(orb.Polygon{Close(r)})
	return c
}

// distinct drops consecutive repeated vertices.
func distinct(pts orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func lerp(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}
