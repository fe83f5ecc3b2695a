package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// SnapGrid is the spacing (mm) of the grid that computed vertices are
// rounded to.
const SnapGrid = 1e-6

// SnapTolerance is the smallest distance at which two points are told
// apart once snapped.
const SnapTolerance = 8 * SnapGrid

// Tolerance returns the distance below which two points of a drawing whose
// bounding box has diagonal diag are treated as coincident.
func Tolerance(diag float64) float64 {
	return math.Max(1e-9*diag, SnapTolerance)
}

// Snap rounds every vertex of r to SnapGrid and drops the repeats this
// creates. The result is closed, or nil when fewer than 3 vertices remain.
func Snap(r orb.Ring) orb.Ring {
	pts := make(orb.Ring, 0, len(r))
	for _, p := range Open(r) {
		pts = append(pts, orb.Point{snap(p[0]), snap(p[1])})
	}
	pts = distinct(pts)
	if len(pts) < 3 {
		return nil
	}
	return Close(pts)
}

func snap(v float64) float64 {
	return math.Round(v/SnapGrid) / (1 / SnapGrid)
}

// ClipConvex returns the part of r that lies inside the convex ring c.
// r keeps its orientation, so the signed area of the result is the signed
// area of r inside c. Where r is concave the result may run back and forth
// along the boundary of c. The result is closed, or nil when nothing of r
// is left.
func ClipConvex(r, c orb.Ring) orb.Ring {
	clip := Open(c)
	if len(clip) < 3 {
		return nil
	}
	if planar.Area(Close(clip)) < 0 {
		clip = reversed(clip)
	}

	out := append(orb.Ring(nil), Open(r)...)
	for i, a := range clip {
		if len(out) == 0 {
			return nil
		}
		b := clip[(i+1)%len(clip)]
		out = clipLeft(out, a, b)
	}
	out = distinct(out)
	if len(out) < 3 {
		return nil
	}
	return Close(out)
}

// clipLeft keeps the part of the open ring poly on the left of the
// directed line a→b.
func clipLeft(poly orb.Ring, a, b orb.Point) orb.Ring {
	out := make(orb.Ring, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	dp := cross(a, b, prev)
	for _, cur := range poly {
		dc := cross(a, b, cur)
		if (dc >= 0) != (dp >= 0) {
			out = append(out, lerp(prev, cur, dp/(dp-dc)))
		}
		if dc >= 0 {
			out = append(out, cur)
		}
		prev, dp = cur, dc
	}
	return out
}

// ClipPolygon clips the shell and holes of p to the convex ring c. The shell
// of the result is counter-clockwise and its holes clockwise. Holes that
// miss c are dropped. It returns nil when no area of p lies inside c.
func ClipPolygon(p orb.Polygon, c orb.Ring) orb.Polygon {
	p = Orient(p)
	if len(p) == 0 {
		return nil
	}
	shell := ClipConvex(p[0], c)
	if shell == nil {
		return nil
	}
	gross := planar.Area(shell)
	if gross <= 0 {
		return nil
	}

	out := orb.Polygon{shell}
	for _, h := range p[1:] {
		if hole := ClipConvex(h, c); hole != nil && planar.Area(hole) < 0 {
			out = append(out, hole)
		}
	}
	// pieces left by rounding where a hole covers the whole cell
	if planar.Area(out) <= gross*1e-9 {
		return nil
	}
	return out
}

// OverlapArea returns the area that the polygon p shares with the simple
// ring r.
//
// r is split into a fan of triangles from its first vertex. Each triangle
// is convex, so the part of p inside it follows from ClipConvex, and the
// signed triangle areas add up to the area of p inside r.
func OverlapArea(p orb.Polygon, r orb.Ring) float64 {
	pts := Open(r)
	p = Orient(p)
	if len(p) == 0 || len(pts) < 3 {
		return 0
	}

	o := pts[0]
	var total float64
	for i := 1; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		s := cross(o, a, b)
		if s == 0 {
			continue
		}
		tri := orb.Ring{o, a, b, o}
		var inside float64
		for _, ring := range p {
			if part := ClipConvex(ring, tri); part != nil {
				inside += planar.Area(part)
			}
		}
		if s > 0 {
			total += inside
		} else {
			total -= inside
		}
	}
	if planar.Area(Close(pts)) < 0 {
		total = -total
	}
	return math.Max(total, 0)
}

// Orient returns a copy of p with a counter-clockwise shell and clockwise
// holes. Open rings are closed.
func Orient(p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(p))
	for i, r := range p {
		if len(Open(r)) < 3 {
			if i == 0 {
				return nil
			}
			continue
		}
		ring := Close(r)
		area := planar.Area(ring)
		if (i == 0 && area < 0) || (i > 0 && area > 0) {
			ring.Reverse()
		}
		out = append(out, ring)
	}
	return out
}

func reversed(r orb.Ring) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}
