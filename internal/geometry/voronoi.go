package geometry

import (
	"fmt"
	"sort"

	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
)

// VoronoiCells returns the Voronoi cell of every seed, clipped to box.
//
// cells[i] is nil when seed i coincides with an earlier seed or was left out
// of the triangulation. Each cell is the intersection of the half-planes
// bounded by the perpendicular bisectors between the seed and its Delaunay
// neighbours. Vertices are snapped to SnapGrid so that neighbouring cells
// agree on the vertices they share.
func VoronoiCells(seeds []orb.Point, box orb.Bound) ([]orb.Ring, error) {
	cells := make([]orb.Ring, len(seeds))
	keep := uniqueSeeds(seeds)
	if len(keep) == 0 {
		return cells, nil
	}

	pts := make([]orb.Point, len(keep))
	for k, i := range keep {
		pts[k] = seeds[i]
	}

	neighbours, err := delaunayNeighbours(pts)
	if err != nil {
		return nil, err
	}

	for k, i := range keep {
		if len(keep) > 1 && len(neighbours[k]) == 0 {
			continue
		}
		cell := Open(box.ToRing())
		for _, j := range neighbours[k] {
			cell = clipHalfPlane(cell, pts[k], pts[j])
			if len(cell) < 3 {
				break
			}
		}
		if len(cell) >= 3 {
			cells[i] = Snap(cell)
		}
	}
	return cells, nil
}

// uniqueSeeds returns the index of the first occurrence of every distinct seed.
func uniqueSeeds(seeds []orb.Point) []int {
	order := make([]int, len(seeds))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := seeds[order[a]], seeds[order[b]]
		if pa[0] != pb[0] {
			return pa[0] < pb[0]
		}
		return pa[1] < pb[1]
	})

	dup := make([]bool, len(seeds))
	for k := 1; k < len(order); k++ {
		if seeds[order[k]] == seeds[order[k-1]] {
			dup[order[k]] = true
		}
	}

	keep := make([]int, 0, len(seeds))
	for i := range seeds {
		if !dup[i] {
			keep = append(keep, i)
		}
	}
	return keep
}

func delaunayNeighbours(pts []orb.Point) ([][]int, error) {
	neighbours := make([][]int, len(pts))
	if len(pts) < 3 {
		for i := range pts {
			for j := range pts {
				if i != j {
					neighbours[i] = append(neighbours[i], j)
				}
			}
		}
		return neighbours, nil
	}

	input := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		input[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(input)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d seeds: %w", len(pts), err)
	}

	seen := make([]map[int]bool, len(pts))
	link := func(a, b int) {
		if seen[a] == nil {
			seen[a] = make(map[int]bool)
		}
		if !seen[a][b] {
			seen[a][b] = true
			neighbours[a] = append(neighbours[a], b)
		}
	}
	for t := 0; t+2 < len(tri.Triangles); t += 3 {
		a, b, c := tri.Triangles[t], tri.Triangles[t+1], tri.Triangles[t+2]
		link(a, b)
		link(b, a)
		link(b, c)
		link(c, b)
		link(c, a)
		link(a, c)
	}
	return neighbours, nil
}

// clipHalfPlane keeps the part of the convex polygon poly that is at least
// as close to site as to other.
func clipHalfPlane(poly orb.Ring, site, other orb.Point) orb.Ring {
	nx, ny := other[0]-site[0], other[1]-site[1]
	c := (nx*(other[0]+site[0]) + ny*(other[1]+site[1])) / 2
	side := func(p orb.Point) float64 { return nx*p[0] + ny*p[1] - c }

	out := make(orb.Ring, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		dc, dp := side(cur), side(prev)
		switch {
		case dc <= 0:
			if dp > 0 && dc < 0 {
				out = append(out, lerp(prev, cur, dp/(dp-dc)))
			}
			out = append(out, cur)
		case dp < 0:
			out = append(out, lerp(prev, cur, dp/(dp-dc)))
		}
	}
	return out
}
