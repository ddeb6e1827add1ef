package vec

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// corner identifies a cell-corner lattice point (0..Nr, 0..Nc)
type corner struct{ r, c int }

// Polygonize converts a cell mask into polygons, one per 4-connected
// component of true cells. Ring vertices run along cell edges; the outer
// ring is the ring of greatest area, remaining rings become holes.
func Polygonize(gd *grid.Definition, mask []bool) []orb.Polygon {
	comp := make([]int, gd.Ncells())
	for i := range comp {
		comp[i] = -1
	}
	ncomp := 0
	for i := range mask {
		if !mask[i] || comp[i] >= 0 {
			continue
		}
		// flood one 4-connected component
		stack := []int{i}
		comp[i] = ncomp
		for len(stack) > 0 {
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r, c := gd.RowCol(j)
			for _, k := range [4]int{gd.CellID(r-1, c), gd.CellID(r+1, c), gd.CellID(r, c-1), gd.CellID(r, c+1)} {
				if k >= 0 && mask[k] && comp[k] < 0 {
					comp[k] = ncomp
					stack = append(stack, k)
				}
			}
		}
		ncomp++
	}

	polys := make([]orb.Polygon, 0, ncomp)
	for ic := 0; ic < ncomp; ic++ {
		if p, ok := traceComponent(gd, mask, comp, ic); ok {
			polys = append(polys, p)
		}
	}
	return polys
}

// traceComponent chains the directed boundary edges of one component into rings,
// interior kept on the left so outer rings wind counter-clockwise
func traceComponent(gd *grid.Definition, mask []bool, comp []int, ic int) (orb.Polygon, bool) {
	inside := func(r, c int) bool {
		j := gd.CellID(r, c)
		return j >= 0 && mask[j] && comp[j] == ic
	}

	// start-corner → directed edge ends
	edges := map[corner][]corner{}
	addEdge := func(a, b corner) { edges[a] = append(edges[a], b) }
	for i := range mask {
		if comp[i] != ic {
			continue
		}
		r, c := gd.RowCol(i)
		if !inside(r-1, c) { // north side: east→west
			addEdge(corner{r, c + 1}, corner{r, c})
		}
		if !inside(r+1, c) { // south side: west→east
			addEdge(corner{r + 1, c}, corner{r + 1, c + 1})
		}
		if !inside(r, c-1) { // west side: north→south
			addEdge(corner{r, c}, corner{r + 1, c})
		}
		if !inside(r, c+1) { // east side: south→north
			addEdge(corner{r + 1, c + 1}, corner{r, c + 1})
		}
	}

	var rings []orb.Ring
	for len(edges) > 0 {
		// deterministic ring starts
		var start corner
		first := true
		for a := range edges {
			if first || a.r < start.r || (a.r == start.r && a.c < start.c) {
				start = a
				first = false
			}
		}
		ring := orb.Ring{cornerPoint(gd, start)}
		cur := start
		for {
			nexts, ok := edges[cur]
			if !ok || len(nexts) == 0 {
				return nil, false // broken chain; skip the feature, not the batch
			}
			nxt := nexts[0]
			if len(nexts) == 1 {
				delete(edges, cur)
			} else {
				edges[cur] = nexts[1:]
			}
			ring = append(ring, cornerPoint(gd, nxt))
			cur = nxt
			if cur == start {
				break
			}
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return nil, false
	}

	// outer ring first, by descending enclosed area
	sort.Slice(rings, func(a, b int) bool {
		return math.Abs(planar.Area(rings[a])) > math.Abs(planar.Area(rings[b]))
	})
	return orb.Polygon(rings), true
}

func cornerPoint(gd *grid.Definition, cn corner) orb.Point {
	x, y := gd.CellCorner(cn.r, cn.c)
	return orb.Point{x, y}
}
