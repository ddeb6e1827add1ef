package stream

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Samoppakiks/uit-drainage/grid"
	"github.com/Samoppakiks/uit-drainage/vec"
)

// MinSegmentPixels components shorter than this are discarded as noise
const MinSegmentPixels = 3

var drow = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
var dcol = [8]int{1, 1, 0, -1, -1, -1, 0, 1}

// Vectorize turns each 8-connected component of same-order cells into a
// line feature. Points are ordered source→outlet by walking the
// flow-direction field from the component head with the longest
// in-component path; image coordinate order is never used.
func Vectorize(gd *grid.Definition, order, ds []int) []vec.StreamSegment {
	omax := 0
	for _, o := range order {
		if o > omax {
			omax = o
		}
	}

	var segs []vec.StreamSegment
	sid := 0
	for o := 1; o <= omax; o++ {
		for _, comp := range components(gd, order, o) {
			if len(comp) < MinSegmentPixels {
				continue
			}
			path := mainPath(comp, ds)
			if len(path) < 2 {
				continue
			}
			ls := make(orb.LineString, len(path))
			for k, i := range path {
				x, y := gd.CellCentroid(i)
				ls[k] = orb.Point{x, y}
			}
			segs = append(segs, vec.StreamSegment{
				ID:         sid,
				Order:      o,
				PixelCount: len(comp),
				LengthM:    planar.Length(ls),
				Geom:       ls,
			})
			sid++
		}
	}
	return segs
}

// components 8-connected same-order cell groups, deterministic order
func components(gd *grid.Definition, order []int, o int) [][]int {
	seen := make(map[int]bool)
	var comps [][]int
	for i, oi := range order {
		if oi != o || seen[i] {
			continue
		}
		comp, stack := []int{}, []int{i}
		seen[i] = true
		for len(stack) > 0 {
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, j)
			r, c := gd.RowCol(j)
			for k := 0; k < 8; k++ {
				m := gd.CellID(r+drow[k], c+dcol[k])
				if m >= 0 && order[m] == o && !seen[m] {
					seen[m] = true
					stack = append(stack, m)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// mainPath walks downstream from every head cell (no in-component
// contributor) and keeps the longest walk; ties resolve to the lowest
// head cell id.
func mainPath(comp, ds []int) []int {
	in := make(map[int]bool, len(comp))
	for _, i := range comp {
		in[i] = true
	}
	hasUp := make(map[int]bool, len(comp))
	for _, i := range comp {
		if d := ds[i]; d >= 0 && in[d] {
			hasUp[d] = true
		}
	}

	var best []int
	for _, h := range comp { // comp is sorted, so ties pick the lowest id
		if hasUp[h] {
			continue
		}
		path := []int{h}
		for i := h; ; {
			d := ds[i]
			if d < 0 || !in[d] {
				break
			}
			path = append(path, d)
			i = d
			if len(path) > len(comp) { // defect guard; cannot loop in an acyclic field
				break
			}
		}
		if len(path) > len(best) {
			best = path
		}
	}
	return best
}

// FilterMinOrder drops segments below the configured minimum order,
// passing all others through identity-preserved.
func FilterMinOrder(segs []vec.StreamSegment, minOrder int) []vec.StreamSegment {
	o := make([]vec.StreamSegment, 0, len(segs))
	for _, s := range segs {
		if s.Order >= minOrder {
			o = append(o, s)
		}
	}
	return o
}

// PourPoints derives one pour point per segment from its downstream
// endpoint.
func PourPoints(segs []vec.StreamSegment) []vec.PourPoint {
	pps := make([]vec.PourPoint, 0, len(segs))
	for _, s := range segs {
		if len(s.Geom) == 0 {
			continue
		}
		pps = append(pps, vec.PourPoint{
			SegmentID: s.ID,
			Order:     s.Order,
			Pt:        s.Geom[len(s.Geom)-1],
		})
	}
	return pps
}
