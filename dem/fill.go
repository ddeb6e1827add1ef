// Package dem conditions raw elevation rasters for flow routing.
//
// Depression handling policy: FILL. Depressions are raised to the level
// of their lowest boundary-reachable pour point by a priority-flood
// sweep, with a small epsilon gradient added so that filled flats still
// drain toward the pour point. Breaching is not implemented; the whole
// grid is conditioned under the one policy.
package dem

import (
	"container/heap"
	"math"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// Eps is the gradient imposed across filled cells (m per cell step). It
// is large enough to survive float64 rounding over any plausible flow
// path yet orders of magnitude below real relief at 30 m resolution.
const Eps = 1e-4

var drow = [8]int{0, 1, 1, 1, 0, -1, -1, -1} // E SE S SW W NW N NE
var dcol = [8]int{1, 1, 0, -1, -1, -1, 0, 1}

type zcell struct {
	z float64
	i int
}

// min-heap of (elevation, index); index breaks ties for determinism
type zheap []zcell

func (h zheap) Len() int { return len(h) }
func (h zheap) Less(a, b int) bool {
	if h[a].z != h[b].z {
		return h[a].z < h[b].z
	}
	return h[a].i < h[b].i
}
func (h zheap) Swap(a, b int)      { h[a], h[b] = h[b], h[a] }
func (h *zheap) Push(x interface{}) { *h = append(*h, x.(zcell)) }
func (h *zheap) Pop() interface{} {
	o := *h
	n := len(o)
	x := o[n-1]
	*h = o[:n-1]
	return x
}

// FillDepressions returns a conditioned copy of the elevation raster in
// which every valid cell has a non-ascending path to the grid boundary
// (or to a no-data margin, which is treated as an outlet). No-data cells
// are left untouched. The second return is the number of raised cells.
func FillDepressions(g *grid.Real) (*grid.Real, int) {
	gd := g.GD
	o := g.Clone()
	seen := make([]bool, gd.Ncells())

	// seed: valid cells on the grid edge or bordering no-data
	h := &zheap{}
	for i := range o.A {
		if o.IsNodata(i) {
			seen[i] = true
			continue
		}
		r, c := gd.RowCol(i)
		edge := r == 0 || c == 0 || r == gd.Nr-1 || c == gd.Nc-1
		if !edge {
			for k := 0; k < 8; k++ {
				j := gd.CellID(r+drow[k], c+dcol[k])
				if g.IsNodata(j) {
					edge = true
					break
				}
			}
		}
		if edge {
			heap.Push(h, zcell{o.A[i], i})
			seen[i] = true
		}
	}

	nfill := 0
	for h.Len() > 0 {
		cc := heap.Pop(h).(zcell)
		r, c := gd.RowCol(cc.i)
		for k := 0; k < 8; k++ {
			j := gd.CellID(r+drow[k], c+dcol[k])
			if j < 0 || seen[j] {
				continue
			}
			seen[j] = true
			if o.A[j] <= cc.z {
				o.A[j] = cc.z + Eps
				nfill++
			}
			heap.Push(h, zcell{o.A[j], j})
		}
	}
	return o, nfill
}

// FillPits raises any valid cell sitting strictly below all of its valid
// neighbours to the lowest neighbouring elevation. Spurious single-cell
// pits survive DEM resampling even on otherwise clean surfaces.
func FillPits(g *grid.Real) (*grid.Real, int) {
	gd := g.GD
	o := g.Clone()
	npit := 0
	for i := range o.A {
		if o.IsNodata(i) {
			continue
		}
		r, c := gd.RowCol(i)
		zmin, nn := math.MaxFloat64, 0
		for k := 0; k < 8; k++ {
			j := gd.CellID(r+drow[k], c+dcol[k])
			if j < 0 || o.IsNodata(j) {
				continue
			}
			nn++
			if o.A[j] < zmin {
				zmin = o.A[j]
			}
		}
		if nn > 0 && o.A[i] < zmin {
			o.A[i] = zmin
			npit++
		}
	}
	return o, npit
}
