// Package watershed delineates contributing areas from pour points over
// an immutable flow-direction field. Each trace is a pure backward
// reachability walk, so pour points are processed in parallel without
// locking; one point's failure never aborts the batch.
package watershed

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Samoppakiks/uit-drainage/flow"
	"github.com/Samoppakiks/uit-drainage/grid"
	"github.com/Samoppakiks/uit-drainage/vec"
)

// MinCells traces smaller than this are dropped as noise
const MinCells = 100

// Delineate traces the contributing area of every pour point and
// vectorizes it. onDone, if non-nil, is called as each trace finishes
// (progress reporting). nskip counts pour points that produced no
// watershed: off-grid seeds, sub-minimum traces, degenerate polygons.
func Delineate(gd *grid.Definition, ds []int, pps []vec.PourPoint, minCells int, minAreaM2 float64, onDone func()) (wsheds []vec.Watershed, nskip int) {
	us := flow.Upslopes(ds)
	out := make([]*vec.Watershed, len(pps))

	var wg sync.WaitGroup
	wg.Add(len(pps))
	for k, pp := range pps {
		go func(k int, pp vec.PourPoint) {
			defer wg.Done()
			if onDone != nil {
				defer onDone()
			}
			out[k] = trace(gd, ds, us, pp, minCells, minAreaM2)
		}(k, pp)
	}
	wg.Wait()

	for _, w := range out {
		if w == nil {
			nskip++
			continue
		}
		w.ID = len(wsheds)
		wsheds = append(wsheds, *w)
	}
	return
}

// trace one pour point; nil when the candidate is discarded
func trace(gd *grid.Definition, ds []int, us [][]int, pp vec.PourPoint, minCells int, minAreaM2 float64) *vec.Watershed {
	seed := gd.PointToCell(pp.Pt[0], pp.Pt[1])
	if seed < 0 || ds[seed] == flow.Nodata {
		return nil
	}

	// iterative upslope climb; recursion would overflow on large basins
	mask := make([]bool, gd.Ncells())
	stack := []int{seed}
	mask[seed] = true
	n := 0
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for _, u := range us[i] {
			if !mask[u] {
				mask[u] = true
				stack = append(stack, u)
			}
		}
	}
	if n < minCells {
		return nil
	}

	polys := vec.Polygonize(gd, mask)
	if len(polys) == 0 {
		return nil
	}
	// diagonal-only links split the mask; keep the dominant polygon
	best, amax := orb.Polygon(nil), 0.
	for _, p := range polys {
		if a := math.Abs(planar.Area(p)); a > amax {
			best, amax = p, a
		}
	}
	if best == nil || amax < minAreaM2 {
		return nil
	}
	return &vec.Watershed{
		SegmentID: pp.SegmentID,
		Order:     pp.Order,
		NCells:    n,
		AreaM2:    amax,
		Geom:      best,
	}
}
