package flow

import (
	"fmt"
)

// Accumulate sums one unit of flow per valid cell down the direction
// graph in strict topological order. It returns the topologically safe
// ordering of cell ids (every contributor ahead of its downslope target)
// and the per-cell upslope count (contributors plus the cell itself).
// A cycle in the direction graph means the conditioning stage failed and
// is returned as an error; it must abort the run.
func Accumulate(ds []int) (cids []int, acc []int, err error) {
	n := len(ds)
	acc = make([]int, n)
	nin := make([]int, n)
	nvalid := 0
	for i, d := range ds {
		if d == Nodata {
			continue
		}
		nvalid++
		acc[i] = 1
		if d >= 0 {
			nin[d]++
		}
	}

	cids = make([]int, 0, nvalid)
	queue := make([]int, 0, nvalid)
	for i, d := range ds {
		if d != Nodata && nin[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		cids = append(cids, i)
		if d := ds[i]; d >= 0 {
			acc[d] += acc[i]
			nin[d]--
			if nin[d] == 0 {
				queue = append(queue, d)
			}
		}
	}
	if len(cids) != nvalid {
		return nil, nil, fmt.Errorf("flow.Accumulate: direction field contains a cycle (%d of %d cells ordered); conditioned DEM is defective", len(cids), nvalid)
	}
	return cids, acc, nil
}

// MaxAcc locates the maximum accumulation; returns (-1, 0) on an empty field.
func MaxAcc(acc []int, ds []int) (imax, amax int) {
	imax = -1
	for i, a := range acc {
		if ds[i] == Nodata {
			continue
		}
		if a > amax {
			amax, imax = a, i
		}
	}
	return
}

// OutletSum totals accumulation over all outlet cells. Mass conservation
// requires this to equal the valid cell count.
func OutletSum(acc []int, ds []int) int {
	s := 0
	for i, d := range ds {
		if d == Outlet {
			s += acc[i]
		}
	}
	return s
}

// Upslopes inverts the downslope array into per-cell contributor lists.
func Upslopes(ds []int) [][]int {
	us := make([][]int, len(ds))
	for i, d := range ds {
		if d >= 0 {
			us[d] = append(us[d], i)
		}
	}
	return us
}

// CatchmentAreaKm2 converts a cell count to km² given the cell width in metres.
func CatchmentAreaKm2(ncells int, cs float64) float64 {
	return float64(ncells) * cs * cs / 1e6
}
