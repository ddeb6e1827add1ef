// Package flow derives D8 flow-direction and flow-accumulation fields
// from a conditioned elevation raster.
package flow

import (
	"math"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// Downslope sentinels. Outlet marks a valid cell whose flow leaves the
// grid (or enters a no-data margin); Nodata marks cells carrying no flow.
const (
	Outlet = -1
	Nodata = -2
)

// Neighbour scan order is clockwise from east: E SE S SW W NW N NE.
// Ties in descent slope resolve to the first neighbour scanned, making
// direction assignment deterministic and reproducible.
var (
	drow = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dcol = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	dist = [8]float64{1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}
)

// Code returns the D8 direction code for scan position k (E=1, SE=2,
// S=4, SW=8, W=16, NW=32, N=64, NE=128; 0 = outlet/undefined).
func Code(k int) uint8 { return 1 << uint(k) }

// D8 assigns each valid cell the neighbour of steepest descent. It
// returns the downslope cell index per cell (Outlet/Nodata sentinels)
// and the matching D8 code raster (0 where undefined).
func D8(g *grid.Real) (ds []int, code []uint8) {
	gd := g.GD
	n := gd.Ncells()
	ds, code = make([]int, n), make([]uint8, n)
	for i := 0; i < n; i++ {
		if g.IsNodata(i) {
			ds[i] = Nodata
			continue
		}
		r, c := gd.RowCol(i)
		ds[i] = Outlet
		smax := 0.
		for k := 0; k < 8; k++ {
			j := gd.CellID(r+drow[k], c+dcol[k])
			if j < 0 || g.IsNodata(j) {
				continue
			}
			s := (g.A[i] - g.A[j]) / (dist[k] * gd.Cs)
			if s > smax {
				smax = s
				ds[i] = j
				code[i] = Code(k)
			}
		}
	}
	return
}
