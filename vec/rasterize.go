package vec

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// Rasterize burns polygons onto the grid by cell-centre membership,
// returning a 0/1 field. Cells covered by any polygon read 1.
func Rasterize(gd *grid.Definition, polys []orb.Polygon) []float64 {
	o := make([]float64, gd.Ncells())
	for _, p := range polys {
		if len(p) == 0 {
			continue
		}
		b := p.Bound()
		c0 := clamp(int((b.Min[0]-gd.Xul)/gd.Cs), 0, gd.Nc-1)
		c1 := clamp(int((b.Max[0]-gd.Xul)/gd.Cs), 0, gd.Nc-1)
		r0 := clamp(int((gd.Yul-b.Max[1])/gd.Cs), 0, gd.Nr-1)
		r1 := clamp(int((gd.Yul-b.Min[1])/gd.Cs), 0, gd.Nr-1)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				i := gd.CellID(r, c)
				if o[i] == 1 {
					continue
				}
				x, y := gd.CellCentroid(i)
				if planar.PolygonContains(p, orb.Point{x, y}) {
					o[i] = 1
				}
			}
		}
	}
	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
