package dem

import (
	"math"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// Slope computes the surface slope (radians) as the magnitude of the
// elevation gradient, central differences on the interior and one-sided
// at edges and against no-data margins. No-data cells stay no-data.
func Slope(g *grid.Real) *grid.Real {
	gd := g.GD
	o := grid.Null(gd)
	for i := range g.A {
		if g.IsNodata(i) {
			continue
		}
		r, c := gd.RowCol(i)
		dzdx := diff(g, i, gd.CellID(r, c-1), gd.CellID(r, c+1))
		dzdy := diff(g, i, gd.CellID(r-1, c), gd.CellID(r+1, c))
		o.A[i] = math.Atan(math.Hypot(dzdx, dzdy))
	}
	return o
}

// diff gradient along one axis; falls back to one-sided differences when
// a neighbour is missing or no-data, zero when both are
func diff(g *grid.Real, i, jm, jp int) float64 {
	cs := g.GD.Cs
	okm := jm >= 0 && !g.IsNodata(jm)
	okp := jp >= 0 && !g.IsNodata(jp)
	switch {
	case okm && okp:
		return (g.A[jp] - g.A[jm]) / (2 * cs)
	case okp:
		return (g.A[jp] - g.A[i]) / cs
	case okm:
		return (g.A[i] - g.A[jm]) / cs
	default:
		return 0.
	}
}
