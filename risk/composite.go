package risk

import (
	"gonum.org/v1/gonum/floats"

	"github.com/Samoppakiks/uit-drainage/grid"
)

// Weights of the composite blend: wetness, ponding, external flood
// evidence. They sum to 1 and are echoed in the stage report.
var Weights = [3]float64{.4, .3, .3}

// Normalize rescales valid cells to [0,1] by min-max over valid cells.
// A zero-dynamic-range field normalizes to all zeros, never NaN.
func Normalize(g *grid.Real) *grid.Real {
	o := grid.Null(g.GD)
	v := g.Valid()
	if len(v) == 0 {
		return o
	}
	lo, hi := floats.Min(v), floats.Max(v)
	for i := range g.A {
		if g.IsNodata(i) {
			continue
		}
		if hi == lo {
			o.A[i] = 0
			continue
		}
		o.A[i] = (g.A[i] - lo) / (hi - lo)
	}
	return o
}

// Composite blends the three normalized evidence fields. A no-data cell
// in any contributor propagates as no-data, never as zero risk.
func Composite(wet, pond, evid *grid.Real) *grid.Real {
	o := grid.Null(wet.GD)
	for i := range o.A {
		if wet.IsNodata(i) || pond.IsNodata(i) || evid.IsNodata(i) {
			continue
		}
		o.A[i] = Weights[0]*wet.A[i] + Weights[1]*pond.A[i] + Weights[2]*evid.A[i]
	}
	return o
}
