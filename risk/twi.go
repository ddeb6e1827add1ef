// Package risk computes the topographic wetness index and fuses it with
// ponding and external flood evidence into classified risk zones.
package risk

import (
	"math"

	"github.com/Samoppakiks/uit-drainage/flow"
	"github.com/Samoppakiks/uit-drainage/grid"
)

// MinTanSlope floor on tan(β) to keep TWI finite on flats
const MinTanSlope = 0.001

// TWI computes ln(a/tanβ) per valid cell, where a is the specific
// catchment area (upslope area per unit contour width, acc·cs) and β the
// local slope. Cells outside the flow domain stay no-data.
func TWI(slope *grid.Real, acc []int, ds []int) *grid.Real {
	gd := slope.GD
	o := grid.Null(gd)
	for i := range o.A {
		if ds[i] == flow.Nodata || slope.IsNodata(i) {
			continue
		}
		tb := math.Tan(slope.A[i])
		if tb < MinTanSlope {
			tb = MinTanSlope
		}
		a := float64(acc[i]) * gd.Cs
		o.A[i] = math.Log(a / tb)
	}
	return o
}
