package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Samoppakiks/uit-drainage/grid"
)

const (
	// ElevDecile low-lying cells sit at or below this elevation percentile
	ElevDecile = 0.10
	// FlatSlopeDeg near-flat threshold (degrees)
	FlatSlopeDeg = 1.0
)

// Ponding flags cells prone to standing water: elevation within the
// lowest decile of valid cells AND slope under the near-flat threshold.
// Returns the 0/1 indicator (no-data preserved) and the elevation cut.
func Ponding(z, slope *grid.Real) (*grid.Real, float64) {
	zv := z.Valid()
	o := grid.Null(z.GD)
	if len(zv) == 0 {
		return o, math.NaN()
	}
	sort.Float64s(zv)
	zcut := stat.Quantile(ElevDecile, stat.Empirical, zv, nil)
	flat := FlatSlopeDeg * math.Pi / 180.

	for i := range o.A {
		if z.IsNodata(i) || slope.IsNodata(i) {
			continue
		}
		if z.A[i] <= zcut && slope.A[i] < flat {
			o.A[i] = 1
		} else {
			o.A[i] = 0
		}
	}
	return o, zcut
}
