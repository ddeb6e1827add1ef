package risk

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/paulmach/orb/planar"

	"github.com/Samoppakiks/uit-drainage/grid"
	"github.com/Samoppakiks/uit-drainage/vec"
)

// Risk classes. ClassNodata is excluded from vectorization.
const (
	ClassNodata = -1
	ClassLow    = 0
	ClassMedium = 1
	ClassHigh   = 2
)

// Percentile cut points over valid composite cells. Percentiles, not
// absolute values: the composite's scale depends on input normalization.
const (
	CutMedium = 0.70
	CutHigh   = 0.85
)

// MinZoneAreaM2 risk polygons under 0.1 ha are dropped as fragments
const MinZoneAreaM2 = 1000.

// Classify partitions the composite score into low/medium/high. Every
// valid cell maps to exactly one class; no-data maps to ClassNodata.
// Returns the class field and the two cut values used.
func Classify(comp *grid.Real) ([]int, float64, float64) {
	cls := make([]int, comp.GD.Ncells())
	v := comp.Valid()
	if len(v) == 0 {
		for i := range cls {
			cls[i] = ClassNodata
		}
		return cls, math.NaN(), math.NaN()
	}
	sort.Float64s(v)
	cmed := stat.Quantile(CutMedium, stat.Empirical, v, nil)
	chigh := stat.Quantile(CutHigh, stat.Empirical, v, nil)

	for i := range cls {
		switch {
		case comp.IsNodata(i):
			cls[i] = ClassNodata
		case comp.A[i] >= chigh:
			cls[i] = ClassHigh
		case comp.A[i] >= cmed:
			cls[i] = ClassMedium
		default:
			cls[i] = ClassLow
		}
	}
	return cls, cmed, chigh
}

// VectorizeZones converts the medium and high tiers to polygons (low is
// intentionally excluded to bound output size), dropping fragments under
// MinZoneAreaM2.
func VectorizeZones(gd *grid.Definition, cls []int) []vec.RiskZone {
	var zones []vec.RiskZone
	for _, level := range [2]int{ClassHigh, ClassMedium} {
		mask := make([]bool, len(cls))
		n := 0
		for i, c := range cls {
			if c == level {
				mask[i] = true
				n++
			}
		}
		if n == 0 {
			continue
		}
		for _, p := range vec.Polygonize(gd, mask) {
			a := math.Abs(planar.Area(p))
			if a < MinZoneAreaM2 {
				continue
			}
			zones = append(zones, vec.RiskZone{
				ID:     len(zones),
				Level:  level,
				Label:  vec.RiskLabel(level),
				AreaM2: a,
				Geom:   p,
			})
		}
	}
	return zones
}
