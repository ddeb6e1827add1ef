// Package stream extracts and classifies the stream network from the
// flow-accumulation and flow-direction fields.
//
// Two order policies are available and a run uses exactly one:
//   - OrderByAccumulation: tier thresholds proportional to the observed
//     maximum accumulation. An approximation of Strahler order only: the
//     tiers guarantee that order k+1 cells are a strict subset of the
//     order-k threshold, not true junction semantics.
//   - OrderStrahler: true Strahler order by bottom-up merge counting.
package stream

import (
	"github.com/Samoppakiks/uit-drainage/flow"
)

// Tier fractions of maximum accumulation, with absolute floors, for
// orders 1-4. These materially change output order counts; they are
// echoed by the classifier stage report.
var (
	tierFrac  = [4]float64{.04, .20, .40, .80}
	tierFloor = [4]int{10, 50, 100, 500}
)

// Tiers accumulation thresholds bounding orders 1-4; tier k activates
// strictly above T[k]
type Tiers struct {
	T [4]int
}

// AdaptiveTiers derives tier thresholds from the maximum accumulation
func AdaptiveTiers(maxAcc int) Tiers {
	var t Tiers
	for k := 0; k < 4; k++ {
		t.T[k] = int(float64(maxAcc) * tierFrac[k])
		if t.T[k] < tierFloor[k] {
			t.T[k] = tierFloor[k]
		}
	}
	return t
}

// OrderOf tier order for one accumulation value; 0 = not a stream cell
func (t Tiers) OrderOf(acc int) int {
	o := 0
	for k := 0; k < 4; k++ {
		if acc > t.T[k] {
			o = k + 1
		}
	}
	return o
}

// OrderByAccumulation classifies every valid cell into tier orders 0-4.
// Labeled approximation: order reflects contributing area alone.
func OrderByAccumulation(acc []int, ds []int, t Tiers) []int {
	o := make([]int, len(acc))
	for i, a := range acc {
		if ds[i] == flow.Nodata {
			continue
		}
		o[i] = t.OrderOf(a)
	}
	return o
}
