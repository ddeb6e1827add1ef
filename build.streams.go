package drainage

import (
	"fmt"

	"github.com/Samoppakiks/uit-drainage/stream"
)

// buildStreams classifies stream cells, vectorizes them into ordered
// line features, filters to the minimum order and smooths.
func (cfg *Config) buildStreams(strc *Structure) (*StreamNet, error) {

	///////////////////////////////////////////////////////
	_, amax := strc.MaxAcc()
	tiers := stream.AdaptiveTiers(amax)
	fmt.Printf(" > step 5: stream extraction (policy: %s)\n", cfg.OrderPolicy)
	fmt.Printf("   adaptive thresholds: O1=%d, O2=%d, O3=%d, O4=%d cells\n",
		tiers.T[0], tiers.T[1], tiers.T[2], tiers.T[3])

	var order []int
	switch cfg.OrderPolicy {
	case "strahler":
		order = stream.OrderStrahler(strc.Cids, strc.Ds, strc.Acc, tiers)
	case "accum":
		order = stream.OrderByAccumulation(strc.Acc, strc.Ds, tiers)
	default:
		return nil, fmt.Errorf("drainage.buildStreams: unknown order policy %q", cfg.OrderPolicy)
	}

	///////////////////////////////////////////////////////
	println(" > step 6: vectorize stream segments")
	segs := stream.Vectorize(strc.GD, order, strc.Ds)
	byOrder := map[int]int{}
	for _, s := range segs {
		byOrder[s.Order]++
	}
	fmt.Printf("   %d segments extracted; per order:", len(segs))
	omax := 0
	for o := range byOrder {
		if o > omax {
			omax = o
		}
	}
	for o := 1; o <= omax; o++ {
		fmt.Printf(" O%d=%d", o, byOrder[o])
	}
	println()

	///////////////////////////////////////////////////////
	fmt.Printf(" > step 7: filter to order %d+\n", cfg.MinOrder)
	kept := stream.FilterMinOrder(segs, cfg.MinOrder)
	if len(segs) > 0 {
		fmt.Printf("   %d of %d segments retained (%.1f%% removed)\n",
			len(kept), len(segs), 100.*float64(len(segs)-len(kept))/float64(len(segs)))
	}

	///////////////////////////////////////////////////////
	tol := cfg.SmoothTol
	if tol <= 0 {
		tol = stream.DefaultTolerance(strc.GD.Cs)
	}
	fmt.Printf(" > step 8: line smoothing (tolerance %.1f m)\n", tol)
	kept = stream.Smooth(kept, tol)
	if n := len(kept); n > 0 {
		sf := 0.
		for _, s := range kept {
			if s.LengthM > 0 {
				sf += s.SmoothedM / s.LengthM
			}
		}
		fmt.Printf("   average length reduction: %.1f%%\n", (1.-sf/float64(n))*100.)
	}

	pps := stream.PourPoints(kept)
	fmt.Printf("   %d pour points at segment outlets\n", len(pps))

	return &StreamNet{
		Policy:     cfg.OrderPolicy,
		Tiers:      tiers,
		Order:      order,
		Segs:       kept,
		PourPoints: pps,
	}, nil
}
