package stream

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"github.com/Samoppakiks/uit-drainage/vec"
)

// DefaultTolerance smoothing tolerance scaled to the raster: half a cell
// width (15 m on a 30 m DEM), enough to cut stair-step artifacts without
// displacing the channel by more than a cell.
func DefaultTolerance(cs float64) float64 { return cs / 2 }

// Smooth simplifies each segment with topology-preserving Douglas-Peucker
// at the given distance tolerance and records the smoothed length next to
// the raw one, exposing the smoothing factor per feature.
func Smooth(segs []vec.StreamSegment, tol float64) []vec.StreamSegment {
	o := make([]vec.StreamSegment, len(segs))
	for i, s := range segs {
		g := simplify.DouglasPeucker(tol).Simplify(s.Geom.Clone())
		if ls, ok := g.(orb.LineString); ok && len(ls) >= 2 {
			s.Geom = ls
		}
		s.SmoothedM = planar.Length(s.Geom)
		o[i] = s
	}
	return o
}
