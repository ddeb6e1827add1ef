// Package vec holds the typed vector features exchanged between pipeline
// stages and the raster↔vector plumbing they share. All geometry is held
// in the analysis (UTM) projection; reprojection to WGS84 happens only
// at the output boundary.
package vec

import (
	"github.com/paulmach/orb"
)

// StreamSegment a vectorized run of same-order stream cells
type StreamSegment struct {
	ID         int
	Order      int
	PixelCount int
	LengthM    float64 // raw vectorized length
	SmoothedM  float64 // post-simplification length
	Geom       orb.LineString
}

// PourPoint the downstream endpoint of a stream segment, seed for
// watershed delineation. Created after stream extraction, consumed once.
type PourPoint struct {
	SegmentID int
	Order     int
	Pt        orb.Point
}

// Watershed the contributing area draining to one pour point
type Watershed struct {
	ID        int
	SegmentID int // originating pour point's segment
	Order     int
	NCells    int
	AreaM2    float64
	Geom      orb.Polygon
}

// RiskZone a classified flood-risk polygon (medium/high tiers only)
type RiskZone struct {
	ID     int
	Level  int // 1 medium, 2 high
	Label  string
	AreaM2 float64
	Geom   orb.Polygon
}

// Region a boundary polygon used for per-region summary statistics
type Region struct {
	ID     int
	Name   string
	AreaM2 float64
	Geom   orb.Polygon
}

// RiskLabel tier name for a classified level
func RiskLabel(level int) string {
	switch level {
	case 2:
		return "high"
	case 1:
		return "medium"
	default:
		return "low"
	}
}
