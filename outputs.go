package drainage

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/Samoppakiks/uit-drainage/vec"
)

// writeLayer writes one vector layer twice: analysis projection and a
// WGS84 reprojection for display.
func (cfg *Config) writeLayer(name string, fc *geojson.FeatureCollection) error {
	if err := vec.WriteFeatureCollection(fmt.Sprintf("%s%s_%s.geojson", cfg.Prfx, name, cfg.suffix()), fc); err != nil {
		return err
	}
	wgs, nskip := vec.ReprojectFC(fc, cfg.Zone, cfg.North)
	if nskip > 0 {
		fmt.Printf("   WARNING %d %s features failed reprojection and were dropped from the display layer\n", nskip, name)
	}
	return vec.WriteFeatureCollection(fmt.Sprintf("%s%s_wgs84.geojson", cfg.Prfx, name), wgs)
}

// writeVectors emits every vector layer the downstream dashboard and
// exporters read; they must not re-derive any of this.
func (cfg *Config) writeVectors(net *StreamNet, wsheds []vec.Watershed, zones []vec.RiskZone) error {
	println(" > step 15: write vector layers")
	if err := cfg.writeLayer(fmt.Sprintf("streams_order%dplus", cfg.MinOrder), vec.SegmentsFC(net.Segs)); err != nil {
		return err
	}
	if err := cfg.writeLayer("pour_points", vec.PourPointsFC(net.PourPoints)); err != nil {
		return err
	}
	if err := cfg.writeLayer("watersheds", vec.WatershedsFC(wsheds)); err != nil {
		return err
	}
	return cfg.writeLayer("flood_risk", vec.RiskZonesFC(zones))
}
