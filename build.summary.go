package drainage

import (
	"fmt"

	"github.com/maseology/mmio"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/Samoppakiks/uit-drainage/vec"
)

// buildSummary writes one table row per region boundary polygon with the
// counts, lengths and areas of every layer intersected against it.
// Line lengths are clipped by segment-midpoint membership; polygon and
// point features attribute to the region holding their representative
// point.
func (cfg *Config) buildSummary(net *StreamNet, wsheds []vec.Watershed, zones []vec.RiskZone) error {
	println(" > step 16: per-region summary")
	regions, err := cfg.loadRegions()
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		println("   no region boundaries configured; summary skipped")
		return nil
	}

	wb := cfg.loadAuxLayer(cfg.WbFP, "water_bodies")
	hyd := cfg.loadAuxLayer(cfg.HydFP, "hydrosheds_ref")

	csvw := mmio.NewCSVwriter(cfg.Prfx + "summary.csv")
	defer csvw.Close()
	if err := csvw.WriteHead("region_id,region_name,area_km2," +
		"streams_count,streams_length_km,streams_order1,streams_order2,streams_order3,streams_order4," +
		"watersheds_count,watersheds_area_km2," +
		"flood_risk_medium_zones,flood_risk_high_zones,flood_risk_area_ha," +
		"water_bodies_count,hydrosheds_count"); err != nil {
		return fmt.Errorf("drainage.buildSummary: %v", err)
	}

	for _, rg := range regions {
		nseg, lkm, byOrder := 0, 0., [5]int{}
		for _, s := range net.Segs {
			l := clippedLength(s.Geom, rg.Geom)
			if l <= 0 {
				continue
			}
			nseg++
			lkm += l / 1e3
			if s.Order >= 1 && s.Order <= 4 {
				byOrder[s.Order]++
			}
		}

		nws, wskm2 := 0, 0.
		for _, w := range wsheds {
			if planar.PolygonContains(rg.Geom, repPoint(w.Geom)) {
				nws++
				wskm2 += w.AreaM2 / 1e6
			}
		}

		nmed, nhigh, zha := 0, 0, 0.
		for _, z := range zones {
			if !planar.PolygonContains(rg.Geom, repPoint(z.Geom)) {
				continue
			}
			zha += z.AreaM2 / 1e4
			if z.Level == 2 {
				nhigh++
			} else {
				nmed++
			}
		}

		csvw.WriteLine(rg.ID, rg.Name, rg.AreaM2/1e6,
			nseg, lkm, byOrder[1], byOrder[2], byOrder[3], byOrder[4],
			nws, wskm2,
			nmed, nhigh, zha,
			countWithin(wb, rg.Geom), countWithin(hyd, rg.Geom))
	}
	fmt.Printf("   %d region rows written to %ssummary.csv\n", len(regions), cfg.Prfx)
	return nil
}

// loadRegions reads the WGS84 boundary polygons and reprojects them into
// the analysis zone. Per-feature reprojection failures are skipped.
func (cfg *Config) loadRegions() ([]vec.Region, error) {
	if cfg.BndFP == "" {
		return nil, nil
	}
	if _, ok := mmio.FileExists(cfg.BndFP); !ok {
		return nil, fmt.Errorf("drainage.loadRegions: boundary file not found: %s (supplied with the acquisition inputs)", cfg.BndFP)
	}
	fc, err := vec.ReadFeatureCollection(cfg.BndFP)
	if err != nil {
		return nil, err
	}

	var regions []vec.Region
	nskip := 0
	for k, f := range fc.Features {
		p, ok := f.Geometry.(orb.Polygon)
		if !ok {
			if mp, isMP := f.Geometry.(orb.MultiPolygon); isMP && len(mp) > 0 {
				p = mp[0]
			} else {
				nskip++
				continue
			}
		}
		utm, err := vec.FromWGS84Polygon(p, cfg.Zone)
		if err != nil {
			nskip++
			continue
		}
		name := fmt.Sprintf("region-%d", k)
		if v, ok := f.Properties["name"]; ok {
			if s, ok := v.(string); ok && s != "" {
				name = s
			}
		}
		regions = append(regions, vec.Region{
			ID:     k,
			Name:   name,
			AreaM2: planar.Area(utm),
			Geom:   utm,
		})
	}
	fmt.Printf("   %d region polygons loaded", len(regions))
	if nskip > 0 {
		fmt.Printf(" (%d skipped)", nskip)
	}
	println()
	return regions, nil
}

// loadAuxLayer loads an optional context layer, re-emits its display
// reprojection, and returns its features. Absence is non-fatal.
func (cfg *Config) loadAuxLayer(fp, name string) []*geojson.Feature {
	if fp == "" {
		return nil
	}
	if _, ok := mmio.FileExists(fp); !ok {
		fmt.Printf("   WARNING %s layer not found (optional): %s\n", name, fp)
		return nil
	}
	fc, err := vec.ReadFeatureCollection(fp)
	if err != nil {
		fmt.Printf("   WARNING could not read %s layer: %v\n", name, err)
		return nil
	}
	if err := cfg.writeLayer(name, fc); err != nil {
		fmt.Printf("   WARNING could not re-emit %s layer: %v\n", name, err)
	}
	return fc.Features
}

// clippedLength sums the pieces of a line whose midpoints fall inside
// the region; cell-scale fidelity, full overlay is not warranted for a
// summary table
func clippedLength(ls orb.LineString, rg orb.Polygon) float64 {
	l := 0.
	for i := 1; i < len(ls); i++ {
		a, b := ls[i-1], ls[i]
		mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
		if planar.PolygonContains(rg, mid) {
			l += planar.Distance(a, b)
		}
	}
	return l
}

// repPoint representative point of a geometry for region attribution
func repPoint(g orb.Geometry) orb.Point {
	switch t := g.(type) {
	case orb.Point:
		return t
	case orb.LineString:
		if len(t) > 0 {
			return t[len(t)/2]
		}
	case orb.Polygon:
		c, _ := planar.CentroidArea(t)
		return c
	case orb.MultiPolygon:
		c, _ := planar.CentroidArea(t)
		return c
	}
	return orb.Point{}
}

// countWithin features whose representative point lies in the region
func countWithin(fs []*geojson.Feature, rg orb.Polygon) int {
	n := 0
	for _, f := range fs {
		if planar.PolygonContains(rg, repPoint(f.Geometry)) {
			n++
		}
	}
	return n
}
