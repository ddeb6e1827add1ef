package vec

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReadFeatureCollection loads a GeoJSON feature collection from disk.
func ReadFeatureCollection(fp string) (*geojson.FeatureCollection, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("vec.ReadFeatureCollection %s: %v", fp, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("vec.ReadFeatureCollection %s: %v", fp, err)
	}
	return fc, nil
}

// WriteFeatureCollection saves a GeoJSON feature collection to disk.
func WriteFeatureCollection(fp string, fc *geojson.FeatureCollection) error {
	b, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("vec.WriteFeatureCollection %s: %v", fp, err)
	}
	if err := os.WriteFile(fp, b, 0644); err != nil {
		return fmt.Errorf("vec.WriteFeatureCollection %s: %v", fp, err)
	}
	return nil
}

// Polygons flattens a feature collection into polygons, exploding
// multi-polygons. Non-areal and degenerate features are skipped; the
// skip count is returned so stages can report it.
func Polygons(fc *geojson.FeatureCollection) (polys []orb.Polygon, nskip int) {
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 && len(g[0]) >= 4 {
				polys = append(polys, g)
			} else {
				nskip++
			}
		case orb.MultiPolygon:
			for _, p := range g {
				if len(p) > 0 && len(p[0]) >= 4 {
					polys = append(polys, p)
				} else {
					nskip++
				}
			}
		default:
			nskip++
		}
	}
	return
}

// SegmentsFC builds the stream-network layer.
func SegmentsFC(segs []StreamSegment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range segs {
		f := geojson.NewFeature(s.Geom)
		f.Properties["stream_id"] = s.ID
		f.Properties["stream_order"] = s.Order
		f.Properties["pixel_count"] = s.PixelCount
		f.Properties["length_m"] = s.LengthM
		f.Properties["length_m_smoothed"] = s.SmoothedM
		if s.LengthM > 0 {
			f.Properties["smoothing_factor"] = s.SmoothedM / s.LengthM
		}
		fc.Append(f)
	}
	return fc
}

// WatershedsFC builds the watershed layer.
func WatershedsFC(wsheds []Watershed) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, w := range wsheds {
		f := geojson.NewFeature(w.Geom)
		f.Properties["watershed_id"] = w.ID
		f.Properties["pour_point_id"] = w.SegmentID
		f.Properties["stream_order"] = w.Order
		f.Properties["area_m2"] = w.AreaM2
		f.Properties["area_km2"] = w.AreaM2 / 1e6
		fc.Append(f)
	}
	return fc
}

// RiskZonesFC builds the flood-risk layer.
func RiskZonesFC(zones []RiskZone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		f := geojson.NewFeature(z.Geom)
		f.Properties["zone_id"] = z.ID
		f.Properties["risk_level"] = z.Level
		f.Properties["risk_label"] = z.Label
		f.Properties["area_m2"] = z.AreaM2
		f.Properties["area_hectares"] = z.AreaM2 / 1e4
		fc.Append(f)
	}
	return fc
}

// PourPointsFC builds the pour-point layer.
func PourPointsFC(pps []PourPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range pps {
		f := geojson.NewFeature(p.Pt)
		f.Properties["stream_id"] = p.SegmentID
		f.Properties["stream_order"] = p.Order
		fc.Append(f)
	}
	return fc
}

// ReprojectFC returns a copy of the collection in geographic coordinates
// for display. Features that fail to reproject are dropped and counted.
func ReprojectFC(fc *geojson.FeatureCollection, zone int, north bool) (*geojson.FeatureCollection, int) {
	o, nskip := geojson.NewFeatureCollection(), 0
	for _, f := range fc.Features {
		g, err := ToWGS84(f.Geometry, zone, north)
		if err != nil {
			nskip++
			continue
		}
		nf := geojson.NewFeature(g)
		for k, v := range f.Properties {
			nf.Properties[k] = v
		}
		o.Append(nf)
	}
	return o, nskip
}
