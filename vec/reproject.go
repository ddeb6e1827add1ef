package vec

import (
	"fmt"

	"github.com/im7mortal/UTM"
	"github.com/paulmach/orb"
)

// ToWGS84Point converts a projected point to geographic {lon, lat}.
func ToWGS84Point(p orb.Point, zone int, north bool) (orb.Point, error) {
	lat, lon, err := UTM.ToLatLon(p[0], p[1], zone, "", north)
	if err != nil {
		return orb.Point{}, fmt.Errorf("vec.ToWGS84Point (x,y)=(%f, %f): %v", p[0], p[1], err)
	}
	return orb.Point{lon, lat}, nil
}

// FromWGS84Point converts a geographic {lon, lat} point to the analysis
// projection. The point's own UTM zone must match the analysis zone.
func FromWGS84Point(p orb.Point, zone int) (orb.Point, error) {
	e, n, zn, _, err := UTM.FromLatLon(p[1], p[0], p[1] >= 0)
	if err != nil {
		return orb.Point{}, fmt.Errorf("vec.FromWGS84Point (lon,lat)=(%f, %f): %v", p[0], p[1], err)
	}
	if zn != zone {
		return orb.Point{}, fmt.Errorf("vec.FromWGS84Point: point falls in UTM zone %d, analysis zone is %d", zn, zone)
	}
	return orb.Point{e, n}, nil
}

// ToWGS84 reprojects any supported geometry to geographic coordinates.
func ToWGS84(g orb.Geometry, zone int, north bool) (orb.Geometry, error) {
	switch t := g.(type) {
	case orb.Point:
		return ToWGS84Point(t, zone, north)
	case orb.LineString:
		o := make(orb.LineString, len(t))
		for i, p := range t {
			q, err := ToWGS84Point(p, zone, north)
			if err != nil {
				return nil, err
			}
			o[i] = q
		}
		return o, nil
	case orb.Ring:
		o := make(orb.Ring, len(t))
		for i, p := range t {
			q, err := ToWGS84Point(p, zone, north)
			if err != nil {
				return nil, err
			}
			o[i] = q
		}
		return o, nil
	case orb.Polygon:
		o := make(orb.Polygon, len(t))
		for i, r := range t {
			q, err := ToWGS84(r, zone, north)
			if err != nil {
				return nil, err
			}
			o[i] = q.(orb.Ring)
		}
		return o, nil
	case orb.MultiPolygon:
		o := make(orb.MultiPolygon, len(t))
		for i, p := range t {
			q, err := ToWGS84(p, zone, north)
			if err != nil {
				return nil, err
			}
			o[i] = q.(orb.Polygon)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("vec.ToWGS84: unsupported geometry %T", g)
	}
}

// FromWGS84Polygon reprojects a geographic polygon into the analysis zone.
func FromWGS84Polygon(p orb.Polygon, zone int) (orb.Polygon, error) {
	o := make(orb.Polygon, len(p))
	for i, r := range p {
		ring := make(orb.Ring, len(r))
		for j, pt := range r {
			q, err := FromWGS84Point(pt, zone)
			if err != nil {
				return nil, err
			}
			ring[j] = q
		}
		o[i] = ring
	}
	return o, nil
}
