package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// TransformPoint moves 'p' so that its offset from 'source' is scaled by
// 'scale' and re-applied from 'target'. This works in plain degree space
// (equirectangular), which distorts shapes far from the equator.
func TransformPoint(p orb.Point, scale float64, source, target orb.Point) orb.Point {
	dLon := p[0] - source[0]
	dLat := p[1] - source[1]
	return orb.Point{
		target[0] + dLon*scale,
		target[1] + dLat*scale,
	}
}

// TransformRing returns a new ring. The input is left untouched.
func TransformRing(ring orb.Ring, scale float64, source, target orb.Point) orb.Ring {
	if ring == nil {
		return nil
	}
	out := make(orb.Ring, len(ring))
	for idx, pt := range ring {
		out[idx] = TransformPoint(pt, scale, source, target)
	}
	return out
}

func TransformPolygon(polygon orb.Polygon, scale float64, source, target orb.Point) orb.Polygon {
	if polygon == nil {
		return nil
	}
	out := make(orb.Polygon, len(polygon))
	for idx, ring := range polygon {
		out[idx] = TransformRing(ring, scale, source, target)
	}
	return out
}

func TransformMultiPolygon(multiPolygon orb.MultiPolygon, scale float64, source, target orb.Point) orb.MultiPolygon {
	if multiPolygon == nil {
		return nil
	}
	out := make(orb.MultiPolygon, len(multiPolygon))
	for idx, polygon := range multiPolygon {
		out[idx] = TransformPolygon(polygon, scale, source, target)
	}
	return out
}

// ScaleAndTranslate rescales 'geometry' around 'source' and recenters it on
// 'target'. Polygons stay polygons and multipolygons stay multipolygons. A
// scale of 0 collapses the shape onto 'target'; a negative scale mirrors it.
func ScaleAndTranslate(geometry orb.Geometry, scale float64, source, target orb.Point) (orb.Geometry, error) {
	switch typedGeometry := geometry.(type) {
	case orb.Polygon:
		return TransformPolygon(typedGeometry, scale, source, target), nil
	case orb.MultiPolygon:
		return TransformMultiPolygon(typedGeometry, scale, source, target), nil
	case nil:
		return nil, fmt.Errorf("%w: geometry is nil", ErrUnsupportedGeometry)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, geometry.GeoJSONType())
	}
}

// BoundCenter is the midpoint of the geometry's bounding box. It is not an
// area centroid. An empty geometry yields the zero point.
func BoundCenter(geometry orb.Geometry) orb.Point {
	if geometry == nil {
		return orb.Point{}
	}
	return geometry.Bound().Center()
}
