package geo

import (
	"math"

	venise_geo "github.com/dernise/venise/geo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

const (
	squareMetersPerSquareKm = 1_000_000

	// rings with fewer points enclose nothing
	minRingPoints = 3

	// polylabel stops refining once a cell cannot beat the best label by
	// more than this fraction of the shape's larger side.
	labelPrecisionDivisor = 1000
)

func ringUsable(ring orb.Ring) bool {
	return len(ring) >= minRingPoints
}

func polygonUsable(polygon orb.Polygon) bool {
	if len(polygon) == 0 {
		return false
	}
	for _, ring := range polygon {
		if !ringUsable(ring) {
			return false
		}
	}
	return true
}

// GeometrySupported reports whether the geometry is a (Multi)Polygon whose
// every ring encloses something. Containment tests, labels and transforms
// are only run on supported geometries.
func GeometrySupported(geometry orb.Geometry) bool {
	switch typedGeometry := geometry.(type) {
	case orb.Polygon:
		return polygonUsable(typedGeometry)
	case orb.MultiPolygon:
		if len(typedGeometry) == 0 {
			return false
		}
		for _, polygon := range typedGeometry {
			if !polygonUsable(polygon) {
				return false
			}
		}
		return true
	}
	return false
}

func convertToVenisePolygon(orbPolygon orb.Polygon) venise_geo.Polygon {
	polygon := venise_geo.Polygon{
		Rings: make([][]venise_geo.Point, len(orbPolygon)),
	}
	for ringIdx, ring := range orbPolygon {
		ringPoints := make([]venise_geo.Point, len(ring))
		for ptsIdx, coord := range ring {
			ringPoints[ptsIdx] = venise_geo.Point(coord)
		}
		polygon.Rings[ringIdx] = ringPoints
	}
	return polygon
}

func GetLargestPolygon(mp orb.MultiPolygon) orb.Polygon {
	switch len(mp) {
	case 0:
		return nil
	case 1:
		return mp[0]
	}

	bestPoly := mp[0]
	maxArea := geo.Area(bestPoly)

	for _, poly := range mp[1:] {
		area := geo.Area(poly)
		if area > maxArea {
			maxArea = area
			bestPoly = poly
		}
	}

	return bestPoly
}

func labelPrecision(polygon orb.Polygon) float64 {
	bound := polygon.Bound()
	return math.Max(bound.Right()-bound.Left(), bound.Top()-bound.Bottom()) / labelPrecisionDivisor
}

func polylabel(polygon orb.Polygon) orb.Point {
	return orb.Point(venise_geo.Polylabel(convertToVenisePolygon(polygon), labelPrecision(polygon), false))
}

// LabelPoint picks where a country's tooltip goes. The area centroid is used
// when it lands inside the shape, otherwise the pole of inaccessibility of
// the largest polygon. It is not cheap: compute it once per region.
func LabelPoint(geometry orb.Geometry) orb.Point {
	if !GeometrySupported(geometry) {
		return BoundCenter(geometry)
	}

	center, _ := planar.CentroidArea(geometry)
	switch typedGeometry := geometry.(type) {
	case orb.Polygon:
		if !planar.PolygonContains(typedGeometry, center) {
			return polylabel(typedGeometry)
		}
	case orb.MultiPolygon:
		if !planar.MultiPolygonContains(typedGeometry, center) {
			return polylabel(GetLargestPolygon(typedGeometry))
		}
	}
	return center
}

// GeodesicAreaKm2 is informational only. Comparisons always use the area
// table, never this number.
func GeodesicAreaKm2(geometry orb.Geometry) float64 {
	if !GeometrySupported(geometry) {
		return 0
	}
	return geo.Area(geometry) / squareMetersPerSquareKm
}
