package geo

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tidwall/rtree"
)

type regionIndexEntry[V any] struct {
	polygon      orb.Polygon
	multiPolygon orb.MultiPolygon
	value        V
	containsFn   func(orb.Point) bool
}

func (e regionIndexEntry[V]) polygonContains(p orb.Point) bool {
	return planar.PolygonContains(e.polygon, p)
}

func (e regionIndexEntry[V]) multiPolygonContains(p orb.Point) bool {
	return planar.MultiPolygonContains(e.multiPolygon, p)
}

func (e regionIndexEntry[V]) Contains(p orb.Point) bool {
	return e.containsFn(p)
}

// RegionIndex answers "which regions contain this point". Bounding boxes
// narrow the candidates, then an exact planar containment test runs.
type RegionIndex[V any] struct {
	mutex sync.RWMutex
	rtree rtree.RTreeG[regionIndexEntry[V]]
	count int
}

func (ri *RegionIndex[V]) insertEntry(bbox orb.Bound, entry regionIndexEntry[V]) {
	ri.mutex.Lock()
	defer ri.mutex.Unlock()
	ri.rtree.Insert(bbox.Min, bbox.Max, entry)
	ri.count++
}

func (ri *RegionIndex[V]) insertPolygon(polygon orb.Polygon, value V) {
	entry := regionIndexEntry[V]{
		polygon: polygon,
		value:   value,
	}
	entry.containsFn = entry.polygonContains
	ri.insertEntry(polygon.Bound(), entry)
}

func (ri *RegionIndex[V]) insertMultiPolygon(multiPolygon orb.MultiPolygon, value V) {
	entry := regionIndexEntry[V]{
		multiPolygon: multiPolygon,
		value:        value,
	}
	entry.containsFn = entry.multiPolygonContains
	ri.insertEntry(multiPolygon.Bound(), entry)
}

// InsertGeometry refuses anything GeometrySupported refuses, so a degenerate
// ring never reaches a containment test.
func (ri *RegionIndex[V]) InsertGeometry(geometry orb.Geometry, value V) error {
	switch typedGeometry := geometry.(type) {
	case orb.Polygon:
		if !GeometrySupported(typedGeometry) {
			return fmt.Errorf("%w: empty or degenerate polygon", ErrUnsupportedGeometry)
		}
		ri.insertPolygon(typedGeometry, value)
	case orb.MultiPolygon:
		if !GeometrySupported(typedGeometry) {
			return fmt.Errorf("%w: empty or degenerate multipolygon", ErrUnsupportedGeometry)
		}
		ri.insertMultiPolygon(typedGeometry, value)
	case nil:
		return fmt.Errorf("%w: geometry is nil", ErrUnsupportedGeometry)
	default:
		return fmt.Errorf("%w: GeoJSONType %s", ErrUnsupportedGeometry, geometry.GeoJSONType())
	}
	return nil
}

func (ri *RegionIndex[V]) Len() int {
	ri.mutex.RLock()
	defer ri.mutex.RUnlock()
	return ri.count
}

func (ri *RegionIndex[V]) GetMatches(lon, lat float64) []V {
	matches := make([]V, 0, 2)

	p := orb.Point{lon, lat}

	ri.mutex.RLock()
	defer ri.mutex.RUnlock()
	ri.rtree.Search(p, p, func(min, max [2]float64, entry regionIndexEntry[V]) bool {
		if entry.Contains(p) {
			matches = append(matches, entry.value)
		}
		return true
	})

	return matches
}

func NewRegionIndex[V any]() *RegionIndex[V] {
	return &RegionIndex[V]{}
}
