// Package registry holds the country boundaries and their areas once the
// datasets are loaded. It is built once and only read afterwards.
package registry

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"github.com/indobig/sizecompare/geo"
	"github.com/indobig/sizecompare/interaction"
)

// AreaTable maps a country name to its area in km2. Lookups are exact:
// no case folding, no trimming.
type AreaTable map[string]float64

// Lookup only reports usable areas: positive and finite.
func (t AreaTable) Lookup(name string) (float64, bool) {
	area, ok := t[name]
	if !ok || math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return 0, false
	}
	return area, true
}

type Region struct {
	// Name is empty for unknown regions.
	Name    string
	Feature *geojson.Feature
	// Unknown is set when no name key produced a name.
	Unknown bool
	// Supported is false for geometries other than (Multi)Polygons, and for
	// polygons with empty or degenerate rings.
	Supported bool
	// Label is where the tooltip goes. Only set for supported regions.
	Label   orb.Point
	Pointer *interaction.Disambiguator
}

func (r *Region) Geometry() orb.Geometry {
	if r.Feature == nil {
		return nil
	}
	return r.Feature.Geometry
}

// Selectable regions can take part in a comparison. Others are still
// listed so they can be drawn.
func (r *Region) Selectable() bool {
	return !r.Unknown && r.Supported
}

// ResolveName returns the first non-empty string property among 'keys'.
func ResolveName(props geojson.Properties, keys []string) string {
	for _, key := range keys {
		if name, _ := props[key].(string); name != "" {
			return name
		}
	}
	return ""
}

type Registry struct {
	logger    *logrus.Logger
	reference string
	regions   []*Region
	byName    map[string]*Region
	areas     AreaTable
	index     *geo.RegionIndex[*Region]
}

func (reg *Registry) ReferenceName() string {
	return reg.reference
}

// Reference returns the reference country's region, or nil if the boundary
// dataset does not contain it.
func (reg *Registry) Reference() *Region {
	return reg.byName[reg.reference]
}

func (reg *Registry) IsReference(name string) bool {
	return name == reg.reference
}

func (reg *Registry) Get(name string) *Region {
	return reg.byName[name]
}

func (reg *Registry) Area(name string) (float64, bool) {
	return reg.areas.Lookup(name)
}

func (reg *Registry) Len() int {
	return len(reg.regions)
}

// All returns every region in dataset order, including unknown ones.
func (reg *Registry) All() []*Region {
	regions := make([]*Region, len(reg.regions))
	copy(regions, reg.regions)
	return regions
}

// Selectable returns selectable regions sorted by name.
func (reg *Registry) Selectable() []*Region {
	regions := make([]*Region, 0, len(reg.byName))
	for _, region := range reg.byName {
		if region.Selectable() {
			regions = append(regions, region)
		}
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Name < regions[j].Name
	})
	return regions
}

// At returns the selectable regions containing the point.
func (reg *Registry) At(lon, lat float64) []*Region {
	matches := reg.index.GetMatches(lon, lat)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	return matches
}

func (reg *Registry) register(feature *geojson.Feature, nameKeys []string) {
	region := &Region{
		Feature: feature,
		Pointer: interaction.NewDisambiguator(),
	}
	reg.regions = append(reg.regions, region)

	if geo.GeometrySupported(feature.Geometry) {
		region.Supported = true
		region.Label = geo.LabelPoint(feature.Geometry)
	}

	region.Name = ResolveName(feature.Properties, nameKeys)
	if region.Name == "" {
		region.Unknown = true
		reg.logger.Warnf("country without name (tried %v): %v", nameKeys, feature.Properties)
		return
	}

	if !region.Supported {
		typ := "<nil>"
		if feature.Geometry != nil {
			typ = feature.Geometry.GeoJSONType()
		}
		reg.logger.Warnf("country '%s' has unsupported or degenerate geometry %s: it won't be selectable", region.Name, typ)
	}

	if _, exists := reg.byName[region.Name]; exists {
		reg.logger.Warnf("duplicate country name '%s': the later feature wins", region.Name)
	}
	reg.byName[region.Name] = region
}

func (reg *Registry) buildIndex() {
	for _, region := range reg.byName {
		if !region.Selectable() {
			continue
		}
		if err := reg.index.InsertGeometry(region.Geometry(), region); err != nil {
			reg.logger.Warnf("country '%s' left out of the point index: %v", region.Name, err)
		}
	}
}

// New builds the registry. Features are kept even when they cannot be
// compared; 'features' and 'areas' must not be modified afterwards.
func New(logger *logrus.Logger, config Config, features []*geojson.Feature, areas AreaTable) *Registry {
	nameKeys := config.NameKeys
	if len(nameKeys) == 0 {
		nameKeys = DefaultNameKeys
	}

	reg := &Registry{
		logger:    logger,
		reference: config.Reference,
		regions:   make([]*Region, 0, len(features)),
		byName:    make(map[string]*Region, len(features)),
		areas:     areas,
		index:     geo.NewRegionIndex[*Region](),
	}
	if reg.areas == nil {
		reg.areas = AreaTable{}
	}

	for _, feature := range features {
		if feature == nil {
			continue
		}
		reg.register(feature, nameKeys)
	}

	reg.buildIndex()

	if reg.Reference() == nil {
		logger.Errorf("reference country '%s' not found in boundaries: overlays are disabled", reg.reference)
	} else {
		logger.Infof("reference country '%s' found", reg.reference)
	}
	if _, ok := reg.areas.Lookup(reg.reference); !ok {
		logger.Errorf("reference country '%s' has no area: comparisons will report no data", reg.reference)
	}

	logger.Infof("registered %d region(s), %d selectable, %d area(s)", len(reg.regions), reg.index.Len(), len(reg.areas))

	return reg
}
