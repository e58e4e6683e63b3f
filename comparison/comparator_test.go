package comparison

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indobig/sizecompare/geo"
	"github.com/indobig/sizecompare/interaction"
	"github.com/indobig/sizecompare/registry"
	"github.com/indobig/sizecompare/stats_collector"
)

func square(minLon, minLat, size float64) orb.Polygon {
	return orb.Polygon{{
		{minLon, minLat},
		{minLon + size, minLat},
		{minLon + size, minLat + size},
		{minLon, minLat + size},
		{minLon, minLat},
	}}
}

func named(name string, geometry orb.Geometry) *geojson.Feature {
	f := geojson.NewFeature(geometry)
	f.Properties["NAME"] = name
	return f
}

type countingStats struct {
	stats_collector.StatsCollector
	selections, resets, noData, drags int
}

func (s *countingStats) AddSelection()   { s.selections++ }
func (s *countingStats) AddReset()       { s.resets++ }
func (s *countingStats) AddNoData()      { s.noData++ }
func (s *countingStats) AddDragIgnored() { s.drags++ }

func newTestComparator(t *testing.T, config Config) (*Comparator, *countingStats) {
	t.Helper()

	logger, _ := logrustest.NewNullLogger()
	features := []*geojson.Feature{
		named("Indonesia", orb.MultiPolygon{square(95, -10, 10), square(120, -8, 20)}),
		named("Germany", square(5, 47, 10)),
		named("France", square(-5, 42, 10)),
		named("Atlantis", square(-30, 30, 2)),
		named("Vatican City", square(12, 41, 0.01)),
		named("Lineland", orb.LineString{{0, 0}, {1, 1}}),
		named("Ghost", orb.MultiPolygon{{}}),
	}
	areas := registry.AreaTable{
		"Indonesia":    1904569,
		"Germany":      357114,
		"France":       551695,
		"Vatican City": 0.49,
		"Russia":       17098246,
		"Lineland":     1000,
		"Ghost":        1000,
	}
	reg := registry.New(logger, registry.GetDefaultConfig(), features, areas)

	stats := &countingStats{StatsCollector: stats_collector.NewNoopStatsCollector()}
	comparator := NewComparator(logger, config, reg, stats)
	comparator.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return comparator, stats
}

func TestSelectCountry_ReferenceExample(t *testing.T) {
	c, stats := newTestComparator(t, GetDefaultConfig())

	result := c.SelectCountry("Germany")

	require.True(t, result.Ratio.Valid)
	assert.InDelta(t, 5.333, result.Ratio.Float64, 0.001)
	require.True(t, result.ScaleFactor.Valid)
	assert.InDelta(t, math.Sqrt(357114.0/1904569.0), result.ScaleFactor.Float64, 1e-12)
	assert.InDelta(t, 0.433, result.ScaleFactor.Float64, 0.001)
	assert.Equal(t, "Indonesia is 5.3 times bigger than Germany", result.Message)
	assert.Equal(t, "Germany", result.HighlightedCountry)
	assert.False(t, result.Reset)

	require.NotNil(t, result.Overlay)
	overlay, ok := result.Overlay.(orb.MultiPolygon)
	require.True(t, ok, "overlay keeps the reference's shape class, got %T", result.Overlay)
	require.Len(t, overlay, 2)

	// recentred on Germany's bounding box midpoint
	center := geo.BoundCenter(overlay)
	assert.InDelta(t, 10, center[0], 1e-9)
	assert.InDelta(t, 52, center[1], 1e-9)

	assert.Equal(t, State{Selected: "Germany", HasOverlay: true}, c.State())
	assert.Equal(t, result.Message, c.Message())
	assert.Equal(t, 1, stats.selections)
}

func TestSelectCountry_Smaller(t *testing.T) {
	c, _ := newTestComparator(t, GetDefaultConfig())

	result := c.SelectCountry("Russia")
	assert.Equal(t, "Indonesia is 9.0 times smaller than Russia", result.Message)
	// Russia has an area but no boundary: message only.
	assert.Nil(t, result.Overlay)
	assert.Empty(t, result.HighlightedCountry)
	assert.Nil(t, c.Overlay())
}

func TestSelectCountry_NoAreaData(t *testing.T) {
	c, stats := newTestComparator(t, GetDefaultConfig())

	c.SelectCountry("Germany")
	require.NotNil(t, c.Overlay())

	result := c.SelectCountry("Atlantis")
	assert.Equal(t, "No area data available for Atlantis", result.Message)
	assert.Nil(t, result.Overlay)
	assert.False(t, result.Ratio.Valid)
	assert.Nil(t, c.Overlay(), "the previous overlay must not linger")
	assert.Empty(t, result.HighlightedCountry, "nothing is highlighted without area data")
	assert.Equal(t, State{}, c.State())
	assert.Equal(t, BaselineStyle(false), c.Style("Germany"), "old highlight must be cleared")
	assert.Equal(t, BaselineStyle(false), c.Style("Atlantis"))
	assert.Equal(t, result.Message, c.Message())
	assert.Equal(t, 1, stats.noData)

	result = c.SelectCountry("")
	assert.Equal(t, "No area data available for this country", result.Message)
}

func TestSelectCountry_NotSelectable(t *testing.T) {
	for _, name := range []string{"Lineland", "Ghost"} {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestComparator(t, GetDefaultConfig())
			c.SelectCountry("Germany")

			var result Result
			require.NotPanics(t, func() {
				result = c.SelectCountry(name)
			})
			assert.Equal(t, "Indonesia is 1904.6 times bigger than "+name, result.Message)
			assert.Nil(t, result.Overlay)
			assert.Empty(t, result.HighlightedCountry)
			assert.Equal(t, State{}, c.State())
			assert.Equal(t, BaselineStyle(false), c.Style(name))
			assert.Equal(t, BaselineStyle(false), c.Style("Germany"))

			// a click on the same region is refused the same way
			c.HandlePointer(name, interaction.Event{Type: interaction.PointerDown, X: 1, Y: 1})
			outcome, clicked, err := c.HandlePointer(name, interaction.Event{Type: interaction.PointerUp, X: 1, Y: 1})
			require.NoError(t, err)
			assert.False(t, outcome.Selected)
			assert.Nil(t, clicked)
			assert.Equal(t, State{}, c.State())
		})
	}
}

func TestSelectCountry_ReferenceResets(t *testing.T) {
	c, stats := newTestComparator(t, GetDefaultConfig())

	c.SelectCountry("Germany")
	c.Hover("France")
	require.NotEqual(t, BaselineStyle(false), c.Style("Germany"))

	result := c.SelectCountry("Indonesia")
	assert.True(t, result.Reset)
	assert.Nil(t, result.Overlay)
	assert.Empty(t, result.HighlightedCountry)
	assert.Equal(t, "Click any country to compare its size with Indonesia", result.Message)
	assert.Equal(t, State{}, c.State())
	assert.Equal(t, 1, stats.resets)

	for _, region := range c.Registry().All() {
		isReference := region.Name == "Indonesia"
		assert.Equal(t, BaselineStyle(isReference), c.Style(region.Name), region.Name)
	}

	// history survives a reset
	assert.Len(t, c.History(), 1)
}

func TestSelectCountry_ReplacesPrevious(t *testing.T) {
	c, _ := newTestComparator(t, GetDefaultConfig())

	first := c.SelectCountry("Germany")
	second := c.SelectCountry("France")

	assert.Equal(t, "France", second.HighlightedCountry)
	assert.Equal(t, second.Overlay, c.Overlay())
	assert.NotEqual(t, first.Overlay, c.Overlay())

	assert.Equal(t, BaselineStyle(false), c.Style("Germany"), "old highlight must be cleared")
	assert.Equal(t, StyleFor(false, false, true), c.Style("France"))
}

func TestSelectCountry_DoesNotMutateRegistry(t *testing.T) {
	c, _ := newTestComparator(t, GetDefaultConfig())
	reference := c.Registry().Reference()
	before := orb.Clone(reference.Geometry())

	result := c.SelectCountry("Germany")
	result.Overlay.(orb.MultiPolygon)[0][0][0] = orb.Point{0, 0}

	assert.Equal(t, before, reference.Geometry())

	// the cached overlay is not affected by callers either
	again := c.SelectCountry("Germany")
	assert.NotEqual(t, orb.Point{0, 0}, again.Overlay.(orb.MultiPolygon)[0][0][0])
}

func TestSelectCountry_CacheDisabled(t *testing.T) {
	config := GetDefaultConfig()
	config.OverlayCacheSize = 0
	c, _ := newTestComparator(t, config)

	a := c.SelectCountry("France")
	b := c.SelectCountry("France")
	assert.Equal(t, a.Overlay, b.Overlay)
	assert.Equal(t, a.Message, b.Message)
}

func TestSelectCountry_TinyCountry(t *testing.T) {
	c, _ := newTestComparator(t, GetDefaultConfig())
	result := c.SelectCountry("Vatican City")
	assert.Equal(t, "Indonesia is 3886875.5 times bigger than Vatican City", result.Message)
	assert.NotNil(t, result.Overlay)
}

func TestHoverStyles(t *testing.T) {
	c, _ := newTestComparator(t, GetDefaultConfig())

	assert.Equal(t, BaselineStyle(true), c.Style("Indonesia"))
	assert.Equal(t, StyleFor(false, true, false), c.Hover("Germany"))
	assert.Equal(t, BaselineStyle(false), c.Unhover("Germany"))

	c.SelectCountry("Germany")
	assert.Equal(t, StyleFor(false, true, true), c.Hover("Germany"))
	assert.Equal(t, StyleFor(false, false, true), c.Unhover("Germany"), "unhover keeps the highlight")
}

func TestHandlePointer(t *testing.T) {
	c, stats := newTestComparator(t, GetDefaultConfig())

	outcome, result, err := c.HandlePointer("Germany", interaction.Event{Type: interaction.PointerDown, X: 10, Y: 10})
	require.NoError(t, err)
	assert.True(t, outcome.StopPropagation)
	assert.Nil(t, result)

	outcome, result, err = c.HandlePointer("Germany", interaction.Event{Type: interaction.PointerUp, X: 11, Y: 10})
	require.NoError(t, err)
	assert.True(t, outcome.Selected)
	require.NotNil(t, result)
	assert.Equal(t, "Germany", result.HighlightedCountry)

	// a drag over France leaves the Germany comparison in place
	c.HandlePointer("France", interaction.Event{Type: interaction.PointerDown, X: 0, Y: 0})
	c.HandlePointer("France", interaction.Event{Type: interaction.PointerMove, X: 40, Y: 0})
	outcome, result, err = c.HandlePointer("France", interaction.Event{Type: interaction.PointerUp, X: 40, Y: 0})
	require.NoError(t, err)
	assert.False(t, outcome.Selected)
	assert.Nil(t, result)
	assert.Equal(t, "Germany", c.State().Selected)
	assert.Equal(t, 1, stats.drags)

	_, _, err = c.HandlePointer("Narnia", interaction.Event{Type: interaction.PointerDown})
	assert.True(t, errors.Is(err, ErrUnknownRegion))
}
