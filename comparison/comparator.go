// Package comparison turns a clicked country into an overlay of the
// reference country, rescaled to the same area and centered on the clicked
// country, and a sentence describing the size ratio.
//
// A Comparator is driven from a single event loop and does no locking.
package comparison

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bluele/gcache"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"

	"github.com/indobig/sizecompare/geo"
	"github.com/indobig/sizecompare/interaction"
	"github.com/indobig/sizecompare/registry"
	"github.com/indobig/sizecompare/stats_collector"
)

var ErrUnknownRegion = errors.New("unknown region")

// Result is what the map layer needs after a selection.
type Result struct {
	// Overlay is nil when no overlay should be shown.
	Overlay orb.Geometry
	Message string
	// HighlightedCountry is empty when nothing is highlighted.
	HighlightedCountry string
	Ratio              null.Float
	ScaleFactor        null.Float
	// Reset is set when the selection cleared the comparison.
	Reset bool
}

// State is NoSelection when Selected is empty, Selected(name) otherwise.
type State struct {
	Selected   string
	HasOverlay bool
}

type Comparator struct {
	logger         *logrus.Logger
	registry       *registry.Registry
	statsCollector stats_collector.StatsCollector
	history        *History
	overlayCache   gcache.Cache
	now            func() time.Time

	overlay  orb.Geometry
	selected string
	message  string
	hovered  map[string]bool
}

func (c *Comparator) Registry() *registry.Registry {
	return c.registry
}

func (c *Comparator) State() State {
	return State{
		Selected:   c.selected,
		HasOverlay: c.overlay != nil,
	}
}

// Overlay returns the current overlay, or nil.
func (c *Comparator) Overlay() orb.Geometry {
	return c.overlay
}

// Message is the text for the last outcome, so the UI never shows a stale
// comparison after a failed one.
func (c *Comparator) Message() string {
	return c.message
}

func (c *Comparator) History() []HistoryEntry {
	return c.history.Entries()
}

func (c *Comparator) Style(name string) Style {
	return StyleFor(
		c.registry.IsReference(name),
		c.hovered[name],
		name != "" && name == c.selected,
	)
}

func (c *Comparator) Hover(name string) Style {
	if name != "" {
		c.hovered[name] = true
	}
	return c.Style(name)
}

func (c *Comparator) Unhover(name string) Style {
	delete(c.hovered, name)
	return c.Style(name)
}

// Reset clears the overlay, highlight and hover state. History is kept.
func (c *Comparator) Reset() Result {
	c.overlay = nil
	c.selected = ""
	c.message = IdleMessage(c.registry.ReferenceName())
	clear(c.hovered)
	c.statsCollector.AddReset()
	c.logger.Debugf("comparison reset")

	return Result{
		Message: c.message,
		Reset:   true,
	}
}

func (c *Comparator) remember(country, message string) {
	c.message = message
	if country == "" {
		return
	}
	c.history.Add(HistoryEntry{
		Country:   country,
		Detail:    message,
		Timestamp: c.now(),
	})
}

// transformedReference returns the reference outline moved onto 'name'. A
// nil geometry with a nil error means one of the boundaries is missing and
// the comparison goes ahead without an overlay.
func (c *Comparator) transformedReference(name string, scale float64) (orb.Geometry, error) {
	reference := c.registry.Reference()
	region := c.registry.Get(name)
	if reference == nil || region == nil || !reference.Supported || !region.Supported {
		return nil, nil
	}

	if c.overlayCache != nil {
		if cached, err := c.overlayCache.Get(name); err == nil {
			return orb.Clone(cached.(orb.Geometry)), nil
		}
	}

	sourceCenter := geo.BoundCenter(reference.Geometry())
	targetCenter := geo.BoundCenter(region.Geometry())

	overlay, err := geo.ScaleAndTranslate(reference.Geometry(), scale, sourceCenter, targetCenter)
	if err != nil {
		return nil, fmt.Errorf("failed to transform '%s' onto '%s': %w", reference.Name, name, err)
	}

	if c.overlayCache != nil {
		if err := c.overlayCache.Set(name, orb.Clone(overlay)); err != nil {
			c.logger.Warnf("failed to cache overlay for '%s': %v", name, err)
		}
	}

	return overlay, nil
}

// SelectCountry runs a full comparison for 'name'. Selecting the reference
// country resets instead. The previous overlay and highlight are always
// cleared. Only a selectable region with area data gets highlighted.
func (c *Comparator) SelectCountry(name string) Result {
	referenceName := c.registry.ReferenceName()
	if c.registry.IsReference(name) {
		return c.Reset()
	}

	c.statsCollector.AddSelection()

	c.overlay = nil
	c.selected = ""

	result := Result{}

	referenceArea, refOk := c.registry.Area(referenceName)
	otherArea, otherOk := c.registry.Area(name)
	if !refOk || !otherOk {
		c.logger.Warnf("missing area data for comparison: %s=%t %s=%t", referenceName, refOk, name, otherOk)
		c.statsCollector.AddNoData()
		result.Message = NoDataMessage(name)
		c.remember(name, result.Message)
		return result
	}

	if region := c.registry.Get(name); region != nil && region.Selectable() {
		c.selected = name
		result.HighlightedCountry = name
	}

	ratio := referenceArea / otherArea
	scale := math.Sqrt(otherArea / referenceArea)

	overlay, err := c.transformedReference(name, scale)
	if err != nil {
		c.logger.Errorf("comparison with '%s' failed: %v", name, err)
		result.Message = ErrorMessage(name)
		c.remember(name, result.Message)
		return result
	}

	c.overlay = overlay
	result.Overlay = overlay
	result.Ratio = null.FloatFrom(ratio)
	result.ScaleFactor = null.FloatFrom(scale)
	result.Message = RatioMessage(referenceName, name, ratio)
	c.remember(name, result.Message)

	if overlay == nil {
		c.logger.Infof("%s (no overlay: boundary missing)", result.Message)
	} else {
		c.logger.Infof("%s (scale factor %0.3f)", result.Message, scale)
	}

	return result
}

// HandlePointer feeds a pointer event on the named region through its
// disambiguator. A click runs SelectCountry and returns its result.
func (c *Comparator) HandlePointer(name string, ev interaction.Event) (interaction.Outcome, *Result, error) {
	region := c.registry.Get(name)
	if region == nil {
		return interaction.Outcome{}, nil, fmt.Errorf("%w: '%s'", ErrUnknownRegion, name)
	}

	outcome := region.Pointer.Handle(ev)

	if outcome.DragIgnored {
		c.statsCollector.AddDragIgnored()
		c.logger.Debugf("ignored drag on country: %s", name)
	}

	if !outcome.Selected || !region.Selectable() {
		outcome.Selected = false
		return outcome, nil, nil
	}

	result := c.SelectCountry(name)
	return outcome, &result, nil
}

func NewComparator(logger *logrus.Logger, config Config, reg *registry.Registry, statsCollector stats_collector.StatsCollector) *Comparator {
	if statsCollector == nil {
		statsCollector = stats_collector.NewNoopStatsCollector()
	}

	comparator := &Comparator{
		logger:         logger,
		registry:       reg,
		statsCollector: statsCollector,
		history:        NewHistory(config.HistoryLimit),
		now:            time.Now,
		message:        IdleMessage(reg.ReferenceName()),
		hovered:        make(map[string]bool),
	}

	if config.OverlayCacheSize > 0 {
		comparator.overlayCache = gcache.New(config.OverlayCacheSize).LRU().Build()
	}

	return comparator
}
