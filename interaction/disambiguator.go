// Package interaction tells a click on a map region apart from a drag that
// happens to start on it. Without this, panning the map across a country
// boundary would select that country.
package interaction

import (
	"fmt"
	"math"
)

// DragThreshold is the pointer displacement, in screen pixels, at which a
// press turns into a drag.
const DragThreshold = 3.0

type State int

const (
	StateIdle State = iota
	StatePointerDown
	StateDragging
	// StateClickPending is never observed between events: a clean release
	// selects and returns to StateIdle immediately.
	StateClickPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePointerDown:
		return "pointer-down"
	case StateDragging:
		return "dragging"
	case StateClickPending:
		return "click-pending"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

func ParseEventType(s string) (EventType, error) {
	switch s {
	case "down":
		return PointerDown, nil
	case "move":
		return PointerMove, nil
	case "up":
		return PointerUp, nil
	case "cancel":
		return PointerCancel, nil
	}
	return 0, fmt.Errorf("unknown pointer event type '%s'", s)
}

// Event is a pointer event in screen pixels.
type Event struct {
	Type EventType
	X    float64
	Y    float64
}

// Outcome tells the caller what to do with the event.
//
// StopPropagation means the containing map must not see the event: it must
// not pan on a press that started on a region, and must not treat a
// selection as a background click. Selected means the region was clicked.
// DragIgnored is set when a press ends as a drag.
type Outcome struct {
	StopPropagation bool
	Selected        bool
	DragIgnored     bool
}

// Disambiguator is the per-region pointer state machine:
//
//	Idle -down-> PointerDown -move >= DragThreshold-> Dragging -up-> Idle
//	             PointerDown -up-> ClickPending (selects) -> Idle
//
// It is not safe for concurrent use; events are fed from one event loop.
type Disambiguator struct {
	state     State
	downX     float64
	downY     float64
	threshold float64
}

func (d *Disambiguator) State() State {
	return d.state
}

func (d *Disambiguator) displaced(x, y float64) bool {
	return math.Hypot(x-d.downX, y-d.downY) >= d.threshold
}

func (d *Disambiguator) Handle(ev Event) Outcome {
	switch ev.Type {
	case PointerDown:
		d.state = StatePointerDown
		d.downX, d.downY = ev.X, ev.Y
		return Outcome{StopPropagation: true}

	case PointerMove:
		if d.state == StatePointerDown && d.displaced(ev.X, ev.Y) {
			d.state = StateDragging
		}
		return Outcome{}

	case PointerUp:
		switch d.state {
		case StatePointerDown:
			if d.displaced(ev.X, ev.Y) {
				d.state = StateIdle
				return Outcome{DragIgnored: true}
			}
			// ClickPending resolves within this event
			d.state = StateIdle
			return Outcome{StopPropagation: true, Selected: true}
		case StateDragging:
			d.state = StateIdle
			return Outcome{DragIgnored: true}
		}
		d.state = StateIdle
		return Outcome{}

	case PointerCancel:
		d.Cancel()
	}
	return Outcome{}
}

// Cancel drops any press in progress, e.g. when the pointer leaves the map.
func (d *Disambiguator) Cancel() {
	d.state = StateIdle
}

func NewDisambiguator() *Disambiguator {
	return NewDisambiguatorWithThreshold(DragThreshold)
}

func NewDisambiguatorWithThreshold(threshold float64) *Disambiguator {
	if threshold <= 0 {
		threshold = DragThreshold
	}
	return &Disambiguator{threshold: threshold}
}
