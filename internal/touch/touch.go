package touch

import (
	"math"
	"time"
)

// Point is a position in surface coordinates (CSS pixels on the web).
type Point struct {
	X float64
	Y float64
}

// Sub returns the displacement from other to p.
func (p Point) Sub(other Point) Vector {
	return Vector{X: p.X - other.X, Y: p.Y - other.Y}
}

// Vector is a displacement between two points.
type Vector struct {
	X float64
	Y float64
}

// Abs returns the vector with both components made non-negative.
func (v Vector) Abs() Vector {
	return Vector{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Contact is a single point of contact on a surface.
type Contact struct {
	// ID identifies the contact for the lifetime of one finger on the glass.
	ID int

	// Position is the contact location.
	Position Point
}

// Phase is the low-level touch phase an event belongs to.
type Phase uint8

const (
	// PhaseStart is delivered when one or more contacts land.
	PhaseStart Phase = iota
	// PhaseMove is delivered when contacts move.
	PhaseMove
	// PhaseCancel is delivered when the platform aborts the touch.
	PhaseCancel
	// PhaseEnd is delivered when contacts lift off.
	PhaseEnd
)

// Phases lists every phase in delivery order.
var Phases = [...]Phase{PhaseStart, PhaseMove, PhaseCancel, PhaseEnd}

// String returns the DOM event name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "touchstart"
	case PhaseMove:
		return "touchmove"
	case PhaseCancel:
		return "touchcancel"
	case PhaseEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// Short returns the phase name without the "touch" prefix.
func (p Phase) Short() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseCancel:
		return "cancel"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// ParsePhase parses a phase name. Both the short form ("start") and the DOM
// event name ("touchstart") are accepted.
func ParsePhase(s string) (Phase, bool) {
	switch s {
	case "start", "touchstart":
		return PhaseStart, true
	case "move", "touchmove":
		return PhaseMove, true
	case "cancel", "touchcancel":
		return PhaseCancel, true
	case "end", "touchend":
		return PhaseEnd, true
	}
	return 0, false
}

// PhaseSet is a set of phases.
type PhaseSet uint8

// Has reports whether p is in the set.
func (s PhaseSet) Has(p Phase) bool {
	return s&(1<<p) != 0
}

// With returns the set with p added.
func (s PhaseSet) With(p Phase) PhaseSet {
	return s | 1<<p
}

// Without returns the set with p removed.
func (s PhaseSet) Without(p Phase) PhaseSet {
	return s &^ (1 << p)
}

// Len returns the number of phases in the set.
func (s PhaseSet) Len() int {
	n := 0
	for _, p := range Phases {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// AllPhases is the set holding every phase.
const AllPhases PhaseSet = 1<<PhaseStart | 1<<PhaseMove | 1<<PhaseCancel | 1<<PhaseEnd

// Event is a native touch event translated by a platform adapter.
//
// For PhaseStart and PhaseMove, Contacts holds every contact currently on
// the surface. For PhaseEnd it holds the contacts that lifted. Contacts is
// ignored for PhaseCancel.
type Event struct {
	Phase    Phase
	Contacts []Contact

	// Target is the platform object the event was originally aimed at.
	Target any

	// Time is when the platform observed the event.
	Time time.Time
}

// Listener receives touch events for one phase.
type Listener func(Event)

// Surface is an element that can deliver touch events.
//
// Attach registers fn for one phase and returns a function that removes it.
// Implementations must tolerate the detach function being called more than
// once.
type Surface interface {
	Attach(phase Phase, fn Listener) (detach func())
}
