package gesture

import (
	"time"

	"github.com/dshills/touchgesture/internal/touch"
)

// Callback is invoked when a binding's classifier matches.
type Callback func(g *Gesture)

// Gesture is the detail handed to a matching binding's callback.
type Gesture struct {
	// Kind is the gesture that matched.
	Kind Kind

	// Fingers is the number of fingers that took part.
	Fingers int

	// DistX and DistY hold the per-finger displacement in slot order.
	DistX []float64
	DistY []float64

	// Duration is the time from touch start to lift-off.
	Duration time.Duration

	// Target is the platform object the lift-off was aimed at.
	Target any

	// Surface is the surface the binding is registered on.
	Surface touch.Surface

	// Handled is true when the callback starts. Clearing it lets the
	// gesture fall through to the next binding.
	Handled bool

	deferred  bool
	cancelled bool
}

// Name returns the event name of the gesture ("tap", "swiperight", ...).
func (g *Gesture) Name() string {
	return g.Kind.EventName()
}

// Defer declines the gesture so that lower-priority bindings on the same
// surface are evaluated.
func (g *Gesture) Defer() {
	g.deferred = true
}

// Deferred reports whether Defer was called.
func (g *Gesture) Deferred() bool {
	return g.deferred
}

// Cancel stops propagation to lower-priority bindings, even if the gesture
// is no longer marked handled.
func (g *Gesture) Cancel() {
	g.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (g *Gesture) Cancelled() bool {
	return g.cancelled
}

// Claimed reports whether the gesture stops the dispatch chain.
func (g *Gesture) Claimed() bool {
	return g.cancelled || (g.Handled && !g.deferred)
}

func newGesture(kind Kind, surface touch.Surface, res touch.Resolution) *Gesture {
	return &Gesture{
		Kind:     kind,
		Fingers:  res.Fingers(),
		DistX:    res.DistX(),
		DistY:    res.DistY(),
		Duration: res.Duration,
		Target:   res.Target,
		Surface:  surface,
		Handled:  true,
	}
}

// Binding is a registered interest in one gesture on one surface.
type Binding struct {
	Key         Key
	Constraints Constraints
	Callback    Callback
}

// Matches reports whether the binding's classifier accepts res.
func (b Binding) Matches(res touch.Resolution) bool {
	if b.Key.Fingers == 0 || b.Key.Fingers != res.Fingers() {
		return false
	}
	return Classify(b.Key.Kind, res, b.Constraints)
}
