package gesture

import "time"

// Limits on the finger count of a binding.
const (
	MinFingers = 0
	MaxFingers = 5
)

// Default classification constraints.
const (
	DefaultSwipeThreshold = 150.0
	DefaultSwipeRestraint = 50.0
	DefaultSwipeDuration  = 300 * time.Millisecond

	DefaultTapThreshold = 2.0
	DefaultTapDuration  = 300 * time.Millisecond

	DefaultFingers = 1
)

// Constraints bound the motion a binding accepts.
type Constraints struct {
	// Threshold is the minimum travel along the primary axis for a swipe,
	// or the maximum travel on either axis for a tap, in pixels.
	Threshold float64

	// Restraint is the maximum travel along the secondary axis of a swipe.
	// Taps ignore it.
	Restraint float64

	// Duration is the exclusive upper bound on the touch duration.
	Duration time.Duration
}

// DefaultSwipeConstraints returns the default swipe constraints.
func DefaultSwipeConstraints() Constraints {
	return Constraints{
		Threshold: DefaultSwipeThreshold,
		Restraint: DefaultSwipeRestraint,
		Duration:  DefaultSwipeDuration,
	}
}

// DefaultTapConstraints returns the default tap constraints.
func DefaultTapConstraints() Constraints {
	return Constraints{
		Threshold: DefaultTapThreshold,
		Duration:  DefaultTapDuration,
	}
}

// DefaultConstraints returns the defaults for kind.
func DefaultConstraints(kind Kind) Constraints {
	if kind == KindTap {
		return DefaultTapConstraints()
	}
	return DefaultSwipeConstraints()
}

// Or returns c with every zero field replaced by the matching field of def.
func (c Constraints) Or(def Constraints) Constraints {
	if c.Threshold == 0 {
		c.Threshold = def.Threshold
	}
	if c.Restraint == 0 {
		c.Restraint = def.Restraint
	}
	if c.Duration == 0 {
		c.Duration = def.Duration
	}
	return c
}

// Option adjusts a registration.
type Option func(*registration)

type registration struct {
	constraints Constraints
	fingers     int
}

// WithDuration sets the maximum touch duration. Zero keeps the default.
func WithDuration(d time.Duration) Option {
	return func(r *registration) {
		r.constraints.Duration = d
	}
}

// WithThreshold sets the threshold in pixels. Zero keeps the default.
func WithThreshold(px float64) Option {
	return func(r *registration) {
		r.constraints.Threshold = px
	}
}

// WithRestraint sets the swipe restraint in pixels. Zero keeps the default.
func WithRestraint(px float64) Option {
	return func(r *registration) {
		r.constraints.Restraint = px
	}
}

// WithFingers sets the finger count. Values outside [0,5] reject the
// registration.
func WithFingers(n int) Option {
	return func(r *registration) {
		r.fingers = n
	}
}

// WithConstraints sets all constraints at once.
func WithConstraints(c Constraints) Option {
	return func(r *registration) {
		r.constraints = c
	}
}

func validFingers(n int) bool {
	return n >= MinFingers && n <= MaxFingers
}
