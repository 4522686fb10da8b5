package config

import (
	"time"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/logging"
)

// Profile is a decoded gesture profile.
type Profile struct {
	// LogLevel is the log level requested by the profile, if any.
	LogLevel string `json:"log_level,omitempty"`

	// Swipe overrides the default swipe constraints.
	Swipe Constraints `json:"swipe"`

	// Tap overrides the default tap constraints.
	Tap Constraints `json:"tap"`

	// Bindings lists the gestures to register, in priority order.
	Bindings []Binding `json:"bindings,omitempty"`

	// Path is the file the profile was loaded from.
	Path string `json:"-"`
}

// Constraints is the file form of gesture.Constraints.
type Constraints struct {
	// Duration is the time limit in milliseconds.
	Duration int64 `json:"duration,omitempty"`

	// Threshold is the distance threshold in pixels.
	Threshold float64 `json:"threshold,omitempty"`

	// Restraint is the swipe restraint in pixels.
	Restraint float64 `json:"restraint,omitempty"`
}

// ToGesture converts c. Zero fields stay zero.
func (c Constraints) ToGesture() gesture.Constraints {
	return gesture.Constraints{
		Threshold: c.Threshold,
		Restraint: c.Restraint,
		Duration:  time.Duration(c.Duration) * time.Millisecond,
	}
}

// Binding is one gesture registration.
type Binding struct {
	Surface string `json:"surface"`
	Gesture string `json:"gesture"`

	// Fingers defaults to one when omitted. Zero registers a binding that
	// never matches.
	Fingers *int `json:"fingers,omitempty"`

	// Action is passed to the action handler when the gesture fires.
	Action string `json:"action"`

	Constraints
}

// Kind returns the gesture kind of b.
func (b Binding) Kind() (gesture.Kind, error) {
	return gesture.ParseKind(b.Gesture)
}

// FingerCount returns the finger count of b.
func (b Binding) FingerCount() int {
	if b.Fingers == nil {
		return gesture.DefaultFingers
	}
	return *b.Fingers
}

// Default returns an empty profile.
func Default() *Profile {
	return &Profile{}
}

// Level returns the log level of the profile, or fallback when none is set.
func (p *Profile) Level(fallback logging.Level) logging.Level {
	if p.LogLevel == "" {
		return fallback
	}
	return logging.ParseLevel(p.LogLevel)
}

// SwipeConstraints returns the profile-wide swipe constraints with the
// built-in defaults filled in.
func (p *Profile) SwipeConstraints() gesture.Constraints {
	return p.Swipe.ToGesture().Or(gesture.DefaultSwipeConstraints())
}

// TapConstraints returns the profile-wide tap constraints with the built-in
// defaults filled in.
func (p *Profile) TapConstraints() gesture.Constraints {
	return p.Tap.ToGesture().Or(gesture.DefaultTapConstraints())
}

// ConstraintsFor returns the effective constraints of b.
func (p *Profile) ConstraintsFor(b Binding) (gesture.Constraints, error) {
	kind, err := b.Kind()
	if err != nil {
		return gesture.Constraints{}, err
	}
	if kind == gesture.KindTap {
		return b.Constraints.ToGesture().Or(p.TapConstraints()), nil
	}
	return b.Constraints.ToGesture().Or(p.SwipeConstraints()), nil
}
