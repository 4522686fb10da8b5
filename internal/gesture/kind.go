package gesture

import "fmt"

// Kind identifies a gesture.
type Kind uint8

const (
	// KindNone is the zero Kind and never matches.
	KindNone Kind = iota
	// KindTap is a short touch that stays in place.
	KindTap
	// KindSwipeLeft is a fast horizontal motion to the left.
	KindSwipeLeft
	// KindSwipeRight is a fast horizontal motion to the right.
	KindSwipeRight
	// KindSwipeUp is a fast vertical motion upwards.
	KindSwipeUp
	// KindSwipeDown is a fast vertical motion downwards.
	KindSwipeDown
)

// Kinds lists every recognizable gesture.
var Kinds = [...]Kind{KindTap, KindSwipeLeft, KindSwipeRight, KindSwipeUp, KindSwipeDown}

// String returns the hyphenated gesture name ("tap", "swipe-left", ...).
func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindSwipeLeft:
		return "swipe-left"
	case KindSwipeRight:
		return "swipe-right"
	case KindSwipeUp:
		return "swipe-up"
	case KindSwipeDown:
		return "swipe-down"
	default:
		return "none"
	}
}

// EventName returns the name of the event emitted for the gesture
// ("tap", "swipeleft", ...).
func (k Kind) EventName() string {
	if k == KindTap {
		return "tap"
	}
	if d := k.Direction(); d != None {
		return "swipe" + d.String()
	}
	return ""
}

// IsSwipe reports whether the kind is one of the four swipes.
func (k Kind) IsSwipe() bool {
	return k >= KindSwipeLeft && k <= KindSwipeDown
}

// Valid reports whether the kind is a recognizable gesture.
func (k Kind) Valid() bool {
	return k == KindTap || k.IsSwipe()
}

// Direction returns the swipe direction of the kind, or None.
func (k Kind) Direction() Direction {
	switch k {
	case KindSwipeLeft:
		return Left
	case KindSwipeRight:
		return Right
	case KindSwipeUp:
		return Up
	case KindSwipeDown:
		return Down
	default:
		return None
	}
}

// ParseKind parses a gesture name. It accepts the hyphenated form
// ("swipe-left"), the event name ("swipeleft") and "tap".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "tap":
		return KindTap, nil
	case "swipe-left", "swipeleft":
		return KindSwipeLeft, nil
	case "swipe-right", "swiperight":
		return KindSwipeRight, nil
	case "swipe-up", "swipeup":
		return KindSwipeUp, nil
	case "swipe-down", "swipedown":
		return KindSwipeDown, nil
	}
	return KindNone, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Direction is the direction of a swipe.
type Direction uint8

const (
	// None means no swipe direction could be established.
	None Direction = iota
	// Left is a swipe towards decreasing X.
	Left
	// Right is a swipe towards increasing X.
	Right
	// Up is a swipe towards decreasing Y.
	Up
	// Down is a swipe towards increasing Y.
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Kind returns the swipe kind for the direction, or KindNone.
func (d Direction) Kind() Kind {
	switch d {
	case Left:
		return KindSwipeLeft
	case Right:
		return KindSwipeRight
	case Up:
		return KindSwipeUp
	case Down:
		return KindSwipeDown
	default:
		return KindNone
	}
}

// ParseDirection parses "left", "right", "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Key identifies a binding on a surface.
type Key struct {
	Kind    Kind
	Fingers int
}

// String returns "kind/fingers", e.g. "swipe-left/2".
func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Kind, k.Fingers)
}
