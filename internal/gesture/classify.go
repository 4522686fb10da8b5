package gesture

import (
	"time"

	"github.com/dshills/touchgesture/internal/touch"
)

// ClassifySwipe returns the direction every finger agrees on, or None.
func ClassifySwipe(dist []touch.Vector, elapsed time.Duration, c Constraints) Direction {
	if elapsed >= c.Duration || len(dist) == 0 {
		return None
	}

	direction := None
	for i, d := range dist {
		dir := swipeDirection(d, c)
		if i > 0 && dir != direction {
			return None
		}
		direction = dir
		if direction == None {
			return None
		}
	}
	return direction
}

// swipeDirection classifies a single finger.
func swipeDirection(d touch.Vector, c Constraints) Direction {
	a := d.Abs()
	switch {
	case a.X >= c.Threshold && a.Y < c.Restraint:
		if d.X < 0 {
			return Left
		}
		return Right
	case a.Y >= c.Threshold && a.X < c.Restraint:
		if d.Y < 0 {
			return Up
		}
		return Down
	default:
		return None
	}
}

// IsTap reports whether every finger stayed within the threshold on both
// axes for less than the configured duration.
func IsTap(dist []touch.Vector, elapsed time.Duration, c Constraints) bool {
	if elapsed >= c.Duration || len(dist) == 0 {
		return false
	}

	for _, d := range dist {
		a := d.Abs()
		if a.X > c.Threshold || a.Y > c.Threshold {
			return false
		}
	}
	return true
}

// Classify reports whether a resolution matches kind under c. The finger
// count is not checked here.
func Classify(kind Kind, res touch.Resolution, c Constraints) bool {
	switch {
	case kind == KindTap:
		return IsTap(res.Dist, res.Duration, c)
	case kind.IsSwipe():
		return ClassifySwipe(res.Dist, res.Duration, c) == kind.Direction()
	default:
		return false
	}
}
