package touch

import "time"

// Session is the record of one contiguous touch on a surface.
type Session struct {
	// Start holds the contacts captured at touch start, in slot order.
	Start []Contact

	// StartTime is when the touch started.
	StartTime time.Time

	// Fingers is the contact count frozen at touch start. Zero means the
	// session is invalid and will not resolve.
	Fingers int
}

// Resolution is the result of a valid lift-off.
type Resolution struct {
	// Dist holds the displacement of each finger, in slot order.
	Dist []Vector

	// Duration is the time between touch start and lift-off.
	Duration time.Duration

	// Target is the platform target of the lift-off event.
	Target any
}

// Fingers returns the number of fingers that took part in the touch.
func (r Resolution) Fingers() int {
	return len(r.Dist)
}

// DistX returns the horizontal displacement of every finger.
func (r Resolution) DistX() []float64 {
	out := make([]float64, len(r.Dist))
	for i, d := range r.Dist {
		out[i] = d.X
	}
	return out
}

// DistY returns the vertical displacement of every finger.
func (r Resolution) DistY() []float64 {
	out := make([]float64, len(r.Dist))
	for i, d := range r.Dist {
		out[i] = d.Y
	}
	return out
}

// Valid reports whether the session can still resolve.
func (s *Session) Valid() bool {
	return s.Fingers > 0
}

// Begin starts a new session from a start event, discarding any prior one.
func (s *Session) Begin(ev Event) {
	s.Start = append(s.Start[:0], ev.Contacts...)
	s.StartTime = eventTime(ev)
	s.Fingers = len(ev.Contacts)
}

// Observe checks a move event against the frozen finger count.
func (s *Session) Observe(ev Event) {
	if len(ev.Contacts) != s.Fingers {
		s.Invalidate()
	}
}

// Invalidate marks the session so that lift-off produces nothing.
func (s *Session) Invalidate() {
	s.Fingers = 0
}

// Resolve consumes the session at lift-off. It returns false when the
// session is invalid or the number of lifting contacts differs from the
// frozen finger count.
func (s *Session) Resolve(ev Event) (Resolution, bool) {
	if !s.Valid() || len(ev.Contacts) != s.Fingers {
		s.Invalidate()
		return Resolution{}, false
	}

	byID := uniqueIDs(s.Start) && uniqueIDs(ev.Contacts)
	dist := make([]Vector, len(ev.Contacts))
	for i, c := range ev.Contacts {
		dist[i] = c.Position.Sub(s.startOf(c, i, byID))
	}

	elapsed := eventTime(ev).Sub(s.StartTime)
	if elapsed < 0 {
		elapsed = 0
	}

	s.Invalidate()
	return Resolution{
		Dist:     dist,
		Duration: elapsed,
		Target:   ev.Target,
	}, true
}

// startOf finds the start position for a lifting contact. With byID the
// contact is matched by ID and falls back to its slot when no start
// contact has that ID.
func (s *Session) startOf(c Contact, slot int, byID bool) Point {
	if byID {
		for _, st := range s.Start {
			if st.ID == c.ID {
				return st.Position
			}
		}
	}
	if slot < len(s.Start) {
		return s.Start[slot].Position
	}
	return c.Position
}

// uniqueIDs reports whether contact IDs can tell the contacts apart.
func uniqueIDs(cs []Contact) bool {
	for i := range cs {
		for j := i + 1; j < len(cs); j++ {
			if cs[i].ID == cs[j].ID {
				return false
			}
		}
	}
	return true
}

func eventTime(ev Event) time.Time {
	if ev.Time.IsZero() {
		return time.Now()
	}
	return ev.Time
}
