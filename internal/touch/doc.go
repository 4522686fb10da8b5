// Package touch tracks raw multi-touch input on a surface.
//
// The package sits directly above the platform. A platform adapter exposes
// an element as a Surface that delivers Events for four phases: start, move,
// cancel and end. A Binder attaches one listener per phase to a Surface and
// keeps a Session describing the touch in progress.
//
// # Sessions
//
// A Session records the contacts present at touch start, the start time and
// the number of fingers. The finger count is frozen at start: a move that
// reports a different number of contacts invalidates the session, as does a
// cancel. At lift-off a valid session whose lifting contact count equals the
// frozen finger count resolves into a Resolution holding per-finger
// displacement vectors and the elapsed duration.
//
//	b := touch.NewBinder(surface, func(r touch.Resolution) {
//	    fmt.Println(r.Fingers(), r.Duration)
//	})
//	b.Bind()
//	defer b.Unbind()
//
// Anything else produces no resolution. Mismatches are not errors; they
// simply suppress gesture recognition further up the stack.
//
// # Thread Safety
//
// Binder is safe for concurrent use. Platforms normally deliver events for
// one surface serially, so contention is not expected.
package touch
