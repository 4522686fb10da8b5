// Package gesture recognizes taps and swipes on touch surfaces.
//
// A Registry keeps, for every surface, an ordered list of Bindings. Each
// binding names a gesture Kind, a finger count, the Constraints used to
// classify the touch and a Callback. The first registration on a surface
// binds a touch.Binder; removing the last binding unbinds it again, so a
// surface nobody is interested in carries no listeners.
//
//	reg := gesture.NewRegistry()
//	reg.RegisterSwipe(content, gesture.Right, func(g *gesture.Gesture) {
//	    showNav()
//	})
//	reg.RegisterTap(content, func(g *gesture.Gesture) {
//	    if !navVisible() {
//	        g.Defer()
//	        return
//	    }
//	    hideNav()
//	})
//
// # Classification
//
// ClassifySwipe and IsTap are pure functions over per-finger displacement
// vectors and the touch duration. Touches at or above the configured
// duration never match. Multi-finger swipes must agree on a direction for
// every finger.
//
// # Dispatch
//
// At lift-off the bindings of the surface are evaluated in registration
// order. A binding whose classifier does not match is skipped. A matching
// binding's callback receives a *Gesture that is already marked handled;
// the callback may Defer to let lower-priority bindings see the touch, or
// Cancel to stop propagation outright. The first binding that keeps the
// gesture handled wins.
//
// Bindings with the same Kind and finger count replace each other. Finger
// counts outside [0,5] and unknown directions are rejected without changing
// any state. A finger count of zero is accepted and matches nothing.
package gesture
