// Package term turns terminal mouse input into touch events.
//
// The screen is divided into named panes. Each pane is a touch surface, so
// gestures can be registered on it like on any other element. A drag with
// the primary button acts as a one-finger touch on the pane under the
// press: press, drag and release become start, move and end. The pane
// keeps the touch until release even if the pointer leaves it. A resize
// during a drag cancels the touch.
//
// Terminal cells are much larger than screen pixels, so positions are
// scaled by a configurable cell size before they reach the classifiers.
package term
