// Package nav drives a collapsible navigation panel from gestures on the
// content surface.
//
// A swipe right opens the panel. A swipe left or a tap closes it; when the
// panel is already closed, or the tap landed inside the panel itself, the
// gesture is deferred so other bindings on the surface can take it.
package nav

import (
	"errors"
	"sync"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/touch"
)

// Action names understood by Nav.Action.
const (
	ActionShow   = "nav.show"
	ActionHide   = "nav.hide"
	ActionToggle = "nav.toggle"
)

// Nav is the open/closed state of a navigation panel.
type Nav struct {
	mu       sync.Mutex
	shown    bool
	inside   func(target any) bool
	onChange func(shown bool)
	logger   *logging.Logger
}

// Option configures a Nav.
type Option func(*Nav)

// WithInside reports whether a gesture target lies within the panel.
// Gestures aimed inside the open panel do not close it.
func WithInside(fn func(target any) bool) Option {
	return func(n *Nav) {
		n.inside = fn
	}
}

// WithOnChange is called after every state change, outside the lock.
func WithOnChange(fn func(shown bool)) Option {
	return func(n *Nav) {
		n.onChange = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(n *Nav) {
		if l != nil {
			n.logger = l
		}
	}
}

// New returns a closed Nav.
func New(opts ...Option) *Nav {
	n := &Nav{logger: logging.Null}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.WithComponent("nav")
	return n
}

// Shown reports whether the panel is open.
func (n *Nav) Shown() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shown
}

// Show opens the panel. Opening an open panel still claims the gesture.
func (n *Nav) Show(g *gesture.Gesture) {
	n.set(true)
}

// Hide closes the panel, or defers g when the panel is closed or g was
// aimed inside it.
func (n *Nav) Hide(g *gesture.Gesture) {
	n.mu.Lock()
	skip := !n.shown || (g != nil && n.inside != nil && n.inside(g.Target))
	n.mu.Unlock()

	if skip {
		if g != nil {
			g.Defer()
		}
		return
	}
	n.set(false)
}

// Toggle flips the panel state.
func (n *Nav) Toggle(g *gesture.Gesture) {
	if n.Shown() {
		n.Hide(g)
		return
	}
	n.Show(g)
}

// Action runs the named action. Unknown actions defer the gesture. It has
// the shape of a profile action handler.
func (n *Nav) Action(action string, g *gesture.Gesture) {
	switch action {
	case ActionShow:
		n.Show(g)
	case ActionHide:
		n.Hide(g)
	case ActionToggle:
		n.Toggle(g)
	default:
		n.logger.Debug("ignoring action %q", action)
		if g != nil {
			g.Defer()
		}
	}
}

// Bind registers the default one-finger bindings on content: swipe right
// shows, swipe left and tap hide.
func (n *Nav) Bind(reg *gesture.Registry, content touch.Surface) error {
	return errors.Join(
		reg.RegisterSwipe(content, gesture.Right, n.Show),
		reg.RegisterSwipe(content, gesture.Left, n.Hide),
		reg.RegisterTap(content, n.Hide),
	)
}

func (n *Nav) set(shown bool) {
	n.mu.Lock()
	changed := n.shown != shown
	n.shown = shown
	n.mu.Unlock()

	if !changed {
		return
	}
	n.logger.Debug("shown=%t", shown)
	if n.onChange != nil {
		n.onChange(shown)
	}
}
