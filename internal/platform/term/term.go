package term

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

// Config configures coordinate scaling.
type Config struct {
	// CellWidth is the width of a cell in pixels.
	CellWidth float64

	// CellHeight is the height of a cell in pixels.
	CellHeight float64
}

// DefaultConfig returns the cell size of a typical terminal font.
func DefaultConfig() Config {
	return Config{
		CellWidth:  8,
		CellHeight: 16,
	}
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Pane is a named screen region that acts as a touch surface.
type Pane struct {
	*sim.Surface

	mu   sync.Mutex
	rect Rect
}

// Rect returns the pane bounds.
func (p *Pane) Rect() Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rect
}

// SetRect moves or resizes the pane.
func (p *Pane) SetRect(r Rect) {
	p.mu.Lock()
	p.rect = r
	p.mu.Unlock()
}

// Router routes tcell mouse events to panes.
type Router struct {
	mu     sync.Mutex
	config Config
	panes  []*Pane
	drag   dragTracker
	now    func() time.Time
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithClock overrides the event timestamps. Without it the tcell event
// time is used.
func WithClock(now func() time.Time) RouterOption {
	return func(r *Router) {
		r.now = now
	}
}

// NewRouter creates a router with no panes.
func NewRouter(config Config, opts ...RouterOption) *Router {
	if config.CellWidth <= 0 || config.CellHeight <= 0 {
		config = DefaultConfig()
	}
	r := &Router{config: config}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddPane adds a pane on top of the existing ones.
func (r *Router) AddPane(name string, rect Rect) *Pane {
	p := &Pane{Surface: sim.NewSurface(name), rect: rect}

	r.mu.Lock()
	r.panes = append(r.panes, p)
	r.mu.Unlock()
	return p
}

// Pane returns the pane with the given name.
func (r *Router) Pane(name string) (*Pane, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.panes {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Panes returns every pane, bottom first.
func (r *Router) Panes() []*Pane {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Pane(nil), r.panes...)
}

// Resolve implements touch.Resolver.
func (r *Router) Resolve(name string) (touch.Surface, error) {
	if p, ok := r.Pane(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", touch.ErrUnknownSurface, name)
}

// Dragging reports whether a touch is in progress.
func (r *Router) Dragging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drag.isActive()
}

// HandleEvent translates ev. It reports whether the event was consumed as
// part of a touch.
func (r *Router) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return r.handleMouse(e)
	case *tcell.EventResize:
		return r.cancel(r.timeOf(e))
	default:
		return false
	}
}

func (r *Router) handleMouse(e *tcell.EventMouse) bool {
	x, y := e.Position()
	pos := position{X: x, Y: y}
	held := e.Buttons()&tcell.Button1 != 0
	at := r.timeOf(e)

	r.mu.Lock()
	switch {
	case held && !r.drag.isActive():
		pane := r.paneAt(x, y)
		if pane == nil {
			r.mu.Unlock()
			return false
		}
		r.drag.start(pane, pos)
		r.mu.Unlock()
		r.deliver(pane, touch.PhaseStart, pos, at)
		return true

	case held:
		pane := r.drag.pane
		moved := r.drag.update(pos)
		r.mu.Unlock()
		if moved {
			r.deliver(pane, touch.PhaseMove, pos, at)
		}
		return true

	case r.drag.isActive():
		pane := r.drag.pane
		r.drag.end()
		r.mu.Unlock()
		r.deliver(pane, touch.PhaseEnd, pos, at)
		return true

	default:
		r.mu.Unlock()
		return false
	}
}

func (r *Router) cancel(at time.Time) bool {
	r.mu.Lock()
	if !r.drag.isActive() {
		r.mu.Unlock()
		return false
	}
	pane := r.drag.pane
	r.drag.end()
	r.mu.Unlock()

	pane.Dispatch(touch.Event{Phase: touch.PhaseCancel, Target: pane, Time: at})
	return true
}

// paneAt returns the topmost pane containing the cell. The caller holds
// r.mu.
func (r *Router) paneAt(x, y int) *Pane {
	for i := len(r.panes) - 1; i >= 0; i-- {
		if r.panes[i].Rect().Contains(x, y) {
			return r.panes[i]
		}
	}
	return nil
}

func (r *Router) deliver(pane *Pane, phase touch.Phase, pos position, at time.Time) {
	pane.Dispatch(touch.Event{
		Phase:    phase,
		Contacts: []touch.Contact{{Position: r.pixels(pos)}},
		Target:   pane,
		Time:     at,
	})
}

// pixels converts a cell position to the pixel at the cell centre.
func (r *Router) pixels(pos position) touch.Point {
	return touch.Point{
		X: (float64(pos.X) + 0.5) * r.config.CellWidth,
		Y: (float64(pos.Y) + 0.5) * r.config.CellHeight,
	}
}

func (r *Router) timeOf(ev tcell.Event) time.Time {
	if r.now != nil {
		return r.now()
	}
	return ev.When()
}
