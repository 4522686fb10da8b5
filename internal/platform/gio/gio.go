// Package gio adapts Gio pointer input to touch surfaces.
//
// An Area is laid out around a widget like any other Gio component. It
// collects the touch pointer events delivered to it and translates them:
// a press starts a touch with every pointer currently down, drags become
// moves, and the touch ends once the last pointer is released. Released
// pointers keep their final position until then.
package gio

import (
	"image"
	"sort"
	"sync"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"

	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

// epoch anchors pointer event times, which Gio reports as offsets.
var epoch = time.Unix(0, 0)

// Area is a Gio region that acts as a touch surface.
type Area struct {
	*sim.Surface

	mu      sync.Mutex
	mouse   bool
	scale   float32
	down    map[pointer.ID]*contact
	lifted  []touch.Contact
	pressed uint64
}

type contact struct {
	c     touch.Contact
	order uint64
}

// Option configures an Area.
type Option func(*Area)

// WithMouse lets a mouse pointer act as a single finger.
func WithMouse() Option {
	return func(a *Area) {
		a.mouse = true
	}
}

// NewArea creates a named area.
func NewArea(name string, opts ...Option) *Area {
	a := &Area{
		Surface: sim.NewSurface(name),
		scale:   1,
		down:    make(map[pointer.ID]*contact),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Layout handles pending pointer events, lays out w and registers the
// area for input over w's bounds. Positions are reported in dp.
func (a *Area) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	a.mu.Lock()
	if gtx.Metric.PxPerDp > 0 {
		a.scale = gtx.Metric.PxPerDp
	}
	a.mu.Unlock()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			a.Handle(e)
		}
	}

	dims := w(gtx)
	defer clip.Rect(image.Rectangle{Max: dims.Size}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, a)
	return dims
}

// Handle translates a single pointer event.
func (a *Area) Handle(e pointer.Event) {
	if e.Kind == pointer.Cancel {
		a.cancel(e)
		return
	}
	if !a.accepts(e.Source) {
		return
	}

	a.mu.Lock()
	at := epoch.Add(e.Time)
	pos := a.point(e)

	var ev touch.Event
	switch e.Kind {
	case pointer.Press:
		a.pressed++
		a.down[e.PointerID] = &contact{
			c:     touch.Contact{ID: int(e.PointerID), Position: pos},
			order: a.pressed,
		}
		ev = touch.Event{Phase: touch.PhaseStart, Contacts: a.contacts()}

	case pointer.Drag:
		p, ok := a.down[e.PointerID]
		if !ok {
			a.mu.Unlock()
			return
		}
		p.c.Position = pos
		ev = touch.Event{Phase: touch.PhaseMove, Contacts: a.contacts()}

	case pointer.Release:
		p, ok := a.down[e.PointerID]
		if !ok {
			a.mu.Unlock()
			return
		}
		p.c.Position = pos
		a.lifted = append(a.lifted, p.c)
		delete(a.down, e.PointerID)
		if len(a.down) > 0 {
			a.mu.Unlock()
			return
		}
		ev = touch.Event{Phase: touch.PhaseEnd, Contacts: a.lifted}
		a.lifted = nil

	default:
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	ev.Target = a
	ev.Time = at
	a.Dispatch(ev)
}

// Down returns the number of pointers currently down.
func (a *Area) Down() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.down)
}

func (a *Area) cancel(e pointer.Event) {
	a.mu.Lock()
	active := len(a.down) > 0 || len(a.lifted) > 0
	a.down = make(map[pointer.ID]*contact)
	a.lifted = nil
	a.mu.Unlock()

	if active {
		a.Dispatch(touch.Event{Phase: touch.PhaseCancel, Target: a, Time: epoch.Add(e.Time)})
	}
}

func (a *Area) accepts(src pointer.Source) bool {
	return src == pointer.Touch || (a.mouse && src == pointer.Mouse)
}

// point converts a pixel position to dp. The caller holds a.mu.
func (a *Area) point(e pointer.Event) touch.Point {
	return touch.Point{
		X: float64(e.Position.X / a.scale),
		Y: float64(e.Position.Y / a.scale),
	}
}

// contacts returns the down pointers in press order. The caller holds a.mu.
func (a *Area) contacts() []touch.Contact {
	list := make([]*contact, 0, len(a.down))
	for _, p := range a.down {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })

	out := make([]touch.Contact, len(list))
	for i, p := range list {
		out[i] = p.c
	}
	return out
}
