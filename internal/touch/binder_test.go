package touch

import (
	"testing"
	"time"
)

// fakeSurface records attached listeners per phase.
type fakeSurface struct {
	listeners map[Phase][]Listener
	attaches  int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{listeners: make(map[Phase][]Listener)}
}

func (f *fakeSurface) Attach(p Phase, fn Listener) func() {
	f.attaches++
	f.listeners[p] = append(f.listeners[p], fn)
	idx := len(f.listeners[p]) - 1
	return func() {
		if idx < len(f.listeners[p]) {
			f.listeners[p][idx] = nil
		}
	}
}

func (f *fakeSurface) fire(ev Event) {
	for _, fn := range f.listeners[ev.Phase] {
		if fn != nil {
			fn(ev)
		}
	}
}

func (f *fakeSurface) live() int {
	n := 0
	for _, list := range f.listeners {
		for _, fn := range list {
			if fn != nil {
				n++
			}
		}
	}
	return n
}

func TestBinderBindIsIdempotent(t *testing.T) {
	surf := newFakeSurface()
	b := NewBinder(surf, nil)

	b.Bind()
	b.Bind()

	if surf.attaches != 4 {
		t.Errorf("attaches = %d, want 4", surf.attaches)
	}
	if b.Attached() != AllPhases {
		t.Errorf("Attached() = %08b, want %08b", b.Attached(), AllPhases)
	}
	if !b.Bound() {
		t.Error("Bound() = false after Bind")
	}
}

func TestBinderUnbindDetaches(t *testing.T) {
	surf := newFakeSurface()
	b := NewBinder(surf, nil)

	b.Bind()
	b.Unbind()
	b.Unbind()

	if n := surf.live(); n != 0 {
		t.Errorf("live listeners = %d after Unbind, want 0", n)
	}
	if b.Bound() {
		t.Error("Bound() = true after Unbind")
	}
	if _, started := b.Session(); started {
		t.Error("session reported as started after Unbind")
	}
}

func TestBinderResolves(t *testing.T) {
	surf := newFakeSurface()
	var got []Resolution
	b := NewBinder(surf, func(r Resolution) { got = append(got, r) })
	b.Bind()

	start := time.Unix(0, 0)
	surf.fire(Event{Phase: PhaseStart, Contacts: []Contact{contact(0, 100, 100)}, Time: start})
	surf.fire(Event{Phase: PhaseMove, Contacts: []Contact{contact(0, 200, 102)}, Time: start.Add(100 * time.Millisecond)})
	surf.fire(Event{Phase: PhaseEnd, Contacts: []Contact{contact(0, 300, 105)}, Time: start.Add(200 * time.Millisecond)})

	if len(got) != 1 {
		t.Fatalf("resolutions = %d, want 1", len(got))
	}
	if got[0].Dist[0] != (Vector{X: 200, Y: 5}) {
		t.Errorf("Dist = %+v", got[0].Dist)
	}
}

func TestBinderFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{
			name: "cancel",
			events: []Event{
				{Phase: PhaseStart, Contacts: []Contact{contact(0, 0, 0)}},
				{Phase: PhaseCancel},
				{Phase: PhaseEnd, Contacts: []Contact{contact(0, 0, 0)}},
			},
		},
		{
			name: "finger added during move",
			events: []Event{
				{Phase: PhaseStart, Contacts: []Contact{contact(0, 0, 0)}},
				{Phase: PhaseMove, Contacts: []Contact{contact(0, 0, 0), contact(1, 5, 5)}},
				{Phase: PhaseEnd, Contacts: []Contact{contact(0, 0, 0)}},
			},
		},
		{
			name: "end without start",
			events: []Event{
				{Phase: PhaseEnd, Contacts: []Contact{contact(0, 0, 0)}},
			},
		},
		{
			name: "two fingers lift separately",
			events: []Event{
				{Phase: PhaseStart, Contacts: []Contact{contact(0, 0, 0), contact(1, 9, 9)}},
				{Phase: PhaseEnd, Contacts: []Contact{contact(0, 0, 0)}},
				{Phase: PhaseEnd, Contacts: []Contact{contact(1, 9, 9)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surf := newFakeSurface()
			calls := 0
			b := NewBinder(surf, func(Resolution) { calls++ })
			b.Bind()

			for _, ev := range tt.events {
				surf.fire(ev)
			}
			if calls != 0 {
				t.Errorf("resolve called %d times, want 0", calls)
			}
		})
	}
}

func TestBinderNewStartWins(t *testing.T) {
	surf := newFakeSurface()
	var got []Resolution
	b := NewBinder(surf, func(r Resolution) { got = append(got, r) })
	b.Bind()

	surf.fire(Event{Phase: PhaseStart, Contacts: []Contact{contact(0, 0, 0)}})
	surf.fire(Event{Phase: PhaseCancel})
	surf.fire(Event{Phase: PhaseStart, Contacts: []Contact{contact(0, 10, 10)}})
	surf.fire(Event{Phase: PhaseEnd, Contacts: []Contact{contact(0, 11, 10)}})

	if len(got) != 1 || got[0].Dist[0] != (Vector{X: 1}) {
		t.Errorf("resolutions = %+v, want one with Dist {1 0}", got)
	}
}

func TestBinderIgnoresEventsWhenUnbound(t *testing.T) {
	b := NewBinder(newFakeSurface(), nil)
	b.Handle(Event{Phase: PhaseStart, Contacts: []Contact{contact(0, 0, 0)}})

	if _, started := b.Session(); started {
		t.Error("unbound binder created a session")
	}
}
