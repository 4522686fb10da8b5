// Package sim provides an in-memory touch surface.
//
// A Surface behaves like a platform element: listeners attach per phase and
// events are delivered synchronously in attach order. It backs trace replay
// and the tests of every package above the platform layer.
package sim

import (
	"sync"
	"time"

	"github.com/dshills/touchgesture/internal/touch"
)

// Surface is a simulated touch surface.
type Surface struct {
	mu        sync.Mutex
	name      string
	listeners map[touch.Phase][]*entry
	delivered int
}

type entry struct {
	fn touch.Listener
}

// NewSurface creates a named surface.
func NewSurface(name string) *Surface {
	return &Surface{
		name:      name,
		listeners: make(map[touch.Phase][]*entry),
	}
}

// Name returns the surface name.
func (s *Surface) Name() string {
	return s.name
}

// String implements fmt.Stringer.
func (s *Surface) String() string {
	return s.name
}

// Attach implements touch.Surface.
func (s *Surface) Attach(phase touch.Phase, fn touch.Listener) func() {
	e := &entry{fn: fn}

	s.mu.Lock()
	s.listeners[phase] = append(s.listeners[phase], e)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(phase, e) })
	}
}

func (s *Surface) remove(phase touch.Phase, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.listeners[phase]
	for i := range list {
		if list[i] == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			s.listeners[phase] = list[:len(list)-1]
			break
		}
	}
	if len(s.listeners[phase]) == 0 {
		delete(s.listeners, phase)
	}
}

// Listeners returns the number of listeners attached for phase.
func (s *Surface) Listeners(phase touch.Phase) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[phase])
}

// TotalListeners returns the number of listeners across all phases.
func (s *Surface) TotalListeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.listeners {
		n += len(l)
	}
	return n
}

// Delivered returns how many events reached at least one listener.
func (s *Surface) Delivered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered
}

// Dispatch delivers ev to the listeners of its phase. The target defaults
// to the surface itself.
func (s *Surface) Dispatch(ev touch.Event) {
	if ev.Target == nil {
		ev.Target = s
	}

	s.mu.Lock()
	list := append([]*entry(nil), s.listeners[ev.Phase]...)
	if len(list) > 0 {
		s.delivered++
	}
	s.mu.Unlock()

	for _, e := range list {
		e.fn(ev)
	}
}

// Touch builds and dispatches an event in one call.
func (s *Surface) Touch(phase touch.Phase, at time.Time, contacts ...touch.Contact) {
	s.Dispatch(touch.Event{
		Phase:    phase,
		Contacts: contacts,
		Time:     at,
	})
}

// At returns a contact with the given id and position.
func At(id int, x, y float64) touch.Contact {
	return touch.Contact{ID: id, Position: touch.Point{X: x, Y: y}}
}
