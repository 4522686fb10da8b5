package trace

import (
	"fmt"
	"sort"
	"time"

	"github.com/dshills/touchgesture/internal/touch"
)

// Dispatcher delivers touch events to the listeners of a surface.
// *sim.Surface implements it.
type Dispatcher interface {
	Dispatch(ev touch.Event)
}

// Replay delivers the steps of tr to d. Event times are base plus the step
// offset. It returns the number of events delivered.
func Replay(tr Trace, d Dispatcher, base time.Time) int {
	for _, s := range tr.Steps {
		d.Dispatch(s.event(base))
	}
	return len(tr.Steps)
}

// ReplayAll replays several traces interleaved by time. lookup maps a
// trace's surface name to its dispatcher; every name must resolve before
// anything is delivered.
func ReplayAll(traces []Trace, lookup func(name string) (Dispatcher, bool), base time.Time) (int, error) {
	type pending struct {
		d    Dispatcher
		step Step
	}

	var queue []pending
	for _, tr := range traces {
		d, ok := lookup(tr.Surface)
		if !ok {
			return 0, fmt.Errorf("%w: %q", touch.ErrUnknownSurface, tr.Surface)
		}
		for _, s := range tr.Steps {
			queue = append(queue, pending{d: d, step: s})
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].step.At < queue[j].step.At
	})

	for _, p := range queue {
		p.d.Dispatch(p.step.event(base))
	}
	return len(queue), nil
}

func (s Step) event(base time.Time) touch.Event {
	return touch.Event{
		Phase:    s.Phase,
		Contacts: append([]touch.Contact(nil), s.Touches...),
		Time:     base.Add(s.At),
	}
}
