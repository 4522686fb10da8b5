package event

import (
	"sync/atomic"

	"github.com/dshills/touchgesture/internal/event/topic"
)

// Subscription is a handle on a registered handler.
type Subscription interface {
	ID() string
	Pattern() topic.Topic

	// Active reports whether the handler currently receives events.
	Active() bool

	// Pause and Resume suspend delivery without unsubscribing.
	Pause()
	Resume()

	// Cancel stops delivery for good. Bus.Unsubscribe also removes it.
	Cancel()
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithPriority sets the order among handlers of the same event.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) {
		s.priority = p
	}
}

// WithFilter delivers only events for which keep returns true.
func WithFilter(keep func(ev any) bool) SubscriptionOption {
	return func(s *subscription) {
		s.filter = keep
	}
}

// WithOnce unsubscribes after the first delivery.
func WithOnce() SubscriptionOption {
	return func(s *subscription) {
		s.once = true
	}
}

const (
	stateActive int32 = iota
	statePaused
	stateCancelled
)

type subscription struct {
	id       string
	pattern  topic.Topic
	handler  Handler
	priority Priority
	filter   func(ev any) bool
	once     bool
	seq      uint64
	state    atomic.Int32
}

func (s *subscription) ID() string           { return s.id }
func (s *subscription) Pattern() topic.Topic { return s.pattern }
func (s *subscription) Active() bool         { return s.state.Load() == stateActive }
func (s *subscription) Pause()               { s.state.CompareAndSwap(stateActive, statePaused) }
func (s *subscription) Resume()              { s.state.CompareAndSwap(statePaused, stateActive) }
func (s *subscription) Cancel()              { s.state.Store(stateCancelled) }

// before reports whether s is delivered ahead of o.
func (s *subscription) before(o *subscription) bool {
	if s.priority != o.priority {
		return s.priority < o.priority
	}
	return s.seq < o.seq
}

func (s *subscription) wants(ev any) bool {
	return s.Active() && (s.filter == nil || s.filter(ev))
}
