package event

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/touchgesture/internal/event/topic"
	"github.com/dshills/touchgesture/internal/logging"
)

// PanicHandler observes recovered handler panics.
type PanicHandler func(ev any, sub Subscription, recovered any)

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger that reports failed deliveries.
func WithLogger(l *logging.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithPanicHandler is called for every recovered handler panic.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = h
	}
}

// Stats counts bus activity.
type Stats struct {
	// Published counts events that matched at least one subscription.
	Published uint64
	Delivered uint64
	Failed    uint64
	Panicked  uint64

	// Active is the number of subscriptions currently receiving events.
	Active int
}

// Bus delivers events synchronously to the subscriptions whose pattern
// matches the event topic, in priority order and then subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscription // delivery order
	seq  uint64

	logger  *logging.Logger
	onPanic PanicHandler

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{logger: logging.Null}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers h for topics matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	s := &subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  h,
		priority: PriorityNormal,
	}
	for _, opt := range opts {
		opt(s)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	s.seq = b.seq
	i, _ := slices.BinarySearchFunc(b.subs, s, func(x, target *subscription) int {
		if x.before(target) {
			return -1
		}
		return 1
	})
	b.subs = slices.Insert(b.subs, i, s)
	return s, nil
}

// Unsubscribe cancels sub and removes it from the bus.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.subs, func(s *subscription) bool { return s.id == sub.ID() })
	if i < 0 {
		return ErrSubscriptionNotFound
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	return nil
}

// Publish delivers ev, which must be Routable, to every matching
// subscription. Every handler runs; their errors and recovered panics are
// joined into the result as *DeliveryError.
func (b *Bus) Publish(ctx context.Context, ev any) error {
	r, ok := ev.(Routable)
	if !ok || r.EventTopic() == "" {
		return ErrInvalidEvent
	}
	t := r.EventTopic()

	b.mu.RLock()
	var targets []*subscription
	for _, s := range b.subs {
		if t.Matches(s.pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()
	if len(targets) == 0 {
		return nil
	}
	b.published.Add(1)

	var errs []error
	for _, s := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !s.wants(ev) {
			continue
		}
		if err := b.deliver(ctx, s, t, ev); err != nil {
			b.logger.Warn("%v", err)
			errs = append(errs, err)
			continue
		}
		if s.once {
			_ = b.Unsubscribe(s)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, s *subscription, t topic.Topic, ev any) (err error) {
	b.delivered.Add(1)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		b.panicked.Add(1)
		if b.onPanic != nil {
			b.onPanic(ev, s, r)
		}
		err = &DeliveryError{Subscription: s.id, Topic: t, Recovered: r}
	}()

	if herr := s.handler.Handle(ctx, ev); herr != nil {
		b.failed.Add(1)
		return &DeliveryError{Subscription: s.id, Topic: t, Err: herr}
	}
	return nil
}

// Stats returns the current counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, s := range b.subs {
		if s.Active() {
			active++
		}
	}
	b.mu.RUnlock()

	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Panicked:  b.panicked.Load(),
		Active:    active,
	}
}
