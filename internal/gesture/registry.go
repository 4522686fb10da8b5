package gesture

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/touch"
)

// Registry tracks gesture bindings per surface.
//
// Surfaces are used as map keys and must be comparable; platform adapters
// hand out pointers.
type Registry struct {
	mu        sync.Mutex
	entries   map[touch.Surface]*entry
	logger    *logging.Logger
	publisher Publisher
}

// entry is the per-surface state: the binder with its session and the
// bindings in registration order.
type entry struct {
	binder   *touch.Binder
	bindings []Binding
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithPublisher publishes every claimed gesture.
func WithPublisher(p Publisher) RegistryOption {
	return func(r *Registry) {
		r.publisher = p
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[touch.Surface]*entry),
		logger:  logging.Null,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("gesture")
	return r
}

// Register stores a binding for (kind, fingers) on surface, replacing any
// earlier binding with the same key. The replacement takes the lowest
// priority. Zero constraint fields take the defaults for kind.
func (r *Registry) Register(surface touch.Surface, kind Kind, fingers int, cb Callback, c Constraints) error {
	if err := r.check(surface, kind, fingers); err != nil {
		r.logger.Debug("registration rejected: %v", err)
		return err
	}
	if cb == nil {
		cb = func(*Gesture) {}
	}

	b := Binding{
		Key:         Key{Kind: kind, Fingers: fingers},
		Constraints: c.Or(DefaultConstraints(kind)),
		Callback:    cb,
	}

	r.mu.Lock()
	e, ok := r.entries[surface]
	if !ok {
		e = &entry{}
		e.binder = touch.NewBinder(surface, func(res touch.Resolution) {
			r.dispatch(surface, res)
		})
		r.entries[surface] = e
	}
	e.bindings = removeKey(e.bindings, b.Key)
	e.bindings = append(e.bindings, b)
	e.binder.Bind()
	r.mu.Unlock()

	r.logger.Debug("registered %s on %v", b.Key, surface)
	return nil
}

// Unregister removes the binding for (kind, fingers) on surface. Removing
// the last binding detaches every touch listener from the surface.
func (r *Registry) Unregister(surface touch.Surface, kind Kind, fingers int) error {
	if err := r.check(surface, kind, fingers); err != nil {
		return err
	}
	key := Key{Kind: kind, Fingers: fingers}

	r.mu.Lock()
	e, ok := r.entries[surface]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}

	n := len(e.bindings)
	e.bindings = removeKey(e.bindings, key)
	removed := len(e.bindings) < n

	var binder *touch.Binder
	if len(e.bindings) == 0 {
		binder = e.binder
		delete(r.entries, surface)
	}
	r.mu.Unlock()

	if binder != nil {
		binder.Unbind()
		r.logger.Debug("released %v", surface)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}
	return nil
}

// RegisterSwipe registers a swipe in direction d.
func (r *Registry) RegisterSwipe(surface touch.Surface, d Direction, cb Callback, opts ...Option) error {
	kind := d.Kind()
	if kind == KindNone {
		r.logger.Debug("registration rejected: %v", ErrInvalidDirection)
		return ErrInvalidDirection
	}
	reg := newRegistration(opts)
	return r.Register(surface, kind, reg.fingers, cb, reg.constraints)
}

// RegisterTap registers a tap.
func (r *Registry) RegisterTap(surface touch.Surface, cb Callback, opts ...Option) error {
	reg := newRegistration(opts)
	return r.Register(surface, KindTap, reg.fingers, cb, reg.constraints)
}

// UnregisterSwipe removes the swipe in direction d held with fingers.
func (r *Registry) UnregisterSwipe(surface touch.Surface, d Direction, fingers int) error {
	kind := d.Kind()
	if kind == KindNone {
		return ErrInvalidDirection
	}
	return r.Unregister(surface, kind, fingers)
}

// UnregisterTap removes the tap held with fingers.
func (r *Registry) UnregisterTap(surface touch.Surface, fingers int) error {
	return r.Unregister(surface, KindTap, fingers)
}

// Bindings returns the keys registered on surface in dispatch order.
func (r *Registry) Bindings(surface touch.Surface) []Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[surface]
	if !ok {
		return nil
	}
	keys := make([]Key, len(e.bindings))
	for i, b := range e.bindings {
		keys[i] = b.Key
	}
	return keys
}

// Bound reports whether surface has touch listeners attached.
func (r *Registry) Bound(surface touch.Surface) bool {
	r.mu.Lock()
	e, ok := r.entries[surface]
	r.mu.Unlock()
	return ok && e.binder.Bound()
}

// Session returns the touch session of surface, if the surface is bound and
// a touch has started on it.
func (r *Registry) Session(surface touch.Surface) (touch.Session, bool) {
	r.mu.Lock()
	e, ok := r.entries[surface]
	r.mu.Unlock()
	if !ok {
		return touch.Session{}, false
	}
	return e.binder.Session()
}

// Len returns the number of surfaces with at least one binding.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Surfaces returns every surface with at least one binding.
func (r *Registry) Surfaces() []touch.Surface {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]touch.Surface, 0, len(r.entries))
	for s := range r.entries {
		out = append(out, s)
	}
	return out
}

// Clear removes every binding and detaches every listener.
func (r *Registry) Clear() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[touch.Surface]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.binder.Unbind()
	}
}

// dispatch runs the chain for a resolved touch on surface.
func (r *Registry) dispatch(surface touch.Surface, res touch.Resolution) {
	r.mu.Lock()
	e, ok := r.entries[surface]
	var bindings []Binding
	if ok {
		bindings = append([]Binding(nil), e.bindings...)
	}
	publisher := r.publisher
	r.mu.Unlock()

	if len(bindings) == 0 {
		return
	}

	result := Chain{
		Surface:  surface,
		Bindings: bindings,
		Logger:   r.logger,
	}.Run(res)

	if !result.Claimed() {
		r.logger.Debug("lift-off on %v absorbed (%d evaluated, %d matched)",
			surface, result.Evaluated, result.Matched)
		return
	}

	r.logger.Debug("%s claimed on %v", result.Winner.Name(), surface)
	if publisher != nil {
		if err := publisher.PublishGesture(context.Background(), result.Winner); err != nil {
			r.logger.Warn("publish %s: %v", result.Winner.Name(), err)
		}
	}
}

func (r *Registry) check(surface touch.Surface, kind Kind, fingers int) error {
	if surface == nil {
		return ErrNilSurface
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if !validFingers(fingers) {
		return fmt.Errorf("%w: %d", ErrInvalidFingers, fingers)
	}
	return nil
}

func newRegistration(opts []Option) registration {
	reg := registration{fingers: DefaultFingers}
	for _, opt := range opts {
		opt(&reg)
	}
	return reg
}

func removeKey(bindings []Binding, key Key) []Binding {
	for i := range bindings {
		if bindings[i].Key == key {
			copy(bindings[i:], bindings[i+1:])
			bindings[len(bindings)-1] = Binding{}
			return bindings[:len(bindings)-1]
		}
	}
	return bindings
}
