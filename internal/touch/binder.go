package touch

import "sync"

// ResolveFunc is called with the resolution of every valid lift-off.
type ResolveFunc func(Resolution)

// Binder attaches the low-level touch listeners to a surface and turns the
// event stream into resolutions.
type Binder struct {
	mu      sync.Mutex
	surface Surface
	resolve ResolveFunc

	session  Session
	started  bool
	attached PhaseSet
	detach   [len(Phases)]func()
}

// NewBinder creates a binder for surface. Nothing is attached until Bind.
func NewBinder(surface Surface, resolve ResolveFunc) *Binder {
	if resolve == nil {
		resolve = func(Resolution) {}
	}
	return &Binder{
		surface: surface,
		resolve: resolve,
	}
}

// Surface returns the surface the binder serves.
func (b *Binder) Surface() Surface {
	return b.surface
}

// Bind attaches one listener per phase. Phases that already have a listener
// are left alone, so Bind is idempotent.
func (b *Binder) Bind() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range Phases {
		if b.attached.Has(p) {
			continue
		}
		b.detach[p] = b.surface.Attach(p, b.listener(p))
		b.attached = b.attached.With(p)
	}
}

// Unbind detaches every listener and discards the session.
func (b *Binder) Unbind() {
	b.mu.Lock()
	detach := b.detach
	attached := b.attached
	b.detach = [len(Phases)]func(){}
	b.attached = 0
	b.session = Session{}
	b.started = false
	b.mu.Unlock()

	// Detach outside the lock: some platforms deliver pending events
	// synchronously while removing a listener.
	for _, p := range Phases {
		if attached.Has(p) && detach[p] != nil {
			detach[p]()
		}
	}
}

// Attached returns the set of phases with a listener attached.
func (b *Binder) Attached() PhaseSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// Bound reports whether any listener is attached.
func (b *Binder) Bound() bool {
	return b.Attached() != 0
}

// Session returns a copy of the current session and whether one was ever
// started since the last Bind.
func (b *Binder) Session() (Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session
	s.Start = append([]Contact(nil), b.session.Start...)
	return s, b.started
}

// Handle processes one event as if it came from the surface.
func (b *Binder) Handle(ev Event) {
	b.mu.Lock()
	if b.attached == 0 {
		b.mu.Unlock()
		return
	}

	var (
		res Resolution
		ok  bool
	)
	switch ev.Phase {
	case PhaseStart:
		b.session.Begin(ev)
		b.started = true
	case PhaseMove:
		b.session.Observe(ev)
	case PhaseCancel:
		b.session.Invalidate()
	case PhaseEnd:
		res, ok = b.session.Resolve(ev)
	}
	b.mu.Unlock()

	// Resolve runs without the lock so dispatch may unbind this binder.
	if ok {
		b.resolve(res)
	}
}

// listener returns the phase listener attached to the surface. Events whose
// phase disagrees with the listener's are re-tagged.
func (b *Binder) listener(p Phase) Listener {
	return func(ev Event) {
		ev.Phase = p
		b.Handle(ev)
	}
}
