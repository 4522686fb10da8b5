package config

import (
	"errors"
	"fmt"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/touch"
)

// ActionFunc handles the action of a fired binding. It runs as the
// gesture callback and may call g.Defer to let the gesture fall through.
type ActionFunc func(action string, g *gesture.Gesture)

// Apply registers every binding of the profile on reg, in file order. A
// binding that cannot be registered is skipped; the errors of all skipped
// bindings are joined into the result.
func (p *Profile) Apply(reg *gesture.Registry, resolver touch.Resolver, onAction ActionFunc) error {
	var errs []error
	for i, b := range p.Bindings {
		if err := p.apply(reg, resolver, onAction, b); err != nil {
			errs = append(errs, fmt.Errorf("binding %d (%s on %q): %w", i, b.Gesture, b.Surface, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Profile) apply(reg *gesture.Registry, resolver touch.Resolver, onAction ActionFunc, b Binding) error {
	kind, err := b.Kind()
	if err != nil {
		return err
	}
	c, err := p.ConstraintsFor(b)
	if err != nil {
		return err
	}
	surface, err := resolver.Resolve(b.Surface)
	if err != nil {
		return err
	}

	action := b.Action
	cb := func(g *gesture.Gesture) {
		if onAction != nil {
			onAction(action, g)
		}
	}
	return reg.Register(surface, kind, b.FingerCount(), cb, c)
}
