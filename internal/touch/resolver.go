package touch

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSurface is returned when a surface name cannot be resolved.
var ErrUnknownSurface = errors.New("unknown surface")

// Resolver looks up surfaces by name. Profiles and scripts refer to
// surfaces by name and use a Resolver supplied by the host.
type Resolver interface {
	Resolve(name string) (Surface, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (Surface, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (Surface, error) {
	return f(name)
}

// Surfaces is a Resolver backed by a map.
type Surfaces map[string]Surface

// Resolve implements Resolver.
func (m Surfaces) Resolve(name string) (Surface, error) {
	if s, ok := m[name]; ok && s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, name)
}

// Names returns the surface names in sorted order.
func (m Surfaces) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
