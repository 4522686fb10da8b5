package touch

import (
	"errors"
	"reflect"
	"testing"
)

type nopSurface struct{}

func (*nopSurface) Attach(Phase, Listener) func() { return func() {} }

func TestSurfacesResolve(t *testing.T) {
	a := &nopSurface{}
	m := Surfaces{"content": a, "nav": &nopSurface{}, "broken": nil}

	got, err := m.Resolve("content")
	if err != nil || got != a {
		t.Errorf("Resolve(content) = %v, %v", got, err)
	}

	for _, name := range []string{"missing", "broken"} {
		if _, err := m.Resolve(name); !errors.Is(err, ErrUnknownSurface) {
			t.Errorf("Resolve(%s) error = %v, want ErrUnknownSurface", name, err)
		}
	}

	if names := m.Names(); !reflect.DeepEqual(names, []string{"broken", "content", "nav"}) {
		t.Errorf("Names() = %v", names)
	}
}

func TestResolverFunc(t *testing.T) {
	a := &nopSurface{}
	var r Resolver = ResolverFunc(func(name string) (Surface, error) {
		if name == "a" {
			return a, nil
		}
		return nil, ErrUnknownSurface
	})

	if got, err := r.Resolve("a"); err != nil || got != a {
		t.Errorf("Resolve(a) = %v, %v", got, err)
	}
	if _, err := r.Resolve("b"); !errors.Is(err, ErrUnknownSurface) {
		t.Errorf("Resolve(b) error = %v", err)
	}
}
