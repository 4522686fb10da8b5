package gesture

import (
	"fmt"

	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/touch"
)

// Result describes one run of a dispatch chain.
type Result struct {
	// Evaluated is the number of bindings whose classifier ran.
	Evaluated int

	// Matched is the number of callbacks invoked.
	Matched int

	// Winner is the gesture that stopped the chain, or nil.
	Winner *Gesture

	// Errors holds recovered callback panics.
	Errors []error
}

// Claimed reports whether a binding claimed the touch.
func (r Result) Claimed() bool {
	return r.Winner != nil
}

// Chain is an ordered list of competing bindings.
type Chain struct {
	Surface  touch.Surface
	Bindings []Binding
	Logger   *logging.Logger
}

// Run evaluates the bindings in order against res and stops at the first
// one that claims the gesture.
func (c Chain) Run(res touch.Resolution) Result {
	var result Result

	for _, b := range c.Bindings {
		result.Evaluated++
		if !b.Matches(res) {
			continue
		}

		g := newGesture(b.Key.Kind, c.Surface, res)
		result.Matched++

		if err := invoke(b, g); err != nil {
			c.logger().Warn("callback failed: %v", err)
			result.Errors = append(result.Errors, err)
			continue
		}

		if g.Claimed() {
			result.Winner = g
			break
		}
	}

	return result
}

func (c Chain) logger() *logging.Logger {
	if c.Logger == nil {
		return logging.Null
	}
	return c.Logger
}

// invoke runs the callback with panic recovery. A panicking callback does
// not claim the gesture.
func invoke(b Binding, g *Gesture) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", &PanicError{Key: b.Key, Value: r}, r)
		}
	}()
	if b.Callback != nil {
		b.Callback(g)
	}
	return nil
}
