package script

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/logging"
	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

var epoch = time.Unix(1_700_000_000, 0)

type fixture struct {
	host    *Host
	reg     *gesture.Registry
	content *sim.Surface
	nav     *sim.Surface
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		reg:     gesture.NewRegistry(),
		content: sim.NewSurface("content"),
		nav:     sim.NewSurface("nav"),
	}
	f.host = NewHost(f.reg, touch.Surfaces{"content": f.content, "nav": f.nav}, opts...)
	t.Cleanup(func() { _ = f.host.Close() })
	return f
}

func (f *fixture) run(t *testing.T, code string) {
	t.Helper()
	require.NoError(t, f.host.Run(context.Background(), t.Name(), code))
}

func stroke(s *sim.Surface, d time.Duration, from, to touch.Contact) {
	s.Touch(touch.PhaseStart, epoch, from)
	s.Touch(touch.PhaseEnd, epoch.Add(d), to)
}

func TestSwipeCallbackReceivesGesture(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		fired = 0
		local ok, err = gesture.swipe("content", "right", function(g)
			fired = fired + 1
			last = g
		end)
		assert(ok, err)
	`)

	stroke(f.content, 200*time.Millisecond, sim.At(0, 100, 100), sim.At(0, 300, 105))

	f.run(t, `
		assert(fired == 1, "fired " .. fired)
		assert(last.kind == "swiperight")
		assert(last.fingers == 1)
		assert(#last.dist_x == 1 and last.dist_x[1] == 200)
		assert(last.dist_y[1] == 5)
		assert(last.duration == 200)
		assert(last.surface == "content")
		assert(last.target == "content")
	`)
}

func TestOptions(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		fired = 0
		assert(gesture.swipe("content", "up", function() fired = fired + 1 end,
			{ fingers = 2, threshold = 40, duration = 1000 }))
	`)

	assert.Equal(t, []gesture.Key{{Kind: gesture.KindSwipeUp, Fingers: 2}}, f.reg.Bindings(f.content))

	f.content.Touch(touch.PhaseStart, epoch, sim.At(0, 0, 100), sim.At(1, 30, 100))
	f.content.Touch(touch.PhaseEnd, epoch.Add(800*time.Millisecond), sim.At(0, 0, 50), sim.At(1, 30, 55))

	f.run(t, `assert(fired == 1, "fired " .. fired)`)
}

func TestReturningFalseDefers(t *testing.T) {
	f := newFixture(t)
	f.run(t, `assert(gesture.tap("content", function(g) return false end))`)

	// A loose swipe also accepts the 1px move below.
	var got []string
	require.NoError(t, f.reg.RegisterSwipe(f.content, gesture.Left, func(g *gesture.Gesture) {
		got = append(got, g.Name())
	}, gesture.WithThreshold(1)))

	stroke(f.content, 50*time.Millisecond, sim.At(0, 10, 10), sim.At(0, 9, 10))
	assert.Equal(t, []string{"swipeleft"}, got)
}

func TestCallbackErrorFallsThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	f := newFixture(t, WithLogger(logger))
	f.run(t, `assert(gesture.tap("content", function(g) error("boom") end))`)

	var claimed bool
	require.NoError(t, f.reg.RegisterSwipe(f.content, gesture.Right, func(*gesture.Gesture) { claimed = true },
		gesture.WithThreshold(1)))

	stroke(f.content, 50*time.Millisecond, sim.At(0, 10, 10), sim.At(0, 11, 10))

	assert.True(t, claimed)
	assert.Contains(t, buf.String(), "boom")
}

func TestRegistrationFailures(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		local ok, err = gesture.tap("missing", function() end)
		assert(ok == false)
		assert(string.find(err, "unknown surface", 1, true), err)

		ok, err = gesture.swipe("content", "sideways", function() end)
		assert(ok == false)
		assert(string.find(err, "invalid swipe direction", 1, true), err)

		ok, err = gesture.tap("content", function() end, { fingers = 9 })
		assert(ok == false)
		assert(string.find(err, "finger count out of range", 1, true), err)

		ok, err = gesture.tap("content", function() end, { fingers = 1.5 })
		assert(ok == false)
		assert(string.find(err, "finger count out of range", 1, true), err)
	`)

	assert.Zero(t, f.host.Bindings())
	assert.Zero(t, f.reg.Len())
}

func TestUnregister(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		assert(gesture.tap("nav", function() end))
		assert(gesture.swipe("nav", "left", function() end, { fingers = 2 }))
	`)
	assert.Equal(t, 2, f.host.Bindings())

	f.run(t, `
		assert(gesture.untap("nav") == true)
		assert(gesture.untap("nav") == false)
		assert(gesture.unswipe("nav", "left") == false)
		assert(gesture.unswipe("nav", "left", 2) == true)
		assert(gesture.unswipe("nav", "diagonal") == false)
	`)

	assert.Zero(t, f.host.Bindings())
	assert.Zero(t, f.nav.TotalListeners())
}

func TestCallbackMayUnregister(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		count = 0
		assert(gesture.tap("content", function(g)
			count = count + 1
			gesture.untap(g.surface)
		end))
	`)

	for i := 0; i < 3; i++ {
		stroke(f.content, 10*time.Millisecond, sim.At(0, 1, 1), sim.At(0, 1, 1))
	}

	f.run(t, `assert(count == 1, "count " .. count)`)
	assert.Zero(t, f.content.TotalListeners())
}

func TestSandbox(t *testing.T) {
	f := newFixture(t)
	f.run(t, `
		assert(io == nil)
		assert(os == nil)
		assert(debug == nil)
		assert(load == nil)
		assert(dofile == nil)
		assert(require == nil)
		assert(string.upper("a") == "A")
		assert(math.floor(1.5) == 1)
		assert(table.concat({"a", "b"}) == "ab")
	`)
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})

	f := newFixture(t, WithLogger(logger))
	f.run(t, `print("hello", 42)`)

	assert.Contains(t, buf.String(), "hello\t42")
}

func TestRunErrors(t *testing.T) {
	f := newFixture(t, WithTimeout(50*time.Millisecond))

	err := f.host.Run(context.Background(), "syntax.lua", "gesture.tap(")
	var serr *Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "syntax.lua", serr.Script)

	err = f.host.Run(context.Background(), "loop.lua", "while true do end")
	assert.ErrorIs(t, err, ErrTimeout)

	err = f.host.RunFile(context.Background(), "/nonexistent/page.lua")
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	f.run(t, `assert(gesture.tap("content", function() end))`)
	require.Equal(t, 4, f.content.TotalListeners())

	require.NoError(t, f.host.Close())
	assert.Zero(t, f.content.TotalListeners())
	assert.ErrorIs(t, f.host.Run(context.Background(), "late", "x = 1"), ErrHostClosed)
	assert.NoError(t, f.host.Close())
}
