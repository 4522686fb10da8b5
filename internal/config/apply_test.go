package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

func TestApply(t *testing.T) {
	p, err := Parse("nav.toml", FormatTOML, []byte(navTOML))
	require.NoError(t, err)

	content := sim.NewSurface("content")
	surfaces := touch.Surfaces{"content": content}
	reg := gesture.NewRegistry()

	var actions []string
	require.NoError(t, p.Apply(reg, surfaces, func(action string, g *gesture.Gesture) {
		actions = append(actions, action+":"+g.Name())
	}))

	assert.Equal(t, []gesture.Key{
		{Kind: gesture.KindSwipeRight, Fingers: 1},
		{Kind: gesture.KindSwipeLeft, Fingers: 1},
		{Kind: gesture.KindTap, Fingers: 2},
	}, reg.Bindings(content))

	start := time.Unix(0, 0)
	content.Touch(touch.PhaseStart, start, sim.At(0, 10, 10))
	content.Touch(touch.PhaseEnd, start.Add(100*time.Millisecond), sim.At(0, 140, 12))

	// Threshold 120 from the [swipe] section.
	assert.Equal(t, []string{"nav.show:swiperight"}, actions)
}

func TestApplySkipsBadBindings(t *testing.T) {
	p := &Profile{Bindings: []Binding{
		{Surface: "missing", Gesture: "tap", Action: "a"},
		{Surface: "content", Gesture: "pinch", Action: "b"},
		{Surface: "content", Gesture: "swipe-up", Action: "c"},
	}}

	content := sim.NewSurface("content")
	reg := gesture.NewRegistry()

	err := p.Apply(reg, touch.Surfaces{"content": content}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, touch.ErrUnknownSurface)
	assert.ErrorIs(t, err, gesture.ErrInvalidKind)

	assert.Equal(t, []gesture.Key{{Kind: gesture.KindSwipeUp, Fingers: 1}}, reg.Bindings(content))
}

func TestApplyActionMayDefer(t *testing.T) {
	p := &Profile{
		Tap: Constraints{Threshold: 500},
		Bindings: []Binding{
			{Surface: "content", Gesture: "tap", Action: "nav.hide"},
			{Surface: "content", Gesture: "swipe-left", Action: "page.next"},
		},
	}

	content := sim.NewSurface("content")
	reg := gesture.NewRegistry()

	var actions []string
	require.NoError(t, p.Apply(reg, touch.Surfaces{"content": content}, func(action string, g *gesture.Gesture) {
		actions = append(actions, action)
		if action == "nav.hide" {
			g.Defer()
		}
	}))

	start := time.Unix(0, 0)
	content.Touch(touch.PhaseStart, start, sim.At(0, 300, 10))
	content.Touch(touch.PhaseEnd, start.Add(100*time.Millisecond), sim.At(0, 100, 10))

	assert.Equal(t, []string{"nav.hide", "page.next"}, actions)
}
