package trace

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

var base = time.Unix(1_700_000_000, 0)

func TestParseFile(t *testing.T) {
	traces, err := ParseFile(filepath.Join("testdata", "nav.json"))
	require.NoError(t, err)
	require.Len(t, traces, 2)

	content := traces[0]
	assert.Equal(t, "content", content.Surface)
	require.Len(t, content.Steps, 5)
	assert.Equal(t, Step{
		Phase:   touch.PhaseEnd,
		At:      200 * time.Millisecond,
		Touches: []touch.Contact{{ID: 0, Position: touch.Point{X: 300, Y: 105}}},
	}, content.Steps[2])
	assert.Equal(t, 1080*time.Millisecond, content.Duration())

	nav := traces[1]
	assert.Equal(t, touch.PhaseCancel, nav.Steps[1].Phase)
	assert.Empty(t, nav.Steps[1].Touches)
}

func TestParseSingle(t *testing.T) {
	traces, err := Parse([]byte(`{"surface":"s","events":[{"phase":"start","t":1.5,"touches":[{"id":3,"x":1,"y":2}]}]}`))
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, 1500*time.Microsecond, traces[0].Steps[0].At)
	assert.Equal(t, 3, traces[0].Steps[0].Touches[0].ID)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{"surface":`, ErrInvalidJSON},
		{"array", `[]`, ErrInvalidTrace},
		{"no surface", `{"events":[]}`, ErrInvalidTrace},
		{"events not array", `{"surface":"s","events":{}}`, ErrInvalidTrace},
		{"bad phase", `{"surface":"s","events":[{"phase":"pinch","t":0}]}`, ErrInvalidTrace},
		{"bad time", `{"surface":"s","events":[{"phase":"start","t":"soon"}]}`, ErrInvalidTrace},
		{"backwards", `{"surface":"s","events":[{"phase":"start","t":5},{"phase":"end","t":1}]}`, ErrInvalidTrace},
		{"bad touch", `{"surface":"s","events":[{"phase":"start","t":0,"touches":[1]}]}`, ErrInvalidTrace},
		{"traces not array", `{"traces":{}}`, ErrInvalidTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReplayDrivesRegistry(t *testing.T) {
	traces, err := ParseFile(filepath.Join("testdata", "nav.json"))
	require.NoError(t, err)

	content := sim.NewSurface("content")
	nav := sim.NewSurface("nav")
	reg := gesture.NewRegistry()

	var got []string
	record := func(g *gesture.Gesture) {
		got = append(got, g.Surface.(*sim.Surface).Name()+":"+g.Name())
	}
	require.NoError(t, reg.RegisterSwipe(content, gesture.Right, record))
	require.NoError(t, reg.RegisterTap(content, record))
	require.NoError(t, reg.RegisterTap(nav, record))

	surfaces := map[string]*sim.Surface{"content": content, "nav": nav}
	n, err := ReplayAll(traces, func(name string) (Dispatcher, bool) {
		s, ok := surfaces[name]
		return s, ok
	}, base)
	require.NoError(t, err)

	assert.Equal(t, 8, n)
	assert.Equal(t, []string{"content:swiperight", "content:tap"}, got)
}

func TestReplayTwoFingersWithoutIDs(t *testing.T) {
	traces, err := Parse([]byte(`{"surface":"content","events":[
		{"phase":"start","t":0,"touches":[{"x":100,"y":100},{"x":100,"y":200}]},
		{"phase":"move","t":50,"touches":[{"x":200,"y":100},{"x":200,"y":200}]},
		{"phase":"end","t":100,"touches":[{"x":300,"y":100},{"x":300,"y":200}]}
	]}`))
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, []int{0, 1}, []int{traces[0].Steps[0].Touches[0].ID, traces[0].Steps[0].Touches[1].ID})

	s := sim.NewSurface("content")
	reg := gesture.NewRegistry()
	var got []*gesture.Gesture
	require.NoError(t, reg.RegisterSwipe(s, gesture.Right, func(g *gesture.Gesture) { got = append(got, g) }, gesture.WithFingers(2)))

	Replay(traces[0], s, base)

	require.Len(t, got, 1, "two-finger swipe right not recognized")
	assert.Equal(t, []float64{200, 200}, got[0].DistX)
	assert.Equal(t, []float64{0, 0}, got[0].DistY)
}

func TestReplayAllUnknownSurface(t *testing.T) {
	traces := []Trace{{Surface: "ghost", Steps: []Step{{Phase: touch.PhaseStart}}}}
	_, err := ReplayAll(traces, func(string) (Dispatcher, bool) { return nil, false }, base)
	assert.ErrorIs(t, err, touch.ErrUnknownSurface)
}

func TestReplayTimes(t *testing.T) {
	tr := Trace{Surface: "s", Steps: []Step{
		{Phase: touch.PhaseStart, At: 0, Touches: []touch.Contact{sim.At(0, 1, 1)}},
		{Phase: touch.PhaseEnd, At: 250 * time.Millisecond, Touches: []touch.Contact{sim.At(0, 1, 1)}},
	}}

	s := sim.NewSurface("s")
	var times []time.Time
	for _, p := range touch.Phases {
		s.Attach(p, func(ev touch.Event) { times = append(times, ev.Time) })
	}

	assert.Equal(t, 2, Replay(tr, s, base))
	assert.Equal(t, []time.Time{base, base.Add(250 * time.Millisecond)}, times)
}

func TestRecorderRoundTrip(t *testing.T) {
	content := sim.NewSurface("content")
	nav := sim.NewSurface("nav")

	rec := NewRecorder()
	rec.Attach("content", content)
	rec.Attach("nav", nav)

	content.Touch(touch.PhaseStart, base, sim.At(0, 100, 100))
	nav.Touch(touch.PhaseCancel, base.Add(50*time.Millisecond), sim.At(7, 0, 0))
	content.Touch(touch.PhaseEnd, base.Add(200*time.Millisecond), sim.At(0, 300, 105))

	assert.Equal(t, 3, rec.Len())

	traces, err := Parse(rec.Bytes())
	require.NoError(t, err)
	require.Len(t, traces, 2)

	assert.Equal(t, Trace{Surface: "content", Steps: []Step{
		{Phase: touch.PhaseStart, At: 0, Touches: []touch.Contact{sim.At(0, 100, 100)}},
		{Phase: touch.PhaseEnd, At: 200 * time.Millisecond, Touches: []touch.Contact{sim.At(0, 300, 105)}},
	}}, traces[0])
	assert.Equal(t, Trace{Surface: "nav", Steps: []Step{
		{Phase: touch.PhaseCancel, At: 50 * time.Millisecond},
	}}, traces[1])

	rec.Close()
	assert.Zero(t, content.TotalListeners())
	assert.Zero(t, nav.TotalListeners())

	content.Touch(touch.PhaseStart, base, sim.At(0, 1, 1))
	assert.Equal(t, 3, rec.Len())
}

func TestRecorderWriteFile(t *testing.T) {
	rec := NewRecorder()
	require.NoError(t, rec.Record("s", touch.Event{Phase: touch.PhaseStart, Time: base}))

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, rec.WriteFile(path))

	traces, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "s", traces[0].Surface)
}
