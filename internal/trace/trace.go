// Package trace records and replays touch traces.
//
// A trace is the sequence of touch events one surface received, stored as
// JSON:
//
//	{
//	  "surface": "content",
//	  "events": [
//	    {"phase": "start", "t": 0,   "touches": [{"id": 0, "x": 100, "y": 100}]},
//	    {"phase": "end",   "t": 200, "touches": [{"id": 0, "x": 300, "y": 105}]}
//	  ]
//	}
//
// t is the offset from the first event in milliseconds. A file holding
// several surfaces wraps the traces in {"traces": [...]}.
package trace

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/touchgesture/internal/touch"
)

// Errors returned by Parse.
var (
	ErrInvalidJSON  = errors.New("invalid trace JSON")
	ErrInvalidTrace = errors.New("invalid trace")
)

// Step is one recorded touch event.
type Step struct {
	Phase   touch.Phase
	At      time.Duration
	Touches []touch.Contact
}

// Trace is the recorded input of one surface.
type Trace struct {
	Surface string
	Steps   []Step
}

// Duration returns the offset of the last step.
func (t Trace) Duration() time.Duration {
	if len(t.Steps) == 0 {
		return 0
	}
	return t.Steps[len(t.Steps)-1].At
}

// ParseFile reads the traces stored at path.
func ParseFile(path string) ([]Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a single trace or a {"traces": [...]} document.
func Parse(data []byte) ([]Trace, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: document is not an object", ErrInvalidTrace)
	}

	if list := doc.Get("traces"); list.Exists() {
		if !list.IsArray() {
			return nil, fmt.Errorf("%w: traces is not an array", ErrInvalidTrace)
		}
		var out []Trace
		for i, item := range list.Array() {
			tr, err := parseTrace(item)
			if err != nil {
				return nil, fmt.Errorf("traces[%d]: %w", i, err)
			}
			out = append(out, tr)
		}
		return out, nil
	}

	tr, err := parseTrace(doc)
	if err != nil {
		return nil, err
	}
	return []Trace{tr}, nil
}

func parseTrace(r gjson.Result) (Trace, error) {
	surface := r.Get("surface")
	if surface.Type != gjson.String || surface.Str == "" {
		return Trace{}, fmt.Errorf("%w: missing surface", ErrInvalidTrace)
	}

	events := r.Get("events")
	if !events.IsArray() {
		return Trace{}, fmt.Errorf("%w: events is not an array", ErrInvalidTrace)
	}

	tr := Trace{Surface: surface.Str}
	var last time.Duration
	for i, ev := range events.Array() {
		step, err := parseStep(ev)
		if err != nil {
			return Trace{}, fmt.Errorf("%s events[%d]: %w", tr.Surface, i, err)
		}
		if step.At < last {
			return Trace{}, fmt.Errorf("%s events[%d]: %w: time goes backwards", tr.Surface, i, ErrInvalidTrace)
		}
		last = step.At
		tr.Steps = append(tr.Steps, step)
	}
	return tr, nil
}

func parseStep(r gjson.Result) (Step, error) {
	phase, ok := touch.ParsePhase(r.Get("phase").String())
	if !ok {
		return Step{}, fmt.Errorf("%w: unknown phase %q", ErrInvalidTrace, r.Get("phase").String())
	}

	t := r.Get("t")
	if t.Exists() && t.Type != gjson.Number {
		return Step{}, fmt.Errorf("%w: t is not a number", ErrInvalidTrace)
	}
	step := Step{
		Phase: phase,
		At:    time.Duration(t.Float() * float64(time.Millisecond)),
	}

	var err error
	r.Get("touches").ForEach(func(_, tc gjson.Result) bool {
		if !tc.IsObject() {
			err = fmt.Errorf("%w: touch is not an object", ErrInvalidTrace)
			return false
		}
		// A touch without an id takes its index, so slots stay distinct.
		id := len(step.Touches)
		if v := tc.Get("id"); v.Exists() {
			id = int(v.Int())
		}
		step.Touches = append(step.Touches, touch.Contact{
			ID: id,
			Position: touch.Point{
				X: tc.Get("x").Float(),
				Y: tc.Get("y").Float(),
			},
		})
		return true
	})
	return step, err
}
