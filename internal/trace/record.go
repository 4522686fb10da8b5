package trace

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/touchgesture/internal/touch"
)

type stepJSON struct {
	Phase   string      `json:"phase"`
	T       float64     `json:"t"`
	Touches []touchJSON `json:"touches"`
}

type touchJSON struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type traceJSON struct {
	Surface string     `json:"surface"`
	Events  []stepJSON `json:"events"`
}

// Recorder captures the touch events of one or more surfaces as a
// {"traces": [...]} document. Offsets are measured from the first event
// recorded on any surface.
type Recorder struct {
	mu     sync.Mutex
	doc    string
	index  map[string]int
	start  time.Time
	detach []func()
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		doc:   `{"traces":[]}`,
		index: make(map[string]int),
	}
}

// Attach records every touch event of s under name until Close.
func (r *Recorder) Attach(name string, s touch.Surface) {
	for _, p := range touch.Phases {
		d := s.Attach(p, func(ev touch.Event) {
			_ = r.Record(name, ev)
		})
		r.mu.Lock()
		r.detach = append(r.detach, d)
		r.mu.Unlock()
	}
}

// Record appends ev to the trace of the named surface.
func (r *Recorder) Record(name string, ev touch.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[name]
	if !ok {
		doc, err := sjson.Set(r.doc, "traces.-1", traceJSON{Surface: name, Events: []stepJSON{}})
		if err != nil {
			return err
		}
		r.doc = doc
		i = len(r.index)
		r.index[name] = i
	}

	at := ev.Time
	if at.IsZero() {
		at = time.Now()
	}
	if r.start.IsZero() {
		r.start = at
	}

	step := stepJSON{
		Phase:   ev.Phase.Short(),
		T:       float64(at.Sub(r.start)) / float64(time.Millisecond),
		Touches: make([]touchJSON, 0, len(ev.Contacts)),
	}
	if ev.Phase != touch.PhaseCancel {
		for _, c := range ev.Contacts {
			step.Touches = append(step.Touches, touchJSON{ID: c.ID, X: c.Position.X, Y: c.Position.Y})
		}
	}

	doc, err := sjson.Set(r.doc, fmt.Sprintf("traces.%d.events.-1", i), step)
	if err != nil {
		return err
	}
	r.doc = doc
	return nil
}

// Len returns the number of recorded events across all surfaces.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range gjson.Get(r.doc, "traces.#.events.#").Array() {
		n += int(c.Int())
	}
	return n
}

// Bytes returns the recorded document, indented.
func (r *Recorder) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []byte(gjson.Get(r.doc, "@pretty").Raw)
}

// WriteFile writes the recorded document to path.
func (r *Recorder) WriteFile(path string) error {
	return os.WriteFile(path, r.Bytes(), 0o644)
}

// Close detaches the recorder from every surface.
func (r *Recorder) Close() {
	r.mu.Lock()
	detach := r.detach
	r.detach = nil
	r.mu.Unlock()

	for _, d := range detach {
		d()
	}
}
