//go:build js && wasm

package dom

import (
	"fmt"
	"sync"
	"syscall/js"
	"time"

	"github.com/dshills/touchgesture/internal/touch"
)

// timeOrigin anchors DOM event timestamps, which are milliseconds since
// the page's time origin.
var timeOrigin = time.Unix(0, 0)

// Element is a DOM element used as a touch surface.
type Element struct {
	name  string
	value js.Value
}

// NewElement wraps v. name is used in logs.
func NewElement(name string, v js.Value) *Element {
	return &Element{name: name, value: v}
}

// Value returns the wrapped element.
func (e *Element) Value() js.Value {
	return e.value
}

// String implements fmt.Stringer.
func (e *Element) String() string {
	return e.name
}

// Attach implements touch.Surface.
func (e *Element) Attach(phase touch.Phase, fn touch.Listener) func() {
	name := phase.String()
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		fn(translate(phase, args[0]))
		return nil
	})
	e.value.Call("addEventListener", name, cb)

	var once sync.Once
	return func() {
		once.Do(func() {
			e.value.Call("removeEventListener", name, cb)
			cb.Release()
		})
	}
}

// translate converts a DOM TouchEvent.
func translate(phase touch.Phase, ev js.Value) touch.Event {
	out := touch.Event{
		Phase:  phase,
		Target: ev.Get("target"),
		Time:   timeOrigin.Add(time.Duration(ev.Get("timeStamp").Float() * float64(time.Millisecond))),
	}

	var list js.Value
	switch phase {
	case touch.PhaseStart, touch.PhaseMove:
		list = ev.Get("touches")
	case touch.PhaseEnd:
		list = ev.Get("changedTouches")
	default:
		return out
	}

	n := list.Length()
	out.Contacts = make([]touch.Contact, n)
	for i := 0; i < n; i++ {
		t := list.Index(i)
		out.Contacts[i] = touch.Contact{
			ID: t.Get("identifier").Int(),
			Position: touch.Point{
				X: t.Get("clientX").Float(),
				Y: t.Get("clientY").Float(),
			},
		}
	}
	return out
}

// Document resolves surfaces by element id. The same *Element is returned
// for repeated lookups, so registrations made by name refer to one surface.
type Document struct {
	mu       sync.Mutex
	doc      js.Value
	elements map[string]*Element
}

// NewDocument returns a resolver for the global document.
func NewDocument() *Document {
	return &Document{
		doc:      js.Global().Get("document"),
		elements: make(map[string]*Element),
	}
}

// Resolve implements touch.Resolver.
func (d *Document) Resolve(id string) (touch.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[id]; ok {
		return el, nil
	}
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, fmt.Errorf("%w: #%s", touch.ErrUnknownSurface, id)
	}
	el := NewElement(id, v)
	d.elements[id] = el
	return el, nil
}
