package term

type position struct {
	X, Y int
}

// dragTracker follows the button-1 drag that forms the current touch. A
// nil pane means no drag.
type dragTracker struct {
	pane *Pane
	from position
	last position
}

func (t *dragTracker) start(pane *Pane, pos position) {
	*t = dragTracker{pane: pane, from: pos, last: pos}
}

// update moves the drag to pos. It returns false when the cell did not
// change, since tcell repeats motion events within a cell.
func (t *dragTracker) update(pos position) bool {
	if t.pane == nil || pos == t.last {
		return false
	}
	t.last = pos
	return true
}

func (t *dragTracker) end() { *t = dragTracker{} }

func (t *dragTracker) isActive() bool { return t.pane != nil }
