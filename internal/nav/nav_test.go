package nav

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

var epoch = time.Unix(1_700_000_000, 0)

// panel stands in for the navigation panel element.
type panel struct{}

func swipe(s *sim.Surface, dx float64) {
	s.Touch(touch.PhaseStart, epoch, sim.At(0, 200, 100))
	s.Touch(touch.PhaseMove, epoch.Add(100*time.Millisecond), sim.At(0, 200+dx, 102))
	s.Touch(touch.PhaseEnd, epoch.Add(200*time.Millisecond), sim.At(0, 200+dx, 102))
}

func tap(s *sim.Surface, target any) {
	s.Dispatch(touch.Event{Phase: touch.PhaseStart, Time: epoch, Target: target, Contacts: []touch.Contact{sim.At(0, 50, 50)}})
	s.Dispatch(touch.Event{Phase: touch.PhaseEnd, Time: epoch.Add(80 * time.Millisecond), Target: target, Contacts: []touch.Contact{sim.At(0, 50, 50)}})
}

func TestBind(t *testing.T) {
	reg := gesture.NewRegistry()
	content := sim.NewSurface("content")

	var changes []bool
	n := New(WithOnChange(func(shown bool) { changes = append(changes, shown) }))
	if err := n.Bind(reg, content); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	swipe(content, 200)
	if !n.Shown() {
		t.Fatal("swipe right did not show the panel")
	}
	swipe(content, 200)
	swipe(content, -200)
	if n.Shown() {
		t.Fatal("swipe left did not hide the panel")
	}
	swipe(content, 200)
	tap(content, nil)
	if n.Shown() {
		t.Fatal("tap did not hide the panel")
	}

	if diff := cmp.Diff([]bool{true, false, true, false}, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestHideDefersWhenHidden(t *testing.T) {
	reg := gesture.NewRegistry()
	content := sim.NewSurface("content")
	n := New()

	if err := reg.RegisterSwipe(content, gesture.Left, n.Hide); err != nil {
		t.Fatalf("RegisterSwipe() error = %v", err)
	}
	if err := reg.RegisterSwipe(content, gesture.Right, n.Show); err != nil {
		t.Fatalf("RegisterSwipe() error = %v", err)
	}
	// A loose tap also matches a short swipe, so it sees whatever hide defers.
	var fallthroughs int
	loose := func(*gesture.Gesture) { fallthroughs++ }
	if err := reg.RegisterTap(content, loose, gesture.WithThreshold(300)); err != nil {
		t.Fatalf("RegisterTap() error = %v", err)
	}

	swipe(content, -200)
	if n.Shown() {
		t.Fatal("swipe left opened the panel")
	}
	if fallthroughs != 1 {
		t.Fatalf("fallthroughs = %d after hide on closed panel, want 1", fallthroughs)
	}

	swipe(content, 200)
	swipe(content, -200)
	if n.Shown() {
		t.Error("swipe left did not hide the open panel")
	}
	if fallthroughs != 1 {
		t.Errorf("fallthroughs = %d, want 1: hide on an open panel claims", fallthroughs)
	}
}

func TestHideOnClosedPanel(t *testing.T) {
	n := New()
	g := &gesture.Gesture{Kind: gesture.KindTap, Fingers: 1, Handled: true}
	n.Hide(g)
	if !g.Deferred() || g.Claimed() {
		t.Errorf("Deferred = %t, Claimed = %t, want deferred and unclaimed", g.Deferred(), g.Claimed())
	}
}

func TestHideInsidePanel(t *testing.T) {
	p := &panel{}
	n := New(WithInside(func(target any) bool { return target == p }))
	n.Show(nil)

	g := &gesture.Gesture{Kind: gesture.KindTap, Fingers: 1, Handled: true, Target: p}
	n.Hide(g)
	if !n.Shown() {
		t.Error("tap inside the panel hid it")
	}
	if !g.Deferred() {
		t.Error("tap inside the panel was not deferred")
	}

	g = &gesture.Gesture{Kind: gesture.KindTap, Fingers: 1, Handled: true, Target: "elsewhere"}
	n.Hide(g)
	if n.Shown() {
		t.Error("tap outside the panel did not hide it")
	}
	if g.Deferred() {
		t.Error("tap outside the panel was deferred")
	}
}

func TestAction(t *testing.T) {
	tests := []struct {
		name      string
		actions   []string
		wantShown bool
		wantDefer bool
	}{
		{name: "show", actions: []string{ActionShow}, wantShown: true},
		{name: "show twice claims", actions: []string{ActionShow, ActionShow}, wantShown: true},
		{name: "hide closed defers", actions: []string{ActionHide}, wantDefer: true},
		{name: "show then hide", actions: []string{ActionShow, ActionHide}},
		{name: "toggle opens", actions: []string{ActionToggle}, wantShown: true},
		{name: "toggle twice", actions: []string{ActionToggle, ActionToggle}},
		{name: "unknown defers", actions: []string{"nav.explode"}, wantDefer: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			var last *gesture.Gesture
			for _, a := range tt.actions {
				last = &gesture.Gesture{Kind: gesture.KindTap, Fingers: 1, Handled: true}
				n.Action(a, last)
			}
			if n.Shown() != tt.wantShown {
				t.Errorf("Shown() = %t, want %t", n.Shown(), tt.wantShown)
			}
			if last.Deferred() != tt.wantDefer {
				t.Errorf("Deferred() = %t, want %t", last.Deferred(), tt.wantDefer)
			}
		})
	}
}

func TestActionNilGesture(t *testing.T) {
	n := New()
	n.Action(ActionHide, nil)
	n.Action("unknown", nil)
	n.Action(ActionToggle, nil)
	if !n.Shown() {
		t.Error("toggle with nil gesture did not open the panel")
	}
}

func TestShowHideWithoutGesture(t *testing.T) {
	var changes []bool
	n := New(
		WithInside(func(any) bool { return true }),
		WithOnChange(func(shown bool) { changes = append(changes, shown) }),
	)

	n.Show(nil)
	n.Show(nil)
	n.Hide(nil)
	n.Hide(nil)

	if diff := cmp.Diff([]bool{true, false}, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}
