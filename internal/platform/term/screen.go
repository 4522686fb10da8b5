package term

import (
	"github.com/gdamore/tcell/v2"
)

// Screen couples a tcell screen with a Router.
type Screen struct {
	screen tcell.Screen
	router *Router
}

// NewScreen creates a screen for the current terminal.
func NewScreen(config Config, opts ...RouterOption) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenWith(s, config, opts...), nil
}

// NewScreenWith wraps an existing tcell screen, e.g. a simulation screen.
func NewScreenWith(s tcell.Screen, config Config, opts ...RouterOption) *Screen {
	return &Screen{
		screen: s,
		router: NewRouter(config, opts...),
	}
}

// Init initializes the terminal and enables button and drag reporting.
func (s *Screen) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.screen.Fini()
}

// Tcell returns the underlying screen for drawing.
func (s *Screen) Tcell() tcell.Screen {
	return s.screen
}

// Router returns the pane router.
func (s *Screen) Router() *Router {
	return s.router
}

// Poll waits for the next terminal event and routes it. consumed reports
// whether the event was part of a touch. A nil event means the screen was
// finalized.
func (s *Screen) Poll() (ev tcell.Event, consumed bool) {
	ev = s.screen.PollEvent()
	if ev == nil {
		return nil, false
	}
	return ev, s.router.HandleEvent(ev)
}
