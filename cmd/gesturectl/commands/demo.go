package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/touchgesture/internal/app"
	"github.com/dshills/touchgesture/internal/event"
	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/platform/term"
	"github.com/dshills/touchgesture/internal/trace"
)

// navWidth is the width of the nav pane in cells.
const navWidth = 20

type demoOptions struct {
	record  string
	logFile string
	watch   bool
}

func demoCmd(opts *rootOptions) *cobra.Command {
	var dopts demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Make gestures with the mouse in the terminal",
		Long: `Demo splits the terminal into a nav pane on the left and a content pane.
Dragging with the left button is a one-finger touch; a click is a tap.
The status line shows the gestures claimed so far. Press q or Esc to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var log io.Writer = io.Discard
			if dopts.logFile != "" {
				f, err := os.Create(dopts.logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				log = f
			}
			aopts, err := opts.appOptions(log)
			if err != nil {
				return err
			}

			s, err := term.NewScreen(term.DefaultConfig())
			if err != nil {
				return err
			}
			if err := s.Init(); err != nil {
				return err
			}
			summary, err := runDemo(cmd.Context(), s, aopts, dopts)
			s.Fini()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dopts.record, "record", "", "write the touch events to this trace file on exit")
	f.StringVar(&dopts.logFile, "log-file", "", "write log lines to this file")
	f.BoolVar(&dopts.watch, "watch", false, "reload --config when it changes")
	return cmd
}

// runDemo runs the event loop on an initialized screen until the user
// quits or ctx is done, and returns the summary to print afterwards.
func runDemo(ctx context.Context, s *term.Screen, aopts app.Options, dopts demoOptions) (string, error) {
	d := newDemo(s)

	a, err := app.New(ctx, aopts, s.Router())
	if err != nil {
		return "", err
	}
	defer a.Shutdown()

	if dopts.watch {
		if err := a.Watch(ctx); err != nil {
			return "", err
		}
	}
	if _, err := a.Subscribe(gesture.TopicRoot+".**", d.setLast, event.WithPriority(event.PriorityLow)); err != nil {
		return "", err
	}

	var rec *trace.Recorder
	if dopts.record != "" {
		rec = trace.NewRecorder()
		for _, p := range s.Router().Panes() {
			rec.Attach(p.Name(), p)
		}
		defer rec.Close()
	}

	stop := context.AfterFunc(ctx, func() {
		_ = s.Tcell().PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for running := true; running; {
		d.draw(a)

		ev, _ := s.Poll()
		switch ev := ev.(type) {
		case nil:
			running = false
		case *tcell.EventInterrupt:
			running = ctx.Err() == nil
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				running = false
			}
		case *tcell.EventResize:
			d.layout()
			s.Tcell().Sync()
		}
	}

	var b strings.Builder
	if rec != nil {
		if err := rec.WriteFile(dopts.record); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "recorded %d events to %s\n", rec.Len(), dopts.record)
	}
	fmt.Fprintf(&b, "%s, nav shown=%t\n", a.Metrics().Snapshot(), a.Nav().Shown())
	return b.String(), nil
}

// demo owns the pane layout and the drawing.
type demo struct {
	screen  *term.Screen
	content *term.Pane
	nav     *term.Pane

	mu   sync.Mutex
	last string
}

func newDemo(s *term.Screen) *demo {
	r := s.Router()
	d := &demo{
		screen:  s,
		content: r.AddPane("content", term.Rect{}),
		nav:     r.AddPane("nav", term.Rect{}),
		last:    "none",
	}
	d.layout()
	return d
}

// layout sizes the panes to the screen, leaving the bottom row for the
// status line.
func (d *demo) layout() {
	w, h := d.screen.Tcell().Size()
	body := max(h-1, 0)
	d.content.SetRect(term.Rect{W: w, H: body})
	d.nav.SetRect(term.Rect{W: min(navWidth, w), H: body})
}

func (d *demo) setLast(g gesture.Gesture) {
	d.mu.Lock()
	d.last = fmt.Sprintf("%s on %v (%d finger, %v)", g.Name(), g.Surface, g.Fingers, g.Duration)
	d.mu.Unlock()
}

func (d *demo) draw(a *app.Application) {
	scr := d.screen.Tcell()
	scr.Clear()
	w, h := scr.Size()

	navStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	label := "nav (hidden)"
	if a.Nav().Shown() {
		navStyle = tcell.StyleDefault.Reverse(true)
		label = "nav (shown)"
	}
	nr := d.nav.Rect()
	fill(scr, nr, navStyle)
	drawText(scr, nr.X+1, nr.Y+1, nr.W-1, navStyle, label)

	cr := d.content.Rect()
	drawText(scr, nr.W+2, cr.Y+1, cr.W-nr.W-2, tcell.StyleDefault, "content: drag to swipe, click to tap")

	d.mu.Lock()
	last := d.last
	d.mu.Unlock()
	status := fmt.Sprintf(" %s | last: %s | q quits", a.Metrics().Snapshot(), last)
	if pad := w - len(status); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	drawText(scr, 0, h-1, w, tcell.StyleDefault.Reverse(true), status)

	scr.Show()
}

func fill(s tcell.Screen, r term.Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		if i >= width {
			return
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}
