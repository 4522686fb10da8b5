package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/touchgesture/internal/app"
	"github.com/dshills/touchgesture/internal/event"
	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
	"github.com/dshills/touchgesture/internal/trace"
)

func replayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay trace.json",
		Short: "Replay recorded touch traces through a profile",
		Long: `Replay feeds the touch events of a trace file through the profile and
scripts, printing every gesture that is claimed. Each trace names the
surface its events belong to; profile bindings on surfaces that no trace
mentions are skipped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			traces, err := trace.ParseFile(args[0])
			if err != nil {
				return err
			}

			surfaces := make(map[string]*sim.Surface)
			resolver := touch.Surfaces{}
			for _, tr := range traces {
				if _, ok := surfaces[tr.Surface]; !ok {
					s := sim.NewSurface(tr.Surface)
					surfaces[tr.Surface] = s
					resolver[tr.Surface] = s
				}
			}

			aopts, err := opts.appOptions(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), aopts, resolver)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			out := cmd.OutOrStdout()
			if _, err := a.Subscribe(gesture.TopicRoot+".**", func(g gesture.Gesture) {
				printGesture(out, g)
			}, event.WithPriority(event.PriorityLow)); err != nil {
				return err
			}

			n, err := trace.ReplayAll(traces, func(name string) (trace.Dispatcher, bool) {
				s, ok := surfaces[name]
				if !ok {
					return nil, false
				}
				return s, true
			}, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%d events, %s, nav shown=%t\n", n, a.Metrics().Snapshot(), a.Nav().Shown())
			return nil
		},
	}
}

// printGesture writes one line per gesture:
//
//	content  swiperight fingers=1 dx=[200] dy=[5] 200ms
func printGesture(w io.Writer, g gesture.Gesture) {
	fmt.Fprintf(w, "%-8v %-10s fingers=%d dx=%s dy=%s %v\n",
		g.Surface, g.Name(), g.Fingers, floats(g.DistX), floats(g.DistY), g.Duration)
}

func floats(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
