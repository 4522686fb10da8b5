package commands

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dshills/touchgesture/internal/config"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch profile",
		Short: "Revalidate and re-apply a profile every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			out := &lockedWriter{w: cmd.OutOrStdout()}

			_, _ = checkProfile(out, path)

			w, err := config.Watch(ctx, path,
				func(p *config.Profile) {
					fmt.Fprintf(out, "ok   %s (%d bindings, %d active)\n", path, len(p.Bindings), activeBindings(p))
				},
				config.WithErrorHandler(func(err error) {
					reportProblems(out, path, err)
				}),
			)
			if err != nil {
				return err
			}
			<-ctx.Done()
			return w.Close()
		},
	}
}

// lockedWriter serializes writes from the watcher goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
