// Command gesturectl checks gesture profiles, replays recorded touch traces
// through them and demonstrates them with the mouse in a terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/touchgesture/cmd/gesturectl/commands"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx, version)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
