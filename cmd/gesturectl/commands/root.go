package commands

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/touchgesture/internal/app"
	"github.com/dshills/touchgesture/internal/config"
	"github.com/dshills/touchgesture/internal/logging"
)

//go:embed default.toml
var defaultProfile []byte

// rootOptions holds the persistent flags.
type rootOptions struct {
	config   string
	scripts  []string
	logLevel string
}

// appOptions returns the application options for the flags. Without
// --config the built-in navigation profile is used.
func (o *rootOptions) appOptions(log io.Writer) (app.Options, error) {
	opts := app.Options{
		ConfigPath: o.config,
		Scripts:    o.scripts,
		LogLevel:   o.logLevel,
		LogOutput:  log,
	}
	if o.config == "" {
		p, err := config.Parse("default.toml", config.FormatTOML, defaultProfile)
		if err != nil {
			return opts, err
		}
		opts.Profile = p
	}
	return opts, nil
}

// Execute runs the gesturectl command line.
func Execute(ctx context.Context, version string) error {
	return NewRootCmd(version).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "gesturectl",
		Short:        "Check, replay and try out touch gesture profiles",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel != "" && !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.config, "config", "c", "", "gesture profile (.toml, .yaml)")
	pf.StringArrayVarP(&opts.scripts, "script", "s", nil, "Lua script run after the profile (repeatable)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error (default from the profile)")

	root.AddCommand(checkCmd(), replayCmd(opts), demoCmd(opts), watchCmd())
	return root
}
