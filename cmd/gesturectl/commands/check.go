package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/touchgesture/internal/config"
	"github.com/dshills/touchgesture/internal/gesture"
	"github.com/dshills/touchgesture/internal/platform/sim"
	"github.com/dshills/touchgesture/internal/touch"
)

func checkCmd() *cobra.Command {
	var schema bool

	cmd := &cobra.Command{
		Use:   "check [profile...]",
		Short: "Validate gesture profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if schema {
				_, err := out.Write(config.Schema())
				return err
			}
			if len(args) == 0 {
				return errors.New("no profile given")
			}

			failed := 0
			for _, path := range args {
				if _, err := checkProfile(out, path); err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d profiles invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&schema, "schema", false, "print the profile JSON schema and exit")
	return cmd
}

// checkProfile loads path and reports the result to w.
func checkProfile(w io.Writer, path string) (*config.Profile, error) {
	p, err := config.Load(path)
	if err != nil {
		reportProblems(w, path, err)
		return nil, err
	}

	fmt.Fprintf(w, "ok   %s (%d bindings, %d active)\n", path, len(p.Bindings), activeBindings(p))
	for _, b := range p.Bindings {
		c, err := p.ConstraintsFor(b)
		if err != nil {
			fmt.Fprintf(w, "     %s on %s: %v\n", b.Gesture, b.Surface, err)
			continue
		}
		fmt.Fprintf(w, "     %-8s %-12s fingers=%d %s threshold=%g restraint=%g -> %s\n",
			b.Surface, b.Gesture, b.FingerCount(), c.Duration, c.Threshold, c.Restraint, b.Action)
	}
	return p, nil
}

func reportProblems(w io.Writer, path string, err error) {
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(w, "FAIL %s\n", path)
	for _, pr := range verr.Problems {
		loc := pr.Location
		if loc == "" {
			loc = "/"
		}
		fmt.Fprintf(w, "     %s: %s\n", loc, pr.Message)
	}
}

// activeBindings applies p to simulated surfaces and counts the bindings
// that survive. A later binding with the same surface, gesture and finger
// count replaces an earlier one.
func activeBindings(p *config.Profile) int {
	surfaces := make(map[string]*sim.Surface)
	resolver := touch.ResolverFunc(func(name string) (touch.Surface, error) {
		s, ok := surfaces[name]
		if !ok {
			s = sim.NewSurface(name)
			surfaces[name] = s
		}
		return s, nil
	})

	reg := gesture.NewRegistry()
	defer reg.Clear()
	_ = p.Apply(reg, resolver, nil)

	n := 0
	for _, s := range reg.Surfaces() {
		n += len(reg.Bindings(s))
	}
	return n
}
