package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glint-ui/glint/internal/command"
	"github.com/glint-ui/glint/internal/runtime"
	"github.com/glint-ui/glint/internal/subscription"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Interval time.Duration
	Ticks    int
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a minimal program on the effect runtime",
		Long: `Run a minimal counter program on the effect runtime.

The program subscribes to a timer, counts ticks and stops itself after
the requested number. It exists to exercise the full driver loop:
subscription reconciliation, message delivery and command execution.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", 500*time.Millisecond, "tick interval")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", 5, "number of ticks before stopping")

	return cmd
}

// demoProgram counts timer ticks and stops the runtime at a limit.
type demoProgram struct {
	limit int
	count int
	every time.Duration
	stop  func()
	out   func(format string, a ...any)
}

func (p *demoProgram) Update(msg string) command.Command[string] {
	switch msg {
	case "tick":
		p.count++
		p.out("tick %d/%d\n", p.count, p.limit)
		if p.count >= p.limit {
			// Stop via a command so the final tick is fully processed
			// before the queue closes.
			return command.Done("stop")
		}
		return command.None[string]()

	case "stop":
		p.stop()
		return command.None[string]()

	default:
		return command.None[string]()
	}
}

func (p *demoProgram) Subscriptions() subscription.Subscription[string] {
	if p.count >= p.limit {
		return subscription.None[string]()
	}
	return subscription.Map(subscription.Every(p.every), func(time.Time) string {
		return "tick"
	})
}

func runDemo(cmd *cobra.Command, opts *DemoOptions) error {
	prog := &demoProgram{
		limit: opts.Ticks,
		every: opts.Interval,
		out: func(format string, a ...any) {
			fmt.Fprintf(cmd.OutOrStdout(), format, a...)
		},
	}

	rt := runtime.New[string](prog)
	prog.stop = rt.Stop

	ctx := cmd.Context()
	if err := rt.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run demo: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "done after %d ticks\n", prog.count)
	return nil
}
