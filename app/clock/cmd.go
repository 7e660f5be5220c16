package clock

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BIwashi/framefind/pkg/cli"
	"github.com/BIwashi/framefind/pkg/clock"
)

type printer struct {
	hz    int
	count int
}

func NewCommand() *cobra.Command {
	s := &printer{
		hz:    100,
		count: 0,
	}

	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Print the current epoch time on a single refreshing line.",
		Long: `Print the wall-clock epoch time with millisecond precision, overwriting
the same terminal line at a fixed rate. Point a camera at it to check the
wall-clock timestamps of a recording. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().IntVar(&s.hz, "hz", s.hz, "Refresh rate in ticks per second")
	cmd.Flags().IntVar(&s.count, "count", s.count, "Stop after this many ticks (0 runs until interrupted)")

	return cmd
}

func (s *printer) run(ctx context.Context, input cli.Input) error {
	if s.hz <= 0 {
		return errors.Newf("--hz must be positive, got %d", s.hz)
	}
	if s.count < 0 {
		return errors.Newf("--count must not be negative, got %d", s.count)
	}

	input.Logger.Debug("Starting clock", "hz", s.hz, "count", s.count)

	p := &clock.Printer{
		Out:      input.Stdout,
		Period:   time.Second / time.Duration(s.hz),
		MaxTicks: s.count,
	}
	return p.Run(ctx)
}
