package clock

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultPeriod is the refresh interval of the printer (100 Hz).
const DefaultPeriod = time.Second / 100

// Printer repeatedly overwrites a single terminal line with the current epoch time.
//
// Ticks are scheduled against a deadline that advances by Period each tick.
// If a tick overruns, the next one starts immediately; ticks are never skipped.
type Printer struct {
	Out    io.Writer
	Period time.Duration
	Clock  Clock
	Sleep  SleepFunc
	// MaxTicks stops the printer after that many ticks. Zero runs until ctx is done.
	MaxTicks int
}

// FormatEpoch renders t as seconds since the Unix epoch with millisecond precision.
func FormatEpoch(t time.Time) string {
	return fmt.Sprintf("%.3f", float64(t.UnixNano())/1e9)
}

// Run prints ticks until ctx is cancelled or MaxTicks is reached.
func (p *Printer) Run(ctx context.Context) error {
	var (
		period = p.Period
		clk    = p.Clock
		sleep  = p.Sleep
	)
	if period <= 0 {
		period = DefaultPeriod
	}
	if clk == nil {
		clk = DefaultClock()
	}
	if sleep == nil {
		sleep = SleepContext
	}

	w := bufio.NewWriter(p.Out)
	next := clk.Now()

	for tick := 0; p.MaxTicks == 0 || tick < p.MaxTicks; tick++ {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := fmt.Fprintf(w, "\r%s", FormatEpoch(clk.Now())); err != nil {
			return errors.Wrap(err, "write time")
		}
		if err := w.Flush(); err != nil {
			return errors.Wrap(err, "flush output")
		}

		next = next.Add(period)
		if dt := next.Sub(clk.Now()); dt > 0 {
			if err := sleep(ctx, dt); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return errors.Wrap(err, "sleep until next tick")
			}
		}
	}
	return nil
}
