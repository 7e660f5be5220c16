package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/BIwashi/framefind/pkg/command"
)

// Prober lists per-frame timestamps of the first video stream with ffprobe.
type Prober struct {
	bin    string
	runner command.Runner
	logger *slog.Logger
}

// NewProber creates a new Prober running the given ffprobe binary
func NewProber(bin string, runner command.Runner, logger *slog.Logger) *Prober {
	return &Prober{
		bin:    bin,
		runner: runner,
		logger: logger,
	}
}

// FrameTimestamps probes the best-effort timestamp of every frame in decode order.
func (p *Prober) FrameTimestamps(ctx context.Context, videoPath string) (*TimestampReader, error) {
	p.logger.Info("Probing frame timestamps", "video", videoPath)

	out, err := p.runner.Run(ctx, p.bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_frames",
		"-show_entries", "frame=best_effort_timestamp_time",
		"-of", "csv=p=0",
		videoPath,
	)
	if err != nil {
		return nil, errors.Wrap(err, "probe frame timestamps")
	}

	return NewTimestampReader(bytes.NewReader(out)), nil
}

// TimestampReader reads timestamps from ffprobe csv output, one frame per line.
// Only the first field of each line is used. Blank lines are ignored; lines
// reading N/A or failing to parse are skipped and counted.
type TimestampReader struct {
	scanner *bufio.Scanner
	lines   uint64
	skipped uint64
}

func NewTimestampReader(r io.Reader) *TimestampReader {
	return &TimestampReader{
		scanner: bufio.NewScanner(r),
	}
}

// ReadNext returns the next timestamp in seconds, or io.EOF once the output is exhausted.
func (r *TimestampReader) ReadNext() (float64, error) {
	for r.scanner.Scan() {
		r.lines++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		if line == "N/A" {
			r.skipped++
			continue
		}

		first, _, _ := strings.Cut(line, ",")
		ts, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
		if err != nil {
			r.skipped++
			continue
		}
		return ts, nil
	}
	if err := r.scanner.Err(); err != nil {
		return 0, errors.Wrap(err, "read ffprobe output")
	}
	return 0, io.EOF
}

// GetLineCount returns the number of lines consumed so far
func (r *TimestampReader) GetLineCount() uint64 {
	return r.lines
}

// SkippedCount returns the number of non-blank lines that carried no usable timestamp.
func (r *TimestampReader) SkippedCount() uint64 {
	return r.skipped
}
