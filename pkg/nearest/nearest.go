package nearest

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrNoFrames         = errors.New("no frame timestamps found (file may have no video stream)")
	ErrInvalidTimestamp = errors.New("timestamp must be a number (epoch seconds)")
)

// Source yields frame timestamps in decode order and returns io.EOF when exhausted.
type Source interface {
	ReadNext() (float64, error)
}

// Match is the frame closest to the target timestamp.
type Match struct {
	Diff      float64
	Index     int
	Timestamp float64
}

// Find scans src once and returns the frame with the smallest absolute
// difference to target. The earliest frame wins ties.
func Find(src Source, target float64) (Match, error) {
	var (
		best  Match
		found bool
	)

	for idx := 0; ; idx++ {
		ts, err := src.ReadNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Match{}, errors.Wrapf(err, "read timestamp of frame %d", idx)
		}

		d := math.Abs(ts - target)
		if !found || d < best.Diff {
			best = Match{Diff: d, Index: idx, Timestamp: ts}
			found = true
		}
	}

	if !found {
		return Match{}, ErrNoFrames
	}
	return best, nil
}

// ParseTarget parses a target timestamp given in epoch seconds.
func ParseTarget(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.WithSecondaryError(ErrInvalidTimestamp, err)
	}
	return v, nil
}

// DefaultOutputPath is where a frame is written when no output path is given.
func DefaultOutputPath(index int) string {
	return fmt.Sprintf("/tmp/frame_%d.png", index)
}
