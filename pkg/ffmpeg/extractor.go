package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/BIwashi/framefind/pkg/command"
)

// Extractor writes single frames of a video to image files with ffmpeg.
type Extractor struct {
	bin    string
	runner command.Runner
	logger *slog.Logger
}

func NewExtractor(bin string, runner command.Runner, logger *slog.Logger) *Extractor {
	return &Extractor{
		bin:    bin,
		runner: runner,
		logger: logger,
	}
}

// ExtractFrame writes the frame at the zero-based decode index to outPath,
// overwriting any existing file.
func (e *Extractor) ExtractFrame(ctx context.Context, videoPath string, index int, outPath string) error {
	if index < 0 {
		return errors.Newf("invalid frame index: %d", index)
	}

	e.logger.Info("Extracting frame", "video", videoPath, "index", index, "output", outPath)

	if _, err := e.runner.Run(ctx, e.bin, extractArgs(videoPath, index, outPath)...); err != nil {
		return errors.Wrapf(err, "extract frame %d", index)
	}
	return nil
}

func extractArgs(videoPath string, index int, outPath string) []string {
	return []string{
		"-v", "error",
		"-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf(`select=eq(n\,%d)`, index),
		"-vsync", "0",
		"-frames:v", "1",
		outPath,
	}
}
