package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BIwashi/framefind/pkg/cli"
	"github.com/BIwashi/framefind/pkg/command"
	"github.com/BIwashi/framefind/pkg/ffmpeg"
	"github.com/BIwashi/framefind/pkg/mcap"
)

type indexer struct {
	mcapFile  string
	videoPath string

	newRunner func(logger *slog.Logger) command.Runner
}

func NewCommand() *cobra.Command {
	return newCommand(func(logger *slog.Logger) command.Runner {
		return command.NewExecRunner(logger)
	})
}

func newCommand(newRunner func(logger *slog.Logger) command.Runner) *cobra.Command {
	s := &indexer{
		mcapFile:  "",
		newRunner: newRunner,
	}

	cmd := &cobra.Command{
		Use:   "index VIDEO",
		Short: "Export per-frame timestamps of a video to MCAP.",
		Long: `Probe the best-effort timestamp of every frame in VIDEO and write them to an
MCAP file on the /video/frames topic, so frames of a wall-clock recording can
be aligned with other MCAP data in Foxglove.`,
		Example: `  framefind index cam0_copyts.mkv --mcap-file cam0_frames.mcap`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			s.videoPath = args[0]
			return nil
		},
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().StringVar(&s.mcapFile, "mcap-file", s.mcapFile, "MCAP file")
	cmd.MarkFlagRequired("mcap-file")

	return cmd
}

func (s *indexer) run(ctx context.Context, input cli.Input) error {
	input.Logger.Info("Starting frame timestamp export",
		"video", s.videoPath,
		"mcap_file", s.mcapFile,
	)

	prober := ffmpeg.NewProber(input.Config.FFprobePath, s.newRunner(input.Logger), input.Logger)
	timestamps, err := prober.FrameTimestamps(ctx, s.videoPath)
	if err != nil {
		return err
	}

	out, err := os.Create(s.mcapFile)
	if err != nil {
		return errors.Wrap(err, "failed to create MCAP file")
	}
	defer out.Close()

	writer, err := mcap.NewWriter(out, s.videoPath)
	if err != nil {
		return errors.Wrap(err, "failed to create MCAP writer")
	}

	startTime := time.Now()
	frameCount := 0
	for {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "export cancelled")
		default:
		}

		pts, err := timestamps.ReadNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return errors.Wrap(err, "failed to read frame timestamp")
		}

		if err := writer.WriteFrame(frameCount, pts); err != nil {
			return errors.Wrap(err, "failed to write frame")
		}
		frameCount++
	}

	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to finalize MCAP file")
	}
	if err := out.Sync(); err != nil {
		return errors.Wrap(err, "failed to sync MCAP file")
	}

	input.Logger.Info("Export completed",
		"frames", frameCount,
		"skipped_lines", timestamps.SkippedCount(),
		"output_file", s.mcapFile,
		"duration", time.Since(startTime),
	)

	if frameCount == 0 {
		input.Logger.Warn("No frame timestamps found (file may have no video stream)", "video", s.videoPath)
	}

	if _, err := fmt.Fprintf(input.Stdout, "frames=%d skipped=%d output=%s\n",
		frameCount, timestamps.SkippedCount(), s.mcapFile); err != nil {
		return errors.Wrap(err, "write summary")
	}
	return nil
}
