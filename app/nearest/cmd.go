package nearest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BIwashi/framefind/pkg/cli"
	"github.com/BIwashi/framefind/pkg/command"
	"github.com/BIwashi/framefind/pkg/ffmpeg"
	"github.com/BIwashi/framefind/pkg/nearest"
)

type locator struct {
	outPath string
	show    bool

	videoPath string
	target    float64

	newRunner func(logger *slog.Logger) command.Runner
}

func NewCommand() *cobra.Command {
	return newCommand(func(logger *slog.Logger) command.Runner {
		return command.NewExecRunner(logger)
	})
}

func newCommand(newRunner func(logger *slog.Logger) command.Runner) *cobra.Command {
	s := &locator{
		outPath:   "",
		show:      false,
		newRunner: newRunner,
	}

	cmd := &cobra.Command{
		Use:   "nearest VIDEO TIMESTAMP",
		Short: "Extract the frame nearest to an epoch timestamp.",
		Long: `Find the video frame whose best-effort timestamp is closest to TIMESTAMP
(epoch seconds) and extract it as an image.

Works best with files recorded using:
  -use_wallclock_as_timestamps 1 -copyts`,
		Example: `  framefind nearest cam0_copyts.mkv 1772097498.033
  framefind nearest cam0_copyts.mkv 1772097498.033 --show
  framefind nearest cam0_copyts.mkv 1772097498.033 --out /tmp/frame.png`,
		Args: s.parseArgs,
		RunE: cli.WithContext(s.run),
	}

	cmd.Flags().StringVar(&s.outPath, "out", s.outPath, "Output image path (default: /tmp/frame_<n>.png)")
	cmd.Flags().BoolVar(&s.show, "show", s.show, "Display the extracted frame using ffplay")

	return cmd
}

func (s *locator) parseArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	target, err := nearest.ParseTarget(args[1])
	if err != nil {
		return err
	}
	s.videoPath = args[0]
	s.target = target
	return nil
}

func (s *locator) run(ctx context.Context, input cli.Input) error {
	var (
		runner    = s.newRunner(input.Logger)
		prober    = ffmpeg.NewProber(input.Config.FFprobePath, runner, input.Logger)
		extractor = ffmpeg.NewExtractor(input.Config.FFmpegPath, runner, input.Logger)
	)

	timestamps, err := prober.FrameTimestamps(ctx, s.videoPath)
	if err != nil {
		return err
	}

	match, err := nearest.Find(timestamps, s.target)
	if err != nil {
		return err
	}
	if skipped := timestamps.SkippedCount(); skipped > 0 {
		input.Logger.Warn("ffprobe reported frames without a usable timestamp; frame index may not match decode order",
			"video", s.videoPath,
			"skipped_frames", skipped,
			"frame_index", match.Index,
		)
	}

	outPath := s.outPath
	if outPath == "" {
		outPath = nearest.DefaultOutputPath(match.Index)
	}
	if err := extractor.ExtractFrame(ctx, s.videoPath, match.Index, outPath); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(input.Stdout,
		"target_ts=%.6f\nnearest_frame=%d\nframe_ts=%.6f\nabs_diff_s=%.6f\noutput=%s\n",
		s.target, match.Index, match.Timestamp, match.Diff, outPath,
	); err != nil {
		return errors.Wrap(err, "write result")
	}

	if s.show {
		title := fmt.Sprintf("frame=%d  ts=%.6f  diff=%.3fs", match.Index, match.Timestamp, match.Diff)
		ffmpeg.NewPlayer(input.Config.FFplayPath, runner, input.Logger).Show(ctx, outPath, title)
	}

	return nil
}
