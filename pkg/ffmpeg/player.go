package ffmpeg

import (
	"context"
	"log/slog"

	"github.com/BIwashi/framefind/pkg/command"
)

// Player opens still images in an ffplay window.
type Player struct {
	bin    string
	runner command.Runner
	logger *slog.Logger
}

func NewPlayer(bin string, runner command.Runner, logger *slog.Logger) *Player {
	return &Player{
		bin:    bin,
		runner: runner,
		logger: logger,
	}
}

// Show blocks until the viewer window is closed. The viewer's exit status is ignored.
func (p *Player) Show(ctx context.Context, imagePath, title string) {
	_, err := p.runner.Run(ctx, p.bin,
		"-v", "error",
		"-loop", "1",
		"-framerate", "1",
		"-window_title", title,
		imagePath,
	)
	if err != nil {
		p.logger.Debug("ffplay exited", "image", imagePath, "error", err)
	}
}
