package command

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Runner runs an external program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError is returned when a command exits with a non-zero status.
type ExitError struct {
	Args     []string
	Stderr   string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("Command failed:\n  %s\n\nstderr:\n%s", strings.Join(e.Args, " "), e.Stderr)
}

// ExecRunner runs commands with os/exec, capturing stdout and stderr separately.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner creates a new ExecRunner
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{
		logger: logger,
	}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	argv := append([]string{name}, args...)
	r.logger.Debug("Running command", "cmd", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if ctx.Err() != nil {
				return nil, errors.Wrapf(ctx.Err(), "%s interrupted", name)
			}
			return nil, &ExitError{
				Args:     argv,
				Stderr:   strings.TrimSpace(stderr.String()),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return nil, errors.Wrapf(err, "failed to run %s", name)
	}

	r.logger.Debug("Command finished", "cmd", name, "stdout_bytes", stdout.Len())
	return stdout.Bytes(), nil
}
