package command

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) *ExecRunner {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return NewExecRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExecRunnerReturnsStdout(t *testing.T) {
	r := newTestRunner(t)

	out, err := r.Run(context.Background(), "sh", "-c", "echo 10.0; echo oops >&2")
	require.NoError(t, err)
	require.Equal(t, "10.0\n", string(out))
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Run(context.Background(), "sh", "-c", "echo 'No such file' >&2; exit 3")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.ExitCode)
	require.Equal(t, "No such file", exitErr.Stderr)
	require.Equal(t, []string{"sh", "-c", "echo 'No such file' >&2; exit 3"}, exitErr.Args)
	require.Equal(t,
		"Command failed:\n  sh -c echo 'No such file' >&2; exit 3\n\nstderr:\nNo such file",
		err.Error(),
	)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := newTestRunner(t)

	_, err := r.Run(context.Background(), "framefind-no-such-binary")
	require.Error(t, err)

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr))
	require.Contains(t, err.Error(), "failed to run framefind-no-such-binary")
}

func TestExecRunnerCancelled(t *testing.T) {
	r := newTestRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}
