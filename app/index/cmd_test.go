package index

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	fmcap "github.com/foxglove/mcap/go/mcap"
	"github.com/stretchr/testify/require"

	"github.com/BIwashi/framefind/pkg/cli"
	"github.com/BIwashi/framefind/pkg/command"
	"github.com/BIwashi/framefind/pkg/mcap"
)

type probeRunner struct {
	output string
	err    error
}

func (p *probeRunner) Run(context.Context, string, ...string) ([]byte, error) {
	return []byte(p.output), p.err
}

func runIndex(t *testing.T, runner command.Runner, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "warn")

	c := cli.NewCLI("framefind", "test")
	c.AddCommands(newCommand(func(*slog.Logger) command.Runner { return runner }))

	var stdout, stderr bytes.Buffer
	c.SetOutput(&stdout, &stderr)
	c.SetArgs(append([]string{"index"}, args...))

	err := c.Run()
	return stdout.String(), err
}

func TestIndexWritesMCAP(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames.mcap")
	runner := &probeRunner{output: "1772097498.000\n1772097498.033\nN/A\n1772097498.066\n"}

	stdout, err := runIndex(t, runner, "cam0.mkv", "--mcap-file", out)
	require.NoError(t, err)
	require.Equal(t, "frames=3 skipped=1 output="+out+"\n", stdout)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	reader, err := fmcap.NewReader(f)
	require.NoError(t, err)
	info, err := reader.Info()
	require.NoError(t, err)
	require.EqualValues(t, 3, info.Statistics.MessageCount)
	for _, ch := range info.Channels {
		require.Equal(t, mcap.FramesTopic, ch.Topic)
		require.Equal(t, "cam0.mkv", ch.Metadata["video"])
	}
}

func TestIndexRequiresOutput(t *testing.T) {
	_, err := runIndex(t, &probeRunner{output: "1.0\n"}, "cam0.mkv")
	require.Error(t, err)
}

func TestIndexProbeFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames.mcap")
	runner := &probeRunner{err: &command.ExitError{Args: []string{"ffprobe"}, Stderr: "No such file", ExitCode: 1}}

	_, err := runIndex(t, runner, "missing.mkv", "--mcap-file", out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "No such file")

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}
