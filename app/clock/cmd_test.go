package clock

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BIwashi/framefind/pkg/cli"
)

func runClock(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "warn")

	c := cli.NewCLI("framefind", "test")
	c.AddCommands(NewCommand())

	var stdout, stderr bytes.Buffer
	c.SetOutput(&stdout, &stderr)
	c.SetArgs(append([]string{"clock"}, args...))

	err := c.Run()
	return stdout.String(), err
}

func TestClockPrintsTicks(t *testing.T) {
	out, err := runClock(t, "--count", "3", "--hz", "1000")
	require.NoError(t, err)

	ticks := strings.Split(strings.TrimPrefix(out, "\r"), "\r")
	require.Len(t, ticks, 3)
	for _, tick := range ticks {
		require.Regexp(t, regexp.MustCompile(`^\d+\.\d{3}$`), tick)
	}
}

func TestClockRejectsArgs(t *testing.T) {
	_, err := runClock(t, "extra")
	require.Error(t, err)
}

func TestClockRejectsBadRate(t *testing.T) {
	_, err := runClock(t, "--hz", "0", "--count", "1")
	require.Error(t, err)

	_, err = runClock(t, "--count", "-1")
	require.Error(t, err)
}
