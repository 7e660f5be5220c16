package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BIwashi/framefind/pkg/config"
)

// Input is handed to every command's run function.
type Input struct {
	Logger *slog.Logger
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer
}

// CLI is the root command with the flags shared by all subcommands.
type CLI struct {
	root     *cobra.Command
	logLevel string
}

func NewCLI(name, short string) *CLI {
	c := &CLI{}
	c.root = &cobra.Command{
		Use:           name,
		Short:         short,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c.root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	return c
}

func (c *CLI) AddCommands(cmds ...*cobra.Command) {
	c.root.AddCommand(cmds...)
}

// SetArgs replaces os.Args[1:] for the next Run.
func (c *CLI) SetArgs(args []string) {
	c.root.SetArgs(args)
}

// SetOutput redirects command output, which defaults to the process stdout and stderr.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.root.SetOut(stdout)
	c.root.SetErr(stderr)
}

func (c *CLI) Run() error {
	return c.root.Execute()
}

// WithContext adapts a run function to cobra's RunE. The context is cancelled on SIGINT or SIGTERM.
func WithContext(run func(ctx context.Context, input Input) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		levelName := cfg.LogLevel
		if f := cmd.Flag("log-level"); f != nil && f.Changed {
			levelName = f.Value.String()
		}
		level, err := config.ParseLevel(levelName)
		if err != nil {
			return err
		}

		input := Input{
			Logger: slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
			Config: cfg,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
		return run(ctx, input)
	}
}
