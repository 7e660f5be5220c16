package main

import (
	"fmt"
	"os"

	"github.com/BIwashi/framefind/app/clock"
	"github.com/BIwashi/framefind/app/index"
	"github.com/BIwashi/framefind/app/nearest"
	"github.com/BIwashi/framefind/pkg/cli"
)

func main() {
	c := cli.NewCLI(
		"framefind",
		"Locate video frames by wall-clock timestamp.",
	)

	c.AddCommands(
		nearest.NewCommand(),
		clock.NewCommand(),
		index.NewCommand(),
	)

	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
