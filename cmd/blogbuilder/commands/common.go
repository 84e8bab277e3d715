package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global holds state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blog.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the blog into the output directory"`
	Clean    CleanCmd    `cmd:"" help:"Remove the output directory and build manifest"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Discover DiscoverCmd `cmd:"" help:"List discovered source files without publishing"`
	Preview  PreviewCmd  `cmd:"" help:"Build, serve locally, and rebuild on changes"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
