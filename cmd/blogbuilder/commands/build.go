package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dottxt-ai/blogbuilder/internal/build"
	"github.com/dottxt-ai/blogbuilder/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory (overrides config)"`
	Clean   bool   `help:"Remove the output directory before building"`
	Project string `short:"p" help:"Project or meta-project to build" default:"all"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	report, err := build.Run(context.Background(), cfg, build.Options{
		MetaProject: b.Project,
		OutputDir:   b.Output,
		Clean:       b.Clean,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Build %s in %s\n", report.Outcome, report.Duration().Round(time.Millisecond))
	return nil
}
