package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dottxt-ai/blogbuilder/internal/build"
	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/preview"
)

// PreviewCmd builds the site, serves it locally, and rebuilds on changes.
type PreviewCmd struct {
	Port   int    `help:"Preview server port" default:"8080"`
	Output string `short:"o" help:"Output directory (overrides config)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return preview.Serve(ctx, cfg, build.Options{OutputDir: p.Output}, p.Port)
}
