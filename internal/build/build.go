// Package build orchestrates a blog build: resolve projects, discover source
// files, publish them, generate the sitemap, and tidy the output tree.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/manifest"
	"github.com/dottxt-ai/blogbuilder/internal/markdown"
	"github.com/dottxt-ai/blogbuilder/internal/page"
	"github.com/dottxt-ai/blogbuilder/internal/publish"
	"github.com/dottxt-ai/blogbuilder/internal/registry"
)

// Options tune a single build invocation.
type Options struct {
	MetaProject string // defaults to the implicit "all" meta-project
	OutputDir   string // overrides the configured output directory when set
	Clean       bool   // force-remove the output tree before building
}

// Run executes one complete build. The returned report is non-nil whenever
// the configuration loaded; a non-nil error means the process should exit
// non-zero.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	metaProject := opts.MetaProject
	if metaProject == "" {
		metaProject = config.MetaProjectAll
	}
	outputRoot := cfg.Output.Directory
	if opts.OutputDir != "" {
		outputRoot = opts.OutputDir
	}

	buildID := uuid.NewString()
	report := NewReport(buildID)
	slog.Info("Starting blog build",
		slog.String("build_id", buildID),
		slog.String("meta_project", metaProject),
		slog.String("output", outputRoot))

	if opts.Clean || cfg.Output.Clean {
		if err := os.RemoveAll(outputRoot); err != nil {
			return report, fmt.Errorf("clean output directory: %w", err)
		}
	}
	if err := os.MkdirAll(outputRoot, 0755); err != nil {
		return report, fmt.Errorf("create output directory: %w", err)
	}

	previous, err := manifest.Load(outputRoot)
	if err != nil {
		slog.Warn("Previous manifest unreadable, skipping prune", slog.String("error", err.Error()))
		previous = manifest.New("")
	}

	tpl, err := page.New(cfg.Site, cfg.Template)
	if err != nil {
		return report, fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}
	renderer := markdown.NewRenderer()

	st := &State{
		Config:      cfg,
		MetaProject: metaProject,
		OutputRoot:  outputRoot,
		Registry:    registry.New(cfg),
		Template:    tpl,
		Renderer:    renderer,
		Publisher:   publish.New(outputRoot, tpl, renderer),
		Current:     manifest.New(buildID),
		Previous:    previous,
		Report:      report,
	}

	runErr := RunStages(ctx, st, DefaultStages())
	report.DeriveOutcome()
	report.Finish()
	report.LogSummary()

	if runErr != nil {
		return report, runErr
	}
	if report.Outcome == OutcomeFailed {
		return report, fmt.Errorf("build failed: see report issues")
	}
	return report, nil
}
