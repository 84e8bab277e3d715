// Package publish writes discovered source files into the output tree, either
// rendered through the page template or copied verbatim.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/discover"
	"github.com/dottxt-ai/blogbuilder/internal/frontmatter"
	"github.com/dottxt-ai/blogbuilder/internal/logfields"
	"github.com/dottxt-ai/blogbuilder/internal/markdown"
	"github.com/dottxt-ai/blogbuilder/internal/page"
)

// Sentinel errors classifying per-file publish failures. Both are isolated to
// the failing file; the build continues with the remaining files.
var (
	ErrRender      = errors.New("blogbuilder: render error")
	ErrIO          = errors.New("blogbuilder: io error")
	ErrMissingDate = errors.New("frontmatter date required")
)

// RenderedPage describes one HTML page written to the output tree. Written
// once, never mutated afterwards.
type RenderedPage struct {
	Project    string
	SourcePath string
	OutputPath string    // on-disk path of the written file
	Link       string    // site-relative link, forward slashes, leading "/"
	Title      string
	Author     string
	Date       time.Time // zero when the source carries no date
	RawDate    string    // date exactly as written in the frontmatter
}

// Result is the outcome of publishing a single source file. Page is nil for
// verbatim copies and for failed files.
type Result struct {
	File discover.SourceFile
	Page *RenderedPage
	Err  error
}

// Publisher dispatches each file to its project's configured action.
type Publisher struct {
	outputRoot string
	tpl        *page.Template
	renderer   *markdown.Renderer
	workers    int
}

// New creates a publisher rooted at the given output directory.
func New(outputRoot string, tpl *page.Template, renderer *markdown.Renderer) *Publisher {
	return &Publisher{
		outputRoot: outputRoot,
		tpl:        tpl,
		renderer:   renderer,
		workers:    runtime.NumCPU(),
	}
}

// PublishProject publishes every file of one project on a bounded worker pool.
// Per-file failures land in the corresponding Result, not in the returned
// error; only context cancellation aborts the pool. Results keep the input
// order regardless of worker scheduling.
func (p *Publisher) PublishProject(ctx context.Context, project config.Project, files []discover.SourceFile) ([]Result, error) {
	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, f := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			pg, err := p.publishOne(project, f)
			results[i] = Result{File: f, Page: pg, Err: err}
			if err != nil {
				slog.Warn("File publish failed",
					logfields.Project(project.Name),
					logfields.File(f.RelativePath),
					logfields.Error(err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// publishOne dispatches a single file through the project's action.
func (p *Publisher) publishOne(project config.Project, f discover.SourceFile) (*RenderedPage, error) {
	switch project.Action {
	case config.ActionRender:
		return p.renderFile(project, f)
	case config.ActionCopy:
		return nil, p.copyFile(project, f)
	default:
		// Validation rejects unknown actions before any file is touched.
		return nil, fmt.Errorf("%w: unknown action %q", ErrRender, project.Action)
	}
}

func (p *Publisher) renderFile(project config.Project, f discover.SourceFile) (*RenderedPage, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, f.Path, err)
	}

	meta, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, f.RelativePath, err)
	}
	if project.WithDate && meta.Date == "" {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, f.RelativePath, ErrMissingDate)
	}
	date, err := meta.ParsedDate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, f.RelativePath, err)
	}

	fragment, err := p.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, f.RelativePath, err)
	}

	title := meta.Title
	if title == "" {
		title = frontmatter.DeriveTitle(f.Name)
	}

	doc, err := p.tpl.Render(title, meta.Author, meta.Date, true, fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRender, f.RelativePath, err)
	}

	relHTML := strings.TrimSuffix(f.RelativePath, filepath.Ext(f.RelativePath)) + ".html"
	outPath := filepath.Join(p.outputRoot, project.Output, relHTML)
	if err := writeFile(outPath, doc); err != nil {
		return nil, err
	}

	slog.Debug("Rendered page",
		logfields.Project(project.Name),
		logfields.File(f.RelativePath),
		logfields.Path(outPath))

	return &RenderedPage{
		Project:    project.Name,
		SourcePath: f.Path,
		OutputPath: outPath,
		Link:       "/" + filepath.ToSlash(filepath.Join(project.Output, relHTML)),
		Title:      title,
		Author:     meta.Author,
		Date:       date,
		RawDate:    meta.Date,
	}, nil
}

// CopyDestination returns the output path a verbatim copy is written to: the
// mirrored relative path under the project's output subdirectory.
func CopyDestination(root string, project config.Project, f discover.SourceFile) string {
	return filepath.Join(root, project.Output, f.RelativePath)
}

func (p *Publisher) copyFile(project config.Project, f discover.SourceFile) error {
	outPath := CopyDestination(p.outputRoot, project, f)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", ErrIO, outPath, err)
	}

	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, f.Path, err)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, outPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrIO, f.RelativePath, err)
	}

	slog.Debug("Copied asset",
		logfields.Project(project.Name),
		logfields.File(f.RelativePath),
		logfields.Path(outPath))
	return nil
}

// writeFile writes a whole file, creating intermediate directories. MkdirAll
// tolerates already-existing directories, so concurrent workers may share
// output subtrees.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", ErrIO, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}
