package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/discover"
	"github.com/dottxt-ai/blogbuilder/internal/logfields"
	"github.com/dottxt-ai/blogbuilder/internal/manifest"
	"github.com/dottxt-ai/blogbuilder/internal/publish"
	"github.com/dottxt-ai/blogbuilder/internal/sitemap"
)

// StageName identifies a pipeline stage.
type StageName string

const (
	StageResolve  StageName = "resolve"
	StageDiscover StageName = "discover"
	StagePublish  StageName = "publish"
	StageSitemap  StageName = "sitemap"
	StageManifest StageName = "manifest"
)

// StageDef couples a stage name with its function.
type StageDef struct {
	Name StageName
	Fn   func(ctx context.Context, st *State) error
}

// DefaultStages is the build pipeline in execution order. Discovery of every
// project completes before publishing begins, and the sitemap runs only after
// all publish workers reported their pages.
func DefaultStages() []StageDef {
	return []StageDef{
		{Name: StageResolve, Fn: stageResolve},
		{Name: StageDiscover, Fn: stageDiscover},
		{Name: StagePublish, Fn: stagePublish},
		{Name: StageSitemap, Fn: stageSitemap},
		{Name: StageManifest, Fn: stageManifest},
	}
}

// stageResolve expands the requested meta-project into the ordered project
// list. Failures here are fatal: nothing has touched the filesystem yet.
func stageResolve(_ context.Context, st *State) error {
	projects, err := st.Registry.Resolve(st.MetaProject)
	if err != nil {
		st.Report.AddIssue(IssueConfiguration, StageResolve, SeverityError, err.Error())
		return err
	}
	if len(projects) == 0 {
		err := fmt.Errorf("%w: meta-project %q resolves to no projects", config.ErrConfiguration, st.MetaProject)
		st.Report.AddIssue(IssueConfiguration, StageResolve, SeverityError, err.Error())
		return err
	}
	st.Projects = projects
	slog.Info("Projects resolved", slog.String("meta_project", st.MetaProject), slog.Int("count", len(projects)))
	return nil
}

// stageDiscover walks each project's source tree. A discovery failure is
// fatal for that project only; the remaining projects still build.
func stageDiscover(_ context.Context, st *State) error {
	st.Files = map[string][]discover.SourceFile{}

	kept := st.Projects[:0]
	for _, project := range st.Projects {
		files, err := discover.Discover(project)
		if err != nil {
			st.Report.AddIssue(IssueDiscoveryFailure, StageDiscover, SeverityWarning,
				fmt.Sprintf("project %s: %v", project.Name, err))
			slog.Error("Project discovery failed", logfields.Project(project.Name), logfields.Error(err))
			continue
		}
		st.Files[project.Name] = files
		st.Report.Stats(project.Name).Discovered = len(files)
		kept = append(kept, project)
	}
	st.Projects = kept
	return nil
}

// stagePublish runs the per-file publisher for every surviving project.
// Per-file failures are isolated: logged, counted, and the build continues.
func stagePublish(ctx context.Context, st *State) error {
	st.Results = map[string][]publish.Result{}

	for _, project := range st.Projects {
		results, err := st.Publisher.PublishProject(ctx, project, st.Files[project.Name])
		if err != nil {
			// Only context cancellation escapes the worker pool.
			st.Report.AddIssue(IssueCanceled, StagePublish, SeverityError, err.Error())
			st.Report.Outcome = OutcomeCanceled
			return err
		}
		st.Results[project.Name] = results

		stats := st.Report.Stats(project.Name)
		for _, res := range results {
			if res.Err != nil {
				stats.Failed++
				code := IssueCopyFailure
				if errors.Is(res.Err, publish.ErrRender) {
					code = IssueRenderFailure
				}
				st.Report.AddIssue(code, StagePublish, SeverityWarning,
					fmt.Sprintf("%s/%s: %v", project.Name, res.File.RelativePath, res.Err))
				continue
			}
			stats.Published++
			if res.Page != nil {
				if err := st.Current.Record(st.OutputRoot, res.Page.OutputPath, project.Name); err != nil {
					st.Report.AddIssue(IssueManifestFailure, StagePublish, SeverityWarning, err.Error())
				}
				if project.Name == st.Config.Sitemap.Project {
					st.SitemapPages = append(st.SitemapPages, *res.Page)
				}
			} else {
				outPath := publish.CopyDestination(st.OutputRoot, project, res.File)
				if err := st.Current.Record(st.OutputRoot, outPath, project.Name); err != nil {
					st.Report.AddIssue(IssueManifestFailure, StagePublish, SeverityWarning, err.Error())
				}
			}
		}

		// A project whose every file failed marks the build failed and the
		// exit code non-zero, but later projects still run.
		if stats.Discovered > 0 && stats.Failed == stats.Discovered {
			st.Report.AddIssue(IssueAllFilesFailed, StagePublish, SeverityError,
				fmt.Sprintf("project %s: all %d files failed to publish", project.Name, stats.Discovered))
		}
	}
	return nil
}

// stageSitemap generates the index page once all posts are rendered. When a
// partial build does not include the sitemap project, the existing index is
// left alone rather than overwritten with an empty listing.
func stageSitemap(_ context.Context, st *State) error {
	if _, ok := st.Config.ProjectByName(st.Config.Sitemap.Project); !ok {
		slog.Debug("No sitemap project configured, skipping index generation")
		return nil
	}
	if !st.rebuiltProjects()[st.Config.Sitemap.Project] {
		slog.Debug("Sitemap project not part of this build, keeping existing index",
			logfields.Project(st.Config.Sitemap.Project))
		return nil
	}

	gen := sitemap.New(st.Config.Sitemap, st.Template, st.Renderer)
	pg, err := gen.Generate(st.OutputRoot, st.SitemapPages)
	if err != nil {
		if errors.Is(err, config.ErrConfiguration) {
			st.Report.AddIssue(IssueConfiguration, StageSitemap, SeverityError, err.Error())
			return err
		}
		st.Report.AddIssue(IssueSitemapFailure, StageSitemap, SeverityError, err.Error())
		return err
	}
	if err := st.Current.Record(st.OutputRoot, pg.OutputPath, st.Config.Sitemap.Project); err != nil {
		st.Report.AddIssue(IssueManifestFailure, StageSitemap, SeverityWarning, err.Error())
	}
	slog.Info("Sitemap generated", logfields.Path(pg.OutputPath), slog.Int("entries", len(st.SitemapPages)))
	return nil
}

// stageManifest prunes stale outputs of the projects this build covered, then
// persists the new manifest. Outputs of projects outside the build are carried
// forward by Prune, never removed.
func stageManifest(_ context.Context, st *State) error {
	removed, err := manifest.Prune(st.OutputRoot, st.Previous, st.Current, st.rebuiltProjects())
	if err != nil {
		st.Report.AddIssue(IssueManifestFailure, StageManifest, SeverityWarning, err.Error())
	}
	if len(removed) > 0 {
		slog.Info("Pruned stale outputs", slog.Int("count", len(removed)))
	}
	if err := st.Current.Write(st.OutputRoot); err != nil {
		st.Report.AddIssue(IssueManifestFailure, StageManifest, SeverityWarning, err.Error())
	}
	return nil
}
