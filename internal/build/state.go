package build

import (
	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/discover"
	"github.com/dottxt-ai/blogbuilder/internal/manifest"
	"github.com/dottxt-ai/blogbuilder/internal/markdown"
	"github.com/dottxt-ai/blogbuilder/internal/page"
	"github.com/dottxt-ai/blogbuilder/internal/publish"
	"github.com/dottxt-ai/blogbuilder/internal/registry"
)

// State threads shared build data through the stage sequence. Stages populate
// the fields of the step they own; later stages read them.
type State struct {
	Config      *config.Config
	MetaProject string
	OutputRoot  string

	Registry  *registry.Registry
	Template  *page.Template
	Renderer  *markdown.Renderer
	Publisher *publish.Publisher

	// Populated by StageResolve.
	Projects []config.Project
	// Populated by StageDiscover, keyed by project name.
	Files map[string][]discover.SourceFile
	// Populated by StagePublish, keyed by project name, input order preserved.
	Results map[string][]publish.Result
	// Rendered pages of the sitemap project, in discovery order.
	SitemapPages []publish.RenderedPage

	Current  *manifest.Manifest
	Previous *manifest.Manifest

	Report *Report
}

// rebuiltProjects is the set of project names this build actually covered:
// the resolved set minus projects dropped by discovery failures. Outputs of
// anything outside it are left in place by the sitemap and manifest stages.
func (st *State) rebuiltProjects() map[string]bool {
	set := make(map[string]bool, len(st.Projects))
	for _, p := range st.Projects {
		set[p.Name] = true
	}
	return set
}
