// Package registry resolves named projects and meta-projects into the ordered
// list of publishing units for a build invocation.
package registry

import (
	"fmt"

	"github.com/dottxt-ai/blogbuilder/internal/config"
)

// Registry is a read-only view over the configured project table. It has no
// side effects; resolution failures are ConfigurationErrors.
type Registry struct {
	cfg *config.Config
}

// New creates a registry over an already-validated configuration.
func New(cfg *config.Config) *Registry {
	return &Registry{cfg: cfg}
}

// Resolve returns the ordered list of projects named by a meta-project. A
// plain project name resolves to a single-element list, so callers can build
// one project directly.
func (r *Registry) Resolve(name string) ([]config.Project, error) {
	if members, ok := r.cfg.MetaProjects[name]; ok {
		projects := make([]config.Project, 0, len(members))
		for _, member := range members {
			p, ok := r.cfg.ProjectByName(member)
			if !ok {
				return nil, fmt.Errorf("%w: meta-project %q references unknown project %q", config.ErrConfiguration, name, member)
			}
			projects = append(projects, p)
		}
		return projects, nil
	}

	if p, ok := r.cfg.ProjectByName(name); ok {
		return []config.Project{p}, nil
	}

	return nil, fmt.Errorf("%w: no project or meta-project named %q", config.ErrConfiguration, name)
}
