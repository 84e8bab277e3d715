package config

import "fmt"

// Validate checks structural invariants of the configuration. All violations
// are ConfigurationErrors: they abort the build before any file is touched.
func (c *Config) Validate() error {
	seen := map[string]struct{}{}
	for i, p := range c.Projects {
		if p.Name == "" {
			return fmt.Errorf("%w: project %d has no name", ErrConfiguration, i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate project name %q", ErrConfiguration, p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.Source == "" {
			return fmt.Errorf("%w: project %q has no source directory", ErrConfiguration, p.Name)
		}
		switch p.Action {
		case ActionRender, ActionCopy:
		default:
			return fmt.Errorf("%w: project %q has unknown action %q", ErrConfiguration, p.Name, p.Action)
		}
		// An empty extension list cannot survive to this point: ApplyDefaults
		// fills it per action before validation.
	}

	for meta, members := range c.MetaProjects {
		for _, name := range members {
			if _, ok := seen[name]; !ok {
				return fmt.Errorf("%w: meta-project %q references unknown project %q", ErrConfiguration, meta, name)
			}
		}
	}

	// Anti-chronological sorting needs a date on every listed page.
	if smp, ok := c.ProjectByName(c.Sitemap.Project); ok {
		if smp.Action == ActionRender && !smp.WithDate {
			return fmt.Errorf("%w: sitemap project %q must set with_date for date-sorted listing", ErrConfiguration, smp.Name)
		}
	}

	return nil
}
