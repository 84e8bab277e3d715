package config

// Default values applied after unmarshalling and before validation.
const (
	DefaultOutputDir       = "./public"
	DefaultSitemapFilename = "index.html"
	DefaultSitemapProject  = "posts"
	DefaultEntryFormat     = "{date} - {title}"

	// MetaProjectAll is the implicit meta-project covering every configured
	// project in declaration order.
	MetaProjectAll = "all"
)

// ApplyDefaults fills in zero-valued fields. Safe to call more than once.
func (c *Config) ApplyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Sitemap.Filename == "" {
		c.Sitemap.Filename = DefaultSitemapFilename
	}
	if c.Sitemap.Project == "" {
		c.Sitemap.Project = DefaultSitemapProject
	}
	if c.Sitemap.EntryFormat == "" {
		c.Sitemap.EntryFormat = DefaultEntryFormat
	}
	if c.Sitemap.Title == "" {
		c.Sitemap.Title = c.Site.Title
	}

	for i := range c.Projects {
		p := &c.Projects[i]
		if len(p.Extensions) == 0 {
			switch p.Action {
			case ActionRender:
				p.Extensions = []string{"md"}
			default:
				p.Extensions = []string{AcceptAll}
			}
		}
	}

	if c.MetaProjects == nil {
		c.MetaProjects = map[string][]string{}
	}
	if _, ok := c.MetaProjects[MetaProjectAll]; !ok {
		names := make([]string, 0, len(c.Projects))
		for _, p := range c.Projects {
			names = append(names, p.Name)
		}
		c.MetaProjects[MetaProjectAll] = names
	}
}
