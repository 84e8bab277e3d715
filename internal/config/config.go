package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration classifies fatal configuration problems. It is always wrapped
// with contextual information at the call site and aborts the build before any
// file is touched.
var ErrConfiguration = errors.New("blogbuilder: configuration error")

// Action selects how a project's files are published.
type Action string

const (
	// ActionRender converts Markdown sources to HTML through the page template.
	ActionRender Action = "render"
	// ActionCopy copies sources byte-for-byte, preserving relative paths.
	ActionCopy Action = "copy"
)

// AcceptAll is the wildcard extension meaning "accept every file".
const AcceptAll = "*"

// Config is the full build configuration, constructed once per invocation and
// passed explicitly to each component.
type Config struct {
	Site         SiteConfig          `yaml:"site"`
	Projects     []Project           `yaml:"projects"`
	MetaProjects map[string][]string `yaml:"meta_projects,omitempty"`
	Template     TemplateConfig      `yaml:"template"`
	Sitemap      SitemapConfig       `yaml:"sitemap"`
	Output       OutputConfig        `yaml:"output"`
}

// SiteConfig holds site-wide metadata embedded in every generated page.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author,omitempty"`
	Email       string `yaml:"email,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Project is a named rule set describing which source files to process and how.
type Project struct {
	Name       string   `yaml:"name"`
	Source     string   `yaml:"source"`
	Output     string   `yaml:"output,omitempty"` // subdirectory under output.directory, defaults to the project name for copy projects and "" for render projects
	Extensions []string `yaml:"extensions,omitempty"`
	Recursive  bool     `yaml:"recursive,omitempty"`
	Action     Action   `yaml:"action"`
	WithDate   bool     `yaml:"with_date,omitempty"`
}

// TemplateConfig carries the opaque HTML snippets wrapped around rendered pages.
type TemplateConfig struct {
	HeadInclude string `yaml:"head_include,omitempty"`
	Postamble   string `yaml:"postamble,omitempty"`
}

// SitemapConfig controls the generated index page.
type SitemapConfig struct {
	Title       string `yaml:"title,omitempty"`
	Filename    string `yaml:"filename,omitempty"`
	EntryFormat string `yaml:"entry_format,omitempty"`
	Project     string `yaml:"project,omitempty"` // project whose pages are listed, defaults to "posts"
}

// OutputConfig represents output tree configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // remove the output directory before building
}

// Load loads and validates configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env if present so ${VAR} references in the config resolve.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: configuration file not found: %s", ErrConfiguration, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read config file: %w", ErrConfiguration, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal config: %w", ErrConfiguration, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ProjectByName returns the project with the given name, if present.
func (c *Config) ProjectByName(name string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return Project{}, false
}
