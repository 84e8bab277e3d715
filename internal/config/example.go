package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			Title:   "My Blog",
			Author:  "Jane Author",
			Email:   "jane@example.com",
			BaseURL: "https://blog.example.com",
		},
		Projects: []Project{
			{
				Name:       "posts",
				Source:     "./posts",
				Extensions: []string{"md"},
				Action:     ActionRender,
				WithDate:   true,
			},
			{
				Name:       "stylesheets",
				Source:     "./css",
				Output:     "css",
				Extensions: []string{"css"},
				Action:     ActionCopy,
			},
			{
				Name:       "static",
				Source:     "./static",
				Output:     "static",
				Extensions: []string{AcceptAll},
				Recursive:  true,
				Action:     ActionCopy,
			},
		},
		Template: TemplateConfig{
			HeadInclude: `<link rel="stylesheet" href="/css/style.css">`,
			Postamble:   `<footer>Subscribe to the newsletter!</footer>`,
		},
		Sitemap: SitemapConfig{
			Title:       "My Blog",
			Filename:    "index.html",
			EntryFormat: "{date} - [{title}]({link})",
		},
		Output: OutputConfig{
			Directory: "./public",
			Clean:     true,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}

	header := "# blogbuilder configuration\n# Environment variables are expanded with ${VAR} syntax.\n\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
