package commands

import (
	"fmt"

	"github.com/dottxt-ai/blogbuilder/internal/config"
	"github.com/dottxt-ai/blogbuilder/internal/discover"
	"github.com/dottxt-ai/blogbuilder/internal/registry"
)

// DiscoverCmd lists the files each project would publish.
type DiscoverCmd struct {
	Project string `short:"p" help:"Project or meta-project to inspect" default:"all"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	projects, err := registry.New(cfg).Resolve(d.Project)
	if err != nil {
		return err
	}

	total := 0
	for _, project := range projects {
		files, err := discover.Discover(project)
		if err != nil {
			fmt.Printf("%s: discovery failed: %v\n", project.Name, err)
			continue
		}
		fmt.Printf("%s (%d files, action=%s)\n", project.Name, len(files), project.Action)
		for _, f := range files {
			fmt.Printf("  %s\n", f.RelativePath)
		}
		total += len(files)
	}
	fmt.Printf("Total: %d files\n", total)
	return nil
}
