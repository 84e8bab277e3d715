package commands

import (
	"fmt"
	"os"

	"github.com/dottxt-ai/blogbuilder/internal/config"
)

// CleanCmd removes the output tree, including the build manifest.
type CleanCmd struct {
	Output string `short:"o" help:"Output directory (overrides config)"`
}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir := cfg.Output.Directory
	if c.Output != "" {
		dir = c.Output
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove output directory: %w", err)
	}
	fmt.Println("Removed", dir)
	return nil
}
