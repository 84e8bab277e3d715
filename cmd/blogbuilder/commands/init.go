package commands

import (
	"fmt"

	"github.com/dottxt-ai/blogbuilder/internal/config"
)

// InitCmd writes an example configuration file.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Println("Wrote", root.Config)
	return nil
}
