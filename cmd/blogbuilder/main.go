package main

import (
	"github.com/alecthomas/kong"

	"github.com/dottxt-ai/blogbuilder/cmd/blogbuilder/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("blogbuilder"),
		kong.Description("Static blog builder: Markdown posts in, HTML site out."),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
