package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/faviconbuilder/cmd/faviconbuilder/commands"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}

	ctx := kong.Parse(&cli, commands.Options(global)...)
	err := ctx.Run(global, &cli)

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
	os.Exit(adapter.Report(err))
}
