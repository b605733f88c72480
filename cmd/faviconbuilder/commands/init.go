package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to write favicons.yaml into instead of --config"`
}

func (i *InitCmd) Run(global *Global, root *CLI) error {
	path := root.Config
	if i.Output != "" {
		path = filepath.Join(i.Output, "favicons.yaml")
	}

	out := global.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		return errors.ConfigError("initialization failed").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
