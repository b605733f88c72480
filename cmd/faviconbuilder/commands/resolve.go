package commands

import (
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// ResolveCmd prints the configuration after defaults and platform
// resolution, without generating anything.
type ResolveCmd struct{}

func (r *ResolveCmd) Run(global *Global, root *CLI) error {
	opts, desc, err := root.loadOptions()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(opts, desc)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(global.out())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.InternalError("encode resolved configuration").WithCause(err).Build()
	}
	return enc.Close()
}
