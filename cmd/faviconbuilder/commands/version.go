package commands

import (
	"fmt"

	"git.home.luguber.info/inful/faviconbuilder/internal/version"
)

// VersionCmd prints version information.
type VersionCmd struct{}

func (v *VersionCmd) Run(global *Global) error {
	_, err := fmt.Fprintln(global.out(), version.String())
	return err
}
