package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output string   `short:"o" help:"Build output directory" default:"./dist"`
	HTML   []string `name:"html" help:"HTML pages to inject the favicon markup into, rewritten in place"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := root.openSession(global, g.Output, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Warn("Failed to close session", logfields.Error(err))
		}
	}()

	p, err := s.newPlugin()
	if err != nil {
		return err
	}
	c, err := s.generate(ctx, p, g.HTML)
	if err != nil {
		return err
	}

	state := "generated"
	if c.Result.Cached {
		state = "reused"
	}
	_, _ = fmt.Fprintf(global.out(), "%s %d assets in %s\n", state, len(c.Result.Images)+len(c.Result.Files), c.OutputPath)
	return nil
}
