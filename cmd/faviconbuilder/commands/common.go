package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/faviconbuilder/internal/logging"
	"git.home.luguber.info/inful/faviconbuilder/internal/notify"
	"git.home.luguber.info/inful/faviconbuilder/internal/version"
)

// Global is shared state bound into every command.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output. Defaults to stdout.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (YAML or TOML)" default:"favicons.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`
	HistoryDB   string           `name:"history-db" help:"SQLite database recording generation history" env:"FAVICONBUILDER_HISTORY_DB"`
	NATSURL     string           `name:"nats-url" help:"NATS server to announce finished generations on" env:"FAVICONBUILDER_NATS_URL"`
	NATSSubject string           `name:"nats-subject" help:"Subject prefix for generation announcements" default:"faviconbuilder.generation"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate    GenerateCmd `cmd:"" help:"Generate favicons into an output directory"`
	Resolve     ResolveCmd  `cmd:"" help:"Print the resolved configuration"`
	Init        InitCmd     `cmd:"" help:"Write an example configuration file"`
	Watch       WatchCmd    `cmd:"" help:"Regenerate whenever the source image or configuration changes"`
	History     HistoryCmd  `cmd:"" help:"List recent generations"`
	VersionInfo VersionCmd  `cmd:"" name:"version" help:"Print version information"`
}

// Options returns the kong options the binary parses with.
func Options(g *Global) []kong.Option {
	return []kong.Option{
		kong.Name("faviconbuilder"),
		kong.Description("Generate favicons, touch icons and web app manifests from a single image."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	}
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = logging.New(logging.Config{Level: level, Format: format})
	slog.SetDefault(g.Logger)
	return nil
}

func (c *CLI) subject() string {
	if c.NATSSubject == "" {
		return notify.DefaultSubject
	}
	return c.NATSSubject
}
