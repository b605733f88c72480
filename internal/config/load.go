package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from the file extension. Anything that is not
// .toml is read as YAML, which also covers JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads options from a YAML or TOML file. Environment variables are
// loaded from .env and .env.local next to the file (never overriding the
// process environment) and ${VAR} references are expanded before decoding.
// A relative source path is resolved against the file's directory.
func Load(configPath string) (Options, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- user supplied config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Options{}, ferrors.NewError(ferrors.CategoryNotFound, "configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return Options{}, ferrors.WrapError(err, ferrors.CategoryConfig, "read configuration file").
			WithContext("path", configPath).
			Build()
	}

	dir := filepath.Dir(configPath)
	if err := loadEnvFiles(dir); err != nil {
		return Options{}, ferrors.WrapError(err, ferrors.CategoryConfig, "load environment file").Build()
	}

	opts, err := Decode([]byte(os.ExpandEnv(string(data))), FormatFor(configPath))
	if err != nil {
		return Options{}, ferrors.WrapError(err, ferrors.CategoryConfig, "parse configuration file").
			WithContext("path", configPath).
			Build()
	}

	if opts.Source != "" && !filepath.IsAbs(opts.Source) {
		opts.Source = filepath.Join(dir, opts.Source)
	}
	return opts, nil
}

// Decode parses options in the given format. Unknown keys are rejected.
func Decode(data []byte, format Format) (Options, error) {
	var opts Options
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return Options{}, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, err
		}
	}
	return opts, nil
}

// loadEnvFiles loads .env and .env.local from dir when present.
func loadEnvFiles(dir string) error {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Init writes an example configuration file. The format follows the extension.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := ExampleOptions()

	var (
		data []byte
		err  error
	)
	switch FormatFor(configPath) {
	case FormatTOML:
		data, err = toml.Marshal(example)
	default:
		data, err = yaml.Marshal(example)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExampleOptions is the configuration written by Init.
func ExampleOptions() Options {
	return Options{
		Source:     "assets/logo.png",
		Path:       DefaultPath,
		PublicPath: "/",
		Icons: map[string]any{
			"android":      true,
			"appleIcon":    map[string]any{"offset": 10, "background": "#ffffff"},
			"appleStartup": false,
			"coast":        false,
			"favicons":     true,
			"firefox":      true,
			"windows":      true,
			"yandex":       false,
		},
		Manifest:      true,
		Inject:        Bool(true),
		EmitStats:     Bool(false),
		StatsFilename: DefaultStatsFilename,
		Cache:         Bool(true),
		App: AppOptions{
			Name:        "My Web App",
			Description: "Icons generated by faviconbuilder",
			Background:  DefaultBackground,
			ThemeColor:  "#336699",
			Display:     string(DisplayStandalone),
			Orientation: string(OrientationAny),
			StartURL:    DefaultStartURL,
			Version:     DefaultAppVersion,
			Lang:        DefaultLang,
		},
	}
}
