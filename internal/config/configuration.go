// Package config loads, defaults and validates faviconbuilder options and
// resolves them into the immutable Configuration used by the generator.
package config

import (
	"path"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/platform"
	"git.home.luguber.info/inful/faviconbuilder/internal/project"
)

// MissingSourceMessage is reported when no source image is configured.
const MissingSourceMessage = "Please specify where your main icon file is located."

// AppMetadata is the resolved application description passed to the renderer.
type AppMetadata struct {
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description" yaml:"description"`
	DeveloperName string      `json:"developerName" yaml:"developerName"`
	DeveloperURL  string      `json:"developerURL" yaml:"developerURL"`
	Background    string      `json:"background" yaml:"background"`
	ThemeColor    string      `json:"themeColor" yaml:"themeColor"`
	Display       DisplayMode `json:"display" yaml:"display"`
	Orientation   Orientation `json:"orientation" yaml:"orientation"`
	StartURL      string      `json:"startURL" yaml:"startURL"`
	Version       string      `json:"version" yaml:"version"`
	Lang          string      `json:"lang" yaml:"lang"`
}

// Configuration is the resolved, validated configuration. It is a plain value
// and is never modified after Resolve returns it.
type Configuration struct {
	Source            string         `json:"source" yaml:"source"`
	Path              string         `json:"path" yaml:"path"`
	PublicPath        string         `json:"publicPath" yaml:"publicPath"`
	App               AppMetadata    `json:"app" yaml:"app"`
	Logging           bool           `json:"logging" yaml:"logging"`
	Online            bool           `json:"online" yaml:"online"`
	PreferOnline      bool           `json:"preferOnline" yaml:"preferOnline"`
	Cache             bool           `json:"cache" yaml:"cache"`
	Icons             platform.Table `json:"icons" yaml:"icons"`
	Inject            bool           `json:"inject" yaml:"inject"`
	EmitStats         bool           `json:"emitStats" yaml:"emitStats"`
	StatsFilename     string         `json:"statsFilename" yaml:"statsFilename"`
	CopyFaviconToRoot bool           `json:"copyFaviconToRoot" yaml:"copyFaviconToRoot"`
}

// Resolve applies defaults to opts, validates them and resolves the platform
// directives. The app name falls back to the project descriptor. Every
// failure is a configuration error and happens before any file is touched.
func Resolve(opts Options, desc project.Descriptor) (Configuration, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return Configuration{}, errors.ConfigError(MissingSourceMessage).Build()
	}

	icons, err := platform.ParseIconsSpec(opts.Icons)
	if err != nil {
		return Configuration{}, err
	}
	manifest, err := platform.ParseManifestSpec(opts.Manifest)
	if err != nil {
		return Configuration{}, err
	}
	table, err := platform.Resolve(icons, manifest)
	if err != nil {
		return Configuration{}, err
	}

	app, appErrs := resolveApp(opts.App, desc)

	cfg := Configuration{
		Source:            opts.Source,
		Path:              stringOr(opts.Path, DefaultPath),
		PublicPath:        opts.PublicPath,
		App:               app,
		Logging:           boolOr(opts.App.Logging, false),
		Online:            boolOr(opts.App.Online, false),
		PreferOnline:      boolOr(opts.App.PreferOnline, false),
		Cache:             boolOr(opts.Cache, DefaultCache),
		Icons:             table,
		Inject:            boolOr(opts.Inject, DefaultInject),
		EmitStats:         boolOr(opts.EmitStats, DefaultEmitStats),
		StatsFilename:     stringOr(opts.StatsFilename, DefaultStatsFilename),
		CopyFaviconToRoot: boolOr(opts.CopyFaviconToRoot, DefaultCopyFaviconToRoot),
	}

	if err := appErrs.Combine(configValidators.Validate(cfg)).ToError(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

func resolveApp(o AppOptions, desc project.Descriptor) (AppMetadata, foundation.ValidationResult) {
	result := foundation.Valid()

	display, err := displayNormalizer.NormalizeWithValidation(o.Display)
	if err != nil {
		result = result.Combine(foundation.Invalid(foundation.NewFieldError("app.display", "enum", err.Error())))
	}
	orientation, err := orientationNormalizer.NormalizeWithValidation(o.Orientation)
	if err != nil {
		result = result.Combine(foundation.Invalid(foundation.NewFieldError("app.orientation", "enum", err.Error())))
	}
	lang, err := canonicalLang(stringOr(o.Lang, DefaultLang))
	if err != nil {
		result = result.Combine(foundation.Invalid(foundation.NewFieldError("app.lang", "locale", err.Error())))
	}

	name := o.Name
	if strings.TrimSpace(name) == "" {
		name = GuessAppName(desc)
	}

	return AppMetadata{
		Name:          name,
		Description:   o.Description,
		DeveloperName: o.DeveloperName,
		DeveloperURL:  o.DeveloperURL,
		Background:    stringOr(o.Background, DefaultBackground),
		ThemeColor:    stringOr(o.ThemeColor, DefaultThemeColor),
		Display:       display,
		Orientation:   orientation,
		StartURL:      stringOr(o.StartURL, DefaultStartURL),
		Version:       stringOr(o.Version, DefaultAppVersion),
		Lang:          lang,
	}, result
}

func canonicalLang(raw string) (string, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// GuessAppName returns the project name from the descriptor, or "Web App".
func GuessAppName(desc project.Descriptor) string {
	if name := strings.TrimSpace(desc.Name); name != "" {
		return name
	}
	return DefaultAppName
}

// Validate re-checks the invariants Resolve establishes. It lets consumers
// that receive a hand-built Configuration fail before doing any work.
func (c Configuration) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.ConfigError(MissingSourceMessage).Build()
	}
	return configValidators.Validate(c).ToError()
}

var configValidators = foundation.NewValidatorChain(
	foundation.Check("path", "local", "must be a relative path inside the output directory",
		func(c Configuration) bool { return isLocalTemplate(c.Path) }),
	foundation.Check("statsFilename", "local", "must be a relative file name inside the output directory",
		func(c Configuration) bool { return c.StatsFilename != "" && isLocalTemplate(c.StatsFilename) }),
	foundation.Check("app.background", "color", "must be a CSS color",
		func(c Configuration) bool { return isColor(c.App.Background) }),
	foundation.Check("app.themeColor", "color", "must be a CSS color",
		func(c Configuration) bool { return isColor(c.App.ThemeColor) }),
)

func isLocalTemplate(p string) bool {
	if path.IsAbs(p) || strings.HasPrefix(p, `\`) {
		return false
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// isColor accepts hex colors, named colors and functional notations such as rgb().
func isColor(s string) bool {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return false
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return false
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	case strings.HasSuffix(s, ")"):
		open := strings.IndexByte(s, '(')
		return open > 0 && isLetters(s[:open])
	default:
		return isLetters(s)
	}
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
