package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/platform"
	"git.home.luguber.info/inful/faviconbuilder/internal/project"
)

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(Options{Source: "logo.png"}, project.Descriptor{})
	require.NoError(t, err)

	assert.Equal(t, "logo.png", cfg.Source)
	assert.Equal(t, DefaultPath, cfg.Path)
	assert.Empty(t, cfg.PublicPath)
	assert.True(t, cfg.Inject)
	assert.False(t, cfg.EmitStats)
	assert.Equal(t, DefaultStatsFilename, cfg.StatsFilename)
	assert.True(t, cfg.Cache)
	assert.False(t, cfg.CopyFaviconToRoot)
	assert.False(t, cfg.Logging)

	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, "#fff", cfg.App.Background)
	assert.Equal(t, "#fff", cfg.App.ThemeColor)
	assert.Equal(t, DisplayStandalone, cfg.App.Display)
	assert.Equal(t, OrientationAny, cfg.App.Orientation)
	assert.Equal(t, "/", cfg.App.StartURL)
	assert.Equal(t, "1.0", cfg.App.Version)
	assert.Equal(t, "en-US", cfg.App.Lang)

	assert.Equal(t, platform.PresetDefault, cfg.Icons.Preset)
	assert.Len(t, cfg.Icons.EnabledPlatforms(), len(platform.All()))
}

func TestResolve_MissingSource(t *testing.T) {
	_, err := Resolve(Options{}, project.Descriptor{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	assert.Contains(t, err.Error(), MissingSourceMessage)
}

func TestResolve_ExplicitValues(t *testing.T) {
	opts := Options{
		Source:            "logo.png",
		Path:              "static/icons-[hash:8]",
		PublicPath:        "/assets/",
		Icons:             "dev",
		Manifest:          false,
		Inject:            Bool(false),
		EmitStats:         Bool(true),
		StatsFilename:     "stats.json",
		Cache:             Bool(false),
		CopyFaviconToRoot: Bool(true),
		App: AppOptions{
			Name:        "Docs",
			Display:     "Minimal_UI",
			Orientation: "PORTRAIT",
			Lang:        "nb_no",
			Logging:     Bool(true),
			Online:      Bool(true),
			ThemeColor:  "rgb(10, 20, 30)",
			Background:  "white",
		},
	}

	cfg, err := Resolve(opts, project.Descriptor{Name: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, "static/icons-[hash:8]", cfg.Path)
	assert.Equal(t, "/assets/", cfg.PublicPath)
	assert.False(t, cfg.Inject)
	assert.True(t, cfg.EmitStats)
	assert.Equal(t, "stats.json", cfg.StatsFilename)
	assert.False(t, cfg.Cache)
	assert.True(t, cfg.CopyFaviconToRoot)
	assert.True(t, cfg.Logging)
	assert.True(t, cfg.Online)
	assert.False(t, cfg.PreferOnline)

	assert.Equal(t, "Docs", cfg.App.Name)
	assert.Equal(t, DisplayMinimalUI, cfg.App.Display)
	assert.Equal(t, OrientationPortrait, cfg.App.Orientation)
	assert.Equal(t, "nb-NO", cfg.App.Lang)
	assert.Equal(t, []platform.Platform{platform.Favicons}, cfg.Icons.EnabledPlatforms())
}

func TestResolve_GuessesAppName(t *testing.T) {
	cfg, err := Resolve(Options{Source: "logo.png"}, project.Descriptor{Name: "my-site", Source: project.PackageJSON})
	require.NoError(t, err)
	assert.Equal(t, "my-site", cfg.App.Name)
}

func TestResolve_ManifestOverlay(t *testing.T) {
	opts := Options{
		Source: "logo.png",
		Icons: map[string]any{
			"android": false,
			"windows": false,
			"yandex":  false,
			"firefox": true,
		},
		Manifest: true,
	}
	cfg, err := Resolve(opts, project.Descriptor{})
	require.NoError(t, err)

	assert.False(t, cfg.Icons.Directive(platform.Android).IsEnabled())
	assert.False(t, cfg.Icons.Directive(platform.Windows).IsEnabled())
	assert.False(t, cfg.Icons.Directive(platform.Yandex).IsEnabled())
	assert.True(t, cfg.Icons.Directive(platform.Firefox).IsEnabled())
}

func TestResolve_InvalidOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"bad display", Options{Source: "s", App: AppOptions{Display: "kiosk"}}, "app.display"},
		{"bad orientation", Options{Source: "s", App: AppOptions{Orientation: "sideways"}}, "app.orientation"},
		{"bad lang", Options{Source: "s", App: AppOptions{Lang: "not a locale"}}, "app.lang"},
		{"bad color", Options{Source: "s", App: AppOptions{Background: "#12"}}, "app.background"},
		{"escaping path", Options{Source: "s", Path: "../outside"}, "path"},
		{"absolute path", Options{Source: "s", Path: "/var/www/icons"}, "path"},
		{"escaping stats", Options{Source: "s", StatsFilename: "../stats.json"}, "statsFilename"},
		{"bad icons", Options{Source: "s", Icons: map[string]any{"palm": true}}, ""},
		{"bad manifest", Options{Source: "s", Manifest: map[string]any{"coast": true}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.opts, project.Descriptor{})
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
			if tt.field != "" {
				assert.True(t, strings.Contains(err.Error(), tt.field+":"), "expected %s in %q", tt.field, err.Error())
			}
		})
	}
}

func TestResolve_ReportsEveryInvalidField(t *testing.T) {
	_, err := Resolve(Options{
		Source: "s",
		App:    AppOptions{Display: "kiosk", ThemeColor: "#zzz"},
	}, project.Descriptor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.display")
	assert.Contains(t, err.Error(), "app.themeColor")
}

func TestGuessAppName(t *testing.T) {
	assert.Equal(t, "site", GuessAppName(project.Descriptor{Name: " site "}))
	assert.Equal(t, "Web App", GuessAppName(project.Descriptor{}))
	assert.Equal(t, "Web App", GuessAppName(project.Descriptor{Name: "   "}))
}

func TestIsColor(t *testing.T) {
	for _, ok := range []string{"#fff", "#ffff", "#a1b2c3", "#a1b2c3d4", "red", "rgb(0,0,0)", "hsl(120 50% 50%)"} {
		assert.True(t, isColor(ok), ok)
	}
	for _, bad := range []string{"", "#12", "#ggg", "12px", "(0,0,0)"} {
		assert.False(t, isColor(bad), bad)
	}
}

func TestEnumValues(t *testing.T) {
	assert.Contains(t, DisplayModes(), "minimal-ui")
	assert.Len(t, Orientations(), 8)
}
