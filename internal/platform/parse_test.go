package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

func TestParseIconsSpec(t *testing.T) {
	t.Run("nil is the default preset", func(t *testing.T) {
		spec, err := ParseIconsSpec(nil)
		require.NoError(t, err)
		assert.False(t, spec.IsExplicit())
		assert.Equal(t, PresetDefault, spec.Preset)
	})

	t.Run("preset name", func(t *testing.T) {
		spec, err := ParseIconsSpec("dev")
		require.NoError(t, err)
		assert.Equal(t, PresetDev, spec.Preset)
	})

	t.Run("table with every value form", func(t *testing.T) {
		spec, err := ParseIconsSpec(map[string]any{
			"android":  true,
			"coast":    false,
			"windows":  map[string]any{"offset": int64(15), "shadow": true, "background": "#123456"},
			"yandex":   map[any]any{"offset": 2.5},
			"favicons": map[string]any{},
		})
		require.NoError(t, err)
		require.True(t, spec.IsExplicit())

		assert.Equal(t, Enabled(), spec.Platforms[Android])
		assert.Equal(t, Disabled(), spec.Platforms[Coast])
		assert.Equal(t, WithShape(ShapeOptions{Offset: 15, Shadow: true, Background: "#123456"}), spec.Platforms[Windows])
		assert.Equal(t, WithShape(ShapeOptions{Offset: 2.5}), spec.Platforms[Yandex])
		assert.True(t, spec.Platforms[Favicons].IsShape(), "an options object implies enabled")
	})

	t.Run("typed values pass through", func(t *testing.T) {
		in := ExplicitIcons(map[Platform]Directive{Coast: Disabled()})
		spec, err := ParseIconsSpec(in)
		require.NoError(t, err)
		assert.Equal(t, in, spec)
	})

	invalid := map[string]any{
		"number":               42,
		"unknown platform":     map[string]any{"palm": true},
		"string value":         map[string]any{"android": "yes"},
		"unknown shape option": map[string]any{"android": map[string]any{"radius": 3}},
		"offset out of range":  map[string]any{"android": map[string]any{"offset": 150}},
		"offset not a number":  map[string]any{"android": map[string]any{"offset": "5"}},
		"shadow not a boolean": map[string]any{"android": map[string]any{"shadow": "yes"}},
		"background not text":  map[string]any{"android": map[string]any{"background": 1}},
		"non-string keys":      map[any]any{1: true},
	}
	for name, v := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseIconsSpec(v)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestParseManifestSpec(t *testing.T) {
	spec, err := ParseManifestSpec(nil)
	require.NoError(t, err)
	assert.False(t, spec.IsTable())
	assert.True(t, spec.Enabled())

	spec, err = ParseManifestSpec(false)
	require.NoError(t, err)
	assert.False(t, spec.Enabled())

	spec, err = ParseManifestSpec(map[string]any{
		"android": false,
		"firefox": "manifest.webapp",
		"yandex":  true,
	})
	require.NoError(t, err)
	require.True(t, spec.IsTable())
	entries := spec.Entries()
	assert.False(t, entries[Android].IsPath())
	assert.False(t, entries[Android].Flag())
	assert.True(t, entries[Firefox].IsPath())
	assert.Equal(t, "manifest.webapp", entries[Firefox].Path())
	assert.True(t, entries[Yandex].Flag())

	spec, err = ParseManifestSpec(map[string]string{"windows": "browserconfig.xml"})
	require.NoError(t, err)
	assert.Equal(t, "browserconfig.xml", spec.Entries()[Windows].Path())

	invalid := map[string]any{
		"string":                 "yes",
		"non-manifestable":       map[string]any{"coast": true},
		"unknown platform":       map[string]any{"palm": true},
		"empty path":             map[string]any{"android": ""},
		"unsupported value type": map[string]any{"android": 3},
	}
	for name, v := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifestSpec(v)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestPlatformParse(t *testing.T) {
	p, err := Parse("appleStartup")
	require.NoError(t, err)
	assert.Equal(t, AppleStartup, p)
	assert.False(t, p.IsManifestable())

	_, err = Parse("AppleStartup")
	require.Error(t, err)

	for _, m := range Manifestable() {
		assert.True(t, m.IsManifestable())
		assert.True(t, m.Known())
	}
}
