package platform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

func mustResolve(t *testing.T, icons IconsSpec, manifest ManifestSpec) Table {
	t.Helper()
	table, err := Resolve(icons, manifest)
	require.NoError(t, err)
	return table
}

func TestResolve_DefaultPreset(t *testing.T) {
	table := mustResolve(t, PresetIcons(PresetDefault), ManifestAll(true))

	assert.Equal(t, PresetDefault, table.Preset)
	for _, p := range All() {
		assert.Equal(t, KindEnabled, table.Directive(p).Kind(), p)
		assert.True(t, table.Explicit(p), p)
	}
	assert.Equal(t, All(), table.EnabledPlatforms())
}

func TestResolve_ZeroValuesAreDefaults(t *testing.T) {
	table := mustResolve(t, IconsSpec{}, ManifestSpec{})
	assert.Equal(t, PresetDefault, table.Preset)
	assert.Len(t, table.EnabledPlatforms(), len(All()))
}

func TestResolve_DevPresetEnablesOnlyFavicons(t *testing.T) {
	for _, manifest := range []ManifestSpec{ManifestAll(true), ManifestAll(false)} {
		table := mustResolve(t, PresetIcons(PresetDev), manifest)

		assert.Equal(t, []Platform{Favicons}, table.EnabledPlatforms())
		for _, p := range All() {
			if p == Favicons {
				continue
			}
			assert.Equal(t, KindDisabled, table.Directive(p).Kind(), p)
		}
	}
}

func TestResolve_UnknownPresetIsNoOp(t *testing.T) {
	table := mustResolve(t, PresetIcons("nonsense"), ManifestAll(true))

	assert.Equal(t, "nonsense", table.Preset)
	assert.Empty(t, table.Directives)
	for _, p := range All() {
		assert.False(t, table.Explicit(p))
		assert.True(t, table.Directive(p).IsEnabled(), "renderer default applies")
	}
}

func TestResolve_ManifestFalseDisablesManifestablePlatforms(t *testing.T) {
	table := mustResolve(t, PresetIcons(PresetDefault), ManifestAll(false))

	for _, p := range All() {
		want := KindEnabled
		if p.IsManifestable() {
			want = KindDisabled
		}
		assert.Equal(t, want, table.Directive(p).Kind(), p)
	}
}

func TestResolve_ManifestFalseNeverDemotesShapes(t *testing.T) {
	shape := ShapeOptions{Background: "red", Offset: 10}
	icons := ExplicitIcons(map[Platform]Directive{
		Windows: WithShape(shape),
		Android: Enabled(),
		Coast:   Disabled(),
	})

	table := mustResolve(t, icons, ManifestAll(false))

	assert.Equal(t, WithShape(shape), table.Directive(Windows))
	assert.Equal(t, KindDisabled, table.Directive(Android).Kind())
	assert.Equal(t, KindDisabled, table.Directive(Yandex).Kind())
	assert.Equal(t, KindDisabled, table.Directive(Firefox).Kind())
	assert.Equal(t, KindDisabled, table.Directive(Coast).Kind(), "non-manifestable platforms keep their value")
	assert.False(t, table.Explicit(AppleIcon))
}

func TestResolve_IconTrueWithManifestFalse(t *testing.T) {
	// Manifest false acts on the icon directive of every manifestable platform,
	// so a plain true for android is disabled as well.
	table := mustResolve(t, ExplicitIcons(map[Platform]Directive{Android: Enabled()}), ManifestAll(false))

	assert.Equal(t, KindDisabled, table.Directive(Android).Kind())
	for _, p := range Manifestable() {
		assert.False(t, table.Directive(p).IsEnabled(), p)
	}
	assert.True(t, table.Directive(Favicons).IsEnabled())
}

func TestResolve_ExplicitTableWithManifestTrue(t *testing.T) {
	icons := ExplicitIcons(map[Platform]Directive{
		Android: Disabled(),
		Windows: Disabled(),
		Yandex:  Disabled(),
		Firefox: Enabled(),
	})

	table := mustResolve(t, icons, ManifestAll(true))

	assert.Equal(t, KindDisabled, table.Directive(Android).Kind())
	assert.Equal(t, KindDisabled, table.Directive(Windows).Kind())
	assert.Equal(t, KindDisabled, table.Directive(Yandex).Kind())
	assert.Equal(t, KindEnabled, table.Directive(Firefox).Kind())
	assert.Empty(t, table.Preset)
}

func TestResolve_ManifestTable(t *testing.T) {
	icons := ExplicitIcons(map[Platform]Directive{
		Android: Enabled(),
		Firefox: Disabled(),
		Windows: WithShape(ShapeOptions{Background: "red"}),
		Yandex:  WithShape(ShapeOptions{Background: "green"}),
	})
	manifest := ManifestTable(map[Platform]ManifestEntry{
		Android: ManifestFlag(false),
		Firefox: ManifestFile("fixtures/manifest.webapp"),
		Windows: ManifestFile("fixtures/browserconfig.xml"),
		Yandex:  ManifestFlag(true),
	})

	table := mustResolve(t, icons, manifest)

	assert.Equal(t, KindDisabled, table.Directive(Android).Kind())

	firefox := table.Directive(Firefox)
	assert.Equal(t, KindManifestLinked, firefox.Kind())
	assert.True(t, firefox.IsEnabled(), "a manifest path promotes a plain boolean")
	assert.Equal(t, "fixtures/manifest.webapp", firefox.ManifestPath())

	assert.Equal(t, WithShape(ShapeOptions{Background: "red"}), table.Directive(Windows))
	assert.Equal(t, "fixtures/browserconfig.xml", table.ManifestPath(Windows), "path is kept for shaped platforms")
	assert.Equal(t, WithShape(ShapeOptions{Background: "green"}), table.Directive(Yandex))
}

func TestResolve_ManifestTableOnPreset(t *testing.T) {
	manifest := ManifestTable(map[Platform]ManifestEntry{
		Android: ManifestFlag(false),
		Windows: ManifestFlag(true),
	})

	table := mustResolve(t, PresetIcons(PresetDev), manifest)

	assert.Equal(t, KindDisabled, table.Directive(Android).Kind())
	assert.Equal(t, KindEnabled, table.Directive(Windows).Kind(), "manifest true enables a plain directive")
	assert.ElementsMatch(t, []Platform{Favicons, Windows}, table.EnabledPlatforms())
}

func TestResolve_ManifestPathOnAbsentPlatform(t *testing.T) {
	manifest := ManifestTable(map[Platform]ManifestEntry{Android: ManifestFile("manifest.json")})

	table := mustResolve(t, ExplicitIcons(map[Platform]Directive{}), manifest)

	assert.False(t, table.Explicit(Android))
	assert.True(t, table.Directive(Android).IsEnabled())
	assert.Equal(t, "manifest.json", table.ManifestPath(Android))
}

func TestResolve_ShapeAlwaysEnabled(t *testing.T) {
	shape := WithShape(ShapeOptions{Shadow: true})
	manifests := []ManifestSpec{
		ManifestAll(true),
		ManifestAll(false),
		ManifestTable(map[Platform]ManifestEntry{Android: ManifestFlag(false)}),
		ManifestTable(map[Platform]ManifestEntry{Android: ManifestFlag(true)}),
		ManifestTable(map[Platform]ManifestEntry{Android: ManifestFile("m.json")}),
	}

	for _, m := range manifests {
		table := mustResolve(t, ExplicitIcons(map[Platform]Directive{Android: shape}), m)
		assert.Equal(t, shape, table.Directive(Android))
		assert.True(t, table.Directive(Android).IsEnabled())
	}
}

func TestResolve_Deterministic(t *testing.T) {
	icons, err := ParseIconsSpec(map[string]any{
		"android": true,
		"windows": map[string]any{"background": "#000", "offset": 5},
		"coast":   false,
	})
	require.NoError(t, err)
	manifest, err := ParseManifestSpec(map[string]any{"android": "manifest.json", "yandex": false})
	require.NoError(t, err)

	first := mustResolve(t, icons, manifest)
	for range 10 {
		again := mustResolve(t, icons, manifest)
		assert.Equal(t, first, again)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(again)
		require.NoError(t, err)
		assert.JSONEq(t, string(a), string(b))
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		icons    IconsSpec
		manifest ManifestSpec
	}{
		{
			name:  "unknown icon platform",
			icons: ExplicitIcons(map[Platform]Directive{"palm": Enabled()}),
		},
		{
			name:     "manifest on non-manifestable platform",
			manifest: ManifestTable(map[Platform]ManifestEntry{Coast: ManifestFlag(true)}),
		},
		{
			name:     "unknown manifest platform",
			manifest: ManifestTable(map[Platform]ManifestEntry{"palm": ManifestFlag(true)}),
		},
		{
			name:     "empty manifest path",
			manifest: ManifestTable(map[Platform]ManifestEntry{Android: ManifestFile("")}),
		},
		{
			name:  "manifest link in icons table",
			icons: ExplicitIcons(map[Platform]Directive{Android: {kind: KindManifestLinked, manifestPath: "x"}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.icons, tt.manifest)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestManifestLinked(t *testing.T) {
	d, err := ManifestLinked(Firefox, "manifest.webapp")
	require.NoError(t, err)
	assert.Equal(t, "manifest.webapp", d.ManifestPath())

	_, err = ManifestLinked(Coast, "x")
	require.Error(t, err)

	_, err = ManifestLinked(Android, "")
	require.Error(t, err)
}

func TestDirectiveMarshal(t *testing.T) {
	linked, err := ManifestLinked(Android, "m.json")
	require.NoError(t, err)

	tests := []struct {
		d    Directive
		want string
	}{
		{Disabled(), `false`},
		{Enabled(), `true`},
		{WithShape(ShapeOptions{Offset: 5, Background: "red"}), `{"offset":5,"background":"red"}`},
		{linked, `{"manifest":"m.json"}`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.d)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(got))
	}
}

func TestTableClone(t *testing.T) {
	table := mustResolve(t, PresetIcons(PresetDefault), ManifestTable(map[Platform]ManifestEntry{Android: ManifestFile("m.json")}))
	clone := table.Clone()
	clone.Directives[Coast] = Disabled()
	clone.Manifests[Android] = "other.json"

	assert.True(t, table.Directive(Coast).IsEnabled())
	assert.Equal(t, "m.json", table.ManifestPath(Android))
}
