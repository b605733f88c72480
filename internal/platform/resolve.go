package platform

import (
	"slices"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Resolve merges the icons option and the manifest option into one directive
// table. The icons option is resolved first and the manifest option is applied
// on top of it:
//
//   - manifest false disables android, windows, yandex and firefox;
//   - a false table entry disables that platform;
//   - a true table entry enables that platform;
//   - a path table entry links a plain boolean directive to the template and
//     records the path for the renderer.
//
// A shape object from the icons option is never changed by the manifest option.
func Resolve(icons IconsSpec, manifest ManifestSpec) (Table, error) {
	table, err := resolveIcons(icons)
	if err != nil {
		return Table{}, err
	}
	if err := applyManifest(&table, manifest); err != nil {
		return Table{}, err
	}
	return table, nil
}

func resolveIcons(icons IconsSpec) (Table, error) {
	if !icons.IsExplicit() {
		return presetTable(icons.Preset), nil
	}

	table := Table{Directives: make(map[Platform]Directive, len(icons.Platforms))}
	for _, p := range sortedKeys(icons.Platforms) {
		if !p.Known() {
			return Table{}, unknownPlatform(string(p))
		}
		d := icons.Platforms[p]
		if d.kind == KindManifestLinked {
			return Table{}, invalidValue(string(p), "manifest templates belong in the manifest option")
		}
		table.Directives[p] = d
	}
	return table, nil
}

func presetTable(name string) Table {
	switch name {
	case "", PresetDefault:
		table := Table{Preset: PresetDefault, Directives: make(map[Platform]Directive, len(all))}
		for _, p := range all {
			table.Directives[p] = Enabled()
		}
		return table
	case PresetDev:
		table := Table{Preset: PresetDev, Directives: make(map[Platform]Directive, len(all))}
		for _, p := range all {
			table.Directives[p] = Disabled()
		}
		table.Directives[Favicons] = Enabled()
		return table
	default:
		// Unknown presets force nothing either way.
		return Table{Preset: name, Directives: map[Platform]Directive{}}
	}
}

func applyManifest(table *Table, manifest ManifestSpec) error {
	if !manifest.IsTable() {
		if manifest.Enabled() {
			return nil
		}
		for _, p := range Manifestable() {
			if table.Directive(p).IsShape() {
				continue
			}
			table.Directives[p] = Disabled()
		}
		return nil
	}

	for _, p := range sortedKeys(manifest.table) {
		if !p.Known() {
			return unknownPlatform(string(p))
		}
		if !p.IsManifestable() {
			return notManifestable(string(p))
		}

		entry := manifest.table[p]
		current, explicit := table.Directives[p]

		switch {
		case entry.IsPath():
			if entry.path == "" {
				return invalidValue(string(p), "manifest path must not be empty")
			}
			if table.Manifests == nil {
				table.Manifests = make(map[Platform]string)
			}
			table.Manifests[p] = entry.path
			if explicit && current.IsPlain() {
				table.Directives[p] = Directive{kind: KindManifestLinked, manifestPath: entry.path}
			}
		case !entry.flag:
			if !current.IsShape() {
				table.Directives[p] = Disabled()
			}
		default:
			if !current.IsShape() {
				table.Directives[p] = Enabled()
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[Platform]V) []Platform {
	keys := make([]Platform, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func notManifestable(name string) error {
	return errors.ConfigError("platform does not support manifests").
		WithContext("platform", name).
		Build()
}

func invalidValue(name, reason string) error {
	return errors.ConfigError("invalid platform option: "+reason).
		WithContext("platform", name).
		Build()
}
