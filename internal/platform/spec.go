package platform

// Preset names understood by the icons option.
const (
	PresetDefault = "default"
	PresetDev     = "dev"
)

// IconsSpec is the icons option: a preset name or an explicit per-platform table.
// The zero value selects the default preset.
type IconsSpec struct {
	Preset    string
	Platforms map[Platform]Directive
}

// PresetIcons selects a named preset.
func PresetIcons(name string) IconsSpec { return IconsSpec{Preset: name} }

// ExplicitIcons selects an explicit per-platform table. Only Disabled, Enabled
// and WithShape directives are accepted by Resolve.
func ExplicitIcons(platforms map[Platform]Directive) IconsSpec {
	if platforms == nil {
		platforms = map[Platform]Directive{}
	}
	return IconsSpec{Platforms: platforms}
}

// IsExplicit reports whether the spec is a per-platform table.
func (s IconsSpec) IsExplicit() bool { return s.Platforms != nil }

// ManifestEntry is one value of the per-platform manifest table: a boolean
// flag or the path of a manifest template.
type ManifestEntry struct {
	flag   bool
	path   string
	isPath bool
}

// ManifestFlag is a boolean manifest table value.
func ManifestFlag(enabled bool) ManifestEntry { return ManifestEntry{flag: enabled} }

// ManifestFile is a manifest template path value.
func ManifestFile(path string) ManifestEntry { return ManifestEntry{path: path, isPath: true} }

// IsPath reports whether the entry names a template file.
func (e ManifestEntry) IsPath() bool { return e.isPath }

// Flag returns the boolean value of a flag entry.
func (e ManifestEntry) Flag() bool { return e.flag }

// Path returns the template path of a path entry.
func (e ManifestEntry) Path() string { return e.path }

// ManifestSpec is the manifest option: a boolean or a per-platform table.
// The zero value is the boolean true.
type ManifestSpec struct {
	disabled bool
	table    map[Platform]ManifestEntry
}

// ManifestAll is the boolean form of the manifest option.
func ManifestAll(enabled bool) ManifestSpec { return ManifestSpec{disabled: !enabled} }

// ManifestTable is the per-platform form of the manifest option.
func ManifestTable(entries map[Platform]ManifestEntry) ManifestSpec {
	if entries == nil {
		entries = map[Platform]ManifestEntry{}
	}
	return ManifestSpec{table: entries}
}

// IsTable reports whether the spec is a per-platform table.
func (s ManifestSpec) IsTable() bool { return s.table != nil }

// Enabled returns the boolean form's value. Tables report true.
func (s ManifestSpec) Enabled() bool { return !s.disabled }

// Entries returns the per-platform table. It is nil for the boolean form.
func (s ManifestSpec) Entries() map[Platform]ManifestEntry { return s.table }
