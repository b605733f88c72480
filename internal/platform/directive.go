package platform

import (
	"encoding/json"
	"maps"
)

// Kind tags the variant held by a Directive.
type Kind int

const (
	KindDisabled Kind = iota
	KindEnabled
	KindShape
	KindManifestLinked
)

func (k Kind) String() string {
	switch k {
	case KindDisabled:
		return "disabled"
	case KindEnabled:
		return "enabled"
	case KindShape:
		return "shape"
	case KindManifestLinked:
		return "manifest"
	default:
		return "unknown"
	}
}

// ShapeOptions customizes how a platform's icons are drawn.
type ShapeOptions struct {
	// Offset is the padding around the icon in percent of the icon size.
	Offset float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	// Shadow draws a drop shadow below the icon.
	Shadow bool `json:"shadow,omitempty" yaml:"shadow,omitempty"`
	// Background fills the icon canvas with a CSS color. Empty keeps it transparent.
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// Directive is the resolved generation instruction for one platform.
// The zero value is a disabled directive.
type Directive struct {
	kind         Kind
	shape        ShapeOptions
	manifestPath string
}

// Disabled skips the platform entirely.
func Disabled() Directive { return Directive{kind: KindDisabled} }

// Enabled renders the platform with the default shape.
func Enabled() Directive { return Directive{kind: KindEnabled} }

// WithShape renders the platform with custom shape options.
func WithShape(opts ShapeOptions) Directive { return Directive{kind: KindShape, shape: opts} }

// ManifestLinked renders the platform using the manifest template at path.
// Only manifestable platforms accept it.
func ManifestLinked(p Platform, path string) (Directive, error) {
	if !p.IsManifestable() {
		return Directive{}, notManifestable(string(p))
	}
	if path == "" {
		return Directive{}, invalidValue(string(p), "manifest path must not be empty")
	}
	return Directive{kind: KindManifestLinked, manifestPath: path}, nil
}

// Kind returns the directive variant.
func (d Directive) Kind() Kind { return d.kind }

// IsEnabled reports whether the platform produces any output.
func (d Directive) IsEnabled() bool { return d.kind != KindDisabled }

// IsShape reports whether the directive came from an explicit shape object.
func (d Directive) IsShape() bool { return d.kind == KindShape }

// IsPlain reports whether the directive is a plain boolean (enabled or disabled).
func (d Directive) IsPlain() bool { return d.kind == KindDisabled || d.kind == KindEnabled }

// Shape returns the custom shape options. It is the zero value for every
// kind except KindShape.
func (d Directive) Shape() ShapeOptions { return d.shape }

// ManifestPath returns the linked manifest template path, if any.
func (d Directive) ManifestPath() string { return d.manifestPath }

func (d Directive) value() any {
	switch d.kind {
	case KindEnabled:
		return true
	case KindShape:
		return d.shape
	case KindManifestLinked:
		return map[string]string{"manifest": d.manifestPath}
	default:
		return false
	}
}

// MarshalJSON renders the directive in option form: false, true, a shape
// object or {"manifest": path}.
func (d Directive) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value())
}

// MarshalYAML mirrors MarshalJSON.
func (d Directive) MarshalYAML() (any, error) {
	return d.value(), nil
}

// Table is the resolved directive table. It is sparse: platforms without an
// entry use the renderer default, which is Enabled.
type Table struct {
	Preset     string                `json:"preset,omitempty" yaml:"preset,omitempty"`
	Directives map[Platform]Directive `json:"directives" yaml:"directives"`
	// Manifests holds every manifest path from the manifest option, including
	// those of platforms whose directive stayed a shape object.
	Manifests map[Platform]string `json:"manifests,omitempty" yaml:"manifests,omitempty"`
}

// Directive returns the directive for p, defaulting to Enabled.
func (t Table) Directive(p Platform) Directive {
	if d, ok := t.Directives[p]; ok {
		return d
	}
	return Enabled()
}

// Explicit reports whether p has an entry in the table.
func (t Table) Explicit(p Platform) bool {
	_, ok := t.Directives[p]
	return ok
}

// ManifestPath returns the manifest template for p: the linked path of a
// ManifestLinked directive, else any path recorded from the manifest option.
func (t Table) ManifestPath(p Platform) string {
	if d := t.Directive(p); d.kind == KindManifestLinked {
		return d.manifestPath
	}
	return t.Manifests[p]
}

// EnabledPlatforms lists the platforms that produce output, in All() order.
func (t Table) EnabledPlatforms() []Platform {
	var out []Platform
	for _, p := range all {
		if t.Directive(p).IsEnabled() {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{Preset: t.Preset, Directives: make(map[Platform]Directive, len(t.Directives))}
	maps.Copy(out.Directives, t.Directives)
	if t.Manifests != nil {
		out.Manifests = maps.Clone(t.Manifests)
	}
	return out
}
