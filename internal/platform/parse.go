package platform

import (
	"fmt"
)

// ParseIconsSpec converts a decoded configuration value (YAML, TOML or JSON)
// into an IconsSpec. Accepted forms are nil (default preset), a preset name,
// or a table mapping platform names to false, true or a shape object.
func ParseIconsSpec(v any) (IconsSpec, error) {
	switch val := v.(type) {
	case nil:
		return PresetIcons(PresetDefault), nil
	case IconsSpec:
		return val, nil
	case string:
		return PresetIcons(val), nil
	}

	m, ok := asMap(v)
	if !ok {
		return IconsSpec{}, invalidValue("icons", fmt.Sprintf("expected a preset name or a table, got %T", v))
	}

	platforms := make(map[Platform]Directive, len(m))
	for name, raw := range m {
		p, err := Parse(name)
		if err != nil {
			return IconsSpec{}, err
		}
		d, err := parseIconValue(name, raw)
		if err != nil {
			return IconsSpec{}, err
		}
		platforms[p] = d
	}
	return ExplicitIcons(platforms), nil
}

func parseIconValue(name string, raw any) (Directive, error) {
	if b, ok := raw.(bool); ok {
		if b {
			return Enabled(), nil
		}
		return Disabled(), nil
	}
	if sh, ok := raw.(ShapeOptions); ok {
		return WithShape(sh), nil
	}
	m, ok := asMap(raw)
	if !ok {
		return Directive{}, invalidValue(name, fmt.Sprintf("expected true, false or a shape object, got %T", raw))
	}
	shape, err := parseShape(name, m)
	if err != nil {
		return Directive{}, err
	}
	return WithShape(shape), nil
}

func parseShape(name string, m map[string]any) (ShapeOptions, error) {
	var shape ShapeOptions
	for key, raw := range m {
		switch key {
		case "offset":
			n, ok := asNumber(raw)
			if !ok || n < 0 || n > 100 {
				return ShapeOptions{}, invalidValue(name, "offset must be a number between 0 and 100")
			}
			shape.Offset = n
		case "shadow":
			b, ok := raw.(bool)
			if !ok {
				return ShapeOptions{}, invalidValue(name, "shadow must be a boolean")
			}
			shape.Shadow = b
		case "background":
			s, ok := raw.(string)
			if !ok {
				return ShapeOptions{}, invalidValue(name, "background must be a color string")
			}
			shape.Background = s
		default:
			return ShapeOptions{}, invalidValue(name, fmt.Sprintf("unknown shape option %q", key))
		}
	}
	return shape, nil
}

// ParseManifestSpec converts a decoded configuration value into a ManifestSpec.
// Accepted forms are nil (true), a boolean, or a table mapping manifestable
// platform names to a boolean or a manifest template path.
func ParseManifestSpec(v any) (ManifestSpec, error) {
	switch val := v.(type) {
	case nil:
		return ManifestAll(true), nil
	case ManifestSpec:
		return val, nil
	case bool:
		return ManifestAll(val), nil
	}

	m, ok := asMap(v)
	if !ok {
		return ManifestSpec{}, invalidValue("manifest", fmt.Sprintf("expected a boolean or a table, got %T", v))
	}

	entries := make(map[Platform]ManifestEntry, len(m))
	for name, raw := range m {
		p, err := Parse(name)
		if err != nil {
			return ManifestSpec{}, err
		}
		if !p.IsManifestable() {
			return ManifestSpec{}, notManifestable(name)
		}
		switch val := raw.(type) {
		case bool:
			entries[p] = ManifestFlag(val)
		case string:
			if val == "" {
				return ManifestSpec{}, invalidValue(name, "manifest path must not be empty")
			}
			entries[p] = ManifestFile(val)
		default:
			return ManifestSpec{}, invalidValue(name, fmt.Sprintf("expected a boolean or a path, got %T", raw))
		}
	}
	return ManifestTable(entries), nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	case map[string]bool:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
