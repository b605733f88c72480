// Package platform resolves the per-platform icon directives from the icons
// and manifest options.
//
// Resolution is pure: it never touches the file system and reports every
// invalid option as a configuration error before generation starts.
package platform

import (
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Platform names an icon target.
type Platform string

const (
	Android      Platform = "android"
	AppleIcon    Platform = "appleIcon"
	AppleStartup Platform = "appleStartup"
	Coast        Platform = "coast"
	Favicons     Platform = "favicons"
	Firefox      Platform = "firefox"
	Windows      Platform = "windows"
	Yandex       Platform = "yandex"
)

var all = []Platform{Android, AppleIcon, AppleStartup, Coast, Favicons, Firefox, Windows, Yandex}

// All returns every known platform in a stable order.
func All() []Platform {
	out := make([]Platform, len(all))
	copy(out, all)
	return out
}

// Manifestable returns the platforms that can emit a manifest next to their icons.
func Manifestable() []Platform {
	return []Platform{Android, Windows, Yandex, Firefox}
}

// Known reports whether p is one of the recognized platforms.
func (p Platform) Known() bool {
	for _, k := range all {
		if k == p {
			return true
		}
	}
	return false
}

// IsManifestable reports whether p supports manifest emission.
func (p Platform) IsManifestable() bool {
	switch p {
	case Android, Windows, Yandex, Firefox:
		return true
	default:
		return false
	}
}

func (p Platform) String() string { return string(p) }

// Parse converts a configuration key to a Platform.
func Parse(name string) (Platform, error) {
	p := Platform(name)
	if !p.Known() {
		return "", unknownPlatform(name)
	}
	return p, nil
}

func unknownPlatform(name string) error {
	return errors.ConfigError("unknown platform").
		WithContext("platform", name).
		Build()
}
