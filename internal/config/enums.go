package config

import (
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/normalization"
)

// DisplayMode is the web app manifest display mode.
type DisplayMode string

const (
	DisplayFullscreen DisplayMode = "fullscreen"
	DisplayStandalone DisplayMode = "standalone"
	DisplayMinimalUI  DisplayMode = "minimal-ui"
	DisplayBrowser    DisplayMode = "browser"
)

var displayNormalizer = normalization.NewEnumNormalizer("display", map[string]DisplayMode{
	"fullscreen": DisplayFullscreen,
	"standalone": DisplayStandalone,
	"minimal-ui": DisplayMinimalUI,
	"browser":    DisplayBrowser,
}, DisplayStandalone)

// Orientation is the web app manifest default orientation.
type Orientation string

const (
	OrientationAny                Orientation = "any"
	OrientationNatural            Orientation = "natural"
	OrientationLandscape          Orientation = "landscape"
	OrientationLandscapePrimary   Orientation = "landscape-primary"
	OrientationLandscapeSecondary Orientation = "landscape-secondary"
	OrientationPortrait           Orientation = "portrait"
	OrientationPortraitPrimary    Orientation = "portrait-primary"
	OrientationPortraitSecondary  Orientation = "portrait-secondary"
)

var orientationNormalizer = normalization.NewEnumNormalizer("orientation", map[string]Orientation{
	"any":                 OrientationAny,
	"natural":             OrientationNatural,
	"landscape":           OrientationLandscape,
	"landscape-primary":   OrientationLandscapePrimary,
	"landscape-secondary": OrientationLandscapeSecondary,
	"portrait":            OrientationPortrait,
	"portrait-primary":    OrientationPortraitPrimary,
	"portrait-secondary":  OrientationPortraitSecondary,
}, OrientationAny)

// DisplayModes lists the accepted display values.
func DisplayModes() []string { return displayNormalizer.ValidValues() }

// Orientations lists the accepted orientation values.
func Orientations() []string { return orientationNormalizer.ValidValues() }
