package config

import "git.home.luguber.info/inful/faviconbuilder/internal/platform"

// Defaults applied by Resolve when an option is unset.
const (
	DefaultPath          = "icons-[hash]"
	DefaultStatsFilename = "iconstats-[hash].json"
	DefaultAppName       = "Web App"
	DefaultBackground    = "#fff"
	DefaultThemeColor    = "#fff"
	DefaultStartURL      = "/"
	DefaultAppVersion    = "1.0"
	DefaultLang          = "en-US"

	DefaultInject            = true
	DefaultEmitStats         = false
	DefaultCache             = true
	DefaultCopyFaviconToRoot = false
)

// DefaultIcons is the icons preset used when none is configured.
const DefaultIcons = platform.PresetDefault
