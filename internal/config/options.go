package config

// Options mirrors the configuration file. Pointer fields distinguish an unset
// option from an explicit false so defaults can be applied.
type Options struct {
	// Source is the master icon image.
	Source string `yaml:"source" toml:"source" json:"source"`
	// Path is the output directory template; [hash] is replaced with the source hash.
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
	// PublicPath prefixes the output path in generated HTML.
	PublicPath string `yaml:"publicPath,omitempty" toml:"publicPath,omitempty" json:"publicPath,omitempty"`

	// Icons is a preset name or a per-platform table.
	Icons any `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty"`
	// Manifest is a boolean or a per-platform table of booleans and template paths.
	Manifest any `yaml:"manifest,omitempty" toml:"manifest,omitempty" json:"manifest,omitempty"`

	Inject            *bool  `yaml:"inject,omitempty" toml:"inject,omitempty" json:"inject,omitempty"`
	EmitStats         *bool  `yaml:"emitStats,omitempty" toml:"emitStats,omitempty" json:"emitStats,omitempty"`
	StatsFilename     string `yaml:"statsFilename,omitempty" toml:"statsFilename,omitempty" json:"statsFilename,omitempty"`
	Cache             *bool  `yaml:"cache,omitempty" toml:"cache,omitempty" json:"cache,omitempty"`
	CopyFaviconToRoot *bool  `yaml:"copyFaviconToRoot,omitempty" toml:"copyFaviconToRoot,omitempty" json:"copyFaviconToRoot,omitempty"`

	App AppOptions `yaml:"app,omitempty" toml:"app,omitempty" json:"app,omitempty"`
}

// AppOptions describes the web application the icons are generated for.
type AppOptions struct {
	Name          string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Description   string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	DeveloperName string `yaml:"developerName,omitempty" toml:"developerName,omitempty" json:"developerName,omitempty"`
	DeveloperURL  string `yaml:"developerURL,omitempty" toml:"developerURL,omitempty" json:"developerURL,omitempty"`
	Background    string `yaml:"background,omitempty" toml:"background,omitempty" json:"background,omitempty"`
	ThemeColor    string `yaml:"themeColor,omitempty" toml:"themeColor,omitempty" json:"themeColor,omitempty"`
	Display       string `yaml:"display,omitempty" toml:"display,omitempty" json:"display,omitempty"`
	Orientation   string `yaml:"orientation,omitempty" toml:"orientation,omitempty" json:"orientation,omitempty"`
	StartURL      string `yaml:"startURL,omitempty" toml:"startURL,omitempty" json:"startURL,omitempty"`
	Version       string `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty"`
	Lang          string `yaml:"lang,omitempty" toml:"lang,omitempty" json:"lang,omitempty"`

	Logging      *bool `yaml:"logging,omitempty" toml:"logging,omitempty" json:"logging,omitempty"`
	Online       *bool `yaml:"online,omitempty" toml:"online,omitempty" json:"online,omitempty"`
	PreferOnline *bool `yaml:"preferOnline,omitempty" toml:"preferOnline,omitempty" json:"preferOnline,omitempty"`
}

// Bool returns a pointer to b, for building Options in code.
func Bool(b bool) *bool { return &b }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
