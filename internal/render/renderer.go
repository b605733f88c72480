// Package render turns a source image and resolved directives into icon
// files, manifests and HTML fragments.
//
// Renderer is the boundary the generator calls. Basic is the built-in
// implementation; hosts can plug in their own.
package render

import (
	"context"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/platform"
)

// Request is everything a renderer needs besides the source bytes.
type Request struct {
	// Icons holds the resolved per-platform directives.
	Icons platform.Table
	// App describes the web application for manifests and meta tags.
	App config.AppMetadata
	// Path prefixes every asset reference in HTML and manifests.
	Path string
}

// Image is a rendered binary asset.
type Image struct {
	Name     string
	Contents []byte
}

// File is a rendered text asset.
type File struct {
	Name     string
	Contents string
}

// Response is the raw renderer output.
type Response struct {
	Images []Image
	Files  []File
	HTML   []string
}

// Renderer renders the icon set for one source image.
type Renderer interface {
	Render(ctx context.Context, source []byte, req Request) (*Response, error)
}

// Func adapts a function to Renderer.
type Func func(ctx context.Context, source []byte, req Request) (*Response, error)

// Render implements Renderer.
func (f Func) Render(ctx context.Context, source []byte, req Request) (*Response, error) {
	return f(ctx, source, req)
}
