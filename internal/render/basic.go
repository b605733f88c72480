package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/platform"
)

// Basic renders PNG and ICO icons locally from any source format registered
// with the image package (PNG, JPEG and GIF are linked in).
type Basic struct {
	logger   *slog.Logger
	readFile func(name string) ([]byte, error)
}

// NewBasic returns the built-in renderer.
func NewBasic() *Basic {
	return &Basic{logger: slog.Default(), readFile: os.ReadFile}
}

// WithLogger sets the logger.
func (b *Basic) WithLogger(logger *slog.Logger) *Basic {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithTemplateReader replaces how manifest templates are read.
func (b *Basic) WithTemplateReader(read func(name string) ([]byte, error)) *Basic {
	if read != nil {
		b.readFile = read
	}
	return b
}

type platformRenderer func(j *job) error

var platformRenderers = map[platform.Platform]platformRenderer{
	platform.Android:      renderAndroid,
	platform.AppleIcon:    renderAppleIcon,
	platform.AppleStartup: renderAppleStartup,
	platform.Coast:        renderCoast,
	platform.Favicons:     renderFavicons,
	platform.Firefox:      renderFirefox,
	platform.Windows:      renderWindows,
	platform.Yandex:       renderYandex,
}

// Render implements Renderer.
func (b *Basic) Render(ctx context.Context, source []byte, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, format, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("decode source image: %w", err)
	}
	b.logger.Debug("Decoded source image", "format", format, "bounds", src.Bounds().String())

	out := &Response{}
	for _, p := range req.Icons.EnabledPlatforms() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fn, ok := platformRenderers[p]
		if !ok {
			continue
		}
		j := &job{basic: b, src: src, req: req, platform: p, directive: req.Icons.Directive(p), out: out}
		if err := fn(j); err != nil {
			return nil, fmt.Errorf("render %s: %w", p, err)
		}
		b.logger.Debug("Rendered platform", logfields.Platform(string(p)), logfields.Assets(j.emitted))
	}
	return out, nil
}

// job carries the state of rendering one platform.
type job struct {
	basic     *Basic
	src       image.Image
	req       Request
	platform  platform.Platform
	directive platform.Directive
	out       *Response
	emitted   int
}

func (j *job) href(name string) string {
	return html.EscapeString(j.req.Path + name)
}

func (j *job) addHTML(format string, args ...any) {
	j.out.HTML = append(j.out.HTML, fmt.Sprintf(format, args...))
}

func (j *job) addFile(name, contents string) {
	j.out.Files = append(j.out.Files, File{Name: name, Contents: contents})
	j.emitted++
}

func (j *job) addImage(name string, data []byte) {
	j.out.Images = append(j.out.Images, Image{Name: name, Contents: data})
	j.emitted++
}

// background returns the shape background of the directive, or fallback when
// the directive sets none.
func (j *job) background(fallback string) color.Color {
	raw := j.directive.Shape().Background
	if raw == "" {
		raw = fallback
	}
	if raw == "" {
		return nil
	}
	c, ok := parseColor(raw)
	if !ok {
		j.basic.logger.Warn("Unsupported color, using white",
			logfields.Platform(string(j.platform)), slog.String("color", raw))
		return color.White
	}
	return c
}

// icon renders the source at w x h honoring the directive's shape options.
func (j *job) icon(w, h int) ([]byte, error) {
	shape := j.directive.Shape()
	return encodePNG(compose(j.src, canvas{
		width:      w,
		height:     h,
		box:        paddedBox(w, h, shape.Offset),
		background: j.background(""),
		shadow:     shape.Shadow,
	}))
}

func (j *job) addIcon(name string, w, h int) error {
	data, err := j.icon(w, h)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	j.addImage(name, data)
	return nil
}

func squareName(prefix string, size int) string {
	return fmt.Sprintf("%s-%dx%d.png", prefix, size, size)
}

// manifest renders the user template linked to the platform when there is
// one, else the built-in document.
func (j *job) manifest(name string, builtin func() (string, error), data manifestData) error {
	tmpl := j.req.Icons.ManifestPath(j.platform)
	if tmpl == "" {
		contents, err := builtin()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		j.addFile(name, contents)
		return nil
	}

	contents, err := executeTemplate(j.basic.readFile, tmpl, data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	j.basic.logger.Debug("Rendered manifest template",
		logfields.Platform(string(j.platform)), logfields.Path(tmpl))
	j.addFile(name, contents)
	return nil
}

func (j *job) manifestData(icons []ManifestIcon) manifestData {
	return manifestData{App: j.req.App, Path: j.req.Path, Platform: string(j.platform), Icons: icons}
}
