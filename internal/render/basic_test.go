package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/platform"
)

var blue = color.NRGBA{B: 255, A: 255}

func sourcePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, blue)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testApp() config.AppMetadata {
	return config.AppMetadata{
		Name:        "Demo & Co",
		Background:  "#fff",
		ThemeColor:  "#336699",
		Display:     config.DisplayStandalone,
		Orientation: config.OrientationAny,
		StartURL:    "/",
		Version:     "1.0",
		Lang:        "en-US",
	}
}

// only builds a table where p is the single enabled platform.
func only(p platform.Platform, d platform.Directive) platform.Table {
	table := platform.Table{Preset: "custom", Directives: map[platform.Platform]platform.Directive{}}
	for _, other := range platform.All() {
		table.Directives[other] = platform.Disabled()
	}
	table.Directives[p] = d
	return table
}

func resolved(t *testing.T, preset string) platform.Table {
	t.Helper()
	table, err := platform.Resolve(platform.PresetIcons(preset), platform.ManifestAll(true))
	require.NoError(t, err)
	return table
}

func imageNames(resp *Response) []string {
	names := make([]string, 0, len(resp.Images))
	for _, img := range resp.Images {
		names = append(names, img.Name)
	}
	return names
}

func file(t *testing.T, resp *Response, name string) string {
	t.Helper()
	for _, f := range resp.Files {
		if f.Name == name {
			return f.Contents
		}
	}
	t.Fatalf("file %s not rendered", name)
	return ""
}

func decodeImage(t *testing.T, resp *Response, name string) image.Image {
	t.Helper()
	for _, img := range resp.Images {
		if img.Name == name {
			decoded, err := png.Decode(bytes.NewReader(img.Contents))
			require.NoError(t, err)
			return decoded
		}
	}
	t.Fatalf("image %s not rendered", name)
	return nil
}

func TestBasicDevPreset(t *testing.T) {
	resp, err := NewBasic().Render(context.Background(), sourcePNG(t), Request{
		Icons: resolved(t, platform.PresetDev),
		App:   testApp(),
		Path:  "/static/icons-abc/",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"favicon.ico"}, imageNames(resp))
	assert.Empty(t, resp.Files)
	assert.Equal(t, []string{`<link rel="shortcut icon" href="/static/icons-abc/favicon.ico">`}, resp.HTML)
}

func TestBasicDefaultPreset(t *testing.T) {
	resp, err := NewBasic().Render(context.Background(), sourcePNG(t), Request{
		Icons: resolved(t, platform.PresetDefault),
		App:   testApp(),
		Path:  "icons/",
	})
	require.NoError(t, err)

	assert.Len(t, resp.Images, 40)
	assert.Len(t, resp.Files, 4)
	names := imageNames(resp)
	for _, want := range []string{
		"favicon.ico", "favicon-16x16.png", "favicon-32x32.png",
		"android-chrome-512x512.png", "apple-touch-icon.png", "apple-touch-icon-precomposed.png",
		"apple-touch-startup-image-320x460.png", "coast-228x228.png", "firefox_app_60x60.png",
		"mstile-310x150.png", "yandex-browser-50x50.png",
	} {
		assert.Contains(t, names, want)
	}

	require.NoError(t, ValidateFragments(resp.HTML))
	assert.Contains(t, resp.HTML, `<meta name="application-name" content="Demo &amp; Co">`)
	assert.Contains(t, resp.HTML, `<link rel="manifest" href="icons/manifest.json">`)

	b := decodeImage(t, resp, "android-chrome-192x192.png").Bounds()
	assert.Equal(t, 192, b.Dx())
	assert.Equal(t, 192, b.Dy())
	wide := decodeImage(t, resp, "mstile-310x150.png").Bounds()
	assert.Equal(t, 310, wide.Dx())
	assert.Equal(t, 150, wide.Dy())

	var manifest map[string]any
	require.NoError(t, json.Unmarshal([]byte(file(t, resp, "manifest.json")), &manifest))
	assert.Equal(t, "Demo & Co", manifest["name"])
	assert.Equal(t, "standalone", manifest["display"])
	assert.Len(t, manifest["icons"], 9)

	assert.Contains(t, file(t, resp, "browserconfig.xml"), `<square150x150logo src="icons/mstile-150x150.png"></square150x150logo>`)
	assert.Contains(t, file(t, resp, "manifest.webapp"), `"128": "icons/firefox_app_128x128.png"`)
	assert.Contains(t, file(t, resp, "yandex-browser-manifest.json"), `"logo": "icons/yandex-browser-50x50.png"`)
}

func TestBasicShapeOptions(t *testing.T) {
	table := only(platform.Favicons, platform.WithShape(platform.ShapeOptions{Offset: 25, Background: "#ff0000"}))
	resp, err := NewBasic().Render(context.Background(), sourcePNG(t), Request{Icons: table, App: testApp()})
	require.NoError(t, err)

	img := decodeImage(t, resp, "favicon-32x32.png")
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a}, "padding is filled with the background")
	r, _, b, a = img.At(16, 16).RGBA()
	assert.Less(t, r, uint32(0x1000), "source is drawn inside the padding")
	assert.Greater(t, b, uint32(0xf000))
	assert.Greater(t, a, uint32(0xf000))
}

func TestBasicTransparentWithoutBackground(t *testing.T) {
	table := only(platform.Coast, platform.WithShape(platform.ShapeOptions{Offset: 10}))
	resp, err := NewBasic().Render(context.Background(), sourcePNG(t), Request{Icons: table, App: testApp()})
	require.NoError(t, err)

	_, _, _, a := decodeImage(t, resp, "coast-228x228.png").At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestBasicManifestTemplate(t *testing.T) {
	linked, err := platform.ManifestLinked(platform.Android, "templates/manifest.json")
	require.NoError(t, err)

	templates := map[string]string{
		"templates/manifest.json": `{"name": {{json .App.Name}}, "icons": {{len .Icons}}, "platform": "{{.Platform}}"}`,
	}
	read := func(name string) ([]byte, error) {
		if s, ok := templates[name]; ok {
			return []byte(s), nil
		}
		return nil, os.ErrNotExist
	}

	r := NewBasic().WithTemplateReader(read)
	resp, err := r.Render(context.Background(), sourcePNG(t), Request{Icons: only(platform.Android, linked), App: testApp()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Demo & Co", "icons": 9, "platform": "android"}`, file(t, resp, "manifest.json"))

	broken, err := platform.ManifestLinked(platform.Android, "templates/missing.json")
	require.NoError(t, err)
	_, err = r.Render(context.Background(), sourcePNG(t), Request{Icons: only(platform.Android, broken), App: testApp()})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBasicManifestPathOnShape(t *testing.T) {
	table := only(platform.Yandex, platform.WithShape(platform.ShapeOptions{Background: "white"}))
	table.Manifests = map[platform.Platform]string{platform.Yandex: "yandex.tmpl"}

	r := NewBasic().WithTemplateReader(func(string) ([]byte, error) {
		return []byte(`{"color": {{json .App.Background}}}`), nil
	})
	resp, err := r.Render(context.Background(), sourcePNG(t), Request{Icons: table, App: testApp()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"color": "#fff"}`, file(t, resp, "yandex-browser-manifest.json"))
}

func TestBasicErrors(t *testing.T) {
	_, err := NewBasic().Render(context.Background(), []byte("not an image"), Request{Icons: resolved(t, platform.PresetDev)})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "decode source image"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewBasic().Render(ctx, sourcePNG(t), Request{Icons: resolved(t, platform.PresetDev)})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBasicNothingEnabled(t *testing.T) {
	table := only(platform.Favicons, platform.Disabled())
	resp, err := NewBasic().Render(context.Background(), sourcePNG(t), Request{Icons: table})
	require.NoError(t, err)
	assert.Empty(t, resp.Images)
	assert.Empty(t, resp.Files)
	assert.Empty(t, resp.HTML)
}
