package render

import (
	"fmt"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/faviconbuilder/internal/platform"
)

var (
	androidSizes   = []int{36, 48, 72, 96, 144, 192, 256, 384, 512}
	appleIconSizes = []int{57, 60, 72, 76, 114, 120, 144, 152, 167, 180}
	faviconSizes   = []int{16, 32}
	icoSizes       = []int{16, 32, 48}
	firefoxSizes   = []int{60, 128, 512}
)

type startupImage struct {
	width, height int
	media         string
}

var startupImages = []startupImage{
	{320, 460, "(device-width: 320px) and (device-height: 480px) and (-webkit-device-pixel-ratio: 1)"},
	{640, 920, "(device-width: 320px) and (device-height: 480px) and (-webkit-device-pixel-ratio: 2)"},
	{640, 1096, "(device-width: 320px) and (device-height: 568px) and (-webkit-device-pixel-ratio: 2)"},
	{750, 1294, "(device-width: 375px) and (device-height: 667px) and (-webkit-device-pixel-ratio: 2)"},
	{1242, 2148, "(device-width: 414px) and (device-height: 736px) and (-webkit-device-pixel-ratio: 3)"},
	{1536, 2008, "(device-width: 768px) and (device-height: 1024px) and (-webkit-device-pixel-ratio: 2)"},
}

func renderFavicons(j *job) error {
	var entries []icoImage
	for _, size := range icoSizes {
		data, err := j.icon(size, size)
		if err != nil {
			return err
		}
		entries = append(entries, icoImage{size: size, png: data})
	}
	ico, err := encodeICO(entries)
	if err != nil {
		return err
	}
	j.addImage("favicon.ico", ico)

	if j.req.Icons.Preset == platform.PresetDev {
		j.addHTML(`<link rel="shortcut icon" href="%s">`, j.href("favicon.ico"))
		return nil
	}

	for _, size := range faviconSizes {
		name := squareName("favicon", size)
		if err := j.addIcon(name, size, size); err != nil {
			return err
		}
		j.addHTML(`<link rel="icon" type="image/png" sizes="%dx%d" href="%s">`, size, size, j.href(name))
	}
	j.addHTML(`<link rel="shortcut icon" href="%s">`, j.href("favicon.ico"))
	return nil
}

func renderAndroid(j *job) error {
	icons := make([]ManifestIcon, 0, len(androidSizes))
	for _, size := range androidSizes {
		name := squareName("android-chrome", size)
		if err := j.addIcon(name, size, size); err != nil {
			return err
		}
		icons = append(icons, ManifestIcon{Src: j.req.Path + name, Size: size, Sizes: sizes(size, size), Type: "image/png"})
	}

	data := j.manifestData(icons)
	if err := j.manifest("manifest.json", func() (string, error) { return androidManifest(data) }, data); err != nil {
		return err
	}

	j.addHTML(`<link rel="manifest" href="%s">`, j.href("manifest.json"))
	j.addHTML(`<meta name="mobile-web-app-capable" content="yes">`)
	j.addHTML(`<meta name="theme-color" content="%s">`, html.EscapeString(j.req.App.ThemeColor))
	j.addHTML(`<meta name="application-name" content="%s">`, html.EscapeString(j.req.App.Name))
	return nil
}

func renderAppleIcon(j *job) error {
	for _, size := range appleIconSizes {
		name := squareName("apple-touch-icon", size)
		if err := j.addIcon(name, size, size); err != nil {
			return err
		}
		j.addHTML(`<link rel="apple-touch-icon" sizes="%dx%d" href="%s">`, size, size, j.href(name))
	}
	for _, name := range []string{"apple-touch-icon.png", "apple-touch-icon-precomposed.png"} {
		if err := j.addIcon(name, 180, 180); err != nil {
			return err
		}
	}

	j.addHTML(`<meta name="apple-mobile-web-app-capable" content="yes">`)
	j.addHTML(`<meta name="apple-mobile-web-app-status-bar-style" content="black-translucent">`)
	j.addHTML(`<meta name="apple-mobile-web-app-title" content="%s">`, html.EscapeString(j.req.App.Name))
	return nil
}

func renderAppleStartup(j *job) error {
	bg := j.background(j.req.App.Background)
	shadow := j.directive.Shape().Shadow
	for _, s := range startupImages {
		data, err := encodePNG(compose(j.src, canvas{
			width:      s.width,
			height:     s.height,
			box:        centeredBox(s.width, s.height, 3),
			background: bg,
			shadow:     shadow,
		}))
		if err != nil {
			return err
		}
		name := fmt.Sprintf("apple-touch-startup-image-%dx%d.png", s.width, s.height)
		j.addImage(name, data)
		j.addHTML(`<link rel="apple-touch-startup-image" media="%s" href="%s">`, s.media, j.href(name))
	}
	return nil
}

func renderCoast(j *job) error {
	name := squareName("coast", 228)
	if err := j.addIcon(name, 228, 228); err != nil {
		return err
	}
	j.addHTML(`<link rel="icon" type="image/png" sizes="228x228" href="%s">`, j.href(name))
	return nil
}

func renderFirefox(j *job) error {
	icons := make([]ManifestIcon, 0, len(firefoxSizes))
	for _, size := range firefoxSizes {
		name := fmt.Sprintf("firefox_app_%dx%d.png", size, size)
		if err := j.addIcon(name, size, size); err != nil {
			return err
		}
		icons = append(icons, ManifestIcon{Src: j.req.Path + name, Size: size, Sizes: sizes(size, size), Type: "image/png"})
	}
	data := j.manifestData(icons)
	return j.manifest("manifest.webapp", func() (string, error) { return firefoxManifest(data) }, data)
}

func renderWindows(j *job) error {
	tiles := []struct {
		name string
		w, h int
	}{
		{squareName("mstile", 70), 70, 70},
		{squareName("mstile", 144), 144, 144},
		{squareName("mstile", 150), 150, 150},
		{squareName("mstile", 310), 310, 310},
		{"mstile-310x150.png", 310, 150},
	}
	icons := make([]ManifestIcon, 0, len(tiles))
	for _, tile := range tiles {
		if err := j.addIcon(tile.name, tile.w, tile.h); err != nil {
			return err
		}
		icons = append(icons, ManifestIcon{Src: j.req.Path + tile.name, Size: tile.w, Sizes: sizes(tile.w, tile.h), Type: "image/png"})
	}

	data := j.manifestData(icons)
	if err := j.manifest("browserconfig.xml", func() (string, error) { return browserConfig(data) }, data); err != nil {
		return err
	}

	j.addHTML(`<meta name="msapplication-TileColor" content="%s">`, html.EscapeString(j.req.App.Background))
	j.addHTML(`<meta name="msapplication-TileImage" content="%s">`, j.href(squareName("mstile", 144)))
	j.addHTML(`<meta name="msapplication-config" content="%s">`, j.href("browserconfig.xml"))
	return nil
}

func renderYandex(j *job) error {
	name := squareName("yandex-browser", 50)
	if err := j.addIcon(name, 50, 50); err != nil {
		return err
	}
	data := j.manifestData([]ManifestIcon{{Src: j.req.Path + name, Size: 50, Sizes: sizes(50, 50), Type: "image/png"}})
	if err := j.manifest("yandex-browser-manifest.json", func() (string, error) { return yandexManifest(data) }, data); err != nil {
		return err
	}
	j.addHTML(`<link rel="yandex-tableau-widget" href="%s">`, j.href("yandex-browser-manifest.json"))
	return nil
}

func sizes(w, h int) string { return fmt.Sprintf("%dx%d", w, h) }
