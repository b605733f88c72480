package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"text/template"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
)

// ManifestIcon is one icon entry exposed to manifest templates.
type ManifestIcon struct {
	Src   string
	Size  int
	Sizes string
	Type  string
}

// manifestData is the value manifest templates are executed with.
type manifestData struct {
	App      config.AppMetadata
	Path     string
	Platform string
	Icons    []ManifestIcon
}

var templateFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"xml": func(s string) (string, error) {
		var buf bytes.Buffer
		err := xml.EscapeText(&buf, []byte(s))
		return buf.String(), err
	},
}

func executeTemplate(read func(string) ([]byte, error), name string, data manifestData) (string, error) {
	raw, err := read(name)
	if err != nil {
		return "", fmt.Errorf("read manifest template: %w", err)
	}
	tmpl, err := template.New(filepath.Base(name)).Funcs(templateFuncs).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse manifest template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute manifest template: %w", err)
	}
	return buf.String(), nil
}

func marshalIndent(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type webManifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type webManifest struct {
	Name            string            `json:"name"`
	ShortName       string            `json:"short_name"`
	Description     string            `json:"description,omitempty"`
	Dir             string            `json:"dir"`
	Lang            string            `json:"lang"`
	Display         string            `json:"display"`
	Orientation     string            `json:"orientation"`
	StartURL        string            `json:"start_url"`
	BackgroundColor string            `json:"background_color"`
	ThemeColor      string            `json:"theme_color"`
	Icons           []webManifestIcon `json:"icons"`
}

func androidManifest(d manifestData) (string, error) {
	m := webManifest{
		Name:            d.App.Name,
		ShortName:       d.App.Name,
		Description:     d.App.Description,
		Dir:             "auto",
		Lang:            d.App.Lang,
		Display:         string(d.App.Display),
		Orientation:     string(d.App.Orientation),
		StartURL:        d.App.StartURL,
		BackgroundColor: d.App.Background,
		ThemeColor:      d.App.ThemeColor,
		Icons:           make([]webManifestIcon, 0, len(d.Icons)),
	}
	for _, icon := range d.Icons {
		m.Icons = append(m.Icons, webManifestIcon{Src: icon.Src, Sizes: icon.Sizes, Type: icon.Type})
	}
	return marshalIndent(m)
}

type developer struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type firefoxApp struct {
	Version     string            `json:"version"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Icons       map[string]string `json:"icons"`
	Developer   *developer        `json:"developer,omitempty"`
}

func firefoxManifest(d manifestData) (string, error) {
	m := firefoxApp{
		Version:     d.App.Version,
		Name:        d.App.Name,
		Description: d.App.Description,
		Icons:       make(map[string]string, len(d.Icons)),
	}
	for _, icon := range d.Icons {
		m.Icons[fmt.Sprint(icon.Size)] = icon.Src
	}
	if d.App.DeveloperName != "" || d.App.DeveloperURL != "" {
		m.Developer = &developer{Name: d.App.DeveloperName, URL: d.App.DeveloperURL}
	}
	return marshalIndent(m)
}

type yandexLayout struct {
	Logo      string `json:"logo"`
	Color     string `json:"color"`
	ShowTitle bool   `json:"show_title"`
}

type yandexApp struct {
	Version    string       `json:"version"`
	APIVersion int          `json:"api_version"`
	Layout     yandexLayout `json:"layout"`
}

func yandexManifest(d manifestData) (string, error) {
	logo := ""
	if len(d.Icons) > 0 {
		logo = d.Icons[0].Src
	}
	return marshalIndent(yandexApp{
		Version:    d.App.Version,
		APIVersion: 1,
		Layout:     yandexLayout{Logo: logo, Color: d.App.Background, ShowTitle: true},
	})
}

type tileLogo struct {
	Src string `xml:"src,attr"`
}

type browserConfigDoc struct {
	XMLName   xml.Name `xml:"browserconfig"`
	Square70  tileLogo `xml:"msapplication>tile>square70x70logo"`
	Square150 tileLogo `xml:"msapplication>tile>square150x150logo"`
	Wide310   tileLogo `xml:"msapplication>tile>wide310x150logo"`
	Square310 tileLogo `xml:"msapplication>tile>square310x310logo"`
	TileColor string   `xml:"msapplication>tile>TileColor"`
}

func browserConfig(d manifestData) (string, error) {
	doc := browserConfigDoc{TileColor: d.App.Background}
	for _, icon := range d.Icons {
		switch icon.Sizes {
		case "70x70":
			doc.Square70.Src = icon.Src
		case "150x150":
			doc.Square150.Src = icon.Src
		case "310x150":
			doc.Wide310.Src = icon.Src
		case "310x310":
			doc.Square310.Src = icon.Src
		}
	}
	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(b), nil
}
