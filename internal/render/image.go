package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	// Source formats accepted by image.Decode.
	_ "image/gif"
	_ "image/jpeg"
)

var shadowColor = color.NRGBA{A: 96}

// canvas describes one output bitmap: its size, the box the source is fitted
// into and the fill behind it.
type canvas struct {
	width, height int
	box           image.Rectangle
	background    color.Color
	shadow        bool
}

// paddedBox returns the full canvas shrunk by offset percent of its shorter
// side on every edge.
func paddedBox(w, h int, offset float64) image.Rectangle {
	pad := int(math.Round(float64(min(w, h)) * offset / 100))
	if 2*pad >= min(w, h) {
		return image.Rectangle{}
	}
	return image.Rect(pad, pad, w-pad, h-pad)
}

// centeredBox returns a square of side min(w,h)/divisor centered on the canvas.
func centeredBox(w, h, divisor int) image.Rectangle {
	side := max(1, min(w, h)/divisor)
	x, y := (w-side)/2, (h-side)/2
	return image.Rect(x, y, x+side, y+side)
}

// fit scales src into box keeping its aspect ratio and centers it.
func fit(src, box image.Rectangle) image.Rectangle {
	if box.Empty() || src.Empty() {
		return image.Rectangle{}
	}
	scale := math.Min(float64(box.Dx())/float64(src.Dx()), float64(box.Dy())/float64(src.Dy()))
	w := max(1, int(math.Round(float64(src.Dx())*scale)))
	h := max(1, int(math.Round(float64(src.Dy())*scale)))
	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func compose(src image.Image, c canvas) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	if c.background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
	}

	target := fit(src.Bounds(), c.box)
	if target.Empty() {
		return dst
	}

	scaled := image.NewNRGBA(target)
	draw.CatmullRom.Scale(scaled, target, src, src.Bounds(), draw.Src, nil)

	if c.shadow {
		off := max(1, min(c.width, c.height)/50)
		draw.DrawMask(dst, target.Add(image.Pt(off, off)), image.NewUniform(shadowColor), image.Point{},
			scaled, target.Min, draw.Over)
	}
	draw.Draw(dst, target, scaled, target.Min, draw.Over)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// parseColor understands hex notations, rgb()/rgba(), "transparent" and the
// SVG color keywords. ok is false for anything else.
func parseColor(s string) (c color.Color, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil, false
	case s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBFunc(s)
	}
	named, found := colornames.Map[s]
	return named, found
}

func parseHex(hex string) (color.Color, bool) {
	if len(hex) == 3 || len(hex) == 4 {
		var long strings.Builder
		for _, r := range hex {
			long.WriteRune(r)
			long.WriteRune(r)
		}
		hex = long.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true // #nosec G115 -- byte extraction
}

func parseRGBFunc(s string) (color.Color, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return nil, false
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) != 3 && len(parts) != 4 {
		return nil, false
	}

	var ch [4]uint8
	ch[3] = 255
	for i, part := range parts {
		if i == 3 {
			a, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
			if err != nil {
				return nil, false
			}
			if strings.HasSuffix(part, "%") {
				a /= 100
			}
			ch[3] = uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
			continue
		}
		n, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, false
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, n))))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}
