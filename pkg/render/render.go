// Package render rasterizes SVG documents to PNG in memory.
package render

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"nftarchive/pkg/config"
	errs "nftarchive/pkg/errors"
)

// Renderer converts vector image bytes to bitmap bytes
type Renderer interface {
	Render(svg []byte) ([]byte, error)
}

// SVGRenderer draws SVGs with oksvg/rasterx and encodes the result as PNG
type SVGRenderer struct {
	width  int
	height int
}

// NewSVGRenderer creates a renderer. Zero width or height takes that dimension
// from the SVG viewBox, keeping the aspect ratio when only one is set.
func NewSVGRenderer(cfg *config.RenderConfig) *SVGRenderer {
	r := &SVGRenderer{}
	if cfg != nil {
		r.width, r.height = cfg.Width, cfg.Height
	}
	return r
}

// Render parses svg and returns the PNG encoding of the whole drawing
func (r *SVGRenderer) Render(svg []byte) ([]byte, error) {
	if len(bytes.TrimSpace(svg)) == 0 {
		return nil, errs.New(errs.ErrorTypeConversion, "empty SVG document")
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.StrictErrorMode)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConversion, err, "failed to parse SVG")
	}

	w, h, err := r.outputSize(icon.ViewBox.W, icon.ViewBox.H)
	if err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeConversion, err, "failed to encode PNG")
	}
	return buf.Bytes(), nil
}

// outputSize resolves the pixel size from the configured size and the viewBox
func (r *SVGRenderer) outputSize(vbW, vbH float64) (int, int, error) {
	w, h := r.width, r.height
	if w > 0 && h > 0 {
		return w, h, nil
	}

	if vbW <= 0 || vbH <= 0 {
		return 0, 0, errs.New(errs.ErrorTypeConversion, "SVG has no usable size (viewBox %gx%g)", vbW, vbH)
	}

	switch {
	case w > 0:
		h = int(math.Round(float64(w) * vbH / vbW))
	case h > 0:
		w = int(math.Round(float64(h) * vbW / vbH))
	default:
		w, h = int(math.Ceil(vbW)), int(math.Ceil(vbH))
	}

	if w <= 0 || h <= 0 {
		return 0, 0, errs.New(errs.ErrorTypeConversion, "SVG renders to an empty image (%dx%d)", w, h)
	}
	return w, h, nil
}
