// Package overlay draws frames, logos and text annotations on top of a
// composed canvas. Overlays render in caller-supplied order: later overlays
// paint over earlier ones. A failed overlay never aborts the rest.
package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/snapbooth/snapbooth/pkg/style"
)

// Text anchor offsets and shadow styling. The shadow is fixed: 50% black,
// ~4px blur, offset (1,1).
const (
	textEdgeOffset  = 30
	logoEdgePadding = 20
	logoMaxFraction = 0.2
	shadowBlurSigma = 2.0
	shadowOffset    = 1
)

// Renderer draws overlays from a registry onto canvases.
type Renderer struct {
	registry style.OverlayRegistry
	fonts    *FontManager
	log      *logrus.Logger

	// Now supplies the clock for datetime overlays. Tests override it;
	// production leaves it as time.Now.
	Now func() time.Time
}

// NewRenderer creates a renderer over the given overlay registry.
// fontPath may be empty to use the embedded font.
func NewRenderer(registry style.OverlayRegistry, fontPath string) (*Renderer, error) {
	fm, err := NewFontManager(fontPath)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		registry: registry,
		fonts:    fm,
		log:      logrus.StandardLogger(),
		Now:      time.Now,
	}, nil
}

// Render draws the overlays named by ids onto dst, in order. Unknown IDs are
// skipped silently; decode failures are logged and skipped. customTexts
// overrides the static text of text overlays by ID.
func (r *Renderer) Render(dst *image.NRGBA, ids []string, customTexts map[string]string) {
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()

	for _, id := range ids {
		o, ok := r.registry.Get(id)
		if !ok {
			continue
		}

		switch o.Kind {
		case style.OverlayFrame:
			r.drawFrame(dst, o, w, h)
		case style.OverlayLogo:
			r.drawLogo(dst, o, w, h)
		case style.OverlayText:
			text := o.Text
			if custom, ok := customTexts[o.ID]; ok && custom != "" {
				text = custom
			}
			if text != "" {
				r.drawText(dst, o, text, w, h)
			}
		case style.OverlayDatetime:
			// Stored text is ignored; the stamp is always the render-time clock.
			r.drawText(dst, o, r.Now().Format("Jan 2, 2006 3:04 PM"), w, h)
		}
	}
}

// drawFrame stretches the frame image over the whole canvas.
func (r *Renderer) drawFrame(dst *image.NRGBA, o style.Overlay, w, h int) {
	img, err := imaging.Decode(bytes.NewReader(o.Image))
	if err != nil {
		r.log.WithError(err).WithField("overlay", o.ID).Warn("frame image undecodable, skipped")
		return
	}
	frame := imaging.Resize(img, w, h, imaging.Lanczos)
	draw.Draw(dst, dst.Bounds(), frame, image.Point{}, draw.Over)
}

// drawLogo scales the logo to at most 20% of the canvas width and anchors it
// top, center or bottom, horizontally centered.
func (r *Renderer) drawLogo(dst *image.NRGBA, o style.Overlay, w, h int) {
	img, err := imaging.Decode(bytes.NewReader(o.Image))
	if err != nil {
		r.log.WithError(err).WithField("overlay", o.ID).Warn("logo image undecodable, skipped")
		return
	}

	maxWidth := int(float64(w) * logoMaxFraction)
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	lw := img.Bounds().Dx()
	lh := img.Bounds().Dy()

	x := (w - lw) / 2
	var y int
	switch o.Anchor {
	case style.AnchorTop:
		y = logoEdgePadding
	case style.AnchorBottom:
		y = h - lh - logoEdgePadding
	default:
		y = (h - lh) / 2
	}

	rect := image.Rect(x, y, x+lw, y+lh)
	draw.Draw(dst, rect, img, img.Bounds().Min, draw.Over)
}

// drawText draws a centered line of text with a soft drop shadow at the
// overlay's anchor: baseline y=30 (top), height/2 (center), height-30
// (bottom).
func (r *Renderer) drawText(dst *image.NRGBA, o style.Overlay, text string, w, h int) {
	face, err := r.fonts.Face(o.FontSize)
	if err != nil {
		r.log.WithError(err).WithField("overlay", o.ID).Warn("font face unavailable, skipped")
		return
	}

	textWidth := font.MeasureString(face, text).Ceil()
	x := (w - textWidth) / 2

	var baseline int
	switch o.Anchor {
	case style.AnchorTop:
		baseline = textEdgeOffset
	case style.AnchorBottom:
		baseline = h - textEdgeOffset
	default:
		baseline = h / 2
	}

	r.drawShadow(dst, text, face, x, baseline)

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(style.ParseHexRGBA(o.Color)),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(text)
}

// drawShadow renders the text in 50% black into a padded scratch layer,
// blurs it, and composites it offset by (1,1) under where the text will go.
func (r *Renderer) drawShadow(dst *image.NRGBA, text string, face font.Face, x, baseline int) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	textWidth := font.MeasureString(face, text).Ceil()

	const pad = 8
	layer := image.NewNRGBA(image.Rect(0, 0, textWidth+2*pad, ascent+descent+2*pad))
	drawer := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(color.NRGBA{A: 128}),
		Face: face,
		Dot:  fixed.P(pad, pad+ascent),
	}
	drawer.DrawString(text)

	g := gift.New(gift.GaussianBlur(shadowBlurSigma))
	blurred := image.NewNRGBA(g.Bounds(layer.Bounds()))
	g.Draw(blurred, layer)

	pos := image.Pt(x-pad+shadowOffset, baseline-ascent-pad+shadowOffset)
	draw.Draw(dst, blurred.Bounds().Add(pos), blurred, image.Point{}, draw.Over)
}
