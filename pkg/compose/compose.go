// compose.go — The strip and print composers. Draw order is fixed and
// serial: background, then photos in slot order, then borders, then
// overlays, then the frame template. Photo decode is the only concurrent
// stage; everything decoded is gathered first, then drawn in order.
package compose

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/snapbooth/snapbooth/pkg/filter"
	"github.com/snapbooth/snapbooth/pkg/layout"
	"github.com/snapbooth/snapbooth/pkg/overlay"
	"github.com/snapbooth/snapbooth/pkg/style"
)

// Canvas constants. Strip and print pixel sizes are print-parity contracts:
// 600px = 2in and 1200×1800 = 4×6in at 300 DPI.
const (
	StripWidth   = 600
	StripSpacing = 10
	StripFooter  = 40

	PrintWidth  = 1200
	PrintHeight = 1800

	// Strip-on-4R duplication: 20px outer margins, 20px center gap,
	// two 560px halves at x=20 and x=600.
	dupMargin    = 20
	dupGap       = 20
	dupHalfWidth = 560

	maxSurfacePixels = 64 << 20
)

// ErrSurfaceUnavailable signals that no drawable surface could be created.
// It is the composer's only fatal precondition; everything else degrades.
var ErrSurfaceUnavailable = errors.New("compose: drawing surface unavailable")

// Composer renders requests. It holds only immutable collaborators and can
// serve concurrent calls; each call draws on its own canvas.
type Composer struct {
	overlays *overlay.Renderer
	log      *logrus.Logger
}

// New creates a composer drawing overlays through r.
func New(r *overlay.Renderer) *Composer {
	return &Composer{
		overlays: r,
		log:      logrus.StandardLogger(),
	}
}

// stripPhotoHeight is the band height: 4:3 aspect of the strip width.
func stripPhotoHeight() int {
	return StripWidth * 3 / 4
}

// StripHeight returns the full strip canvas height for count photos.
func StripHeight(count int) int {
	return stripPhotoHeight()*count + StripSpacing*(count+1) + StripFooter
}

// ComposeStrip renders a self-contained strip canvas: photoCount bands at
// 4:3 of the strip width, stacked with fixed spacing and a footer strip.
func (c *Composer) ComposeStrip(ctx context.Context, req *Request) (*image.NRGBA, error) {
	req.Normalize()
	count := req.PhotoCount

	dst, err := newSurface(StripWidth, StripHeight(count))
	if err != nil {
		return nil, err
	}

	// 1. Background.
	fill(dst, dst.Bounds(), backgroundColor(req.Theme.BackgroundColor))

	// 2. Photos, decoded concurrently, drawn serially in slot order.
	decoded, err := c.decodePhotos(ctx, req.Photos, count)
	if err != nil {
		return nil, err
	}

	photoH := stripPhotoHeight()
	bandW := StripWidth - 2*StripSpacing
	for i := 0; i < count; i++ {
		y := StripSpacing + i*(photoH+StripSpacing)
		slot := image.Rect(StripSpacing, y, StripSpacing+bandW, y+photoH)

		if decoded[i] != nil {
			photo := fillBox(decoded[i], slot.Dx(), slot.Dy())
			filter.Apply(photo, req.photoFilter(i))
			draw.Draw(dst, slot, photo, image.Point{}, draw.Src)
		}
		drawBorder(dst, slot, req.Theme)
	}

	// 3. Overlays, with the datetime stamp appended on request.
	c.overlays.Render(dst, overlayIDs(req), req.CustomTexts)

	return dst, nil
}

// ComposeForPrint renders the fixed 1200×1800 4R canvas, either duplicating
// the strip side by side or placing photos into solved layout boxes.
func (c *Composer) ComposeForPrint(ctx context.Context, req *Request) (*image.NRGBA, error) {
	req.Normalize()

	dst, err := newSurface(PrintWidth, PrintHeight)
	if err != nil {
		return nil, err
	}

	bg := req.Layout.BackgroundColor
	if bg == "" {
		bg = "#ffffff"
	}
	fill(dst, dst.Bounds(), bg)

	if req.DuplicateStrip {
		return c.composeDuplicateStrip(ctx, req, dst)
	}
	return c.composeBoxes(ctx, req, dst)
}

// composeDuplicateStrip renders the strip once, scales it to half width, and
// blits the same buffer twice so both halves are bit-identical.
func (c *Composer) composeDuplicateStrip(ctx context.Context, req *Request, dst *image.NRGBA) (*image.NRGBA, error) {
	strip, err := c.ComposeStrip(ctx, req)
	if err != nil {
		return nil, err
	}

	scaledH := int(math.Round(float64(dupHalfWidth) * float64(strip.Bounds().Dy()) / float64(strip.Bounds().Dx())))
	if scaledH > PrintHeight-2*dupMargin {
		scaledH = PrintHeight - 2*dupMargin
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, dupHalfWidth, scaledH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), strip, strip.Bounds(), xdraw.Src, nil)

	y := (PrintHeight - scaledH) / 2
	left := image.Rect(dupMargin, y, dupMargin+dupHalfWidth, y+scaledH)
	right := left.Add(image.Pt(dupHalfWidth+dupGap, 0))
	draw.Draw(dst, left, scaled, image.Point{}, draw.Src)
	draw.Draw(dst, right, scaled, image.Point{}, draw.Src)

	return dst, nil
}

// composeBoxes places photos into the solved, z-ordered layout boxes, with
// optional full-bleed background image below and frame template above.
func (c *Composer) composeBoxes(ctx context.Context, req *Request, dst *image.NRGBA) (*image.NRGBA, error) {
	if img := c.decodeAux(req.Layout.BackgroundImage, "background"); img != nil {
		full := fillBox(img, PrintWidth, PrintHeight)
		// Opacity 0 is the unset zero value, not "invisible": a transparent
		// background is expressed by omitting the image.
		opacity := req.Layout.BackgroundOpacity / 100
		if opacity <= 0 || opacity > 1 {
			opacity = 1
		}
		dst = imaging.Overlay(dst, full, image.Point{}, opacity)
	}

	boxes := layout.SortedByZ(layout.Solve(req.Layout))
	decoded, err := c.decodePhotos(ctx, req.Photos, len(boxes))
	if err != nil {
		return nil, err
	}

	for i, box := range boxes {
		if decoded[i] == nil {
			continue
		}
		rect := boxToPixels(box, PrintWidth, PrintHeight)
		if rect.Empty() {
			continue
		}
		photo := fillBox(decoded[i], rect.Dx(), rect.Dy())
		filter.Apply(photo, req.photoFilter(i))
		draw.Draw(dst, rect, photo, image.Point{}, draw.Src)
		drawBorder(dst, rect, req.Theme)
	}

	c.overlays.Render(dst, req.OverlayIDs, req.CustomTexts)

	if img := c.decodeAux(req.Layout.FrameTemplate, "frame template"); img != nil {
		frame := imaging.Resize(img, PrintWidth, PrintHeight, imaging.Lanczos)
		draw.Draw(dst, dst.Bounds(), frame, image.Point{}, draw.Over)
	}

	return dst, nil
}

// decodePhotos decodes up to count photos concurrently and returns them in
// slot order. A missing or undecodable photo yields a nil slot (logged, not
// fatal). Cancellation aborts the whole composition.
func (c *Composer) decodePhotos(ctx context.Context, photos []CapturedPhoto, count int) ([]*image.NRGBA, error) {
	decoded := make([]*image.NRGBA, count)

	var wg sync.WaitGroup
	for i := 0; i < count && i < len(photos); i++ {
		p := photos[i]
		if len(p.Data) == 0 {
			c.log.WithField("photo", p.ID).Warn("photo missing, slot left unpainted")
			continue
		}
		wg.Add(1)
		go func(slot int, p CapturedPhoto) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			img, err := imaging.Decode(bytes.NewReader(p.Data))
			if err != nil {
				c.log.WithError(err).WithField("photo", p.ID).Warn("photo undecodable, slot left unpainted")
				return
			}
			decoded[slot] = imaging.Clone(img)
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decoded, nil
}

// decodeAux decodes an optional auxiliary image (background, frame
// template). Failures are logged and return nil.
func (c *Composer) decodeAux(data []byte, what string) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		c.log.WithError(err).Warnf("%s image undecodable, skipped", what)
		return nil
	}
	return img
}

// overlayIDs returns the request's overlay set, appending the datetime
// overlay when requested and not already selected.
func overlayIDs(req *Request) []string {
	ids := req.OverlayIDs
	if !req.IncludeDatetime {
		return ids
	}
	for _, id := range ids {
		if id == style.DatetimeOverlayID {
			return ids
		}
	}
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, style.DatetimeOverlayID)
}

// boxToPixels resolves a percentage box onto a pixel canvas.
func boxToPixels(b layout.Box, w, h int) image.Rectangle {
	x0 := int(math.Round(b.X / 100 * float64(w)))
	y0 := int(math.Round(b.Y / 100 * float64(h)))
	x1 := int(math.Round((b.X + b.Width) / 100 * float64(w)))
	y1 := int(math.Round((b.Y + b.Height) / 100 * float64(h)))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, w, h))
}

// newSurface allocates the shared canvas. Invalid dimensions are the one
// fatal precondition of a composition.
func newSurface(w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 || w*h > maxSurfacePixels {
		return nil, ErrSurfaceUnavailable
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
}

// fill paints rect with a hex color.
func fill(dst *image.NRGBA, rect image.Rectangle, hex string) {
	draw.Draw(dst, rect, &image.Uniform{C: style.ParseHexRGBA(hex)}, image.Point{}, draw.Src)
}

func backgroundColor(hex string) string {
	if hex == "" {
		return "#ffffff"
	}
	return hex
}
