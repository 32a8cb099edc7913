// border.go — Theme borders stroked around photo slots.
package compose

import (
	"image"
	"image/draw"

	"github.com/snapbooth/snapbooth/pkg/style"
)

// drawBorder strokes the theme border just inside rect. BorderNone or a
// non-positive width draws nothing. Corners are always square; CornerRadius
// applies to the UI preview, not the raster.
func drawBorder(dst *image.NRGBA, rect image.Rectangle, theme style.Theme) {
	width := theme.BorderWidth
	if theme.BorderStyle == style.BorderNone || theme.BorderStyle == "" || width <= 0 {
		return
	}
	col := style.ParseHexRGBA(theme.BorderColor)
	uniform := &image.Uniform{C: col}

	switch theme.BorderStyle {
	case style.BorderSolid:
		strokeRect(dst, rect, width, uniform)
	case style.BorderDouble:
		// Two thin strokes separated by a gap, each a third of the width.
		t := max(width/3, 1)
		strokeRect(dst, rect, t, uniform)
		strokeRect(dst, rect.Inset(2*t), t, uniform)
	case style.BorderDashed:
		dashRect(dst, rect, width, uniform)
	default:
		strokeRect(dst, rect, width, uniform)
	}
}

// strokeRect fills the four edges of rect, t pixels thick, inward.
func strokeRect(dst *image.NRGBA, rect image.Rectangle, t int, src image.Image) {
	if rect.Empty() {
		return
	}
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), // top
		image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y), // left
		image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(rect), src, image.Point{}, draw.Over)
	}
}

// dashRect strokes rect with dash segments t pixels thick. Dash length is
// three times the thickness, gap two times, so heavier borders dash coarser.
func dashRect(dst *image.NRGBA, rect image.Rectangle, t int, src image.Image) {
	if rect.Empty() {
		return
	}
	dash := max(3*t, 6)
	gap := max(2*t, 4)
	step := dash + gap

	// Top and bottom runs.
	for x := rect.Min.X; x < rect.Max.X; x += step {
		end := min(x+dash, rect.Max.X)
		draw.Draw(dst, image.Rect(x, rect.Min.Y, end, rect.Min.Y+t), src, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(x, rect.Max.Y-t, end, rect.Max.Y), src, image.Point{}, draw.Over)
	}
	// Left and right runs.
	for y := rect.Min.Y; y < rect.Max.Y; y += step {
		end := min(y+dash, rect.Max.Y)
		draw.Draw(dst, image.Rect(rect.Min.X, y, rect.Min.X+t, end), src, image.Point{}, draw.Over)
		draw.Draw(dst, image.Rect(rect.Max.X-t, y, rect.Max.X, end), src, image.Point{}, draw.Over)
	}
}
