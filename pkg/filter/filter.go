// Package filter implements the pixel filter kernels applied to captured
// photos. Every kernel is referentially pure: the same input bytes and
// filter ID always produce identical output bytes.
//
// The multiplier constants are calibration values tuned against reference
// renders; changing them changes print output, so they are fixed.
package filter

import (
	"image"
	"math"
)

// ID names a filter.
type ID string

const (
	None         ID = "none"
	Grayscale    ID = "grayscale"
	Sepia        ID = "sepia"
	Vintage      ID = "vintage"
	HighContrast ID = "highContrast"
	SoftGlow     ID = "softGlow"
	Warm         ID = "warm"
	Cool         ID = "cool"
	Dramatic     ID = "dramatic"
)

// All lists every filter ID, None first.
var All = []ID{None, Grayscale, Sepia, Vintage, HighContrast, SoftGlow, Warm, Cool, Dramatic}

// Known reports whether id names a filter, including None.
func Known(id ID) bool {
	for _, f := range All {
		if f == id {
			return true
		}
	}
	return false
}

// Apply transforms img in place and returns it. None is the identity: the
// image is returned untouched, same backing array. Unknown IDs behave like
// None (lookups are total, never errors).
func Apply(img *image.NRGBA, id ID) *image.NRGBA {
	if img == nil {
		return nil
	}
	switch id {
	case Grayscale:
		eachPixel(img, grayscalePixel)
	case Sepia:
		eachPixel(img, sepiaPixel)
	case Vintage:
		applyVintage(img)
	case HighContrast:
		eachPixel(img, func(r, g, b float64) (float64, float64, float64) {
			r, g, b = contrast(r, g, b, 1.5)
			return saturate(r, g, b, 1.2)
		})
	case SoftGlow:
		eachPixel(img, func(r, g, b float64) (float64, float64, float64) {
			return contrast(r*1.05, g*1.05, b*1.05, 0.95)
		})
	case Warm:
		eachPixel(img, func(r, g, b float64) (float64, float64, float64) {
			return r * 1.1, g * 1.05, b * 0.9
		})
	case Cool:
		eachPixel(img, func(r, g, b float64) (float64, float64, float64) {
			return r * 0.9, g, b * 1.1
		})
	case Dramatic:
		eachPixel(img, func(r, g, b float64) (float64, float64, float64) {
			r, g, b = contrast(r*0.9, g*0.9, b*0.9, 1.3)
			return saturate(r, g, b, 1.1)
		})
	}
	return img
}

// pixelFunc maps one RGB triple to another. Values may leave [0,255];
// eachPixel clamps on write. Alpha passes through untouched.
type pixelFunc func(r, g, b float64) (float64, float64, float64)

func eachPixel(img *image.NRGBA, fn pixelFunc) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			r, g, b := fn(float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2]))
			img.Pix[i] = clamp8(r)
			img.Pix[i+1] = clamp8(g)
			img.Pix[i+2] = clamp8(b)
		}
	}
}

func grayscalePixel(r, g, b float64) (float64, float64, float64) {
	gray := math.Round(0.299*r + 0.587*g + 0.114*b)
	return gray, gray, gray
}

func sepiaPixel(r, g, b float64) (float64, float64, float64) {
	return 0.393*r + 0.769*g + 0.189*b,
		0.349*r + 0.686*g + 0.168*b,
		0.272*r + 0.534*g + 0.131*b
}

// applyVintage is the one kernel that is position-dependent: sepia, then a
// contrast pull toward 128, then a radial vignette scaled by distance from
// the image center.
func applyVintage(img *image.NRGBA) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b := sepiaPixel(float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2]))
			r, g, b = contrast(r, g, b, 0.9)

			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			vignette := 1 - (dist/maxDist)*0.5
			img.Pix[i] = clamp8(r * vignette)
			img.Pix[i+1] = clamp8(g * vignette)
			img.Pix[i+2] = clamp8(b * vignette)
		}
	}
}

// contrast pulls channels away from (factor > 1) or toward (factor < 1) the
// 128 midpoint.
func contrast(r, g, b, factor float64) (float64, float64, float64) {
	return (r-128)*factor + 128,
		(g-128)*factor + 128,
		(b-128)*factor + 128
}

// saturate scales each channel's distance from the pixel's luminance.
func saturate(r, g, b, factor float64) (float64, float64, float64) {
	lum := 0.299*r + 0.587*g + 0.114*b
	return lum + (r-lum)*factor,
		lum + (g-lum)*factor,
		lum + (b-lum)*factor
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
