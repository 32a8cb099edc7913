// crop.go — Center-crop-to-fill. A photo always exactly fills its box: the
// source is cropped to the box aspect ratio (never letterboxed, never
// distorted) and then scaled to the box pixel size.
package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// CropRect returns the centered source rectangle whose aspect ratio matches
// dstW:dstH. A source wider than the target loses width; a taller one loses
// height.
func CropRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}

	srcAspect := float64(srcW) / float64(srcH)
	dstAspect := float64(dstW) / float64(dstH)

	cropW, cropH := srcW, srcH
	if srcAspect > dstAspect {
		cropW = int(float64(srcH)*dstAspect + 0.5)
	} else {
		cropH = int(float64(srcW)/dstAspect + 0.5)
	}

	x0 := (srcW - cropW) / 2
	y0 := (srcH - cropH) / 2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}

// fillBox crops img to the target aspect and scales it to exactly w×h.
func fillBox(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	rect := CropRect(b.Dx(), b.Dy(), w, h).Add(b.Min)
	cropped := imaging.Crop(img, rect)
	return imaging.Resize(cropped, w, h, imaging.Lanczos)
}
