// Package export turns a composed canvas into encoded bytes for the
// download, share and print collaborators. It knows nothing about where the
// bytes go; it only encodes and measures them.
package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// JPEG quality defaults, as fractions in [0,1]. Print submission expects a
// higher quality than plain downloads.
const (
	DefaultJPEGQuality = 0.92
	PrintJPEGQuality   = 0.95
)

// Encode encodes img in the given format. Quality is a 0–1 fraction applied
// to JPEG only; PNG ignores it. A non-positive quality falls back to the
// download default.
func Encode(img image.Image, format Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeToWriter(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToWriter streams the encoded image into w.
func EncodeToWriter(w io.Writer, img image.Image, format Format, quality float64) error {
	switch format {
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case JPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
			return fmt.Errorf("encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: use png or jpeg", format)
	}
	return nil
}

// DataURL encodes img as a data URL for inline preview or print submission.
func DataURL(img image.Image, format Format, quality float64) (string, error) {
	data, err := Encode(img, format, quality)
	if err != nil {
		return "", err
	}
	return "data:" + mimeType(format) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// WriteFile encodes img to a file, inferring the format from the extension
// (.png, .jpg, .jpeg).
func WriteFile(path string, img image.Image, quality float64) error {
	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		format = PNG
	case ".jpg", ".jpeg":
		format = JPEG
	default:
		return fmt.Errorf("unsupported extension %q: use .png, .jpg or .jpeg", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := EncodeToWriter(f, img, format, quality); err != nil {
		return err
	}
	return nil
}

func mimeType(format Format) string {
	if format == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// jpegQuality maps a 0–1 fraction onto the encoder's 1–100 scale.
func jpegQuality(q float64) int {
	if q <= 0 || q > 1 {
		q = DefaultJPEGQuality
	}
	scaled := int(q*100 + 0.5)
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 100 {
		scaled = 100
	}
	return scaled
}
