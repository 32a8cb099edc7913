// fonts.go — Font management with custom TTF support and embedded fallback.
// Uses golang.org/x/image/font for OpenType rendering; defaults to Go
// Regular when no custom font is given or the custom font fails to load.
package overlay

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager parses one font and hands out faces by size.
type FontManager struct {
	parsed *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontManager creates a font manager for the given TTF path.
// An empty or unreadable path falls back to the embedded Go font.
func NewFontManager(customPath string) (*FontManager, error) {
	var fontData []byte

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			logrus.WithError(err).WithField("font", customPath).Warn("custom font unreadable, using default")
		} else {
			fontData = data
		}
	}
	if fontData == nil {
		fontData = goregular.TTF
	}

	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return &FontManager{
		parsed: parsed,
		faces:  make(map[float64]font.Face),
	}, nil
}

// Face returns a font.Face at the given point size. Faces are cached; a
// composition typically reuses only a handful of sizes.
func (fm *FontManager) Face(size float64) (font.Face, error) {
	if size <= 0 {
		size = 18
	}

	fm.mu.Lock()
	defer fm.mu.Unlock()

	if face, ok := fm.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	fm.faces[size] = face
	return face, nil
}
