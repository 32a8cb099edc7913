// color.go — Hex color parsing shared by every renderer.
package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb" or "#rrggbbaa" into channel values.
func ParseColor(s string) (r, g, b, a uint8, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, 0, 0, 0, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}

	parse := func(part string) (uint8, error) {
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid channel in %q: %w", s, err)
		}
		return uint8(v), nil
	}

	if r, err = parse(hex[0:2]); err != nil {
		return 0, 0, 0, 0, err
	}
	if g, err = parse(hex[2:4]); err != nil {
		return 0, 0, 0, 0, err
	}
	if b, err = parse(hex[4:6]); err != nil {
		return 0, 0, 0, 0, err
	}
	a = 255
	if len(hex) == 8 {
		if a, err = parse(hex[6:8]); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return r, g, b, a, nil
}

// ParseHexRGBA converts a hex string to color.NRGBA.
// Returns opaque white on any parse error (safe default for rendering).
func ParseHexRGBA(hex string) color.NRGBA {
	r, g, b, a, err := ParseColor(hex)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
