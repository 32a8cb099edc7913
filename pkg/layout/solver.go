// solver.go — Convert a layout configuration into placement boxes.
package layout

import "fmt"

// Solve produces the placement boxes for cfg.
//
// PresetCustom returns the configured boxes unmodified. PresetGrid (and any
// unknown preset) regenerates boxes: a format-specific canonical arrangement
// when one exists for the photo count, otherwise the generic grid formula.
// Out-of-range margins and spacing are clamped, never rejected.
func Solve(cfg PrintLayoutConfig) []Box {
	if cfg.LayoutPreset == PresetCustom {
		return cfg.Boxes
	}

	count := ClampPhotoCount(cfg.Format, cfg.PhotoCount)
	margins := ClampMargins(cfg.Margins)
	spacing := clampRange(cfg.Spacing, 0, MaxSpacing)

	if boxes, ok := presetBoxes(cfg.Format, count); ok {
		return boxes
	}
	return GridBoxes(count, cfg.Orientation, margins, spacing)
}

// GridBoxes divides the area inside margins into count equal bands separated
// by spacing: horizontal bands stacked vertically for portrait, vertical
// bands side by side for landscape. Each band spans the full available
// extent of the other axis.
func GridBoxes(count int, orientation Orientation, margins Margins, spacing float64) []Box {
	if count < 1 {
		count = 1
	}
	margins = ClampMargins(margins)
	spacing = clampRange(spacing, 0, MaxSpacing)

	boxes := make([]Box, 0, count)

	if orientation == OrientationLandscape {
		availableWidth := 100 - margins.Left - margins.Right
		totalSpacing := spacing * float64(count-1)
		boxWidth := (availableWidth - totalSpacing) / float64(count)
		for i := 0; i < count; i++ {
			boxes = append(boxes, Box{
				ID:     fmt.Sprintf("photo-%d", i+1),
				Label:  fmt.Sprintf("Photo %d", i+1),
				X:      margins.Left + float64(i)*(boxWidth+spacing),
				Y:      margins.Top,
				Width:  boxWidth,
				Height: 100 - margins.Top - margins.Bottom,
				ZIndex: i,
			})
		}
		return boxes
	}

	availableHeight := 100 - margins.Top - margins.Bottom
	totalSpacing := spacing * float64(count-1)
	boxHeight := (availableHeight - totalSpacing) / float64(count)
	for i := 0; i < count; i++ {
		boxes = append(boxes, Box{
			ID:     fmt.Sprintf("photo-%d", i+1),
			Label:  fmt.Sprintf("Photo %d", i+1),
			X:      margins.Left,
			Y:      margins.Top + float64(i)*(boxHeight+spacing),
			Width:  100 - margins.Left - margins.Right,
			Height: boxHeight,
			ZIndex: i,
		})
	}
	return boxes
}

// MaxMargin and MaxSpacing bound the configurable percentages.
const (
	MaxMargin  = 20.0
	MaxSpacing = 15.0
)

// ClampMargins forces every margin into [0, MaxMargin].
func ClampMargins(m Margins) Margins {
	return Margins{
		Top:    clampRange(m.Top, 0, MaxMargin),
		Bottom: clampRange(m.Bottom, 0, MaxMargin),
		Left:   clampRange(m.Left, 0, MaxMargin),
		Right:  clampRange(m.Right, 0, MaxMargin),
	}
}

// ClampPhotoCount forces count into the format's supported set. When the
// requested count is unsupported the nearest supported value wins.
func ClampPhotoCount(format Format, count int) int {
	supported, ok := supportedCounts[format]
	if !ok || len(supported) == 0 {
		if count < 1 {
			return 1
		}
		return count
	}

	best := supported[0]
	for _, s := range supported {
		if abs(s-count) < abs(best-count) {
			best = s
		}
	}
	return best
}

// ClampBox forces box geometry into valid percentage space: width/height at
// least MinBoxSize, origin shifted so the box stays inside the canvas.
func ClampBox(b Box) Box {
	b.Width = clampRange(b.Width, MinBoxSize, 100)
	b.Height = clampRange(b.Height, MinBoxSize, 100)
	b.X = clampRange(b.X, 0, 100-b.Width)
	b.Y = clampRange(b.Y, 0, 100-b.Height)
	return b
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
