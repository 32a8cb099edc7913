// Package layout solves print-layout geometry: it turns a declarative layout
// configuration (format, orientation, preset, photo count, margins, spacing)
// into a normalized list of percentage-based placement boxes.
package layout

import "sort"

// Format identifies a physical output format.
type Format string

const (
	FormatStrip2x6  Format = "2x6-strip"   // classic 2×6in photobooth strip
	Format4RSingle  Format = "4r-single"   // one photo on a 4×6in print
	Format4RGrid2x2 Format = "4r-grid-2x2" // four photos in quadrants
)

// Orientation of the output canvas.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Preset selects how boxes are produced.
type Preset string

const (
	PresetGrid   Preset = "grid"   // boxes regenerated from margins/spacing/count
	PresetCustom Preset = "custom" // boxes are free-form user edits
)

// MinBoxSize is the smallest allowed box width/height, in percent.
const MinBoxSize = 10.0

// Box is one photo placement slot. All geometry is in percent of the canvas
// (0–100), so the same box list resolves onto any pixel size.
type Box struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"zIndex"` // rendering order (higher = on top)
}

// Margins define spacing around the content area, in percent (0–20).
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// PrintLayoutConfig aggregates everything needed to place photos on a print.
//
// Invariant: when LayoutPreset is PresetGrid, Boxes must equal the
// deterministic grid computed from margins/spacing/count — any change to
// those fields regenerates all boxes. When PresetCustom, Boxes persist user
// edits and are never regenerated.
type PrintLayoutConfig struct {
	Format            Format      `json:"format"`
	Orientation       Orientation `json:"orientation"`
	PhotoCount        int         `json:"photoCount"`
	LayoutPreset      Preset      `json:"layoutPreset"`
	Margins           Margins     `json:"margins"`
	Spacing           float64     `json:"spacing"` // percent, 0–15
	Boxes             []Box       `json:"boxes"`
	BackgroundColor   string      `json:"backgroundColor"`
	BackgroundImage   []byte      `json:"backgroundImage,omitempty"` // encoded image, nil = none
	BackgroundOpacity float64     `json:"backgroundOpacity"`         // 0–100; 0 (the zero value) means unset and renders opaque
	FrameTemplate     []byte      `json:"frameTemplate,omitempty"`   // encoded image drawn last, nil = none
}

// SortedByZ returns a copy of boxes in draw order: lower z first, insertion
// order preserved among equal z values.
func SortedByZ(boxes []Box) []Box {
	sorted := make([]Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})
	return sorted
}
