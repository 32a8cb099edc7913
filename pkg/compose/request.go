// Package compose orchestrates a full composition: photos are decoded,
// center-cropped into solved layout boxes, filtered, bordered, and overlaid,
// in a fixed draw order, producing a strip canvas or a print-ready 4R canvas.
package compose

import (
	"time"

	"github.com/snapbooth/snapbooth/pkg/filter"
	"github.com/snapbooth/snapbooth/pkg/layout"
	"github.com/snapbooth/snapbooth/pkg/style"
)

// CapturedPhoto is one exposure handed in by the capture layer. Data holds
// encoded image bytes (PNG/JPEG); an empty Data marks a missing photo whose
// slot renders as background. Photos are read-only to the composer.
type CapturedPhoto struct {
	ID        string    `json:"id"`
	Data      []byte    `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Filter    filter.ID `json:"filterId,omitempty"` // chosen at capture, overridable per request
}

// Mode selects the output contract of a request.
type Mode string

const (
	ModeStrip Mode = "strip"
	ModePrint Mode = "print"
)

// Request is the composer's sole input, built fresh per render. The composer
// keeps no state across calls; two calls never share a canvas.
type Request struct {
	Mode            Mode                     `json:"mode"`
	Photos          []CapturedPhoto          `json:"photos"`
	PhotoCount      int                      `json:"photoCount"`
	Filter          filter.ID                `json:"filterId"`
	Theme           style.Theme              `json:"theme"`
	OverlayIDs      []string                 `json:"overlayIds,omitempty"`
	CustomTexts     map[string]string        `json:"customTexts,omitempty"`
	IncludeDatetime bool                     `json:"includeDatetime,omitempty"`
	Layout          layout.PrintLayoutConfig `json:"layout"`
	DuplicateStrip  bool                     `json:"duplicateStrip,omitempty"`
}

// photoFilter resolves the filter for slot i: the request-level filter wins,
// then the photo's capture-time filter.
func (r *Request) photoFilter(i int) filter.ID {
	if r.Filter != "" {
		return r.Filter
	}
	if i < len(r.Photos) {
		return r.Photos[i].Filter
	}
	return filter.None
}

// Normalize applies defaults and clamps out-of-range values, returning
// warnings for anything it had to fix. Bad layout data degrades to a
// best-effort render, it never fails.
func (r *Request) Normalize() []string {
	var warnings []string

	if r.Mode == "" {
		r.Mode = ModeStrip
	}
	if r.PhotoCount <= 0 {
		r.PhotoCount = len(r.Photos)
		if r.PhotoCount == 0 {
			r.PhotoCount = 1
		}
	}
	if r.Theme.ID == "" {
		r.Theme = style.DefaultTheme()
	}
	if r.Filter != "" && !filter.Known(r.Filter) {
		warnings = append(warnings, "unknown filter "+string(r.Filter)+", rendering unfiltered")
		r.Filter = filter.None
	}

	clamped := layout.ClampMargins(r.Layout.Margins)
	if clamped != r.Layout.Margins {
		warnings = append(warnings, "layout margins out of range, clamped")
		r.Layout.Margins = clamped
	}
	for i, b := range r.Layout.Boxes {
		fixed := layout.ClampBox(b)
		if fixed != b {
			warnings = append(warnings, "box "+b.ID+" out of range, clamped")
			r.Layout.Boxes[i] = fixed
		}
	}

	return warnings
}
