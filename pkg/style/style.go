// Package style holds the immutable reference data a composition draws
// from: named themes and overlay definitions, looked up by ID through
// injected registries. Registries are plain maps built once at startup;
// nothing mutates them at render time.
package style

// BorderStyle selects how a photo border is stroked.
type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderSolid  BorderStyle = "solid"
	BorderDouble BorderStyle = "double"
	BorderDashed BorderStyle = "dashed"
)

// Theme is a named style bundle applied to a strip or print render.
type Theme struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	PrimaryColor    string      `json:"primaryColor"`
	SecondaryColor  string      `json:"secondaryColor"`
	BackgroundColor string      `json:"backgroundColor"`
	TextColor       string      `json:"textColor"`
	BorderColor     string      `json:"borderColor"`
	FontFamily      string      `json:"fontFamily"`
	BorderStyle     BorderStyle `json:"borderStyle"`
	BorderWidth     int         `json:"borderWidth"`
	CornerRadius    int         `json:"cornerRadius"` // UI preview only; raster borders draw square corners
	OverlayIDs      []string    `json:"overlayIds,omitempty"`
}

// OverlayKind tags an overlay variant. Each kind has a total rendering rule;
// unknown kinds are skipped.
type OverlayKind string

const (
	OverlayFrame    OverlayKind = "frame"
	OverlayLogo     OverlayKind = "logo"
	OverlayText     OverlayKind = "text"
	OverlayDatetime OverlayKind = "datetime"
)

// Anchor positions an overlay vertically. Horizontal placement is always
// centered.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorCenter Anchor = "center"
	AnchorBottom Anchor = "bottom"
)

// Overlay is one frame, logo or text annotation drawn over composed photos.
// Frame and logo carry Image; text carries static Text plus type style;
// datetime ignores Text and formats the clock at render time.
type Overlay struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Kind     OverlayKind `json:"type"`
	Image    []byte      `json:"image,omitempty"` // encoded image for frame/logo
	Anchor   Anchor      `json:"anchor,omitempty"`
	Text     string      `json:"text,omitempty"`
	FontSize float64     `json:"fontSize,omitempty"`
	Color    string      `json:"color,omitempty"`
}

// ThemeRegistry maps theme IDs to themes.
type ThemeRegistry map[string]Theme

// Get looks up a theme. Lookups are total: a miss returns ok=false, never an
// error.
func (r ThemeRegistry) Get(id string) (Theme, bool) {
	t, ok := r[id]
	return t, ok
}

// GetOrDefault returns the theme for id, or the classic default on a miss.
func (r ThemeRegistry) GetOrDefault(id string) Theme {
	if t, ok := r[id]; ok {
		return t
	}
	return DefaultTheme()
}

// OverlayRegistry maps overlay IDs to overlay definitions.
type OverlayRegistry map[string]Overlay

// Get looks up an overlay; a miss returns ok=false.
func (r OverlayRegistry) Get(id string) (Overlay, bool) {
	o, ok := r[id]
	return o, ok
}
