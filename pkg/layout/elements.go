// elements.go — Launch-page builder elements. Structurally analogous to Box
// but typed: the launch-page editor drags text, images, logos, buttons and
// shapes around, not photo slots. Rendering them is the UI's job; the types
// and z-ordering live here because the print-layout editor shares them.
package layout

import "sort"

// ElementKind tags a draggable launch-page element.
type ElementKind string

const (
	ElementText   ElementKind = "text"
	ElementImage  ElementKind = "image"
	ElementLogo   ElementKind = "logo"
	ElementButton ElementKind = "button"
	ElementShape  ElementKind = "shape"
)

// Element is one draggable item on the launch page. Exactly one of the
// per-kind property structs is set, matching Kind.
type Element struct {
	ID     string      `json:"id"`
	Kind   ElementKind `json:"type"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	ZIndex int         `json:"zIndex"`

	Text   *TextProps   `json:"text,omitempty"`
	Image  *ImageProps  `json:"image,omitempty"`
	Button *ButtonProps `json:"button,omitempty"`
	Shape  *ShapeProps  `json:"shape,omitempty"`
}

// TextProps styles a text or logo-caption element.
type TextProps struct {
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	Color      string  `json:"color"`
}

// ImageProps holds the source for image and logo elements.
type ImageProps struct {
	Source string `json:"source"`
	Fit    string `json:"fit,omitempty"` // "cover", "contain", "stretch"
}

// ButtonProps styles a launch button.
type ButtonProps struct {
	Label           string  `json:"label"`
	BackgroundColor string  `json:"backgroundColor"`
	TextColor       string  `json:"textColor"`
	CornerRadius    float64 `json:"cornerRadius"`
}

// ShapeProps describes a decorative shape.
type ShapeProps struct {
	Shape       string  `json:"shape"` // "rectangle", "ellipse", "line"
	FillColor   string  `json:"fillColor"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// SortElements returns a copy of elements in draw order by ZIndex.
func SortElements(elements []Element) []Element {
	sorted := make([]Element, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})
	return sorted
}
