// css.go — CSS filter-string equivalents for live camera preview. These only
// need to visually approximate the pixel kernels; the kernels are the source
// of truth for captured output.
package filter

// cssFilters maps each filter to the CSS filter property the live preview
// applies to the video element.
var cssFilters = map[ID]string{
	None:         "none",
	Grayscale:    "grayscale(100%)",
	Sepia:        "sepia(80%)",
	Vintage:      "sepia(60%) contrast(90%) brightness(90%)",
	HighContrast: "contrast(150%) saturate(120%)",
	SoftGlow:     "brightness(105%) contrast(95%)",
	Warm:         "sepia(20%) saturate(110%) hue-rotate(-10deg)",
	Cool:         "saturate(90%) hue-rotate(10deg) brightness(100%)",
	Dramatic:     "brightness(90%) contrast(130%) saturate(110%)",
}

// CSS returns the live-preview filter string for id. Unknown IDs map to
// "none", matching Apply's identity behavior.
func CSS(id ID) string {
	if s, ok := cssFilters[id]; ok {
		return s
	}
	return "none"
}
