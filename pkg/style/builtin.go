// builtin.go — Built-in themes and overlays shipped with the booth.
package style

// DatetimeOverlayID is the overlay appended automatically when a strip
// request asks for a timestamp.
const DatetimeOverlayID = "datetime-stamp"

// DefaultTheme is the plain white theme used when no theme is selected.
func DefaultTheme() Theme {
	return Theme{
		ID:              "classic",
		Name:            "Classic",
		PrimaryColor:    "#000000",
		SecondaryColor:  "#666666",
		BackgroundColor: "#ffffff",
		TextColor:       "#000000",
		BorderColor:     "#000000",
		FontFamily:      "sans-serif",
		BorderStyle:     BorderNone,
		BorderWidth:     0,
	}
}

// BuiltinThemes returns the stock theme registry. Callers may merge a
// persisted "custom" theme on top before handing the registry to the
// composer.
func BuiltinThemes() ThemeRegistry {
	themes := []Theme{
		DefaultTheme(),
		{
			ID: "midnight", Name: "Midnight",
			PrimaryColor: "#e0e0ff", SecondaryColor: "#8888aa",
			BackgroundColor: "#10101e", TextColor: "#f0f0ff", BorderColor: "#3a3a5e",
			FontFamily: "sans-serif", BorderStyle: BorderSolid, BorderWidth: 4,
		},
		{
			ID: "blush", Name: "Blush",
			PrimaryColor: "#7a3b4f", SecondaryColor: "#c98a9c",
			BackgroundColor: "#fff0f3", TextColor: "#7a3b4f", BorderColor: "#e8b4c0",
			FontFamily: "serif", BorderStyle: BorderDouble, BorderWidth: 6, CornerRadius: 8,
		},
		{
			ID: "festival", Name: "Festival",
			PrimaryColor: "#ffd166", SecondaryColor: "#06d6a0",
			BackgroundColor: "#073b4c", TextColor: "#ffd166", BorderColor: "#ef476f",
			FontFamily: "sans-serif", BorderStyle: BorderDashed, BorderWidth: 5,
		},
		{
			ID: "mono", Name: "Monochrome",
			PrimaryColor: "#222222", SecondaryColor: "#999999",
			BackgroundColor: "#f5f5f5", TextColor: "#222222", BorderColor: "#222222",
			FontFamily: "monospace", BorderStyle: BorderSolid, BorderWidth: 2,
		},
	}

	reg := make(ThemeRegistry, len(themes))
	for _, t := range themes {
		reg[t.ID] = t
	}
	return reg
}

// BuiltinOverlays returns the stock overlay registry. Frame and logo images
// for events are uploaded at runtime and registered alongside these.
func BuiltinOverlays() OverlayRegistry {
	overlays := []Overlay{
		{
			ID: DatetimeOverlayID, Name: "Date stamp", Kind: OverlayDatetime,
			Anchor: AnchorBottom, FontSize: 16, Color: "#ffffff",
		},
		{
			ID: "event-title", Name: "Event title", Kind: OverlayText,
			Anchor: AnchorTop, Text: "Say Cheese!", FontSize: 28, Color: "#ffffff",
		},
		{
			ID: "footer-caption", Name: "Footer caption", Kind: OverlayText,
			Anchor: AnchorBottom, Text: "", FontSize: 18, Color: "#ffffff",
		},
	}

	reg := make(OverlayRegistry, len(overlays))
	for _, o := range overlays {
		reg[o.ID] = o
	}
	return reg
}
