// presets.go — Canonical box arrangements per format and photo count.
package layout

// supportedCounts lists the photo counts each format can carry.
var supportedCounts = map[Format][]int{
	FormatStrip2x6:  {3, 4},
	Format4RSingle:  {1},
	Format4RGrid2x2: {4},
}

// formatPresets maps format → photo count → canonical arrangement.
// Counts without an entry fall back to the grid formula in Solve.
var formatPresets = map[Format]map[int][]Box{
	FormatStrip2x6: {
		3: {
			{ID: "photo-1", Label: "Photo 1", X: 5, Y: 4, Width: 90, Height: 28, ZIndex: 0},
			{ID: "photo-2", Label: "Photo 2", X: 5, Y: 36, Width: 90, Height: 28, ZIndex: 1},
			{ID: "photo-3", Label: "Photo 3", X: 5, Y: 68, Width: 90, Height: 28, ZIndex: 2},
		},
		4: {
			{ID: "photo-1", Label: "Photo 1", X: 5, Y: 3, Width: 90, Height: 21.5, ZIndex: 0},
			{ID: "photo-2", Label: "Photo 2", X: 5, Y: 27.5, Width: 90, Height: 21.5, ZIndex: 1},
			{ID: "photo-3", Label: "Photo 3", X: 5, Y: 52, Width: 90, Height: 21.5, ZIndex: 2},
			{ID: "photo-4", Label: "Photo 4", X: 5, Y: 76.5, Width: 90, Height: 21.5, ZIndex: 3},
		},
	},
	Format4RSingle: {
		1: {
			{ID: "photo-1", Label: "Photo 1", X: 5, Y: 5, Width: 90, Height: 90, ZIndex: 0},
		},
	},
	Format4RGrid2x2: {
		4: {
			{ID: "photo-1", Label: "Photo 1", X: 4, Y: 4, Width: 45, Height: 45, ZIndex: 0},
			{ID: "photo-2", Label: "Photo 2", X: 51, Y: 4, Width: 45, Height: 45, ZIndex: 1},
			{ID: "photo-3", Label: "Photo 3", X: 4, Y: 51, Width: 45, Height: 45, ZIndex: 2},
			{ID: "photo-4", Label: "Photo 4", X: 51, Y: 51, Width: 45, Height: 45, ZIndex: 3},
		},
	},
}

// presetBoxes returns a copy of the canonical arrangement for format/count,
// or ok=false when no entry exists.
func presetBoxes(format Format, count int) ([]Box, bool) {
	counts, ok := formatPresets[format]
	if !ok {
		return nil, false
	}
	boxes, ok := counts[count]
	if !ok {
		return nil, false
	}
	out := make([]Box, len(boxes))
	copy(out, boxes)
	return out, true
}
