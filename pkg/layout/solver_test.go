package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridBoxesPortrait(t *testing.T) {
	counts := []int{1, 3, 4}
	margins := Margins{Top: 5, Bottom: 5, Left: 8, Right: 8}
	spacing := 3.0

	for _, count := range counts {
		boxes := GridBoxes(count, OrientationPortrait, margins, spacing)
		require.Len(t, boxes, count)

		// Equal heights.
		for _, b := range boxes[1:] {
			assert.InDelta(t, boxes[0].Height, b.Height, 1e-9)
		}

		// Bands plus margins account for the full canvas height.
		total := margins.Top + margins.Bottom + spacing*float64(count-1)
		for _, b := range boxes {
			total += b.Height
		}
		assert.InDelta(t, 100, total, 1e-9, "count=%d", count)

		// No overlap, all inside horizontal margins.
		for i, b := range boxes {
			assert.InDelta(t, margins.Left, b.X, 1e-9)
			assert.InDelta(t, 100-margins.Left-margins.Right, b.Width, 1e-9)
			if i > 0 {
				prev := boxes[i-1]
				assert.GreaterOrEqual(t, b.Y, prev.Y+prev.Height-1e-9)
			}
		}
	}
}

func TestGridBoxesLandscape(t *testing.T) {
	boxes := GridBoxes(3, OrientationLandscape, Margins{Top: 5, Bottom: 5, Left: 5, Right: 5}, 2)
	require.Len(t, boxes, 3)
	for i, b := range boxes {
		assert.InDelta(t, 5, b.Y, 1e-9)
		assert.InDelta(t, 90, b.Height, 1e-9)
		if i > 0 {
			prev := boxes[i-1]
			assert.InDelta(t, prev.X+prev.Width+2, b.X, 1e-9)
		}
	}
}

func TestGridBoxesClampsInputs(t *testing.T) {
	boxes := GridBoxes(3, OrientationPortrait, Margins{Top: -10, Bottom: 200, Left: -1, Right: 50}, -5)
	require.Len(t, boxes, 3)
	assert.InDelta(t, 0, boxes[0].Y, 1e-9, "negative top margin clamps to 0")

	// Bottom and right margins clamp to MaxMargin.
	last := boxes[len(boxes)-1]
	assert.InDelta(t, 100-MaxMargin, last.Y+last.Height, 1e-9)
	assert.InDelta(t, 100-MaxMargin, last.X+last.Width, 1e-9)
}

func TestSolveCustomPassthrough(t *testing.T) {
	custom := []Box{
		{ID: "a", X: 1, Y: 2, Width: 30, Height: 40, ZIndex: 7},
		{ID: "b", X: 50, Y: 50, Width: 20, Height: 20, ZIndex: 1},
	}
	cfg := PrintLayoutConfig{
		Format:       Format4RSingle,
		LayoutPreset: PresetCustom,
		PhotoCount:   2,
		Boxes:        custom,
	}
	got := Solve(cfg)
	assert.Equal(t, custom, got, "custom boxes pass through unregenerated")
}

func TestSolveUsesFormatPreset(t *testing.T) {
	cfg := PrintLayoutConfig{
		Format:       Format4RGrid2x2,
		Orientation:  OrientationPortrait,
		LayoutPreset: PresetGrid,
		PhotoCount:   4,
	}
	boxes := Solve(cfg)
	require.Len(t, boxes, 4)
	// Quadrant arrangement: first two boxes share a row, last two another.
	assert.InDelta(t, boxes[0].Y, boxes[1].Y, 1e-9)
	assert.InDelta(t, boxes[2].Y, boxes[3].Y, 1e-9)
	assert.Greater(t, boxes[2].Y, boxes[0].Y)
}

func TestSolveClampsPhotoCountToFormat(t *testing.T) {
	cfg := PrintLayoutConfig{
		Format:       FormatStrip2x6,
		Orientation:  OrientationPortrait,
		LayoutPreset: PresetGrid,
		PhotoCount:   1, // strip only supports 3 or 4
	}
	boxes := Solve(cfg)
	assert.Len(t, boxes, 3)

	cfg.PhotoCount = 9
	boxes = Solve(cfg)
	assert.Len(t, boxes, 4)
}

func TestClampPhotoCount(t *testing.T) {
	assert.Equal(t, 1, ClampPhotoCount(Format4RSingle, 4))
	assert.Equal(t, 4, ClampPhotoCount(Format4RGrid2x2, 2))
	assert.Equal(t, 3, ClampPhotoCount(FormatStrip2x6, 2))
	assert.Equal(t, 5, ClampPhotoCount(Format("unknown"), 5))
	assert.Equal(t, 1, ClampPhotoCount(Format("unknown"), 0))
}

func TestClampBox(t *testing.T) {
	b := ClampBox(Box{X: 95, Y: -4, Width: 2, Height: 300})
	assert.GreaterOrEqual(t, b.Width, MinBoxSize)
	assert.LessOrEqual(t, b.X+b.Width, 100.0)
	assert.GreaterOrEqual(t, b.Y, 0.0)
	assert.LessOrEqual(t, b.Y+b.Height, 100.0)
}

func TestSortedByZStable(t *testing.T) {
	boxes := []Box{
		{ID: "top", ZIndex: 5},
		{ID: "mid-a", ZIndex: 2},
		{ID: "mid-b", ZIndex: 2},
		{ID: "bottom", ZIndex: 0},
	}
	sorted := SortedByZ(boxes)
	require.Len(t, sorted, 4)
	assert.Equal(t, "bottom", sorted[0].ID)
	assert.Equal(t, "mid-a", sorted[1].ID, "equal z keeps insertion order")
	assert.Equal(t, "mid-b", sorted[2].ID)
	assert.Equal(t, "top", sorted[3].ID)
	assert.Equal(t, "top", boxes[0].ID, "input not mutated")
}

func TestSortElementsStable(t *testing.T) {
	elements := []Element{
		{ID: "banner", Kind: ElementImage, ZIndex: 3},
		{ID: "title-a", Kind: ElementText, ZIndex: 1},
		{ID: "title-b", Kind: ElementText, ZIndex: 1},
	}
	sorted := SortElements(elements)
	require.Len(t, sorted, 3)
	assert.Equal(t, "title-a", sorted[0].ID)
	assert.Equal(t, "title-b", sorted[1].ID, "equal z keeps insertion order")
	assert.Equal(t, "banner", sorted[2].ID)
	assert.Equal(t, "banner", elements[0].ID, "input not mutated")
}

func TestGridBoxHeightFormula(t *testing.T) {
	margins := Margins{Top: 10, Bottom: 10}
	boxes := GridBoxes(4, OrientationPortrait, margins, 4)
	want := (100.0 - 20 - 4*3) / 4
	assert.False(t, math.IsNaN(want))
	for i, b := range boxes {
		assert.InDelta(t, want, b.Height, 1e-9)
		assert.InDelta(t, 10+float64(i)*(want+4), b.Y, 1e-9)
	}
}
