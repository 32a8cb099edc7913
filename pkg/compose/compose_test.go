package compose

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapbooth/snapbooth/pkg/filter"
	"github.com/snapbooth/snapbooth/pkg/layout"
	"github.com/snapbooth/snapbooth/pkg/overlay"
	"github.com/snapbooth/snapbooth/pkg/style"
)

func solidPhoto(t *testing.T, w, h int, c color.NRGBA) CapturedPhoto {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return CapturedPhoto{ID: "test", Data: buf.Bytes(), Timestamp: time.Now()}
}

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	r, err := overlay.NewRenderer(style.BuiltinOverlays(), "")
	require.NoError(t, err)
	r.Now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return New(r)
}

func stripRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		Mode: ModeStrip,
		Photos: []CapturedPhoto{
			solidPhoto(t, 800, 600, color.NRGBA{R: 255, A: 255}),
			solidPhoto(t, 800, 600, color.NRGBA{G: 255, A: 255}),
			solidPhoto(t, 800, 600, color.NRGBA{B: 255, A: 255}),
			solidPhoto(t, 800, 600, color.NRGBA{R: 255, G: 255, A: 255}),
		},
		PhotoCount: 4,
		Filter:     filter.None,
		Theme:      style.DefaultTheme(),
	}
}

func TestComposeStripFourPhotoScenario(t *testing.T) {
	c := newTestComposer(t)
	img, err := c.ComposeStrip(context.Background(), stripRequest(t))
	require.NoError(t, err)

	assert.Equal(t, StripWidth, img.Bounds().Dx())
	assert.Equal(t, 4*450+5*10+40, img.Bounds().Dy())

	// Band i occupies x in [10,590), y in [10+i*460, 10+i*460+450).
	wantColors := []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	for i, want := range wantColors {
		y := 10 + i*460
		assert.Equal(t, want, img.NRGBAAt(300, y+225), "band %d center", i)
		assert.Equal(t, want, img.NRGBAAt(10, y), "band %d top-left corner", i)
		assert.Equal(t, want, img.NRGBAAt(589, y+449), "band %d bottom-right corner", i)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, img.NRGBAAt(300, 5), "spacing above first band is background")
	assert.Equal(t, white, img.NRGBAAt(5, 700), "left spacing is background")
	assert.Equal(t, white, img.NRGBAAt(300, 465), "gap between bands is background")
}

func TestComposeStripDeterministic(t *testing.T) {
	c := newTestComposer(t)
	a, err := c.ComposeStrip(context.Background(), stripRequest(t))
	require.NoError(t, err)
	b, err := c.ComposeStrip(context.Background(), stripRequest(t))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Pix, b.Pix), "same request twice must be byte-identical")
}

func TestComposeStripMissingPhotoLeavesSlotUnpainted(t *testing.T) {
	c := newTestComposer(t)
	req := &Request{
		Mode: ModeStrip,
		Photos: []CapturedPhoto{
			solidPhoto(t, 400, 300, color.NRGBA{R: 255, A: 255}),
			{ID: "gone"}, // no data
			solidPhoto(t, 400, 300, color.NRGBA{B: 255, A: 255}),
		},
		PhotoCount: 3,
		Theme:      style.DefaultTheme(),
	}

	img, err := c.ComposeStrip(context.Background(), req)
	require.NoError(t, err, "a missing photo must not fail the composition")

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(300, 235), "slot 1 renders")
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, img.NRGBAAt(300, 695), "slot 2 shows background")
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(300, 1155), "slot 3 renders")
}

func TestComposeStripUndecodablePhotoSkipped(t *testing.T) {
	c := newTestComposer(t)
	req := &Request{
		Mode: ModeStrip,
		Photos: []CapturedPhoto{
			{ID: "corrupt", Data: []byte("definitely not a PNG")},
			solidPhoto(t, 400, 300, color.NRGBA{G: 255, A: 255}),
			solidPhoto(t, 400, 300, color.NRGBA{B: 255, A: 255}),
		},
		PhotoCount: 3,
		Theme:      style.DefaultTheme(),
	}

	img, err := c.ComposeStrip(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(300, 235))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(300, 695))
}

func TestComposeStripBorderDrawn(t *testing.T) {
	c := newTestComposer(t)
	req := stripRequest(t)
	req.Theme.BorderStyle = style.BorderSolid
	req.Theme.BorderWidth = 4
	req.Theme.BorderColor = "#000000"

	img, err := c.ComposeStrip(context.Background(), req)
	require.NoError(t, err)

	black := color.NRGBA{A: 255}
	assert.Equal(t, black, img.NRGBAAt(12, 11), "border stroke inside slot edge")
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(300, 235), "photo center untouched")
}

func TestComposeStripAppendsDatetime(t *testing.T) {
	c := newTestComposer(t)

	plain, err := c.ComposeStrip(context.Background(), stripRequest(t))
	require.NoError(t, err)

	req := stripRequest(t)
	req.IncludeDatetime = true
	stamped, err := c.ComposeStrip(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(plain.Pix, stamped.Pix), "datetime stamp must paint pixels")
}

func TestComposeForPrintFixedSizeInvariant(t *testing.T) {
	c := newTestComposer(t)
	configs := []layout.PrintLayoutConfig{
		{Format: layout.Format4RSingle, LayoutPreset: layout.PresetGrid, PhotoCount: 1},
		{Format: layout.Format4RGrid2x2, LayoutPreset: layout.PresetGrid, PhotoCount: 4},
		{Format: layout.FormatStrip2x6, Orientation: layout.OrientationLandscape, LayoutPreset: layout.PresetGrid, PhotoCount: 3},
	}
	for _, cfg := range configs {
		req := &Request{
			Mode:       ModePrint,
			Photos:     []CapturedPhoto{solidPhoto(t, 640, 480, color.NRGBA{R: 200, A: 255})},
			PhotoCount: cfg.PhotoCount,
			Theme:      style.DefaultTheme(),
			Layout:     cfg,
		}
		img, err := c.ComposeForPrint(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, PrintWidth, img.Bounds().Dx(), "format %s", cfg.Format)
		assert.Equal(t, PrintHeight, img.Bounds().Dy(), "format %s", cfg.Format)
	}
}

func TestComposeForPrintDuplicateStripHalvesIdentical(t *testing.T) {
	c := newTestComposer(t)
	req := stripRequest(t)
	req.Mode = ModePrint
	req.DuplicateStrip = true

	img, err := c.ComposeForPrint(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, PrintWidth, img.Bounds().Dx())
	require.Equal(t, PrintHeight, img.Bounds().Dy())

	// Left half [20,580) must equal right half [600,1160) pixel for pixel.
	for y := 0; y < PrintHeight; y += 7 {
		for x := 20; x < 580; x += 11 {
			assert.Equal(t, img.NRGBAAt(x, y), img.NRGBAAt(x+580, y), "mismatch at (%d,%d)", x, y)
		}
	}

	// Outer margins stay background.
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, img.NRGBAAt(10, 900))
	assert.Equal(t, white, img.NRGBAAt(1190, 900))
}

func TestComposeForPrintBoxesPlacePhotos(t *testing.T) {
	c := newTestComposer(t)
	req := &Request{
		Mode: ModePrint,
		Photos: []CapturedPhoto{
			solidPhoto(t, 640, 480, color.NRGBA{R: 255, A: 255}),
			solidPhoto(t, 640, 480, color.NRGBA{B: 255, A: 255}),
		},
		PhotoCount: 2,
		Theme:      style.DefaultTheme(),
		Layout: layout.PrintLayoutConfig{
			Format:       layout.Format4RSingle,
			LayoutPreset: layout.PresetCustom,
			Boxes: []layout.Box{
				{ID: "a", X: 0, Y: 0, Width: 50, Height: 50, ZIndex: 0},
				{ID: "b", X: 50, Y: 50, Width: 50, Height: 50, ZIndex: 1},
			},
		},
	}

	img, err := c.ComposeForPrint(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(300, 450), "first box photo")
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(900, 1350), "second box photo")
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, img.NRGBAAt(900, 450), "empty quadrant is background")
}

func TestComposeForPrintZOrderHonored(t *testing.T) {
	c := newTestComposer(t)
	req := &Request{
		Mode: ModePrint,
		Photos: []CapturedPhoto{
			solidPhoto(t, 300, 300, color.NRGBA{R: 255, A: 255}), // z=5, drawn last
			solidPhoto(t, 300, 300, color.NRGBA{B: 255, A: 255}), // z=1, drawn first
		},
		PhotoCount: 2,
		Theme:      style.DefaultTheme(),
		Layout: layout.PrintLayoutConfig{
			LayoutPreset: layout.PresetCustom,
			Boxes: []layout.Box{
				{ID: "under", X: 10, Y: 10, Width: 40, Height: 40, ZIndex: 1},
				{ID: "over", X: 20, Y: 20, Width: 40, Height: 40, ZIndex: 0},
			},
		},
	}

	// Photos pair with boxes in z-sorted order: the red photo fills the
	// lowest-z box ("over", z=0) and the blue photo fills "under" (z=1),
	// which is drawn after it.
	img, err := c.ComposeForPrint(context.Background(), req)
	require.NoError(t, err)

	// Overlap region: box "under" (z=1, blue) drawn after box "over" (z=0, red).
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(400, 500), "higher z paints over lower")
}

func TestComposeForPrintBackgroundImageAndFrame(t *testing.T) {
	c := newTestComposer(t)

	// Frame template: opaque blue border, transparent center. Scaled 2x onto
	// the print canvas, the border covers x<120, x>=1080, y<180, y>=1620.
	blue := color.NRGBA{B: 255, A: 255}
	frame := image.NewNRGBA(image.Rect(0, 0, 600, 900))
	for y := 0; y < 900; y++ {
		for x := 0; x < 600; x++ {
			if x < 60 || x >= 540 || y < 90 || y >= 810 {
				frame.SetNRGBA(x, y, blue)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, frame))

	req := &Request{
		Mode:       ModePrint,
		Photos:     []CapturedPhoto{solidPhoto(t, 300, 300, color.NRGBA{G: 255, A: 255})},
		PhotoCount: 1,
		Theme:      style.DefaultTheme(),
		Layout: layout.PrintLayoutConfig{
			LayoutPreset:      layout.PresetCustom,
			Boxes:             []layout.Box{{ID: "a", X: 0, Y: 30, Width: 40, Height: 40}},
			BackgroundImage:   solidPhoto(t, 100, 100, color.NRGBA{R: 255, A: 255}).Data,
			BackgroundOpacity: 50,
			FrameTemplate:     buf.Bytes(),
		},
	}

	img, err := c.ComposeForPrint(context.Background(), req)
	require.NoError(t, err)

	// Background image at 50% over the white canvas, visible through the
	// frame cutout outside the photo box.
	assert.Equal(t, color.NRGBA{R: 255, G: 127, B: 127, A: 255}, img.NRGBAAt(600, 300), "background blend")
	// The photo paints opaquely over the blended background.
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(300, 900), "photo over background")
	// The frame border covers everything below it, photo included: the box
	// spans x in [0,480) and the left border reaches x=120.
	assert.Equal(t, blue, img.NRGBAAt(60, 900), "frame over photo")
	assert.Equal(t, blue, img.NRGBAAt(600, 60), "frame over background")
}

func TestComposeForPrintBackgroundOpacityZeroMeansUnset(t *testing.T) {
	c := newTestComposer(t)
	req := &Request{
		Mode:  ModePrint,
		Theme: style.DefaultTheme(),
		Layout: layout.PrintLayoutConfig{
			LayoutPreset:    layout.PresetGrid,
			BackgroundImage: solidPhoto(t, 100, 100, color.NRGBA{R: 255, A: 255}).Data,
		},
	}

	img, err := c.ComposeForPrint(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(600, 900),
		"omitted opacity renders the background image fully opaque")
}

func TestComposeCancelled(t *testing.T) {
	c := newTestComposer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ComposeStrip(ctx, stripRequest(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCropRectMatchesBoxAspect(t *testing.T) {
	cases := []struct{ srcW, srcH, dstW, dstH int }{
		{800, 600, 580, 450},
		{600, 800, 580, 450},
		{1000, 1000, 400, 300},
		{300, 400, 400, 300},
		{1920, 1080, 600, 600},
	}
	for _, tc := range cases {
		r := CropRect(tc.srcW, tc.srcH, tc.dstW, tc.dstH)
		require.False(t, r.Empty(), "%+v", tc)

		gotAspect := float64(r.Dx()) / float64(r.Dy())
		wantAspect := float64(tc.dstW) / float64(tc.dstH)
		assert.InDelta(t, wantAspect, gotAspect, 0.01, "%+v", tc)

		// Crop never exceeds the source.
		assert.LessOrEqual(t, r.Dx(), tc.srcW)
		assert.LessOrEqual(t, r.Dy(), tc.srcH)
		// Centered: equal slack on both sides.
		assert.LessOrEqual(t, absInt(r.Min.X-(tc.srcW-r.Max.X)), 1)
		assert.LessOrEqual(t, absInt(r.Min.Y-(tc.srcH-r.Max.Y)), 1)
	}
}

func TestNewSurfaceRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 100}, {100, 0}, {-1, 100}, {100000, 100000}} {
		_, err := newSurface(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrSurfaceUnavailable, "%v", dims)
	}
	img, err := newSurface(10, 10)
	require.NoError(t, err)
	assert.NotNil(t, img)
}

func TestRequestNormalizeClamps(t *testing.T) {
	req := &Request{
		Photos: []CapturedPhoto{{ID: "x"}},
		Filter: filter.ID("sparkle"),
		Layout: layout.PrintLayoutConfig{
			Margins: layout.Margins{Top: -5, Bottom: 50},
			Boxes:   []layout.Box{{ID: "b", X: 95, Y: 0, Width: 40, Height: 5}},
		},
	}
	warnings := req.Normalize()
	assert.NotEmpty(t, warnings)
	assert.Equal(t, filter.None, req.Filter)
	assert.Equal(t, 0.0, req.Layout.Margins.Top)
	assert.Equal(t, layout.MaxMargin, req.Layout.Margins.Bottom)
	b := req.Layout.Boxes[0]
	assert.LessOrEqual(t, b.X+b.Width, 100.0)
	assert.GreaterOrEqual(t, b.Height, layout.MinBoxSize)
	assert.Equal(t, ModeStrip, req.Mode)
	assert.Equal(t, 1, req.PhotoCount)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
