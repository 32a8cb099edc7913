package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistriesLookup(t *testing.T) {
	themes := BuiltinThemes()
	_, ok := themes.Get("classic")
	assert.True(t, ok)
	_, ok = themes.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "classic", themes.GetOrDefault("missing").ID)

	overlays := BuiltinOverlays()
	dt, ok := overlays.Get(DatetimeOverlayID)
	assert.True(t, ok)
	assert.Equal(t, OverlayDatetime, dt.Kind)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff8040", want: color.NRGBA{R: 255, G: 128, B: 64, A: 255}},
		{in: "ff8040", want: color.NRGBA{R: 255, G: 128, B: 64, A: 255}},
		{in: "#10203080", want: color.NRGBA{R: 16, G: 32, B: 48, A: 128}},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		r, g, b, a, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, color.NRGBA{R: r, G: g, B: b, A: a}, tt.in)
	}
}

func TestParseHexRGBAFallsBackToWhite(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, ParseHexRGBA("not-a-color"))
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, ParseHexRGBA("#000000"))
}
