// estimate.go — File-size estimation. The estimate recomposes and re-encodes
// on every call rather than caching: composition is cheap next to the
// correctness risk of a stale estimate after a settings change.
package export

import (
	"context"
	"image"

	"github.com/snapbooth/snapbooth/pkg/compose"
)

// EstimateSize renders req through c and returns the encoded byte count for
// the given format and quality.
func EstimateSize(ctx context.Context, c *compose.Composer, req *compose.Request, format Format, quality float64) (int, error) {
	img, err := Render(ctx, c, req)
	if err != nil {
		return 0, err
	}
	data, err := Encode(img, format, quality)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// Render dispatches a request to the composer by mode.
func Render(ctx context.Context, c *compose.Composer, req *compose.Request) (image.Image, error) {
	if req.Mode == compose.ModePrint {
		return c.ComposeForPrint(ctx, req)
	}
	return c.ComposeStrip(ctx, req)
}
