// Package glyph measures and rasterizes text for collision testing.
//
// A [Provider] turns a string, font family, size and rotation into
// [Metrics]: the unrotated advance width and ink extents plus an occupancy
// [Bitmap] rotated about the text's center. Layout code only ever sees this
// interface, so the layout engine is independent of how text is drawn.
//
// Three providers are available:
//   - [OpenTypeProvider] rasterizes real fonts via golang.org/x/image
//   - [MonoProvider] uses deterministic block glyphs (fast previews, tests)
//   - [Cached] memoizes any provider in a bounded sharded LRU
package glyph

import (
	"image"
	"math"
)

// Metrics describes a measured string.
//
// Width is the advance width. Ascent and Descent are the ink extents above
// and below the baseline, both non-negative; Height is their sum. Mask is
// anchored at the ink box center and already rotated.
type Metrics struct {
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64
	Mask    *Bitmap
}

// Provider measures text. Implementations must be safe for concurrent use.
type Provider interface {
	Measure(text, family string, size, rotation float64) (Metrics, error)
}

// rasterPad is the empty border kept around rasterized text so rotation
// never clips ink.
const rasterPad = 2

// canvasFor allocates an alpha image large enough for text with the given
// metrics and returns the baseline origin inside it.
func canvasFor(width, ascent, descent, leftBearing float64) (*image.Alpha, float64, float64) {
	ox := rasterPad + math.Max(0, -leftBearing)
	w := int(math.Ceil(ox+math.Max(width, 1))) + rasterPad
	h := int(math.Ceil(ascent+descent)) + 2*rasterPad
	return image.NewAlpha(image.Rect(0, 0, w, max(h, 1))), ox, rasterPad + ascent
}

// center returns the ink box center for text drawn with its baseline origin
// at (ox, oy).
func center(ox, oy, width, ascent, descent float64) (float64, float64) {
	return ox + width/2, oy + (descent-ascent)/2
}
