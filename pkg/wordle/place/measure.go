package place

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/fontscale"
)

// baseGap is the padding every word starts a pass with.
const baseGap = 2

// Measure sizes every word for maxFont: font size from weight, metrics and
// ink mask from the glyph provider, and per-character boxes for salient
// words (weight not within eps of 0.5).
//
// Writes: FontSize, Width, Height, Descent, Gap and Boxes.
func (e *Engine) Measure(words wordle.Words, maxFont int) error {
	if len(e.ink) != len(words) {
		e.ink = make([]*glyph.Bitmap, len(words))
	}
	for i := range words {
		w := &words[i]
		fs := fontscale.Size(w.Weight, maxFont, e.opts.MinFontSize)
		m, err := e.glyphs.Measure(w.Name, w.FontFamily, fs, w.Angle)
		if err != nil {
			return err
		}
		w.FontSize = fs
		w.Width, w.Height, w.Descent = m.Width, m.Height, m.Descent
		w.Gap = baseGap
		w.Boxes = nil
		e.ink[i] = m.Mask

		if math.Abs(w.Weight-0.5) > e.opts.Eps {
			if w.Boxes, err = e.charBoxes(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// charBoxes returns one ink box per visible rune, relative to the word
// center in its unrotated frame.
func (e *Engine) charBoxes(w *wordle.Word) ([]wordle.Box, error) {
	baseline := w.Height/2 - w.Descent
	cur := -w.Width / 2
	var boxes []wordle.Box
	for _, r := range w.Name {
		m, err := e.glyphs.Measure(string(r), w.FontFamily, w.FontSize, 0)
		if err != nil {
			return nil, err
		}
		if m.Height > 0 {
			boxes = append(boxes, wordle.Box{
				X0: cur,
				Y0: baseline - m.Ascent,
				X1: cur + m.Width,
				Y1: baseline + m.Descent,
			})
		}
		cur += m.Width
	}
	return boxes, nil
}

// Footprint returns the cells word i claims: its boxes (or its bounding
// rectangle) padded by the current gap, rotated by the word's angle and
// merged with the glyph ink mask. The bitmap is anchored on the word center.
func (e *Engine) Footprint(words wordle.Words, i int) *glyph.Bitmap {
	w := &words[i]
	boxes := w.Boxes
	if len(boxes) == 0 {
		boxes = []wordle.Box{{X0: -w.Width / 2, Y0: -w.Height / 2, X1: w.Width / 2, Y1: w.Height / 2}}
	}
	fp := rasterBoxes(boxes, w.Gap, w.Angle)
	if i < len(e.ink) {
		fp = fp.Union(e.ink[i])
	}
	return fp
}

// rasterBoxes draws the padded boxes into an alpha image and rotates it
// about the origin of the box coordinates.
func rasterBoxes(boxes []wordle.Box, gap, angle float64) *glyph.Bitmap {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range boxes {
		minX, minY = min(minX, b.X0-gap), min(minY, b.Y0-gap)
		maxX, maxY = max(maxX, b.X1+gap), max(maxY, b.Y1+gap)
	}
	ox, oy := math.Floor(minX), math.Floor(minY)
	img := image.NewAlpha(image.Rect(0, 0, int(math.Ceil(maxX-ox)), int(math.Ceil(maxY-oy))))
	for _, b := range boxes {
		r := image.Rect(
			int(math.Floor(b.X0-gap-ox)), int(math.Floor(b.Y0-gap-oy)),
			int(math.Ceil(b.X1+gap-ox)), int(math.Ceil(b.Y1+gap-oy)),
		)
		draw.Draw(img, r, image.Opaque, image.Point{}, draw.Src)
	}
	return glyph.FromAlpha(img, -ox, -oy, angle)
}
