package glyph

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
)

const (
	monoNarrow  = 0.6
	monoWide    = 1.0
	monoAscent  = 0.75
	monoDescent = 0.2
)

// MonoProvider measures text as solid blocks: narrow runes take 0.6em,
// wide (CJK) runes 1em, and lowercase descender letters extend 0.2em below
// the baseline. It needs no font files and is fully deterministic.
type MonoProvider struct{}

// NewMonoProvider returns a block-glyph provider.
func NewMonoProvider() MonoProvider { return MonoProvider{} }

// Measure implements Provider. The family is ignored.
func (MonoProvider) Measure(text, _ string, size, rotation float64) (Metrics, error) {
	width := 0.0
	descent := 0.0
	for _, r := range text {
		width += runeAdvance(r) * size
		if strings.ContainsRune("gjpqy", r) {
			descent = monoDescent * size
		}
	}
	ascent := monoAscent * size
	if strings.TrimSpace(text) == "" {
		ascent, descent = 0, 0
	}

	img, ox, oy := canvasFor(width, ascent, descent, 0)
	if ascent+descent > 0 {
		ink := image.Rect(int(ox), int(oy-ascent), int(ox+width+0.5), int(oy+descent+0.5))
		draw.Draw(img, ink, image.NewUniform(color.Opaque), image.Point{}, draw.Src)
	}
	cx, cy := center(ox, oy, width, ascent, descent)

	return Metrics{
		Width:   width,
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
		Mask:    FromAlpha(img, cx, cy, rotation),
	}, nil
}

func runeAdvance(r rune) float64 {
	if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) {
		return monoWide
	}
	return monoNarrow
}

var _ Provider = MonoProvider{}
