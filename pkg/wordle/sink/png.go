package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/f64"

	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// DefaultScale is the PNG resolution multiplier.
const DefaultScale = 4

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
	font       []byte
	fillings   bool
}

// WithScale sets the resolution multiplier (default 4).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGBackground sets the canvas color (default white).
func WithPNGBackground(color string) PNGOption { return func(r *pngRenderer) { r.background = color } }

// WithFont sets the TrueType/OpenType data used for every record
// (default Go Regular).
func WithFont(data []byte) PNGOption { return func(r *pngRenderer) { r.font = data } }

// WithoutPNGFillings renders keywords only.
func WithoutPNGFillings() PNGOption { return func(r *pngRenderer) { r.fillings = false } }

// RenderPNG rasterizes the layout. Each word is drawn upright into its own
// buffer and composited onto the canvas with its rotation.
func RenderPNG(l wordle.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, background: "#ffffff", font: goregular.TTF, fillings: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}
	bg, err := colorful.Hex(r.background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}

	src, err := text.NewFontSource(r.font)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	defer src.Close()

	w := int(math.Ceil(float64(l.Width) * r.scale))
	h := int(math.Ceil(float64(l.Height) * r.scale))
	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.RGB(bg.R, bg.G, bg.B))

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), dc.Image(), image.Point{}, draw.Src)

	records := l.Keywords
	if r.fillings {
		records = l.Records()
	}
	for _, rec := range records {
		if err := r.drawRecord(canvas, src, rec); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	out := gg.NewContextForImage(canvas)
	defer out.Close()
	if err := out.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawRecord(canvas *image.RGBA, src *text.FontSource, rec wordle.Record) error {
	if rec.FontSize <= 0 || rec.Name == "" {
		return nil
	}
	c, err := colorful.Hex(rec.Color)
	if err != nil {
		return fmt.Errorf("record %q: %w", rec.Name, err)
	}
	alpha := rec.Alpha
	if alpha <= 0 {
		alpha = 1
	}
	col := color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(alpha)}

	s := r.scale
	face := src.Face(rec.FontSize * s)
	m := face.Metrics()
	tw := face.Advance(rec.Name)

	// The word buffer is centered on the record origin.
	half := math.Ceil(max(tw/2+math.Abs(rec.FillX*s+tw/2), m.Ascent+m.Descent+math.Abs(rec.FillY*s))) + 2
	size := int(2 * half)
	word := image.NewRGBA(image.Rect(0, 0, size, size))
	text.Draw(word, rec.Name, face, half+rec.FillX*s, half+rec.FillY*s, col)

	sin, cos := math.Sincos(rec.Rotate)
	tx, ty := rec.TransX*s, rec.TransY*s
	s2d := f64.Aff3{
		cos, -sin, tx - (cos*half - sin*half),
		sin, cos, ty - (sin*half + cos*half),
	}
	draw.BiLinear.Transform(canvas, s2d, word, word.Bounds(), draw.Over, nil)
	return nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}
