package glyph

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OpenTypeProvider rasterizes text with parsed TrueType/OpenType fonts.
// Unknown families fall back to Go Regular, so any family name measures.
type OpenTypeProvider struct {
	mu       sync.RWMutex
	fonts    map[string]*opentype.Font
	fallback *opentype.Font
}

// NewOpenTypeProvider returns a provider with only the fallback font loaded.
func NewOpenTypeProvider() (*OpenTypeProvider, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback font: %w", err)
	}
	return &OpenTypeProvider{
		fonts:    make(map[string]*opentype.Font),
		fallback: f,
	}, nil
}

// Register makes font data available under family.
func (p *OpenTypeProvider) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	p.mu.Lock()
	p.fonts[strings.ToLower(family)] = f
	p.mu.Unlock()
	return nil
}

// RegisterFile loads a font file and registers it under family.
func (p *OpenTypeProvider) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return p.Register(family, data)
}

func (p *OpenTypeProvider) font(family string) *opentype.Font {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if f, ok := p.fonts[strings.ToLower(family)]; ok {
		return f
	}
	return p.fallback
}

// Measure implements Provider.
func (p *OpenTypeProvider) Measure(text, family string, size, rotation float64) (Metrics, error) {
	if size <= 0 {
		return Metrics{}, fmt.Errorf("font size must be positive, got %v", size)
	}
	face, err := opentype.NewFace(p.font(family), &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Metrics{}, fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	bounds, advance := font.BoundString(face, text)
	width := toFloat(advance)
	ascent := max(0, -toFloat(bounds.Min.Y))
	descent := max(0, toFloat(bounds.Max.Y))
	if bounds.Empty() {
		ascent, descent = 0, 0
	}

	img, ox, oy := canvasFor(max(width, toFloat(bounds.Max.X)), ascent, descent, toFloat(bounds.Min.X))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: fromFloat(ox), Y: fromFloat(oy)},
	}
	d.DrawString(text)
	cx, cy := center(ox, oy, width, ascent, descent)

	return Metrics{
		Width:   width,
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
		Mask:    FromAlpha(img, cx, cy, rotation),
	}, nil
}

func toFloat(x fixed.Int26_6) float64 { return float64(x) / 64 }

func fromFloat(x float64) fixed.Int26_6 { return fixed.Int26_6(x * 64) }

var _ Provider = (*OpenTypeProvider)(nil)
