// Package fill packs decorative filling words around placed keywords.
//
// Filling words are canvas-global: any free cell inside any region will do.
// Each word walks a widening spiral from a jittered canvas center and is
// dropped silently when the step budget runs out.
package fill

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

const (
	// stepLimit bounds the spiral walk per word.
	stepLimit = 12000

	// seedJitter is the half-width of the square around the canvas center
	// that seeds are drawn from.
	seedJitter = 50

	// keywordPad dilates keyword ink before it blocks the grid.
	keywordPad = 1
)

// Grid is the canvas-wide exclusion grid. A cell is free while it lies on a
// region and nothing covers it.
type Grid struct {
	mask wordle.Mask
	w, h int
	used []bool
}

// NewGrid blocks the dilated ink of every placed keyword.
func NewGrid(mask wordle.Mask, keywords wordle.Words, p glyph.Provider) (*Grid, error) {
	w, h := mask.Width(), mask.Height()
	g := &Grid{mask: mask, w: w, h: h, used: make([]bool, w*h)}
	for i := range keywords {
		k := &keywords[i]
		if !k.State {
			continue
		}
		m, err := p.Measure(k.Name, k.FontFamily, k.FontSize, k.Angle)
		if err != nil {
			return nil, err
		}
		g.Mark(m.Mask.Dilate(keywordPad), int(math.Round(k.X)), int(math.Round(k.Y)))
	}
	return g, nil
}

// Free reports whether (x, y) is on a region and uncovered.
func (g *Grid) Free(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	return g.mask.At(x, y) >= 0 && !g.used[y*g.w+x]
}

// Fit reports whether every cell of b anchored at (x, y) is free.
func (g *Grid) Fit(b *glyph.Bitmap, x, y int) bool {
	if g.mask.At(x, y) < 0 {
		return false
	}
	ok := true
	b.Each(func(dx, dy int) bool {
		ok = g.Free(x+dx, y+dy)
		return ok
	})
	return ok
}

// Mark covers the cells of b anchored at (x, y).
func (g *Grid) Mark(b *glyph.Bitmap, x, y int) {
	b.Each(func(dx, dy int) bool {
		px, py := x+dx, y+dy
		if px >= 0 && py >= 0 && px < g.w && py < g.h {
			g.used[py*g.w+px] = true
		}
		return true
	})
}

// Engine places filling words on a Grid. It is not safe for concurrent use.
type Engine struct {
	grid   *Grid
	glyphs glyph.Provider
	rng    *rand.Rand
	mode   wordle.AngleMode
	maxR   float64

	records []wordle.Record
}

// NewEngine returns an engine drawing rotations from mode.
func NewEngine(grid *Grid, p glyph.Provider, mode wordle.AngleMode, rng *rand.Rand) *Engine {
	return &Engine{
		grid:   grid,
		glyphs: p,
		rng:    rng,
		mode:   mode,
		maxR:   math.Floor(math.Hypot(float64(grid.w), float64(grid.h)) / 2),
	}
}

// Put tries to place w at fontSize and reports whether it found room.
// Sizes of zero or less are skipped.
func (e *Engine) Put(w *wordle.Word, fontSize, alpha float64) (bool, error) {
	if fontSize <= 0 {
		return false, nil
	}
	angle := wordle.FillingAngle(e.mode, e.rng)
	m, err := e.glyphs.Measure(w.Name, w.FontFamily, fontSize, angle)
	if err != nil {
		return false, err
	}

	cx, cy := float64(e.grid.w)/2, float64(e.grid.h)/2
	x := math.Round(e.rng.Float64()*(2*seedJitter+1) + cx - seedJitter)
	y := math.Round(e.rng.Float64()*(2*seedJitter+1) + cy - seedJitter)

	for i := range stepLimit {
		t := float64(i) / stepLimit
		rad := (e.maxR-1)*math.Sqrt(t) + 1
		theta := (0.5 - 0.2*t) * float64(i)
		sin, cos := math.Sincos(theta)
		x += cos * rad / 2
		y += sin * rad / 2

		px, py := int(math.Round(x)), int(math.Round(y))
		if !e.grid.Fit(m.Mask, px, py) {
			continue
		}
		e.grid.Mark(m.Mask, px, py)
		if px >= 0 && py >= 0 && px < e.grid.w && py < e.grid.h {
			e.records = append(e.records, wordle.Record{
				Name:       w.Name,
				Kind:       wordle.KindFilling,
				FontSize:   fontSize,
				FontFamily: w.FontFamily,
				Color:      w.Color,
				Alpha:      alpha,
				Rotate:     angle,
				TransX:     float64(px),
				TransY:     float64(py),
				FillX:      -m.Width / 2,
				FillY:      m.Height/2 - m.Descent,
			})
		}
		return true, nil
	}
	return false, nil
}

// pass is one sweep over the filling words.
type pass struct {
	shrink int
	alpha  float64
}

// schedule shrinks the font and fades the words as space runs out.
var schedule = []pass{
	{0, 0.8}, {0, 0.8},
	{2, 0.7}, {2, 0.7},
	{5, 0.6}, {8, 0.6}, {11, 0.6},
}

// Run sweeps the words seven times with decreasing size and alpha and
// returns the records of every word placed.
func (e *Engine) Run(words wordle.Words, baseSize int) ([]wordle.Record, error) {
	for _, p := range schedule {
		size := float64(baseSize - p.shrink)
		if size <= 0 {
			continue
		}
		for i := range words {
			if _, err := e.Put(&words[i], size, p.alpha); err != nil {
				return nil, err
			}
		}
	}
	return e.records, nil
}

// Records returns the records placed so far.
func (e *Engine) Records() []wordle.Record { return e.records }
