package place

import (
	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// Grid is the exclusion grid of one region pass. A cell is free while it
// belongs to the region and no word placed in this pass covers it.
type Grid struct {
	mask   wordle.Mask
	region int
	w, h   int
	used   []bool
}

// NewGrid returns an empty grid for region over mask.
func NewGrid(mask wordle.Mask, region int) *Grid {
	w, h := mask.Width(), mask.Height()
	return &Grid{mask: mask, region: region, w: w, h: h, used: make([]bool, w*h)}
}

// Free reports whether (x, y) is inside the canvas, owned by the region and
// not yet covered.
func (g *Grid) Free(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	return g.mask.At(x, y) == g.region && !g.used[y*g.w+x]
}

// Fit reports whether footprint fp, anchored at (x, y), covers only free
// cells. The anchor cell itself must belong to the region even when fp
// leaves it empty.
func (g *Grid) Fit(fp *glyph.Bitmap, x, y int) bool {
	if g.mask.At(x, y) != g.region {
		return false
	}
	ok := true
	fp.Each(func(dx, dy int) bool {
		ok = g.Free(x+dx, y+dy)
		return ok
	})
	return ok
}

// Mark covers the cells of fp anchored at (x, y).
func (g *Grid) Mark(fp *glyph.Bitmap, x, y int) {
	fp.Each(func(dx, dy int) bool {
		px, py := x+dx, y+dy
		if px >= 0 && py >= 0 && px < g.w && py < g.h {
			g.used[py*g.w+px] = true
		}
		return true
	})
}
