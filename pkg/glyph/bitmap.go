package glyph

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Bitmap is a boolean occupancy mask anchored at a reference cell.
// Offsets passed to Each are relative to that anchor (OX, OY), which sits on
// the word's center.
type Bitmap struct {
	W, H   int
	OX, OY int
	bits   []bool
}

// NewBitmap returns an empty w×h bitmap anchored at (ox, oy).
func NewBitmap(w, h, ox, oy int) *Bitmap {
	return &Bitmap{W: w, H: h, OX: ox, OY: oy, bits: make([]bool, w*h)}
}

// At reports whether cell (x, y) is occupied. Cells outside are empty.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.bits[y*b.W+x]
}

// Set marks cell (x, y).
func (b *Bitmap) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.bits[y*b.W+x] = true
}

// Count returns the number of occupied cells.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.bits {
		if v {
			n++
		}
	}
	return n
}

// Each calls fn with the anchor-relative offset of every occupied cell.
// Iteration stops early when fn returns false.
func (b *Bitmap) Each(fn func(dx, dy int) bool) {
	for y := 0; y < b.H; y++ {
		row := b.bits[y*b.W : (y+1)*b.W]
		for x, v := range row {
			if v && !fn(x-b.OX, y-b.OY) {
				return
			}
		}
	}
}

// Union returns a bitmap covering both b and o with their anchors aligned.
func (b *Bitmap) Union(o *Bitmap) *Bitmap {
	if o == nil {
		return b
	}
	left := max(b.OX, o.OX)
	top := max(b.OY, o.OY)
	right := max(b.W-b.OX, o.W-o.OX)
	bottom := max(b.H-b.OY, o.H-o.OY)

	u := NewBitmap(left+right, top+bottom, left, top)
	for _, src := range []*Bitmap{b, o} {
		src.Each(func(dx, dy int) bool {
			u.Set(dx+left, dy+top)
			return true
		})
	}
	return u
}

// Dilate grows every occupied cell into a (2r+1)² square.
func (b *Bitmap) Dilate(r int) *Bitmap {
	if r <= 0 {
		return b
	}
	d := NewBitmap(b.W+2*r, b.H+2*r, b.OX+r, b.OY+r)
	b.Each(func(dx, dy int) bool {
		cx, cy := dx+d.OX, dy+d.OY
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				d.Set(x, y)
			}
		}
		return true
	})
	return d
}

// FromAlpha thresholds img into a bitmap after rotating it by rotation
// radians about (cx, cy). The result is anchored on the rotated center.
func FromAlpha(img *image.Alpha, cx, cy, rotation float64) *Bitmap {
	if rotation != 0 {
		img, cx, cy = rotateAlpha(img, cx, cy, rotation)
	}
	r := img.Bounds()
	b := NewBitmap(r.Dx(), r.Dy(), int(math.Round(cx))-r.Min.X, int(math.Round(cy))-r.Min.Y)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.AlphaAt(x, y).A > 0 {
				b.Set(x-r.Min.X, y-r.Min.Y)
			}
		}
	}
	return b
}

// rotateAlpha rotates img clockwise on screen by angle radians about
// (cx, cy), returning the new image and the center's new coordinates.
func rotateAlpha(img *image.Alpha, cx, cy, angle float64) (*image.Alpha, float64, float64) {
	sin, cos := math.Sincos(angle)
	r := img.Bounds()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
	} {
		x := cos*(p[0]-cx) - sin*(p[1]-cy)
		y := sin*(p[0]-cx) + cos*(p[1]-cy)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	w := int(math.Ceil(maxX - minX))
	h := int(math.Ceil(maxY - minY))
	ncx, ncy := -minX, -minY
	dst := image.NewAlpha(image.Rect(0, 0, max(w, 1), max(h, 1)))

	m := f64.Aff3{
		cos, -sin, ncx - (cos*cx - sin*cy),
		sin, cos, ncy - (sin*cx + cos*cy),
	}
	draw.NearestNeighbor.Transform(dst, m, img, r, draw.Src, nil)
	return dst, ncx, ncy
}
