package wordle

import (
	"image"
	"math"
)

// Unassigned marks a word that has not been given a region or anchor yet.
const Unassigned = -1

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// AnchorPoint is a local extremum of a region's smoothed distance field.
// Anchors seed keyword placement; EWW and EWN are filled in by the allocator.
type AnchorPoint struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Value    float64 `json:"value"`
	Ratio    float64 `json:"ratio"`
	EWW      float64 `json:"eww"` // expected word weight
	EWN      int     `json:"ewn"` // expected word number, decremented per assigned word
	RegionID int     `json:"regionId"`
}

// Pos returns the anchor position as a Point.
func (a AnchorPoint) Pos() Point {
	return Point{X: float64(a.X), Y: float64(a.Y)}
}

// Region is one connected shape component.
type Region struct {
	ID       int
	Boundary []Point
	Dist     *Grid

	// Area is the number of mask cells labelled with ID; Bounds encloses them.
	Area   int
	Bounds image.Rectangle

	// Anchors are sorted by Value descending once the distance field pass
	// has run, so Anchors[0] is the region's peak.
	Anchors []AnchorPoint

	WordsNum    int
	WordsWeight float64
}

// Value is the region's peak anchor value, or 0 if it has no anchors.
func (r *Region) Value() float64 {
	if len(r.Anchors) == 0 {
		return 0
	}
	return r.Anchors[0].Value
}

// Box is an axis-aligned rectangle relative to a word's center, in the
// word's unrotated frame.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Word is one entry of the word arena.
//
// Fields are written in phases: Prepare sets the identity fields and Angle,
// the allocator sets RegionID, EpID and Color, the placement engine sets
// FontSize and the metric fields, and only the placement engine writes X, Y
// and State.
type Word struct {
	Name       string
	Weight     float64
	Color      string
	FontFamily string
	Filling    bool

	RegionID int
	EpID     int

	X, Y  float64
	Angle float64
	State bool

	FontSize float64
	Width    float64
	Height   float64
	Descent  float64
	Gap      float64
	Boxes    []Box
}

// Words is the index-addressable word arena shared by every layout phase.
type Words []Word

// MinWeight returns the smallest weight in ws, or 0 for an empty slice.
func (ws Words) MinWeight() float64 {
	if len(ws) == 0 {
		return 0
	}
	m := ws[0].Weight
	for _, w := range ws[1:] {
		m = min(m, w.Weight)
	}
	return m
}

// InRegion returns the indices of words assigned to region id, in arena order.
func (ws Words) InRegion(id int) []int {
	var idx []int
	for i := range ws {
		if ws[i].RegionID == id {
			idx = append(idx, i)
		}
	}
	return idx
}

// Mask is the region mask, indexed mask[y][x]. Values >= 0 are region ids,
// negative values are background.
type Mask [][]int

// Width returns the number of columns.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows.
func (m Mask) Height() int { return len(m) }

// At returns the label at (x, y), or -1 outside the mask.
func (m Mask) At(x, y int) int {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return -1
	}
	return m[y][x]
}

// Grid is a dense scalar field addressed as (x, y).
type Grid struct {
	W, H int
	data []float64
}

// NewGrid returns a w×h grid with every cell set to fill.
func NewGrid(w, h int, fill float64) *Grid {
	g := &Grid{W: w, H: h, data: make([]float64, w*h)}
	if fill != 0 {
		for i := range g.data {
			g.data[i] = fill
		}
	}
	return g
}

// At returns the value at (x, y).
func (g *Grid) At(x, y int) float64 { return g.data[x*g.H+y] }

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.data[x*g.H+y] = v }

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }
