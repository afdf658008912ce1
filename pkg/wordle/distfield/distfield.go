// Package distfield turns sparse per-region distance samples into anchor
// points.
//
// Each region's samples are overlaid on a dense grid (default 1, i.e.
// outside), smoothed three times with a fixed 3×3 kernel, and scanned for
// strict local minima below zero. Minima are the "deepest" interior points
// of a shape and become the anchors that keyword placement grows from.
package distfield

import (
	"cmp"
	"context"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

const (
	// smoothPasses is how many times the kernel runs over each grid.
	smoothPasses = 3

	// scanMargin keeps the extremum scan away from the canvas border.
	scanMargin = 2

	// centerRadius is the distance from the global minimum within which
	// extrema are folded into it.
	centerRadius = 100

	// mergeRadius is the distance below which anchors of any region
	// compete and only the stronger survives.
	mergeRadius = 60
)

var kernel = [3][3]float64{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const kernelSum = 16

// Sample is one sparse distance value. Negative values are inside the shape.
type Sample struct {
	X, Y  int
	Value float64
}

// Field is the raw distance data for every region.
type Field struct {
	Boundaries [][]wordle.Point
	Samples    [][]Sample
}

// Process builds one region per sample set, with smoothed grids and anchors
// sorted by value. Regions are processed concurrently.
func Process(ctx context.Context, f Field, width, height int) ([]wordle.Region, error) {
	if width <= 2*scanMargin || height <= 2*scanMargin {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %dx%d too small for distance processing", width, height)
	}
	if len(f.Samples) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "distance data has no regions")
	}
	if len(f.Boundaries) < len(f.Samples) {
		return nil, errors.New(errors.ErrCodeInvalidRegion,
			"missing boundary for region %d (%d boundaries, %d regions)", len(f.Boundaries), len(f.Boundaries), len(f.Samples))
	}

	regions := make([]wordle.Region, len(f.Samples))
	g, ctx := errgroup.WithContext(ctx)
	for id := range f.Samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, err := buildGrid(f.Samples[id], width, height, id)
			if err != nil {
				return err
			}
			for range smoothPasses {
				Smooth(grid)
			}
			regions[id] = wordle.Region{
				ID:       id,
				Boundary: f.Boundaries[id],
				Dist:     grid,
				Anchors:  FindAnchors(grid, id),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	AssignRatios(regions, MergeAnchors(regions))
	return regions, nil
}

func buildGrid(samples []Sample, width, height, id int) (*wordle.Grid, error) {
	grid := wordle.NewGrid(width, height, 1)
	for _, s := range samples {
		if !grid.In(s.X, s.Y) {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"region %d: sample (%d, %d) outside %dx%d canvas", id, s.X, s.Y, width, height)
		}
		grid.Set(s.X, s.Y, s.Value)
	}
	return grid, nil
}

// Smooth applies the 3×3 kernel once, in place, to every interior cell.
// Border cells are left untouched.
func Smooth(g *wordle.Grid) {
	for x := 1; x < g.W-1; x++ {
		for y := 1; y < g.H-1; y++ {
			sum := 0.0
			for i := -1; i <= 1; i++ {
				for j := -1; j <= 1; j++ {
					sum += g.At(x+i, y+j) * kernel[i+1][j+1]
				}
			}
			g.Set(x, y, sum/kernelSum)
		}
	}
}

// Extremes scans the grid interior for strict local minima below zero and
// returns them together with the global minimum and its position.
func Extremes(g *wordle.Grid, regionID int) (points []wordle.AnchorPoint, minD float64, center wordle.AnchorPoint) {
	minD = math.Inf(1)
	for x := scanMargin; x < g.W-scanMargin; x++ {
		for y := scanMargin; y < g.H-scanMargin; y++ {
			v := g.At(x, y)
			if v < minD {
				minD = v
				center = wordle.AnchorPoint{X: x, Y: y, RegionID: regionID}
			}
			if v >= 0 || !isStrictMinimum(g, x, y) {
				continue
			}
			points = append(points, wordle.AnchorPoint{X: x, Y: y, Value: math.Abs(v), RegionID: regionID})
		}
	}
	center.Value = math.Abs(minD)
	return points, minD, center
}

func isStrictMinimum(g *wordle.Grid, x, y int) bool {
	v := g.At(x, y)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if (i != 0 || j != 0) && g.At(x+i, y+j) <= v {
				return false
			}
		}
	}
	return true
}

// FindAnchors extracts a region's anchors before the cross-region merge.
//
// Extrema near the global minimum are folded into it: the first one within
// centerRadius takes the minimum's position and value, and later ones are
// dropped once the previous kept anchor already sits there. If no extremum
// is that close, the global minimum is added as an anchor of its own.
func FindAnchors(g *wordle.Grid, regionID int) []wordle.AnchorPoint {
	points, _, center := Extremes(g, regionID)

	out := make([]wordle.AnchorPoint, 0, len(points)+1)
	consumed := false
	for _, p := range points {
		if samePos(p, center) {
			continue
		}
		if dist(p, center) < centerRadius {
			consumed = true
			if len(out) > 0 && samePos(out[len(out)-1], center) {
				continue
			}
			if p.Value < center.Value {
				p.X, p.Y, p.Value = center.X, center.Y, center.Value
			}
		}
		out = append(out, p)
	}
	if !consumed {
		out = append(out, center)
	}
	return out
}

// MergeAnchors greedily deduplicates the anchors of all regions: an anchor
// closer than mergeRadius to an already kept one replaces it if stronger and
// is discarded otherwise.
func MergeAnchors(regions []wordle.Region) []wordle.AnchorPoint {
	var kept []wordle.AnchorPoint
	for _, r := range regions {
		for _, e := range r.Anchors {
			absorbed, replaced := false, false
			for i := 0; i < len(kept); i++ {
				if dist(e, kept[i]) >= mergeRadius {
					continue
				}
				absorbed = true
				if kept[i].Value >= e.Value {
					continue
				}
				// e takes the first weaker slot; further weaker neighbours
				// would only duplicate it.
				if !replaced {
					kept[i] = e
					replaced = true
				} else {
					kept = slices.Delete(kept, i, i+1)
					i--
				}
			}
			if !absorbed {
				kept = append(kept, e)
			}
		}
	}
	return kept
}

// AssignRatios hands the merged anchors back to their regions, sorted by
// value descending, with ratio = value² / Σ value².
//
// A region whose anchors were all absorbed by a neighbour keeps its own
// strongest anchor so that every region can still seed placement.
func AssignRatios(regions []wordle.Region, merged []wordle.AnchorPoint) {
	for i := range regions {
		r := &regions[i]
		var own []wordle.AnchorPoint
		for _, a := range merged {
			if a.RegionID == r.ID {
				own = append(own, a)
			}
		}
		if len(own) == 0 && len(r.Anchors) > 0 {
			own = []wordle.AnchorPoint{slices.MaxFunc(r.Anchors, func(a, b wordle.AnchorPoint) int {
				return cmp.Compare(a.Value, b.Value)
			})}
		}
		slices.SortStableFunc(own, func(a, b wordle.AnchorPoint) int {
			return cmp.Compare(b.Value, a.Value)
		})

		sum := 0.0
		for _, a := range own {
			sum += a.Value * a.Value
		}
		for j := range own {
			if sum > 0 {
				own[j].Ratio = own[j].Value * own[j].Value / sum
			} else {
				own[j].Ratio = 1 / float64(len(own))
			}
		}
		r.Anchors = own
	}
}

func samePos(a, b wordle.AnchorPoint) bool { return a.X == b.X && a.Y == b.Y }

func dist(a, b wordle.AnchorPoint) float64 { return a.Pos().Dist(b.Pos()) }
