// Package fontscale picks the global maximum font size so that keywords
// cover a target share of every region's area.
package fontscale

import (
	"math"

	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

const (
	// Fixed-quota target: every region at most this full.
	fillTarget = 0.65

	// Max-match band: grow while the fullest region is below bandLow,
	// shrink while the emptiest is above bandHigh.
	bandLow  = 0.75
	bandHigh = 0.80

	maxMatchSteps  = 256
	maxMatchGrowth = 4

	// Per-word padding added to the measured box.
	padHeight = 1
	padWidth  = 4
)

// Size maps a weight to a font size between minFont and maxFont.
func Size(weight float64, maxFont, minFont int) float64 {
	return float64(maxFont-minFont)*math.Sqrt(weight) + float64(minFont)
}

// FillRatios returns, per region, the padded box area of its words at
// maxFont divided by the region area. Words without a region are ignored.
func FillRatios(regions []wordle.Region, words wordle.Words, maxFont, minFont int, p glyph.Provider) ([]float64, error) {
	used := make([]float64, len(regions))
	count := make([]int, len(regions))
	for i := range words {
		w := &words[i]
		if w.RegionID < 0 || w.RegionID >= len(regions) {
			continue
		}
		fs := Size(w.Weight, maxFont, minFont)
		m, err := p.Measure(w.Name, w.FontFamily, fs, 0)
		if err != nil {
			return nil, err
		}
		used[w.RegionID] += (fs + padHeight) * (m.Width + padWidth)
		count[w.RegionID]++
	}

	ratios := make([]float64, len(regions))
	for id, r := range regions {
		switch {
		case r.Area > 0:
			ratios[id] = used[id] / float64(r.Area)
		case count[id] > 0:
			ratios[id] = math.Inf(1)
		}
	}
	return ratios, nil
}

// Solve binary-searches the largest font size in [minFont, initialMax] at
// which no region is more than 65% full. If no size qualifies the result is
// minFont.
func Solve(regions []wordle.Region, words wordle.Words, initialMax, minFont int, p glyph.Provider) (int, error) {
	size := minFont
	l, r := minFont, initialMax
	for r-l > 1 {
		mid := (l + r) / 2
		ratios, err := FillRatios(regions, words, mid, minFont, p)
		if err != nil {
			return 0, err
		}
		if all(ratios, fillTarget) {
			size, l = mid, mid
		} else {
			r = mid
		}
	}
	return size, nil
}

// SolveMaxMatch walks the font size one step at a time until every region
// sits inside the 75%–80% band. The walk stops when a size repeats, in which
// case the largest visited size with no region above 80% wins (minFont if
// none). Sizes are kept within [minFont, 4×initialMax].
func SolveMaxMatch(regions []wordle.Region, words wordle.Words, initialMax, minFont int, p glyph.Provider) (int, error) {
	hi := max(minFont, maxMatchGrowth*initialMax)
	size := min(max(initialMax, minFont), hi)
	seen := map[int]bool{}
	best := -1

	for range maxMatchSteps {
		if seen[size] {
			if best < 0 {
				return minFont, nil
			}
			return best, nil
		}
		seen[size] = true

		ratios, err := FillRatios(regions, words, size, minFont, p)
		if err != nil {
			return 0, err
		}
		if all(ratios, bandHigh) {
			best = max(best, size)
		}

		next := size
		if maxOf(ratios) < bandLow {
			next++
		}
		if minOf(ratios) > bandHigh {
			next--
		}
		next = min(max(next, minFont), hi)
		if next == size {
			return size, nil
		}
		size = next
	}
	return size, nil
}

func all(ratios []float64, limit float64) bool {
	for _, r := range ratios {
		if r > limit {
			return false
		}
	}
	return true
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = max(m, x)
	}
	return m
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		m = min(m, x)
	}
	return m
}
