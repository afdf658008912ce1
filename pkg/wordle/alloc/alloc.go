// Package alloc distributes keywords over regions and anchor points.
//
// Allocation runs in three steps that must be called in order:
// [ComputeAreas] sizes each region's quota, [AssignRegions] hands every
// keyword a region and [AssignAnchors] picks an anchor inside it.
package alloc

import (
	"cmp"
	"image"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

const (
	// Regions whose peak is at most minorPeak get no quota when some other
	// region peaks above majorPeak.
	minorPeak = 18
	majorPeak = 45

	// Regions peaking below narrowPeak only take short names.
	narrowPeak    = 24
	narrowMaxRune = 5

	// Anchors with a value below shallowAnchor expect no words.
	shallowAnchor = 20

	// A region with at most fewWords words accepts only the lightest ones.
	fewWords = 3
)

// ComputeAreas measures every region on the mask and derives its word quota
// and weight ceiling. It returns the index of the largest region, which is
// where AssignRegions starts its cursor.
//
// Reads: mask, region anchors, keyword weights. Writes: Area, Bounds,
// WordsNum and WordsWeight of every region.
func ComputeAreas(regions []wordle.Region, mask wordle.Mask, words wordle.Words, opts wordle.Options) (int, error) {
	if len(regions) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "no regions to allocate")
	}
	for i := range regions {
		regions[i].Area = 0
		regions[i].Bounds = image.Rectangle{}
	}

	total := 0
	for y, row := range mask {
		for x, id := range row {
			if id < 0 {
				continue
			}
			if id >= len(regions) {
				return 0, errors.New(errors.ErrCodeInvalidInput,
					"mask cell (%d, %d) labelled %d but only %d regions exist", x, y, id, len(regions))
			}
			r := &regions[id]
			r.Area++
			r.Bounds = r.Bounds.Union(image.Rect(x, y, x+1, y+1))
			total++
		}
	}
	if total == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "region mask has no labelled cells")
	}

	keywords := words
	if len(keywords) > opts.KeywordNum {
		keywords = keywords[:opts.KeywordNum]
	}
	minWeight := keywords.MinWeight()

	areaMaxIdx, valueMax := 0, 0.0
	for i := range regions {
		if regions[i].Area > regions[areaMaxIdx].Area {
			areaMaxIdx = i
		}
		valueMax = max(valueMax, regions[i].Value())
	}
	areaMax := float64(regions[areaMaxIdx].Area)

	sum := 0
	for i := range regions {
		r := &regions[i]
		value := r.Value()
		if value <= minorPeak && valueMax > majorPeak {
			r.WordsNum = 0
		} else {
			r.WordsNum = int(math.Round(float64(r.Area) / float64(total) * float64(opts.KeywordNum)))
		}
		sum += r.WordsNum

		switch {
		case r.WordsNum <= fewWords:
			r.WordsWeight = minWeight
		case opts.PlanA:
			r.WordsWeight = float64(r.Area) / areaMax
		case valueMax > 0:
			r.WordsWeight = value / valueMax
		default:
			r.WordsWeight = minWeight
		}
	}
	settle(regions, opts.KeywordNum-sum, areaMaxIdx)
	return areaMaxIdx, nil
}

// settle credits diff to the largest region. A negative remainder larger than
// that region's quota is taken from the next-largest regions in turn.
func settle(regions []wordle.Region, diff, areaMaxIdx int) {
	if diff >= 0 {
		regions[areaMaxIdx].WordsNum += diff
		return
	}
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if a == areaMaxIdx {
			return -1
		}
		if b == areaMaxIdx {
			return 1
		}
		return cmp.Compare(regions[b].Area, regions[a].Area)
	})
	deficit := -diff
	for _, i := range order {
		take := min(deficit, regions[i].WordsNum)
		regions[i].WordsNum -= take
		deficit -= take
		if deficit == 0 {
			return
		}
	}
}

// AssignRegions walks a round-robin cursor over the regions and gives each
// keyword the first region with quota left whose weight ceiling admits it.
// Every rejected region advances the cursor. A keyword nobody accepts within
// 3×len(regions) attempts goes to the region with the highest peak and, if
// it has no color yet, takes that region's palette color.
//
// Reads: region quotas and peaks. Writes: RegionID and possibly Color.
func AssignRegions(regions []wordle.Region, words wordle.Words, start int, colors []string) {
	n := len(regions)
	if n == 0 {
		return
	}
	quota := make([]int, n)
	peakIdx := 0
	for i := range regions {
		quota[i] = regions[i].WordsNum
		if regions[i].Value() > regions[peakIdx].Value() {
			peakIdx = i
		}
	}

	cur := ((start % n) + n) % n
	for i := range words {
		w := &words[i]
		w.RegionID = wordle.Unassigned
		for attempt := 0; attempt < 3*n && w.RegionID == wordle.Unassigned; attempt++ {
			r := &regions[cur]
			if quota[cur] > 0 && w.Weight <= r.WordsWeight && accepts(r, w.Name) {
				w.RegionID = cur
				quota[cur]--
			}
			cur = (cur + 1) % n
		}
		if w.RegionID == wordle.Unassigned {
			w.RegionID = peakIdx
			if w.Color == "" && len(colors) > 0 {
				w.Color = colors[peakIdx%len(colors)]
			}
		}
	}
}

// accepts reports whether a narrow region has room for name.
func accepts(r *wordle.Region, name string) bool {
	return r.Value() >= narrowPeak || utf8.RuneCountInString(name) <= narrowMaxRune
}

// AssignAnchors sets each anchor's expected weight and word count and then
// gives every keyword an anchor of its region, round-robin. Each assignment
// uses up one unit of the anchor's EWN, so afterwards EWN holds the remaining
// capacity. A keyword no anchor accepts within 2×len(anchors) attempts falls
// back to anchor 0 without using capacity.
//
// Reads: RegionID, Weight, region quotas and anchor ratios. Writes: anchor
// EWW and EWN, word EpID.
func AssignAnchors(regions []wordle.Region, words wordle.Words) error {
	minWeight := words.MinWeight()
	for id := range regions {
		r := &regions[id]
		idx := words.InRegion(id)
		if len(r.Anchors) == 0 {
			if len(idx) > 0 {
				return errors.New(errors.ErrCodeInvalidRegion, "region %d has %d words but no anchors", id, len(idx))
			}
			continue
		}

		expectAnchors(r, minWeight)

		cur := 0
		for _, i := range idx {
			w := &words[i]
			w.EpID = wordle.Unassigned
			for attempt := 0; attempt < 2*len(r.Anchors) && w.EpID == wordle.Unassigned; attempt++ {
				if a := &r.Anchors[cur]; a.EWN > 0 && w.Weight <= a.EWW {
					w.EpID = cur
					a.EWN--
				}
				cur = (cur + 1) % len(r.Anchors)
			}
			if w.EpID == wordle.Unassigned {
				w.EpID = 0
			}
		}
	}
	return nil
}

// expectAnchors fills in EWW and EWN so that the anchor counts sum to the
// region quota without any going negative.
func expectAnchors(r *wordle.Region, minWeight float64) {
	first := r.Anchors[0].Ratio
	sum := 0
	for j := range r.Anchors {
		a := &r.Anchors[j]
		if first > 0 {
			a.EWW = a.Ratio * r.WordsWeight / first
		} else {
			a.EWW = r.WordsWeight
		}
		a.EWW = max(a.EWW, minWeight)
		if a.Value < shallowAnchor {
			a.EWN = 0
		} else {
			a.EWN = int(math.Round(a.Ratio * float64(r.WordsNum)))
		}
		sum += a.EWN
	}

	diff := r.WordsNum - sum
	if diff >= 0 {
		r.Anchors[0].EWN += diff
		return
	}
	for j := range r.Anchors {
		take := min(-diff, r.Anchors[j].EWN)
		r.Anchors[j].EWN -= take
		diff += take
		if diff == 0 {
			return
		}
	}
}
