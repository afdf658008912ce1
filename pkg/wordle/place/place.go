// Package place positions keywords inside their regions.
//
// Each region is filled in one pass: words are visited in [Order], seeded
// near their anchor point and moved along an Archimedean spiral until their
// footprint fits the region's exclusion [Grid]. A failed pass restarts every
// region at a smaller maximum font size until the size drops below 10;
// after that the region rolls back to its last complete pass, or keeps the
// words its final pass could place when it never completed one.
package place

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/observability"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

const (
	// minRetryFont is the smallest maximum font size that still triggers a
	// global retry; below it failed regions roll back instead.
	minRetryFont = 10

	// maxMatchPasses bounds the densification passes per region.
	maxMatchPasses = 15

	// maxSeedTries bounds the reject-and-resample loop for seeds.
	maxSeedTries = 2000

	// Spiral parameters: angle step per iteration and radius per radian.
	spiralTurn  = 0.1
	spiralPitch = 0.5

	// shuffledShare of the keywords is interleaved at random positions.
	shuffledShare = 0.25

	// focusWeight is the weight that keeps the wider seed radius.
	focusWeight = 0.8
)

// Config holds the engine's collaborators.
type Config struct {
	Options wordle.Options
	Mask    wordle.Mask
	Glyphs  glyph.Provider
	RNG     *rand.Rand
	Logger  *log.Logger
}

// Engine places keywords. It is not safe for concurrent use.
type Engine struct {
	opts     wordle.Options
	mask     wordle.Mask
	glyphs   glyph.Provider
	rng      *rand.Rand
	logger   *log.Logger
	maxMatch bool

	maxFont int
	ink     []*glyph.Bitmap
}

// New returns an engine for cfg. Max-match placement is only available in
// experimental mode.
func New(cfg Config) (*Engine, error) {
	if cfg.Options.MaxMatch && !cfg.Options.Experimental {
		return nil, errors.New(errors.ErrCodeUnsupported, "max-match placement requires experimental mode")
	}
	if cfg.Glyphs == nil {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "placement needs a glyph provider")
	}
	if cfg.RNG == nil {
		cfg.RNG = wordle.NewRNG(cfg.Options.Seed)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Engine{
		opts:     cfg.Options,
		mask:     cfg.Mask,
		glyphs:   cfg.Glyphs,
		rng:      cfg.RNG,
		logger:   cfg.Logger,
		maxMatch: cfg.Options.MaxMatch,
	}, nil
}

// MaxFont returns the maximum font size the last Run settled on.
func (e *Engine) MaxFont() int { return e.maxFont }

// Order returns the visiting order for n keywords: the first
// n-⌊0.25·keywordNum⌋ indices in natural order with the rest inserted at
// random positions.
func Order(n, keywordNum int, rng *rand.Rand) []int {
	remain := min(n, int(math.Floor(shuffledShare*float64(keywordNum))))
	order := make([]int, 0, n)
	for i := range n - remain {
		order = append(order, i)
	}
	for i := n - remain; i < n; i++ {
		pos := 0
		if len(order) > 0 {
			pos = rng.IntN(len(order))
		}
		order = slices.Insert(order, pos, i)
	}
	return order
}

// Seed picks a starting position near anchor a inside the word's region.
// The sampling radius is value/3 (value/2 for max-match), or value/5 for
// words whose weight is not the focus weight. After maxSeedTries misses
// the anchor itself is used.
func (e *Engine) Seed(w *wordle.Word, a wordle.AnchorPoint) (int, int) {
	radius := a.Value / 3
	if e.maxMatch {
		radius = a.Value / 2
	}
	if math.Abs(w.Weight-focusWeight) > e.opts.Eps {
		radius = a.Value / 5
	}

	span := 2*radius + 1
	for range maxSeedTries {
		x := int(math.Round(e.rng.Float64()*span + float64(a.X) - radius))
		y := int(math.Round(e.rng.Float64()*span + float64(a.Y) - radius))
		if e.mask.At(x, y) == w.RegionID {
			return x, y
		}
	}
	return a.X, a.Y
}

// spiral walks outwards from (sx, sy) and returns the first position where
// fp fits. It gives up once the radius exceeds extent.
func spiral(g *Grid, fp *glyph.Bitmap, sx, sy int, extent float64) (int, int, bool) {
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; ; i++ {
		theta := spiralTurn * float64(i)
		r := spiralPitch * theta
		if r > extent {
			return 0, 0, false
		}
		sin, cos := math.Sincos(theta)
		x := sx + int(math.Round(r*cos))
		y := sy + int(math.Round(r*sin))
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		if g.Fit(fp, x, y) {
			return x, y, true
		}
	}
}

// state is a step of the placement state machine.
type state int

const (
	stateAllocating state = iota
	stateVerifying
	stateRetrySmallerFont
	stateRollback
	stateDone
)

// snapshot holds the position, gap and state of a region's words.
type snapshot struct {
	idx    []int
	x, y   []float64
	gap    []float64
	placed []bool
}

func take(words wordle.Words, idx []int) *snapshot {
	n := len(idx)
	s := &snapshot{idx: idx, x: make([]float64, n), y: make([]float64, n), gap: make([]float64, n), placed: make([]bool, n)}
	for j, i := range idx {
		w := &words[i]
		s.x[j], s.y[j], s.gap[j], s.placed[j] = w.X, w.Y, w.Gap, w.State
	}
	return s
}

func (s *snapshot) restore(words wordle.Words) {
	for j, i := range s.idx {
		w := &words[i]
		w.X, w.Y, w.Gap, w.State = s.x[j], s.y[j], s.gap[j], s.placed[j]
	}
}

// Run places every keyword, starting from maxFont, and returns one report
// per region. Placement failures never surface as errors; they show up as
// unplaced words and rolled-back regions in the reports.
//
// Reads: RegionID, EpID, Weight, Angle, region anchors and bounds.
// Writes: X, Y, State and the metric fields. RegionID and EpID are never
// changed.
func (e *Engine) Run(ctx context.Context, words wordle.Words, regions []wordle.Region, maxFont int) ([]wordle.RegionReport, error) {
	e.maxFont = maxFont
	if err := e.Measure(words, e.maxFont); err != nil {
		return nil, err
	}
	order := Order(len(words), e.opts.KeywordNum, e.rng)
	members := make([][]int, len(regions))
	for _, i := range order {
		if id := words[i].RegionID; id >= 0 && id < len(regions) {
			members[id] = append(members[id], i)
		}
	}
	reports := make([]wordle.RegionReport, len(regions))
	for id := range regions {
		r := &regions[id]
		reports[id] = wordle.RegionReport{ID: id, Area: r.Area, WordsNum: r.WordsNum, WordsWeight: r.WordsWeight, Anchors: r.Anchors}
	}

	lastGood := make([]*snapshot, len(regions))
	st, id, ok := stateAllocating, 0, false
	for st != stateDone {
		switch st {
		case stateAllocating:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if id == len(regions) {
				st = stateDone
				continue
			}
			reports[id].Attempts++
			ok = e.pass(words, regions, id, members[id], baseGap+1, false, e.maxFont < minRetryFont)
			st = stateVerifying

		case stateVerifying:
			switch {
			case ok:
				lastGood[id] = take(words, members[id])
				id++
				st = stateAllocating
			case e.maxFont >= minRetryFont:
				st = stateRetrySmallerFont
			default:
				st = stateRollback
			}

		case stateRetrySmallerFont:
			e.maxFont--
			e.logger.Debug("region failed, retrying with smaller font", "region", id, "maxFontSize", e.maxFont)
			observability.Placement().OnRegionRetry(ctx, id, e.maxFont)
			if err := e.Measure(words, e.maxFont); err != nil {
				return nil, err
			}
			for i := range words {
				words[i].State = false
			}
			id = 0
			st = stateAllocating

		case stateRollback:
			e.rollback(ctx, words, lastGood[id], &reports[id])
			id++
			st = stateAllocating
		}
	}

	if e.maxMatch {
		e.densify(ctx, words, regions, members, reports)
	}
	for id := range reports {
		for _, i := range members[id] {
			if words[i].State {
				reports[id].Placed++
			}
		}
	}
	return reports, nil
}

// rollback restores the region's last complete pass. Without one, the
// words the failed pass did place are kept; they are disjoint on its grid.
func (e *Engine) rollback(ctx context.Context, words wordle.Words, good *snapshot, report *wordle.RegionReport) {
	e.logger.Debug("rolling back region", "region", report.ID, "snapshot", good != nil)
	observability.Placement().OnRegionRollback(ctx, report.ID)
	report.RolledBack = true
	if good != nil {
		good.restore(words)
	}
}

// densify runs up to maxMatchPasses extra passes per region with a growing
// gap, keeping the last pass that placed every word.
func (e *Engine) densify(ctx context.Context, words wordle.Words, regions []wordle.Region, members [][]int, reports []wordle.RegionReport) {
	for id := range regions {
		good := take(words, members[id])
		for pass := 1; pass <= maxMatchPasses; pass++ {
			if ctx.Err() != nil {
				return
			}
			reports[id].Attempts++
			if !e.pass(words, regions, id, members[id], baseGap+1+float64(pass), true, false) {
				e.rollback(ctx, words, good, &reports[id])
				break
			}
			good = take(words, members[id])
		}
	}
}

// pass places the words idx of region id on a fresh grid. With reuse set,
// words placed earlier start from their previous position. With partial set,
// a word that finds no slot is skipped and the rest are still placed;
// otherwise the pass stops at the first failure. It reports whether every
// word found a slot.
func (e *Engine) pass(words wordle.Words, regions []wordle.Region, id int, idx []int, gap float64, reuse, partial bool) bool {
	r := &regions[id]
	g := NewGrid(e.mask, id)
	extent := math.Hypot(float64(r.Bounds.Dx()), float64(r.Bounds.Dy()))
	ok := true
	if !reuse {
		for _, i := range idx {
			words[i].State = false
		}
	}

	for _, i := range idx {
		w := &words[i]
		var sx, sy int
		if reuse && w.State {
			sx, sy = int(math.Round(w.X)), int(math.Round(w.Y))
		} else {
			sx, sy = e.Seed(w, anchorFor(r, w))
		}
		w.State = false
		w.Gap = gap

		fp := e.Footprint(words, i)
		x, y, found := spiral(g, fp, sx, sy, extent)
		if !found {
			if !partial {
				return false
			}
			ok = false
			continue
		}
		g.Mark(fp, x, y)
		w.X, w.Y, w.State = float64(x), float64(y), true
	}
	return ok
}

// anchorFor returns the word's anchor, falling back to the region's first
// anchor and then to the center of its bounds.
func anchorFor(r *wordle.Region, w *wordle.Word) wordle.AnchorPoint {
	switch {
	case w.EpID >= 0 && w.EpID < len(r.Anchors):
		return r.Anchors[w.EpID]
	case len(r.Anchors) > 0:
		return r.Anchors[0]
	}
	c := r.Bounds.Min.Add(r.Bounds.Max).Div(2)
	return wordle.AnchorPoint{X: c.X, Y: c.Y, RegionID: r.ID}
}
