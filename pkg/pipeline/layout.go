package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/observability"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/alloc"
	"github.com/matzehuels/shapewordle/pkg/wordle/distfield"
	"github.com/matzehuels/shapewordle/pkg/wordle/fill"
	"github.com/matzehuels/shapewordle/pkg/wordle/fontscale"
	"github.com/matzehuels/shapewordle/pkg/wordle/place"
)

// ComputeLayout runs every layout stage without caching. A region that
// cannot hold its keywords is not an error: it shows up as rolled back in
// the layout's region reports.
func ComputeLayout(ctx context.Context, in Input, opts Options, glyphs glyph.Provider) (l wordle.Layout, stats Stats, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return wordle.Layout{}, Stats{}, err
	}
	if glyphs == nil {
		return wordle.Layout{}, Stats{}, errors.New(errors.ErrCodeInvalidOptions, "layout needs a glyph provider")
	}
	if err := in.Validate(opts.Width, opts.Height); err != nil {
		return wordle.Layout{}, Stats{}, err
	}
	logger := opts.Logger
	wopts := opts.LayoutOptions()
	rng := wordle.NewRNG(wopts.Seed)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, wopts.KeywordNum, len(in.Field.Samples))
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, stats.Placed, time.Since(start), err)
	}()

	keywords, filling, err := wordle.Prepare(in.Words, wopts, rng)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	stats.Keywords = len(keywords)

	t := time.Now()
	regions, err := distfield.Process(ctx, in.Field, wopts.Width, wopts.Height)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	stats.Regions = len(regions)
	stats.FieldTime = time.Since(t)
	logger.Debug("processed distance field", "regions", len(regions), "duration", stats.FieldTime)

	t = time.Now()
	cursor, err := alloc.ComputeAreas(regions, in.Mask, keywords, wopts)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	alloc.AssignRegions(regions, keywords, cursor, wopts.Colors)
	if err := alloc.AssignAnchors(regions, keywords); err != nil {
		return wordle.Layout{}, stats, err
	}

	solve := fontscale.Solve
	if wopts.MaxMatch {
		solve = fontscale.SolveMaxMatch
	}
	maxFont, err := solve(regions, keywords, wopts.MaxFontSize, wopts.MinFontSize, glyphs)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	stats.AllocTime = time.Since(t)
	logger.Debug("allocated regions", "maxFontSize", maxFont, "duration", stats.AllocTime)

	t = time.Now()
	engine, err := place.New(place.Config{
		Options: wopts,
		Mask:    in.Mask,
		Glyphs:  glyphs,
		RNG:     rng,
		Logger:  logger,
	})
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	reports, err := engine.Run(ctx, keywords, regions, maxFont)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	stats.PlaceTime = time.Since(t)
	stats.MaxFontSize = engine.MaxFont()

	l = wordle.Layout{
		Width:       wopts.Width,
		Height:      wopts.Height,
		Seed:        wopts.Seed,
		MaxFontSize: engine.MaxFont(),
		Regions:     reports,
	}
	for i := range keywords {
		if keywords[i].State {
			l.Keywords = append(l.Keywords, wordle.KeywordRecord(&keywords[i]))
		}
	}
	stats.Placed = len(l.Keywords)
	for _, r := range reports {
		if r.RolledBack {
			logger.Warn("region rolled back", "region", r.ID, "placed", r.Placed, "words", r.WordsNum)
		}
	}
	logger.Debug("placed keywords", "placed", stats.Placed, "of", stats.Keywords, "duration", stats.PlaceTime)

	t = time.Now()
	grid, err := fill.NewGrid(in.Mask, keywords, glyphs)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	records, err := fill.NewEngine(grid, glyphs, wopts.AngleMode, rng).Run(filling, wopts.FillingFontSize)
	if err != nil {
		return wordle.Layout{}, stats, err
	}
	l.Fillings = records
	stats.Fillings = len(records)
	stats.FillTime = time.Since(t)
	stats.LayoutTime = time.Since(start)
	logger.Debug("packed filling words", "placed", stats.Fillings, "duration", stats.FillTime)

	return l, stats, nil
}
