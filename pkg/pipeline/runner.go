package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapewordle/pkg/cache"
	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/observability"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Glyphs overrides the provider chosen by Options.Glyphs.
	Glyphs glyph.Provider
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs layout and render, each served from cache when possible.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	layout, hit, err := r.LayoutWithCacheInfo(ctx, in, opts, result)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"keywords", len(layout.Keywords),
		"fillings", len(layout.Fillings),
		"maxFontSize", layout.MaxFontSize,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, layout, in.Outlines(), opts)
	result.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.LayoutHash, _ = layoutHash(layout)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo returns the layout for in, from cache unless
// opts.Refresh is set. When result is non-nil its hash and stats fields are
// filled in.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, in Input, opts Options, result *Result) (wordle.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return wordle.Layout{}, false, err
	}
	if result == nil {
		result = &Result{}
	}

	inputHash, err := in.Hash()
	if err != nil {
		return wordle.Layout{}, false, err
	}
	result.InputHash = inputHash
	key := r.Keyer.LayoutKey(inputHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached wordle.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				result.Stats = statsOf(cached)
				return cached, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	glyphs, err := r.glyphs(opts)
	if err != nil {
		return wordle.Layout{}, false, err
	}
	layout, stats, err := ComputeLayout(ctx, in, opts, glyphs)
	if err != nil {
		return wordle.Layout{}, false, err
	}
	result.Stats = stats

	if data, err := json.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return layout, false, nil
}

// Layout is LayoutWithCacheInfo without the cache information.
func (r *Runner) Layout(ctx context.Context, in Input, opts Options) (wordle.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, in, opts, nil)
	return l, err
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts only when all of them are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l wordle.Layout, outlines []wordle.Region, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hash, err := layoutHash(l)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, key)
				break
			}
			observability.Cache().OnCacheHit(ctx, key)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(l, outlines, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache information.
func (r *Runner) Render(ctx context.Context, l wordle.Layout, outlines []wordle.Region, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, outlines, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// glyphs returns the runner's provider or builds the one opts asks for.
func (r *Runner) glyphs(opts Options) (glyph.Provider, error) {
	if r.Glyphs != nil {
		return r.Glyphs, nil
	}
	return NewGlyphProvider(opts)
}

// NewGlyphProvider builds the provider named by opts.Glyphs, with
// opts.FontFiles registered and measurements memoized.
func NewGlyphProvider(opts Options) (glyph.Provider, error) {
	if opts.Glyphs == GlyphsMono {
		return glyph.NewMonoProvider(), nil
	}
	p, err := glyph.NewOpenTypeProvider()
	if err != nil {
		return nil, err
	}
	for family, path := range opts.FontFiles {
		if err := p.RegisterFile(family, path); err != nil {
			return nil, err
		}
	}
	return glyph.NewCached(p, 0), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func layoutHash(l wordle.Layout) (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("serialize layout for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// statsOf rebuilds the size fields of Stats from a cached layout.
func statsOf(l wordle.Layout) Stats {
	return Stats{
		Regions:     len(l.Regions),
		Placed:      len(l.Keywords),
		Fillings:    len(l.Fillings),
		MaxFontSize: l.MaxFontSize,
	}
}
