// Package cli implements the shapewordle command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Results
// are cached under the XDG cache directory unless --no-cache is given.
//
// # Commands
//
//   - layout: place words inside a shape and write the layout plus artifacts
//   - render: turn a saved layout into SVG, PNG or JSON
//   - inspect: summarise how each region fared, optionally interactively
//   - cache: show, prune or clear the layout cache
//   - serve: run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes per-stage timings of the layout pipeline.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapewordle/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Served 12 requests (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline, placement, cache and HTTP events to a logger.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLayoutStart(_ context.Context, keywordNum, regionCount int) {
	h.logger.Debug("layout started", "keywords", keywordNum, "regions", regionCount)
}

func (h logHooks) OnLayoutComplete(_ context.Context, placed int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("layout complete", "placed", placed, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h logHooks) OnRegionRetry(_ context.Context, regionID, maxFontSize int) {
	h.logger.Debug("region retry", "region", regionID, "maxFontSize", maxFontSize)
}

func (h logHooks) OnRegionRollback(_ context.Context, regionID int) {
	h.logger.Debug("region rolled back", "region", regionID)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h logHooks) OnRequest(context.Context, string, string) {}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("request", "method", method, "path", path, "status", status, "duration", d)
}

// installLogHooks routes every hook family to l.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetPlacementHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

var (
	_ observability.PipelineHooks  = logHooks{}
	_ observability.PlacementHooks = logHooks{}
	_ observability.CacheHooks     = logHooks{}
	_ observability.HTTPHooks      = logHooks{}
)
