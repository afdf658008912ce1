// Package pkg provides the core libraries for Shapewordle shape-filling word
// clouds.
//
// # Overview
//
// Shapewordle places weighted words inside one or more shape regions. The
// most important words (keywords) grow outward from the deepest interior
// points of each region; a few hundred small filling words then pack the
// space that is left. The pkg directory is organized into three areas:
//
//  1. [wordle] - Layout engine (distance fields, allocation, font scaling,
//     placement, filling) and its output sinks
//  2. [pipeline] - Orchestration (load → layout → render) with caching
//  3. Infrastructure - [cache], [store], [server], [observability], [errors]
//
// # Architecture
//
// The data flow of a single run:
//
//	words.json + mask.json + field.json
//	         ↓
//	    [io] package (decode and validate inputs)
//	         ↓
//	    [wordle/distfield] (smooth distances, find anchor points)
//	         ↓
//	    [wordle/alloc] (region and anchor quotas)
//	         ↓
//	    [wordle/fontscale] (weight → font size)
//	         ↓
//	    [wordle/place] (spiral search around anchors)
//	         ↓
//	    [wordle/fill] (pack filling words)
//	         ↓
//	    [wordle/sink] (SVG, PNG, JSON)
//
// # Quick Start
//
//	in, _ := pipeline.LoadInput("words.json", "mask.json", "field.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, in, pipeline.Options{
//	    KeywordNum: 40,
//	    Formats:    []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("wordle.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Main Packages
//
// [wordle] - Shared records (regions, anchors, words, grids) and the default
// options. Subpackages implement one phase each and document which word
// fields they read and write.
//
// [glyph] - Text measurement and occupancy masks. OpenType fonts through
// golang.org/x/image, a deterministic monospace provider for tests, and an
// LRU wrapper.
//
// [io] - JSON readers for words, masks and distance fields, and the layout
// file format.
//
// [pipeline] - Options (TOML and JSON), validation, layout and render stages,
// and the caching Runner shared by the CLI and the HTTP API.
//
// [cache] - Key/value cache interface with file, Redis and null backends.
//
// [store] - Layout documents in memory or MongoDB.
//
// [server] - chi-based HTTP API for creating and rendering layouts.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/wordle/...   # Layout engine only
//	go test -run Example       # Examples only
//
// [wordle]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle
// [wordle/distfield]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle/distfield
// [wordle/alloc]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle/alloc
// [wordle/fontscale]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle/fontscale
// [wordle/place]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle/place
// [wordle/fill]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle/fill
// [wordle/sink]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/wordle/sink
// [glyph]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/glyph
// [io]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/shapewordle/pkg/errors
package pkg
