// Package io reads the inputs of a shape word cloud and reads and writes
// finished layouts as JSON.
//
// # Input Formats
//
// Words are a JSON array of weighted entries, sorted by the caller:
//
//	[{"name": "cloud", "weight": 1}, {"name": "shape", "weight": 0.6}]
//
// The region mask is a row-major array of labels, one row per canvas line.
// Labels >= 0 name a region, negative labels are background:
//
//	[[-1, -1, 0, 0], [-1, 0, 0, 1]]
//
// The distance field carries one boundary polygon and one sparse sample list
// per region. Samples are [x, y, value] triples with negative values inside
// the shape. Boundary points may be written as [x, y] or as the contour form
// [[x, y]] produced by common image libraries:
//
//	{
//	  "boundaries": [[[[12, 4]], [[13, 4]]]],
//	  "dists": [[[12, 5, -1.0], [13, 5, -1.4]]]
//	}
//
// # Layouts
//
// [WriteLayout] and [ReadLayout] round-trip a [wordle.Layout] including its
// region reports, which is the format the CLI's render command consumes.
//
// Every reader wraps decode failures with [errors.ErrCodeInvalidFormat] so
// callers can tell bad input from I/O failures.
package io
