// Package sink renders a computed [wordle.Layout] into output formats.
//
// # Overview
//
// Every record in a layout already carries its final geometry, so sinks
// never re-measure text. Each record is drawn by translating to
// (TransX, TransY), rotating by Rotate radians and drawing the text with its
// left baseline at (FillX, FillY). Keywords are painted first, filling words
// on top.
//
// This package provides:
//
//   - JSON: the layout records for external renderers ([RenderJSON])
//   - SVG: scalable vector output ([RenderSVG])
//   - PNG: raster output drawn with gogpu/gg ([RenderPNG])
//
// Basic usage:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithBackground("#ffffff"),
//	    sink.WithOutlines(regions),
//	)
//	png, err := sink.RenderPNG(layout, sink.WithScale(4))
//
// # Adding New Formats
//
// To add a new output format, write a func RenderFoo(l wordle.Layout,
// opts ...FooOption) ([]byte, error), walk l.Records() and register the
// format in internal/cli/render.go.
//
// [wordle.Layout]: github.com/matzehuels/shapewordle/pkg/wordle.Layout
package sink
