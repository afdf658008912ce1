package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/sink"
)

// Render generates artifacts in every requested format. outlines may be nil;
// it is only drawn into SVG output when opts.Outlines is set.
func Render(l wordle.Layout, outlines []wordle.Region, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		t := time.Now()
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOptions(outlines, opts)...)
		case FormatPNG:
			var popts []sink.PNGOption
			if popts, err = pngOptions(opts); err == nil {
				data, err = sink.RenderPNG(l, popts...)
			}
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONRegions())
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", time.Since(t))
	}
	return artifacts, nil
}

func svgOptions(outlines []wordle.Region, opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Background != "" {
		out = append(out, sink.WithBackground(opts.Background))
	}
	if opts.FontFamily != "" {
		out = append(out, sink.WithFontFamily(opts.FontFamily))
	}
	if opts.Outlines && len(outlines) > 0 {
		out = append(out, sink.WithOutlines(outlines))
	}
	if opts.NoFillings {
		out = append(out, sink.WithoutFillings())
	}
	return out
}

func pngOptions(opts Options) ([]sink.PNGOption, error) {
	out := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if path, ok := opts.FontFiles[opts.FontFamily]; ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read font %s", path)
		}
		out = append(out, sink.WithFont(data))
	}
	if opts.Background != "" {
		out = append(out, sink.WithPNGBackground(opts.Background))
	}
	if opts.NoFillings {
		out = append(out, sink.WithoutPNGFillings())
	}
	return out, nil
}
