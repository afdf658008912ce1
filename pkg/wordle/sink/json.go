package sink

import (
	"encoding/json"

	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	regions bool
	indent  string
}

// WithJSONRegions includes the per-region placement reports.
func WithJSONRegions() JSONOption { return func(r *jsonRenderer) { r.regions = true } }

// WithJSONCompact disables pretty-printing.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.indent = "" } }

type jsonOutput struct {
	Width        int                   `json:"width"`
	Height       int                   `json:"height"`
	Seed         uint64                `json:"seed"`
	MaxFontSize  int                   `json:"maxFontSize"`
	Keywords     []wordle.Record       `json:"keywords"`
	FillingWords []wordle.Record       `json:"fillingWords"`
	Regions      []wordle.RegionReport `json:"regions,omitempty"`
}

// RenderJSON exports the layout records as a JSON document with separate
// keyword and filling word lists, the shape external renderers consume.
// It does not modify l and is safe to call concurrently.
func RenderJSON(l wordle.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: "  "}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:        l.Width,
		Height:       l.Height,
		Seed:         l.Seed,
		MaxFontSize:  l.MaxFontSize,
		Keywords:     orEmpty(l.Keywords),
		FillingWords: orEmpty(l.Fillings),
	}
	if r.regions {
		out.Regions = l.Regions
	}

	if r.indent == "" {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", r.indent)
}

func orEmpty(rs []wordle.Record) []wordle.Record {
	if rs == nil {
		return []wordle.Record{}
	}
	return rs
}
