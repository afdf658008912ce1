package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/shapewordle/pkg/wordle"
)

func sampleLayout() wordle.Layout {
	return wordle.Layout{
		Width:       120,
		Height:      80,
		Seed:        42,
		MaxFontSize: 24,
		Keywords: []wordle.Record{
			{Name: "Go", Kind: wordle.KindKeyword, FontSize: 24, Color: "#000000", Alpha: 1, TransX: 60, TransY: 40, FillX: -14, FillY: 8},
		},
		Fillings: []wordle.Record{
			{Name: "a<b", Kind: wordle.KindFilling, FontSize: 8, Color: "#e5352b", Alpha: 0.7, Rotate: 1.5707963267948966, TransX: 20, TransY: 20, FillX: -6, FillY: 3},
		},
		Regions: []wordle.RegionReport{{ID: 0, Area: 9600, WordsNum: 1, Placed: 1}},
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleLayout())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 120 || out.Height != 80 {
		t.Errorf("size = %dx%d, want 120x80", out.Width, out.Height)
	}
	if len(out.Keywords) != 1 || len(out.FillingWords) != 1 {
		t.Errorf("records = %d keywords, %d filling, want 1 and 1", len(out.Keywords), len(out.FillingWords))
	}
	if out.Regions != nil {
		t.Error("regions should be omitted by default")
	}
	if !bytes.Contains(data, []byte(`"transX": 60`)) {
		t.Errorf("output should use the record field names:\n%s", data)
	}
}

func TestRenderJSONOptions(t *testing.T) {
	data, err := RenderJSON(wordle.Layout{Width: 10, Height: 10}, WithJSONRegions(), WithJSONCompact())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Error("compact output should be a single line")
	}
	if !bytes.Contains(data, []byte(`"keywords":[]`)) {
		t.Errorf("empty keyword list should encode as [], got %s", data)
	}
}

func TestRenderSVG(t *testing.T) {
	l := sampleLayout()
	svg := string(RenderSVG(l,
		WithBackground("#ffffff"),
		WithOutlines([]wordle.Region{{ID: 0, Boundary: []wordle.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}}}),
	))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 80"`) {
		t.Errorf("unexpected header: %.80s", svg)
	}
	if got := strings.Count(svg, "<text "); got != 2 {
		t.Errorf("text elements = %d, want 2", got)
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Error("names should be XML-escaped")
	}
	if !strings.Contains(svg, "rotate(90.00)") {
		t.Error("rotation should be written in degrees")
	}
	if !strings.Contains(svg, `fill-opacity="0.70"`) {
		t.Error("filling alpha should become fill-opacity")
	}
	if !strings.Contains(svg, `<polygon class="region" data-region="0"`) {
		t.Error("outline should be drawn")
	}
}

func TestRenderSVGWithoutFillings(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithoutFillings()))
	if got := strings.Count(svg, "<text "); got != 1 {
		t.Errorf("text elements = %d, want 1", got)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(sampleLayout(), WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 240 || b.Dy() != 160 {
		t.Fatalf("size = %dx%d, want 240x160", b.Dx(), b.Dy())
	}

	ink := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("keyword should leave dark pixels on the canvas")
	}
}

func TestRenderPNGErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []PNGOption
	}{
		{"zero scale", []PNGOption{WithScale(0)}},
		{"bad background", []PNGOption{WithPNGBackground("white")}},
		{"bad font", []PNGOption{WithFont([]byte("nope"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderPNG(sampleLayout(), tt.opts...); err == nil {
				t.Error("RenderPNG() should fail")
			}
		})
	}
}
