// Package pipeline runs a complete shape word cloud: input validation,
// keyword layout, filling words and rendering.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: distance field → region allocation → font scale → keyword
//     placement → filling words, producing a [wordle.Layout]
//  2. Render: turn the layout into SVG, PNG or JSON artifacts
//
// Both stages are cached by a [Runner]: layouts by a hash of the input and
// every layout option, artifacts by a hash of the layout and the render
// options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	in, err := pipeline.LoadInput("words.json", "mask.json", "dist.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, in, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapewordle/pkg/cache"
	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/sink"
)

// DefaultSeed is used when no seed is given, so repeated runs agree.
const DefaultSeed = uint64(42)

// Region weighting plans.
const (
	PlanArea  = "area"  // weight ceiling from region area
	PlanValue = "value" // weight ceiling from region peak depth
)

// Glyph providers.
const (
	GlyphsOpenType = "opentype"
	GlyphsMono     = "mono"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options configures a pipeline run. Zero values mean "use the default";
// the struct is shared by the options file, the CLI and the HTTP API.
type Options struct {
	// Layout options
	KeywordNum       int      `json:"keyword_num,omitempty" toml:"keyword_num"`
	KeywordColor     string   `json:"keyword_color,omitempty" toml:"keyword_color"`
	FillingWordColor string   `json:"filling_word_color,omitempty" toml:"filling_word_color"`
	FontFamily       string   `json:"font_family,omitempty" toml:"font_family"`
	Width            int      `json:"width,omitempty" toml:"width"`
	Height           int      `json:"height,omitempty" toml:"height"`
	Colors           []string `json:"colors,omitempty" toml:"colors"`
	Plan             string   `json:"plan,omitempty" toml:"plan"`
	MaxFontSize      int      `json:"max_font_size,omitempty" toml:"max_font_size"`
	MinFontSize      int      `json:"min_font_size,omitempty" toml:"min_font_size"`
	FillingFontSize  int      `json:"filling_font_size,omitempty" toml:"filling_font_size"`
	AngleMode        int      `json:"angle_mode,omitempty" toml:"angle_mode"`
	MaxMatch         bool     `json:"max_match,omitempty" toml:"max_match"`
	Experimental     bool     `json:"experimental,omitempty" toml:"experimental"`
	Eps              float64  `json:"eps,omitempty" toml:"eps"`
	Seed             uint64   `json:"seed,omitempty" toml:"seed"`

	// Glyph options
	Glyphs    string            `json:"glyphs,omitempty" toml:"glyphs"`
	FontFiles map[string]string `json:"-" toml:"font_files"` // family → TTF/OTF path

	// Render options
	Formats    []string `json:"formats,omitempty" toml:"formats"`
	Scale      float64  `json:"scale,omitempty" toml:"scale"`
	Background string   `json:"background,omitempty" toml:"background"`
	Outlines   bool     `json:"outlines,omitempty" toml:"outlines"`
	NoFillings bool     `json:"no_fillings,omitempty" toml:"no_fillings"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout wordle.Layout

	// InputHash identifies the words, mask and distance field.
	InputHash string

	// LayoutHash is the content hash of the layout, used for artifact keys
	// and as the document id of stored layouts.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records sizes and per-stage durations.
type Stats struct {
	Regions     int
	Keywords    int
	Placed      int
	Fillings    int
	MaxFontSize int

	FieldTime  time.Duration
	AllocTime  time.Duration
	PlaceTime  time.Duration
	FillTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePlan checks a region weighting plan.
func ValidatePlan(plan string) error {
	if plan != PlanArea && plan != PlanValue {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid plan: %q (must be one of: area, value)", plan)
	}
	return nil
}

// ValidateGlyphs checks a glyph provider name.
func ValidateGlyphs(glyphs string) error {
	if glyphs != GlyphsOpenType && glyphs != GlyphsMono {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid glyphs: %q (must be one of: opentype, mono)", glyphs)
	}
	return nil
}

// ValidateAndSetDefaults applies all defaults and validates the result.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout options from [wordle.DefaultOptions].
func (o *Options) SetLayoutDefaults() {
	d := wordle.DefaultOptions()
	if o.KeywordNum == 0 {
		o.KeywordNum = d.KeywordNum
	}
	if o.KeywordColor == "" {
		o.KeywordColor = d.KeywordColor
	}
	if o.FillingWordColor == "" {
		o.FillingWordColor = d.FillingWordColor
	}
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if len(o.Colors) == 0 {
		o.Colors = d.Colors
	}
	if o.Plan == "" {
		o.Plan = PlanArea
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = d.MaxFontSize
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = d.MinFontSize
	}
	if o.FillingFontSize == 0 {
		o.FillingFontSize = d.FillingFontSize
	}
	if o.Eps == 0 {
		o.Eps = d.Eps
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Glyphs == "" {
		o.Glyphs = GlyphsOpenType
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and validates layout options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidatePlan(o.Plan); err != nil {
		return err
	}
	if err := ValidateGlyphs(o.Glyphs); err != nil {
		return err
	}
	for family, path := range o.FontFiles {
		if family == "" {
			return errors.New(errors.ErrCodeInvalidOptions, "font file %s has no family name", path)
		}
	}
	return o.LayoutOptions().Validate()
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "scale must be positive, got %v", o.Scale)
	}
	if o.Background != "" {
		return errors.ValidateColor(o.Background)
	}
	return nil
}

// LayoutOptions converts o to the layout engine's options.
func (o *Options) LayoutOptions() wordle.Options {
	return wordle.Options{
		KeywordNum:       o.KeywordNum,
		KeywordColor:     o.KeywordColor,
		FillingWordColor: o.FillingWordColor,
		FontFamily:       o.FontFamily,
		Width:            o.Width,
		Height:           o.Height,
		Colors:           slices.Clone(o.Colors),
		PlanA:            o.Plan != PlanValue,
		MaxFontSize:      o.MaxFontSize,
		MinFontSize:      o.MinFontSize,
		FillingFontSize:  o.FillingFontSize,
		AngleMode:        wordle.AngleMode(o.AngleMode),
		MaxMatch:         o.MaxMatch,
		Experimental:     o.Experimental,
		Eps:              o.Eps,
		Seed:             o.Seed,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		KeywordNum:       o.KeywordNum,
		KeywordColor:     o.KeywordColor,
		FillingWordColor: o.FillingWordColor,
		FontFamily:       o.FontFamily,
		Width:            o.Width,
		Height:           o.Height,
		Colors:           o.Colors,
		PlanA:            o.Plan != PlanValue,
		MaxFontSize:      o.MaxFontSize,
		MinFontSize:      o.MinFontSize,
		FillingFontSize:  o.FillingFontSize,
		AngleMode:        o.AngleMode,
		MaxMatch:         o.MaxMatch,
		Experimental:     o.Experimental,
		Eps:              o.Eps,
		Seed:             o.Seed,
		Glyphs:           o.Glyphs,
		FontHash:         fontHash(o.FontFiles),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		Outlines:   o.Outlines,
		NoFillings: o.NoFillings,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// fontHash identifies the registered font files by family and path.
func fontHash(files map[string]string) string {
	if len(files) == 0 {
		return ""
	}
	families := make([]string, 0, len(files))
	for f := range files {
		families = append(families, f)
	}
	slices.Sort(families)
	parts := make([][]byte, 0, 2*len(families))
	for _, f := range families {
		parts = append(parts, []byte(f), []byte(files[f]))
	}
	return cache.HashParts(parts...)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d keywords in %d regions, %d filling words, max font %d",
		s.Placed, s.Keywords, s.Regions, s.Fillings, s.MaxFontSize)
}
