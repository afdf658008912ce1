package wordle

import (
	"github.com/matzehuels/shapewordle/pkg/errors"
)

// AngleMode selects the rotation policy for keywords and filling words.
type AngleMode int

const (
	AngleHorizontal   AngleMode = iota // every word horizontal
	AngleMixed                         // horizontal with some vertical words
	AngleRandom                        // uniform in [-π/2, π/2]
	AngleDiagonalUp                    // +π/4
	AngleDiagonalDown                  // -π/4
	AngleDiagonalMix                   // random ±π/4
)

// Valid reports whether m is a known mode.
func (m AngleMode) Valid() bool { return m >= AngleHorizontal && m <= AngleDiagonalMix }

// Default layout parameters.
const (
	DefaultKeywordNum      = 60
	DefaultWidth           = 900
	DefaultHeight          = 600
	DefaultMaxFontSize     = 100
	DefaultMinFontSize     = 2
	DefaultFillingFontSize = 10
	DefaultEps             = 1e-7
	DefaultFontFamily      = "siyuan"
	DefaultColor           = "#000000"
)

// DefaultPalette colors keywords whose region is picked by fallback.
var DefaultPalette = []string{
	"#000000", "#e5352b", "#e990ab", "#ffd616", "#96cbb3", "#91be3e",
	"#39a6dd", "#eb0973", "#dde2e0", "#949483", "#f47b7b", "#9f1f5c",
	"#ef9020", "#00af3e", "#85b7e2", "#29245c", "#00af3e",
}

// Options configures a single layout run.
type Options struct {
	KeywordNum       int
	KeywordColor     string
	FillingWordColor string
	FontFamily       string
	Width            int
	Height           int
	Colors           []string

	// PlanA weights regions by area; otherwise by peak distance value.
	PlanA bool

	MaxFontSize     int
	MinFontSize     int
	FillingFontSize int
	AngleMode       AngleMode

	// MaxMatch enables the area-exact fill policy. It is only honoured
	// together with Experimental.
	MaxMatch     bool
	Experimental bool

	Eps  float64
	Seed uint64
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		KeywordNum:       DefaultKeywordNum,
		KeywordColor:     DefaultColor,
		FillingWordColor: DefaultColor,
		FontFamily:       DefaultFontFamily,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Colors:           append([]string(nil), DefaultPalette...),
		PlanA:            true,
		MaxFontSize:      DefaultMaxFontSize,
		MinFontSize:      DefaultMinFontSize,
		FillingFontSize:  DefaultFillingFontSize,
		AngleMode:        AngleHorizontal,
		Eps:              DefaultEps,
	}
}

// Validate checks o for values no layout can run with.
func (o Options) Validate() error {
	switch {
	case o.KeywordNum <= 0:
		return errors.New(errors.ErrCodeInvalidOptions, "keyword count must be positive, got %d", o.KeywordNum)
	case o.Width < 5 || o.Height < 5:
		return errors.New(errors.ErrCodeInvalidOptions, "canvas %dx%d too small (min 5x5)", o.Width, o.Height)
	case o.MinFontSize <= 0:
		return errors.New(errors.ErrCodeInvalidOptions, "min font size must be positive, got %d", o.MinFontSize)
	case o.MaxFontSize < o.MinFontSize:
		return errors.New(errors.ErrCodeInvalidOptions, "max font size %d below min font size %d", o.MaxFontSize, o.MinFontSize)
	case !o.AngleMode.Valid():
		return errors.New(errors.ErrCodeInvalidOptions, "unknown angle mode %d", o.AngleMode)
	case len(o.Colors) == 0:
		return errors.New(errors.ErrCodeInvalidOptions, "palette cannot be empty")
	case o.Eps <= 0:
		return errors.New(errors.ErrCodeInvalidOptions, "eps must be positive")
	}
	if o.MaxMatch && !o.Experimental {
		return errors.New(errors.ErrCodeUnsupported, "max-match allocation is experimental; enable experimental mode to use it")
	}
	if err := errors.ValidateColor(o.KeywordColor); err != nil {
		return err
	}
	if err := errors.ValidateColor(o.FillingWordColor); err != nil {
		return err
	}
	return errors.ValidateColors(o.Colors)
}
