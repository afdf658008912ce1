package wordle

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/shapewordle/pkg/errors"
)

const (
	// minKeywordWeight floors keyword weights so tiny words stay legible.
	minKeywordWeight = 0.02

	fillingWeight = 0.05
	fillingCount  = 200

	// fillingOffsetThreshold is the input size from which filling words are
	// drawn from past the keywords instead of repeating them.
	fillingOffsetThreshold = 160
)

// Input is a raw weighted word as supplied by the caller.
type Input struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// NewRNG returns the deterministic source used by every layout phase.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Prepare splits the input into keywords and filling words.
//
// The first KeywordNum entries become keywords: names are trimmed, weights
// are floored at 0.02 and each gets an angle from the configured mode.
// Filling words come from the entries after the keywords when the input is
// large enough, otherwise from the start, and are padded to 200 by random
// duplicates.
func Prepare(in []Input, opts Options, rng *rand.Rand) (keywords, filling Words, err error) {
	if len(in) < opts.KeywordNum {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"at least %d words are required, got %d", opts.KeywordNum, len(in))
	}
	for _, w := range in {
		if err := errors.ValidateWordName(w.Name); err != nil {
			return nil, nil, err
		}
		if err := errors.ValidateWeight(w.Name, w.Weight); err != nil {
			return nil, nil, err
		}
	}

	keywords = make(Words, opts.KeywordNum)
	for i, w := range in[:opts.KeywordNum] {
		weight := max(w.Weight, minKeywordWeight)
		keywords[i] = Word{
			Name:       strings.TrimSpace(w.Name),
			Weight:     weight,
			Color:      opts.KeywordColor,
			FontFamily: opts.FontFamily,
			RegionID:   Unassigned,
			EpID:       Unassigned,
			Angle:      KeywordAngle(weight, opts.AngleMode, rng),
		}
	}

	start := 0
	if len(in) >= fillingOffsetThreshold && opts.KeywordNum < len(in) {
		start = opts.KeywordNum
	}
	end := min(len(in), start+fillingCount)
	src := in[start:end]
	if len(src) == 0 {
		return keywords, nil, nil
	}

	filling = make(Words, 0, fillingCount)
	for _, w := range src {
		filling = append(filling, newFilling(w.Name, opts))
	}
	for len(filling) < fillingCount {
		filling = append(filling, newFilling(src[rng.IntN(len(src))].Name, opts))
	}

	return keywords, filling, nil
}

func newFilling(name string, opts Options) Word {
	return Word{
		Name:       strings.TrimSpace(name),
		Weight:     fillingWeight,
		Color:      opts.FillingWordColor,
		FontFamily: opts.FontFamily,
		Filling:    true,
		RegionID:   Unassigned,
		EpID:       Unassigned,
	}
}

// KeywordAngle picks a keyword's rotation in radians.
// In AngleMixed mode heavy words (weight > 0.5) stay horizontal and the rest
// turn vertical with probability 0.4.
func KeywordAngle(weight float64, mode AngleMode, rng *rand.Rand) float64 {
	switch mode {
	case AngleMixed:
		if weight > 0.5 {
			return 0
		}
		if rng.Float64() > 0.6 {
			return signed(math.Pi/2, rng)
		}
		return 0
	case AngleRandom:
		return uniformAngle(rng)
	case AngleDiagonalUp:
		return math.Pi / 4
	case AngleDiagonalDown:
		return -math.Pi / 4
	case AngleDiagonalMix:
		return signed(math.Pi/4, rng)
	default:
		return 0
	}
}

// FillingAngle picks a filling word's rotation in radians.
// AngleMixed turns half of the words vertical.
func FillingAngle(mode AngleMode, rng *rand.Rand) float64 {
	switch mode {
	case AngleMixed:
		if rng.Float64() > 0.5 {
			return 0
		}
		return signed(math.Pi/2, rng)
	case AngleRandom:
		return uniformAngle(rng)
	case AngleDiagonalUp:
		return math.Pi / 4
	case AngleDiagonalDown:
		return -math.Pi / 4
	case AngleDiagonalMix:
		return signed(math.Pi/4, rng)
	default:
		return 0
	}
}

func uniformAngle(rng *rand.Rand) float64 {
	return rng.Float64()*math.Pi - math.Pi/2
}

func signed(a float64, rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return a
	}
	return -a
}
