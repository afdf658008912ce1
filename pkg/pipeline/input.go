package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/shapewordle/pkg/cache"
	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/io"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/distfield"
)

// Input is everything a layout is computed from besides the options.
type Input struct {
	Words []wordle.Input  `json:"words"`
	Mask  wordle.Mask     `json:"mask"`
	Field distfield.Field `json:"field"`
}

// LoadInput reads the three input files.
func LoadInput(wordsPath, maskPath, fieldPath string) (Input, error) {
	words, err := io.ReadWordsFile(wordsPath)
	if err != nil {
		return Input{}, err
	}
	mask, err := io.ReadMaskFile(maskPath)
	if err != nil {
		return Input{}, err
	}
	field, err := io.ReadFieldFile(fieldPath)
	if err != nil {
		return Input{}, err
	}
	return Input{Words: words, Mask: mask, Field: field}, nil
}

// Validate checks the input against the canvas size.
func (in Input) Validate(width, height int) error {
	if len(in.Words) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no words given")
	}
	if in.Mask.Width() != width || in.Mask.Height() != height {
		return errors.New(errors.ErrCodeInvalidInput,
			"region mask is %dx%d, canvas is %dx%d", in.Mask.Width(), in.Mask.Height(), width, height)
	}
	if len(in.Field.Samples) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "distance field has no regions")
	}
	return nil
}

// Hash identifies the input for layout caching.
func (in Input) Hash() (string, error) {
	words, err := json.Marshal(in.Words)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash words")
	}
	mask, err := json.Marshal(in.Mask)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash mask")
	}
	field, err := json.Marshal(in.Field)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash distance field")
	}
	return cache.HashParts(words, mask, field), nil
}

// Outlines returns bare regions carrying only the boundaries, enough for
// drawing region outlines without recomputing the layout.
func (in Input) Outlines() []wordle.Region {
	out := make([]wordle.Region, len(in.Field.Boundaries))
	for i, b := range in.Field.Boundaries {
		out[i] = wordle.Region{ID: i, Boundary: b}
	}
	return out
}
