package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// ReadWords decodes a JSON word list from r. Entries are validated for name
// and weight but kept in input order.
func ReadWords(r io.Reader) ([]wordle.Input, error) {
	var words []wordle.Input
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode words")
	}
	for i, w := range words {
		if err := errors.ValidateWordName(w.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "word %d", i)
		}
		if err := errors.ValidateWeight(w.Name, w.Weight); err != nil {
			return nil, err
		}
	}
	return words, nil
}

// ReadWordsFile reads a JSON word list from path.
func ReadWordsFile(path string) ([]wordle.Input, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	return f, nil
}
