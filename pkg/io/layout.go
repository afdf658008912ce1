package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// WriteLayout encodes l as indented JSON. It can be read back with
// [ReadLayout].
func WriteLayout(l wordle.Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return nil
}

// WriteLayoutFile writes l to path, replacing any existing file.
func WriteLayoutFile(l wordle.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := WriteLayout(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadLayout decodes a layout written by [WriteLayout].
func ReadLayout(r io.Reader) (wordle.Layout, error) {
	var l wordle.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return wordle.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return wordle.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout has invalid size %dx%d", l.Width, l.Height)
	}
	return l, nil
}

// ReadLayoutFile reads a layout from path.
func ReadLayoutFile(path string) (wordle.Layout, error) {
	f, err := open(path)
	if err != nil {
		return wordle.Layout{}, err
	}
	defer f.Close()
	return ReadLayout(f)
}
