package io

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
	"github.com/matzehuels/shapewordle/pkg/wordle/distfield"
)

// ReadMask decodes a region mask from r. The mask must be non-empty and
// rectangular.
func ReadMask(r io.Reader) (wordle.Mask, error) {
	var m wordle.Mask
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode region mask")
	}
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "region mask is empty")
	}
	for y, row := range m {
		if len(row) != len(m[0]) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"region mask row %d has %d columns, want %d", y, len(row), len(m[0]))
		}
	}
	return m, nil
}

// ReadMaskFile reads a region mask from path.
func ReadMaskFile(path string) (wordle.Mask, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMask(f)
}

type fieldJSON struct {
	Boundaries [][]pointJSON  `json:"boundaries"`
	Dists      [][][3]float64 `json:"dists"`
}

// pointJSON accepts both [x, y] and [[x, y]].
type pointJSON wordle.Point

func (p *pointJSON) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[[")) {
		var nested [][2]float64
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		if len(nested) != 1 {
			return errors.New(errors.ErrCodeInvalidFormat, "contour point has %d entries, want 1", len(nested))
		}
		p.X, p.Y = nested[0][0], nested[0][1]
		return nil
	}
	var flat [2]float64
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	p.X, p.Y = flat[0], flat[1]
	return nil
}

// ReadField decodes per-region boundaries and sparse distance samples.
// Sample coordinates must be integral; range checks against the canvas
// happen in [distfield.Process].
func ReadField(r io.Reader) (distfield.Field, error) {
	var raw fieldJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return distfield.Field{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode distance field")
	}

	f := distfield.Field{
		Boundaries: make([][]wordle.Point, len(raw.Boundaries)),
		Samples:    make([][]distfield.Sample, len(raw.Dists)),
	}
	for i, b := range raw.Boundaries {
		pts := make([]wordle.Point, len(b))
		for j, p := range b {
			pts[j] = wordle.Point(p)
		}
		f.Boundaries[i] = pts
	}
	for i, d := range raw.Dists {
		samples := make([]distfield.Sample, len(d))
		for j, s := range d {
			x, y := int(s[0]), int(s[1])
			if float64(x) != s[0] || float64(y) != s[1] {
				return distfield.Field{}, errors.New(errors.ErrCodeInvalidFormat,
					"region %d: sample %d has fractional position (%v, %v)", i, j, s[0], s[1])
			}
			samples[j] = distfield.Sample{X: x, Y: y, Value: s[2]}
		}
		f.Samples[i] = samples
	}
	return f, nil
}

// ReadFieldFile reads a distance field from path.
func ReadFieldFile(path string) (distfield.Field, error) {
	f, err := open(path)
	if err != nil {
		return distfield.Field{}, err
	}
	defer f.Close()
	return ReadField(f)
}
