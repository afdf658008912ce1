package errors

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// maxWordLength bounds a single word's name in runes.
const maxWordLength = 64

// ValidateWordName validates a word before it enters the layout.
// Names are trimmed by the caller; the rules here reject input that no glyph
// provider can measure sensibly.
//
// Validation rules:
//   - No empty names (after trimming)
//   - No control characters
//   - Maximum length of 64 runes
func ValidateWordName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidInput, "word name cannot be empty")
	}

	n := 0
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "word %q contains control characters", name)
		}
		n++
	}
	if n > maxWordLength {
		return New(ErrCodeInvalidInput, "word %q too long (max %d characters)", name, maxWordLength)
	}

	return nil
}

// ValidateWeight checks that a word weight is a finite value in [0, 1].
func ValidateWeight(name string, weight float64) error {
	if weight != weight || weight < 0 || weight > 1 {
		return New(ErrCodeInvalidInput, "word %q has weight %v outside [0, 1]", name, weight)
	}
	return nil
}

// ValidateColor checks that s is a CSS hex color (#rgb or #rrggbb).
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if _, err := colorful.Hex(s); err != nil {
		return Wrap(ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return nil
}

// ValidateColors validates every entry of a palette.
func ValidateColors(colors []string) error {
	for _, c := range colors {
		if err := ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath validates a file path supplied through the HTTP API or an
// options file. It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
