// Package store keeps finished layouts addressable by id, so the HTTP API
// can hand out a layout once and serve its renderings later.
//
// [MemoryStore] serves single-instance deployments and tests;
// [MongoStore] shares documents between server instances.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// Document is one stored layout.
type Document struct {
	ID         string        `json:"id" bson:"_id"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	InputHash  string        `json:"input_hash" bson:"input_hash"`
	LayoutHash string        `json:"layout_hash" bson:"layout_hash"`
	Layout     wordle.Layout `json:"layout" bson:"layout"`

	// Outlines are the region boundaries, kept for outline rendering.
	Outlines [][]wordle.Point `json:"outlines,omitempty" bson:"outlines,omitempty"`
}

// Regions returns the outlines as bare regions for the SVG renderer.
func (d *Document) Regions() []wordle.Region {
	out := make([]wordle.Region, len(d.Outlines))
	for i, b := range d.Outlines {
		out[i] = wordle.Region{ID: i, Boundary: b}
	}
	return out
}

// Store persists layout documents.
type Store interface {
	// Put saves doc, assigning an id and creation time when unset.
	Put(ctx context.Context, doc *Document) error

	// Get returns the document with id or an error with code NOT_FOUND.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns up to limit documents, newest first.
	List(ctx context.Context, limit int) ([]Document, error)

	Delete(ctx context.Context, id string) error
	Close() error
}

// prepare fills in the id and timestamp of a new document.
func prepare(doc *Document, now time.Time) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now.UTC()
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}

// ValidID reports whether id has the form Put assigns.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
