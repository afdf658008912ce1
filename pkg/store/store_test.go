package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	doc := &Document{
		LayoutHash: "abc",
		Layout:     wordle.Layout{Width: 90, Height: 60},
		Outlines:   [][]wordle.Point{{{X: 1, Y: 2}}},
	}
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if !ValidID(doc.ID) {
		t.Errorf("ID = %q, want a uuid", doc.ID)
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Layout.Width != 90 || got.LayoutHash != "abc" {
		t.Errorf("Get() = %+v, want the stored document", got)
	}
	if regions := got.Regions(); len(regions) != 1 || regions[0].Boundary[0].Y != 2 {
		t.Errorf("Regions() = %+v, want one outline", regions)
	}

	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() after Delete error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range 4 {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if err := s.Put(ctx, &Document{LayoutHash: string(rune('a' + i))}); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(docs))
	}
	if docs[0].LayoutHash != "d" || docs[2].LayoutHash != "b" {
		t.Errorf("order = %s %s %s, want newest first", docs[0].LayoutHash, docs[1].LayoutHash, docs[2].LayoutHash)
	}
}

func TestPutKeepsExplicitID(t *testing.T) {
	s := NewMemoryStore()
	doc := &Document{ID: "fixed"}
	s.Put(context.Background(), doc)
	if doc.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", doc.ID)
	}
	if ValidID("fixed") {
		t.Error("ValidID(fixed) should be false")
	}
}

func TestNewMongoStoreBadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewMongoStore(ctx, MongoConfig{URI: "not-a-mongo-uri"}); err == nil {
		t.Error("NewMongoStore() with a malformed URI should fail")
	}
}
