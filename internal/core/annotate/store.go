package annotate

import (
	"context"
	"errors"
)

// Sentinel errors for annotation operations.
var (
	ErrNotFound = errors.New("annotation not found")
)

// Store defines persistence operations for annotations.
type Store interface {
	// Save inserts a new annotation.
	Save(ctx context.Context, a Annotation) error

	// ListByBook returns all annotations for a book, ordered by chapter,
	// block, and range start.
	ListByBook(ctx context.Context, bookID string) ([]Annotation, error)

	// ListByChapter returns a book's annotations in one chapter, ordered
	// by block and range start.
	ListByChapter(ctx context.Context, bookID, chapterID string) ([]Annotation, error)

	// Update replaces the note text of an existing annotation.
	// Returns ErrNotFound if the annotation does not exist.
	Update(ctx context.Context, id, note string) error

	// Delete removes an annotation.
	// Returns ErrNotFound if the annotation does not exist.
	Delete(ctx context.Context, id string) error
}
