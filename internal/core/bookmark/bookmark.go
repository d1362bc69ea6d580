// Package bookmark defines named reading positions and per-book reading
// progress. Positions are stream offsets within a chapter, the same
// coordinate space used by selection and search.
package bookmark

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for bookmark operations.
var (
	ErrNotFound = errors.New("bookmark not found")
)

// Bookmark is a named position within a book.
type Bookmark struct {
	ID        string
	BookID    string
	ChapterID string
	Offset    int
	Name      string
	CreatedAt time.Time
}

// Progress records where a book was last left open.
type Progress struct {
	BookID    string
	ChapterID string
	Offset    int
	UpdatedAt time.Time
}

// Store defines persistence operations for bookmarks and progress.
type Store interface {
	// Save inserts a new bookmark.
	Save(ctx context.Context, b Bookmark) error

	// List returns a book's bookmarks ordered by creation time.
	List(ctx context.Context, bookID string) ([]Bookmark, error)

	// Delete removes a bookmark.
	// Returns ErrNotFound if the bookmark does not exist.
	Delete(ctx context.Context, id string) error

	// SaveProgress upserts the book's last reading position.
	SaveProgress(ctx context.Context, p Progress) error

	// GetProgress returns the book's last reading position.
	// Returns ErrNotFound when the book has never been opened.
	GetProgress(ctx context.Context, bookID string) (Progress, error)
}
