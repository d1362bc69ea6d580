package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zouy50/bookokrat/internal/core/bookmark"
	"github.com/zouy50/bookokrat/internal/data/db"
)

// BookmarkStore implements bookmark.Store using SQLite.
type BookmarkStore struct {
	db *db.DB
}

var _ bookmark.Store = (*BookmarkStore)(nil)

// NewBookmarkStore creates a new SQLite-backed bookmark store.
func NewBookmarkStore(db *db.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// Save inserts a new bookmark.
func (s *BookmarkStore) Save(ctx context.Context, b bookmark.Bookmark) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO bookmarks (id, book_id, chapter_id, stream_offset, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.BookID, b.ChapterID, b.Offset, b.Name, b.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}
	return nil
}

// List returns a book's bookmarks ordered by creation time.
func (s *BookmarkStore) List(ctx context.Context, bookID string) ([]bookmark.Bookmark, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, book_id, chapter_id, stream_offset, name, created_at
		FROM bookmarks
		WHERE book_id = ?
		ORDER BY created_at`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []bookmark.Bookmark
	for rows.Next() {
		var (
			b         bookmark.Bookmark
			createdAt int64
		)
		if err := rows.Scan(&b.ID, &b.BookID, &b.ChapterID, &b.Offset, &b.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		b.CreatedAt = time.Unix(0, createdAt)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes a bookmark.
func (s *BookmarkStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn().ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return requireRow(res, bookmark.ErrNotFound)
}

// SaveProgress upserts the book's last reading position.
func (s *BookmarkStore) SaveProgress(ctx context.Context, p bookmark.Progress) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO progress (book_id, chapter_id, stream_offset, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(book_id) DO UPDATE SET
			chapter_id    = excluded.chapter_id,
			stream_offset = excluded.stream_offset,
			updated_at    = excluded.updated_at`,
		p.BookID, p.ChapterID, p.Offset, p.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// GetProgress returns the book's last reading position.
func (s *BookmarkStore) GetProgress(ctx context.Context, bookID string) (bookmark.Progress, error) {
	var (
		p         bookmark.Progress
		updatedAt int64
	)
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT book_id, chapter_id, stream_offset, updated_at
		FROM progress
		WHERE book_id = ?`, bookID,
	).Scan(&p.BookID, &p.ChapterID, &p.Offset, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return bookmark.Progress{}, bookmark.ErrNotFound
	}
	if err != nil {
		return bookmark.Progress{}, fmt.Errorf("failed to get progress: %w", err)
	}
	p.UpdatedAt = time.Unix(0, updatedAt)
	return p, nil
}

// requireRow converts a zero-row result into the store's not-found error.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
