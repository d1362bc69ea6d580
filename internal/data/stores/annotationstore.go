// Package stores provides the SQLite-backed implementations of the core
// persistence interfaces.
package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zouy50/bookokrat/internal/core/annotate"
	"github.com/zouy50/bookokrat/internal/data/db"
)

// AnnotationStore implements annotate.Store using SQLite.
type AnnotationStore struct {
	db *db.DB
}

var _ annotate.Store = (*AnnotationStore)(nil)

// NewAnnotationStore creates a new SQLite-backed annotation store.
func NewAnnotationStore(db *db.DB) *AnnotationStore {
	return &AnnotationStore{db: db}
}

// Save inserts a new annotation, or replaces an existing one with the same
// id (merged line-scoped annotations keep their id).
func (s *AnnotationStore) Save(ctx context.Context, a annotate.Annotation) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO annotations
			(id, book_id, chapter_id, block_idx, target_kind, range_start, range_end, snippet, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			block_idx   = excluded.block_idx,
			target_kind = excluded.target_kind,
			range_start = excluded.range_start,
			range_end   = excluded.range_end,
			snippet     = excluded.snippet,
			note        = excluded.note,
			updated_at  = excluded.updated_at`,
		a.ID, a.BookID, a.Target.ChapterID, a.Target.Block, a.Target.Kind.String(),
		a.Target.Start, a.Target.End, a.Target.Snippet, a.Note,
		a.CreatedAt.UnixNano(), a.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save annotation: %w", err)
	}
	return nil
}

// ListByBook returns all annotations for a book, ordered by chapter, block,
// and range start.
func (s *AnnotationStore) ListByBook(ctx context.Context, bookID string) ([]annotate.Annotation, error) {
	return s.list(ctx, `
		SELECT id, book_id, chapter_id, block_idx, target_kind, range_start, range_end, snippet, note, created_at, updated_at
		FROM annotations
		WHERE book_id = ?
		ORDER BY chapter_id, block_idx, range_start`, bookID)
}

// ListByChapter returns a book's annotations in one chapter.
func (s *AnnotationStore) ListByChapter(ctx context.Context, bookID, chapterID string) ([]annotate.Annotation, error) {
	return s.list(ctx, `
		SELECT id, book_id, chapter_id, block_idx, target_kind, range_start, range_end, snippet, note, created_at, updated_at
		FROM annotations
		WHERE book_id = ? AND chapter_id = ?
		ORDER BY block_idx, range_start`, bookID, chapterID)
}

// Update replaces the note text of an existing annotation.
func (s *AnnotationStore) Update(ctx context.Context, id, note string) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE annotations SET note = ?, updated_at = ? WHERE id = ?`,
		note, time.Now().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	return requireRow(res, annotate.ErrNotFound)
}

// Delete removes an annotation.
func (s *AnnotationStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn().ExecContext(ctx, `DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}
	return requireRow(res, annotate.ErrNotFound)
}

// DeleteMany removes a set of annotations in one transaction. Missing ids
// are skipped; the batch either fully commits or rolls back.
func (s *AnnotationStore) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM annotations WHERE id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete annotation %s: %w", id, err)
			}
		}
		return nil
	})
}

func (s *AnnotationStore) list(ctx context.Context, query string, args ...any) ([]annotate.Annotation, error) {
	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []annotate.Annotation
	for rows.Next() {
		var (
			a                    annotate.Annotation
			kind                 string
			createdAt, updatedAt int64
		)
		err := rows.Scan(
			&a.ID, &a.BookID, &a.Target.ChapterID, &a.Target.Block, &kind,
			&a.Target.Start, &a.Target.End, &a.Target.Snippet, &a.Note,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		a.Target.Kind = parseTargetKind(kind)
		a.CreatedAt = time.Unix(0, createdAt)
		a.UpdatedAt = time.Unix(0, updatedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

func parseTargetKind(s string) annotate.TargetKind {
	if s == annotate.TargetLines.String() {
		return annotate.TargetLines
	}
	return annotate.TargetWords
}
