package stores

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zouy50/bookokrat/internal/core/annotate"
	"github.com/zouy50/bookokrat/internal/core/bookmark"
	"github.com/zouy50/bookokrat/internal/data/db"
)

func testDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(t.TempDir(), db.OpenOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func testAnnotation(bookID, chapterID string, block, start, end int) annotate.Annotation {
	now := time.Now()
	return annotate.Annotation{
		ID:     uuid.NewString(),
		BookID: bookID,
		Target: annotate.Target{
			Kind:      annotate.TargetWords,
			ChapterID: chapterID,
			Block:     block,
			Start:     start,
			End:       end,
			Snippet:   "anchor text",
		},
		Note:      "a note",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAnnotationStoreCRUD(t *testing.T) {
	s := NewAnnotationStore(testDB(t))
	ctx := context.Background()

	a1 := testAnnotation("b1", "ch1", 0, 1, 3)
	a2 := testAnnotation("b1", "ch2", 2, 0, 0)
	a2.Target.Kind = annotate.TargetLines
	other := testAnnotation("b2", "ch1", 0, 0, 1)

	require.NoError(t, s.Save(ctx, a1))
	require.NoError(t, s.Save(ctx, a2))
	require.NoError(t, s.Save(ctx, other))

	got, err := s.ListByBook(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a1.ID, got[0].ID)
	assert.Equal(t, annotate.TargetWords, got[0].Target.Kind)
	assert.Equal(t, annotate.TargetLines, got[1].Target.Kind)
	assert.Equal(t, "anchor text", got[0].Target.Snippet)

	byChapter, err := s.ListByChapter(ctx, "b1", "ch2")
	require.NoError(t, err)
	require.Len(t, byChapter, 1)
	assert.Equal(t, a2.ID, byChapter[0].ID)

	require.NoError(t, s.Update(ctx, a1.ID, "revised"))
	got, err = s.ListByChapter(ctx, "b1", "ch1")
	require.NoError(t, err)
	assert.Equal(t, "revised", got[0].Note)

	require.NoError(t, s.Delete(ctx, a1.ID))
	assert.ErrorIs(t, s.Delete(ctx, a1.ID), annotate.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, a1.ID, "x"), annotate.ErrNotFound)
}

func TestAnnotationSaveReplacesMergedRange(t *testing.T) {
	s := NewAnnotationStore(testDB(t))
	ctx := context.Background()

	a := testAnnotation("b1", "ch1", 1, 0, 1)
	a.Target.Kind = annotate.TargetLines
	require.NoError(t, s.Save(ctx, a))

	// A merged line-scoped annotation keeps its id with a wider range.
	a.Target.End = 3
	a.Note = "extended"
	require.NoError(t, s.Save(ctx, a))

	got, err := s.ListByBook(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Target.End)
	assert.Equal(t, "extended", got[0].Note)
}

func TestAnnotationDeleteMany(t *testing.T) {
	s := NewAnnotationStore(testDB(t))
	ctx := context.Background()

	a1 := testAnnotation("b1", "ch1", 0, 0, 1)
	a2 := testAnnotation("b1", "ch1", 1, 0, 1)
	a3 := testAnnotation("b1", "ch2", 0, 0, 1)
	require.NoError(t, s.Save(ctx, a1))
	require.NoError(t, s.Save(ctx, a2))
	require.NoError(t, s.Save(ctx, a3))

	require.NoError(t, s.DeleteMany(ctx, []string{a1.ID, a3.ID, "missing"}))
	require.NoError(t, s.DeleteMany(ctx, nil))

	got, err := s.ListByBook(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a2.ID, got[0].ID)
}

func TestIsNotFoundErrorCoversDomainSentinels(t *testing.T) {
	assert.True(t, IsNotFoundError(annotate.ErrNotFound))
	assert.True(t, IsNotFoundError(bookmark.ErrNotFound))
	assert.False(t, IsNotFoundError(context.Canceled))
}

func TestBookmarkStoreCRUD(t *testing.T) {
	s := NewBookmarkStore(testDB(t))
	ctx := context.Background()

	b := bookmark.Bookmark{
		ID:        uuid.NewString(),
		BookID:    "b1",
		ChapterID: "ch2",
		Offset:    120,
		Name:      "the good part",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Save(ctx, b))

	got, err := s.List(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, 120, got[0].Offset)
	assert.Equal(t, "the good part", got[0].Name)

	empty, err := s.List(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.Delete(ctx, b.ID))
	assert.ErrorIs(t, s.Delete(ctx, b.ID), bookmark.ErrNotFound)
}

func TestProgressRoundTrip(t *testing.T) {
	s := NewBookmarkStore(testDB(t))
	ctx := context.Background()

	_, err := s.GetProgress(ctx, "b1")
	assert.ErrorIs(t, err, bookmark.ErrNotFound)

	p := bookmark.Progress{BookID: "b1", ChapterID: "ch1", Offset: 10, UpdatedAt: time.Now()}
	require.NoError(t, s.SaveProgress(ctx, p))

	// Upsert replaces the position.
	p.ChapterID = "ch3"
	p.Offset = 77
	require.NoError(t, s.SaveProgress(ctx, p))

	got, err := s.GetProgress(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "ch3", got.ChapterID)
	assert.Equal(t, 77, got.Offset)
}
