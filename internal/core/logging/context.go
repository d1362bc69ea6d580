package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey string

const (
	bookIDKey    contextKey = "book_id"
	chapterIDKey contextKey = "chapter_id"
)

// WithBookID adds a book ID to the context.
func WithBookID(ctx context.Context, bookID string) context.Context {
	return context.WithValue(ctx, bookIDKey, bookID)
}

// WithChapterID adds a chapter ID to the context.
func WithChapterID(ctx context.Context, chapterID string) context.Context {
	return context.WithValue(ctx, chapterIDKey, chapterID)
}

// GetBookID retrieves the book ID from the context.
// Returns empty string if not present.
func GetBookID(ctx context.Context) string {
	if id, ok := ctx.Value(bookIDKey).(string); ok {
		return id
	}
	return ""
}

// GetChapterID retrieves the chapter ID from the context.
// Returns empty string if not present.
func GetChapterID(ctx context.Context) string {
	if id, ok := ctx.Value(chapterIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextHook copies book and chapter ids from an event's context onto
// the event, so call sites pass ctx once via Event.Ctx instead of
// re-stating the ids at every log line.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if id := GetBookID(ctx); id != "" {
		e.Str("book_id", id)
	}
	if id := GetChapterID(ctx); id != "" {
		e.Str("chapter_id", id)
	}
}
