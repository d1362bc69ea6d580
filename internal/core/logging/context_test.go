package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestContextHookAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})

	ctx := WithChapterID(WithBookID(context.Background(), "b1"), "ch2")
	logger.Info().Ctx(ctx).Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"book_id":"b1"`)
	assert.Contains(t, out, `"chapter_id":"ch2"`)
}

func TestContextHookSkipsMissingIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})

	logger.Info().Ctx(context.Background()).Msg("hello")

	assert.NotContains(t, buf.String(), "book_id")
	assert.NotContains(t, buf.String(), "chapter_id")
}
