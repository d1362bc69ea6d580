package layout

import (
	"github.com/rs/zerolog"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/logging"
)

// Engine computes and caches chapter layouts. Layout is deterministic, so
// results are cached by (chapter id, structural options); any width,
// margin or content change invalidates wholesale rather than patching.
type Engine struct {
	log   zerolog.Logger
	cache map[cacheKey]*Result
}

type cacheKey struct {
	chapterID string
	width     int
	margin    int
	tabWidth  int
	highlight bool
}

// NewEngine creates a layout engine with an empty cache.
func NewEngine() *Engine {
	return &Engine{
		log:   logging.Component("layout"),
		cache: make(map[cacheKey]*Result),
	}
}

// Layout returns the layout lines for a chapter at the given options,
// computing them on first use and serving the cache afterwards.
func (e *Engine) Layout(ch *book.Chapter, opts Options) *Result {
	key := cacheKey{
		chapterID: ch.ID,
		width:     opts.ContentWidth(),
		margin:    opts.Margin,
		tabWidth:  opts.tabWidth(),
		highlight: opts.HighlightCode,
	}
	if r, ok := e.cache[key]; ok {
		return r
	}

	r := Reflow(ch, opts)
	e.cache[key] = r
	e.log.Debug().
		Str("chapter", ch.ID).
		Int("width", key.width).
		Int("lines", len(r.Lines)).
		Msg("chapter laid out")
	return r
}

// Invalidate drops all cached layouts for a chapter, e.g. when the reader
// navigates away and the chapter is released.
func (e *Engine) Invalidate(chapterID string) {
	for k := range e.cache {
		if k.chapterID == chapterID {
			delete(e.cache, k)
		}
	}
}

// InvalidateAll drops the whole cache.
func (e *Engine) InvalidateAll() {
	e.cache = make(map[cacheKey]*Result)
}

// Reflow is the pure layout function: identical inputs always yield
// identical output. Content-level failures degrade locally (literal text,
// placeholder boxes); no block can abort the chapter's layout.
func Reflow(ch *book.Chapter, opts Options) *Result {
	width := opts.ContentWidth()

	r := &Result{ChapterID: ch.ID, Width: width}
	r.blockFirst = make([]int, len(ch.Blocks))

	for i := range ch.Blocks {
		if i > 0 {
			r.Lines = append(r.Lines, blankLine())
		}
		r.blockFirst[i] = len(r.Lines)

		b := &ch.Blocks[i]
		lines := layoutBlock(ch, b, i, width, opts)
		if lines == nil {
			// Malformed block: render whatever visible text it
			// contributed to the stream instead of aborting.
			lines = layoutLiteral(ch, b, i, width)
		}
		r.Lines = append(r.Lines, lines...)
	}

	r.index()
	return r
}

func layoutBlock(ch *book.Chapter, b *book.Block, idx, width int, opts Options) []Line {
	switch b.Kind {
	case book.KindHeading:
		cells := inlineCells(b.Inlines, RoleHeading)
		return wrapToLines(cells, width, LineHeading, idx)
	case book.KindParagraph:
		cells := inlineCells(b.Inlines, RoleText)
		return wrapToLines(cells, width, LineText, idx)
	case book.KindCode:
		return layoutCode(b, idx, opts)
	case book.KindTable:
		return layoutTable(b, idx, width)
	case book.KindImage:
		return layoutImage(b, idx, width)
	case book.KindMath:
		if b.Expr == nil {
			return nil
		}
		return layoutMath(b, idx, width)
	default:
		return nil
	}
}

// layoutLiteral is the degrade path for malformed or unknown blocks: wrap
// the block's stream extent as plain text.
func layoutLiteral(ch *book.Chapter, b *book.Block, idx, width int) []Line {
	start, end := b.Extent()
	text := ch.Slice(start, end)

	var cells []Cell
	for i, r := range text {
		if r == '\n' {
			r = ' '
		}
		cells = append(cells, Cell{Rune: r, Role: RoleText, Offset: start + i})
	}
	return wrapToLines(cells, width, LineText, idx)
}

func wrapToLines(cells []Cell, width int, kind LineKind, blockIdx int) []Line {
	wrapped := wrapCells(cells, width)
	lines := make([]Line, 0, len(wrapped))
	for _, w := range wrapped {
		lines = append(lines, Line{Cells: w, Kind: kind, Block: blockIdx, CodeLine: -1})
	}
	return lines
}
