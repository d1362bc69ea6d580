package reader

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/annotate"
	"github.com/zouy50/bookokrat/internal/core/logging"
)

// snippetCap bounds the anchor text captured with each annotation.
const snippetCap = 120

// AnnotationIndex is the in-memory annotation view for one open book.
// Annotations anchor to content (word ranges, code line ranges), so the
// index needs no re-indexing on reflow; rendering converts anchors to
// stream ranges per chapter on demand.
type AnnotationIndex struct {
	log       zerolog.Logger
	bookID    string
	byChapter map[string][]annotate.Annotation
}

// AnnotationRange is an annotation's resolved stream range, used to style
// cells at render time.
type AnnotationRange struct {
	ID    string
	Start int
	End   int
}

// NewAnnotationIndex builds the index from a book's stored annotations.
func NewAnnotationIndex(bookID string, annots []annotate.Annotation) *AnnotationIndex {
	x := &AnnotationIndex{
		log:       logging.Component("annotations"),
		bookID:    bookID,
		byChapter: make(map[string][]annotate.Annotation),
	}
	for _, a := range annots {
		x.byChapter[a.Target.ChapterID] = append(x.byChapter[a.Target.ChapterID], a)
	}
	return x
}

// Insert creates an annotation for a stream range. Ranges inside a code
// block become line-scoped; an overlapping line-scoped annotation on the
// same block is extended instead of duplicated, with the new note
// appended. The second return reports whether an existing annotation was
// merged into rather than a new one created.
func (x *AnnotationIndex) Insert(ch *book.Chapter, start, end int, note string) (annotate.Annotation, bool) {
	target, ok := targetForRange(ch, start, end)
	if !ok {
		return annotate.Annotation{}, false
	}

	if target.Kind == annotate.TargetLines {
		chAnnots := x.byChapter[ch.ID]
		for i := range chAnnots {
			if !chAnnots[i].Target.Overlaps(target) {
				continue
			}
			merged := &chAnnots[i]
			merged.Target.Start = min(merged.Target.Start, target.Start)
			merged.Target.End = max(merged.Target.End, target.End)
			merged.Target.Snippet = lineSnippet(ch, merged.Target)
			if note != "" {
				if merged.Note != "" {
					merged.Note += "\n\n"
				}
				merged.Note += note
			}
			merged.UpdatedAt = time.Now()
			x.log.Debug().Str("id", merged.ID).Msg("annotation merged")
			return *merged, true
		}
	}

	now := time.Now()
	a := annotate.Annotation{
		ID:        uuid.NewString(),
		BookID:    x.bookID,
		Target:    target,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	x.byChapter[ch.ID] = append(x.byChapter[ch.ID], a)
	x.log.Debug().Str("id", a.ID).Str("chapter", ch.ID).Msg("annotation created")
	return a, false
}

// UpdateNote replaces an annotation's note text.
func (x *AnnotationIndex) UpdateNote(id, note string) bool {
	for chID, annots := range x.byChapter {
		for i := range annots {
			if annots[i].ID == id {
				annots[i].Note = note
				annots[i].UpdatedAt = time.Now()
				x.byChapter[chID] = annots
				return true
			}
		}
	}
	return false
}

// Delete removes an annotation by id.
func (x *AnnotationIndex) Delete(id string) bool {
	for chID, annots := range x.byChapter {
		for i := range annots {
			if annots[i].ID == id {
				x.byChapter[chID] = append(annots[:i], annots[i+1:]...)
				return true
			}
		}
	}
	return false
}

// At returns the annotation whose resolved range contains the offset.
func (x *AnnotationIndex) At(ch *book.Chapter, off int) (annotate.Annotation, bool) {
	for _, a := range x.byChapter[ch.ID] {
		start, end, ok := targetExtent(ch, a.Target)
		if ok && off >= start && off < end {
			return a, true
		}
	}
	return annotate.Annotation{}, false
}

// Chapter returns a chapter's annotations.
func (x *AnnotationIndex) Chapter(chapterID string) []annotate.Annotation {
	return x.byChapter[chapterID]
}

// All returns every annotation in the index.
func (x *AnnotationIndex) All() []annotate.Annotation {
	var out []annotate.Annotation
	for _, annots := range x.byChapter {
		out = append(out, annots...)
	}
	return out
}

// Ranges resolves a chapter's annotation anchors to stream ranges for
// rendering. Anchors that no longer resolve are skipped here; Orphans
// reports them.
func (x *AnnotationIndex) Ranges(ch *book.Chapter) []AnnotationRange {
	var out []AnnotationRange
	for _, a := range x.byChapter[ch.ID] {
		if start, end, ok := targetExtent(ch, a.Target); ok {
			out = append(out, AnnotationRange{ID: a.ID, Start: start, End: end})
		}
	}
	return out
}

// Orphans returns annotations whose anchors no longer resolve against the
// book's current content: the chapter or block is gone, or the anchored
// text changed. Orphans are surfaced, never silently dropped.
func (x *AnnotationIndex) Orphans(b *book.Book) []annotate.Annotation {
	var out []annotate.Annotation
	for _, annots := range x.byChapter {
		for _, a := range annots {
			ch := b.ChapterByID(a.Target.ChapterID)
			if ch == nil {
				out = append(out, a)
				continue
			}
			if a.Orphaned(func(t annotate.Target) (string, bool) {
				start, end, ok := targetExtent(ch, t)
				if !ok {
					return "", false
				}
				return capSnippet(ch.Slice(start, end)), true
			}) {
				out = append(out, a)
			}
		}
	}
	return out
}

// targetForRange converts a stream range to a content anchor: a line range
// for code blocks, a word range otherwise. Ranges spanning multiple blocks
// anchor to the block containing the range start.
func targetForRange(ch *book.Chapter, start, end int) (annotate.Target, bool) {
	idx, b := ch.BlockAt(start)
	if b == nil || start >= end {
		return annotate.Target{}, false
	}
	bStart, bEnd := b.Extent()
	end = min(end, bEnd)

	if b.Kind == book.KindCode {
		startLine, endLine := codeLinesForRange(b, start-bStart, end-bStart)
		t := annotate.Target{
			Kind:      annotate.TargetLines,
			ChapterID: ch.ID,
			Block:     idx,
			Start:     startLine,
			End:       endLine,
		}
		t.Snippet = lineSnippet(ch, t)
		return t, true
	}

	words := blockWords(ch, idx)
	startWord, endWord := -1, -1
	for i, w := range words {
		if w[1] > start && startWord < 0 {
			startWord = i
		}
		if w[0] < end {
			endWord = i
		}
	}
	if startWord < 0 || endWord < startWord {
		return annotate.Target{}, false
	}
	return annotate.Target{
		Kind:      annotate.TargetWords,
		ChapterID: ch.ID,
		Block:     idx,
		Start:     startWord,
		End:       endWord,
		Snippet:   capSnippet(ch.Slice(words[startWord][0], words[endWord][1])),
	}, true
}

// targetExtent resolves a content anchor back to a stream range.
func targetExtent(ch *book.Chapter, t annotate.Target) (int, int, bool) {
	if t.Block < 0 || t.Block >= len(ch.Blocks) {
		return 0, 0, false
	}

	if t.Kind == annotate.TargetLines {
		b := &ch.Blocks[t.Block]
		if b.Kind != book.KindCode || t.Start < 0 || t.End >= len(b.Lines) || t.Start > t.End {
			return 0, 0, false
		}
		start, _ := ch.CodeLineExtent(t.Block, t.Start)
		_, end := ch.CodeLineExtent(t.Block, t.End)
		return start, end, true
	}

	words := blockWords(ch, t.Block)
	if t.Start < 0 || t.End >= len(words) || t.Start > t.End {
		return 0, 0, false
	}
	return words[t.Start][0], words[t.End][1], true
}

// blockWords enumerates a block's words as stream ranges, in order.
// Whitespace and punctuation-only segments do not count as words.
func blockWords(ch *book.Chapter, blockIdx int) [][2]int {
	start, end := ch.BlockExtent(blockIdx)
	if start >= end {
		return nil
	}

	var words [][2]int
	pos := start
	rest := ch.Slice(start, end)
	state := -1
	for len(rest) > 0 {
		var seg string
		seg, rest, state = uniseg.FirstWordInString(rest, state)
		next := pos + len(seg)
		if strings.TrimSpace(seg) != "" {
			words = append(words, [2]int{pos, next})
		}
		pos = next
	}
	return words
}

// codeLinesForRange maps a block-relative byte range to inclusive line
// indices.
func codeLinesForRange(b *book.Block, start, end int) (int, int) {
	startLine, endLine := 0, 0
	pos := 0
	for i, line := range b.Lines {
		next := pos + len(line) + 1
		if start >= pos {
			startLine = i
		}
		if end > pos {
			endLine = i
		}
		pos = next
	}
	return startLine, endLine
}

func lineSnippet(ch *book.Chapter, t annotate.Target) string {
	start, _ := ch.CodeLineExtent(t.Block, t.Start)
	_, end := ch.CodeLineExtent(t.Block, t.End)
	return capSnippet(ch.Slice(start, end))
}

func capSnippet(s string) string {
	if len(s) > snippetCap {
		return s[:snippetCap]
	}
	return s
}
