package reader

import (
	"unicode/utf8"

	"github.com/zouy50/bookokrat/internal/book"
)

// Selection is the single active selection of a chapter: a normalized
// [start, end) stream range plus the drag anchor it grew from. At most one
// selection exists per session.
type Selection struct {
	anchor  int
	start   int
	end     int
	active  bool
	dragged bool
}

// Start begins a selection at an offset, covering the rune under it.
// Negative offsets (no content under the pointer) are ignored.
func (s *Selection) Start(ch *book.Chapter, off int) {
	if off < 0 || off >= ch.Len() {
		return
	}
	s.anchor = off
	s.start = off
	s.end = off + runeLen(ch, off)
	s.active = true
	s.dragged = false
}

// Extend grows the selection from its anchor to an offset, in either
// direction. The rune at the far end is included.
func (s *Selection) Extend(ch *book.Chapter, off int) {
	if !s.active || off < 0 {
		return
	}
	off = min(off, ch.Len()-1)
	if off != s.anchor {
		s.dragged = true
	}
	if off >= s.anchor {
		s.start = s.anchor
		s.end = off + runeLen(ch, off)
	} else {
		s.start = off
		s.end = s.anchor + runeLen(ch, s.anchor)
	}
}

// SelectWord selects the Unicode word containing the offset.
func (s *Selection) SelectWord(ch *book.Chapter, off int) {
	start, end := ch.WordRangeAt(off)
	if start == end {
		return
	}
	s.anchor = start
	s.start = start
	s.end = end
	s.active = true
	s.dragged = true
}

// SelectParagraph selects the full extent of the enclosing block.
func (s *Selection) SelectParagraph(ch *book.Chapter, off int) {
	_, b := ch.BlockAt(off)
	if b == nil {
		return
	}
	start, end := b.Extent()
	if start == end {
		return
	}
	s.anchor = start
	s.start = start
	s.end = end
	s.active = true
	s.dragged = true
}

// Release finalizes a press at an offset. A release without any drag on a
// link span activates the link instead of leaving a selection; the link is
// returned for the shell to dispatch. Drags of nonzero length keep their
// selection and never activate links.
func (s *Selection) Release(ch *book.Chapter, off int) *book.Inline {
	if !s.active {
		return nil
	}
	if s.dragged {
		return nil
	}
	s.Clear()
	return ch.LinkAt(off)
}

// Clear drops the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Active reports whether a selection exists.
func (s *Selection) Active() bool {
	return s.active
}

// Range returns the normalized [start, end) stream range.
func (s *Selection) Range() (int, int, bool) {
	if !s.active {
		return 0, 0, false
	}
	return s.start, s.end, true
}

// Contains reports whether the selection covers a stream offset.
func (s *Selection) Contains(off int) bool {
	return s.active && off >= s.start && off < s.end
}

// Text returns the selected canonical-stream substring.
func (s *Selection) Text(ch *book.Chapter) string {
	if !s.active {
		return ""
	}
	return ch.Slice(s.start, s.end)
}

// runeLen returns the byte length of the rune at a stream offset, so
// selection ends stay on rune boundaries.
func runeLen(ch *book.Chapter, off int) int {
	_, size := utf8.DecodeRuneInString(ch.Stream()[off:])
	if size == 0 {
		return 1
	}
	return size
}
