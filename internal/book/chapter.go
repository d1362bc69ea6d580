package book

import (
	"github.com/rivo/uniseg"
)

// Chapter is one chapter of a book: an ordered block sequence plus the
// derived canonical stream. Immutable once built; all offsets are byte
// offsets into Stream() and strictly increase across the chapter.
type Chapter struct {
	ID     string
	Title  string
	Blocks []Block

	stream string
}

// NewChapter assigns canonical-stream offsets to the given blocks and
// derives the stream. Blocks are separated by a single newline that
// belongs to no span, so offsets never collide across blocks.
func NewChapter(id, title string, blocks []Block) *Chapter {
	c := &Chapter{ID: id, Title: title, Blocks: blocks}

	var sb []byte
	for i := range c.Blocks {
		if i > 0 {
			sb = append(sb, '\n')
		}
		b := &c.Blocks[i]
		b.start = len(sb)

		switch b.Kind {
		case KindHeading, KindParagraph:
			for j := range b.Inlines {
				s := &b.Inlines[j]
				s.Start = len(sb)
				sb = append(sb, s.Text...)
				s.End = len(sb)
			}
		case KindTable:
			assign := func(cell *TableCell) {
				cell.Start = len(sb)
				sb = append(sb, cell.Text...)
				cell.End = len(sb)
				sb = append(sb, '\n')
			}
			for j := range b.Header {
				assign(&b.Header[j])
			}
			for r := range b.Rows {
				for j := range b.Rows[r] {
					assign(&b.Rows[r][j])
				}
			}
		default:
			sb = append(sb, b.visibleText()...)
		}

		b.end = len(sb)
	}

	c.stream = string(sb)
	return c
}

// Stream returns the canonical stream: the flattened, order-preserving
// visible text of the chapter.
func (c *Chapter) Stream() string {
	return c.stream
}

// Len returns the canonical stream length in bytes.
func (c *Chapter) Len() int {
	return len(c.stream)
}

// Slice returns the stream substring for [start, end), clamped to valid
// bounds.
func (c *Chapter) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(c.stream))
	if start >= end {
		return ""
	}
	return c.stream[start:end]
}

// BlockAt returns the index and block whose extent contains the given
// offset. Offsets falling on a separator resolve to the nearest preceding
// block. Returns (-1, nil) for offsets before any content.
func (c *Chapter) BlockAt(off int) (int, *Block) {
	idx := -1
	for i := range c.Blocks {
		b := &c.Blocks[i]
		if b.start > off {
			break
		}
		idx = i
		if off < b.end {
			return i, b
		}
	}
	if idx < 0 {
		return -1, nil
	}
	return idx, &c.Blocks[idx]
}

// BlockExtent returns the [start, end) stream range of the block at the
// given index, or (0, 0) for an invalid index.
func (c *Chapter) BlockExtent(idx int) (int, int) {
	if idx < 0 || idx >= len(c.Blocks) {
		return 0, 0
	}
	return c.Blocks[idx].Extent()
}

// SpanAt returns the inline span containing the given offset, if any.
func (c *Chapter) SpanAt(off int) *Inline {
	_, b := c.BlockAt(off)
	if b == nil {
		return nil
	}
	return b.SpanAt(off)
}

// LinkAt returns the link span containing the given offset, if any.
func (c *Chapter) LinkAt(off int) *Inline {
	s := c.SpanAt(off)
	if s == nil || s.Kind != InlineLink {
		return nil
	}
	return s
}

// WordRangeAt returns the [start, end) range of the Unicode word
// containing the given offset, using uax29 word-boundary segmentation
// over the enclosing block's text. Offsets outside all blocks return an
// empty range at the offset.
func (c *Chapter) WordRangeAt(off int) (int, int) {
	_, b := c.BlockAt(off)
	if b == nil || off >= b.end {
		return off, off
	}

	pos := b.start
	rest := c.stream[b.start:b.end]
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		next := pos + len(word)
		if off < next {
			return pos, next
		}
		pos = next
	}
	return off, off
}

// CodeLineExtent returns the [start, end) stream range of one line within
// a code block, or (0, 0) when the reference is not a code line.
func (c *Chapter) CodeLineExtent(blockIdx, lineIdx int) (int, int) {
	if blockIdx < 0 || blockIdx >= len(c.Blocks) {
		return 0, 0
	}
	b := &c.Blocks[blockIdx]
	if b.Kind != KindCode || lineIdx < 0 || lineIdx >= len(b.Lines) {
		return 0, 0
	}

	start := b.start
	for i := 0; i < lineIdx; i++ {
		start += len(b.Lines[i]) + 1 // +1 for the joining newline
	}
	return start, start + len(b.Lines[lineIdx])
}

// AnchorOffset resolves an in-chapter anchor id to the stream offset of
// the block carrying it. The second return is false if no block declares
// the anchor.
func (c *Chapter) AnchorOffset(anchor string) (int, bool) {
	for i := range c.Blocks {
		if c.Blocks[i].Anchor == anchor {
			return c.Blocks[i].start, true
		}
	}
	return 0, false
}
