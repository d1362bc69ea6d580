package layout

import "sort"

// Result is one computed chapter layout. It is immutable: every lookup is
// read-only, and any structural change produces a fresh Result.
type Result struct {
	ChapterID string
	Width     int
	Lines     []Line

	blockFirst []int
	lineFirst  []int // first real offset per line, NoOffset for synthetic
	lineLast   []int
	cumLast    []int // running maximum of lineLast, monotone for search
}

func (r *Result) index() {
	r.lineFirst = make([]int, len(r.Lines))
	r.lineLast = make([]int, len(r.Lines))
	r.cumLast = make([]int, len(r.Lines))
	running := NoOffset
	for i, l := range r.Lines {
		r.lineFirst[i] = l.firstOffset()
		r.lineLast[i] = l.lastOffset()
		running = max(running, r.lineLast[i])
		r.cumLast[i] = running
	}
}

// Height returns the total layout line count.
func (r *Result) Height() int {
	return len(r.Lines)
}

// BlockFirstLine returns the first layout line of the given block, or 0
// for an invalid index.
func (r *Result) BlockFirstLine(blockIdx int) int {
	if blockIdx < 0 || blockIdx >= len(r.blockFirst) {
		return 0
	}
	return r.blockFirst[blockIdx]
}

// LineOfOffset returns the layout line displaying the given stream
// offset. Offsets that fall between displayed cells (separators, rendered
// math) resolve to the nearest following content line, or the last line.
func (r *Result) LineOfOffset(off int) int {
	// Content offsets increase in document order, so the running maximum
	// of per-line last offsets is monotone and binary-searchable. The
	// first line where it reaches off is the line displaying it.
	idx := sort.Search(len(r.Lines), func(i int) bool {
		return r.cumLast[i] >= off
	})
	if idx < len(r.Lines) {
		return idx
	}
	return max(len(r.Lines)-1, 0)
}

// ColumnOfOffset returns the visual column of the given offset on its
// line, accounting for double-width runes so it round-trips with
// ResolveScreen. Returns 0 when the offset is not displayed.
func (r *Result) ColumnOfOffset(off int) int {
	line := r.LineOfOffset(off)
	if line >= len(r.Lines) {
		return 0
	}
	x := 0
	for _, c := range r.Lines[line].Cells {
		if c.Offset != NoOffset && c.Offset >= off {
			return x
		}
		x += cellWidth(c.Rune)
	}
	return 0
}

// ResolveScreen maps a (layout line, visual column) position to a stream
// offset. Synthetic cells snap to the nearest preceding cell with a real
// offset, scanning back through earlier lines when needed. Returns
// NoOffset when no content precedes the position.
func (r *Result) ResolveScreen(line, col int) int {
	if len(r.Lines) == 0 {
		return NoOffset
	}
	line = min(max(line, 0), len(r.Lines)-1)

	cells := r.Lines[line].Cells
	idx := cellIndexAtColumn(cells, col)

	// Walk left on the line.
	for i := idx; i >= 0 && i < len(cells); i-- {
		if cells[i].Offset != NoOffset {
			return cells[i].Offset
		}
	}
	// Then walk up through earlier lines.
	for l := line - 1; l >= 0; l-- {
		if r.lineLast[l] != NoOffset {
			return r.lineLast[l]
		}
	}
	return NoOffset
}

// cellIndexAtColumn finds the cell covering a visual column, accounting
// for double-width runes. Columns past the end clamp to the last cell.
func cellIndexAtColumn(cells []Cell, col int) int {
	if len(cells) == 0 {
		return -1
	}
	x := 0
	for i, c := range cells {
		w := cellWidth(c.Rune)
		if col < x+w {
			return i
		}
		x += w
	}
	return len(cells) - 1
}

// VisibleOffsets returns all real offsets in line-then-column order, used
// by the offset-coverage tests.
func (r *Result) VisibleOffsets() []int {
	var offs []int
	for _, l := range r.Lines {
		for _, c := range l.Cells {
			if c.Offset != NoOffset {
				offs = append(offs, c.Offset)
			}
		}
	}
	return offs
}
