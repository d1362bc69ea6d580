// Package layout is the reflow engine: a pure function from a chapter's
// block sequence and a target width to positioned terminal cells. Every
// cell carries the canonical-stream offset of the character it displays
// (or NoOffset for synthetic padding), so selections, annotations and
// search results survive any re-layout.
package layout

// NoOffset marks cells that display synthetic glyphs (padding, borders,
// rendered math) with no canonical-stream source.
const NoOffset = -1

// StyleRole is a color-free styling tag. Concrete colors are applied by
// the renderer from the active theme, which keeps layout output identical
// across themes and lets the cache ignore color entirely.
type StyleRole uint8

const (
	RoleText StyleRole = iota
	RoleHeading
	RoleEmphasis
	RoleStrong
	RoleInlineCode
	RoleLink
	RoleMath
	RoleCode
	RoleCodeKeyword
	RoleCodeString
	RoleCodeComment
	RoleCodeLiteral
	RoleTableHeader
	RoleTableBorder
	RoleImage
)

// Cell is one positioned character of the layout.
type Cell struct {
	Rune   rune
	Role   StyleRole
	Offset int // canonical-stream byte offset, or NoOffset
}

// LineKind categorizes layout lines for rendering decisions.
type LineKind int

const (
	LineText LineKind = iota
	LineHeading
	LineCode
	LineTable
	LineImage
	LineMath
	LineBlank
)

// Line is one row of the layout. Block is the index of the originating
// block (-1 for synthetic spacing). CodeLine is the block-relative line
// index for code lines, -1 otherwise; code annotations are keyed by it.
type Line struct {
	Cells    []Cell
	Kind     LineKind
	Block    int
	CodeLine int
}

// blankLine is the synthetic spacing row between blocks.
func blankLine() Line {
	return Line{Kind: LineBlank, Block: -1, CodeLine: -1}
}

// Text returns the line's glyphs as a string, for tests and clipboard.
func (l Line) Text() string {
	runes := make([]rune, len(l.Cells))
	for i, c := range l.Cells {
		runes[i] = c.Rune
	}
	return string(runes)
}

// firstOffset returns the smallest real offset on the line, or NoOffset.
func (l Line) firstOffset() int {
	for _, c := range l.Cells {
		if c.Offset != NoOffset {
			return c.Offset
		}
	}
	return NoOffset
}

// lastOffset returns the largest real offset on the line, or NoOffset.
func (l Line) lastOffset() int {
	for i := len(l.Cells) - 1; i >= 0; i-- {
		if l.Cells[i].Offset != NoOffset {
			return l.Cells[i].Offset
		}
	}
	return NoOffset
}
