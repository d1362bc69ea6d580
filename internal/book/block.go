// Package book defines the structural content model for a loaded e-book:
// chapters as ordered block sequences, inline spans, and the canonical
// stream that serves as the coordinate space for all offset-based
// addressing (selection, annotations, search, navigation).
package book

import (
	"strings"

	"github.com/zouy50/bookokrat/internal/mathgrid"
)

// BlockKind identifies a block variant.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindCode
	KindTable
	KindImage
	KindMath
)

// String returns the kind name for logging.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindCode:
		return "code"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	case KindMath:
		return "math"
	default:
		return "unknown"
	}
}

// InlineKind identifies an inline span variant.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineEmphasis
	InlineStrong
	InlineCode
	InlineLink
	InlineMath
)

// Inline is a styled text run within a heading or paragraph. Start and End
// are byte offsets into the chapter's canonical stream, assigned when the
// chapter is built; they are zero on loader-constructed spans.
type Inline struct {
	Kind   InlineKind
	Text   string
	Target string // link destination: "#anchor" for internal, URL otherwise
	Start  int
	End    int
}

// Contains reports whether the span covers the given stream offset.
func (s Inline) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

// TableCell is one table cell with its resolved stream extent.
type TableCell struct {
	Text  string
	Start int
	End   int
}

// Block is a tagged variant: exactly one of the kind-specific field groups
// is meaningful, selected by Kind. Loaders construct blocks with content
// fields only; NewChapter assigns all offsets.
type Block struct {
	Kind   BlockKind
	Anchor string // optional in-chapter link target id

	// Heading and paragraph content.
	Level   int // heading level 1..6
	Inlines []Inline

	// Code block content, verbatim lines without trailing newlines.
	Language string
	Lines    []string

	// Table content. Header may be empty for headerless tables.
	Header []TableCell
	Rows   [][]TableCell

	// Image metadata. Pixel data is never held by the engine.
	Src    string
	Alt    string
	Width  int
	Height int

	// Math expression tree.
	Expr *mathgrid.Node

	start int
	end   int
}

// Extent returns the block's [start, end) range in the canonical stream.
// Blocks that contribute no visible text have start == end.
func (b *Block) Extent() (int, int) {
	return b.start, b.end
}

// SpanAt returns the inline span containing the given stream offset, or
// nil if the offset falls outside all spans of this block.
func (b *Block) SpanAt(off int) *Inline {
	for i := range b.Inlines {
		if b.Inlines[i].Contains(off) {
			return &b.Inlines[i]
		}
	}
	return nil
}

// visibleText returns the text a block contributes to the canonical stream.
// Malformed blocks contribute whatever content is present; they degrade to
// literal text at layout time rather than aborting the chapter.
func (b *Block) visibleText() string {
	switch b.Kind {
	case KindHeading, KindParagraph:
		var sb strings.Builder
		for _, s := range b.Inlines {
			sb.WriteString(s.Text)
		}
		return sb.String()
	case KindCode:
		return strings.Join(b.Lines, "\n")
	case KindTable:
		return "" // cell offsets are assigned individually in NewChapter
	case KindImage:
		return b.Alt
	case KindMath:
		return b.Expr.Literal()
	default:
		return ""
	}
}
