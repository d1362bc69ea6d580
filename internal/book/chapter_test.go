package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zouy50/bookokrat/internal/mathgrid"
)

func para(text string) Block {
	return Block{Kind: KindParagraph, Inlines: []Inline{{Kind: InlineText, Text: text}}}
}

func TestNewChapterAssignsIncreasingOffsets(t *testing.T) {
	ch := NewChapter("ch1", "One", []Block{
		{Kind: KindHeading, Level: 1, Inlines: []Inline{{Kind: InlineText, Text: "Title"}}},
		para("The quick brown fox jumps."),
		{Kind: KindCode, Language: "go", Lines: []string{"func main() {", "}"}},
	})

	assert.Equal(t, "Title\nThe quick brown fox jumps.\nfunc main() {\n}", ch.Stream())

	prev := -1
	for i := range ch.Blocks {
		start, end := ch.Blocks[i].Extent()
		require.LessOrEqual(t, start, end, "block %d", i)
		require.Greater(t, start, prev, "block %d starts after previous end", i)
		prev = end - 1
		for _, s := range ch.Blocks[i].Inlines {
			assert.Equal(t, s.Text, ch.Slice(s.Start, s.End))
		}
	}
}

func TestNewChapterMultiSpanParagraph(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{
		{Kind: KindParagraph, Inlines: []Inline{
			{Kind: InlineText, Text: "See the "},
			{Kind: InlineLink, Text: "appendix", Target: "#appendix"},
			{Kind: InlineText, Text: " for details."},
		}},
	})

	assert.Equal(t, "See the appendix for details.", ch.Stream())

	link := ch.LinkAt(10) // inside "appendix"
	require.NotNil(t, link)
	assert.Equal(t, "appendix", link.Text)
	assert.Equal(t, "#appendix", link.Target)

	assert.Nil(t, ch.LinkAt(2), "plain text is not a link")
}

func TestBlockAt(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{
		para("first"),
		para("second"),
	})

	idx, b := ch.BlockAt(0)
	require.NotNil(t, b)
	assert.Equal(t, 0, idx)

	idx, b = ch.BlockAt(len("first") + 1) // start of "second"
	require.NotNil(t, b)
	assert.Equal(t, 1, idx)

	// Offset on the separator resolves to the preceding block.
	idx, _ = ch.BlockAt(len("first"))
	assert.Equal(t, 0, idx)
}

func TestWordRangeAt(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{para("The quick brown fox jumps.")})

	start, end := ch.WordRangeAt(5) // inside "quick"
	assert.Equal(t, "quick", ch.Slice(start, end))

	start, end = ch.WordRangeAt(0)
	assert.Equal(t, "The", ch.Slice(start, end))

	// Unicode word segmentation, not byte scanning.
	uch := NewChapter("ch2", "", []Block{para("naïve café test")})
	start, end = uch.WordRangeAt(7) // inside "café"
	assert.Equal(t, "café", uch.Slice(start, end))
}

func TestTableCellOffsets(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{{
		Kind:   KindTable,
		Header: []TableCell{{Text: "Name"}, {Text: "Value"}},
		Rows: [][]TableCell{
			{{Text: "alpha"}, {Text: "1"}},
			{{Text: "beta"}, {Text: "2"}},
		},
	}})

	b := &ch.Blocks[0]
	assert.Equal(t, "Name", ch.Slice(b.Header[0].Start, b.Header[0].End))
	assert.Equal(t, "beta", ch.Slice(b.Rows[1][0].Start, b.Rows[1][0].End))

	// Cell extents never overlap and increase in row-major order.
	prev := -1
	cells := append([]TableCell{}, b.Header...)
	for _, row := range b.Rows {
		cells = append(cells, row...)
	}
	for _, cell := range cells {
		require.Greater(t, cell.Start, prev)
		prev = cell.End
	}
}

func TestCodeLineExtent(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{
		para("intro"),
		{Kind: KindCode, Lines: []string{"line zero", "line one", "line two"}},
	})

	start, end := ch.CodeLineExtent(1, 1)
	assert.Equal(t, "line one", ch.Slice(start, end))

	start, end = ch.CodeLineExtent(1, 99)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestMathBlockContributesLiteralText(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{{
		Kind: KindMath,
		Expr: mathgrid.Frac(mathgrid.Num("1"), mathgrid.Ident("n")),
	}})

	assert.Equal(t, "1/n", ch.Stream())
}

func TestAnchorOffset(t *testing.T) {
	ch := NewChapter("ch1", "", []Block{
		para("before"),
		{Kind: KindHeading, Level: 2, Anchor: "details", Inlines: []Inline{{Kind: InlineText, Text: "Details"}}},
	})

	off, ok := ch.AnchorOffset("details")
	require.True(t, ok)
	start, _ := ch.Blocks[1].Extent()
	assert.Equal(t, start, off)

	_, ok = ch.AnchorOffset("missing")
	assert.False(t, ok)
}

func TestBookChapterLookup(t *testing.T) {
	b := &Book{
		ID: "bk",
		Chapters: []*Chapter{
			NewChapter("ch1", "One", nil),
			NewChapter("ch2", "Two", nil),
		},
	}

	assert.Equal(t, 1, b.ChapterIndex("ch2"))
	assert.Equal(t, -1, b.ChapterIndex("nope"))
	require.NotNil(t, b.ChapterByID("ch1"))
	assert.Nil(t, b.ChapterByID("nope"))
}
