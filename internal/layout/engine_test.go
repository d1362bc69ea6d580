package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/mathgrid"
)

func para(text string) book.Block {
	return book.Block{Kind: book.KindParagraph, Inlines: []book.Inline{{Kind: book.InlineText, Text: text}}}
}

func lineTexts(r *Result) []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Text()
	}
	return out
}

func TestReflowGreedyWordWrap(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{para("The quick brown fox jumps.")})

	r := Reflow(ch, Options{Width: 10})

	assert.Equal(t, []string{"The quick", "brown fox", "jumps."}, lineTexts(r))
}

func TestReflowDeterminism(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{
		{Kind: book.KindHeading, Level: 1, Inlines: []book.Inline{{Kind: book.InlineText, Text: "Heading"}}},
		para("Some paragraph content that wraps across lines at narrow widths."),
		{Kind: book.KindCode, Language: "go", Lines: []string{"x := 1", "y := 2"}},
		{Kind: book.KindMath, Expr: mathgrid.Frac(mathgrid.Num("1"), mathgrid.Num("2"))},
	})

	a := Reflow(ch, Options{Width: 24, Margin: 1})
	b := Reflow(ch, Options{Width: 24, Margin: 1})

	require.Equal(t, a.Lines, b.Lines, "layout must be a pure function of its inputs")
}

func TestOffsetCoverage(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{
		{Kind: book.KindHeading, Level: 2, Inlines: []book.Inline{{Kind: book.InlineText, Text: "A heading"}}},
		para("The quick brown fox jumps over the lazy dog."),
		{Kind: book.KindCode, Lines: []string{"\tindented", "plain"}},
		{Kind: book.KindTable, Rows: [][]book.TableCell{{{Text: "cell one"}, {Text: "cell two"}}}},
	})

	// Wide enough that no table row wraps; a wrapped table row legitimately
	// interleaves column offsets across its layout lines.
	r := Reflow(ch, Options{Width: 30})

	offs := r.VisibleOffsets()
	require.NotEmpty(t, offs)

	// Offsets read in line-then-column order never decrease, and repeats
	// only come from synthetic positions (tab expansion, hard splits).
	prev := -1
	for _, off := range offs {
		require.GreaterOrEqual(t, off, prev, "offsets must not reorder")
		require.Less(t, off, ch.Len())
		prev = off
	}

	// Distinct offsets form a strictly increasing subsequence of the
	// canonical stream.
	seen := map[int]bool{}
	prev = -1
	for _, off := range offs {
		if seen[off] {
			continue
		}
		seen[off] = true
		require.Greater(t, off, prev)
		prev = off
	}
}

func TestHardSplitOverWidthWord(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{para("antidisestablishmentarianism")})

	r := Reflow(ch, Options{Width: 10})

	require.Greater(t, r.Height(), 1, "over-width word must hard-split")
	joined := strings.Join(lineTexts(r), "")
	assert.Equal(t, "antidisestablishmentarianism", joined)

	// Split cells keep their real source offsets.
	for _, l := range r.Lines {
		for _, c := range l.Cells {
			require.NotEqual(t, NoOffset, c.Offset)
		}
	}
}

func TestCodeBlockVerbatim(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{{
		Kind:     book.KindCode,
		Language: "go",
		Lines:    []string{"func main() {", "\treturn", "}"},
	}})

	r := Reflow(ch, Options{Width: 8, TabWidth: 4})

	// Code never wraps, even below the line's width.
	require.Equal(t, 3, r.Height())
	assert.Equal(t, "func main() {", r.Lines[0].Text())

	// Each line carries its block-relative index for line-scoped comments.
	for i, l := range r.Lines {
		assert.Equal(t, i, l.CodeLine)
		assert.Equal(t, LineCode, l.Kind)
	}

	// Tab expansion: four columns, all mapping to the tab's offset.
	tabLine := r.Lines[1]
	assert.Equal(t, "    return", tabLine.Text())
	tabOff := tabLine.Cells[0].Offset
	for _, c := range tabLine.Cells[:4] {
		assert.Equal(t, tabOff, c.Offset)
		assert.Equal(t, ' ', c.Rune)
	}
}

func TestCodeHighlightRoles(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{{
		Kind:     book.KindCode,
		Language: "go",
		Lines:    []string{`x := "hi" // note`},
	}})

	r := Reflow(ch, Options{Width: 40, HighlightCode: true})

	roles := map[StyleRole]bool{}
	for _, c := range r.Lines[0].Cells {
		roles[c.Role] = true
	}
	assert.True(t, roles[RoleCodeString], "string literal should be tagged")
	assert.True(t, roles[RoleCodeComment], "comment should be tagged")
}

func TestTableColumnsFitWidth(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{{
		Kind:   book.KindTable,
		Header: []book.TableCell{{Text: "Name"}, {Text: "Description"}},
		Rows: [][]book.TableCell{
			{{Text: "alpha"}, {Text: "a rather long description that will not fit on one line"}},
			{{Text: "beta"}, {Text: "short"}},
		},
	}})

	width := 30
	r := Reflow(ch, Options{Width: width})

	for _, l := range r.Lines {
		require.LessOrEqual(t, cellsWidth(l.Cells), width, "row %q", l.Text())
	}

	// The long cell wraps within its column, producing extra layout lines
	// for the same table row.
	assert.Greater(t, r.Height(), 4)

	// Header rule present.
	assert.Contains(t, r.Lines[1].Text(), "─")
}

func TestImagePlaceholderHeights(t *testing.T) {
	regular := book.NewChapter("ch1", "", []book.Block{
		{Kind: book.KindImage, Src: "figures/diagram.png", Width: 800, Height: 600},
	})
	wide := book.NewChapter("ch2", "", []book.Block{
		{Kind: book.KindImage, Src: "figures/banner.png", Width: 1200, Height: 300},
	})

	r := Reflow(regular, Options{Width: 40})
	assert.Equal(t, imageHeightRegular, r.Height())

	r = Reflow(wide, Options{Width: 40})
	assert.Equal(t, imageHeightWide, r.Height())

	// The placeholder names the asset.
	found := false
	for _, l := range r.Lines {
		if strings.Contains(l.Text(), "banner.png") {
			found = true
		}
	}
	assert.True(t, found, "placeholder should carry the asset name")
}

func TestMathBlockRendersGrid(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{{
		Kind: book.KindMath,
		Expr: mathgrid.Frac(mathgrid.Num("1"), mathgrid.Ident("n")),
	}})

	r := Reflow(ch, Options{Width: 20})

	require.Equal(t, 3, r.Height())
	for _, l := range r.Lines {
		assert.Equal(t, LineMath, l.Kind)
		for _, c := range l.Cells {
			assert.Equal(t, NoOffset, c.Offset, "math grid cells are synthetic")
		}
	}
	assert.Contains(t, r.Lines[1].Text(), "───")
}

func TestMalformedBlocksDegrade(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{
		{Kind: book.KindTable}, // no cells at all
		{Kind: book.KindMath},  // no expression
		para("healthy paragraph"),
	})

	r := Reflow(ch, Options{Width: 20})

	// The malformed blocks degrade locally; the healthy block still lays
	// out.
	require.NotZero(t, r.Height())
	texts := lineTexts(r)
	assert.Contains(t, strings.Join(texts, "\n"), "healthy paragraph")
}

func TestWidthClampsToMinimum(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{para("tiny")})

	r := Reflow(ch, Options{Width: 1, Margin: 5})

	assert.Equal(t, MinContentWidth, r.Width)
	require.NotZero(t, r.Height())
}

func TestLineAndColumnOfOffset(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{para("The quick brown fox jumps.")})
	r := Reflow(ch, Options{Width: 10})

	// Offset 4 is the 'q' of "quick": line 0, column 4.
	assert.Equal(t, 0, r.LineOfOffset(4))
	assert.Equal(t, 4, r.ColumnOfOffset(4))

	// Offset 10 is the 'b' of "brown": line 1, column 0.
	assert.Equal(t, 1, r.LineOfOffset(10))
	assert.Equal(t, 0, r.ColumnOfOffset(10))
}

func TestColumnOfOffsetCountsWideRunes(t *testing.T) {
	// "日本 text": each CJK rune is 3 bytes and 2 columns wide.
	ch := book.NewChapter("ch1", "", []book.Block{para("日本 text")})
	r := Reflow(ch, Options{Width: 20})

	assert.Equal(t, 0, r.ColumnOfOffset(0))
	assert.Equal(t, 2, r.ColumnOfOffset(3))

	// The 't' sits after two double-width cells and a space: visual
	// column 5, and ResolveScreen maps that column back to the offset.
	assert.Equal(t, 5, r.ColumnOfOffset(7))
	assert.Equal(t, 7, r.ResolveScreen(0, r.ColumnOfOffset(7)))
}

func TestResolveScreenSnapsToPrecedingContent(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{
		para("The quick brown fox jumps."),
		para("second paragraph"),
	})
	r := Reflow(ch, Options{Width: 10})

	// Direct hit.
	assert.Equal(t, 4, r.ResolveScreen(0, 4))

	// Past the end of a line snaps to its last content cell.
	assert.Equal(t, 8, r.ResolveScreen(0, 99))

	// A blank separator line snaps to the preceding line's last offset.
	blank := -1
	for i, l := range r.Lines {
		if l.Kind == LineBlank {
			blank = i
			break
		}
	}
	require.GreaterOrEqual(t, blank, 1)
	assert.Equal(t, r.Lines[blank-1].Cells[len(r.Lines[blank-1].Cells)-1].Offset,
		r.ResolveScreen(blank, 0))

	// Before any content there is nothing to snap to.
	empty := Reflow(book.NewChapter("e", "", nil), Options{Width: 10})
	assert.Equal(t, NoOffset, empty.ResolveScreen(0, 0))
}

func TestEngineCachesByStructuralOptions(t *testing.T) {
	ch := book.NewChapter("ch1", "", []book.Block{para("cache me")})
	e := NewEngine()

	a := e.Layout(ch, Options{Width: 20})
	b := e.Layout(ch, Options{Width: 20})
	assert.Same(t, a, b, "identical options must hit the cache")

	c := e.Layout(ch, Options{Width: 30})
	assert.NotSame(t, a, c, "width change recomputes")

	e.Invalidate("ch1")
	d := e.Layout(ch, Options{Width: 20})
	assert.NotSame(t, a, d, "invalidation drops the cached layout")
}
