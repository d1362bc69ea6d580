package layout

// MinContentWidth is the narrowest layout the engine will produce. Widths
// below it are clamped rather than rejected so a tiny terminal still
// renders something.
const MinContentWidth = 4

// DefaultTabWidth is used when Options.TabWidth is unset.
const DefaultTabWidth = 4

// Options are the style inputs of the reflow function. Layout is a pure
// function of (chapter, Options); identical values always produce
// identical lines. Colors are deliberately absent — themes restyle cells
// at render time without invalidating layout.
type Options struct {
	// Width is the total terminal columns available.
	Width int
	// Margin is the horizontal margin applied on each side.
	Margin int
	// TabWidth is the tab expansion width for code blocks.
	TabWidth int
	// HighlightCode enables syntax-aware style roles for code blocks.
	HighlightCode bool
}

// ContentWidth returns the usable column count after margins, clamped to
// MinContentWidth.
func (o Options) ContentWidth() int {
	w := o.Width - 2*o.Margin
	return max(w, MinContentWidth)
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return o.TabWidth
}
