package mathgrid

import "strings"

// Grid is a rectangular character grid with a baseline row. Parents align
// child grids on the baseline rather than the top or bottom edge so that
// mixed-height operands (a fraction next to a plain identifier) line up.
type Grid struct {
	Rows     [][]rune
	Baseline int
}

// NewGrid creates a blank grid of the given size with the given baseline.
func NewGrid(width, height, baseline int) Grid {
	rows := make([][]rune, height)
	for i := range rows {
		row := make([]rune, width)
		for j := range row {
			row[j] = ' '
		}
		rows[i] = row
	}
	return Grid{Rows: rows, Baseline: baseline}
}

// FromText creates a single-row grid from the given text.
func FromText(text string) Grid {
	runes := []rune(text)
	row := make([]rune, len(runes))
	copy(row, runes)
	return Grid{Rows: [][]rune{row}, Baseline: 0}
}

// Width returns the grid width in columns.
func (g Grid) Width() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Height returns the grid height in rows.
func (g Grid) Height() int {
	return len(g.Rows)
}

// Set writes a rune at (x, y), ignoring out-of-bounds coordinates.
func (g Grid) Set(x, y int, r rune) {
	if y < 0 || y >= len(g.Rows) || x < 0 || x >= len(g.Rows[y]) {
		return
	}
	g.Rows[y][x] = r
}

// Blit copies src into g with its top-left corner at (x, y).
func (g Grid) Blit(src Grid, x, y int) {
	for sy, row := range src.Rows {
		for sx, r := range row {
			g.Set(x+sx, y+sy, r)
		}
	}
}

// String renders the grid as newline-joined rows.
func (g Grid) String() string {
	lines := make([]string, len(g.Rows))
	for i, row := range g.Rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// hconcat joins grids left to right, aligning them on their baselines.
func hconcat(grids ...Grid) Grid {
	if len(grids) == 0 {
		return FromText("")
	}

	above, below := 0, 0
	width := 0
	for _, g := range grids {
		if g.Baseline > above {
			above = g.Baseline
		}
		if h := g.Height() - g.Baseline; h > below {
			below = h
		}
		width += g.Width()
	}

	out := NewGrid(width, above+below, above)
	x := 0
	for _, g := range grids {
		out.Blit(g, x, above-g.Baseline)
		x += g.Width()
	}
	return out
}

// vstack stacks grids top to bottom, centering each horizontally.
// The baseline of the result is supplied by the caller.
func vstack(baseline int, grids ...Grid) Grid {
	width, height := 0, 0
	for _, g := range grids {
		if g.Width() > width {
			width = g.Width()
		}
		height += g.Height()
	}

	out := NewGrid(width, height, baseline)
	y := 0
	for _, g := range grids {
		out.Blit(g, (width-g.Width())/2, y)
		y += g.Height()
	}
	return out
}

// padded returns a copy of g widened by left and right space columns.
func padded(g Grid, left, right int) Grid {
	out := NewGrid(g.Width()+left+right, g.Height(), g.Baseline)
	out.Blit(g, left, 0)
	return out
}
