package layout

import (
	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/mathgrid"
)

// layoutMath renders a math block through the grid sub-renderer and
// centers it. Grid cells are synthetic: the expression's literal text
// lives in the canonical stream for search, but the two-dimensional
// rendering cannot be mapped cell-for-cell, so offset lookups fall back
// to the block index.
func layoutMath(b *book.Block, blockIdx int, width int) []Line {
	grid := mathgrid.Render(b.Expr)

	lines := make([]Line, 0, grid.Height())
	for _, row := range grid.Rows {
		indent := max((width-len(row))/2, 0)

		cells := make([]Cell, 0, indent+len(row))
		for range indent {
			cells = append(cells, Cell{Rune: ' ', Role: RoleMath, Offset: NoOffset})
		}
		for x, r := range row {
			if indent+x >= width {
				break // clip grids wider than the viewport
			}
			cells = append(cells, Cell{Rune: r, Role: RoleMath, Offset: NoOffset})
		}
		lines = append(lines, Line{Cells: cells, Kind: LineMath, Block: blockIdx, CodeLine: -1})
	}
	return lines
}
