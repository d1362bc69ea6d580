package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/zouy50/bookokrat/internal/book"
)

// minColumnWidth is the narrowest a column shrinks to before clipping.
const minColumnWidth = 3

// layoutTable renders a table block: column widths are sized to the widest
// cell per column, shrunk proportionally when the total exceeds the
// available width, and cell content word-wraps within its column so one
// table row may span several layout lines.
func layoutTable(b *book.Block, blockIdx int, width int) []Line {
	cols := tableColumns(b)
	if cols == 0 {
		return nil
	}

	widths := columnWidths(b, cols, width)

	var lines []Line
	if len(b.Header) > 0 {
		lines = append(lines, tableRowLines(b.Header, widths, blockIdx, RoleTableHeader)...)
		lines = append(lines, tableRuleLine(widths, blockIdx))
	}
	for _, row := range b.Rows {
		lines = append(lines, tableRowLines(row, widths, blockIdx, RoleText)...)
	}
	return lines
}

func tableColumns(b *book.Block) int {
	cols := len(b.Header)
	for _, row := range b.Rows {
		cols = max(cols, len(row))
	}
	return cols
}

// columnWidths computes per-column widths from maximum rendered cell
// width, then shrinks proportionally until the row (columns plus " │ "
// separators) fits the available width.
func columnWidths(b *book.Block, cols, width int) []int {
	widths := make([]int, cols)
	measure := func(cells []book.TableCell) {
		for i, cell := range cells {
			if i < cols {
				widths[i] = max(widths[i], runewidth.StringWidth(cell.Text))
			}
		}
	}
	measure(b.Header)
	for _, row := range b.Rows {
		measure(row)
	}
	for i := range widths {
		widths[i] = max(widths[i], 1)
	}

	overhead := 3 * (cols - 1)
	avail := max(width-overhead, cols*minColumnWidth)

	total := 0
	for _, w := range widths {
		total += w
	}
	if total <= avail {
		return widths
	}

	for i, w := range widths {
		widths[i] = max(w*avail/total, minColumnWidth)
	}
	return widths
}

// tableRowLines wraps each cell into its column and pads the shorter
// columns so every layout line of the row has aligned separators.
func tableRowLines(row []book.TableCell, widths []int, blockIdx int, role StyleRole) []Line {
	wrapped := make([][][]Cell, len(widths))
	height := 1
	for i := range widths {
		var cells []Cell
		if i < len(row) {
			cells = cellRun(row[i], role)
		}
		wrapped[i] = wrapCells(cells, widths[i])
		height = max(height, len(wrapped[i]))
	}

	lines := make([]Line, 0, height)
	for y := range height {
		var cells []Cell
		for i, colWidth := range widths {
			if i > 0 {
				cells = append(cells, sepCells(" │ ")...)
			}

			var content []Cell
			if y < len(wrapped[i]) {
				content = wrapped[i][y]
			}
			cells = append(cells, content...)
			for pad := colWidth - cellsWidth(content); pad > 0; pad-- {
				cells = append(cells, Cell{Rune: ' ', Role: RoleText, Offset: NoOffset})
			}
		}
		lines = append(lines, Line{Cells: cells, Kind: LineTable, Block: blockIdx, CodeLine: -1})
	}
	return lines
}

// tableRuleLine draws the header separator: ─── across columns, ┼ at
// separator positions.
func tableRuleLine(widths []int, blockIdx int) Line {
	var cells []Cell
	for i, w := range widths {
		if i > 0 {
			cells = append(cells, sepCells("─┼─")...)
		}
		for range w {
			cells = append(cells, Cell{Rune: '─', Role: RoleTableBorder, Offset: NoOffset})
		}
	}
	return Line{Cells: cells, Kind: LineTable, Block: blockIdx, CodeLine: -1}
}

func cellRun(cell book.TableCell, role StyleRole) []Cell {
	var cells []Cell
	for i, r := range cell.Text {
		if r == '\n' {
			r = ' '
		}
		cells = append(cells, Cell{Rune: r, Role: role, Offset: cell.Start + i})
	}
	return cells
}

func sepCells(s string) []Cell {
	var cells []Cell
	for _, r := range s {
		cells = append(cells, Cell{Rune: r, Role: RoleTableBorder, Offset: NoOffset})
	}
	return cells
}

func cellsWidth(cells []Cell) int {
	w := 0
	for _, c := range cells {
		w += cellWidth(c.Rune)
	}
	return w
}
