package layout

import (
	"path"

	"github.com/mattn/go-runewidth"

	"github.com/zouy50/bookokrat/internal/book"
)

// Placeholder box heights in rows, matching the reading pane's feel for
// regular and panoramic figures.
const (
	imageHeightRegular = 15
	imageHeightWide    = 7

	// wideAspectRatio is the width:height ratio past which an image gets
	// the short box.
	wideAspectRatio = 3.0

	// shortImageHeight is the pixel height below which an image gets the
	// short box regardless of ratio.
	shortImageHeight = 150
)

// imageBoxHeight sizes the reserved block from the image's declared
// dimensions. Unknown dimensions get the regular box.
func imageBoxHeight(width, height int) int {
	if width <= 0 || height <= 0 {
		return imageHeightRegular
	}
	if float64(width)/float64(height) > wideAspectRatio || height < shortImageHeight {
		return imageHeightWide
	}
	return imageHeightRegular
}

// layoutImage reserves a placeholder box sized from the image's declared
// aspect ratio. Pixel data never reaches the engine, so the box shows the
// asset name; all cells are synthetic.
func layoutImage(b *book.Block, blockIdx int, width int) []Line {
	boxH := imageBoxHeight(b.Width, b.Height)
	boxW := max(min(width, 40), MinContentWidth)

	label := path.Base(b.Src)
	if b.Src == "" {
		label = "missing image"
	}
	label = runewidth.Truncate(label, boxW-2, "…")

	lines := make([]Line, 0, boxH)
	for y := range boxH {
		var row string
		switch y {
		case 0:
			row = "┌" + repeatRune('─', boxW-2) + "┐"
		case boxH - 1:
			row = "└" + repeatRune('─', boxW-2) + "┘"
		case boxH / 2:
			pad := boxW - 2 - runewidth.StringWidth(label)
			row = "│" + repeatRune(' ', pad/2) + label + repeatRune(' ', pad-pad/2) + "│"
		default:
			row = "│" + repeatRune(' ', boxW-2) + "│"
		}

		var cells []Cell
		for _, r := range row {
			cells = append(cells, Cell{Rune: r, Role: RoleImage, Offset: NoOffset})
		}
		lines = append(lines, Line{Cells: cells, Kind: LineImage, Block: blockIdx, CodeLine: -1})
	}
	return lines
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = r
	}
	return string(runes)
}
