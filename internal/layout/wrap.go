package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/zouy50/bookokrat/internal/book"
)

// inlineCells flattens a block's inline spans into a single cell run with
// real stream offsets. Newlines inside inline text are treated as spaces;
// paragraphs own no hard breaks.
func inlineCells(spans []book.Inline, baseRole StyleRole) []Cell {
	var cells []Cell
	for _, s := range spans {
		role := roleForInline(s.Kind, baseRole)
		for i, r := range s.Text {
			if r == '\n' {
				r = ' '
			}
			cells = append(cells, Cell{Rune: r, Role: role, Offset: s.Start + i})
		}
	}
	return cells
}

func roleForInline(kind book.InlineKind, base StyleRole) StyleRole {
	if base != RoleText {
		return base
	}
	switch kind {
	case book.InlineEmphasis:
		return RoleEmphasis
	case book.InlineStrong:
		return RoleStrong
	case book.InlineCode:
		return RoleInlineCode
	case book.InlineLink:
		return RoleLink
	case book.InlineMath:
		return RoleMath
	default:
		return RoleText
	}
}

// wrapCells greedily wraps a cell run to the given width: words accumulate
// until the next would overflow, soft-wrapped spaces are dropped at line
// ends, and a single word wider than the line is hard-split at the column
// boundary (split cells keep their real source offsets — only the position
// is synthetic).
func wrapCells(cells []Cell, width int) [][]Cell {
	width = max(width, 1)

	var (
		lines   [][]Cell
		cur     []Cell
		curW    int
		pending []Cell // spaces held back until the next word fits
	)

	flush := func() {
		lines = append(lines, cur)
		cur = nil
		curW = 0
		pending = nil
	}

	i := 0
	for i < len(cells) {
		if cells[i].Rune == ' ' {
			j := i
			for j < len(cells) && cells[j].Rune == ' ' {
				j++
			}
			if curW > 0 {
				pending = cells[i:j]
			}
			i = j
			continue
		}

		// Collect the next word.
		j := i
		wordW := 0
		for j < len(cells) && cells[j].Rune != ' ' {
			wordW += cellWidth(cells[j].Rune)
			j++
		}
		word := cells[i:j]
		i = j

		pendingW := len(pending)
		switch {
		case curW+pendingW+wordW <= width:
			cur = append(cur, pending...)
			cur = append(cur, word...)
			curW += pendingW + wordW
			pending = nil
		case wordW <= width:
			flush()
			cur = append(cur, word...)
			curW = wordW
		default:
			// Hard-split an over-width word at column boundaries.
			if curW > 0 {
				flush()
			}
			for _, c := range word {
				w := cellWidth(c.Rune)
				if curW+w > width {
					flush()
				}
				cur = append(cur, c)
				curW += w
			}
		}
	}

	if curW > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

func cellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}
