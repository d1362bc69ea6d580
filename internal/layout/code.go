package layout

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/zouy50/bookokrat/internal/book"
)

// layoutCode renders a code block verbatim: no wrapping, tabs expanded,
// one layout line per source line. Each line carries its block-relative
// line index because code annotations are line-scoped.
func layoutCode(b *book.Block, blockIdx int, opts Options) []Line {
	text := strings.Join(b.Lines, "\n")
	roles := codeRoles(text, b.Language, opts.HighlightCode)

	start, _ := b.Extent()
	lines := make([]Line, 0, len(b.Lines))
	lineStart := 0
	for li, src := range b.Lines {
		var cells []Cell
		col := 0
		for bi, r := range src {
			off := start + lineStart + bi
			role := RoleCode
			if roles != nil {
				role = roles[lineStart+bi]
			}

			if r == '\t' {
				// Every expansion column keeps the tab's source offset;
				// only the position is synthetic.
				pad := opts.tabWidth() - col%opts.tabWidth()
				for range pad {
					cells = append(cells, Cell{Rune: ' ', Role: role, Offset: off})
					col++
				}
				continue
			}

			cells = append(cells, Cell{Rune: r, Role: role, Offset: off})
			col += cellWidth(r)
		}

		lines = append(lines, Line{Cells: cells, Kind: LineCode, Block: blockIdx, CodeLine: li})
		lineStart += len(src) + 1 // +1 for the joining newline
	}
	return lines
}

// codeRoles tokenizes code and returns a per-byte style role slice, or nil
// when highlighting is disabled or tokenization fails (callers fall back
// to RoleCode).
func codeRoles(text, language string, highlight bool) []StyleRole {
	if !highlight || text == "" {
		return nil
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	roles := make([]StyleRole, len(text))
	pos := 0
	for _, tok := range it.Tokens() {
		role := roleForToken(tok.Type)
		for range len(tok.Value) {
			if pos >= len(roles) {
				return roles
			}
			roles[pos] = role
			pos++
		}
	}
	for ; pos < len(roles); pos++ {
		roles[pos] = RoleCode
	}
	return roles
}

func roleForToken(t chroma.TokenType) StyleRole {
	switch {
	case t.InCategory(chroma.Keyword):
		return RoleCodeKeyword
	case t.InSubCategory(chroma.LiteralString):
		return RoleCodeString
	case t.InCategory(chroma.Comment):
		return RoleCodeComment
	case t.InCategory(chroma.Literal):
		return RoleCodeLiteral
	default:
		return RoleCode
	}
}
