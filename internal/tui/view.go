package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zouy50/bookokrat/internal/core/styles"
	"github.com/zouy50/bookokrat/internal/layout"
	"github.com/zouy50/bookokrat/internal/reader"
)

// View implements tea.Model. Only the viewport window is rendered;
// selection, search and annotation indicators are projected from offset
// space onto cells here, at draw time, never stored in the layout.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.mode {
	case modeHelp:
		return m.renderHelp()
	case modeViewer:
		return m.renderViewer()
	}

	var b strings.Builder
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderBottomBar())
	return b.String()
}

// overlays carries the per-chapter ranges projected onto cells.
type overlays struct {
	selStart, selEnd int
	hasSel           bool
	matches          []reader.Match
	current          reader.Match
	hasCurrent       bool
	annots           []reader.AnnotationRange
}

func (m Model) renderContent() string {
	r := m.session.Layout()
	ch := m.session.Chapter()
	vp := m.session.Viewport

	ov := overlays{}
	if ch != nil {
		if start, end, ok := m.session.Selection.Range(); ok {
			ov.selStart, ov.selEnd, ov.hasSel = start, end, true
		}
		for _, match := range m.session.Search.Matches() {
			if match.ChapterID == ch.ID {
				ov.matches = append(ov.matches, match)
			}
		}
		if cur, ok := m.session.Search.Current(); ok && cur.ChapterID == ch.ID {
			ov.current, ov.hasCurrent = cur, true
		}
		ov.annots = m.session.Annotations.Ranges(ch)
	}

	margin := strings.Repeat(" ", m.session.Options().Margin)

	lines := make([]string, 0, m.contentHeight())
	for i := vp.Top; i < vp.Bottom() && i < r.Height(); i++ {
		lines = append(lines, margin+renderLine(r.Lines[i], ov))
	}
	for len(lines) < m.contentHeight() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderLine groups consecutive cells with identical styling into runs to
// keep the escape-sequence volume down.
func renderLine(line layout.Line, ov overlays) string {
	var (
		b        strings.Builder
		run      []rune
		runStyle lipgloss.Style
		haveRun  bool
	)

	flush := func() {
		if haveRun {
			b.WriteString(runStyle.Render(string(run)))
			run = run[:0]
			haveRun = false
		}
	}

	for _, c := range line.Cells {
		style := cellStyle(c, ov)
		if !haveRun {
			runStyle = style
			haveRun = true
		} else if !sameStyle(style, runStyle) {
			flush()
			runStyle = style
			haveRun = true
		}
		run = append(run, c.Rune)
	}
	flush()
	return b.String()
}

func cellStyle(c layout.Cell, ov overlays) lipgloss.Style {
	style := roleStyle(c.Role)

	if c.Offset == layout.NoOffset {
		return style
	}
	for _, a := range ov.annots {
		if c.Offset >= a.Start && c.Offset < a.End {
			style = style.Inherit(styles.AnnotationStyle)
			break
		}
	}
	if ov.hasCurrent && c.Offset >= ov.current.Start && c.Offset < ov.current.End {
		return styles.SearchCurrentStyle
	}
	for _, match := range ov.matches {
		if c.Offset >= match.Start && c.Offset < match.End {
			style = style.Inherit(styles.SearchMatchStyle)
			break
		}
	}
	if ov.hasSel && c.Offset >= ov.selStart && c.Offset < ov.selEnd {
		style = style.Inherit(styles.SelectionStyle)
	}
	return style
}

func roleStyle(role layout.StyleRole) lipgloss.Style {
	switch role {
	case layout.RoleHeading:
		return styles.HeadingStyle
	case layout.RoleEmphasis:
		return styles.EmphasisStyle
	case layout.RoleStrong:
		return styles.StrongStyle
	case layout.RoleInlineCode:
		return styles.InlineCodeStyle
	case layout.RoleLink:
		return styles.LinkStyle
	case layout.RoleMath:
		return styles.MathStyle
	case layout.RoleCode:
		return styles.CodeStyle
	case layout.RoleCodeKeyword:
		return styles.CodeKeywordStyle
	case layout.RoleCodeString:
		return styles.CodeStringStyle
	case layout.RoleCodeComment:
		return styles.CodeCommentStyle
	case layout.RoleCodeLiteral:
		return styles.CodeLiteralStyle
	case layout.RoleTableHeader:
		return styles.TableHeaderStyle
	case layout.RoleTableBorder:
		return styles.TableBorderStyle
	case layout.RoleImage:
		return styles.ImageStyle
	default:
		return styles.TextStyle
	}
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.String() == b.String()
}

func (m Model) renderBottomBar() string {
	switch m.mode {
	case modeSearch:
		return styles.SearchBarStyle.Render(m.searchInput.View())
	case modeAnnotate:
		return m.renderAnnotateModal()
	}

	b := m.session.Book()
	r := m.session.Layout()
	percent := 100
	if r.Height() > m.session.Viewport.Height {
		percent = min(m.session.Viewport.Bottom()*100/r.Height(), 100)
	}

	left := fmt.Sprintf("%s  %d/%d  %d%%", b.Title, m.session.ChapterIndex()+1, len(b.Chapters), percent)
	if m.status != "" {
		left += "  " + m.status
	}
	hint := styles.StatusKeyStyle.Render("?") + styles.StatusBarStyle.Render(" help")

	bar := styles.StatusBarStyle.Render(left)
	pad := m.width - lipgloss.Width(bar) - lipgloss.Width(hint)
	if pad < 1 {
		return bar
	}
	return bar + strings.Repeat(" ", pad) + hint
}

func (m Model) renderAnnotateModal() string {
	title := styles.ModalTitleStyle.Render("Annotate")
	help := styles.ModalHelpStyle.Render("ctrl+s save · esc cancel")
	return styles.ModalStyle.Render(title + "\n" + m.noteInput.View() + "\n" + help)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ListTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, binding := range m.keys.helpEntries() {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.StatusKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)),
			styles.HelpStyle.Render(h.Desc)))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("press any key to close"))
	return b.String()
}

func (m Model) renderViewer() string {
	lines := strings.Split(m.viewerText, "\n")
	top := min(m.viewerScroll, max(len(lines)-1, 0))
	end := min(top+m.contentHeight(), len(lines))

	var b strings.Builder
	b.WriteString(strings.Join(lines[top:end], "\n"))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("j/k scroll · esc close"))
	return b.String()
}
