package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zouy50/bookokrat/internal/core/styles"
)

// openViewer renders all of the book's annotations as a markdown overlay.
func (m *Model) openViewer() {
	var b strings.Builder
	fmt.Fprintf(&b, "# Annotations — %s\n\n", m.session.Book().Title)

	total := 0
	for _, ch := range m.session.Book().Chapters {
		annots := m.session.Annotations.Chapter(ch.ID)
		if len(annots) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", ch.Title)
		for _, a := range annots {
			fmt.Fprintf(&b, "> %s\n\n", a.Target.Snippet)
			if a.Note != "" {
				b.WriteString(a.Note)
				b.WriteString("\n\n")
			}
			total++
		}
	}
	if total == 0 {
		b.WriteString("_No annotations yet. Select text and press `a`._\n")
	}

	text := b.String()
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	if err == nil {
		if out, rerr := r.Render(text); rerr == nil {
			text = out
		}
	}
	if err != nil {
		m.log.Warn().Err(err).Msg("glamour renderer unavailable, showing raw markdown")
	}

	m.viewerText = text
	m.viewerScroll = 0
	m.mode = modeViewer
}
