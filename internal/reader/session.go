package reader

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/annotate"
	"github.com/zouy50/bookokrat/internal/core/logging"
	"github.com/zouy50/bookokrat/internal/layout"
)

// Session is the single owner of all mutable reading state for one open
// book: current chapter, viewport, selection, search cursor, history, and
// the annotation index. One input event is fully processed against the
// session before the next; the session runs no background work.
type Session struct {
	log    zerolog.Logger
	book   *book.Book
	engine *layout.Engine
	opts   layout.Options

	chapter int

	Viewport    Viewport
	Selection   Selection
	Search      *Search
	History     History
	Annotations *AnnotationIndex
}

// NewSession opens a book at its first chapter.
func NewSession(b *book.Book, opts layout.Options, annots []annotate.Annotation) *Session {
	return &Session{
		log:         logging.Component("reader"),
		book:        b,
		engine:      layout.NewEngine(),
		opts:        opts,
		Search:      NewSearch(),
		Annotations: NewAnnotationIndex(b.ID, annots),
	}
}

// Book returns the open book.
func (s *Session) Book() *book.Book {
	return s.book
}

// Chapter returns the current chapter.
func (s *Session) Chapter() *book.Chapter {
	if len(s.book.Chapters) == 0 {
		return nil
	}
	return s.book.Chapters[s.chapter]
}

// ChapterIndex returns the current chapter's position.
func (s *Session) ChapterIndex() int {
	return s.chapter
}

// Options returns the current layout options.
func (s *Session) Options() layout.Options {
	return s.opts
}

// Layout returns the current chapter's layout, computed or cached.
func (s *Session) Layout() *layout.Result {
	ch := s.Chapter()
	if ch == nil {
		return &layout.Result{}
	}
	return s.engine.Layout(ch, s.opts)
}

// Resize applies a new terminal size. Layout caches are invalidated
// wholesale; the viewport re-anchors on the offset it was showing so the
// reader stays at the same content.
func (s *Session) Resize(width, height int) {
	loc := s.Location()
	s.opts.Width = width
	s.Viewport.Height = height
	s.engine.InvalidateAll()
	s.anchorViewport(loc.Offset)
}

// AdjustMargin changes the horizontal margin, clamped to keep the content
// area usable. Margin is a pure layout input, so the change is just
// another reflow.
func (s *Session) AdjustMargin(delta int) {
	margin := s.opts.Margin + delta
	margin = max(margin, 0)
	margin = min(margin, (s.opts.Width-layout.MinContentWidth)/2)

	if margin == s.opts.Margin {
		return
	}
	loc := s.Location()
	s.opts.Margin = margin
	s.anchorViewport(loc.Offset)
}

// anchorViewport scrolls so the line showing the given offset is at the
// top, after any option change that moved content between lines.
func (s *Session) anchorViewport(off int) {
	r := s.Layout()
	s.Viewport.Top = r.LineOfOffset(off)
	s.Viewport.Clamp(r.Height())
}

// Location returns the current reading position: the first content offset
// visible in the viewport.
func (s *Session) Location() book.Location {
	ch := s.Chapter()
	if ch == nil {
		return book.Location{}
	}
	off := s.Layout().ResolveScreen(s.Viewport.Top, 0)
	return book.Location{ChapterID: ch.ID, Offset: max(off, 0)}
}

// OpenChapter switches to a chapter by index, resetting viewport and
// selection. Search matches stay; they are book-scoped.
func (s *Session) OpenChapter(idx int) bool {
	if idx < 0 || idx >= len(s.book.Chapters) {
		return false
	}
	s.chapter = idx
	s.Viewport.ToTop()
	s.Selection.Clear()
	s.log.Debug().Str("chapter", s.book.Chapters[idx].ID).Msg("chapter opened")
	return true
}

// NextChapter and PrevChapter move through the table of contents.
func (s *Session) NextChapter() bool { return s.OpenChapter(s.chapter + 1) }
func (s *Session) PrevChapter() bool { return s.OpenChapter(s.chapter - 1) }

// GoTo jumps to a location without recording history. Used by history
// itself, bookmark resume, and programmatic scrolling.
func (s *Session) GoTo(loc book.Location) bool {
	idx := s.book.ChapterIndex(loc.ChapterID)
	if idx < 0 {
		return false
	}
	s.chapter = idx
	s.Selection.Clear()
	s.anchorViewport(loc.Offset)
	return true
}

// JumpTo records the current location in history, then jumps. Link
// follows and search navigation go through here.
func (s *Session) JumpTo(loc book.Location) bool {
	origin := s.Location()
	if !s.GoTo(loc) {
		return false
	}
	s.History.Push(origin)
	return true
}

// Back and Forward move through the jump list.
func (s *Session) Back() bool {
	loc, ok := s.History.Back(s.Location())
	if !ok {
		return false
	}
	return s.GoTo(loc)
}

func (s *Session) Forward() bool {
	loc, ok := s.History.Forward()
	if !ok {
		return false
	}
	return s.GoTo(loc)
}

// FollowLink dispatches an activated link. Internal anchors ("#id") jump
// within the book and push history; anything else is returned as an
// external URL for the shell to open.
func (s *Session) FollowLink(link *book.Inline) (string, bool) {
	if link == nil || link.Target == "" {
		return "", false
	}

	anchor, found := strings.CutPrefix(link.Target, "#")
	if !found {
		return link.Target, true
	}

	for _, ch := range s.book.Chapters {
		if off, ok := ch.AnchorOffset(anchor); ok {
			s.JumpTo(book.Location{ChapterID: ch.ID, Offset: off})
			return "", false
		}
	}
	s.log.Warn().Str("anchor", anchor).Msg("link anchor not found")
	return "", false
}

// JumpToMatch moves to a search match and scrolls it into view.
func (s *Session) JumpToMatch(m Match) {
	s.JumpTo(book.Location{ChapterID: m.ChapterID, Offset: m.Start})
	r := s.Layout()
	s.Viewport.EnsureVisible(r.LineOfOffset(m.Start), r.Height())
}

// StartSelectionAt begins a selection at a screen position. Positions over
// synthetic cells snap to the nearest preceding content.
func (s *Session) StartSelectionAt(line, col int) {
	ch := s.Chapter()
	if ch == nil {
		return
	}
	off := s.Layout().ResolveScreen(s.Viewport.Top+line, col)
	s.Selection.Start(ch, off)
}

// ExtendSelectionAt grows the selection to a screen position during a
// drag, re-resolving against the current layout. Auto-scroll ticks call
// this again after each scroll step so the endpoint tracks newly visible
// lines.
func (s *Session) ExtendSelectionAt(line, col int) {
	ch := s.Chapter()
	if ch == nil {
		return
	}
	off := s.Layout().ResolveScreen(s.Viewport.Top+line, col)
	s.Selection.Extend(ch, off)
}

// ReleaseSelectionAt ends a press at a screen position. A click with no
// drag on a link returns the activated link.
func (s *Session) ReleaseSelectionAt(line, col int) *book.Inline {
	ch := s.Chapter()
	if ch == nil {
		return nil
	}
	off := s.Layout().ResolveScreen(s.Viewport.Top+line, col)
	return s.Selection.Release(ch, off)
}

// SelectWordAt selects the word under a screen position.
func (s *Session) SelectWordAt(line, col int) {
	ch := s.Chapter()
	if ch == nil {
		return
	}
	off := s.Layout().ResolveScreen(s.Viewport.Top+line, col)
	if off >= 0 {
		s.Selection.SelectWord(ch, off)
	}
}

// SelectParagraphAt selects the block under a screen position.
func (s *Session) SelectParagraphAt(line, col int) {
	ch := s.Chapter()
	if ch == nil {
		return
	}
	off := s.Layout().ResolveScreen(s.Viewport.Top+line, col)
	if off >= 0 {
		s.Selection.SelectParagraph(ch, off)
	}
}
