// Package tui is the terminal reader shell: a bubbletea program over a
// reader.Session. The shell decodes input and draws cells; every document
// semantic (layout, selection, search, history, anchors) lives in the
// session and its engines.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zouy50/bookokrat/internal/core/annotate"
	"github.com/zouy50/bookokrat/internal/core/bookmark"
	"github.com/zouy50/bookokrat/internal/core/logging"
	"github.com/zouy50/bookokrat/internal/reader"
)

// Rapid wheel events within this window coalesce into one scroll
// application; the net distance is preserved.
const wheelFlushInterval = 25 * time.Millisecond

// autoScrollInterval drives edge-drag scrolling while the button is held.
const autoScrollInterval = 60 * time.Millisecond

// wheelStep is the line distance of one wheel notch.
const wheelStep = 3

// doubleClickWindow is the max gap between clicks of a multi-click.
const doubleClickWindow = 400 * time.Millisecond

type mode int

const (
	modeRead mode = iota
	modeSearch
	modeAnnotate
	modeViewer
	modeHelp
)

type (
	wheelFlushMsg struct{}
	autoScrollMsg struct{}
)

// Model is the bubbletea model for the reading surface.
type Model struct {
	log     zerolog.Logger
	keys    keyMap
	session *reader.Session
	annots  annotate.Store
	marks   bookmark.Store

	width  int
	height int
	mode   mode

	searchInput textinput.Model
	noteInput   textarea.Model
	editingID   string

	viewerText   string
	viewerScroll int

	// Wheel coalescing: deltas accumulate until the flush tick applies
	// them in one scroll.
	wheelDelta   int
	wheelPending bool

	// Drag state for mouse selection.
	dragging      bool
	dragCol       int
	autoScrollDir int
	autoScrolling bool

	lastClick     time.Time
	lastClickPos  [2]int
	clickStreak   int
	pendingRedraw bool

	status string
}

// New creates the reader shell over an open session. Stores may be nil
// for an ephemeral session; persistence is then skipped.
func New(session *reader.Session, annots annotate.Store, marks bookmark.Store) Model {
	si := textinput.New()
	si.Placeholder = "search"
	si.Prompt = "/"
	si.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "note"
	ta.SetHeight(4)

	return Model{
		log:         logging.Component("tui"),
		keys:        defaultKeyMap(),
		session:     session,
		annots:      annots,
		marks:       marks,
		searchInput: si,
		noteInput:   ta,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// contentHeight is the reading pane height: everything above the one-row
// bottom bar.
func (m Model) contentHeight() int {
	return max(m.height-1, 0)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Any size change invalidates layout wholesale; the session
		// re-anchors on the offset it was showing.
		m.session.Resize(msg.Width, m.contentHeight())
		m.searchInput.Width = max(msg.Width-4, 10)
		m.noteInput.SetWidth(max(msg.Width-8, 20))
		return m, nil

	case wheelFlushMsg:
		return m.flushWheel()

	case autoScrollMsg:
		return m.autoScrollTick()

	case tea.MouseMsg:
		if m.mode == modeRead {
			return m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.handleSearchKey(msg)
		case modeAnnotate:
			return m.handleAnnotateKey(msg)
		case modeViewer:
			return m.handleViewerKey(msg)
		case modeHelp:
			m.mode = modeRead
			return m, nil
		default:
			return m.handleReadKey(msg)
		}
	}

	return m, nil
}

func (m Model) handleReadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.session.Layout()
	total := r.Height()
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		m.saveProgress()
		return m, tea.Quit

	case key.Matches(msg, k.ScrollDown):
		m.session.Viewport.ScrollLines(1, total)
	case key.Matches(msg, k.ScrollUp):
		m.session.Viewport.ScrollLines(-1, total)
	case key.Matches(msg, k.HalfDown):
		m.session.Viewport.HalfPageDown(total)
	case key.Matches(msg, k.HalfUp):
		m.session.Viewport.HalfPageUp(total)
	case key.Matches(msg, k.PageDown):
		m.session.Viewport.PageDown(total)
	case key.Matches(msg, k.PageUp):
		m.session.Viewport.PageUp(total)
	case key.Matches(msg, k.Top):
		m.session.Viewport.ToTop()
	case key.Matches(msg, k.Bottom):
		m.session.Viewport.ToBottom(total)

	case key.Matches(msg, k.NextChapter):
		m.session.NextChapter()
	case key.Matches(msg, k.PrevChapter):
		m.session.PrevChapter()
	case key.Matches(msg, k.Back):
		m.session.Back()
	case key.Matches(msg, k.Forward):
		m.session.Forward()

	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	case key.Matches(msg, k.NextMatch):
		if match, ok := m.session.Search.Next(); ok {
			m.session.JumpToMatch(match)
		}
	case key.Matches(msg, k.PrevMatch):
		if match, ok := m.session.Search.Previous(); ok {
			m.session.JumpToMatch(match)
		}

	case key.Matches(msg, k.Annotate):
		if m.session.Selection.Active() {
			m.mode = modeAnnotate
			m.editingID = ""
			m.noteInput.SetValue("")
			return m, m.noteInput.Focus()
		}
		m.status = "select text first"
	case key.Matches(msg, k.ViewNotes):
		m.openViewer()
	case key.Matches(msg, k.Bookmark):
		m.addBookmark()

	case key.Matches(msg, k.MarginIn):
		m.session.AdjustMargin(1)
	case key.Matches(msg, k.MarginOut):
		m.session.AdjustMargin(-1)

	case key.Matches(msg, k.Help):
		m.mode = modeHelp

	case key.Matches(msg, k.ClearOrEsc):
		m.session.Selection.Clear()
		m.session.Search.Clear()
		m.status = ""
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeRead
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.mode = modeRead
		m.searchInput.Blur()
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		// Book-wide scope; a fresh query supersedes the previous scan.
		matches, err := m.session.Search.Book(context.Background(), m.session.Book(), query, m.session.Search.DefaultMode)
		if err != nil {
			m.log.Warn().Err(err).Msg("search failed")
			return m, nil
		}
		if len(matches) == 0 {
			m.status = "no matches"
			return m, nil
		}
		m.status = ""
		if match, ok := m.session.Search.Next(); ok {
			m.session.JumpToMatch(match)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleAnnotateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeRead
		m.noteInput.Blur()
		return m, nil
	case "ctrl+s":
		m.mode = modeRead
		m.noteInput.Blur()
		m.saveAnnotation(m.noteInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v":
		m.mode = modeRead
	case "j", "down":
		m.viewerScroll++
	case "k", "up":
		m.viewerScroll = max(m.viewerScroll-1, 0)
	}
	return m, nil
}

// handleMouse resolves screen positions through the layout and drives
// selection, link activation, wheel coalescing, and edge auto-scroll.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		return m.accumulateWheel(-wheelStep)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		return m.accumulateWheel(wheelStep)
	}

	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	col := max(msg.X-m.session.Options().Margin, 0)
	line := msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		streak := m.clickStreak
		if time.Since(m.lastClick) < doubleClickWindow && m.lastClickPos == [2]int{msg.X, msg.Y} {
			streak++
		} else {
			streak = 1
		}
		m.clickStreak = streak
		m.lastClick = time.Now()
		m.lastClickPos = [2]int{msg.X, msg.Y}

		switch streak {
		case 2:
			m.session.SelectWordAt(line, col)
		case 3:
			m.session.SelectParagraphAt(line, col)
			m.clickStreak = 0
		default:
			m.session.StartSelectionAt(line, col)
			m.dragging = true
			m.dragCol = col
		}

	case tea.MouseActionMotion:
		if !m.dragging {
			break
		}
		m.dragCol = col
		m.session.ExtendSelectionAt(line, col)
		return m.updateAutoScroll(line)

	case tea.MouseActionRelease:
		wasDragging := m.dragging
		m.dragging = false
		m.autoScrollDir = 0
		if !wasDragging {
			break
		}
		if link := m.session.ReleaseSelectionAt(line, col); link != nil {
			if url, external := m.session.FollowLink(link); external {
				// The shell only signals; opening is the caller's concern.
				m.status = "link: " + url
			}
		}
	}

	return m, nil
}

func (m Model) accumulateWheel(delta int) (tea.Model, tea.Cmd) {
	m.wheelDelta += delta
	if m.wheelPending {
		return m, nil
	}
	m.wheelPending = true
	return m, tea.Tick(wheelFlushInterval, func(time.Time) tea.Msg { return wheelFlushMsg{} })
}

func (m Model) flushWheel() (tea.Model, tea.Cmd) {
	delta := m.wheelDelta
	m.wheelDelta = 0
	m.wheelPending = false
	if delta != 0 {
		m.session.Viewport.ScrollLines(delta, m.session.Layout().Height())
	}
	return m, nil
}

// updateAutoScroll starts or stops the repeating edge-drag tick based on
// where the pointer is relative to the content window. Terminal mouse rows
// are never negative, so row 0 is the top edge; it only arms when there is
// scrollback above the window.
func (m Model) updateAutoScroll(line int) (tea.Model, tea.Cmd) {
	switch {
	case line <= 0 && m.session.Viewport.Top > 0:
		m.autoScrollDir = -1
	case line >= m.contentHeight():
		m.autoScrollDir = 1
	default:
		m.autoScrollDir = 0
	}

	if m.autoScrollDir == 0 || m.autoScrolling {
		return m, nil
	}
	m.autoScrolling = true
	return m, tea.Tick(autoScrollInterval, func(time.Time) tea.Msg { return autoScrollMsg{} })
}

// autoScrollTick scrolls one line and re-resolves the drag endpoint
// against the newly visible lines, re-arming while the drag is held.
func (m Model) autoScrollTick() (tea.Model, tea.Cmd) {
	if !m.dragging || m.autoScrollDir == 0 {
		m.autoScrolling = false
		return m, nil
	}

	m.session.Viewport.ScrollLines(m.autoScrollDir, m.session.Layout().Height())
	edge := 0
	if m.autoScrollDir > 0 {
		edge = m.contentHeight() - 1
	}
	m.session.ExtendSelectionAt(edge, m.dragCol)

	return m, tea.Tick(autoScrollInterval, func(time.Time) tea.Msg { return autoScrollMsg{} })
}

func (m *Model) saveAnnotation(note string) {
	ch := m.session.Chapter()
	start, end, ok := m.session.Selection.Range()
	if ch == nil || !ok {
		return
	}

	a, merged := m.session.Annotations.Insert(ch, start, end, note)
	m.session.Selection.Clear()
	if a.ID == "" {
		m.status = "could not anchor annotation"
		return
	}
	if merged {
		m.status = "annotation extended"
	} else {
		m.status = "annotation saved"
	}

	if m.annots == nil {
		return
	}
	ctx := logging.WithChapterID(context.Background(), ch.ID)
	if err := m.annots.Save(ctx, a); err != nil {
		m.log.Error().Ctx(ctx).Err(err).Str("id", a.ID).Msg("annotation persist failed")
		m.status = "annotation not persisted"
	}
}

func (m *Model) addBookmark() {
	loc := m.session.Location()
	b := bookmark.Bookmark{
		ID:        uuid.NewString(),
		BookID:    m.session.Book().ID,
		ChapterID: loc.ChapterID,
		Offset:    loc.Offset,
		CreatedAt: time.Now(),
	}
	m.status = "bookmark added"
	if m.marks == nil {
		return
	}
	if err := m.marks.Save(context.Background(), b); err != nil {
		m.log.Error().Err(err).Msg("bookmark persist failed")
		m.status = "bookmark not persisted"
	}
}

func (m *Model) saveProgress() {
	if m.marks == nil {
		return
	}
	loc := m.session.Location()
	p := bookmark.Progress{
		BookID:    m.session.Book().ID,
		ChapterID: loc.ChapterID,
		Offset:    loc.Offset,
		UpdatedAt: time.Now(),
	}
	if err := m.marks.SaveProgress(context.Background(), p); err != nil {
		m.log.Error().Err(err).Msg("progress persist failed")
	}
}
