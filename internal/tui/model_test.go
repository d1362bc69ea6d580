package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/layout"
	"github.com/zouy50/bookokrat/internal/reader"
	"github.com/zouy50/bookokrat/pkg/tuitest"
)

func para(text string) book.Block {
	return book.Block{Kind: book.KindParagraph, Inlines: []book.Inline{{Kind: book.InlineText, Text: text}}}
}

func testModel(t *testing.T, width, height int) Model {
	t.Helper()
	b := &book.Book{
		ID:    "b1",
		Title: "Fox Tales",
		Chapters: []*book.Chapter{
			book.NewChapter("ch1", "One", []book.Block{
				para("The quick brown fox jumps over the lazy dog."),
				para("Pack my box with five dozen liquor jugs."),
			}),
		},
	}
	s := reader.NewSession(b, layout.Options{Width: width}, nil)
	m := New(s, nil, nil)
	updated, _ := m.Update(tuitest.WindowSize(width, height))
	return updated.(Model)
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestViewShowsChapterText(t *testing.T) {
	m := testModel(t, 60, 12)
	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "The quick brown fox")
	assert.Contains(t, out, "Fox Tales")
}

func TestWheelCoalescingPreservesNetDistance(t *testing.T) {
	// Narrow and short so the two paragraphs wrap well past one window.
	m := testModel(t, 12, 4)

	wheel := func(btn tea.MouseButton) tea.Msg {
		return tea.MouseMsg{Button: btn, Action: tea.MouseActionPress}
	}

	// Three down notches and one up notch accumulate without scrolling.
	m = update(t, m,
		wheel(tea.MouseButtonWheelDown),
		wheel(tea.MouseButtonWheelDown),
		wheel(tea.MouseButtonWheelDown),
		wheel(tea.MouseButtonWheelUp),
	)
	assert.Equal(t, 0, m.session.Viewport.Top)
	assert.Equal(t, 2*wheelStep, m.wheelDelta)

	// The flush tick applies the net distance in one step.
	m = update(t, m, wheelFlushMsg{})
	assert.Equal(t, 2*wheelStep, m.session.Viewport.Top)
	assert.Equal(t, 0, m.wheelDelta)
}

func TestResizeReanchorsViewport(t *testing.T) {
	m := testModel(t, 40, 6)
	m = update(t, m, tuitest.KeyPress('j'), tuitest.KeyPress('j'))
	before := m.session.Location()

	m = update(t, m, tuitest.WindowSize(25, 6))
	after := m.session.Location()
	assert.Equal(t, before.ChapterID, after.ChapterID)
	assert.Equal(t, before.Offset, after.Offset)
}

func TestSearchFlowJumpsToFirstMatch(t *testing.T) {
	m := testModel(t, 60, 12)

	m = update(t, m, tuitest.KeyPress('/'))
	require.Equal(t, modeSearch, m.mode)

	m = update(t, m, tuitest.KeyPressString("liquor")...)
	m = update(t, m, tuitest.KeyEnter())

	require.Equal(t, modeRead, m.mode)
	match, ok := m.session.Search.Current()
	require.True(t, ok)
	ch := m.session.Chapter()
	assert.Equal(t, "liquor", ch.Slice(match.Start, match.End))
}

func TestSearchNoMatchSetsStatus(t *testing.T) {
	m := testModel(t, 60, 12)
	m = update(t, m, tuitest.KeyPress('/'))
	m = update(t, m, tuitest.KeyPressString("zzzz")...)
	m = update(t, m, tuitest.KeyEnter())

	assert.Equal(t, "no matches", m.status)
	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "no matches")
}

func TestAnnotateRequiresSelection(t *testing.T) {
	m := testModel(t, 60, 12)
	m = update(t, m, tuitest.KeyPress('a'))
	assert.Equal(t, modeRead, m.mode)
	assert.Equal(t, "select text first", m.status)
}

func TestAnnotateModalSavesNote(t *testing.T) {
	m := testModel(t, 60, 12)

	// Drag-select "quick" with the mouse: press at col 4, release at col 8.
	m = update(t, m,
		tea.MouseMsg{X: 4, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 8, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion},
		tea.MouseMsg{X: 8, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
	)
	require.True(t, m.session.Selection.Active())

	m = update(t, m, tuitest.KeyPress('a'))
	require.Equal(t, modeAnnotate, m.mode)

	m = update(t, m, tuitest.KeyPressString("pangram")...)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, modeRead, m.mode)
	assert.Equal(t, "annotation saved", m.status)

	all := m.session.Annotations.All()
	require.Len(t, all, 1)
	assert.Equal(t, "pangram", all[0].Note)
	assert.Equal(t, "quick", all[0].Target.Snippet)
}

func TestDragAtTopEdgeArmsUpwardAutoScroll(t *testing.T) {
	// Narrow so the content wraps well past one window, then scroll down.
	m := testModel(t, 12, 4)
	for i := 0; i < 5; i++ {
		m = update(t, m, tuitest.KeyPress('j'))
	}
	require.Equal(t, 5, m.session.Viewport.Top)

	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	// Dragging onto row 0 arms the upward tick; rows are never negative.
	updated, cmd := m.Update(tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, -1, m.autoScrollDir)

	m = update(t, m, autoScrollMsg{})
	assert.Equal(t, 4, m.session.Viewport.Top)

	// Release stops the tick.
	m = update(t, m, tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m = update(t, m, autoScrollMsg{})
	assert.Equal(t, 4, m.session.Viewport.Top)
}

func TestDragAtTopRowWithoutScrollbackStaysPut(t *testing.T) {
	m := testModel(t, 12, 4)
	require.Equal(t, 0, m.session.Viewport.Top)

	m = update(t, m,
		tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion},
	)
	assert.Equal(t, 0, m.autoScrollDir)
	assert.Equal(t, 0, m.session.Viewport.Top)
}

func TestDoubleClickSelectsWord(t *testing.T) {
	m := testModel(t, 60, 12)

	click := tea.MouseMsg{X: 5, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	release := tea.MouseMsg{X: 5, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	m = update(t, m, click, release, click)

	require.True(t, m.session.Selection.Active())
	assert.Equal(t, "quick", m.session.Selection.Text(m.session.Chapter()))
}

func TestViewerListsAnnotations(t *testing.T) {
	m := testModel(t, 60, 20)

	ch := m.session.Chapter()
	m.session.Selection.Start(ch, 4)
	m.session.Selection.Extend(ch, 8)
	m.saveAnnotation("a note about foxes")
	m = update(t, m, tuitest.KeyPress('v'))

	require.Equal(t, modeViewer, m.mode)
	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "quick")
	assert.Contains(t, out, "a note about foxes")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeRead, m.mode)
}

func TestHelpOverlayTogglesOnAnyKey(t *testing.T) {
	m := testModel(t, 60, 20)

	m = update(t, m, tuitest.KeyPress('?'))
	require.Equal(t, modeHelp, m.mode)
	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "next chapter")

	m = update(t, m, tuitest.KeyPress('x'))
	assert.Equal(t, modeRead, m.mode)
}

func TestViewPanePadsToContentHeight(t *testing.T) {
	m := testModel(t, 60, 12)
	out := tuitest.StripANSI(m.View())

	// Short content still yields a full-height frame with the bar on the
	// last row.
	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), 12)
	assert.Contains(t, lines[len(lines)-1], "Fox Tales")
}
