// Package reader implements the interaction engine for an open book: the
// viewport over a chapter's layout lines, the active selection, search,
// navigation history, and the in-memory annotation index. All state is
// owned by a single Session; the engine runs no background work of its
// own.
package reader

// Viewport is a window of layout lines: the top line index plus the
// window height in rows. All motions clamp so the top never scrolls past
// the last line.
type Viewport struct {
	Top    int
	Height int
}

func (v *Viewport) maxTop(total int) int {
	return max(total-v.Height, 0)
}

// Clamp pulls the top back into range after a reflow changed the total
// line count.
func (v *Viewport) Clamp(total int) {
	v.Top = min(max(v.Top, 0), v.maxTop(total))
}

// ScrollLines moves the window by delta lines, negative for up.
func (v *Viewport) ScrollLines(delta, total int) {
	v.Top = min(max(v.Top+delta, 0), v.maxTop(total))
}

// HalfPageDown and friends implement the usual pager motions.
func (v *Viewport) HalfPageDown(total int) { v.ScrollLines(v.Height/2, total) }
func (v *Viewport) HalfPageUp(total int)   { v.ScrollLines(-v.Height/2, total) }
func (v *Viewport) PageDown(total int)     { v.ScrollLines(v.Height, total) }
func (v *Viewport) PageUp(total int)       { v.ScrollLines(-v.Height, total) }

// ToTop jumps to the chapter start.
func (v *Viewport) ToTop() { v.Top = 0 }

// ToBottom jumps so the last line is visible.
func (v *Viewport) ToBottom(total int) { v.Top = v.maxTop(total) }

// Bottom returns the exclusive end of the visible line range.
func (v *Viewport) Bottom() int {
	return v.Top + v.Height
}

// Visible reports whether a layout line is inside the window.
func (v *Viewport) Visible(line int) bool {
	return line >= v.Top && line < v.Bottom()
}

// EnsureVisible scrolls the minimum distance to bring a line into the
// window, e.g. when jumping to a search match.
func (v *Viewport) EnsureVisible(line, total int) {
	switch {
	case line < v.Top:
		v.Top = line
	case line >= v.Bottom():
		v.Top = line - v.Height + 1
	}
	v.Clamp(total)
}
