package reader

import "github.com/zouy50/bookokrat/internal/book"

// defaultMaxHistory bounds the jump list when no limit is configured; the
// oldest entries fall off first.
const defaultMaxHistory = 100

// History is a bounded jump list over book locations. The cursor sits
// between entries: len(entries) means "at the live position", anything
// lower means the reader has gone back.
type History struct {
	// Limit overrides the default jump list bound when positive.
	Limit int

	entries []book.Location
	cursor  int
}

func (h *History) cap() int {
	if h.Limit > 0 {
		return h.Limit
	}
	return defaultMaxHistory
}

// Push records a jump origin and discards any forward entries beyond the
// cursor. Link follows and search jumps push; plain scrolling does not.
func (h *History) Push(loc book.Location) {
	h.entries = append(h.entries[:h.cursor], loc)
	if n := h.cap(); len(h.entries) > n {
		h.entries = h.entries[len(h.entries)-n:]
	}
	h.cursor = len(h.entries)
}

// Back moves the cursor left and returns the location to jump to. The
// current location is saved so Forward can return to it. No-op at the
// start of the list.
func (h *History) Back(current book.Location) (book.Location, bool) {
	if h.cursor == 0 {
		return book.Location{}, false
	}
	if h.cursor == len(h.entries) {
		h.entries = append(h.entries, current)
	} else {
		h.entries[h.cursor] = current
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor right after a Back. No-op at the end.
func (h *History) Forward() (book.Location, bool) {
	if h.cursor >= len(h.entries)-1 {
		return book.Location{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Len returns the number of entries behind the cursor.
func (h *History) Len() int {
	return h.cursor
}
