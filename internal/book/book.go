package book

// Book is an ordered collection of chapters in table-of-contents order.
type Book struct {
	ID       string
	Title    string
	Path     string
	Chapters []*Chapter
}

// ChapterIndex returns the position of the chapter with the given id, or
// -1 when the book has no such chapter.
func (b *Book) ChapterIndex(id string) int {
	for i, c := range b.Chapters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ChapterByID returns the chapter with the given id, or nil.
func (b *Book) ChapterByID(id string) *Chapter {
	if i := b.ChapterIndex(id); i >= 0 {
		return b.Chapters[i]
	}
	return nil
}

// Location is a (chapter, offset) address within a book. It is the unit
// of navigation history and bookmarks.
type Location struct {
	ChapterID string
	Offset    int
}
