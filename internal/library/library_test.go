package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanFindsBooksRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "alpha.txt", "text")
	writeFile(t, root, "nested/beta.md", "text")
	writeFile(t, root, "nested/ignored.pdf", "binary")

	lib := New(config.LibraryConfig{
		Roots:   []string{root},
		Include: []string{"**/*.txt", "**/*.md"},
	})

	entries := lib.Scan()
	require.Len(t, entries, 2)
	assert.Equal(t, "alpha", entries[0].Title)
	assert.Equal(t, "beta", entries[1].Title)
}

func TestScanSkipsMissingRoot(t *testing.T) {
	lib := New(config.LibraryConfig{
		Roots:   []string{"/no/such/dir"},
		Include: []string{"**/*.txt"},
	})
	assert.Empty(t, lib.Scan())
}

func TestTextLoaderChaptersAndBlocks(t *testing.T) {
	content := `# Chapter One

First paragraph line one
continues here.

Second paragraph.

` + "```go" + `
func main() {}
` + "```" + `

# Chapter Two

## Section

Closing words.
`
	path := writeFile(t, t.TempDir(), "sample.md", content)

	lib := New(config.LibraryConfig{})
	b, err := lib.Open(path)
	require.NoError(t, err)

	require.Len(t, b.Chapters, 2)
	assert.Equal(t, "Chapter One", b.Chapters[0].Title)
	assert.Equal(t, "Chapter Two", b.Chapters[1].Title)

	ch1 := b.Chapters[0]
	require.Len(t, ch1.Blocks, 4)
	assert.Equal(t, book.KindHeading, ch1.Blocks[0].Kind)
	assert.Equal(t, book.KindParagraph, ch1.Blocks[1].Kind)
	assert.Equal(t, "First paragraph line one continues here.", ch1.Blocks[1].Inlines[0].Text)
	assert.Equal(t, book.KindCode, ch1.Blocks[3].Kind)
	assert.Equal(t, "go", ch1.Blocks[3].Language)
	assert.Equal(t, []string{"func main() {}"}, ch1.Blocks[3].Lines)

	ch2 := b.Chapters[1]
	require.Len(t, ch2.Blocks, 3)
	assert.Equal(t, 2, ch2.Blocks[1].Level)
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "book.epub", "zip bytes")
	lib := New(config.LibraryConfig{})

	_, err := lib.Open(path)
	assert.Error(t, err)
}

func TestBookIDStable(t *testing.T) {
	assert.Equal(t, BookID("/books/a.txt"), BookID("/books/a.txt"))
	assert.NotEqual(t, BookID("/books/a.txt"), BookID("/books/b.txt"))
	assert.Len(t, BookID("/books/a.txt"), 16)
}
