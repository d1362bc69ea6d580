package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zouy50/bookokrat/internal/book"
)

// TextLoader loads plain-text and lightweight markdown-ish files. The
// parse is strictly line-based: "# " lines split chapters, "```" fences
// delimit code blocks, blank lines separate paragraphs. Everything else
// is paragraph text.
type TextLoader struct{}

// NewTextLoader creates the plain-text loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// CanLoad accepts .txt and .md files.
func (t *TextLoader) CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

// Load parses the file into one book; chapters split on level-1 headings.
func (t *TextLoader) Load(path string) (*book.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read book: %w", err)
	}

	b := &book.Book{
		ID:    BookID(path),
		Title: titleFromPath(path),
		Path:  path,
	}

	var (
		chapterTitle string
		blocks       []book.Block
		para         []string
		codeLines    []string
		codeLang     string
		inCode       bool
	)

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		text := strings.Join(para, " ")
		blocks = append(blocks, book.Block{
			Kind:    book.KindParagraph,
			Inlines: []book.Inline{{Kind: book.InlineText, Text: text}},
		})
		para = nil
	}

	flushChapter := func() {
		flushPara()
		if len(blocks) == 0 && chapterTitle == "" {
			return
		}
		id := fmt.Sprintf("ch-%d", len(b.Chapters)+1)
		title := chapterTitle
		if title == "" {
			title = b.Title
		}
		b.Chapters = append(b.Chapters, book.NewChapter(id, title, blocks))
		blocks = nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")

		if inCode {
			if strings.HasPrefix(line, "```") {
				blocks = append(blocks, book.Block{
					Kind:     book.KindCode,
					Language: codeLang,
					Lines:    codeLines,
				})
				codeLines = nil
				inCode = false
				continue
			}
			codeLines = append(codeLines, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			flushChapter()
			chapterTitle = strings.TrimSpace(line[2:])
			blocks = append(blocks, book.Block{
				Kind:    book.KindHeading,
				Level:   1,
				Inlines: []book.Inline{{Kind: book.InlineText, Text: chapterTitle}},
			})
		case strings.HasPrefix(line, "## "):
			flushPara()
			blocks = append(blocks, book.Block{
				Kind:    book.KindHeading,
				Level:   2,
				Inlines: []book.Inline{{Kind: book.InlineText, Text: strings.TrimSpace(line[3:])}},
			})
		case strings.HasPrefix(line, "```"):
			flushPara()
			codeLang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			inCode = true
		case strings.TrimSpace(line) == "":
			flushPara()
		default:
			para = append(para, strings.TrimSpace(line))
		}
	}

	// Unterminated fence: keep the collected lines as a code block.
	if inCode {
		blocks = append(blocks, book.Block{Kind: book.KindCode, Language: codeLang, Lines: codeLines})
	}
	flushChapter()

	if len(b.Chapters) == 0 {
		b.Chapters = append(b.Chapters, book.NewChapter("ch-1", b.Title, nil))
	}
	return b, nil
}
