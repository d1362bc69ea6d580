package reader

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/logging"
)

// SearchMode selects the matching scheme.
type SearchMode int

const (
	// MatchSubstring finds case-insensitive substring occurrences.
	MatchSubstring SearchMode = iota
	// MatchFuzzy finds subsequence matches per block, scored by
	// sahilm/fuzzy. Deterministic: results are reported in document
	// order, not score order.
	MatchFuzzy
)

// Match is one search hit: a [Start, End) range in a chapter's canonical
// stream.
type Match struct {
	ChapterID string
	Start     int
	End       int
}

// Search holds the ordered match list and the cursor over it. A new query
// replaces the list wholesale; Reopen re-runs the last book-wide query
// without resetting the cursor.
type Search struct {
	// DefaultMode is used when the shell runs a query without an explicit
	// mode choice. Set from config.
	DefaultMode SearchMode

	log     zerolog.Logger
	query   string
	mode    SearchMode
	matches []Match
	cursor  int
}

// NewSearch creates an empty search engine.
func NewSearch() *Search {
	return &Search{log: logging.Component("search"), cursor: -1}
}

// Chapter runs the query against one chapter. Empty queries and no-match
// results leave an empty list; callers keep selection and viewport
// untouched in that case.
func (s *Search) Chapter(ch *book.Chapter, query string, mode SearchMode) []Match {
	s.query = query
	s.mode = mode
	s.matches = chapterMatches(ch, query, mode)
	s.cursor = -1
	s.log.Debug().Str("chapter", ch.ID).Str("query", query).Int("matches", len(s.matches)).Msg("chapter search")
	return s.matches
}

// Book runs the query across all chapters in table-of-contents order. Only
// the canonical stream of each chapter is touched, never its layout, so
// memory stays bounded for large books. The context cancels an in-progress
// scan when a new query supersedes it; partial results are discarded.
func (s *Search) Book(ctx context.Context, b *book.Book, query string, mode SearchMode) ([]Match, error) {
	var matches []Match
	for _, ch := range b.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches = append(matches, chapterMatches(ch, query, mode)...)
	}

	s.query = query
	s.mode = mode
	s.matches = matches
	s.cursor = -1
	s.log.Debug().Str("book", b.ID).Str("query", query).Int("matches", len(matches)).Msg("book search")
	return matches, nil
}

// Reopen re-runs the last book-wide query and keeps the cursor position,
// clamped if the match list shrank.
func (s *Search) Reopen(ctx context.Context, b *book.Book) ([]Match, error) {
	if s.query == "" {
		return nil, nil
	}
	cursor := s.cursor
	matches, err := s.Book(ctx, b, s.query, s.mode)
	if err != nil {
		return nil, err
	}
	s.cursor = min(cursor, len(matches)-1)
	return matches, nil
}

// Next advances the cursor with wraparound and returns the match.
func (s *Search) Next() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	s.cursor = (s.cursor + 1) % len(s.matches)
	return s.matches[s.cursor], true
}

// Previous moves the cursor back with wraparound.
func (s *Search) Previous() (Match, bool) {
	if len(s.matches) == 0 {
		return Match{}, false
	}
	if s.cursor <= 0 {
		s.cursor = len(s.matches)
	}
	s.cursor--
	return s.matches[s.cursor], true
}

// Current returns the match under the cursor.
func (s *Search) Current() (Match, bool) {
	if s.cursor < 0 || s.cursor >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.cursor], true
}

// Matches returns the full ordered match list.
func (s *Search) Matches() []Match {
	return s.matches
}

// Clear drops the query and match list.
func (s *Search) Clear() {
	s.query = ""
	s.matches = nil
	s.cursor = -1
}

func chapterMatches(ch *book.Chapter, query string, mode SearchMode) []Match {
	if query == "" {
		return nil
	}
	if mode == MatchFuzzy {
		return fuzzyMatches(ch, query)
	}
	return substringMatches(ch, query)
}

// substringMatches scans the canonical stream case-insensitively. Lowering
// preserves byte offsets for the overwhelming majority of text; the rare
// rune whose lowercase form changes byte length forces a case-sensitive
// scan so offsets stay exact.
func substringMatches(ch *book.Chapter, query string) []Match {
	stream := ch.Stream()
	haystack := strings.ToLower(stream)
	needle := strings.ToLower(query)
	if len(haystack) != len(stream) || len(needle) != len(query) {
		haystack = stream
		needle = query
	}

	var matches []Match
	pos := 0
	for {
		i := strings.Index(haystack[pos:], needle)
		if i < 0 {
			break
		}
		start := pos + i
		matches = append(matches, Match{ChapterID: ch.ID, Start: start, End: start + len(needle)})
		pos = start + len(needle)
	}
	return matches
}

// fuzzyMatches runs subsequence matching per block and reports the span
// from the first to the last matched rune. Blocks are the candidate unit
// so a match never crosses a block boundary.
func fuzzyMatches(ch *book.Chapter, query string) []Match {
	var (
		texts  []string
		starts []int
	)
	for i := range ch.Blocks {
		start, end := ch.Blocks[i].Extent()
		if start == end {
			continue
		}
		texts = append(texts, ch.Slice(start, end))
		starts = append(starts, start)
	}

	var matches []Match
	for _, m := range fuzzy.Find(query, texts) {
		if len(m.MatchedIndexes) == 0 {
			continue
		}
		first := m.MatchedIndexes[0]
		last := m.MatchedIndexes[len(m.MatchedIndexes)-1]
		matches = append(matches, Match{
			ChapterID: ch.ID,
			Start:     starts[m.Index] + first,
			End:       starts[m.Index] + last + 1,
		})
	}

	// fuzzy.Find ranks by score; matches are reported in document order.
	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches
}
