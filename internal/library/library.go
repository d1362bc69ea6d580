// Package library discovers books on disk and loads them into the block
// model. The engine itself never parses markup; loaders produce parsed
// chapters and everything downstream works on blocks and streams.
package library

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/config"
	"github.com/zouy50/bookokrat/internal/core/logging"
)

// Entry is one discovered book file.
type Entry struct {
	Path  string
	Title string
}

// Loader turns a file into a parsed book.
type Loader interface {
	// CanLoad reports whether the loader handles the given path.
	CanLoad(path string) bool
	// Load parses the file into chapters of blocks.
	Load(path string) (*book.Book, error)
}

// Library scans configured roots and loads books through its loaders.
type Library struct {
	log     zerolog.Logger
	cfg     config.LibraryConfig
	loaders []Loader
}

// New creates a library over the configured roots with the built-in
// loaders.
func New(cfg config.LibraryConfig) *Library {
	return &Library{
		log:     logging.Component("library"),
		cfg:     cfg,
		loaders: []Loader{NewTextLoader()},
	}
}

// Scan walks every configured root and returns matching files in sorted
// order. Unreadable roots are logged and skipped; discovery never fails
// the whole scan.
func (l *Library) Scan() []Entry {
	var entries []Entry
	for _, root := range l.cfg.Roots {
		rootFS := os.DirFS(root)
		for _, pattern := range l.cfg.Include {
			matches, err := doublestar.Glob(rootFS, pattern)
			if err != nil {
				l.log.Warn().Err(err).Str("root", root).Str("pattern", pattern).Msg("glob failed")
				continue
			}
			for _, m := range matches {
				full := filepath.Join(root, filepath.FromSlash(m))
				info, err := fs.Stat(rootFS, m)
				if err != nil || info.IsDir() {
					continue
				}
				entries = append(entries, Entry{Path: full, Title: titleFromPath(full)})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return dedupe(entries)
}

// Open loads the book at the given path with the first loader that
// accepts it.
func (l *Library) Open(path string) (*book.Book, error) {
	for _, loader := range l.loaders {
		if loader.CanLoad(path) {
			b, err := loader.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			l.log.Debug().Str("path", path).Int("chapters", len(b.Chapters)).Msg("book loaded")
			return b, nil
		}
	}
	return nil, fmt.Errorf("no loader for %s", path)
}

// BookID derives a stable id from the book's absolute path, so
// annotations and bookmarks keep resolving across runs.
func BookID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:8])
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func dedupe(entries []Entry) []Entry {
	out := entries[:0]
	var last string
	for _, e := range entries {
		if e.Path == last {
			continue
		}
		out = append(out, e)
		last = e.Path
	}
	return out
}
