// Package annotate defines reader annotations and their content-addressed
// anchors. Anchors reference structural positions (word ranges, code line
// ranges) rather than stream offsets or layout lines, so they survive
// reflow and width changes unchanged.
package annotate

import "time"

// TargetKind selects the anchor addressing scheme.
type TargetKind int

const (
	// TargetWords anchors to a word range within a paragraph or heading.
	TargetWords TargetKind = iota
	// TargetLines anchors to a line range within a code block.
	TargetLines
)

// String returns the kind name for logging and export.
func (k TargetKind) String() string {
	switch k {
	case TargetWords:
		return "words"
	case TargetLines:
		return "lines"
	default:
		return "unknown"
	}
}

// Target pins an annotation to chapter content. Start and End are inclusive
// word indices for TargetWords or code line indices for TargetLines, both
// relative to the addressed block.
type Target struct {
	Kind      TargetKind
	ChapterID string
	Block     int
	Start     int
	End       int

	// Snippet is the anchor text captured at creation. When the book's
	// content changes and the block no longer carries this text, the
	// annotation is reported as orphaned instead of silently mislocated.
	Snippet string
}

// Overlaps reports whether two targets address intersecting ranges of the
// same block.
func (t Target) Overlaps(o Target) bool {
	if t.Kind != o.Kind || t.ChapterID != o.ChapterID || t.Block != o.Block {
		return false
	}
	return t.Start <= o.End && o.Start <= t.End
}

// Annotation is one reader note attached to a content target.
type Annotation struct {
	ID        string
	BookID    string
	Target    Target
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Orphaned reports whether the annotation's anchor no longer resolves
// against current content. resolve returns the block's current anchor text
// for the target, or false when the block is gone.
func (a Annotation) Orphaned(resolve func(Target) (string, bool)) bool {
	text, ok := resolve(a.Target)
	if !ok {
		return true
	}
	return a.Target.Snippet != "" && text != a.Target.Snippet
}
