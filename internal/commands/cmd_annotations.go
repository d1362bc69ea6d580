package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/zouy50/bookokrat/internal/data/db"
	"github.com/zouy50/bookokrat/internal/data/stores"
	"github.com/zouy50/bookokrat/internal/library"
	"github.com/zouy50/bookokrat/internal/reader"
)

type AnnotationsCmd struct {
	flags *Flags

	// flags
	export bool
	prune  bool
}

// NewAnnotationsCmd creates a new annotations command
func NewAnnotationsCmd(flags *Flags) *AnnotationsCmd {
	return &AnnotationsCmd{flags: flags}
}

// Register adds the annotations command to the application
func (cmd *AnnotationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "annotations",
		Usage:     "List or export a book's annotations",
		UsageText: "bookokrat annotations <path-or-title> [--export] [--prune]",
		Description: `Lists every annotation of a book with its anchor snippet. Annotations
whose anchor no longer resolves against the book's current content are
marked as orphaned.

Use --export for YAML output suitable for archiving.
Use --prune to delete orphaned annotations in one batch.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "export",
				Usage:       "write annotations as YAML to stdout",
				Destination: &cmd.export,
			},
			&cli.BoolFlag{
				Name:        "prune",
				Usage:       "delete annotations whose anchors no longer resolve",
				Destination: &cmd.prune,
			},
		},
		Action: cmd.run,
	})
	return app
}

// exportedAnnotation is the YAML output shape of one annotation.
type exportedAnnotation struct {
	Chapter  string    `yaml:"chapter"`
	Kind     string    `yaml:"kind"`
	Snippet  string    `yaml:"snippet"`
	Note     string    `yaml:"note,omitempty"`
	Orphaned bool      `yaml:"orphaned,omitempty"`
	Created  time.Time `yaml:"created"`
}

func (cmd *AnnotationsCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("missing book argument")
	}

	lib := library.New(cmd.flags.Config.Library)
	path, err := resolveBook(lib, c.Args().First())
	if err != nil {
		return err
	}
	b, err := lib.Open(path)
	if err != nil {
		return fmt.Errorf("open book: %w", err)
	}

	database, err := db.Open(cmd.flags.Config.DataDir, db.OpenOptions{
		MaxOpenConns: cmd.flags.Config.Database.MaxOpenConns,
		MaxIdleConns: cmd.flags.Config.Database.MaxIdleConns,
		BusyTimeout:  cmd.flags.Config.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	store := stores.NewAnnotationStore(database)
	annots, err := store.ListByBook(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("load annotations: %w", err)
	}
	if len(annots) == 0 {
		fmt.Fprintf(os.Stderr, "no annotations for %s\n", b.Title)
		return nil
	}

	index := reader.NewAnnotationIndex(b.ID, annots)
	orphaned := make(map[string]bool)
	orphanIDs := make([]string, 0)
	for _, a := range index.Orphans(b) {
		orphaned[a.ID] = true
		orphanIDs = append(orphanIDs, a.ID)
	}

	out := c.Root().Writer

	if cmd.prune {
		if err := store.DeleteMany(ctx, orphanIDs); err != nil {
			if stores.IsBusyError(err) {
				return fmt.Errorf("database busy, try again: %w", err)
			}
			return fmt.Errorf("prune annotations: %w", err)
		}
		fmt.Fprintf(os.Stderr, "pruned %d orphaned annotation(s)\n", len(orphanIDs))
		kept := annots[:0]
		for _, a := range annots {
			if !orphaned[a.ID] {
				kept = append(kept, a)
			}
		}
		annots = kept
		orphaned = map[string]bool{}
		if len(annots) == 0 {
			return nil
		}
	}

	if cmd.export {
		exported := make([]exportedAnnotation, 0, len(annots))
		for _, a := range annots {
			chapterTitle := a.Target.ChapterID
			if ch := b.ChapterByID(a.Target.ChapterID); ch != nil {
				chapterTitle = ch.Title
			}
			exported = append(exported, exportedAnnotation{
				Chapter:  chapterTitle,
				Kind:     a.Target.Kind.String(),
				Snippet:  a.Target.Snippet,
				Note:     a.Note,
				Orphaned: orphaned[a.ID],
				Created:  a.CreatedAt,
			})
		}
		return yaml.NewEncoder(out).Encode(exported)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CHAPTER\tSNIPPET\tNOTE")
	for _, a := range annots {
		chapterTitle := a.Target.ChapterID
		if ch := b.ChapterByID(a.Target.ChapterID); ch != nil {
			chapterTitle = ch.Title
		}
		snippet := a.Target.Snippet
		if orphaned[a.ID] {
			snippet += " (orphaned)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", chapterTitle, snippet, a.Note)
	}
	return w.Flush()
}
