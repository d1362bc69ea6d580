package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v3"

	"github.com/zouy50/bookokrat/internal/book"
	"github.com/zouy50/bookokrat/internal/core/logging"
	"github.com/zouy50/bookokrat/internal/data/db"
	"github.com/zouy50/bookokrat/internal/data/stores"
	"github.com/zouy50/bookokrat/internal/layout"
	"github.com/zouy50/bookokrat/internal/library"
	"github.com/zouy50/bookokrat/internal/reader"
	"github.com/zouy50/bookokrat/internal/tui"
)

type ReadCmd struct {
	flags *Flags

	// flags
	noResume bool
}

// NewReadCmd creates a new read command
func NewReadCmd(flags *Flags) *ReadCmd {
	return &ReadCmd{flags: flags}
}

// Register adds the read command to the application
func (cmd *ReadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "read",
		Usage:     "Open a book in the terminal reader",
		UsageText: "bookokrat read <path-or-title>",
		Description: `Opens a book for reading. The argument is either a file path or a
fuzzy-matched title from the configured library roots.

The reader restores the last reading position unless --no-resume is set.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "no-resume",
				Usage:       "start at the first chapter instead of the saved position",
				Destination: &cmd.noResume,
			},
		},
		Action: cmd.run,
	})
	return app
}

// Run opens the reader outside of subcommand dispatch, for the root
// command's bare-path action.
func (cmd *ReadCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ReadCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("missing book argument. Run 'bookokrat ls' to see the library")
	}

	cfg := cmd.flags.Config
	lib := library.New(cfg.Library)

	path, err := resolveBook(lib, c.Args().First())
	if err != nil {
		return err
	}

	b, err := lib.Open(path)
	if err != nil {
		return fmt.Errorf("open book: %w", err)
	}
	ctx = logging.WithBookID(ctx, b.ID)

	database, err := db.Open(cfg.DataDir, db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	annotStore := stores.NewAnnotationStore(database)
	markStore := stores.NewBookmarkStore(database)

	annots, err := annotStore.ListByBook(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("load annotations: %w", err)
	}

	opts := layout.Options{
		Width:         80,
		Margin:        cfg.Reader.Margin,
		TabWidth:      cfg.Reader.TabWidth,
		HighlightCode: cfg.Reader.HighlightCode,
	}
	session := reader.NewSession(b, opts, annots)
	session.History.Limit = cfg.Reader.HistoryLimit
	if cfg.Reader.SearchMode == "fuzzy" {
		session.Search.DefaultMode = reader.MatchFuzzy
	}

	if !cmd.noResume {
		progress, err := markStore.GetProgress(ctx, b.ID)
		switch {
		case err == nil:
			session.GoTo(book.Location{ChapterID: progress.ChapterID, Offset: progress.Offset})
		case !stores.IsNotFoundError(err):
			log.Warn().Ctx(ctx).Err(err).Msg("could not restore reading position")
		}
	}

	program := tea.NewProgram(
		tui.New(session, annotStore, markStore),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run reader: %w", err)
	}
	return nil
}

// resolveBook accepts a direct file path or fuzzy-matches the argument
// against library entries by title.
func resolveBook(lib *library.Library, arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	entries := lib.Scan()
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}

	matches := fuzzy.Find(arg, titles)
	if len(matches) == 0 {
		return "", fmt.Errorf("no book matches %q. Run 'bookokrat ls' to see the library", arg)
	}
	return entries[matches[0].Index].Path, nil
}
