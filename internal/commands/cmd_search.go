package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/zouy50/bookokrat/internal/library"
	"github.com/zouy50/bookokrat/internal/reader"
)

type SearchCmd struct {
	flags *Flags

	// flags
	useFuzzy bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search a book from the command line",
		UsageText: "bookokrat search <path-or-title> <query>",
		Description: `Runs a book-wide search without opening the reader and prints one line
per match with surrounding context.

Substring matching is case-insensitive by default; --fuzzy switches to
subsequence matching.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "fuzzy",
				Usage:       "fuzzy subsequence matching instead of substring",
				Destination: &cmd.useFuzzy,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: bookokrat search <path-or-title> <query>")
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

	query := strings.Join(c.Args().Slice()[1:], " ")
	mode := reader.MatchSubstring
	if cmd.useFuzzy {
		mode = reader.MatchFuzzy
	}

	matches, err := reader.NewSearch().Book(ctx, b, query, mode)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintf(os.Stderr, "no matches for %q\n", query)
		return nil
	}

	// Size context snippets to the terminal, leaving room for the prefix.
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	contextRunes := max(width-30, 20)

	out := c.Root().Writer
	for _, match := range matches {
		ch := b.ChapterByID(match.ChapterID)
		if ch == nil {
			continue
		}
		_, _ = fmt.Fprintf(out, "%s:%d\t%s\n", ch.Title, match.Start, snippetAround(ch.Stream(), match.Start, match.End, contextRunes))
	}
	_, _ = fmt.Fprintf(os.Stderr, "%d match(es)\n", len(matches))
	return nil
}

// snippetAround returns the match with up to n runes of context on each
// side, newlines flattened for one-line output.
func snippetAround(stream string, start, end, n int) string {
	left := start
	for i := 0; i < n && left > 0; i++ {
		left--
		for left > 0 && !utf8RuneStart(stream[left]) {
			left--
		}
	}
	right := end
	for i := 0; i < n && right < len(stream); i++ {
		right++
		for right < len(stream) && !utf8RuneStart(stream[right]) {
			right++
		}
	}

	s := stream[left:right]
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
