package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/zouy50/bookokrat/internal/library"
)

type LsCmd struct {
	flags *Flags
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List books in the library",
		UsageText:   "bookokrat ls",
		Description: `Scans the configured library roots and lists every readable book.`,
		Action:      cmd.run,
	})
	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	lib := library.New(cmd.flags.Config.Library)
	entries := lib.Scan()

	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "No books found. Add library roots to %s\n", cmd.flags.ConfigPath)
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tPATH")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Title, e.Path)
	}
	return w.Flush()
}
