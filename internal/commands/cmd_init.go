package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/zouy50/bookokrat/internal/core/config"
	"github.com/zouy50/bookokrat/internal/core/styles"
)

type InitCmd struct {
	flags *Flags

	// flags
	yes   bool
	force bool
	roots string
}

// NewInitCmd creates a new init command
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create the config file with an interactive wizard",
		UsageText: "bookokrat init [options]",
		Description: `Sets up bookokrat for first-time use. The wizard asks for library
directories and a color theme, then writes the config file.

Use --yes to accept all defaults without prompts.
Use --force to overwrite an existing config.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
			&cli.StringFlag{
				Name:        "roots",
				Usage:       "comma-separated list of library directories",
				Destination: &cmd.roots,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	configPath := cmd.flags.ConfigPath
	if _, err := os.Stat(configPath); err == nil && !cmd.force {
		return fmt.Errorf("config exists at %s; use --force to overwrite", configPath)
	}

	cfg := config.DefaultConfig()
	cfg.Library.Roots = cmd.rootsList()

	if !cmd.yes {
		if err := cmd.prompt(&cfg); err != nil {
			return err
		}
	}
	if len(cfg.Library.Roots) == 0 {
		home, _ := os.UserHomeDir()
		cfg.Library.Roots = []string{filepath.Join(home, "books")}
	}

	if err := writeConfig(cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Created config: %s\n", configPath)
	fmt.Fprintf(c.Root().Writer, "Run 'bookokrat ls' to scan the library\n")
	return nil
}

func (cmd *InitCmd) rootsList() []string {
	if cmd.roots == "" {
		return nil
	}
	var out []string
	for _, dir := range strings.Split(cmd.roots, ",") {
		if dir = strings.TrimSpace(dir); dir != "" {
			out = append(out, expandHome(dir))
		}
	}
	return out
}

func (cmd *InitCmd) prompt(cfg *config.Config) error {
	rootsStr := strings.Join(cfg.Library.Roots, ", ")
	if rootsStr == "" {
		rootsStr = "~/books"
	}

	themeOpts := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Library directories").
			Description("Comma-separated list of directories containing books").
			Value(&rootsStr),
		huh.NewSelect[string]().
			Title("Color theme").
			Options(themeOpts...).
			Value(&cfg.Theme),
		huh.NewConfirm().
			Title("Highlight code blocks?").
			Value(&cfg.Reader.HighlightCode),
	))
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Library.Roots = cfg.Library.Roots[:0]
	for _, dir := range strings.Split(rootsStr, ",") {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.Library.Roots = append(cfg.Library.Roots, expandHome(dir))
		}
	}
	return nil
}

func writeConfig(cfg config.Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
