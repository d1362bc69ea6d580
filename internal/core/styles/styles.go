// Package styles provides shared lipgloss styles for CLI and TUI
// components. Styles are rebuilt wholesale by SetTheme; layout never
// consults them, so a theme change restyles without reflowing.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Reading pane styles, one per cell role.
var (
	TextStyle        lipgloss.Style
	HeadingStyle     lipgloss.Style
	EmphasisStyle    lipgloss.Style
	StrongStyle      lipgloss.Style
	InlineCodeStyle  lipgloss.Style
	LinkStyle        lipgloss.Style
	MathStyle        lipgloss.Style
	CodeStyle        lipgloss.Style
	CodeKeywordStyle lipgloss.Style
	CodeStringStyle  lipgloss.Style
	CodeCommentStyle lipgloss.Style
	CodeLiteralStyle lipgloss.Style
	TableHeaderStyle lipgloss.Style
	TableBorderStyle lipgloss.Style
	ImageStyle       lipgloss.Style
)

// Overlay styles projected onto cells at render time.
var (
	SelectionStyle     lipgloss.Style
	SearchMatchStyle   lipgloss.Style
	SearchCurrentStyle lipgloss.Style
	AnnotationStyle    lipgloss.Style
)

// Chrome styles.
var (
	StatusBarStyle   lipgloss.Style
	StatusKeyStyle   lipgloss.Style
	SearchBarStyle   lipgloss.Style
	HelpStyle        lipgloss.Style
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalHelpStyle   lipgloss.Style
	ListTitleStyle   lipgloss.Style
	ListItemStyle    lipgloss.Style
	ListCurrentStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	HeadingStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	EmphasisStyle = lipgloss.NewStyle().Foreground(p.Foreground).Italic(true)
	StrongStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	InlineCodeStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	LinkStyle = lipgloss.NewStyle().Foreground(p.Secondary).Underline(true)
	MathStyle = lipgloss.NewStyle().Foreground(p.Warning)
	CodeStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	CodeKeywordStyle = lipgloss.NewStyle().Foreground(p.Primary)
	CodeStringStyle = lipgloss.NewStyle().Foreground(p.Success)
	CodeCommentStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)
	CodeLiteralStyle = lipgloss.NewStyle().Foreground(p.Warning)
	TableHeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TableBorderStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ImageStyle = lipgloss.NewStyle().Foreground(p.Muted)

	SelectionStyle = lipgloss.NewStyle().Background(p.Surface)
	SearchMatchStyle = lipgloss.NewStyle().Background(p.Surface).Foreground(p.Warning)
	SearchCurrentStyle = lipgloss.NewStyle().Background(p.Warning).Foreground(p.Background)
	AnnotationStyle = lipgloss.NewStyle().Underline(true).Foreground(p.Success)

	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Muted)
	StatusKeyStyle = lipgloss.NewStyle().Foreground(p.Primary)
	SearchBarStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().Foreground(p.Muted).MarginTop(1)
	ListTitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	ListItemStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	ListCurrentStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
