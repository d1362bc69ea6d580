package styles

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNamesSortedAndComplete(t *testing.T) {
	names := ThemeNames()

	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, DefaultTheme)

	for _, name := range names {
		p, ok := GetPalette(name)
		require.True(t, ok)
		assert.NotEmpty(t, p.Foreground, "theme %s", name)
		assert.NotEmpty(t, p.Background, "theme %s", name)
	}
}

func TestGetPaletteUnknown(t *testing.T) {
	_, ok := GetPalette("no-such-theme")
	assert.False(t, ok)
}

func TestSetThemeRebuildsStyles(t *testing.T) {
	defer SetTheme(themes[DefaultTheme])

	p, _ := GetPalette("gruvbox")
	SetTheme(p)

	assert.Equal(t, p, CurrentPalette)
	assert.Equal(t, p.Foreground, TextStyle.GetForeground())
	assert.Equal(t, p.Primary, HeadingStyle.GetForeground())
}
