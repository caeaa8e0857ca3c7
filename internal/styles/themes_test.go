package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestApplyThemeSwitchesPalette(t *testing.T) {
	t.Cleanup(func() { ApplyTheme(ThemeLight) })

	ApplyTheme(ThemeDark)
	assert.Equal(t, ThemeDark, CurrentThemeName())
	assert.Equal(t, "dark", GetMarkdownTheme())
	assert.Equal(t, lipgloss.Color(DarkTheme.Colors.Primary), Primary)
	assert.Equal(t, lipgloss.Color(DarkTheme.Colors.Primary), ButtonFocused.GetBackground())

	ApplyTheme(ThemeLight)
	assert.Equal(t, ThemeLight, CurrentThemeName())
	assert.Equal(t, "light", GetMarkdownTheme())
}

func TestUnknownThemeFallsBackToLight(t *testing.T) {
	t.Cleanup(func() { ApplyTheme(ThemeLight) })

	ApplyTheme("solarized")
	assert.Equal(t, ThemeLight, CurrentThemeName())
	assert.False(t, IsValidTheme("solarized"))
	assert.True(t, IsValidTheme(ThemeDark))
}

func TestToggleHelpers(t *testing.T) {
	assert.Equal(t, ThemeDark, Next(ThemeLight))
	assert.Equal(t, ThemeLight, Next(ThemeDark))
	assert.Equal(t, ThemeDark, Next(""))

	assert.Equal(t, "Switch to dark mode", ToggleLabel(ThemeLight))
	assert.Equal(t, "Switch to light mode", ToggleLabel(ThemeDark))
	assert.NotEqual(t, ToggleIcon(ThemeLight), ToggleIcon(ThemeDark))
}
