package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// themeMu protects currentTheme for thread safety
var themeMu sync.RWMutex

// ColorPalette holds all theme colors
type ColorPalette struct {
	Primary   string
	Secondary string
	Accent    string

	Success string
	Warning string
	Error   string

	TextPrimary   string
	TextSecondary string
	TextMuted     string
	TextInverse   string

	BgPrimary   string
	BgSecondary string
	BgTertiary  string

	BorderNormal string
	BorderActive string

	UserBubble string
	BotBubble  string

	// MarkdownTheme is the glamour standard style name
	MarkdownTheme string
}

// Theme is a named palette.
type Theme struct {
	Name        string
	DisplayName string
	Colors      ColorPalette
}

var (
	LightTheme = Theme{
		Name:        ThemeLight,
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:       "#1D4ED8",
			Secondary:     "#0F766E",
			Accent:        "#D97706",
			Success:       "#15803D",
			Warning:       "#B45309",
			Error:         "#B91C1C",
			TextPrimary:   "#111827",
			TextSecondary: "#374151",
			TextMuted:     "#6B7280",
			TextInverse:   "#FFFFFF",
			BgPrimary:     "#FFFFFF",
			BgSecondary:   "#F3F4F6",
			BgTertiary:    "#E5E7EB",
			BorderNormal:  "#D1D5DB",
			BorderActive:  "#1D4ED8",
			UserBubble:    "#DBEAFE",
			BotBubble:     "#F3F4F6",
			MarkdownTheme: "light",
		},
	}

	DarkTheme = Theme{
		Name:        ThemeDark,
		DisplayName: "Dark",
		Colors: ColorPalette{
			Primary:       "#7C3AED",
			Secondary:     "#3B82F6",
			Accent:        "#F59E0B",
			Success:       "#10B981",
			Warning:       "#F59E0B",
			Error:         "#EF4444",
			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextInverse:   "#111827",
			BgPrimary:     "#111827",
			BgSecondary:   "#1F2937",
			BgTertiary:    "#374151",
			BorderNormal:  "#374151",
			BorderActive:  "#7C3AED",
			UserBubble:    "#312E81",
			BotBubble:     "#1F2937",
			MarkdownTheme: "dark",
		},
	}
)

var themeRegistry = map[string]Theme{
	ThemeLight: LightTheme,
	ThemeDark:  DarkTheme,
}

var currentTheme = LightTheme

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the light theme if not found
func GetTheme(name string) Theme {
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return LightTheme
}

// CurrentThemeName returns the name of the active theme
func CurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme.Name
}

// Next returns the theme a toggle switches to.
func Next(name string) string {
	if name == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel is the accessible label of the theme toggle.
func ToggleLabel(name string) string {
	if name == ThemeDark {
		return "Switch to light mode"
	}
	return "Switch to dark mode"
}

// ToggleIcon is the glyph of the theme toggle: a moon in light mode, a sun
// in dark mode.
func ToggleIcon(name string) string {
	if name == ThemeDark {
		return "☀"
	}
	return "☾"
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	theme := GetTheme(name)
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	applyColors(theme.Colors)
}

// GetMarkdownTheme returns the glamour style for the active theme
func GetMarkdownTheme() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme.Colors.MarkdownTheme
}

func applyColors(c ColorPalette) {
	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)
	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextInverse = lipgloss.Color(c.TextInverse)
	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)
	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)
	UserBubble = lipgloss.Color(c.UserBubble)
	BotBubble = lipgloss.Color(c.BotBubble)

	rebuildStyles()
}
