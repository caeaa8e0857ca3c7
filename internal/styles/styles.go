// Package styles holds the light and dark palettes and the lipgloss styles
// derived from them.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors from the active palette.
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	TextInverse   lipgloss.Color

	BgPrimary   lipgloss.Color
	BgSecondary lipgloss.Color
	BgTertiary  lipgloss.Color

	BorderNormal lipgloss.Color
	BorderActive lipgloss.Color

	UserBubble lipgloss.Color
	BotBubble  lipgloss.Color
)

// Styles rebuilt on every theme change.
var (
	Sheet         lipgloss.Style
	SheetHandle   lipgloss.Style
	Header        lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Body          lipgloss.Style
	Muted         lipgloss.Style
	Link          lipgloss.Style
	KeyHint       lipgloss.Style
	ToolIcon      lipgloss.Style
	ToolIconOn    lipgloss.Style
	UserMessage   lipgloss.Style
	BotMessage    lipgloss.Style
	Timestamp     lipgloss.Style
	Chip          lipgloss.Style
	StatusBox     lipgloss.Style
	StatusError   lipgloss.Style
	InputBox      lipgloss.Style
	InputActive   lipgloss.Style
	Drawer        lipgloss.Style
	DrawerEntry   lipgloss.Style
	DrawerActive  lipgloss.Style
	ModalBox      lipgloss.Style
	ModalTitle    lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonHover   lipgloss.Style
	ButtonDanger  lipgloss.Style
	Footer        lipgloss.Style
	ScrollTrack   lipgloss.Style
	ScrollThumb   lipgloss.Style
	ScrollNewer   lipgloss.Style
)

func init() {
	applyColors(LightTheme.Colors)
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Sheet = lipgloss.NewStyle().
		Background(BgSecondary)

	SheetHandle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	Header = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ScrollTrack = lipgloss.NewStyle().
		Foreground(BorderNormal)

	ScrollThumb = lipgloss.NewStyle().
		Foreground(TextMuted)

	ScrollNewer = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Text styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Link = lipgloss.NewStyle().
		Foreground(Secondary).
		Underline(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	ToolIcon = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	ToolIconOn = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Accent).
		Padding(0, 1)

	// Messages
	UserMessage = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(UserBubble).
		Padding(0, 1)

	BotMessage = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BotBubble).
		Padding(0, 1)

	Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	Chip = lipgloss.NewStyle().
		Foreground(Primary).
		Background(BgTertiary).
		Padding(0, 1)

	StatusBox = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	// Input
	InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal)

	InputActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive)

	// History drawer
	Drawer = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	DrawerEntry = lipgloss.NewStyle().
		Foreground(TextPrimary)

	DrawerActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	// Modal styles
	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(BgSecondary).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	// Button styles
	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Primary).
		Padding(0, 2).
		Bold(true)

	ButtonHover = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BorderNormal).
		Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Error).
		Padding(0, 2).
		Bold(true)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted)
}
