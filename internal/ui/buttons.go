// Package ui holds small rendering helpers shared by the sheet views.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/campusdesk/internal/styles"
)

// Button indices used by two-button dialogs.
const (
	ButtonNone    = 0
	ButtonConfirm = 1
	ButtonCancel  = 2
)

// ResolveButtonStyle returns the appropriate style based on focus and hover
// state. ButtonNone means no button is focused or hovered.
func ResolveButtonStyle(focusIdx, hoverIdx, btnIdx int) lipgloss.Style {
	if focusIdx == btnIdx {
		return styles.ButtonFocused
	}
	if hoverIdx == btnIdx {
		return styles.ButtonHover
	}
	return styles.Button
}

// RenderButtonPair renders a confirm/cancel button pair with proper spacing.
// A danger pair paints the confirm button red whenever it is not focused.
func RenderButtonPair(confirmLabel, cancelLabel string, focusIdx, hoverIdx int, danger bool) string {
	confirmStyle := ResolveButtonStyle(focusIdx, hoverIdx, ButtonConfirm)
	if danger && focusIdx != ButtonConfirm {
		confirmStyle = styles.ButtonDanger
	}
	cancelStyle := ResolveButtonStyle(focusIdx, hoverIdx, ButtonCancel)

	var sb strings.Builder
	sb.WriteString(confirmStyle.Render(confirmLabel))
	sb.WriteString("  ")
	sb.WriteString(cancelStyle.Render(cancelLabel))
	return sb.String()
}

// ButtonPairWidths returns the rendered widths of the confirm and cancel
// buttons plus the gap between them, for hit testing.
func ButtonPairWidths(confirmLabel, cancelLabel string) (confirm, gap, cancel int) {
	return lipgloss.Width(styles.Button.Render(confirmLabel)), 2, lipgloss.Width(styles.Button.Render(cancelLabel))
}
