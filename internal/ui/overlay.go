package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// OverlayAt draws block over base with its top-left corner at (x, y).
// Cells of base outside the block are kept, styling included.
func OverlayAt(base, block string, x, y int) string {
	if block == "" {
		return base
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	lines := strings.Split(base, "\n")
	for i, bl := range strings.Split(block, "\n") {
		row := y + i
		if row >= len(lines) {
			break
		}
		line := lines[row]
		w := ansi.StringWidth(line)
		if w < x {
			line += strings.Repeat(" ", x-w)
			w = x
		}
		bw := ansi.StringWidth(bl)
		lines[row] = ansi.Cut(line, 0, x) + bl + ansi.Cut(line, x+bw, w)
	}
	return strings.Join(lines, "\n")
}

// CenterOrigin returns where a block must start to sit centered in an area.
func CenterOrigin(areaW, areaH int, block string) (x, y int) {
	x = (areaW - lipgloss.Width(block)) / 2
	y = (areaH - lipgloss.Height(block)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
