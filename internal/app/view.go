package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wilbur182/campusdesk/internal/keymap"
	"github.com/wilbur182/campusdesk/internal/mouse"
	"github.com/wilbur182/campusdesk/internal/styles"
	"github.com/wilbur182/campusdesk/internal/ui"
	"github.com/wilbur182/campusdesk/internal/upload"
)

const (
	defaultTermHeight = 24
	handleGlyph       = "━━━━━━"
	appTitle          = "GCET Assistant"
)

var footerCommands = []string{
	keymap.CmdToggleSheet,
	keymap.CmdHistory,
	keymap.CmdTheme,
	keymap.CmdQuit,
}

// tool is a clickable label that runs a keymap command.
type tool struct {
	label string
	cmd   string
	on    bool
}

// View renders the chat above the bottom sheet and rebuilds the hit map.
func (m *Model) View() string {
	m.hits.Clear()

	w, h := m.width, m.height
	if w <= 0 {
		w = defaultTermWidth
	}
	if h <= 0 {
		h = defaultTermHeight
	}

	sheet := m.renderSheet(w)
	sheetH := lipgloss.Height(sheet)
	chatH := h - sheetH
	if chatH < 1 {
		chatH = 1
	}
	m.chatHeight = chatH
	m.sheetTop = chatH

	// sheet, drawer and dialogs register after the chat and sit above it
	m.hits.AddRect(mouse.RegionChat, 0, 0, w, chatH, nil)
	m.messages.SetSize(w-1, chatH)
	m.messages.SetMessages(m.displayMessages(), m.typing.View())
	chatView := lipgloss.NewStyle().Width(w).Height(chatH).MaxHeight(chatH).Render(m.messages.View())

	view := lipgloss.JoinVertical(lipgloss.Left, chatView, m.placeSheet(sheet, chatH))

	if m.drawer.open {
		x := w - m.drawerWidth()
		if d := m.renderDrawer(x, h); d != "" {
			view = ui.OverlayAt(view, d, x, 0)
		}
	}
	return m.renderOverlays(view)
}

// sheetRow is one line of the sheet with the regions it contains, relative
// to the row.
type sheetRow struct {
	text    string
	regions []mouse.Region
}

// renderSheet draws the sheet rows. Regions are registered by placeSheet once
// the sheet's top row is known.
func (m *Model) renderSheet(w int) string {
	m.sheetRows = nil
	m.pendingRegions = nil

	handlePad := (w - lipgloss.Width(handleGlyph)) / 2
	if handlePad < 0 {
		handlePad = 0
	}
	m.region(mouse.RegionHandle, 0, w, nil)
	m.addSheetRow(w, strings.Repeat(" ", handlePad)+styles.SheetHandle.Render(handleGlyph))

	m.addSheetRow(w, m.renderHeader(w))

	if !m.collapsed {
		m.addSheetRow(w, m.renderChips())
		m.addSheetRow(w, m.renderTools())
		m.region(mouse.RegionStatus, 0, w, nil)
		m.addSheetRow(w, m.renderStatus())
	}

	input := m.input.View(w)
	m.sheetRows = append(m.sheetRows, sheetRow{
		text: input,
		regions: []mouse.Region{{
			ID:   mouse.RegionInput,
			Rect: mouse.Rect{W: w, H: lipgloss.Height(input)},
		}},
	})

	m.addSheetRow(w, m.renderFooter(w))

	lines := make([]string, 0, len(m.sheetRows))
	for _, r := range m.sheetRows {
		lines = append(lines, r.text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// addSheetRow truncates text to w and records it with the queued regions.
func (m *Model) addSheetRow(w int, text string) {
	row := sheetRow{
		text:    styles.Sheet.Width(w).MaxWidth(w).Render(ansi.Truncate(text, w, "…")),
		regions: m.pendingRegions,
	}
	m.pendingRegions = nil
	m.sheetRows = append(m.sheetRows, row)
}

// placeSheet registers the regions of every sheet row below top.
func (m *Model) placeSheet(sheet string, top int) string {
	y := top
	for _, row := range m.sheetRows {
		for _, r := range row.regions {
			m.hits.AddRect(r.ID, r.Rect.X, y+r.Rect.Y, r.Rect.W, r.Rect.H, r.Data)
		}
		y += lipgloss.Height(row.text)
	}
	return sheet
}

// region queues a region for the row being built.
func (m *Model) region(id string, x, w int, data any) {
	m.pendingRegions = append(m.pendingRegions, mouse.Region{
		ID:   id,
		Rect: mouse.Rect{X: x, W: w, H: 1},
		Data: data,
	})
}

func (m *Model) renderHeader(w int) string {
	m.region(mouse.RegionHeader, 0, w, nil)

	left := " " + styles.Title.Render(appTitle) + "  " + styles.Subtitle.Render(m.profileSummary())

	icons := []tool{
		{label: styles.ToggleIcon(m.theme), cmd: keymap.CmdTheme},
		{label: "☰", cmd: keymap.CmdHistory, on: m.drawer.open},
		{label: "⚙", cmd: keymap.CmdProfile, on: m.form != nil},
	}
	var right strings.Builder
	rightW := 0
	for _, t := range icons {
		rightW += lipgloss.Width(toolStyle(t.on).Render(t.label))
	}
	x := w - rightW
	for _, t := range icons {
		s := toolStyle(t.on).Render(t.label)
		sw := lipgloss.Width(s)
		m.region(mouse.RegionTool, x, sw, t.cmd)
		right.WriteString(s)
		x += sw
	}

	gap := w - lipgloss.Width(left) - rightW
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right.String()
}

func (m *Model) profileSummary() string {
	if m.profile.IsZero() {
		return "Set your profile"
	}
	return fmt.Sprintf("%s • Sem %d • %s", m.profile.Branch, m.profile.Semester, m.profile.Batch)
}

func (m *Model) renderChips() string {
	var b strings.Builder
	x := 1
	b.WriteString(" ")
	for _, text := range QuickActions {
		s := styles.Chip.Render(text)
		sw := lipgloss.Width(s)
		m.region(mouse.RegionChip, x, sw, text)
		b.WriteString(s + " ")
		x += sw + 1
	}
	return b.String()
}

func (m *Model) renderTools() string {
	voiceLabel := "Voice"
	if m.listening {
		voiceLabel = "Stop voice"
	}
	tools := []tool{
		{label: voiceLabel, cmd: keymap.CmdVoice, on: m.listening},
		{label: "Upload", cmd: keymap.CmdUpload},
		{label: "Summarise", cmd: keymap.CmdSummarise, on: m.summarising},
		{label: "Copy link", cmd: keymap.CmdCopyLink},
	}
	var b strings.Builder
	x := 1
	b.WriteString(" ")
	for _, t := range tools {
		s := toolStyle(t.on).Render(t.label)
		sw := lipgloss.Width(s)
		m.region(mouse.RegionTool, x, sw, t.cmd)
		b.WriteString(s + " ")
		x += sw + 1
	}
	return b.String()
}

func toolStyle(on bool) lipgloss.Style {
	if on {
		return styles.ToolIconOn
	}
	return styles.ToolIcon
}

func (m *Model) renderStatus() string {
	status := " " + styles.Muted.Render(upload.Status(m.doc))
	if m.voiceShown {
		v := styles.Muted.Render("Inactive")
		if m.listening {
			v = styles.StatusBox.Render("Listening…")
		}
		status += styles.Muted.Render(" • ") + v
	}
	return status
}

func (m *Model) renderFooter(w int) string {
	if m.toast.text != "" {
		st := styles.StatusBox
		if m.toast.isErr {
			st = styles.StatusError
		}
		return " " + st.Render(m.toast.text)
	}

	var parts []string
	for _, id := range footerCommands {
		keys := m.keys.KeysFor(id, keymap.ContextChat)
		if len(keys) == 0 {
			keys = m.keys.KeysFor(id, keymap.ContextGlobal)
		}
		c, ok := m.keys.GetCommand(id)
		if len(keys) == 0 || !ok {
			continue
		}
		parts = append(parts, styles.KeyHint.Render(keys[0])+" "+styles.Footer.Render(c.Name))
	}
	footer := " " + strings.Join(parts, "  ")
	if lipgloss.Width(footer) > w {
		footer = ansi.Truncate(footer, w, "")
	}
	return footer
}
