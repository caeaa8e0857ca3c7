package app

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wilbur182/campusdesk/internal/chatlog"
	"github.com/wilbur182/campusdesk/internal/history"
	"github.com/wilbur182/campusdesk/internal/keymap"
	"github.com/wilbur182/campusdesk/internal/mouse"
	"github.com/wilbur182/campusdesk/internal/styles"
)

const (
	drawerMaxWidth = 44
	entryHeight    = 4 // label, preview, time, gap
	drawerTimeFmt  = "Jan 2, 2006 3:04 PM"
	emptyHistory   = "No chat history yet"
)

// drawer is the history side panel.
type drawer struct {
	open    bool
	entries []history.Entry
	cursor  int
	scroll  int
}

func (d *drawer) refresh(msgs []chatlog.Message, gap time.Duration) {
	d.entries = history.Entries(history.Group(msgs, gap))
	if d.cursor >= len(d.entries) {
		d.cursor = len(d.entries) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *drawer) move(delta int) {
	if !d.open || len(d.entries) == 0 {
		return
	}
	d.cursor += delta
	if d.cursor < 0 {
		d.cursor = 0
	}
	if d.cursor >= len(d.entries) {
		d.cursor = len(d.entries) - 1
	}
}

// ensureVisible keeps the cursor inside a window of visible entries.
func (d *drawer) ensureVisible(visible int) {
	if visible < 1 {
		visible = 1
	}
	if d.cursor < d.scroll {
		d.scroll = d.cursor
	}
	if d.cursor >= d.scroll+visible {
		d.scroll = d.cursor - visible + 1
	}
	if limit := len(d.entries) - visible; d.scroll > limit {
		d.scroll = limit
	}
	if d.scroll < 0 {
		d.scroll = 0
	}
}

// toggleDrawer opens the drawer, expanding the sheet first, or closes it.
func (m *Model) toggleDrawer() {
	if m.drawer.open {
		m.closeDrawer()
		return
	}
	m.Expand()
	m.drawer.open = true
	m.drawer.cursor = 0
	m.drawer.scroll = 0
	m.drawer.refresh(m.chat.Messages(), m.cfg.History.SessionGap)
}

func (m *Model) closeDrawer() {
	m.drawer.open = false
}

// loadSession handles a click on a history entry. Reloading a past session
// into the chat is not supported yet, so it only closes the drawer.
func (m *Model) loadSession(pos int) {
	if pos >= 0 && pos < len(m.drawer.entries) {
		m.drawer.cursor = pos
	}
	m.toggleDrawer()
}

func (m *Model) drawerWidth() int {
	w := drawerMaxWidth
	if limit := m.width * 2 / 3; w > limit {
		w = limit
	}
	if w < 20 {
		w = m.width
	}
	return w
}

// renderDrawer draws the drawer for an area of the given height and
// registers its hit regions at column x.
func (m *Model) renderDrawer(x, height int) string {
	if height < 5 {
		return ""
	}
	w := m.drawerWidth()
	inner := w - 3 // left border + padding
	if inner < 1 {
		inner = 1
	}
	line := func(s string, st lipgloss.Style) string {
		return st.Width(inner).MaxWidth(inner).Render(ansi.Truncate(s, inner, "…"))
	}

	m.hits.AddRect(mouse.RegionDrawer, x, 0, w, height, nil)

	lines := make([]string, 0, height)
	closeLabel := "✕"
	title := styles.Title.Render("Chat History")
	pad := inner - lipgloss.Width(title) - lipgloss.Width(closeLabel)
	if pad < 1 {
		pad = 1
	}
	lines = append(lines, title+lipgloss.NewStyle().Width(pad).Render("")+styles.Muted.Render(closeLabel))
	m.hits.AddRect(mouse.RegionDrawerClose, x+2+inner-lipgloss.Width(closeLabel), 0, lipgloss.Width(closeLabel), 1, nil)
	lines = append(lines, "")

	// header (2) and clear button (2) frame the list
	listHeight := height - 4
	if len(m.drawer.entries) == 0 {
		lines = append(lines, line(emptyHistory, styles.Muted))
	} else {
		visible := listHeight / entryHeight
		m.drawer.ensureVisible(visible)
		end := m.drawer.scroll + visible
		if end > len(m.drawer.entries) {
			end = len(m.drawer.entries)
		}
		for pos := m.drawer.scroll; pos < end; pos++ {
			e := m.drawer.entries[pos]
			st := styles.DrawerEntry
			if pos == m.drawer.cursor {
				st = styles.DrawerActive
			}
			top := len(lines)
			lines = append(lines,
				line(styles.Title.Render(e.Label), st),
				line(e.Preview, st),
				line(styles.Muted.Render(e.StartTime.Local().Format(drawerTimeFmt)), st),
				"",
			)
			m.hits.AddRect(mouse.RegionDrawerEntry, x, top, w, entryHeight-1, pos)
		}
	}

	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = lines[:height-1]
	clearBtn := styles.ButtonDanger.Render("Clear history")
	lines = append(lines, clearBtn)
	m.hits.AddRect(mouse.RegionTool, x+2, height-1, lipgloss.Width(clearBtn), 1, keymap.CmdClearHistory)

	return styles.Drawer.
		Background(styles.BgPrimary).
		Width(w - 1).
		Height(height).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
