package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/campusdesk/internal/chat"
	"github.com/wilbur182/campusdesk/internal/mouse"
	"github.com/wilbur182/campusdesk/internal/ui"
)

const chatWheelLines = 3

// Update handles every message delivered to the program.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		ctx := m.activeContext()
		if _, ok := m.keys.Lookup(msg, ctx); ok {
			return m, m.keys.Handle(msg, ctx)
		}
		return m, m.forwardKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.BlurMsg:
		m.pointer.Cancel()
		return m, nil

	case chat.SendMsg:
		return m, m.send(msg.Content)

	case replyMsg:
		return m, m.handleReply(msg)

	case ui.SpinnerTickMsg:
		return m, m.typing.Update(msg)

	case voiceMsg:
		return m, m.handleVoice(msg)

	case voiceHideMsg:
		m.handleVoiceHide(msg)
		return m, nil

	case summaryMsg:
		m.handleSummary(msg)
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast.text = ""
		}
		return m, nil

	case configMsg:
		return m, m.handleConfig(msg)
	}

	// cursor blink and other component ticks
	return m, m.forwardOther(msg)
}

// forwardKey passes a key that is not a command to the focused component.
func (m *Model) forwardKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.confirm != nil:
		return nil
	case m.form != nil:
		return m.form.update(msg)
	case m.prompt != nil:
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		m.prompt.err = ""
		return cmd
	}

	switch msg.Type {
	case tea.KeyPgUp:
		m.messages.ScrollBy(-m.pageLines())
		return nil
	case tea.KeyPgDown:
		m.messages.ScrollBy(m.pageLines())
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) forwardOther(msg tea.Msg) tea.Cmd {
	switch {
	case m.form != nil:
		return m.form.update(msg)
	case m.prompt != nil:
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) pageLines() int {
	if m.chatHeight > 1 {
		return m.chatHeight - 1
	}
	return 1
}

// handleMouse routes terminal mouse input. The hit map is the one built by
// the last View.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if isWheel(msg.Button) {
		m.handleWheel(msg)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.pressed = nil
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if r := m.hits.Test(msg.X, msg.Y); r != nil {
			rc := *r
			m.pressed = &rc
		}
		if !m.modalOpen() {
			m.pointer.HandleMouse(msg)
		}

	case tea.MouseActionMotion:
		m.pointer.HandleMouse(msg)

	case tea.MouseActionRelease:
		pressed := m.pressed
		m.pressed = nil
		if m.pointer.HandleMouse(msg) || pressed == nil {
			return nil
		}
		r := m.hits.Test(msg.X, msg.Y)
		if r == nil || r.ID != pressed.ID || r.Data != pressed.Data {
			return nil
		}
		return m.click(*r)
	}
	return nil
}

func isWheel(b tea.MouseButton) bool {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m *Model) handleWheel(msg tea.MouseMsg) {
	if m.modalOpen() {
		return
	}
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	default:
		return
	}

	switch {
	case m.drawer.open && m.hits.Within(msg.X, msg.Y, mouse.RegionDrawer, mouse.RegionDrawerEntry, mouse.RegionDrawerClose):
		m.drawer.move(delta)
	case m.inSheet(msg.Y):
		m.pointer.HandleMouse(msg)
	default:
		m.messages.ScrollBy(delta * chatWheelLines)
	}
}

// click handles a press and release on the same region that was not part of
// a drag.
func (m *Model) click(r mouse.Region) tea.Cmd {
	if m.modalOpen() {
		return m.clickModal(r.ID)
	}

	switch r.ID {
	case mouse.RegionHandle:
		m.gestures.Toggle()
	case mouse.RegionTool:
		if id, ok := r.Data.(string); ok {
			return m.run(id)
		}
	case mouse.RegionChip:
		if text, ok := r.Data.(string); ok {
			m.Expand()
			return m.send(text)
		}
	case mouse.RegionChat:
		m.Collapse()
	case mouse.RegionInput:
		m.Expand()
		return m.input.Focus()
	case mouse.RegionDrawerEntry:
		if pos, ok := r.Data.(int); ok {
			m.loadSession(pos)
		}
	case mouse.RegionDrawerClose:
		m.closeDrawer()
	}
	return nil
}
