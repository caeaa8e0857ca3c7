package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wilbur182/campusdesk/internal/assistant"
	"github.com/wilbur182/campusdesk/internal/markdown"
	"github.com/wilbur182/campusdesk/internal/mouse"
	"github.com/wilbur182/campusdesk/internal/store"
	"github.com/wilbur182/campusdesk/internal/styles"
	"github.com/wilbur182/campusdesk/internal/ui"
)

const dialogMaxWidth = 60

// profileForm collects branch, semester and batch.
type profileForm struct {
	inputs [3]textinput.Model
	focus  int
}

var profileLabels = [3]string{"Branch", "Semester", "Batch"}

func newProfileForm(uc assistant.UserContext) *profileForm {
	def := assistant.DefaultUserContext()
	f := &profileForm{}
	values := [3]string{uc.Branch, "", uc.Batch}
	if uc.Semester > 0 {
		values[1] = strconv.Itoa(uc.Semester)
	}
	placeholders := [3]string{def.Branch, strconv.Itoa(def.Semester), def.Batch}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 16
		ti.Width = 20
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

func (f *profileForm) cycle(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *profileForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value reads the form; blanks take the placeholder and a semester that is
// not a positive number becomes 1.
func (f *profileForm) value() assistant.UserContext {
	get := func(i int) string {
		if v := strings.TrimSpace(f.inputs[i].Value()); v != "" {
			return v
		}
		return f.inputs[i].Placeholder
	}
	sem, err := strconv.Atoi(get(1))
	if err != nil || sem < 1 {
		sem = 1
	}
	return assistant.UserContext{Branch: get(0), Semester: sem, Batch: get(2)}
}

// Opening a dialog drops any gesture in progress.
func (m *Model) openProfile() tea.Cmd {
	m.pointer.Cancel()
	m.form = newProfileForm(m.profile)
	m.input.Blur()
	return textinput.Blink
}

// saveProfile persists the form and confirms it in the chat.
func (m *Model) saveProfile() tea.Cmd {
	if m.form == nil {
		return nil
	}
	uc := m.form.value()
	m.form = nil
	m.profile = uc

	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()
	var cmd tea.Cmd
	if err := store.SetJSON(ctx, m.kv, store.KeyUserContext, uc); err != nil {
		m.log.Warn("save user context", zap.Error(err))
		cmd = m.showToast("Could not save your profile", true)
	}
	m.addBot(fmt.Sprintf("Great! I'll remember you're in %s Semester %d, Batch %s.", uc.Branch, uc.Semester, uc.Batch), false)
	return tea.Batch(cmd, m.input.Focus())
}

const (
	confirmFocusConfirm = ui.ButtonConfirm
	confirmFocusCancel  = ui.ButtonCancel
)

// confirmDialog asks before clearing history.
type confirmDialog struct {
	focus int
}

func (c *confirmDialog) toggleFocus() {
	if c.focus == confirmFocusConfirm {
		c.focus = confirmFocusCancel
	} else {
		c.focus = confirmFocusConfirm
	}
}

func (m *Model) openConfirm() {
	m.pointer.Cancel()
	m.confirm = &confirmDialog{focus: confirmFocusCancel}
}

// uploadPrompt asks for the path of a document to attach.
type uploadPrompt struct {
	input textinput.Model
	err   string
}

func (m *Model) openUpload() tea.Cmd {
	ti := textinput.New()
	ti.Placeholder = "~/Downloads/notes.pdf"
	ti.Width = dialogMaxWidth - 10
	m.pointer.Cancel()
	m.prompt = &uploadPrompt{input: ti}
	m.input.Blur()
	return m.prompt.input.Focus()
}

// dialog is the shared look of the centered modals.
type dialog struct {
	title string
	text  string   // wrapped to the dialog width
	lines []string // drawn as is below text
	confirm string
	cancel  string
	focus   int
	danger  bool
}

// renderDialog overlays d on base and registers its hit regions.
func (m *Model) renderDialog(base string, d dialog) string {
	boxW := dialogMaxWidth
	if boxW > m.width-2 {
		boxW = m.width - 2
	}
	// padding 2 on both sides
	inner := boxW - 4
	if inner < 1 {
		inner = 1
	}

	var body []string
	if d.text != "" {
		body = append(body, markdown.WrapText(d.text, inner)...)
	}
	body = append(body, d.lines...)

	parts := []string{styles.ModalTitle.Render(d.title)}
	if len(body) > 0 {
		parts = append(parts, strings.Join(body, "\n"))
	}
	parts = append(parts, "")
	above := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, parts...))
	parts = append(parts, ui.RenderButtonPair(d.confirm, d.cancel, d.focus, ui.ButtonNone, d.danger))

	box := styles.ModalBox.Width(boxW).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	x, y := ui.CenterOrigin(m.width, m.height, box)

	m.hits.AddRect(mouse.RegionModal, x, y, lipgloss.Width(box), lipgloss.Height(box), nil)
	// border 1 + padding 1 above, border 1 + padding 2 to the left
	bx, by := x+3, y+2+above
	cw, gap, kw := ui.ButtonPairWidths(d.confirm, d.cancel)
	m.hits.AddRect(mouse.RegionModalConfirm, bx, by, cw, 1, nil)
	m.hits.AddRect(mouse.RegionModalCancel, bx+cw+gap, by, kw, 1, nil)

	return ui.OverlayAt(base, box, x, y)
}

func (m *Model) renderOverlays(base string) string {
	switch {
	case m.confirm != nil:
		return m.renderDialog(base, dialog{
			title:   "Clear chat history?",
			text:    "Are you sure you want to clear all chat history? This cannot be undone.",
			confirm: "Clear",
			cancel:  "Cancel",
			focus:   m.confirm.focus,
			danger:  true,
		})
	case m.form != nil:
		lines := []string{""}
		for i, ti := range m.form.inputs {
			label := styles.Subtitle.Render(fmt.Sprintf("%-9s", profileLabels[i]))
			lines = append(lines, label+" "+ti.View())
		}
		return m.renderDialog(base, dialog{
			title:   "Your profile",
			text:    "Tell me where you study so I can fetch the right timetable.",
			lines:   lines,
			confirm: "Save",
			cancel:  "Cancel",
			focus:   ui.ButtonNone,
		})
	case m.prompt != nil:
		lines := []string{"", m.prompt.input.View()}
		if m.prompt.err != "" {
			lines = append(lines, styles.StatusError.Render(m.prompt.err))
		}
		return m.renderDialog(base, dialog{
			title:   "Upload a document",
			text:    "Path to the document to summarise:",
			lines:   lines,
			confirm: "Attach",
			cancel:  "Cancel",
			focus:   ui.ButtonNone,
		})
	}
	return base
}

// clickModal handles clicks on the dialog buttons.
func (m *Model) clickModal(id string) tea.Cmd {
	switch id {
	case mouse.RegionModalConfirm:
		return m.confirmTop()
	case mouse.RegionModalCancel:
		return m.closeTop()
	}
	return nil
}
