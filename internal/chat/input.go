package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/campusdesk/internal/styles"
)

// Placeholder is the hint shown in an empty input.
const Placeholder = "Ask about timetables, exams, or study materials..."

// Input is the message input backed by a bubbles textarea.
type Input struct {
	textarea   textarea.Model
	focused    bool
	submitting bool // reply pending; Enter is ignored
}

// NewInput creates a new Input with default settings.
func NewInput() *Input {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.MaxHeight = 3
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.Blur()

	return &Input{textarea: ta}
}

// Update handles incoming tea messages.
func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter && !keyMsg.Alt {
		if i.submitting {
			return i, nil
		}
		val := strings.TrimSpace(i.textarea.Value())
		if val == "" {
			return i, nil
		}
		i.textarea.Reset()
		return i, func() tea.Msg { return SendMsg{Content: val} }
	}

	var cmd tea.Cmd
	i.textarea, cmd = i.textarea.Update(msg)
	return i, cmd
}

// View renders the input constrained to the given width.
func (i *Input) View(width int) string {
	if width <= 0 {
		width = 80
	}

	// border 1 + padding 1 on both sides
	innerWidth := width - 4
	if innerWidth < 1 {
		innerWidth = 1
	}
	i.textarea.SetWidth(innerWidth)

	box := styles.InputBox
	if i.focused {
		box = styles.InputActive
	}
	content := i.textarea.View()
	if i.submitting {
		content = styles.Muted.Render(content)
	}
	return box.Padding(0, 1).Width(width - 2).Render(content)
}

// Height is the rendered height of the input box.
func (i *Input) Height() int {
	return i.textarea.Height() + 2
}

// Focus focuses the textarea and marks it as focused.
func (i *Input) Focus() tea.Cmd {
	i.focused = true
	return i.textarea.Focus()
}

// Blur blurs the textarea and marks it as unfocused.
func (i *Input) Blur() {
	i.textarea.Blur()
	i.focused = false
}

// SetSubmitting sets the reply-pending state.
func (i *Input) SetSubmitting(v bool) {
	i.submitting = v
}

// IsSubmitting returns whether a reply is pending.
func (i *Input) IsSubmitting() bool {
	return i.submitting
}

// Value returns the current textarea text.
func (i *Input) Value() string {
	return i.textarea.Value()
}

// SetValue replaces the textarea text, e.g. with a voice transcript.
func (i *Input) SetValue(s string) {
	i.textarea.SetValue(s)
}

// Reset clears the textarea content.
func (i *Input) Reset() {
	i.textarea.Reset()
}

// IsFocused returns whether the input is focused.
func (i *Input) IsFocused() bool {
	return i.focused
}
