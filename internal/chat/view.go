package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/campusdesk/internal/chatlog"
	"github.com/wilbur182/campusdesk/internal/markdown"
	"github.com/wilbur182/campusdesk/internal/styles"
	"github.com/wilbur182/campusdesk/internal/ui"
)

const (
	userPrefix = "You"
	botPrefix  = "GCET Assistant"
	timeLayout = "3:04 PM"
)

// MessageViewport renders and scrolls the conversation.
type MessageViewport struct {
	viewport viewport.Model
	renderer *markdown.Renderer
	width    int
	height   int
	atBottom bool
}

// NewMessageViewport creates a new message viewport with the given dimensions.
func NewMessageViewport(width, height int, renderer *markdown.Renderer) MessageViewport {
	if renderer == nil {
		renderer = markdown.NewRenderer(nil)
	}
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = false
	return MessageViewport{
		viewport: vp,
		renderer: renderer,
		width:    width,
		height:   height,
		atBottom: true,
	}
}

// SetMessages updates the viewport content. A non-empty typing view is
// appended as a pending bot turn.
func (v *MessageViewport) SetMessages(msgs []chatlog.Message, typing string) {
	content := renderMessages(msgs, v.width, v.renderer)
	if typing != "" {
		content += "\n\n" + styles.Muted.Render(botPrefix+" is typing ") + typing
	}
	v.viewport.SetContent(content)
	if v.atBottom {
		v.viewport.GotoBottom()
	}
}

// SetSize updates the viewport dimensions.
func (v *MessageViewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
}

// Update handles tea messages for the viewport.
func (v *MessageViewport) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	v.atBottom = v.viewport.AtBottom()
	return cmd
}

// ScrollBy moves the viewport by n lines; negative scrolls up.
func (v *MessageViewport) ScrollBy(n int) {
	if n < 0 {
		v.viewport.LineUp(-n)
	} else {
		v.viewport.LineDown(n)
	}
	v.atBottom = v.viewport.AtBottom()
}

// GotoBottom pins the viewport to the newest message.
func (v *MessageViewport) GotoBottom() {
	v.viewport.GotoBottom()
	v.atBottom = true
}

// AtBottom reports whether the newest message is visible.
func (v *MessageViewport) AtBottom() bool {
	return v.atBottom
}

// View returns the viewport with a scrollbar column.
func (v *MessageViewport) View() string {
	bar := ui.ChatScrollbar{
		Lines:  v.viewport.TotalLineCount(),
		Offset: v.viewport.YOffset,
		Height: v.viewport.Height,
	}.Render()
	if bar == "" {
		return v.viewport.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, v.viewport.View(), bar)
}

// renderMessages renders the conversation as formatted text.
func renderMessages(messages []chatlog.Message, width int, md *markdown.Renderer) string {
	if len(messages) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(styles.TextMuted).
			Render("\n\nAsk me anything about GCET")
	}

	// leave room for the scrollbar and bubble padding
	bodyWidth := width - 3
	if bodyWidth < 1 {
		bodyWidth = 1
	}

	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		stamp := ""
		if !msg.Timestamp.IsZero() {
			stamp = " " + styles.Timestamp.Render(msg.Timestamp.Local().Format(timeLayout))
		}

		if msg.Role == chatlog.RoleUser {
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).Render(userPrefix) + stamp)
			sb.WriteString("\n")
			lines := markdown.WrapText(msg.Content, bodyWidth-2)
			sb.WriteString(styles.UserMessage.Render(strings.Join(lines, "\n")))
			continue
		}

		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render(botPrefix) + stamp)
		sb.WriteString("\n")
		if msg.IsStructured {
			sb.WriteString(strings.Join(md.RenderContent(msg.Content, bodyWidth), "\n"))
		} else {
			lines := markdown.WrapText(msg.Content, bodyWidth-2)
			sb.WriteString(styles.BotMessage.Render(strings.Join(lines, "\n")))
		}
	}

	return sb.String()
}
