package chat

import tea "github.com/charmbracelet/bubbletea"

// SendMsg signals that the user submitted a message from the input.
type SendMsg struct {
	Content string
}

// FocusMsg is emitted when the input gains focus, so the sheet can expand.
type FocusMsg struct{}

var _ tea.Msg = SendMsg{}
var _ tea.Msg = FocusMsg{}
