package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefault() *Registry {
	r := NewRegistry()
	r.RegisterBindings(DefaultBindings())
	return r
}

func TestLookupPrefersActiveContext(t *testing.T) {
	r := newDefault()

	id, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlR}, ContextChat)
	require.True(t, ok)
	assert.Equal(t, CmdHistory, id)

	id, ok = r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlR}, ContextHistory)
	require.True(t, ok)
	assert.Equal(t, CmdClose, id)
}

func TestLookupFallsBackToGlobal(t *testing.T) {
	r := newDefault()

	id, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlT}, ContextProfile)
	require.True(t, ok)
	assert.Equal(t, CmdTheme, id)

	_, ok = r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlB}, ContextChat)
	assert.False(t, ok)
}

func TestRuneKeys(t *testing.T) {
	r := newDefault()

	id, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, ContextHistory)
	require.True(t, ok)
	assert.Equal(t, CmdDown, id)

	_, ok = r.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, ContextChat)
	assert.False(t, ok, "typing in chat is never captured")
}

func TestUserOverrideWins(t *testing.T) {
	r := newDefault()
	r.SetUserOverride("ctrl+r", CmdTheme)

	id, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlR}, ContextChat)
	assert.Equal(t, CmdTheme, id)
}

func TestHandleRunsCommand(t *testing.T) {
	r := newDefault()
	called := 0
	r.RegisterCommand(Command{ID: CmdVoice, Name: "Voice", Handler: func() tea.Cmd {
		called++
		return nil
	}})

	r.Handle(tea.KeyMsg{Type: tea.KeyCtrlG}, ContextChat)
	assert.Equal(t, 1, called)

	assert.Nil(t, r.Handle(tea.KeyMsg{Type: tea.KeyCtrlO}, ContextChat), "no command registered")
}

func TestKeysFor(t *testing.T) {
	r := newDefault()
	assert.Equal(t, []string{"ctrl+c", "ctrl+q"}, r.KeysFor(CmdQuit, ContextGlobal))
	assert.Equal(t, []string{"down", "j"}, r.KeysFor(CmdDown, ContextHistory))
}
