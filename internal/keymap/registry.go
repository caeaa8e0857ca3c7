// Package keymap binds keys to sheet commands per interaction context.
package keymap

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Contexts.
const (
	ContextGlobal  = "global"
	ContextChat    = "chat"
	ContextHistory = "history"
	ContextProfile = "profile"
	ContextConfirm = "confirm"
	ContextUpload  = "upload"
)

// Command IDs.
const (
	CmdQuit         = "quit"
	CmdToggleSheet  = "toggle-sheet"
	CmdHistory      = "history"
	CmdTheme        = "theme"
	CmdProfile      = "profile"
	CmdVoice        = "voice"
	CmdUpload       = "upload"
	CmdSummarise    = "summarise"
	CmdClearHistory = "clear-history"
	CmdCopyLink     = "copy-link"
	CmdClose        = "close"
	CmdUp           = "up"
	CmdDown         = "down"
	CmdSelect       = "select"
	CmdNextField    = "next-field"
	CmdPrevField    = "prev-field"
	CmdConfirm      = "confirm"
)

// Command represents a registered command handler.
type Command struct {
	ID      string
	Name    string
	Handler func() tea.Cmd
}

// Binding maps a key to a command.
type Binding struct {
	Key     string // e.g. "ctrl+r", "enter"
	Command string
	Context string
}

// Registry manages key bindings and command dispatch.
type Registry struct {
	commands      map[string]Command
	bindings      map[string][]Binding // context -> bindings
	userOverrides map[string]string    // key -> command ID
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:      make(map[string]Command),
		bindings:      make(map[string][]Binding),
		userOverrides: make(map[string]string),
	}
}

// DefaultBindings is the stock key layout.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "ctrl+q", Command: CmdQuit, Context: ContextGlobal},
		{Key: "ctrl+e", Command: CmdToggleSheet, Context: ContextGlobal},
		{Key: "ctrl+t", Command: CmdTheme, Context: ContextGlobal},

		{Key: "ctrl+r", Command: CmdHistory, Context: ContextChat},
		{Key: "ctrl+p", Command: CmdProfile, Context: ContextChat},
		{Key: "ctrl+g", Command: CmdVoice, Context: ContextChat},
		{Key: "ctrl+o", Command: CmdUpload, Context: ContextChat},
		{Key: "ctrl+s", Command: CmdSummarise, Context: ContextChat},
		{Key: "ctrl+x", Command: CmdClearHistory, Context: ContextChat},
		{Key: "ctrl+y", Command: CmdCopyLink, Context: ContextChat},
		{Key: "esc", Command: CmdToggleSheet, Context: ContextChat},

		{Key: "esc", Command: CmdClose, Context: ContextHistory},
		{Key: "ctrl+r", Command: CmdClose, Context: ContextHistory},
		{Key: "up", Command: CmdUp, Context: ContextHistory},
		{Key: "k", Command: CmdUp, Context: ContextHistory},
		{Key: "down", Command: CmdDown, Context: ContextHistory},
		{Key: "j", Command: CmdDown, Context: ContextHistory},
		{Key: "enter", Command: CmdSelect, Context: ContextHistory},
		{Key: "ctrl+x", Command: CmdClearHistory, Context: ContextHistory},

		{Key: "esc", Command: CmdClose, Context: ContextProfile},
		{Key: "tab", Command: CmdNextField, Context: ContextProfile},
		{Key: "down", Command: CmdNextField, Context: ContextProfile},
		{Key: "shift+tab", Command: CmdPrevField, Context: ContextProfile},
		{Key: "up", Command: CmdPrevField, Context: ContextProfile},
		{Key: "enter", Command: CmdConfirm, Context: ContextProfile},

		{Key: "esc", Command: CmdClose, Context: ContextConfirm},
		{Key: "n", Command: CmdClose, Context: ContextConfirm},
		{Key: "enter", Command: CmdSelect, Context: ContextConfirm},
		{Key: "tab", Command: CmdNextField, Context: ContextConfirm},
		{Key: "left", Command: CmdNextField, Context: ContextConfirm},
		{Key: "right", Command: CmdNextField, Context: ContextConfirm},
		{Key: "y", Command: CmdConfirm, Context: ContextConfirm},

		{Key: "esc", Command: CmdClose, Context: ContextUpload},
		{Key: "enter", Command: CmdConfirm, Context: ContextUpload},
	}
}

// RegisterCommand adds a command to the registry.
func (r *Registry) RegisterCommand(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
}

// RegisterBinding adds a key binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.Context == "" {
		b.Context = ContextGlobal
	}
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds several bindings at once.
func (r *Registry) RegisterBindings(bs []Binding) {
	for _, b := range bs {
		r.RegisterBinding(b)
	}
}

// SetUserOverride sets a user-configured key override.
func (r *Registry) SetUserOverride(key, commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[key] = commandID
}

// Lookup finds the command ID bound to key in the active context, falling
// back to global bindings.
func (r *Registry) Lookup(key tea.KeyMsg, activeContext string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(key.String(), activeContext)
}

// Handle dispatches a key event to the appropriate command handler.
// Returns nil if no matching binding is found.
func (r *Registry) Handle(key tea.KeyMsg, activeContext string) tea.Cmd {
	r.mu.RLock()
	id, ok := r.lookup(key.String(), activeContext)
	var cmd Command
	if ok {
		cmd, ok = r.commands[id]
	}
	r.mu.RUnlock()
	if !ok || cmd.Handler == nil {
		return nil
	}
	return cmd.Handler()
}

func (r *Registry) lookup(key, activeContext string) (string, bool) {
	if id, ok := r.userOverrides[key]; ok {
		return id, true
	}
	if activeContext != "" && activeContext != ContextGlobal {
		for _, b := range r.bindings[activeContext] {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	for _, b := range r.bindings[ContextGlobal] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// GetCommand retrieves a command by ID.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// BindingsForContext returns all bindings for a given context.
func (r *Registry) BindingsForContext(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Binding(nil), r.bindings[context]...)
}

// KeysFor returns the keys bound to a command in context, sorted.
func (r *Registry) KeysFor(commandID, context string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var keys []string
	for _, b := range r.bindings[context] {
		if b.Command == commandID {
			keys = append(keys, b.Key)
		}
	}
	sort.Strings(keys)
	return keys
}
