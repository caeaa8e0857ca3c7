// Package app is the Bubble Tea shell: it owns the conversation, the bottom
// sheet and its gestures, the overlays, and every side effect they trigger.
package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/wilbur182/campusdesk/internal/assistant"
	"github.com/wilbur182/campusdesk/internal/chat"
	"github.com/wilbur182/campusdesk/internal/chatlog"
	"github.com/wilbur182/campusdesk/internal/config"
	"github.com/wilbur182/campusdesk/internal/gesture"
	"github.com/wilbur182/campusdesk/internal/keymap"
	"github.com/wilbur182/campusdesk/internal/markdown"
	"github.com/wilbur182/campusdesk/internal/mouse"
	"github.com/wilbur182/campusdesk/internal/store"
	"github.com/wilbur182/campusdesk/internal/styles"
	"github.com/wilbur182/campusdesk/internal/ui"
	"github.com/wilbur182/campusdesk/internal/upload"
	"github.com/wilbur182/campusdesk/internal/voice"
)

// WelcomeMessage greets a student with an empty history.
const WelcomeMessage = "Hi! I'm your GCET College Assistant. I can help with timetables, exam schedules, and study materials. What would you like to know?"

const (
	storeTimeout     = 2 * time.Second
	toastDuration    = 3 * time.Second
	voiceHideDelay   = 1200 * time.Millisecond
	summariseDelay   = 1200 * time.Millisecond
	defaultTermWidth = 80
)

// QuickActions are the canned prompts offered as chips.
var QuickActions = []string{
	"Show my timetable",
	"When are my exams?",
	"Study materials",
}

// Assistant answers student queries.
type Assistant interface {
	Query(ctx context.Context, text string, uc assistant.UserContext) (*assistant.Response, error)
}

// Deps are the collaborators the shell is built from.
type Deps struct {
	Config     *config.Config
	Store      store.KV
	Assistant  Assistant
	Recognizer voice.Recognizer
	// Clipboard writes text to the system clipboard; nil uses atotto/clipboard.
	Clipboard func(string) error
	// ConfigUpdates delivers reloaded configuration, e.g. from config.Watch.
	ConfigUpdates <-chan *config.Config
	Logger        *zap.Logger
	Now           func() time.Time
}

type toast struct {
	text  string
	isErr bool
	id    int
}

// Model is the root Bubble Tea model. It is used through a pointer so the
// gesture controller can drive the sheet it belongs to.
type Model struct {
	cfg     *config.Config
	kv      store.KV
	api     Assistant
	rec     voice.Recognizer
	clip    func(string) error
	updates <-chan *config.Config
	log     *zap.Logger
	now     func() time.Time
	keys    *keymap.Registry

	ctx    context.Context
	cancel context.CancelFunc

	width, height int
	chatHeight    int

	chat    *chatlog.Log
	profile assistant.UserContext
	// showWelcome prepends the unsaved greeting after history is cleared
	showWelcome bool

	collapsed bool
	gestures  *gesture.Controller
	pointer   *gesture.TeaAdapter
	surface   *captureSurface
	hits      *mouse.HitMap
	pressed   *mouse.Region
	sheetTop  int
	// rows of the sheet from the last View, placed below sheetTop
	sheetRows      []sheetRow
	pendingRegions []mouse.Region

	drawer  drawer
	form    *profileForm
	confirm *confirmDialog
	prompt  *uploadPrompt

	input    *chat.Input
	messages chat.MessageViewport
	md       *markdown.Renderer
	typing   ui.BrailleSpinner
	pending  bool
	epoch    uint64

	voice      *voice.Session
	listening  bool
	voiceShown bool
	voiceHide  int

	doc         *upload.Document
	summarising bool

	theme   string
	toast   toast
	links   []string
	startup []tea.Cmd
}

// New builds the shell and restores persisted state: theme, profile and
// chat history.
func New(d Deps) *Model {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	clip := d.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	kv := d.Store
	if kv == nil {
		kv = store.NewMemory()
	}

	ctx, cancel := context.WithCancel(context.Background())
	md := markdown.NewRenderer(log.Named("markdown"))

	m := &Model{
		cfg:       cfg,
		kv:        kv,
		api:       d.Assistant,
		rec:       d.Recognizer,
		clip:      clip,
		updates:   d.ConfigUpdates,
		log:       log,
		now:       now,
		keys:      keymap.NewRegistry(),
		ctx:       ctx,
		cancel:    cancel,
		width:     defaultTermWidth,
		chat:      chatlog.NewWithClock(now),
		collapsed: cfg.Sheet.StartCollapsed,
		hits:      mouse.NewHitMap(),
		input:     chat.NewInput(),
		md:        md,
		messages:  chat.NewMessageViewport(defaultTermWidth, 10, md),
		typing:    ui.NewBrailleSpinner(),
	}
	m.keys.RegisterBindings(keymap.DefaultBindings())
	m.registerCommands()
	for key, id := range cfg.Keymap.Overrides {
		m.keys.SetUserOverride(key, id)
	}

	m.surface = &captureSurface{}
	m.gestures = gesture.New(m, gesture.Options{
		Surface:   m.surface,
		Grabbable: m.grabbable,
		InInput:   m.inInput,
		Logger:    log.Named("gesture"),
	})
	m.pointer = gesture.NewTeaAdapter(m.gestures)
	m.pointer.RowUnits = cfg.Sheet.RowUnits
	m.pointer.WheelStep = cfg.Sheet.WheelStep

	m.restore()
	return m
}

// restore loads the theme, profile and chat history from the store.
func (m *Model) restore() {
	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()

	theme := m.cfg.UI.Theme
	if theme == "" {
		raw, ok, err := m.kv.Get(ctx, store.KeyTheme)
		if err != nil {
			m.log.Warn("load theme", zap.Error(err))
		}
		if ok {
			theme = string(raw)
		}
	}
	m.applyTheme(theme)

	var uc assistant.UserContext
	ok, err := store.GetJSON(ctx, m.kv, store.KeyUserContext, &uc)
	switch {
	case err != nil:
		// unreadable profile counts as an empty one
		m.log.Warn("load user context", zap.Error(err))
		m.profile = assistant.UserContext{}
	case ok:
		m.profile = uc
	default:
		m.openProfile()
	}

	saved, err := chatlog.Load(ctx, m.kv, m.log)
	if err != nil {
		m.log.Warn("load chat history", zap.Error(err))
		m.startup = append(m.startup, m.showToast("Could not load chat history", true))
	} else {
		for _, msg := range saved.Messages() {
			m.chat.Append(msg)
		}
	}

	if m.chat.Len() == 0 {
		m.addBot(WelcomeMessage, false)
	}
}

// Init starts the cursor blink and the config subscription.
func (m *Model) Init() tea.Cmd {
	var focus tea.Cmd
	if m.form == nil {
		focus = m.input.Focus()
	}
	cmds := append([]tea.Cmd{focus, m.waitConfig()}, m.startup...)
	m.startup = nil
	return tea.Batch(cmds...)
}

// Close releases background work. Safe to call more than once.
func (m *Model) Close() {
	if m.voice != nil {
		m.voice.Stop()
		m.voice = nil
	}
	m.cancel()
}

// Collapsed reports whether the sheet tools are hidden.
func (m *Model) Collapsed() bool { return m.collapsed }

// Collapse hides the sheet tools and closes the history drawer.
func (m *Model) Collapse() {
	m.collapsed = true
	m.closeDrawer()
}

// Expand shows the sheet tools.
func (m *Model) Expand() {
	m.collapsed = false
}

var _ gesture.Sheet = (*Model)(nil)
var _ tea.Model = (*Model)(nil)

// Profile returns the active student profile.
func (m *Model) Profile() assistant.UserContext { return m.profile }

// Messages returns a copy of the conversation.
func (m *Model) Messages() []chatlog.Message { return m.chat.Messages() }

// Theme returns the active theme name.
func (m *Model) Theme() string { return m.theme }

func (m *Model) applyTheme(name string) {
	if !styles.IsValidTheme(name) {
		name = styles.ThemeLight
	}
	m.theme = name
	styles.ApplyTheme(name)
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toast.id++
	m.toast.text = text
	m.toast.isErr = isErr
	id := m.toast.id
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m *Model) activeContext() string {
	switch {
	case m.confirm != nil:
		return keymap.ContextConfirm
	case m.form != nil:
		return keymap.ContextProfile
	case m.prompt != nil:
		return keymap.ContextUpload
	case m.drawer.open:
		return keymap.ContextHistory
	default:
		return keymap.ContextChat
	}
}

func (m *Model) modalOpen() bool {
	return m.confirm != nil || m.form != nil || m.prompt != nil
}
