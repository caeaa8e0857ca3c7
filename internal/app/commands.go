package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/wilbur182/campusdesk/internal/assistant"
	"github.com/wilbur182/campusdesk/internal/chatlog"
	"github.com/wilbur182/campusdesk/internal/keymap"
	"github.com/wilbur182/campusdesk/internal/store"
	"github.com/wilbur182/campusdesk/internal/styles"
	"github.com/wilbur182/campusdesk/internal/upload"
	"github.com/wilbur182/campusdesk/internal/voice"
)

// commandNames label the keymap commands in the footer.
var commandNames = map[string]string{
	keymap.CmdQuit:         "quit",
	keymap.CmdToggleSheet:  "sheet",
	keymap.CmdHistory:      "history",
	keymap.CmdTheme:        "theme",
	keymap.CmdProfile:      "profile",
	keymap.CmdVoice:        "voice",
	keymap.CmdUpload:       "upload",
	keymap.CmdSummarise:    "summarise",
	keymap.CmdClearHistory: "clear history",
	keymap.CmdCopyLink:     "copy link",
	keymap.CmdClose:        "close",
	keymap.CmdUp:           "up",
	keymap.CmdDown:         "down",
	keymap.CmdSelect:       "select",
	keymap.CmdNextField:    "next",
	keymap.CmdPrevField:    "previous",
	keymap.CmdConfirm:      "confirm",
}

func (m *Model) registerCommands() {
	for id, name := range commandNames {
		m.keys.RegisterCommand(keymap.Command{
			ID:      id,
			Name:    name,
			Handler: func() tea.Cmd { return m.run(id) },
		})
	}
}

// run executes a keymap command.
func (m *Model) run(id string) tea.Cmd {
	switch id {
	case keymap.CmdQuit:
		m.Close()
		return tea.Quit
	case keymap.CmdToggleSheet:
		m.gestures.Toggle()
	case keymap.CmdTheme:
		return m.toggleTheme()
	case keymap.CmdHistory:
		m.toggleDrawer()
	case keymap.CmdProfile:
		return m.openProfile()
	case keymap.CmdVoice:
		return m.toggleVoice()
	case keymap.CmdUpload:
		return m.openUpload()
	case keymap.CmdSummarise:
		return m.summarise()
	case keymap.CmdClearHistory:
		m.openConfirm()
	case keymap.CmdCopyLink:
		return m.copyLink()
	case keymap.CmdClose:
		return m.closeTop()
	case keymap.CmdUp:
		m.drawer.move(-1)
	case keymap.CmdDown:
		m.drawer.move(1)
	case keymap.CmdSelect:
		return m.selectFocused()
	case keymap.CmdNextField:
		return m.cycleField(1)
	case keymap.CmdPrevField:
		return m.cycleField(-1)
	case keymap.CmdConfirm:
		return m.confirmTop()
	}
	return nil
}

// closeTop dismisses the topmost overlay.
func (m *Model) closeTop() tea.Cmd {
	switch {
	case m.confirm != nil:
		m.confirm = nil
	case m.form != nil:
		m.form = nil
		return m.input.Focus()
	case m.prompt != nil:
		m.prompt = nil
		return m.input.Focus()
	case m.drawer.open:
		m.closeDrawer()
	}
	return nil
}

func (m *Model) confirmTop() tea.Cmd {
	switch {
	case m.confirm != nil:
		return m.clearHistory()
	case m.form != nil:
		return m.saveProfile()
	case m.prompt != nil:
		return m.attach()
	}
	return nil
}

func (m *Model) selectFocused() tea.Cmd {
	switch {
	case m.confirm != nil:
		if m.confirm.focus == confirmFocusConfirm {
			return m.clearHistory()
		}
		m.confirm = nil
	case m.drawer.open:
		m.loadSession(m.drawer.cursor)
	}
	return nil
}

func (m *Model) cycleField(delta int) tea.Cmd {
	switch {
	case m.confirm != nil:
		m.confirm.toggleFocus()
	case m.form != nil:
		return m.form.cycle(delta)
	}
	return nil
}

// send appends the user's message and asks the assistant.
func (m *Model) send(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.pending {
		return nil
	}
	m.addUser(text)
	m.input.Reset()

	m.pending = true
	m.input.SetSubmitting(true)
	m.epoch++
	m.messages.GotoBottom()
	return tea.Batch(m.typing.Start(), m.query(m.epoch, text, m.profile))
}

func (m *Model) query(epoch uint64, text string, uc assistant.UserContext) tea.Cmd {
	api, now, log := m.api, m.now, m.log
	ctx := m.ctx
	return func() tea.Msg {
		if api == nil {
			return replyMsg{epoch: epoch, reply: assistant.Offline(text, uc, now()), offline: true}
		}
		resp, err := api.Query(ctx, text, uc)
		if err != nil {
			log.Debug("query failed, answering offline", zap.Error(err))
			return replyMsg{epoch: epoch, reply: assistant.Offline(text, uc, now()), offline: true, err: err}
		}
		return replyMsg{epoch: epoch, reply: assistant.Interpret(resp, now())}
	}
}

func (m *Model) handleReply(msg replyMsg) tea.Cmd {
	if msg.epoch != m.epoch {
		return nil
	}
	m.pending = false
	m.input.SetSubmitting(false)
	m.typing.Stop()
	m.addBot(msg.reply.Content, msg.reply.Structured)
	if len(msg.reply.Links) > 0 {
		m.links = msg.reply.Links
	}
	return nil
}

func (m *Model) addUser(text string) {
	m.chat.AddUser(text)
	m.saveHistory()
}

func (m *Model) addBot(text string, structured bool) {
	m.chat.AddBot(text, structured)
	m.saveHistory()
}

func (m *Model) saveHistory() {
	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()
	if err := m.chat.Save(ctx, m.kv); err != nil {
		m.log.Warn("save chat history", zap.Error(err))
	}
}

// toggleTheme flips light/dark and remembers the choice.
func (m *Model) toggleTheme() tea.Cmd {
	next := styles.Next(m.theme)
	m.applyTheme(next)

	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()
	if err := m.kv.Set(ctx, store.KeyTheme, []byte(next)); err != nil {
		m.log.Warn("save theme", zap.Error(err))
		return m.showToast("Could not save theme", true)
	}
	return nil
}

// toggleVoice starts a listening session or stops the running one.
func (m *Model) toggleVoice() tea.Cmd {
	if m.voice != nil {
		m.voice.Stop()
		return nil
	}
	if m.rec == nil {
		return m.showToast("Voice input is not supported on this terminal.", true)
	}
	sess, err := m.rec.Start(m.ctx)
	if err != nil {
		m.log.Info("voice unavailable", zap.Error(err))
		if errors.Is(err, voice.ErrUnsupported) {
			return m.showToast("Voice input is not supported on this terminal.", true)
		}
		return m.showToast("Could not start voice input", true)
	}
	m.voice = sess
	return waitVoice(sess)
}

func waitVoice(s *voice.Session) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.Events()
		if !ok {
			return voiceMsg{session: s, closed: true}
		}
		return voiceMsg{session: s, event: ev}
	}
}

func (m *Model) handleVoice(msg voiceMsg) tea.Cmd {
	if msg.session != m.voice {
		return nil
	}
	if msg.closed {
		m.voice = nil
		return m.setListening(false)
	}

	switch msg.event.Kind {
	case voice.EventStarted:
		return tea.Batch(m.setListening(true), waitVoice(msg.session))
	case voice.EventResult:
		m.input.SetValue(strings.TrimSpace(msg.event.Transcript))
		return waitVoice(msg.session)
	case voice.EventFailed:
		m.log.Warn("voice recognition failed", zap.Error(msg.event.Err))
		m.voice = nil
		return m.setListening(false)
	default:
		m.voice = nil
		return m.setListening(false)
	}
}

// setListening updates the mic state and shows the status box; an inactive
// box hides after voiceHideDelay unless superseded.
func (m *Model) setListening(active bool) tea.Cmd {
	if !active && !m.listening && !m.voiceShown {
		return nil
	}
	m.listening = active
	m.voiceShown = true
	m.voiceHide++
	if active {
		return nil
	}
	id := m.voiceHide
	return tea.Tick(voiceHideDelay, func(time.Time) tea.Msg { return voiceHideMsg{id: id} })
}

func (m *Model) handleVoiceHide(msg voiceHideMsg) {
	if msg.id == m.voiceHide && !m.listening {
		m.voiceShown = false
	}
}

// attach inspects the path typed into the upload prompt.
func (m *Model) attach() tea.Cmd {
	if m.prompt == nil {
		return nil
	}
	path := strings.TrimSpace(m.prompt.input.Value())
	if path == "" {
		return nil
	}
	doc, err := upload.Inspect(path)
	if err != nil {
		m.log.Debug("inspect upload", zap.String("path", path), zap.Error(err))
		m.prompt.err = "Could not open that file."
		if errors.Is(err, upload.ErrNotFile) {
			m.prompt.err = "That is not a file."
		}
		return nil
	}
	if err := doc.RequirePDF(); err != nil {
		m.log.Debug("reject upload", zap.String("path", path), zap.Error(err))
		m.prompt.err = fmt.Sprintf("Only PDFs can be summarised, this is %s.", doc.Kind())
		return nil
	}
	m.prompt = nil
	m.doc = doc
	m.Expand()
	m.addBot(fmt.Sprintf("Document **%s** uploaded. Tap summarise for a quick overview.", doc.Name), true)
	return m.input.Focus()
}

// summarise posts the placeholder summary for the uploaded document.
func (m *Model) summarise() tea.Cmd {
	if m.doc == nil {
		m.addBot("Please upload a document first.", false)
		return nil
	}
	if m.summarising {
		return nil
	}
	m.Expand()
	m.summarising = true
	name := m.doc.Name
	m.addBot(fmt.Sprintf("Summarising **%s**…", name), true)
	return tea.Tick(summariseDelay, func(time.Time) tea.Msg { return summaryMsg{name: name} })
}

func (m *Model) handleSummary(msg summaryMsg) {
	m.summarising = false
	m.addBot(fmt.Sprintf("**Summary preview:**\n\nThis is a placeholder summary for *%s*. Connect the backend to generate real insights.", msg.name), true)
}

// copyLink puts the first material link of the latest list on the clipboard.
func (m *Model) copyLink() tea.Cmd {
	if len(m.links) == 0 {
		return m.showToast("No study material link to copy yet", false)
	}
	if err := m.clip(m.links[0]); err != nil {
		m.log.Warn("copy link", zap.Error(err))
		return m.showToast("Clipboard unavailable", true)
	}
	return m.showToast("Link copied", false)
}

// clearHistory wipes the stored conversation and shows the greeting again.
func (m *Model) clearHistory() tea.Cmd {
	m.confirm = nil
	m.epoch++
	m.pending = false
	m.input.SetSubmitting(false)
	m.typing.Stop()
	m.links = nil

	m.chat.Reset()
	ctx, cancel := context.WithTimeout(m.ctx, storeTimeout)
	defer cancel()
	if err := m.chat.Clear(ctx, m.kv); err != nil {
		m.log.Warn("clear chat history", zap.Error(err))
	}
	m.showWelcome = true
	m.closeDrawer()
	return nil
}

// displayMessages is what the chat area shows.
func (m *Model) displayMessages() []chatlog.Message {
	msgs := m.chat.Messages()
	if m.showWelcome {
		msgs = append([]chatlog.Message{{Role: chatlog.RoleBot, Content: WelcomeMessage}}, msgs...)
	}
	return msgs
}

func (m *Model) waitConfig() tea.Cmd {
	ch := m.updates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg: cfg}
	}
}

// handleConfig applies settings that can change while running.
func (m *Model) handleConfig(msg configMsg) tea.Cmd {
	cfg := msg.cfg
	if cfg == nil {
		return m.waitConfig()
	}
	m.cfg = cfg
	m.pointer.RowUnits = cfg.Sheet.RowUnits
	m.pointer.WheelStep = cfg.Sheet.WheelStep
	if cfg.UI.Theme != "" && cfg.UI.Theme != m.theme {
		m.applyTheme(cfg.UI.Theme)
	}
	if m.drawer.open {
		m.drawer.refresh(m.chat.Messages(), cfg.History.SessionGap)
	}
	m.log.Debug("config reloaded")
	return m.waitConfig()
}
