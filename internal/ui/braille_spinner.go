package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/campusdesk/internal/styles"
)

// SpinnerInterval is the delay between typing indicator frames.
const SpinnerInterval = 120 * time.Millisecond

// SpinnerTickMsg advances a BrailleSpinner.
type SpinnerTickMsg struct{ ID int }

// BrailleSpinner renders the typing indicator shown while a reply is pending.
type BrailleSpinner struct {
	id     int
	frame  int
	active bool
}

var brailleFrames = []string{
	"⠋ ⠙ ⠹",
	"⠙ ⠹ ⠸",
	"⠹ ⠸ ⠼",
	"⠸ ⠼ ⠴",
	"⠼ ⠴ ⠦",
	"⠴ ⠦ ⠧",
	"⠦ ⠧ ⠇",
	"⠧ ⠇ ⠏",
	"⠇ ⠏ ⠋",
	"⠏ ⠋ ⠙",
}

// NewBrailleSpinner creates a new braille spinner (inactive by default).
func NewBrailleSpinner() BrailleSpinner {
	return BrailleSpinner{}
}

// Start marks the spinner as active and returns the first tick. Ticks from
// an earlier run are ignored.
func (b *BrailleSpinner) Start() tea.Cmd {
	b.active = true
	b.frame = 0
	b.id++
	return b.tick()
}

// Stop halts the animation.
func (b *BrailleSpinner) Stop() {
	b.active = false
}

// IsActive returns whether the spinner is running.
func (b BrailleSpinner) IsActive() bool {
	return b.active
}

// Update advances the frame on a matching tick and schedules the next one.
func (b *BrailleSpinner) Update(msg SpinnerTickMsg) tea.Cmd {
	if !b.active || msg.ID != b.id {
		return nil
	}
	b.frame++
	return b.tick()
}

func (b BrailleSpinner) tick() tea.Cmd {
	id := b.id
	return tea.Tick(SpinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id}
	})
}

// View renders the current spinner frame.
func (b BrailleSpinner) View() string {
	if !b.active {
		return ""
	}
	frame := brailleFrames[b.frame%len(brailleFrames)]
	return lipgloss.NewStyle().Foreground(styles.Accent).Render(frame)
}
