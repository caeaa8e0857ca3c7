package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func extractMsg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func makeInput(val string) *Input {
	inp := NewInput()
	inp.Focus()
	for _, ch := range val {
		inp.textarea.InsertRune(ch)
	}
	return inp
}

func TestEnterSubmitsTrimmed(t *testing.T) {
	inp := makeInput("  show my timetable ")

	_, cmd := inp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := extractMsg(cmd)

	got, ok := msg.(SendMsg)
	if !ok {
		t.Fatalf("expected SendMsg, got %T", msg)
	}
	if got.Content != "show my timetable" {
		t.Errorf("expected trimmed content, got %q", got.Content)
	}
	if inp.Value() != "" {
		t.Errorf("expected input empty after submit, got %q", inp.Value())
	}
}

func TestWhitespaceNoSubmit(t *testing.T) {
	for _, val := range []string{"", "   "} {
		inp := makeInput(val)
		_, cmd := inp.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if _, ok := extractMsg(cmd).(SendMsg); ok {
			t.Fatalf("expected no SendMsg for %q", val)
		}
	}
}

func TestSubmitIgnoredWhileReplyPending(t *testing.T) {
	inp := makeInput("hello")
	inp.SetSubmitting(true)

	_, cmd := inp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := extractMsg(cmd).(SendMsg); ok {
		t.Fatal("expected no SendMsg while a reply is pending")
	}
	if inp.Value() != "hello" {
		t.Errorf("expected draft kept, got %q", inp.Value())
	}
}

func TestSetValue(t *testing.T) {
	inp := NewInput()
	inp.SetValue("when are my exams")
	if inp.Value() != "when are my exams" {
		t.Errorf("unexpected value %q", inp.Value())
	}
	inp.Reset()
	if inp.Value() != "" {
		t.Errorf("expected empty after Reset(), got %q", inp.Value())
	}
}

func TestFocusBlur(t *testing.T) {
	inp := NewInput()

	inp.Focus()
	if !inp.IsFocused() {
		t.Error("expected IsFocused() == true after Focus()")
	}

	inp.Blur()
	if inp.IsFocused() {
		t.Error("expected IsFocused() == false after Blur()")
	}
}

func TestViewHeight(t *testing.T) {
	inp := NewInput()
	out := inp.View(40)
	if out == "" {
		t.Fatal("expected non-empty View output")
	}
	if inp.Height() != 3 {
		t.Errorf("expected a one-line input in a border, got height %d", inp.Height())
	}
}
