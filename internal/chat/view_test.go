package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/wilbur182/campusdesk/internal/chatlog"
	"github.com/wilbur182/campusdesk/internal/markdown"
)

func TestEmptyState(t *testing.T) {
	output := ansi.Strip(renderMessages(nil, 80, markdown.NewRenderer(nil)))
	if !strings.Contains(output, "Ask me anything") {
		t.Errorf("expected empty state hint, got: %s", output)
	}
}

func TestUserAndBotRendering(t *testing.T) {
	msgs := []chatlog.Message{
		{Role: chatlog.RoleUser, Content: "Hello world", Timestamp: time.Now()},
		{Role: chatlog.RoleBot, Content: "I am here", Timestamp: time.Now()},
	}
	output := ansi.Strip(renderMessages(msgs, 80, markdown.NewRenderer(nil)))
	for _, want := range []string{"You", "Hello world", "GCET Assistant", "I am here"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestStructuredMessageUsesMarkdown(t *testing.T) {
	msgs := []chatlog.Message{
		{Role: chatlog.RoleBot, Content: "**Upcoming Exams**", IsStructured: true},
	}
	output := ansi.Strip(renderMessages(msgs, 80, markdown.NewRenderer(nil)))
	if strings.Contains(output, "**") {
		t.Errorf("expected markdown emphasis to be rendered, got: %s", output)
	}
	if !strings.Contains(output, "Upcoming Exams") {
		t.Errorf("expected heading text, got: %s", output)
	}
}

func TestTypingIndicatorAppended(t *testing.T) {
	vp := NewMessageViewport(60, 10, nil)
	vp.SetMessages([]chatlog.Message{{Role: chatlog.RoleUser, Content: "hi"}}, "...")

	if !strings.Contains(ansi.Strip(vp.View()), "is typing") {
		t.Error("expected typing indicator in view")
	}
}

func TestHeightConstraint(t *testing.T) {
	width, height := 80, 5
	vp := NewMessageViewport(width, height, nil)

	var msgs []chatlog.Message
	for i := 0; i < 10; i++ {
		msgs = append(msgs, chatlog.Message{Role: chatlog.RoleUser, Content: "Line"})
	}

	vp.SetMessages(msgs, "")
	lines := strings.Split(vp.View(), "\n")
	if len(lines) > height {
		t.Errorf("expected view height <= %d, got %d lines", height, len(lines))
	}
	if !vp.AtBottom() {
		t.Error("expected viewport pinned to newest message")
	}

	vp.ScrollBy(-2)
	if vp.AtBottom() {
		t.Error("expected viewport to leave the bottom after scrolling up")
	}
	vp.GotoBottom()
	if !vp.AtBottom() {
		t.Error("expected GotoBottom to pin the viewport")
	}
}

func TestLongWordsAndBlankLinesStayInsideBubble(t *testing.T) {
	width := 30
	msgs := []chatlog.Message{
		{Role: chatlog.RoleUser, Content: "link https://arxiv.org/pdf/1706.03762.pdf\n\nthanks"},
	}
	lines := strings.Split(ansi.Strip(renderMessages(msgs, width, markdown.NewRenderer(nil))), "\n")

	// header, "link", two url pieces, blank, "thanks"
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %q", len(lines), lines)
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > width-3 {
			t.Errorf("line %q is %d cells wide, want <= %d", line, w, width-3)
		}
	}
	if strings.TrimSpace(lines[4]) != "" {
		t.Errorf("expected the blank line to survive, got %q", lines[4])
	}
}
