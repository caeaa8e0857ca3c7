// Package history partitions the chat log into conversational sessions for
// the history drawer.
package history

import (
	"fmt"
	"time"

	"github.com/wilbur182/campusdesk/internal/chatlog"
)

const (
	// DefaultGap closes a session when consecutive messages are further
	// apart than this.
	DefaultGap = 30 * time.Minute

	// PreviewLimit is the preview length, in characters, shown per session.
	PreviewLimit = 60

	// FallbackPreview labels sessions without a user message.
	FallbackPreview = "Chat session"

	ellipsis = "..."
)

// Session is a contiguous, non-empty run of the log.
type Session struct {
	Messages []chatlog.Message
}

// StartTime returns the timestamp of the first message.
func (s Session) StartTime() time.Time {
	if len(s.Messages) == 0 {
		return time.Time{}
	}
	return s.Messages[0].Timestamp
}

// FirstUserPreview returns the content of the first user message, or the
// fallback label when the session has none.
func (s Session) FirstUserPreview() string {
	for _, msg := range s.Messages {
		if msg.Role == chatlog.RoleUser {
			return msg.Content
		}
	}
	return FallbackPreview
}

// Group walks messages oldest first and cuts a new session after any
// message that is last or followed by a gap larger than gap. A non-positive
// gap uses DefaultGap.
func Group(messages []chatlog.Message, gap time.Duration) []Session {
	if len(messages) == 0 {
		return nil
	}
	if gap <= 0 {
		gap = DefaultGap
	}

	var sessions []Session
	var current []chatlog.Message

	for i, msg := range messages {
		current = append(current, msg)

		last := i == len(messages)-1
		if last || messages[i+1].Timestamp.Sub(msg.Timestamp) > gap {
			sessions = append(sessions, Session{Messages: current})
			current = nil
		}
	}

	return sessions
}

// TruncatePreview cuts s to limit characters and appends an ellipsis when
// anything was dropped.
func TruncatePreview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

// Entry is one row of the history drawer.
type Entry struct {
	Index     int // chronological position in the grouped slice
	Label     string
	Preview   string
	StartTime time.Time
	Messages  int
}

// Entries lays sessions out newest first. Labels count down from the total,
// so the newest session carries the highest number.
func Entries(sessions []Session) []Entry {
	entries := make([]Entry, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		entries = append(entries, Entry{
			Index:     i,
			Label:     fmt.Sprintf("Session %d", i+1),
			Preview:   TruncatePreview(s.FirstUserPreview(), PreviewLimit),
			StartTime: s.StartTime(),
			Messages:  len(s.Messages),
		})
	}
	return entries
}
