// Package chatlog holds the append-only conversation log.
package chatlog

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/wilbur182/campusdesk/internal/store"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one conversation turn. Structured messages carry a rendered
// card (timetable, exams, materials) instead of plain text.
type Message struct {
	Role         Role      `json:"role"`
	Content      string    `json:"content"`
	IsStructured bool      `json:"isHtml"`
	Timestamp    time.Time `json:"timestamp"`
}

// UnmarshalJSON accepts older blobs that kept the body under "text".
func (m *Message) UnmarshalJSON(data []byte) error {
	type message Message
	var raw struct {
		message
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message(raw.message)
	if m.Content == "" {
		m.Content = raw.Text
	}
	return nil
}

// Log is an ordered, append-only sequence of messages. Insertion order is
// chronological order.
type Log struct {
	messages []Message
	now      func() time.Time
}

// New returns an empty log stamped with the wall clock.
func New() *Log {
	return &Log{now: time.Now}
}

// NewWithClock returns an empty log stamped by now.
func NewWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Append adds msg, stamping it when it has no timestamp.
func (l *Log) Append(msg Message) Message {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = l.now().UTC()
	}
	l.messages = append(l.messages, msg)
	return msg
}

// AddUser appends a plain user message.
func (l *Log) AddUser(text string) Message {
	return l.Append(Message{Role: RoleUser, Content: text})
}

// AddBot appends a bot message.
func (l *Log) AddBot(text string, structured bool) Message {
	return l.Append(Message{Role: RoleBot, Content: text, IsStructured: structured})
}

// Messages returns a copy of the log.
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.messages...)
}

// Len returns the number of messages.
func (l *Log) Len() int { return len(l.messages) }

// Reset empties the log.
func (l *Log) Reset() { l.messages = nil }

// Load reads the log stored under chatHistory. A corrupt blob yields an
// empty log.
func Load(ctx context.Context, kv store.KV, log *zap.Logger) (*Log, error) {
	l := New()
	var msgs []Message
	ok, err := store.GetJSON(ctx, kv, store.KeyChatHistory, &msgs)
	if err != nil {
		if ok {
			log.Warn("discarding unreadable chat history", zap.Error(err))
			return l, nil
		}
		return nil, err
	}
	l.messages = msgs
	return l, nil
}

// Save writes the whole log under chatHistory.
func (l *Log) Save(ctx context.Context, kv store.KV) error {
	msgs := l.messages
	if msgs == nil {
		msgs = []Message{}
	}
	return store.SetJSON(ctx, kv, store.KeyChatHistory, msgs)
}

// Clear empties the log and removes it from storage.
func (l *Log) Clear(ctx context.Context, kv store.KV) error {
	l.Reset()
	return kv.Remove(ctx, store.KeyChatHistory)
}
