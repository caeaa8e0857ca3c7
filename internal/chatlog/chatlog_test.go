package chatlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wilbur182/campusdesk/internal/store"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestAppendStampsMissingTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewWithClock(fixedClock(now))

	m := l.AddUser("hello")
	assert.Equal(t, now, m.Timestamp)

	earlier := now.Add(-time.Hour)
	m = l.Append(Message{Role: RoleBot, Content: "hi", Timestamp: earlier})
	assert.Equal(t, earlier, m.Timestamp, "explicit timestamps are kept")

	assert.Equal(t, 2, l.Len())
}

func TestMessagesReturnsCopy(t *testing.T) {
	l := New()
	l.AddUser("a")
	msgs := l.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, "a", l.Messages()[0].Content)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	l := NewWithClock(fixedClock(now))
	l.AddUser("show my timetable")
	l.AddBot("**Timetable**", true)
	require.NoError(t, l.Save(ctx, kv))

	raw, _, _ := kv.Get(ctx, store.KeyChatHistory)
	assert.Contains(t, string(raw), `"isHtml":true`)
	assert.Contains(t, string(raw), `"role":"bot"`)

	got, err := Load(ctx, kv, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, l.Messages(), got.Messages())
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	l, err := Load(ctx, kv, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, l.Len())

	require.NoError(t, kv.Set(ctx, store.KeyChatHistory, []byte("not json")))
	l, err = Load(ctx, kv, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, l.Len())
}

func TestLoadFallsBackToText(t *testing.T) {
	kv := store.NewMemory()
	blob := `[{"role":"user","text":"old body","timestamp":"2025-03-01T09:00:00Z"},` +
		`{"role":"bot","content":"new body","text":"ignored","isHtml":true,"timestamp":"2025-03-01T09:01:00Z"}]`
	require.NoError(t, kv.Set(context.Background(), store.KeyChatHistory, []byte(blob)))

	l, err := Load(context.Background(), kv, zap.NewNop())
	require.NoError(t, err)
	msgs := l.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "old body", msgs[0].Content)
	assert.Equal(t, "new body", msgs[1].Content)
	assert.True(t, msgs[1].IsStructured)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), msgs[0].Timestamp)
}

func TestSaveAlwaysWritesIsHTML(t *testing.T) {
	kv := store.NewMemory()
	l := New()
	l.AddUser("hi")
	require.NoError(t, l.Save(context.Background(), kv))

	raw, ok, err := kv.Get(context.Background(), store.KeyChatHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"isHtml":false`)
	assert.NotContains(t, string(raw), `"text"`)
}

func TestSaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, New().Save(ctx, kv))

	raw, ok, _ := kv.Get(ctx, store.KeyChatHistory)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	l := New()
	l.AddUser("x")
	require.NoError(t, l.Save(ctx, kv))

	require.NoError(t, l.Clear(ctx, kv))
	assert.Zero(t, l.Len())
	_, ok, _ := kv.Get(ctx, store.KeyChatHistory)
	assert.False(t, ok)
}
