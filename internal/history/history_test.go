package history

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilbur182/campusdesk/internal/chatlog"
)

var base = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func at(seconds int, role chatlog.Role, content string) chatlog.Message {
	return chatlog.Message{Role: role, Content: content, Timestamp: base.Add(time.Duration(seconds) * time.Second)}
}

func TestGroupSplitsOnGap(t *testing.T) {
	msgs := []chatlog.Message{
		at(0, chatlog.RoleUser, "timetable"),
		at(5, chatlog.RoleBot, "card"),
		at(10, chatlog.RoleUser, "thanks"),
		at(2000, chatlog.RoleUser, "exams"),
	}

	sessions := Group(msgs, DefaultGap)
	require.Len(t, sessions, 2)

	want := []Session{
		{Messages: msgs[:3]},
		{Messages: msgs[3:]},
	}
	if diff := cmp.Diff(want, sessions); diff != "" {
		t.Fatalf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupPartitionsLogContiguously(t *testing.T) {
	offsets := []int{0, 60, 1900, 1950, 3750, 3751, 9000, 9001, 9002}
	var msgs []chatlog.Message
	for _, off := range offsets {
		msgs = append(msgs, at(off, chatlog.RoleUser, "m"))
	}

	sessions := Group(msgs, DefaultGap)

	var flat []chatlog.Message
	for i, s := range sessions {
		require.NotEmpty(t, s.Messages)
		for j := 1; j < len(s.Messages); j++ {
			gap := s.Messages[j].Timestamp.Sub(s.Messages[j-1].Timestamp)
			assert.LessOrEqual(t, gap, DefaultGap, "session %d keeps close messages together", i)
		}
		if i+1 < len(sessions) {
			next := sessions[i+1].StartTime()
			lastTS := s.Messages[len(s.Messages)-1].Timestamp
			assert.Greater(t, next.Sub(lastTS), DefaultGap, "boundary %d", i)
		}
		flat = append(flat, s.Messages...)
	}
	assert.Equal(t, msgs, flat, "every message appears exactly once, in order")
	assert.Len(t, sessions, 3)
}

func TestGroupExactGapStaysInSession(t *testing.T) {
	msgs := []chatlog.Message{
		at(0, chatlog.RoleUser, "a"),
		at(1800, chatlog.RoleUser, "b"),
		at(3601, chatlog.RoleUser, "c"),
	}
	sessions := Group(msgs, DefaultGap)
	require.Len(t, sessions, 2)
	assert.Len(t, sessions[0].Messages, 2)
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil, DefaultGap))
	assert.Empty(t, Entries(Group([]chatlog.Message{}, DefaultGap)))
}

func TestGroupNonPositiveGapUsesDefault(t *testing.T) {
	msgs := []chatlog.Message{at(0, chatlog.RoleUser, "a"), at(600, chatlog.RoleUser, "b")}
	assert.Len(t, Group(msgs, 0), 1)
}

func TestGroupCustomGap(t *testing.T) {
	msgs := []chatlog.Message{at(0, chatlog.RoleUser, "a"), at(600, chatlog.RoleUser, "b")}
	assert.Len(t, Group(msgs, 5*time.Minute), 2)
}

func TestGroupIsIdempotent(t *testing.T) {
	msgs := []chatlog.Message{
		at(0, chatlog.RoleUser, "a"),
		at(4000, chatlog.RoleBot, "b"),
		at(4001, chatlog.RoleUser, "c"),
	}
	first := Group(msgs, DefaultGap)
	second := Group(msgs, DefaultGap)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Group() not idempotent:\n%s", diff)
	}
}

func TestFirstUserPreview(t *testing.T) {
	s := Session{Messages: []chatlog.Message{
		at(0, chatlog.RoleBot, "welcome"),
		at(1, chatlog.RoleUser, "show exams"),
		at(2, chatlog.RoleUser, "and notes"),
	}}
	assert.Equal(t, "show exams", s.FirstUserPreview())

	botOnly := Session{Messages: []chatlog.Message{at(0, chatlog.RoleBot, "welcome")}}
	assert.Equal(t, FallbackPreview, botOnly.FirstUserPreview())
	assert.Equal(t, base, botOnly.StartTime())
	assert.True(t, Session{}.StartTime().IsZero())
}

func TestTruncatePreview(t *testing.T) {
	q := "Could you show me the exam timetable for semester four, please"
	require.Len(t, []rune(q), 62)
	assert.Equal(t, "Could you show me the exam timetable for semester four, plea...", TruncatePreview(q, PreviewLimit))

	assert.Equal(t, "0123456789", TruncatePreview("0123456789", PreviewLimit))

	exact := strings.Repeat("x", 60)
	assert.Equal(t, exact, TruncatePreview(exact, PreviewLimit))

	multibyte := strings.Repeat("é", 61)
	assert.Equal(t, strings.Repeat("é", 60)+"...", TruncatePreview(multibyte, PreviewLimit))
}

func TestEntriesNewestFirst(t *testing.T) {
	msgs := []chatlog.Message{
		at(0, chatlog.RoleUser, "first session"),
		at(4000, chatlog.RoleBot, "bot only"),
		at(9000, chatlog.RoleUser, strings.Repeat("y", 70)),
	}
	entries := Entries(Group(msgs, DefaultGap))
	require.Len(t, entries, 3)

	assert.Equal(t, "Session 3", entries[0].Label)
	assert.Equal(t, 2, entries[0].Index)
	assert.Equal(t, strings.Repeat("y", 60)+"...", entries[0].Preview)

	assert.Equal(t, "Session 2", entries[1].Label)
	assert.Equal(t, FallbackPreview, entries[1].Preview)

	assert.Equal(t, "Session 1", entries[2].Label)
	assert.Equal(t, 0, entries[2].Index)
	assert.Equal(t, base, entries[2].StartTime)
	assert.Equal(t, 1, entries[2].Messages)
}
