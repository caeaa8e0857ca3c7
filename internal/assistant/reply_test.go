package assistant

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

func TestInterpretNotOK(t *testing.T) {
	assert.Equal(t, Reply{Content: "Profile missing"}, Interpret(&Response{OK: false, Message: "Profile missing"}, now))
	assert.Equal(t, Reply{Content: snagMessage}, Interpret(&Response{OK: false}, now))
	assert.Equal(t, Reply{Content: snagMessage}, Interpret(nil, now))
}

func TestInterpretDefaultType(t *testing.T) {
	assert.Equal(t, "Library opens at 9.", Interpret(&Response{OK: true, Type: "text", Message: "Library opens at 9."}, now).Content)
	assert.Equal(t, defaultFollowUp, Interpret(&Response{OK: true}, now).Content)
}

func TestInterpretTimetable(t *testing.T) {
	data, err := json.Marshal(MockTimetable(UserContext{Branch: "ME", Semester: 2, Batch: "2026"}))
	require.NoError(t, err)

	r := Interpret(&Response{OK: true, Type: TypeTimetable, Data: data}, now)
	assert.True(t, r.Structured)
	assert.Contains(t, r.Content, "Timetable - ME Sem 2 • Batch 2026")
	assert.Contains(t, r.Content, "**Monday**")
	assert.Contains(t, r.Content, "| 09:00 - 10:00 | **Web Technology** | Prof. Gupta | B201 |")

	missing := Interpret(&Response{OK: true, Type: TypeTimetable, Data: json.RawMessage("null")}, now)
	assert.Equal(t, Reply{Content: "No timetable found for your context."}, missing)
}

func TestInterpretExamsMissing(t *testing.T) {
	r := Interpret(&Response{OK: true, Type: TypeExam}, now)
	assert.Equal(t, "No exam schedule found for your context.", r.Content)
	assert.False(t, r.Structured)
}

func TestInterpretPDFs(t *testing.T) {
	data := json.RawMessage(`[{"filename":"os.pdf","subject":"OS","semester":4}]`)
	r := Interpret(&Response{OK: true, Type: TypePDFs, Data: data}, now)
	assert.Contains(t, r.Content, "**os.pdf**")
	assert.Contains(t, r.Content, "OS • Sem 4")
	assert.Contains(t, r.Content, "Connect the backend to enable downloads.")
	assert.Empty(t, r.Links)

	empty := Interpret(&Response{OK: true, Type: TypePDFs}, now)
	assert.Equal(t, "No study materials found for your query.", empty.Content)
}

func TestOfflineRouting(t *testing.T) {
	uc := UserContext{}
	tests := []struct {
		text string
		want string
	}{
		{"Show my TIMETABLE", "Timetable - CSE Sem 3 • Batch 2025"},
		{"when are exams", "Exams - CSE Sem 3 • Batch 2025"},
		{"any notes for DSA?", "DSA Question Paper 2024"},
		{"previous question papers", "Web Technology Notes - Unit 1"},
		{"hostel fees", `Got it! I noted "hostel fees". Once the backend is connected I'll fetch the exact answer.`},
	}
	for _, tt := range tests {
		r := Offline(tt.text, uc, now)
		assert.Contains(t, r.Content, tt.want, tt.text)
	}
}

func TestOfflineMaterialsCarryLinks(t *testing.T) {
	r := Offline("pdf", UserContext{Semester: 6}, now)
	assert.Equal(t, []string{
		"https://arxiv.org/pdf/1706.03762.pdf",
		"https://arxiv.org/pdf/1807.01697.pdf",
	}, r.Links)
	assert.Contains(t, r.Content, "Sem 6")
}

func TestFormatExamsSortsByDate(t *testing.T) {
	es := &ExamSchedule{Branch: "CSE", Semester: 3, Batch: "2025", Exams: []Exam{
		{Subject: "Later", Date: now.Add(10 * day)},
		{Subject: "Sooner", Date: now.Add(2 * day), Venue: "Hall A"},
	}}
	r := FormatExams(es, now)
	assert.Less(t, strings.Index(r.Content, "Sooner"), strings.Index(r.Content, "Later"))
	assert.Contains(t, r.Content, "**Sooner** • Hall A")
	assert.Equal(t, "Later", es.Exams[0].Subject, "input order untouched")
}

func TestExamCountdown(t *testing.T) {
	assert.Equal(t, "Wed Feb 12 2025 • in 2 days", ExamCountdown(now.Add(2*day), now))
	assert.Equal(t, "Tue Feb 11 2025 • in 1 day", ExamCountdown(now.Add(day), now))
	assert.Equal(t, "Tue Feb 11 2025 • in 1 day", ExamCountdown(now.Add(2*time.Hour+day-3*time.Hour), now))
	assert.Equal(t, "Mon Feb 10 2025 • Today", ExamCountdown(now, now))
	assert.Equal(t, "Mon Feb 10 2025 • Today", ExamCountdown(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Sat Feb 08 2025 • Completed", ExamCountdown(now.Add(-2*day), now))
}

func TestUserContextIsZero(t *testing.T) {
	assert.True(t, UserContext{}.IsZero())
	assert.False(t, UserContext{Semester: 1}.IsZero())
}
