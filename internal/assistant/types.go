package assistant

import (
	"encoding/json"
	"time"
)

// UserContext is the student profile sent with every query.
type UserContext struct {
	Branch   string `json:"branch,omitempty"`
	Semester int    `json:"semester,omitempty"`
	Batch    string `json:"batch,omitempty"`
}

// IsZero reports whether no profile has been saved.
func (u UserContext) IsZero() bool {
	return u.Branch == "" && u.Semester == 0 && u.Batch == ""
}

// withDefaults fills blanks the way the demo data expects.
func (u UserContext) withDefaults() UserContext {
	if u.Branch == "" {
		u.Branch = "CSE"
	}
	if u.Semester == 0 {
		u.Semester = 3
	}
	if u.Batch == "" {
		u.Batch = "2025"
	}
	return u
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Text    string      `json:"text"`
	Context UserContext `json:"context"`
}

// Response types returned by the backend.
const (
	TypeTimetable = "timetable"
	TypeExam      = "exam"
	TypePDFs      = "pdfs"
)

// Response is the body returned by POST /query.
type Response struct {
	OK      bool            `json:"ok"`
	Type    string          `json:"type,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Period is one class slot.
type Period struct {
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Room    string `json:"room,omitempty"`
	Teacher string `json:"teacher,omitempty"`
}

// Day groups the periods of one weekday.
type Day struct {
	Day     string   `json:"day"`
	Periods []Period `json:"periods"`
}

// Timetable is the weekly schedule for a branch/semester/batch.
type Timetable struct {
	Branch   string `json:"branch"`
	Semester int    `json:"semester"`
	Batch    string `json:"batch"`
	Schedule []Day  `json:"schedule"`
}

// Exam is one scheduled paper.
type Exam struct {
	Subject string    `json:"subject"`
	Date    time.Time `json:"date"`
	Venue   string    `json:"venue,omitempty"`
}

// ExamSchedule lists upcoming exams.
type ExamSchedule struct {
	Branch   string `json:"branch"`
	Semester int    `json:"semester"`
	Batch    string `json:"batch"`
	Exams    []Exam `json:"exams"`
}

// Material is a study document.
type Material struct {
	Title      string    `json:"title,omitempty"`
	Filename   string    `json:"filename,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Semester   int       `json:"semester,omitempty"`
	FileURL    string    `json:"file_url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at,omitempty"`
}

// Reply is a bot turn ready to append to the log.
type Reply struct {
	Content    string
	Structured bool
	// Links collects material URLs so the shell can offer to copy them.
	Links []string
}

// DefaultUserContext is the profile assumed for blank fields.
func DefaultUserContext() UserContext {
	return UserContext{}.withDefaults()
}
