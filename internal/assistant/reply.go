package assistant

import (
	"encoding/json"
	"regexp"
	"time"
)

const (
	snagMessage     = "I ran into a snag. Want to try again?"
	defaultFollowUp = "How else can I assist you?"
)

// Interpret converts a backend response into a reply.
func Interpret(resp *Response, now time.Time) Reply {
	if resp == nil || !resp.OK {
		msg := snagMessage
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return Reply{Content: msg}
	}

	switch resp.Type {
	case TypeTimetable:
		var tt *Timetable
		if !decodeData(resp.Data, &tt) {
			tt = nil
		}
		return FormatTimetable(tt)
	case TypeExam:
		var es *ExamSchedule
		if !decodeData(resp.Data, &es) {
			es = nil
		}
		return FormatExams(es, now)
	case TypePDFs:
		var items []Material
		decodeData(resp.Data, &items)
		return FormatMaterials(items)
	default:
		msg := resp.Message
		if msg == "" {
			msg = defaultFollowUp
		}
		return Reply{Content: msg}
	}
}

func decodeData(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

var (
	timetablePattern = regexp.MustCompile(`(?i)timetable`)
	examPattern      = regexp.MustCompile(`(?i)exam`)
	materialPattern  = regexp.MustCompile(`(?i)(pdf|material|question|note)`)
)

// Offline answers from demo data when the backend is unreachable.
func Offline(text string, uc UserContext, now time.Time) Reply {
	switch {
	case timetablePattern.MatchString(text):
		return FormatTimetable(MockTimetable(uc))
	case examPattern.MatchString(text):
		return FormatExams(MockExams(uc, now), now)
	case materialPattern.MatchString(text):
		return FormatMaterials(MockMaterials(uc, now))
	default:
		return Reply{Content: MockFallback(text)}
	}
}
