package assistant

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// MockTimetable is the demo timetable for uc.
func MockTimetable(uc UserContext) *Timetable {
	uc = uc.withDefaults()
	return &Timetable{
		Branch:   uc.Branch,
		Semester: uc.Semester,
		Batch:    uc.Batch,
		Schedule: []Day{
			{Day: "Monday", Periods: []Period{
				{Time: "09:00 - 10:00", Subject: "Web Technology", Room: "B201", Teacher: "Prof. Gupta"},
				{Time: "10:00 - 11:00", Subject: "DSA", Room: "B202", Teacher: "Prof. Rao"},
			}},
			{Day: "Tuesday", Periods: []Period{
				{Time: "09:00 - 10:00", Subject: "Operating Systems", Room: "C101", Teacher: "Prof. Jain"},
			}},
		},
	}
}

// MockExams schedules two demo exams relative to now.
func MockExams(uc UserContext, now time.Time) *ExamSchedule {
	uc = uc.withDefaults()
	return &ExamSchedule{
		Branch:   uc.Branch,
		Semester: uc.Semester,
		Batch:    uc.Batch,
		Exams: []Exam{
			{Subject: "Web Technology", Date: now.Add(7 * day), Venue: "Main Hall"},
			{Subject: "DSA", Date: now.Add(10 * day), Venue: "Seminar Room"},
		},
	}
}

// MockMaterials lists two demo documents.
func MockMaterials(uc UserContext, now time.Time) []Material {
	uc = uc.withDefaults()
	return []Material{
		{
			Title:      "Web Technology Notes - Unit 1",
			Subject:    "Web Technology",
			Semester:   uc.Semester,
			FileURL:    "https://arxiv.org/pdf/1706.03762.pdf",
			UploadedAt: now,
		},
		{
			Title:      "DSA Question Paper 2024",
			Subject:    "DSA",
			Semester:   uc.Semester,
			FileURL:    "https://arxiv.org/pdf/1807.01697.pdf",
			UploadedAt: now,
		},
	}
}

// MockFallback acknowledges a query the demo data cannot answer.
func MockFallback(text string) string {
	return fmt.Sprintf("Got it! I noted \"%s\". Once the backend is connected I'll fetch the exact answer.", text)
}
