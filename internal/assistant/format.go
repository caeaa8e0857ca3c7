package assistant

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	dateLabelLayout = "Mon Jan 02 2006"
	uploadedLayout  = "02 Jan 2006"
)

// FormatTimetable renders a timetable card.
func FormatTimetable(tt *Timetable) Reply {
	if tt == nil {
		return Reply{Content: "No timetable found for your context."}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "### 📅 Timetable - %s Sem %d • Batch %s\n", tt.Branch, tt.Semester, tt.Batch)
	for _, day := range tt.Schedule {
		fmt.Fprintf(&sb, "\n**%s**\n\n", day.Day)
		sb.WriteString("| Time | Subject | Teacher | Room |\n")
		sb.WriteString("|------|---------|---------|------|\n")
		for _, p := range day.Periods {
			fmt.Fprintf(&sb, "| %s | **%s** | %s | %s |\n",
				cell(p.Time), cell(p.Subject), cell(p.Teacher), cell(p.Room))
		}
	}
	return Reply{Content: sb.String(), Structured: true}
}

// FormatExams renders the exam card, earliest first.
func FormatExams(es *ExamSchedule, now time.Time) Reply {
	if es == nil {
		return Reply{Content: "No exam schedule found for your context."}
	}

	exams := append([]Exam(nil), es.Exams...)
	sort.SliceStable(exams, func(i, j int) bool {
		return exams[i].Date.Before(exams[j].Date)
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "### 📝 Exams - %s Sem %d • Batch %s\n\n", es.Branch, es.Semester, es.Batch)
	for _, e := range exams {
		fmt.Fprintf(&sb, "- %s  \n  **%s**", ExamCountdown(e.Date, now), e.Subject)
		if e.Venue != "" {
			fmt.Fprintf(&sb, " • %s", e.Venue)
		}
		sb.WriteString("\n")
	}
	return Reply{Content: sb.String(), Structured: true}
}

// ExamCountdown labels an exam date relative to now in whole days,
// rounding up.
func ExamCountdown(date, now time.Time) string {
	days := int(math.Ceil(date.Sub(now).Hours() / 24))
	label := date.Format(dateLabelLayout)
	switch {
	case days > 0:
		unit := "days"
		if days == 1 {
			unit = "day"
		}
		return fmt.Sprintf("%s • in %d %s", label, days, unit)
	case days == 0:
		return label + " • Today"
	default:
		return label + " • Completed"
	}
}

// FormatMaterials renders the study material list.
func FormatMaterials(items []Material) Reply {
	if len(items) == 0 {
		return Reply{Content: "No study materials found for your query.", Structured: true}
	}

	var sb strings.Builder
	var links []string
	for i, m := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		title := m.Title
		if title == "" {
			title = m.Filename
		}
		fmt.Fprintf(&sb, "- **%s**  \n  %s • Sem %s", title, m.Subject, semesterLabel(m.Semester))
		if !m.UploadedAt.IsZero() {
			fmt.Fprintf(&sb, " • %s", m.UploadedAt.Local().Format(uploadedLayout))
		}
		sb.WriteString("  \n  ")
		if m.FileURL != "" {
			fmt.Fprintf(&sb, "[View / Download](%s)", m.FileURL)
			links = append(links, m.FileURL)
		} else {
			sb.WriteString("_Connect the backend to enable downloads._")
		}
		sb.WriteString("\n")
	}
	return Reply{Content: sb.String(), Structured: true, Links: links}
}

func semesterLabel(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

// cell keeps table rows intact when values contain pipes.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
