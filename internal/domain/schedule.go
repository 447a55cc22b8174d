package domain

import "fmt"

type BlockKind string

const (
	KindStudy      BlockKind = "study"
	KindBreak      BlockKind = "break"
	KindShortBreak BlockKind = "short_break"
	KindLongBreak  BlockKind = "long_break"
)

func (k BlockKind) Valid() bool {
	switch k {
	case KindStudy, KindBreak, KindShortBreak, KindLongBreak:
		return true
	}
	return false
}

// ScheduleBlock is one dated unit of study or rest for a course.
// Date is a calendar date in ISO form (YYYY-MM-DD).
type ScheduleBlock struct {
	Course          string    `json:"course"`
	Kind            BlockKind `json:"block"`
	DurationMinutes int       `json:"duration"`
	Date            string    `json:"date"`
}

func (b ScheduleBlock) String() string {
	return fmt.Sprintf("%s | %s | %s | %d min", b.Date, b.Course, b.Kind, b.DurationMinutes)
}

// Schedule is a flat, ordered list of blocks.
type Schedule []ScheduleBlock

// StudyMinutes sums the study minutes allocated to course.
func (s Schedule) StudyMinutes(course string) int {
	total := 0
	for _, b := range s {
		if b.Course == course && b.Kind == KindStudy {
			total += b.DurationMinutes
		}
	}
	return total
}

// Courses lists course names in order of first appearance.
func (s Schedule) Courses() []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range s {
		if seen[b.Course] {
			continue
		}
		seen[b.Course] = true
		out = append(out, b.Course)
	}
	return out
}

// ForCourse returns the blocks belonging to course, preserving order.
func (s Schedule) ForCourse(course string) Schedule {
	out := Schedule{}
	for _, b := range s {
		if b.Course == course {
			out = append(out, b)
		}
	}
	return out
}
