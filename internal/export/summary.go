package export

import (
	"fmt"
	"io"
	"strings"

	"studybuddy/internal/domain"
)

// CourseTotal is one slice of the minutes-per-course chart.
type CourseTotal struct {
	Course  string  `json:"course"`
	Minutes int     `json:"minutes"`
	Share   float64 `json:"share"` // percent of all minutes, 0..100
}

// Summarize totals every block's minutes per course (breaks included, as the
// chart shows time committed to a course), in order of first appearance.
func Summarize(schedule domain.Schedule) []CourseTotal {
	idx := map[string]int{}
	var totals []CourseTotal
	all := 0
	for _, b := range schedule {
		i, ok := idx[b.Course]
		if !ok {
			i = len(totals)
			idx[b.Course] = i
			totals = append(totals, CourseTotal{Course: b.Course})
		}
		totals[i].Minutes += b.DurationMinutes
		all += b.DurationMinutes
	}
	if all == 0 {
		return totals
	}
	for i := range totals {
		totals[i].Share = float64(totals[i].Minutes) * 100 / float64(all)
	}
	return totals
}

const chartWidth = 30

// WriteChart renders totals as a horizontal bar chart:
//
//	Math     ##############                  67% (600 min)
func WriteChart(w io.Writer, totals []CourseTotal) error {
	if len(totals) == 0 {
		_, err := io.WriteString(w, "no study blocks scheduled\n")
		return err
	}

	width := 0
	for _, t := range totals {
		width = max(width, len(t.Course))
	}

	var b strings.Builder
	for _, t := range totals {
		n := int(t.Share*chartWidth/100 + 0.5)
		fmt.Fprintf(&b, "%-*s %-*s %3.0f%% (%d min)\n",
			width, t.Course,
			chartWidth, strings.Repeat("#", n),
			t.Share, t.Minutes,
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
