package scheduler

import (
	"strings"
	"time"

	"studybuddy/internal/logx"
)

const DateLayout = "2006-01-02"

// Accepted deadline layouts, tried in order. Single-digit month/day parse too.
var deadlineLayouts = []string{
	"2006-1-2",
	"1/2/2006",
}

// ParseDate turns a raw deadline into a calendar date. It never fails:
// when no layout matches it logs a warning and returns today, so one bad
// row cannot abort a whole batch.
func ParseDate(raw string, today time.Time, log logx.Logger) time.Time {
	s := strings.TrimSpace(raw)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t)
		}
	}
	log.Warn("unparseable deadline, using today",
		logx.String("raw", raw),
		logx.String("today", FormatDate(today)),
	)
	return Day(today)
}

// Day drops the clock part and location, keeping only the calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// DaysBetween counts calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

func addDays(t time.Time, n int) time.Time { return Day(t).AddDate(0, 0, n) }
