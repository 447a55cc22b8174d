package scheduler

import (
	"sort"
	"time"

	"studybuddy/internal/domain"
)

const (
	PomodoroStudyMinutes = 25
	PomodoroBreakMinutes = 5
)

// allocatePomodoro cuts each course into 25-minute study segments with a
// 5-minute break after every segment but the last. Segments are dealt onto the
// days between today and the deadline round-robin, so once the range is used
// up several segments share a date. Courses past their deadline are skipped.
//
// The result is ordered by date; within a date, blocks keep processing order.
func allocatePomodoro(ps []planned, today time.Time) domain.Schedule {
	schedule := domain.Schedule{}
	for _, p := range ps {
		span := DaysBetween(today, p.deadline) + 1
		if span <= 0 {
			continue
		}
		schedule = append(schedule, segment(p, today, span)...)
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].Date < schedule[j].Date
	})
	return schedule
}

func segment(p planned, today time.Time, span int) domain.Schedule {
	var blocks domain.Schedule
	remaining := p.minutes
	for idx := 0; remaining > 0; idx++ {
		date := FormatDate(addDays(today, idx%span))
		d := min(PomodoroStudyMinutes, remaining)
		blocks = append(blocks, domain.ScheduleBlock{
			Course:          p.name,
			Kind:            domain.KindStudy,
			DurationMinutes: d,
			Date:            date,
		})
		remaining -= d
		if remaining > 0 {
			blocks = append(blocks, domain.ScheduleBlock{
				Course:          p.name,
				Kind:            domain.KindBreak,
				DurationMinutes: PomodoroBreakMinutes,
				Date:            date,
			})
		}
	}
	return blocks
}
