package scheduler

import (
	"time"

	"studybuddy/internal/domain"
)

// allocateDistributed spreads each course's minutes over the days from today
// to its deadline, in the order given. Days differ by at most one minute; the
// earliest days take the remainder.
//
// A deadline before today is clamped to a single day unless skipPast is set.
func allocateDistributed(ps []planned, today time.Time, skipPast bool) domain.Schedule {
	schedule := domain.Schedule{}
	for _, p := range ps {
		span := DaysBetween(today, p.deadline) + 1
		if span <= 0 {
			if skipPast {
				continue
			}
			span = 1
		}
		schedule = append(schedule, spread(p, today, span)...)
	}
	return schedule
}

func spread(p planned, today time.Time, days int) domain.Schedule {
	perDay := p.minutes / days
	extra := p.minutes % days

	blocks := make(domain.Schedule, 0, min(days, p.minutes))
	for i := 0; i < days; i++ {
		d := perDay
		if i < extra {
			d++
		}
		if d <= 0 {
			continue
		}
		blocks = append(blocks, domain.ScheduleBlock{
			Course:          p.name,
			Kind:            domain.KindStudy,
			DurationMinutes: d,
			Date:            FormatDate(addDays(today, i)),
		})
	}
	return blocks
}
