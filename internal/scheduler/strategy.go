package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"studybuddy/internal/domain"
	"studybuddy/internal/logx"
)

// Strategy is the closed set of allocation policies.
type Strategy int

const (
	Even Strategy = iota
	Urgency
	Pomodoro
)

var strategyNames = map[Strategy]string{
	Even:     "even",
	Urgency:  "urgency",
	Pomodoro: "pomodoro",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies returns the selectors accepted by ParseStrategy.
func Strategies() []string { return []string{"even", "urgency", "pomodoro"} }

var ErrUnknownStrategy = errors.New("unknown strategy")

// UnknownStrategyError is returned for any selector outside Strategies().
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy: %q (want one of even, urgency, pomodoro)", e.Name)
}

func (e *UnknownStrategyError) Unwrap() error { return ErrUnknownStrategy }

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "even":
		return Even, nil
	case "urgency":
		return Urgency, nil
	case "pomodoro":
		return Pomodoro, nil
	}
	return 0, &UnknownStrategyError{Name: name}
}

// Allocate turns courses into blocks. It is pure given today; the logger only
// receives diagnostics about skipped rows and deadline fallbacks.
func (s Strategy) Allocate(courses []domain.CourseRequest, today time.Time, log logx.Logger) (domain.Schedule, error) {
	today = Day(today)
	switch s {
	case Even:
		return allocateDistributed(prepare(courses, today, log), today, false), nil
	case Urgency:
		return allocateDistributed(byDeadline(prepare(courses, today, log)), today, true), nil
	case Pomodoro:
		return allocatePomodoro(byDeadline(prepare(courses, today, log)), today), nil
	}
	return nil, &UnknownStrategyError{Name: s.String()}
}

// planned is a course whose fields have been coerced once.
type planned struct {
	name     string
	deadline time.Time
	minutes  int
}

// prepare validates and coerces every course in input order. Rows with missing
// fields or unusable hours are dropped here.
func prepare(courses []domain.CourseRequest, today time.Time, log logx.Logger) []planned {
	out := make([]planned, 0, len(courses))
	for i, c := range courses {
		if err := c.Validate(); err != nil {
			log.Debug("skipping course", logx.Int("index", i), logx.String("course", c.Name), logx.Err(err))
			continue
		}
		minutes, err := domain.StudyMinutes(c.Hours)
		if err != nil {
			log.Debug("skipping course", logx.Int("index", i), logx.String("course", c.Name), logx.Err(err))
			continue
		}
		out = append(out, planned{
			name:     c.Name,
			deadline: ParseDate(c.Deadline, today, log),
			minutes:  minutes,
		})
	}
	return out
}

// byDeadline sorts earliest deadline first; ties keep input order.
func byDeadline(ps []planned) []planned {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].deadline.Before(ps[j].deadline)
	})
	return ps
}
