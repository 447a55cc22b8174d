package scheduler

import (
	"time"

	"studybuddy/internal/domain"
	"studybuddy/internal/logx"
)

// Engine selects a strategy by name and runs it. It holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	log logx.Logger
	now func() time.Time
}

type Option func(*Engine)

// WithClock replaces the wall clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(log logx.Logger, opts ...Option) *Engine {
	e := &Engine{log: log, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Today is the calendar date callers should pass to Generate when they have
// no explicit override. Read it once per request.
func (e *Engine) Today() time.Time { return Day(e.now()) }

// Generate builds a schedule for courses using the named strategy.
// The only error is *UnknownStrategyError; per-course problems are skipped.
func (e *Engine) Generate(strategy string, courses []domain.CourseRequest, today time.Time) (domain.Schedule, error) {
	s, err := ParseStrategy(strategy)
	if err != nil {
		e.log.Warn("rejecting schedule request", logx.String("strategy", strategy), logx.Err(err))
		return nil, err
	}

	log := e.log.With(logx.String("strategy", s.String()))
	schedule, err := s.Allocate(courses, today, log)
	if err != nil {
		return nil, err
	}
	log.Debug("schedule generated",
		logx.Int("courses", len(courses)),
		logx.Int("scheduled", len(schedule.Courses())),
		logx.Int("blocks", len(schedule)),
		logx.String("today", FormatDate(today)),
	)
	return schedule, nil
}
