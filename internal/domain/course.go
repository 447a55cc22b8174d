package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CourseRequest is one row of user input: a course, its deadline and the hours to study.
// Fields stay raw strings; strategies coerce them and skip rows they cannot use.
type CourseRequest struct {
	Name     string `json:"course" yaml:"course"`
	Deadline string `json:"deadline" yaml:"deadline"`
	Hours    string `json:"hours" yaml:"hours"`
}

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidHours = errors.New("invalid hours")
)

// Validate reports whether the required fields are present.
func (c CourseRequest) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: course", ErrMissingField)
	case strings.TrimSpace(c.Deadline) == "":
		return fmt.Errorf("%w: deadline", ErrMissingField)
	case strings.TrimSpace(c.Hours) == "":
		return fmt.Errorf("%w: hours", ErrMissingField)
	}
	return nil
}

// UnmarshalJSON accepts hours as either a JSON number or a string.
func (c *CourseRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name     string          `json:"course"`
		Deadline string          `json:"deadline"`
		Hours    json.RawMessage `json:"hours"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Name = raw.Name
	c.Deadline = raw.Deadline
	c.Hours = ""

	h := strings.TrimSpace(string(raw.Hours))
	if h == "" || h == "null" {
		return nil
	}
	if strings.HasPrefix(h, `"`) {
		var s string
		if err := json.Unmarshal(raw.Hours, &s); err != nil {
			return err
		}
		c.Hours = s
		return nil
	}
	// numbers (and anything else) keep their literal text
	c.Hours = h
	return nil
}

// MaxHours is the largest study load accepted for one course: ten years of
// round-the-clock study. Larger values are treated as invalid input.
const MaxHours = 24 * 366 * 10

// ParseHours coerces raw hours into a non-negative finite number no larger
// than MaxHours.
func ParseHours(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidHours)
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, raw)
	}
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHours, raw)
	}
	if h > MaxHours {
		return 0, fmt.Errorf("%w: %q exceeds %d", ErrInvalidHours, raw, MaxHours)
	}
	return h, nil
}

// StudyMinutes converts hours to minutes after truncating to whole hours,
// so 1.9 hours yields 60 minutes and 0.5 hours yields none.
func StudyMinutes(raw string) (int, error) {
	h, err := ParseHours(raw)
	if err != nil {
		return 0, err
	}
	return int(math.Trunc(h)) * 60, nil
}
