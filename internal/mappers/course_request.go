package mappers

import (
	"fmt"
	"strconv"
	"strings"

	"studybuddy/internal/domain"
)

// Column aliases accepted in CSV headers and map keys.
var fieldAliases = map[string]string{
	"course":      "course",
	"name":        "course",
	"subject":     "course",
	"deadline":    "deadline",
	"due":         "deadline",
	"due_date":    "deadline",
	"hours":       "hours",
	"study_hours": "hours",
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "-", "_")
	return fieldAliases[k]
}

// HeaderIndex maps canonical field names to column positions.
// The first column carrying a field wins.
func HeaderIndex(header []string) map[string]int {
	idx := map[string]int{}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		f := normalizeKey(h)
		if f == "" {
			continue
		}
		if _, ok := idx[f]; !ok {
			idx[f] = i
		}
	}
	return idx
}

// CourseFromRecord builds a request from a CSV record. Missing columns
// yield empty fields, which the scheduler skips.
func CourseFromRecord(idx map[string]int, rec []string) domain.CourseRequest {
	get := func(field string) string {
		i, ok := idx[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	return domain.CourseRequest{
		Name:     get("course"),
		Deadline: get("deadline"),
		Hours:    get("hours"),
	}
}

// CourseFromMap builds a request from a decoded YAML/JSON object.
func CourseFromMap(m map[string]any) domain.CourseRequest {
	var c domain.CourseRequest
	for k, v := range m {
		switch normalizeKey(k) {
		case "course":
			if c.Name == "" {
				c.Name = scalarString(v)
			}
		case "deadline":
			if c.Deadline == "" {
				c.Deadline = scalarString(v)
			}
		case "hours":
			if c.Hours == "" {
				c.Hours = scalarString(v)
			}
		}
	}
	return c
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// CourseFromFlag parses "Name,deadline,hours". The name may itself contain
// commas; the last two fields are always deadline and hours.
func CourseFromFlag(s string) (domain.CourseRequest, error) {
	hi := strings.LastIndex(s, ",")
	if hi < 0 {
		return domain.CourseRequest{}, fmt.Errorf("course %q: want name,deadline,hours", s)
	}
	di := strings.LastIndex(s[:hi], ",")
	if di < 0 {
		return domain.CourseRequest{}, fmt.Errorf("course %q: want name,deadline,hours", s)
	}
	return domain.CourseRequest{
		Name:     strings.TrimSpace(s[:di]),
		Deadline: strings.TrimSpace(s[di+1 : hi]),
		Hours:    strings.TrimSpace(s[hi+1:]),
	}, nil
}
