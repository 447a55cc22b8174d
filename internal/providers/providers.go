package providers

import (
	"context"
	"fmt"

	"studybuddy/internal/concurrency"
	"studybuddy/internal/domain"
)

// CourseProvider is a source of course requests (a file, a URL, flags).
type CourseProvider interface {
	Name() string
	ListCourses(ctx context.Context) ([]domain.CourseRequest, error)
}

// Static serves a fixed list, e.g. courses given on the command line.
type Static struct {
	Label   string
	Courses []domain.CourseRequest
}

func (s Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s Static) ListCourses(ctx context.Context) ([]domain.CourseRequest, error) {
	out := make([]domain.CourseRequest, len(s.Courses))
	copy(out, s.Courses)
	return out, nil
}

// Collect lists every provider in parallel and concatenates the results in
// provider order. Any provider error fails the whole collection.
func Collect(ctx context.Context, ps ...CourseProvider) ([]domain.CourseRequest, error) {
	lists, errs := concurrency.ProcessParallel(ctx, ps, concurrency.ParallelOptions{MaxWorkers: 4},
		func(ctx context.Context, _ int, p CourseProvider) ([]domain.CourseRequest, error) {
			cs, err := p.ListCourses(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name(), err)
			}
			return cs, nil
		})
	if len(errs) > 0 {
		return nil, errs[0]
	}

	var all []domain.CourseRequest
	for _, l := range lists {
		all = append(all, l...)
	}
	return all, nil
}
