package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"studybuddy/internal/domain"
	"studybuddy/internal/mappers"
)

var ErrUnsupported = errors.New("unsupported course file type")

// Provider reads course requests from a .csv, .json, .yaml or .yml file.
type Provider struct {
	Path string
}

func New(path string) *Provider { return &Provider{Path: path} }

func (p *Provider) Name() string { return "file:" + p.Path }

func (p *Provider) ListCourses(ctx context.Context) ([]domain.CourseRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, err
	}
	return Parse(strings.TrimPrefix(filepath.Ext(p.Path), "."), data)
}

// Parse decodes data in the given format ("csv", "json", "yaml" or "yml").
func Parse(format string, data []byte) ([]domain.CourseRequest, error) {
	switch strings.ToLower(format) {
	case "csv":
		return parseCSV(bytes.NewReader(data))
	case "json":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		return fromValue(v)
	case "yaml", "yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return fromValue(v)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, format)
}

func parseCSV(r io.Reader) ([]domain.CourseRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	idx := mappers.HeaderIndex(header)

	var out []domain.CourseRequest
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if blank(rec) {
			continue
		}
		out = append(out, mappers.CourseFromRecord(idx, rec))
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// fromValue accepts either a list of course objects or {"courses": [...]}.
func fromValue(v any) ([]domain.CourseRequest, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		inner, ok := x["courses"]
		if !ok {
			return nil, errors.New(`expected a list or an object with "courses"`)
		}
		return fromValue(inner)
	case []any:
		out := make([]domain.CourseRequest, 0, len(x))
		for i, item := range x {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("course %d: expected an object, got %T", i, item)
			}
			out = append(out, mappers.CourseFromMap(m))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected top-level %T", v)
}
