package export

import (
	"io"
	"strings"

	"studybuddy/internal/domain"
)

// WriteText writes "date | course | block | N min" lines separated by newlines,
// without a trailing newline.
func WriteText(w io.Writer, schedule domain.Schedule) error {
	lines := make([]string, 0, len(schedule))
	for _, b := range schedule {
		b.Course = cleanCell(b.Course)
		lines = append(lines, b.String())
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
