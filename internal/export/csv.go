package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"studybuddy/internal/domain"
)

// Keep header order EXACT; spreadsheets built on earlier exports depend on it.
var scheduleHeader = []string{
	"course",
	"block",
	"duration",
	"date",
}

// WriteCSV writes one row per block under scheduleHeader.
func WriteCSV(w io.Writer, schedule domain.Schedule) error {
	cw := csv.NewWriter(w)
	// match typical spreadsheet exports
	cw.UseCRLF = true

	if err := cw.Write(scheduleHeader); err != nil {
		return err
	}
	for _, b := range schedule {
		if err := cw.Write(toRow(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toRow(b domain.ScheduleBlock) []string {
	return []string{
		cleanCell(b.Course),             // course
		string(b.Kind),                  // block
		strconv.Itoa(b.DurationMinutes), // duration
		b.Date,                          // date
	}
}

// cleanCell keeps each block on a single line.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
