package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"studybuddy/internal/domain"
)

const (
	scheduleSheet = "Schedule"
	summarySheet  = "Summary"
)

// WriteXLSX writes a workbook with the blocks on one sheet and the
// per-course totals on another.
func WriteXLSX(w io.Writer, schedule domain.Schedule) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scheduleSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if err := writeHeader(f, scheduleSheet, scheduleHeader); err != nil {
		return err
	}
	for i, b := range schedule {
		row := i + 2
		values := []any{cleanCell(b.Course), string(b.Kind), b.DurationMinutes, b.Date}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(scheduleSheet, cell, v); err != nil {
				return fmt.Errorf("xlsx: set %s: %w", cell, err)
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx: new sheet: %w", err)
	}
	if err := writeHeader(f, summarySheet, []string{"course", "minutes", "share"}); err != nil {
		return err
	}
	for i, t := range Summarize(schedule) {
		row := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), t.Course)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), t.Minutes)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.0f%%", t.Share))
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: header %s: %w", cell, err)
		}
	}
	return nil
}
