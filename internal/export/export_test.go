package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/xuri/excelize/v2"

	"studybuddy/internal/domain"
)

func sampleSchedule() domain.Schedule {
	return domain.Schedule{
		{Course: "Math", Kind: domain.KindStudy, DurationMinutes: 60, Date: "2023-11-10"},
		{Course: "Science", Kind: domain.KindBreak, DurationMinutes: 30, Date: "2023-11-10"},
		{Course: "Math", Kind: domain.KindStudy, DurationMinutes: 90, Date: "2023-11-11"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSchedule()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "course,block,duration,date\r\n") {
		t.Errorf("CSV header is incorrect: %q", out)
	}
	if !strings.Contains(out, "Math,study,60,2023-11-10") {
		t.Error("First block is missing")
	}
	if !strings.Contains(out, "Science,break,30,2023-11-10") {
		t.Error("Second block is missing")
	}
	if strings.Count(out, "\n") != 4 {
		t.Errorf("Expected header + 3 rows, got %d lines", strings.Count(out, "\n"))
	}
}

func TestWriteCSVQuotesAwkwardNames(t *testing.T) {
	var buf bytes.Buffer
	s := domain.Schedule{{Course: "Art, History\n", Kind: domain.KindStudy, DurationMinutes: 5, Date: "2023-11-10"}}
	if err := WriteCSV(&buf, s); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"Art, History",study,5,2023-11-10`) {
		t.Errorf("Expected quoted course cell, got %q", buf.String())
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleSchedule()); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "2023-11-10 | Math | study | 60 min") {
		t.Error("Missing first line")
	}
	if !strings.Contains(out, "2023-11-11 | Math | study | 90 min") {
		t.Error("Missing last line")
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("Expected 2 newlines for 3 rows, got %d", strings.Count(out, "\n"))
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleSchedule()); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(scheduleSheet)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", scheduleSheet, err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "course,block,duration,date" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if strings.Join(rows[3], ",") != "Math,study,90,2023-11-11" {
		t.Errorf("Unexpected last row %v", rows[3])
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("GetRows(%s) error = %v", summarySheet, err)
	}
	if len(summary) != 3 || summary[1][0] != "Math" || summary[1][1] != "150" {
		t.Errorf("Unexpected summary rows %v", summary)
	}
}

func TestSummarize(t *testing.T) {
	totals := Summarize(sampleSchedule())
	if len(totals) != 2 {
		t.Fatalf("Expected 2 courses, got %d", len(totals))
	}
	if totals[0].Course != "Math" || totals[0].Minutes != 150 {
		t.Errorf("Unexpected first total %+v", totals[0])
	}
	if totals[1].Course != "Science" || totals[1].Minutes != 30 {
		t.Errorf("Unexpected second total %+v", totals[1])
	}
	if sum := totals[0].Share + totals[1].Share; sum < 99.999 || sum > 100.001 {
		t.Errorf("Expected shares to add to 100, got %v", sum)
	}

	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Expected no totals for empty schedule, got %v", got)
	}
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChart(&buf, Summarize(sampleSchedule())); err != nil {
		t.Fatalf("WriteChart() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 chart lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "Math    ") || !strings.Contains(lines[0], " 83% (150 min)") {
		t.Errorf("Unexpected first chart line %q", lines[0])
	}
	if strings.Count(lines[0], "#") != 25 {
		t.Errorf("Expected 25 bar cells for 83%%, got %d", strings.Count(lines[0], "#"))
	}

	buf.Reset()
	WriteChart(&buf, nil)
	if buf.String() != "no study blocks scheduled\n" {
		t.Errorf("Unexpected empty chart %q", buf.String())
	}
}

func TestFormatFromPath(t *testing.T) {
	testCases := []struct {
		path       string
		format     Format
		compressed bool
		wantErr    bool
	}{
		{"schedule.csv", FormatCSV, false, false},
		{"out/plan.TXT", FormatText, false, false},
		{"plan.xlsx", FormatXLSX, false, false},
		{"plan.csv.br", FormatCSV, true, false},
		{"plan", "", false, true},
		{"plan.pdf", "", false, true},
	}

	for _, tc := range testCases {
		f, compressed, err := FormatFromPath(tc.path)
		if (err != nil) != tc.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tc.path, err, tc.wantErr)
			continue
		}
		if f != tc.format || compressed != tc.compressed {
			t.Errorf("FormatFromPath(%q) = (%q, %v), want (%q, %v)", tc.path, f, compressed, tc.format, tc.compressed)
		}
	}
}

func TestWriteFileCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedule.txt.br")
	if err := WriteFile(path, sampleSchedule()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	plain, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		t.Fatalf("brotli decode error = %v", err)
	}
	if !strings.HasPrefix(string(plain), "2023-11-10 | Math | study | 60 min") {
		t.Errorf("Unexpected decompressed content %q", plain)
	}
}

func TestWriteFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := WriteFile(path, sampleSchedule()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "Math,study,90,2023-11-11") {
		t.Errorf("Unexpected CSV content %q", content)
	}
}
