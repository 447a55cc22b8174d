package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"studybuddy/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatXLSX Format = "xlsx"
)

// BrotliSuffix marks an output path whose content is brotli-compressed.
const BrotliSuffix = ".br"

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain"
	}
}

// FormatFromPath infers the format from the file extension. A trailing
// ".br" (schedule.csv.br) reports compressed=true.
func FormatFromPath(path string) (f Format, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, BrotliSuffix) {
		compressed = true
		name = strings.TrimSuffix(name, BrotliSuffix)
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", compressed, fmt.Errorf("export: %s: missing file extension", path)
	}
	f, err = ParseFormat(ext)
	return f, compressed, err
}

func Write(w io.Writer, f Format, schedule domain.Schedule) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, schedule)
	case FormatText:
		return WriteText(w, schedule)
	case FormatXLSX:
		return WriteXLSX(w, schedule)
	}
	return fmt.Errorf("export: unknown format %q", f)
}

// WriteCompressed brotli-encodes the export of schedule into w.
func WriteCompressed(w io.Writer, f Format, schedule domain.Schedule) error {
	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if err := Write(bw, f, schedule); err != nil {
		bw.Close()
		return err
	}
	return bw.Close()
}

// WriteFile exports schedule to path, creating parent directories.
func WriteFile(path string, schedule domain.Schedule) error {
	f, compressed, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: mkdir %s: %w", dir, err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if compressed {
		err = WriteCompressed(out, f, schedule)
	} else {
		err = Write(out, f, schedule)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
