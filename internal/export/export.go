// Package export writes the data panel's current page to disk as CSV or
// JSON. Exports are page-scoped on purpose: what you see is what you get.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Error wraps a failed export; the UI surfaces it in the status log only.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Filename builds "{connection}_{object}_{YYYYMMDD_HHMMSS}.{ext}" with path
// separators and spaces flattened to underscores.
func Filename(connection, object string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		sanitize(connection), sanitize(object), now.Format("20060102_150405"), format)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '.':
			return '_'
		}
		return r
	}, s)
}

// Page writes one page of rows to path in the given format.
func Page(path string, format Format, columns []string, rows [][]any) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = writeCSV(f, columns, rows)
	case FormatJSON:
		err = writeJSON(f, columns, rows)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	return nil
}

// CSVString renders a page as CSV in memory, for the clipboard.
func CSVString(columns []string, rows [][]any) (string, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, columns, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeCSV(f io.Writer, columns []string, rows [][]any) error {
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = cellString(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(f io.Writer, columns []string, rows [][]any) error {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]any, len(columns))
		for i, col := range columns {
			if i < len(row) {
				obj[col] = jsonValue(row[i])
			} else {
				obj[col] = nil
			}
		}
		out = append(out, obj)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return bytesToText(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonValue normalizes driver types so the output is plain JSON: times as
// RFC3339 strings, byte blobs as text when valid UTF-8.
func jsonValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case []byte:
		return bytesToText(t)
	default:
		return v
	}
}

func bytesToText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return fmt.Sprintf("0x%x", b)
}
