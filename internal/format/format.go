// Package format holds display helpers shared by the view-model builder and
// the export writers.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	markupRe     = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Size renders a byte count with one decimal above the byte range:
// 0 -> "0 B", 1023 -> "1023 B", 1024 -> "1.0 KB".
func Size(numBytes int64) string {
	if numBytes <= 0 {
		return "0 B"
	}
	num := float64(numBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if num < 1024 || unit == "TB" {
			if unit == "B" {
				return fmt.Sprintf("%d %s", int64(num), unit)
			}
			return fmt.Sprintf("%.1f %s", num, unit)
		}
		num /= 1024
	}
	return fmt.Sprintf("%d B", numBytes)
}

// CellText renders an arbitrary cell value as a single display line. NULL
// becomes empty, markup-like angle-bracket runs are stripped, and whitespace
// runs collapse to one space.
func CellText(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	s = markupRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate cuts a string to the given display width, appending an ellipsis
// when anything was removed. Width is rune-width aware.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Cell combines CellText and Truncate.
func Cell(v any, width int) string {
	return Truncate(CellText(v), width)
}
