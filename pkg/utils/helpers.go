package utils

import (
	"strconv"
	"strings"
)

// ParseFloat parses a CSV cell into a float, tolerating surrounding
// whitespace and thousands separators. The second return value is
// false for empty or non-numeric cells.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatFloat renders a float with the shortest exact representation,
// for CSV and spreadsheet cells.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
