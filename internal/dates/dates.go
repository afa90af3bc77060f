// Package dates normalizes heterogeneous date inputs to the canonical
// YYYY-MM-DD form every stored expense carries.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseable is returned when no known layout or fallback shape
// matches the input.
var ErrUnparseable = errors.New("unparseable date")

const canonical = "2006-01-02"

// layouts are tried in order and the first successful parse wins.
// The ordering is a contract: day-first forms come before month-first,
// so an ambiguous "01/02/2024" resolves to February 1st, not January 2nd.
var layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
}

var (
	ymdPattern = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})`)
)

// Normalize converts a date string of unknown shape to canonical
// YYYY-MM-DD. It fails with ErrUnparseable instead of guessing: the
// caller owns any fallback policy (such as substituting today).
func Normalize(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnparseable)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(canonical), nil
		}
	}

	return normalizeWithPatterns(trimmed)
}

// normalizeWithPatterns handles loose numeric shapes the layout list
// misses, zero-padding month and day. Extracted values must form a
// real calendar date; "2024-99-99" is rejected, not stored.
func normalizeWithPatterns(s string) (string, error) {
	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[2], m[1])
	}
	return "", fmt.Errorf("%w: %q", ErrUnparseable, s)
}

func buildDate(year, month, day string) (string, error) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return "", fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrUnparseable, y, mo, d)
	}
	return t.Format(canonical), nil
}

// NormalizeTime converts a native time value to canonical form.
func NormalizeTime(t time.Time) string {
	return t.Format(canonical)
}

// Today returns the current date in canonical form. This is the
// explicit default for absent date inputs, distinct from any
// parse-failure handling.
func Today() string {
	return time.Now().Format(canonical)
}

// IsCanonical reports whether s is a strict YYYY-MM-DD date.
func IsCanonical(s string) bool {
	if len(s) != len(canonical) {
		return false
	}
	_, err := time.Parse(canonical, s)
	return err == nil
}
