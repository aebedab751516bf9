// Package period formats and parses the keys used to bucket statements.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMonth returns a month key like "2025-01".
func FormatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FormatYear returns a year key like "2025".
func FormatYear(year int) string {
	return fmt.Sprintf("%04d", year)
}

// MonthOf returns the month key for t.
func MonthOf(t time.Time) string {
	return FormatMonth(t.Year(), int(t.Month()))
}

// YearOf returns the year key for t.
func YearOf(t time.Time) string {
	return FormatYear(t.Year())
}

// ParseMonth parses "2025-01" into year and month.
func ParseMonth(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month key format: %q", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in month key %q", key)
	}

	return year, month, nil
}

// SeasonOf returns the label of the season containing t, given the season
// start as "MM-DD". A season starting 2024-08-01 is labelled "2024/25".
func SeasonOf(t time.Time, start string) (string, error) {
	s, err := time.Parse("01-02", start)
	if err != nil {
		return "", fmt.Errorf("parsing season start %q: %w", start, err)
	}
	y := t.Year()
	begin := time.Date(y, s.Month(), s.Day(), 0, 0, 0, 0, t.Location())
	if t.Before(begin) {
		y--
	}
	return fmt.Sprintf("%04d/%02d", y, (y+1)%100), nil
}
