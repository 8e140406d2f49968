package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ClampInt parses value like ParseInt and bounds the result to [min, max].
func ClampInt(value string, defaultValue, min, max int) int {
	n := ParseInt(value, defaultValue)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// ParseBoolFilter reads "true"/"false" query values; anything present but
// not "true" counts as false, absent returns nil.
func ParseBoolFilter(value string, present bool) *bool {
	if !present {
		return nil
	}
	b := strings.EqualFold(value, "true")
	return &b
}

// ParseDate parses a strict YYYY-MM-DD date.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseClock parses HH:MM or HH:MM:SS.
func ParseClock(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", time.TimeOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
