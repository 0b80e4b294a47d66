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

// ParseDate validates a calendar date in YYYY-MM-DD form
func ParseDate(value string) (string, bool) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a stable catalog id,
// e.g. "Es Kopi Susu" -> "es-kopi-susu"
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
