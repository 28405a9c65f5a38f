package common

import (
	"strconv"
	"strings"
)

// ParsePositiveInt parses positive integers with fallback.
func ParsePositiveInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback, false
	}
	return parsed, true
}

// ParseNonNegativeInt parses zero-or-positive integers with fallback, used
// for skip offsets.
func ParseNonNegativeInt(value string, fallback int) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback, false
	}
	return parsed, true
}

// ParseListWindow parses skip/limit query values, applying the default and
// hard cap used by every listing endpoint.
func ParseListWindow(skipValue, limitValue string) (skip, limit int) {
	skip, _ = ParseNonNegativeInt(skipValue, 0)
	limit, _ = ParsePositiveInt(limitValue, DefaultListLimit)
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return skip, limit
}
