package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int, falling back to defaultValue when empty, invalid or below min
func ParseInt(value string, defaultValue, min int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < min {
		return defaultValue
	}

	return result
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
