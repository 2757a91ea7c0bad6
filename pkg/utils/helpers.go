package utils

import (
	"strconv"
	"strings"
)

// Pluralize returns the noun with its verb for a count, e.g. "line was" or "lines were"
func Pluralize(n int, noun string) string {
	if n == 1 {
		return noun + " was"
	}
	return noun + "s were"
}

// IsDecimal reports whether s is a non-empty run of ASCII digits
func IsDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DigitsOnly drops every rune of s that is not an ASCII digit
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatInts converts a row of integers into CSV-ready strings
func FormatInts(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
