package models

import "strings"

// NormalizeCompanyNumber trims whitespace and uppercases an identifier.
// Idempotent: normalizing twice yields the same result.
func NormalizeCompanyNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidCompanyNumber reports whether a normalized identifier is an acceptable
// registry number: exactly 8 characters, or a jurisdictional prefix of two
// alphabetic characters followed by digits (SC123456, NI000123, ...).
// Boundary-owned: handlers reject invalid identifiers before the traversal
// engine runs.
func ValidCompanyNumber(s string) bool {
	s = NormalizeCompanyNumber(s)
	if s == "" {
		return false
	}
	if len(s) == 8 {
		return true
	}
	if len(s) > 2 && isAlpha(s[:2]) && isDigits(s[2:]) {
		return true
	}
	return false
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return len(s) > 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
