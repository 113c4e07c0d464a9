package validators

import "strings"

// TrimmedString collapses surrounding whitespace; used before persisting any
// free-text input.
func TrimmedString(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeStatement produces the canonical form used by the duplicate guard:
// lowercased, trimmed, with internal whitespace runs collapsed to one space.
func NormalizeStatement(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
