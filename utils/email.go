package utils

import "strings"

// NormalizeEmail is the form emails are stored and compared in. Unique
// indexes on email are case-sensitive, so every key goes through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
