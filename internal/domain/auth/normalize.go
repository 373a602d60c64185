package auth

import "strings"

// normalizeEmail lowercases and trims an email so lookups are consistent
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
