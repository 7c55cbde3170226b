package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,16}$`)
	hexPattern      = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
)

// IsValidUsername reports whether a string looks like a Minecraft username.
// Mojang allows 1-16 characters of [a-zA-Z0-9_]; anything longer than 16 is
// either a UUID or garbage.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidUUID reports whether a string is an undashed 32-hex player UUID,
// the form used as a storage key throughout the tracking data.
func IsValidUUID(id string) bool {
	return hexPattern.MatchString(id)
}

// NormalizeUUID accepts a player UUID with or without dashes and returns
// the lowercase undashed 32-hex storage form. Returns ok=false for input
// that is not a UUID at all.
func NormalizeUUID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return strings.ReplaceAll(parsed.String(), "-", ""), true
}

// SanitizeString trims whitespace and strips control characters from
// user-supplied input before it reaches storage or embeds.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
