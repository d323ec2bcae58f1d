// Package slug turns human readable names into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidRunRegex = regexp.MustCompile(`[^a-z0-9_-]+`)
	validRegex      = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Make lower-cases s, drops apostrophes and collapses every run of characters
// outside [a-z0-9_-] into a single underscore. Make is idempotent.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("'", "", "’", "").Replace(s)
	s = invalidRunRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Valid reports whether s is already in slug form.
func Valid(s string) bool {
	return validRegex.MatchString(s)
}
