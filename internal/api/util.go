package api

import (
	"regexp"
	"strings"
)

var battleIDRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

// normalizeBattleID uppercases and trims a battle ID path parameter so
// lookups are case-insensitive.
func normalizeBattleID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
