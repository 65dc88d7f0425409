package keys

import "strings"

// ProfileKeyFromName produces the canonical profile key for a trainer name:
// trimmed, lower-cased, spaces replaced with underscores. Suitable for
// stable DB lookups regardless of display casing.
func ProfileKeyFromName(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
