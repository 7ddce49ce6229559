// Package normalize provides topic-key normalization shared by the
// recommendation and personalization code.
package normalize

import (
	"strings"
	"unicode"
)

// Topic lowercases, trims, and strips combining marks (Hebrew niqqud and
// cantillation, Latin diacritics) so topic keys compare stably.
func Topic(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// TopicsMatch reports whether two topic keys refer to the same topic:
// exact match or substring containment in either direction.
func TopicsMatch(a, b string) bool {
	na, nb := Topic(a), Topic(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
