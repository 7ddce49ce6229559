package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether the request origin matches any configured
// pattern. Patterns are compared against "host[:port]", case-insensitively,
// and may use a "*." subdomain wildcard or a ":*" port wildcard.
func originAllowed(patterns []string, origin string) bool {
	host := strings.ToLower(originHost(origin))
	for _, pattern := range patterns {
		if matchesOrigin(strings.ToLower(pattern), host) {
			return true
		}
	}
	return false
}

func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

func matchesOrigin(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
