package webhookparser

import (
	"net/url"
	"strings"

	"github.com/limmud-app/core/internal/modules/recommend"
)

// extractLink pulls the first plausible Sefaria link out of the raw text.
// Markdown links are preferred over a labeled link line, which in turn beats
// a bare URL anywhere in the body.
func extractLink(text string) string {
	raw, ok := tryAll(text,
		rx(reMarkdownLink, 1),
		rx(reWorkingLink, 1),
		rx(reBareURL, 0),
	)
	if !ok {
		return ""
	}
	return normalizeLink(raw)
}

// normalizeLink repairs the link variants the upstream model habitually
// produces and rejects anything not on the canonical domain. It returns ""
// when the link cannot be salvaged.
func normalizeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimRight(raw, ".,;>")
	raw = strings.ReplaceAll(raw, "%2C", ",")
	raw = strings.ReplaceAll(raw, "%2c", ",")

	// A recurring hallucination appends .il to the domain.
	raw = strings.Replace(raw, "sefaria.org.il", "sefaria.org", 1)

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != recommend.CanonicalDomain {
		return ""
	}

	// Old-style /texts/ paths resolve to the same reference without it.
	u.Path = strings.Replace(u.Path, "/texts/", "/", 1)
	u.Scheme = "https"
	u.Host = "www." + recommend.CanonicalDomain
	u.Fragment = ""
	return u.String()
}

// rangeFromLink derives a human-readable source range from a canonical link
// path, e.g. /Genesis.1.1-2.3 becomes "Genesis 1:1-2:3". Returns "" when the
// path carries no reference.
func rangeFromLink(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	path := strings.Trim(u.EscapedPath(), "/")
	if path == "" {
		return ""
	}
	segs := strings.Split(path, "/")
	ref := segs[len(segs)-1]
	if dec, err := url.PathUnescape(ref); err == nil {
		ref = dec
	}

	parts := strings.Split(ref, ".")
	book := strings.ReplaceAll(parts[0], "_", " ")
	if book == "" {
		return ""
	}
	if len(parts) == 1 {
		return book
	}
	return book + " " + strings.Join(parts[1:], ":")
}
