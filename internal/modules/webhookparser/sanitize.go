package webhookparser

import (
	"regexp"
	"strings"
)

var (
	reInlineMDLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reLinkMetaLine = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:Working Link|Link|URL|קישור)\*{0,2}[ \t]*:.*$`)
	reHTMLTag      = regexp.MustCompile(`<[^>]*>`)
	reManySpaces   = regexp.MustCompile(`[ \t]{2,}`)
	reManyBlank    = regexp.MustCompile(`\n{3,}`)
)

// sanitize strips link-metadata lines, markdown link syntax, bare URLs and
// HTML tags from a display field, then normalizes whitespace. Repeated calls
// on already-clean text leave it unchanged.
func sanitize(s string) string {
	s = reLinkMetaLine.ReplaceAllString(s, "")
	s = reInlineMDLink.ReplaceAllString(s, "$1")
	s = reBareURL.ReplaceAllString(s, "")
	s = reHTMLTag.ReplaceAllString(s, "")
	s = reManySpaces.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = reManyBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
