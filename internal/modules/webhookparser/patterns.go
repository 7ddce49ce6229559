package webhookparser

import "regexp"

// attempt is a single extraction strategy tried against the raw text.
// Attempts run in declaration order; the first hit wins and later strategies
// never run. Keeping the fallback policy in these slices (rather than inline
// branching) keeps each field independently testable.
type attempt func(text string) (string, bool)

// rx builds an attempt from a regexp, returning the given capture group.
func rx(re *regexp.Regexp, group int) attempt {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) <= group || m[group] == "" {
			return "", false
		}
		return m[group], true
	}
}

// tryAll runs attempts in order and returns the first match.
func tryAll(text string, attempts ...attempt) (string, bool) {
	for _, a := range attempts {
		if v, ok := a(text); ok {
			return v, true
		}
	}
	return "", false
}

// sectionBoundary terminates multi-line sections: any known label followed by
// a colon, or end of input. Labels may carry bold-markdown markers.
const sectionBoundary = `(?:\n[ \t]*\*{0,2}(?:English|Hebrew|אנגלית|עברית|Source Range|טווח המקור|From|To|מ|עד|Source Text|Text Excerpt|Text|Excerpt|טקסט|קטע|מקור|Reflection Prompt|Reflection|Question|Prompt|שאלה להרהור|שאלה|הרהור|Suggested Commentaries|Commentaries|Commentary|מפרשים|פרשנים|Estimated Time|Time|זמן משוער|זמן|Working Link|Link|URL|קישור)\*{0,2}[ \t]*:|\z)`

var (
	// Single-line labeled fields.
	reTitleEn = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:English|אנגלית)\*{0,2}[ \t]*:[ \t]*(.+)$`)
	reTitleHe = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:Hebrew|עברית)\*{0,2}[ \t]*:[ \t]*(.+)$`)

	reRangeLabeled = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:Source Range|טווח המקור)\*{0,2}[ \t]*:[ \t]*(.+)$`)
	reFrom         = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:From|מ)\*{0,2}[ \t]*:[ \t]*(.+)$`)
	reTo           = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:To|עד)\*{0,2}[ \t]*:[ \t]*(.+)$`)

	reEstimatedTime = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:Estimated Time|Time|זמן משוער|זמן)\*{0,2}[ \t]*:[ \t]*(\d+)`)

	// Multi-line sections, non-greedy and bounded by the next known label.
	reExcerptEn    = regexp.MustCompile(`(?is)(?:^|\n)[ \t]*\*{0,2}(?:Source Text|Text Excerpt|Excerpt|Text)\*{0,2}[ \t]*:[ \t]*(.+?)` + sectionBoundary)
	reExcerptHe    = regexp.MustCompile(`(?is)(?:^|\n)[ \t]*\*{0,2}(?:טקסט|קטע|מקור)\*{0,2}[ \t]*:[ \t]*(.+?)` + sectionBoundary)
	reReflectionEn = regexp.MustCompile(`(?is)(?:^|\n)[ \t]*\*{0,2}(?:Reflection Prompt|Reflection|Question|Prompt)\*{0,2}[ \t]*:[ \t]*(.+?)` + sectionBoundary)
	reReflectionHe = regexp.MustCompile(`(?is)(?:^|\n)[ \t]*\*{0,2}(?:שאלה להרהור|שאלה|הרהור)\*{0,2}[ \t]*:[ \t]*(.+?)` + sectionBoundary)
	reCommentaries = regexp.MustCompile(`(?is)(?:^|\n)[ \t]*\*{0,2}(?:Suggested Commentaries|Commentaries|Commentary|מפרשים|פרשנים)\*{0,2}[ \t]*:[ \t]*(.+?)` + sectionBoundary)

	// Links.
	reMarkdownLink = regexp.MustCompile(`\[[^\]]*\]\((https?://[^)\s]+)\)`)
	reWorkingLink  = regexp.MustCompile(`(?mi)^[ \t]*\*{0,2}(?:Working Link|Link|URL|קישור)\*{0,2}[ \t]*:[ \t]*<?(https?://\S+?)>?[ \t]*$`)
	reBareURL      = regexp.MustCompile(`https?://[^\s)\]]+`)

	// Commentary list splitting and cleanup.
	reCommentarySplit = regexp.MustCompile(`[\n;•]+|[ \t]+[-–—][ \t]+`)
	reListPrefix      = regexp.MustCompile(`^[ \t]*(?:[-–—*•]|\d+[.)])[ \t]*`)
	reEmphasis        = regexp.MustCompile(`[*_]{1,3}`)
)

// anyLabelRe matches a line beginning with any known section label, used to
// keep heuristic fallbacks away from label metadata.
func anyLabelRe() *regexp.Regexp {
	return regexp.MustCompile(`(?i)^[ \t]*\*{0,2}(?:English|Hebrew|אנגלית|עברית|Source Range|טווח המקור|From|To|מ|עד|Source Text|Text Excerpt|Text|Excerpt|טקסט|קטע|מקור|Reflection Prompt|Reflection|Question|Prompt|שאלה להרהור|שאלה|הרהור|Suggested Commentaries|Commentaries|Commentary|מפרשים|פרשנים|Estimated Time|Time|זמן משוער|זמן|Working Link|Link|URL|קישור)\*{0,2}[ \t]*:`)
}

// titleAttempts* run per language; the range fallback and placeholder are
// applied by the parser after both label passes fail.
var (
	titleEnAttempts = []attempt{rx(reTitleEn, 1)}
	titleHeAttempts = []attempt{rx(reTitleHe, 1)}

	excerptEnAttempts    = []attempt{rx(reExcerptEn, 1)}
	excerptHeAttempts    = []attempt{rx(reExcerptHe, 1)}
	reflectionEnAttempts = []attempt{rx(reReflectionEn, 1)}
	reflectionHeAttempts = []attempt{rx(reReflectionHe, 1)}
)
