package webhookparser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/limmud-app/core/internal/modules/commentary"
)

// ErrUnusable reports a response with no recoverable title, range or excerpt.
// Callers should discard the response rather than persist a husk of a source.
var ErrUnusable = errors.New("webhookparser: response carries no usable source content")

const (
	placeholderTitle   = "Torah Source"
	placeholderTitleHe = "מקור תורני"
)

// Input is a raw model response together with the request that produced it.
type Input struct {
	RawText       string
	Language      string
	Topic         string
	RequestedTime int
}

// ParsedSource is the structured result of parsing one model response.
// All display fields are sanitized; SefariaLink is either canonical or empty.
type ParsedSource struct {
	Title              string
	TitleHe            string
	SourceRange        string
	TextExcerpt        string
	TextExcerptHe      string
	ReflectionPrompt   string
	ReflectionPromptHe string
	Commentaries       []string
	EstimatedTime      int
	SefariaLink        string
}

// Parse extracts a structured source from a free-form model response.
// Every field runs its ordered extraction attempts independently, so a
// response that mangles one section still yields the rest.
func Parse(in Input) (*ParsedSource, error) {
	text := in.RawText

	link := extractLink(text)
	rng := extractRange(text, in.Language, link)

	titleEn, explicitEn := tryAll(text, titleEnAttempts...)
	titleHe, explicitHe := tryAll(text, titleHeAttempts...)

	excerptEn, _ := tryAll(text, excerptEnAttempts...)
	excerptHe, _ := tryAll(text, excerptHeAttempts...)
	if excerptEn == "" && excerptHe == "" {
		if guess := fallbackExcerpt(text); guess != "" {
			if in.Language == "he" {
				excerptHe = guess
			} else {
				excerptEn = guess
			}
		}
	}
	excerptEn = sanitize(excerptEn)
	excerptHe = sanitize(excerptHe)

	if !explicitEn && !explicitHe && rng == "" && excerptEn == "" && excerptHe == "" {
		return nil, ErrUnusable
	}

	src := &ParsedSource{
		Title:         sanitize(titleEn),
		TitleHe:       sanitize(titleHe),
		SourceRange:   rng,
		TextExcerpt:   excerptEn,
		TextExcerptHe: excerptHe,
		SefariaLink:   link,
	}

	if src.Title == "" {
		if rng != "" {
			src.Title = rng
		} else {
			src.Title = placeholderTitle
		}
	}
	if src.TitleHe == "" {
		if rng != "" {
			src.TitleHe = rng
		} else {
			src.TitleHe = placeholderTitleHe
		}
	}

	promptEn, _ := tryAll(text, reflectionEnAttempts...)
	promptHe, _ := tryAll(text, reflectionHeAttempts...)
	if promptEn == "" && promptHe == "" {
		if q := fallbackQuestion(text); q != "" {
			if in.Language == "he" {
				promptHe = q
			} else {
				promptEn = q
			}
		}
	}
	src.ReflectionPrompt = sanitize(promptEn)
	src.ReflectionPromptHe = sanitize(promptHe)

	src.EstimatedTime = extractEstimatedTime(text, in.RequestedTime)
	src.Commentaries = extractCommentaries(text, in.Topic, src)

	return src, nil
}

// extractRange resolves the source range with a fixed precedence: an explicit
// labeled range beats a synthesized From/To pair, which beats a guess derived
// from the link path.
func extractRange(text, language, link string) string {
	return firstOf(
		func() string {
			if v, ok := rx(reRangeLabeled, 1)(text); ok {
				return sanitize(v)
			}
			return ""
		},
		func() string { return synthesizeRange(text, language) },
		func() string { return rangeFromLink(link) },
	)
}

// synthesizeRange joins separate From and To lines into a single range.
// Both endpoints must be present.
func synthesizeRange(text, language string) string {
	from, okFrom := rx(reFrom, 1)(text)
	to, okTo := rx(reTo, 1)(text)
	if !okFrom || !okTo {
		return ""
	}
	from = sanitize(from)
	to = sanitize(to)
	if from == "" || to == "" {
		return ""
	}
	connector := " to "
	if language == "he" {
		connector = " עד "
	}
	return from + connector + to
}

func extractEstimatedTime(text string, requested int) int {
	if v, ok := rx(reEstimatedTime, 1)(text); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return requested
}

// extractCommentaries parses a labeled commentary list; absent one it falls
// back to keyword-based suggestions from the parsed source itself.
func extractCommentaries(text, topic string, src *ParsedSource) []string {
	if block, ok := rx(reCommentaries, 1)(text); ok {
		if names := splitCommentaries(block); len(names) > 0 {
			return names
		}
	}
	excerpt := src.TextExcerpt
	if excerpt == "" {
		excerpt = src.TextExcerptHe
	}
	return commentary.Select(commentary.Config{
		TopicSelected: topic,
		SourceTitle:   src.Title,
		SourceRange:   src.SourceRange,
		Excerpt:       excerpt,
	})
}

func splitCommentaries(block string) []string {
	var names []string
	for _, part := range reCommentarySplit.Split(block, -1) {
		part = reListPrefix.ReplaceAllString(part, "")
		part = reEmphasis.ReplaceAllString(part, "")
		part = strings.TrimSpace(part)
		if len([]rune(part)) < 3 {
			continue
		}
		names = append(names, part)
		if len(names) == commentary.MaxSuggestions {
			break
		}
	}
	return names
}

// fallbackExcerpt picks the first substantial paragraph that is not label
// metadata, used when no excerpt section is labeled at all.
func fallbackExcerpt(text string) string {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || looksLikeMetadata(para) {
			continue
		}
		if len([]rune(para)) >= 40 {
			return para
		}
	}
	return ""
}

// fallbackQuestion returns the first line ending in a question mark.
func fallbackQuestion(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, "?") && !looksLikeMetadata(line) {
			return line
		}
	}
	return ""
}

var reAnyLabel = anyLabelRe()

func looksLikeMetadata(s string) bool {
	first := strings.SplitN(s, "\n", 2)[0]
	return reAnyLabel.MatchString(first) || reBareURL.MatchString(s)
}

func firstOf(fns ...func() string) string {
	for _, fn := range fns {
		if v := fn(); v != "" {
			return v
		}
	}
	return ""
}
