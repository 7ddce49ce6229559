// Package commentary classifies a source text into one of four canonical
// commentary sets. Pure and deterministic: no I/O, no state.
package commentary

import "strings"

// Config is the classification input tuple.
type Config struct {
	TopicSelected string
	SourceTitle   string
	SourceRange   string
	Excerpt       string
}

// MaxSuggestions caps the returned commentator list. The result length is
// always 0 or exactly MaxSuggestions.
const MaxSuggestions = 2

// Select returns the first two commentators of the matched bucket, or an
// empty list when no bucket applies.
//
// Spiritual-growth topics never get commentary suggestions, regardless of
// which source-text identifiers appear in the input.
func Select(cfg Config) []string {
	topic := strings.ToLower(strings.TrimSpace(cfg.TopicSelected))
	if strings.Contains(topic, "spiritual") || strings.Contains(topic, "growth") {
		return []string{}
	}

	haystack := strings.ToLower(cfg.SourceTitle + " " + cfg.SourceRange + " " + cfg.Excerpt)

	if b, ok := classify(haystack); ok {
		return pick(b)
	}

	if b, ok := classifyTopic(topic); ok {
		return pick(b)
	}

	return []string{}
}

// classify scans the keyword lists in priority order (rambam > shulchan_aruch
// > talmud > tanach), then makes a final unordered pass over all buckets.
func classify(haystack string) (Bucket, bool) {
	for _, b := range bucketPriority {
		if containsAny(haystack, keywords[b]) {
			return b, true
		}
	}
	for b, words := range keywords {
		if containsAny(haystack, words) {
			return b, true
		}
	}
	return "", false
}

// classifyTopic falls back to the requested topic string itself.
func classifyTopic(topic string) (Bucket, bool) {
	switch {
	case strings.Contains(topic, "talmud"):
		return BucketTalmud, true
	case strings.Contains(topic, "halacha"):
		return BucketShulchanAruch, true
	case strings.Contains(topic, "tanach"), strings.Contains(topic, "tanakh"):
		return BucketTanach, true
	}
	return "", false
}

func pick(b Bucket) []string {
	list := commentators[b]
	if len(list) > MaxSuggestions {
		list = list[:MaxSuggestions]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
