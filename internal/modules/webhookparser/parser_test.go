package webhookparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const richResponse = `**English**: The Power of Teshuvah
**Hebrew**: כוח התשובה
**Source Range**: Rambam, Hilchot Teshuvah 2:1-4
**Text**: A person who transgressed and then distanced himself from the sin,
resolving in his heart never to return to it, has achieved complete repentance.
**טקסט**: מי שעבר עבירה והתרחק ממנה וגמר בליבו שלא ישוב אליה עוד, הרי זו תשובה גמורה.
**Reflection Prompt**: What does complete repentance look like in your own life?
**שאלה להרהור**: כיצד נראית תשובה שלמה בחייך?
**Suggested Commentaries**:
1. Kesef Mishneh
2. Lechem Mishneh
**Estimated Time**: 15
**Working Link**: https://www.sefaria.org/Mishneh_Torah%2C_Repentance.2.1-2.4
`

func TestParseRichResponse(t *testing.T) {
	src, err := Parse(Input{RawText: richResponse, Language: "en", Topic: "Teshuvah", RequestedTime: 20})
	require.NoError(t, err)

	assert.Equal(t, "The Power of Teshuvah", src.Title)
	assert.Equal(t, "כוח התשובה", src.TitleHe)
	assert.Equal(t, "Rambam, Hilchot Teshuvah 2:1-4", src.SourceRange)
	assert.Contains(t, src.TextExcerpt, "complete repentance")
	assert.Contains(t, src.TextExcerptHe, "תשובה גמורה")
	assert.Equal(t, "What does complete repentance look like in your own life?", src.ReflectionPrompt)
	assert.Equal(t, "כיצד נראית תשובה שלמה בחייך?", src.ReflectionPromptHe)
	assert.Equal(t, []string{"Kesef Mishneh", "Lechem Mishneh"}, src.Commentaries)
	assert.Equal(t, 15, src.EstimatedTime)
	assert.Equal(t, "https://www.sefaria.org/Mishneh_Torah,_Repentance.2.1-2.4", src.SefariaLink)
}

func TestLabeledRangeBeatsFromTo(t *testing.T) {
	text := `Source Range: Genesis 1:1-2
From: Genesis 1:1
To: Genesis 1:2
Text: In the beginning God created the heaven and the earth, and the earth was without form.
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Genesis 1:1-2", src.SourceRange)
}

func TestFromToSynthesis(t *testing.T) {
	text := `From: Genesis 1:1
To: Genesis 1:2
Text: In the beginning God created the heaven and the earth, and the earth was without form.
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Genesis 1:1 to Genesis 1:2", src.SourceRange)
}

func TestFromToSynthesisHebrewConnector(t *testing.T) {
	text := `מ: בראשית א:א
עד: בראשית א:ב
טקסט: בראשית ברא אלוהים את השמיים ואת הארץ והארץ הייתה תוהו ובוהו וחושך על פני תהום.
`
	src, err := Parse(Input{RawText: text, Language: "he"})
	require.NoError(t, err)
	assert.Equal(t, "בראשית א:א עד בראשית א:ב", src.SourceRange)
}

func TestRangeDerivedFromLink(t *testing.T) {
	text := `Here is a source for your study session.
https://www.sefaria.org/Genesis.1.1-2.3

In the beginning God created the heaven and the earth, and the earth was without form and void.
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Genesis 1:1-2:3", src.SourceRange)
	assert.Equal(t, "https://www.sefaria.org/Genesis.1.1-2.3", src.SefariaLink)
}

func TestFromToIncompletePairIgnored(t *testing.T) {
	text := `From: Genesis 1:1
Text: In the beginning God created the heaven and the earth, and the earth was without form.
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.Empty(t, src.SourceRange)
}

func TestFallbackExcerptSkipsParagraphWithBuriedLink(t *testing.T) {
	text := `Here is a source for your study session today,
see https://www.sefaria.org/Genesis.1.1-2.3 for the full text online.

In the beginning God created the heaven and the earth, and the earth was without form and void.
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src.TextExcerpt, "In the beginning"))
}

func TestTitleFallsBackToRangeThenPlaceholder(t *testing.T) {
	withRange, err := Parse(Input{RawText: "Source Range: Exodus 20:1-14\n", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Exodus 20:1-14", withRange.Title)
	assert.Equal(t, "Exodus 20:1-14", withRange.TitleHe)

	noRange, err := Parse(Input{
		RawText:  "Love your neighbor as yourself, for this is a great principle of the Torah and its foundation.",
		Language: "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "Torah Source", noRange.Title)
	assert.Equal(t, "מקור תורני", noRange.TitleHe)
}

func TestUnusableResponse(t *testing.T) {
	_, err := Parse(Input{RawText: "Sorry, I cannot help with that.", Language: "en"})
	assert.ErrorIs(t, err, ErrUnusable)

	_, err = Parse(Input{RawText: "", Language: "en"})
	assert.ErrorIs(t, err, ErrUnusable)
}

func TestSanitizeStripsLinksAndMarkup(t *testing.T) {
	text := `English: Shabbat Candles
Text: See [Shulchan Aruch](https://www.sefaria.org/Shulchan_Arukh) for the <b>full</b> ruling.
Candle lighting ushers in the sanctity of Shabbat for the entire household.
Link: https://www.sefaria.org/Shulchan_Arukh%2C_Orach_Chayim.263
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.NotContains(t, src.TextExcerpt, "http")
	assert.NotContains(t, src.TextExcerpt, "<b>")
	assert.NotContains(t, src.TextExcerpt, "](")
	assert.Contains(t, src.TextExcerpt, "Shulchan Aruch")
	assert.Contains(t, src.TextExcerpt, "sanctity of Shabbat")
}

func TestSanitizeIdempotent(t *testing.T) {
	dirty := "See [here](https://x.org) and https://y.org for <i>more</i>.\n\n\n\nDone."
	once := sanitize(dirty)
	assert.Equal(t, once, sanitize(once))
}

func TestEstimatedTimeFallsBackToRequest(t *testing.T) {
	src, err := Parse(Input{
		RawText:       "Source Range: Psalms 23\nText: The Lord is my shepherd, I shall not want; He makes me lie down in green pastures.",
		Language:      "en",
		RequestedTime: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, src.EstimatedTime)
}

func TestCommentaryFallbackFromTopic(t *testing.T) {
	src, err := Parse(Input{
		RawText:  "Source Range: Orach Chayim 263\nText: One must be scrupulous to light candles before the onset of the day of rest.",
		Language: "en",
		Topic:    "Halacha",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mishnah Berurah", "Shach"}, src.Commentaries)
}

func TestReflectionFallbackFirstQuestionLine(t *testing.T) {
	text := `Source Range: Pirkei Avot 1:14
Text: If I am not for myself, who will be for me, and if I am only for myself, what am I?

Who are you responsible for beyond yourself?
`
	src, err := Parse(Input{RawText: text, Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Who are you responsible for beyond yourself?", src.ReflectionPrompt)
}

func TestNormalizeLink(t *testing.T) {
	assert.Equal(t, "https://www.sefaria.org/Genesis.1",
		normalizeLink("http://sefaria.org.il/texts/Genesis.1"))
	assert.Equal(t, "https://www.sefaria.org/Shulchan_Arukh,_Orach_Chayim.263",
		normalizeLink("https://www.sefaria.org/Shulchan_Arukh%2C_Orach_Chayim.263"))
	assert.Empty(t, normalizeLink("https://example.com/Genesis.1"))
	assert.Empty(t, normalizeLink("not a url"))
}

func TestRangeFromLinkShapes(t *testing.T) {
	assert.Equal(t, "Genesis 1:1-2:3", rangeFromLink("https://www.sefaria.org/Genesis.1.1-2.3"))
	assert.Equal(t, "Berakhot 2a", rangeFromLink("https://www.sefaria.org/Berakhot.2a"))
	assert.Equal(t, "Mishneh Torah, Repentance 2:1-2:4",
		rangeFromLink("https://www.sefaria.org/Mishneh_Torah,_Repentance.2.1-2.4"))
	assert.Empty(t, rangeFromLink(""))
}
