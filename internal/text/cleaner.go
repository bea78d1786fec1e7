// Package text implements the English normalization stage of the
// synthesis pipeline: transliteration to ASCII, number and currency
// expansion, abbreviation expansion, and whitespace cleanup. The output
// feeds the phonemizer, so every transformation here is about producing
// text the pronunciation lexicon can resolve.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Regex patterns for number and currency normalization.
const (
	commaNumberRegexPattern = `[0-9][0-9,]+[0-9]`
	decimalRegexPattern     = `[0-9]+\.[0-9]+`
	poundsRegexPattern      = `£([0-9,]*[0-9]+)`
	dollarsRegexPattern     = `\$([0-9.,]*[0-9]+)`
	ordinalRegexPattern     = `[0-9]+(?:st|nd|rd|th)`
	cardinalRegexPattern    = `[0-9]+`
	whitespaceRegexPattern  = `\s+`
)

// abbreviation pairs a compiled pattern with its spoken form.
type abbreviation struct {
	pattern     *regexp.Regexp
	replacement string
}

// abbreviationTable lists the spoken forms of common title and suffix
// abbreviations. The trailing period is part of the match.
var abbreviationTable = []struct {
	short string
	full  string
}{
	{short: "mrs", full: "misess"},
	{short: "mr", full: "mister"},
	{short: "dr", full: "doctor"},
	{short: "st", full: "saint"},
	{short: "co", full: "company"},
	{short: "jr", full: "junior"},
	{short: "maj", full: "major"},
	{short: "gen", full: "general"},
	{short: "drs", full: "doctors"},
	{short: "rev", full: "reverend"},
	{short: "lt", full: "lieutenant"},
	{short: "hon", full: "honorable"},
	{short: "sgt", full: "sergeant"},
	{short: "capt", full: "captain"},
	{short: "esq", full: "esquire"},
	{short: "ltd", full: "limited"},
	{short: "col", full: "colonel"},
	{short: "ft", full: "fort"},
}

// Cleaner normalizes raw English text for phonemization. All patterns
// are compiled once at construction.
type Cleaner struct {
	commaNumberPattern *regexp.Regexp
	decimalPattern     *regexp.Regexp
	poundsPattern      *regexp.Regexp
	dollarsPattern     *regexp.Regexp
	ordinalPattern     *regexp.Regexp
	cardinalPattern    *regexp.Regexp
	whitespacePattern  *regexp.Regexp
	abbreviations      []abbreviation
	transliterator     *strings.Replacer
}

// NewCleaner creates a text cleaner with compiled patterns and replacers.
func NewCleaner() *Cleaner {
	abbreviations := make([]abbreviation, 0, len(abbreviationTable))
	for _, entry := range abbreviationTable {
		abbreviations = append(abbreviations, abbreviation{
			pattern:     regexp.MustCompile(`(?i)\b` + entry.short + `\.`),
			replacement: entry.full,
		})
	}

	return &Cleaner{
		commaNumberPattern: regexp.MustCompile(commaNumberRegexPattern),
		decimalPattern:     regexp.MustCompile(decimalRegexPattern),
		poundsPattern:      regexp.MustCompile(poundsRegexPattern),
		dollarsPattern:     regexp.MustCompile(dollarsRegexPattern),
		ordinalPattern:     regexp.MustCompile(ordinalRegexPattern),
		cardinalPattern:    regexp.MustCompile(cardinalRegexPattern),
		whitespacePattern:  regexp.MustCompile(whitespaceRegexPattern),
		abbreviations:      abbreviations,
		transliterator:     newTransliterator(),
	}
}

// Clean runs the full normalization pipeline over the input text.
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return text
	}

	normalized := c.transliterator.Replace(text)
	normalized = c.NormalizeNumbers(normalized)
	normalized = c.expandAbbreviations(normalized)
	normalized = c.collapseWhitespace(normalized)

	return normalized
}

// NormalizeNumbers rewrites numeric forms into spoken English. Stage
// order matters: grouped digits lose their commas first so the currency
// and cardinal stages see plain digit runs, and currency and ordinals
// are handled before bare cardinals.
func (c *Cleaner) NormalizeNumbers(text string) string {
	text = c.commaNumberPattern.ReplaceAllStringFunc(text, removeDigitCommas)
	text = c.poundsPattern.ReplaceAllString(text, "$1 pounds")
	text = c.dollarsPattern.ReplaceAllStringFunc(text, expandDollarAmount)
	text = c.decimalPattern.ReplaceAllStringFunc(text, expandDecimalPoint)
	text = c.ordinalPattern.ReplaceAllStringFunc(text, expandOrdinal)
	text = c.cardinalPattern.ReplaceAllStringFunc(text, expandCardinal)

	return text
}

// expandAbbreviations converts title abbreviations to their full form.
func (c *Cleaner) expandAbbreviations(text string) string {
	for _, entry := range c.abbreviations {
		text = entry.pattern.ReplaceAllString(text, entry.replacement)
	}

	return text
}

// collapseWhitespace folds all whitespace runs into single spaces.
func (c *Cleaner) collapseWhitespace(text string) string {
	return strings.TrimSpace(c.whitespacePattern.ReplaceAllString(text, " "))
}

// EnsureSentenceEnd guarantees the text ends with sentence-final
// punctuation. The acoustic model relies on a terminal ".", "?" or "!"
// to produce a stable end-of-utterance.
func EnsureSentenceEnd(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	lastRune, _ := utf8.DecodeLastRuneInString(trimmed)
	switch lastRune {
	case '.', '?', '!':
		return trimmed
	default:
		return trimmed + "."
	}
}

// newTransliterator builds the ASCII folding replacer. This covers the
// characters that actually show up in English prose: typographic
// punctuation and the common accented latin letters.
func newTransliterator() *strings.Replacer {
	return strings.NewReplacer(
		"—", "-", "–", "-", "‒", "-",
		"…", "...",
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"á", "a", "à", "a", "â", "a", "ä", "a", "å", "a", "ã", "a",
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"í", "i", "ì", "i", "î", "i", "ï", "i",
		"ó", "o", "ò", "o", "ô", "o", "ö", "o", "õ", "o", "ø", "o",
		"ú", "u", "ù", "u", "û", "u", "ü", "u",
		"ñ", "n", "ç", "c", "ß", "ss", "æ", "ae", "œ", "oe",
		"Á", "A", "À", "A", "Â", "A", "Ä", "A", "Å", "A",
		"É", "E", "È", "E", "Ê", "E", "Ë", "E",
		"Í", "I", "Ì", "I", "Î", "I", "Ï", "I",
		"Ó", "O", "Ò", "O", "Ô", "O", "Ö", "O", "Ø", "O",
		"Ú", "U", "Ù", "U", "Û", "U", "Ü", "U",
		"Ñ", "N", "Ç", "C",
	)
}

// IsSpoken reports whether the text contains at least one letter or
// digit after normalization; purely punctuational input produces no
// audio and is rejected upstream.
func IsSpoken(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}
