package phoneme

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Lexicon file format constants.
const (
	lexiconCommentPrefix = "#"
	lexiconFieldCount    = 2
)

// Static errors.
var (
	// ErrLexiconEmpty indicates the lexicon file contained no usable entries.
	ErrLexiconEmpty = errors.New("lexicon contains no entries")
	// ErrWordNotFound indicates a word has no lexicon entry.
	ErrWordNotFound = errors.New("word not found in lexicon")
)

// Phonemizer converts cleaned English text into IPA phoneme strings using
// a pronunciation lexicon shipped alongside the model weights. Each
// lexicon line holds a lowercase word and its IPA transcription separated
// by a tab. Lines starting with '#' are comments.
type Phonemizer struct {
	entries map[string]string
}

// LoadLexicon reads a pronunciation lexicon from disk.
func LoadLexicon(path string) (*Phonemizer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon %q: %w", path, err)
	}

	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			// Read-only handle; nothing actionable beyond noting it.
			_ = closeErr
		}
	}()

	entries := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		word, ipa, valid := parseLexiconLine(scanner.Text())
		if valid {
			entries[word] = ipa
		}
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		return nil, fmt.Errorf("failed to read lexicon %q: %w", path, scanErr)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLexiconEmpty, path)
	}

	return &Phonemizer{entries: entries}, nil
}

// NewPhonemizer builds a phonemizer from an in-memory entry map.
// Primarily for tests and embedded fallback lexicons.
func NewPhonemizer(entries map[string]string) *Phonemizer {
	normalized := make(map[string]string, len(entries))
	for word, ipa := range entries {
		normalized[strings.ToLower(word)] = ipa
	}

	return &Phonemizer{entries: normalized}
}

// Len returns the number of lexicon entries.
func (p *Phonemizer) Len() int {
	return len(p.entries)
}

// Lookup returns the IPA transcription for a single word.
func (p *Phonemizer) Lookup(word string) (string, error) {
	ipa, found := p.entries[strings.ToLower(word)]
	if !found {
		return "", fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}

	return ipa, nil
}

// Phonemize converts a cleaned text into its IPA rendering. Punctuation
// attached to a word is preserved around the transcription because
// punctuation is part of the model's symbol inventory and carries
// prosodic information. Words without a lexicon entry pass through
// unchanged; the tokenizer's inventory filter discards whatever of them
// the model cannot represent.
func (p *Phonemizer) Phonemize(text string) string {
	words := strings.Fields(text)
	parts := make([]string, 0, len(words))

	for _, word := range words {
		parts = append(parts, p.phonemizeWord(word))
	}

	return strings.Join(parts, " ")
}

func (p *Phonemizer) phonemizeWord(word string) string {
	prefix, core, suffix := splitPunctuation(word)
	if core == "" {
		return word
	}

	ipa, found := p.entries[strings.ToLower(core)]
	if !found {
		return word
	}

	return prefix + ipa + suffix
}

// splitPunctuation separates leading and trailing punctuation from the
// word core so that "ready?" looks up "ready" and keeps the "?".
func splitPunctuation(word string) (prefix, core, suffix string) {
	runes := []rune(word)

	start := 0
	for start < len(runes) && isWordPunctuation(runes[start]) {
		start++
	}

	end := len(runes)
	for end > start && isWordPunctuation(runes[end-1]) {
		end--
	}

	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func isWordPunctuation(symbol rune) bool {
	return strings.ContainsRune(punctuationSymbols+specialSymbols, symbol) && symbol != ' '
}

func parseLexiconLine(line string) (word, ipa string, valid bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, lexiconCommentPrefix) {
		return "", "", false
	}

	fields := strings.SplitN(trimmed, "\t", lexiconFieldCount)
	if len(fields) != lexiconFieldCount {
		return "", "", false
	}

	word = strings.ToLower(strings.TrimSpace(fields[0]))
	ipa = strings.TrimSpace(fields[1])

	if word == "" || ipa == "" {
		return "", "", false
	}

	return word, ipa, true
}
