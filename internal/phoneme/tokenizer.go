package phoneme

import "strings"

// Tokenizer converts between phoneme symbols and their positional IDs.
// Symbols outside the inventory are dropped silently on both directions,
// matching the behavior the acoustic model expects.
type Tokenizer struct {
	symbolToID map[rune]int64
	idToSymbol map[int64]rune
}

// NewTokenizer builds a tokenizer over the full symbol inventory.
func NewTokenizer() *Tokenizer {
	inventory := Inventory()

	tokenizer := &Tokenizer{
		symbolToID: make(map[rune]int64, len(inventory)),
		idToSymbol: make(map[int64]rune, len(inventory)),
	}

	for index, symbol := range inventory {
		tokenizer.symbolToID[symbol] = int64(index)
		tokenizer.idToSymbol[int64(index)] = symbol
	}

	return tokenizer
}

// Encode maps a phoneme string to token IDs, skipping unknown runes.
func (t *Tokenizer) Encode(phonemes string) []int64 {
	ids := make([]int64, 0, len(phonemes))

	for _, symbol := range phonemes {
		id, known := t.symbolToID[symbol]
		if known {
			ids = append(ids, id)
		}
	}

	return ids
}

// Decode maps token IDs back to a phoneme string, skipping unknown IDs.
func (t *Tokenizer) Decode(ids []int64) string {
	var builder strings.Builder

	for _, id := range ids {
		symbol, known := t.idToSymbol[id]
		if known {
			builder.WriteRune(symbol)
		}
	}

	return builder.String()
}

// Known reports whether a rune is part of the symbol inventory.
func (t *Tokenizer) Known(symbol rune) bool {
	_, known := t.symbolToID[symbol]

	return known
}

// Filter strips every rune that is not part of the symbol inventory.
// The phonemizer output passes through here before synthesis so that
// stray characters from unknown words cannot reach the model.
func (t *Tokenizer) Filter(phonemes string) string {
	var builder strings.Builder

	for _, symbol := range phonemes {
		if t.Known(symbol) {
			builder.WriteRune(symbol)
		}
	}

	return builder.String()
}

// Size returns the number of symbols in the inventory.
func (t *Tokenizer) Size() int {
	return len(t.symbolToID)
}
