package phoneme_test

import (
	"testing"

	"github.com/book-expert/glados-tts/internal/phoneme"
)

func TestInventory_PadIsFirst(t *testing.T) {
	t.Parallel()

	inventory := phoneme.Inventory()
	if len(inventory) == 0 {
		t.Fatal("Inventory returned no symbols")
	}

	if inventory[0] != '_' {
		t.Errorf("Expected pad symbol '_' at index 0, got %q", inventory[0])
	}
}

func TestInventory_NoDuplicates(t *testing.T) {
	t.Parallel()

	seen := make(map[rune]int)

	for index, symbol := range phoneme.Inventory() {
		firstIndex, duplicate := seen[symbol]
		if duplicate {
			t.Errorf(
				"Symbol %q appears at both index %d and %d",
				symbol, firstIndex, index,
			)
		}

		seen[symbol] = index
	}
}

func TestTokenizer_EncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tokenizer := phoneme.NewTokenizer()

	tests := []struct {
		name  string
		input string
	}{
		{name: "simple word", input: "hɛloʊ"},
		{name: "with punctuation", input: "hɛloʊ, wɜrld!"},
		{name: "with stress marks", input: "əˈpɜrtʃər ˈsaɪəns"},
		{name: "pad symbol", input: "_"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ids := tokenizer.Encode(testCase.input)
			decoded := tokenizer.Decode(ids)

			if decoded != testCase.input {
				t.Errorf(
					"Round trip mismatch: expected %q, got %q",
					testCase.input, decoded,
				)
			}
		})
	}
}

func TestTokenizer_EncodeDropsUnknownRunes(t *testing.T) {
	t.Parallel()

	tokenizer := phoneme.NewTokenizer()

	// 'Z' and '@' are not part of the inventory, 'z' and '.' are.
	ids := tokenizer.Encode("Z@z.")
	decoded := tokenizer.Decode(ids)

	if decoded != "z." {
		t.Errorf("Expected unknown runes to be dropped, got %q", decoded)
	}
}

func TestTokenizer_Filter(t *testing.T) {
	t.Parallel()

	tokenizer := phoneme.NewTokenizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "pure phonemes untouched", input: "hɛloʊ", expected: "hɛloʊ"},
		{name: "latin capitals removed", input: "HɛLoʊ", expected: "ɛoʊ"},
		{name: "digits removed", input: "h3loʊ", expected: "hloʊ"},
		{name: "spaces kept", input: "hɛ loʊ", expected: "hɛ loʊ"},
		{name: "empty input", input: "", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := tokenizer.Filter(testCase.input)
			if result != testCase.expected {
				t.Errorf("Expected %q, got %q", testCase.expected, result)
			}
		})
	}
}

func TestTokenizer_IDsArePositional(t *testing.T) {
	t.Parallel()

	tokenizer := phoneme.NewTokenizer()

	ids := tokenizer.Encode("_")
	if len(ids) != 1 || ids[0] != 0 {
		t.Fatalf("Expected pad symbol to encode as ID 0, got %v", ids)
	}

	if tokenizer.Size() != len(phoneme.Inventory()) {
		t.Errorf(
			"Tokenizer size %d does not match inventory size %d",
			tokenizer.Size(), len(phoneme.Inventory()),
		)
	}
}
