// Package phoneme provides the IPA symbol inventory, the positional
// tokenizer, and the lexicon-driven phonemizer used to prepare text for
// the acoustic model.
//
// The symbol inventory mirrors the vocabulary the GLaDOS acoustic model
// was trained against. Symbol order is load-bearing: token IDs are the
// positional indices into this inventory.
package phoneme

// Symbol groups, concatenated in inventory order.
const (
	padSymbol             = "_"
	punctuationSymbols    = "!'(),.:;? "
	specialSymbols        = "-"
	vowelSymbols          = "iyɨʉɯuɪʏʊeøɘəɵɤoɛœɜɞʌɔæɐaɶɑɒᵻ"
	nonPulmonicConsonants = "ʘɓǀɗǃʄǂɠǁʛ"
	pulmonicConsonants    = "pbtdʈɖcɟkɡqɢʔɴŋɲɳnɱmʙrʀⱱɾɽɸβfvθðszʃʒʂʐçʝxɣχʁħʕhɦɬɮʋɹɻjɰlɭʎʟ"
	suprasegmentals       = "ˈˌːˑ"
	otherSymbols          = "ʍwɥʜʢʡɕʑɺɧ"
	diacritics            = "ɚ˞ɫ"
)

// extraSymbols covers annotations seen in dictionary IPA transcriptions
// that fall outside the standard chart: the latin "g", the rhotacized
// schwa, and a handful of combining marks (nasalization, syllabicity,
// voicelessness, non-syllabicity, tie bar).
var extraSymbols = []rune{
	'g',
	'ɝ',
	'̃', // combining tilde
	'̍', // combining vertical line above
	'̥', // combining ring below
	'̩', // combining vertical line below
	'̯', // combining inverted breve below
	'͡', // combining double inverted breve
}

// Inventory returns the full phoneme symbol inventory in ID order.
// The returned slice is freshly allocated on every call.
func Inventory() []rune {
	base := padSymbol +
		punctuationSymbols +
		specialSymbols +
		vowelSymbols +
		nonPulmonicConsonants +
		pulmonicConsonants +
		suprasegmentals +
		otherSymbols +
		diacritics

	symbols := []rune(base)
	symbols = append(symbols, extraSymbols...)

	return symbols
}
