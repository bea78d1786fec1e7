package text

import (
	"strconv"
	"strings"
)

const (
	numberBaseTen      = 10
	numberBaseTwenty   = 20
	numberBaseHundred  = 100
	numberBaseThousand = 1000
	numberBaseMillion  = 1000000
	numberBaseBillion  = 1000000000

	// maxSpokenNumber is the largest cardinal converted to words.
	// Anything larger is read as digits.
	maxSpokenNumber = 999999999999

	// Year-style reading applies to this range: "nineteen eighty
	// four" rather than "one thousand nine hundred eighty four".
	yearRangeLow  = 1000
	yearRangeHigh = 3000

	ordinalSuffixLength = 2
)

var (
	onesWords = []string{
		"", "one", "two", "three", "four", "five",
		"six", "seven", "eight", "nine",
	}
	teensWords = []string{
		"ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	tensWords = []string{
		"", "", "twenty", "thirty", "forty", "fifty",
		"sixty", "seventy", "eighty", "ninety",
	}

	// irregularOrdinals maps cardinal words whose ordinal form is not
	// a plain "th" suffix.
	irregularOrdinals = map[string]string{
		"one":    "first",
		"two":    "second",
		"three":  "third",
		"five":   "fifth",
		"eight":  "eighth",
		"nine":   "ninth",
		"twelve": "twelfth",
	}
)

// removeDigitCommas strips grouping commas from a matched digit run.
func removeDigitCommas(match string) string {
	return strings.ReplaceAll(match, ",", "")
}

// expandDecimalPoint rewrites "3.14" as "3 point 14"; the cardinal stage
// then converts both digit runs to words.
func expandDecimalPoint(match string) string {
	return strings.ReplaceAll(match, ".", " point ")
}

// expandDollarAmount rewrites "$10.50" as "10 dollars, 50 cents" with
// singular units where appropriate. The digits are converted to words by
// the later cardinal stage.
func expandDollarAmount(match string) string {
	amount := strings.TrimPrefix(match, "$")

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		// Unexpected format; read the digits and say the unit.
		return amount + " dollars"
	}

	dollars := parseAmountPart(parts[0])

	cents := 0
	if len(parts) > 1 {
		cents = parseAmountPart(parts[1])
	}

	switch {
	case dollars > 0 && cents > 0:
		return strconv.Itoa(dollars) + " " + pluralUnit(dollars, "dollar") +
			", " + strconv.Itoa(cents) + " " + pluralUnit(cents, "cent")
	case dollars > 0:
		return strconv.Itoa(dollars) + " " + pluralUnit(dollars, "dollar")
	case cents > 0:
		return strconv.Itoa(cents) + " " + pluralUnit(cents, "cent")
	default:
		return "zero dollars"
	}
}

func parseAmountPart(digits string) int {
	if digits == "" {
		return 0
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}

	return value
}

func pluralUnit(count int, unit string) string {
	if count == 1 {
		return unit
	}

	return unit + "s"
}

// expandOrdinal converts "3rd" into "third".
func expandOrdinal(match string) string {
	digits := match[:len(match)-ordinalSuffixLength]

	value, err := strconv.Atoi(digits)
	if err != nil {
		return match
	}

	return ordinalToWords(value)
}

// expandCardinal converts a bare digit run into words, with year-style
// reading for values in the year range.
func expandCardinal(match string) string {
	value, err := strconv.Atoi(match)
	if err != nil {
		return match
	}

	if value > yearRangeLow && value < yearRangeHigh {
		return yearToWords(value)
	}

	return integerToWords(value)
}

// yearToWords reads a number the way years are spoken: "1984" becomes
// "nineteen eighty four" and "1905" becomes "nineteen oh five".
func yearToWords(value int) string {
	century := value / numberBaseHundred
	remainder := value % numberBaseHundred

	switch {
	case value == 2*numberBaseThousand:
		return "two thousand"
	case value > 2*numberBaseThousand && value < 2*numberBaseThousand+numberBaseTen:
		return "two thousand " + convertUnderHundred(remainder)
	case remainder == 0:
		return convertUnderHundred(century) + " hundred"
	case remainder < numberBaseTen:
		return convertUnderHundred(century) + " oh " + convertUnderHundred(remainder)
	default:
		return convertUnderHundred(century) + " " + convertUnderHundred(remainder)
	}
}

// ordinalToWords converts a cardinal value into its ordinal word form.
func ordinalToWords(value int) string {
	cardinal := integerToWords(value)

	words := strings.Fields(cardinal)
	if len(words) == 0 {
		return cardinal
	}

	last := words[len(words)-1]

	switch {
	case irregularOrdinals[last] != "":
		words[len(words)-1] = irregularOrdinals[last]
	case strings.HasSuffix(last, "y"):
		words[len(words)-1] = strings.TrimSuffix(last, "y") + "ieth"
	default:
		words[len(words)-1] = last + "th"
	}

	return strings.Join(words, " ")
}

// integerToWords converts an integer into its English word
// representation, up to the hundreds of billions.
func integerToWords(value int) string {
	if value < 0 || value > maxSpokenNumber {
		return strconv.Itoa(value)
	}

	if value == 0 {
		return "zero"
	}

	var parts []string

	billions := value / numberBaseBillion
	if billions > 0 {
		parts = append(parts, convertUnderThousand(billions)+" billion")
	}

	remainder := value % numberBaseBillion

	millions := remainder / numberBaseMillion
	if millions > 0 {
		parts = append(parts, convertUnderThousand(millions)+" million")
	}

	remainder %= numberBaseMillion

	thousands := remainder / numberBaseThousand
	if thousands > 0 {
		parts = append(parts, convertUnderThousand(thousands)+" thousand")
	}

	remainder %= numberBaseThousand
	if remainder > 0 {
		parts = append(parts, convertUnderThousand(remainder))
	}

	return strings.Join(parts, " ")
}

func convertUnderThousand(value int) string {
	hundreds := value / numberBaseHundred
	remainder := value % numberBaseHundred

	switch {
	case hundreds > 0 && remainder > 0:
		return onesWords[hundreds] + " hundred " + convertUnderHundred(remainder)
	case hundreds > 0:
		return onesWords[hundreds] + " hundred"
	default:
		return convertUnderHundred(remainder)
	}
}

func convertUnderHundred(value int) string {
	switch {
	case value < numberBaseTen:
		return onesWords[value]
	case value < numberBaseTwenty:
		return teensWords[value-numberBaseTen]
	default:
		result := tensWords[value/numberBaseTen]
		if value%numberBaseTen > 0 {
			result += " " + onesWords[value%numberBaseTen]
		}

		return result
	}
}
