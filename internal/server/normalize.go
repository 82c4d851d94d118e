package server

import (
	"strings"
	"unicode"
)

// persianFolds maps Arabic presentation variants to their Persian canonical
// letter. Regional keyboards produce either form for the same word.
var persianFolds = map[rune]rune{
	'آ': 'ا',
	'ي': 'ی',
	'ى': 'ی',
	'ك': 'ک',
}

// normalizeGuess canonicalizes free text for comparison against the secret
// word: whitespace is stripped, letter variants are folded, and anything
// outside the Persian letter range is discarded. Guesses that differ only in
// formatting or encoding variant compare equal after this.
func normalizeGuess(input string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(input) {
		if unicode.IsSpace(r) {
			continue
		}
		if folded, ok := persianFolds[r]; ok {
			r = folded
		}
		if r < 'آ' || r > 'ی' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// guessMatches compares a guess against the secret word, both normalized.
// An empty normalized guess never matches.
func guessMatches(guess, secretWord string) bool {
	normalized := normalizeGuess(guess)
	return normalized != "" && normalized == normalizeGuess(secretWord)
}
