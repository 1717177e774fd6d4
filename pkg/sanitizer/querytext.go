package sanitizer

import (
	"strings"
	"unicode/utf16"

	"github.com/mozillazg/go-unidecode"
)

// replacement is written once for every UTF-16 code unit of a disallowed rune.
const replacement = ' '

// QueryText replaces every character outside [A-Za-z0-9 ] with a space.
// A rune that needs two UTF-16 code units (anything outside the Basic
// Multilingual Plane) is replaced by two spaces, so CodeUnits(QueryText(s))
// always equals CodeUnits(s). Invalid UTF-8 bytes are replaced by one space
// each.
func QueryText(s string) string {
	if IsQuerySafe(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isQueryRune(r) {
			b.WriteByte(byte(r))
			continue
		}
		for range runeUnits(r) {
			b.WriteByte(replacement)
		}
	}
	return b.String()
}

// IsQuerySafe reports whether s consists only of ASCII letters, digits and spaces.
func IsQuerySafe(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isQueryRune(rune(s[i])) {
			return false
		}
	}
	return true
}

// CodeUnits returns the length of s in UTF-16 code units.
// This is the length a browser reports for a form value.
func CodeUnits(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// Transliterate folds Unicode text to its closest ASCII spelling
// ("Æther" becomes "AEther"). It does not filter punctuation.
func Transliterate(s string) string {
	return unidecode.Unidecode(s)
}

func isQueryRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return r == ' '
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
