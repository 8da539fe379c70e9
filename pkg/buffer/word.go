package buffer

import "unicode"

// IsWordRune reports whether r is considered part of a word.
// Words consist of letters, digits, or underscore characters.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// WordStart returns the index of the beginning of the word that ends at or before pos.
func WordStart(g Runes, pos int) int {
	if g == nil || g.Len() == 0 {
		return 0
	}
	if pos > g.Len() {
		pos = g.Len()
	}
	if pos > 0 {
		pos--
	}
	for pos > 0 && !IsWordRune(g.RuneAt(pos)) {
		pos--
	}
	for pos > 0 && IsWordRune(g.RuneAt(pos-1)) {
		pos--
	}
	return pos
}

// WordEnd returns the index one past the end of the word that begins at or
// after pos.
func WordEnd(g Runes, pos int) int {
	if g == nil || g.Len() == 0 {
		return 0
	}
	if pos >= g.Len() {
		return g.Len()
	}
	for pos < g.Len() && !IsWordRune(g.RuneAt(pos)) {
		pos++
	}
	for pos < g.Len() && IsWordRune(g.RuneAt(pos)) {
		pos++
	}
	return pos
}
