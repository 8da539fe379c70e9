package buffer

// Runes is read-only access to a codepoint sequence, as handed to
// renderers and motions. Positions are codepoint offsets, not bytes.
type Runes interface {
	Len() int
	RuneAt(i int) rune
}
