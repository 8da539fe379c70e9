package buffer

import "testing"

type runeSlice []rune

func (s runeSlice) Len() int { return len(s) }
func (s runeSlice) RuneAt(i int) rune { return s[i] }

func TestWordBoundaries(t *testing.T) {
	text := runeSlice("foo.bar  baz_9")
	tests := []struct {
		pos, start, end int
	}{
		{0, 0, 3},
		{2, 0, 3},
		{3, 0, 7},
		{4, 0, 7},
		{8, 4, 14},
		{14, 9, 14},
	}
	for _, tc := range tests {
		if got := WordStart(text, tc.pos); got != tc.start {
			t.Fatalf("WordStart(%d) = %d, want %d", tc.pos, got, tc.start)
		}
		if got := WordEnd(text, tc.pos); got != tc.end {
			t.Fatalf("WordEnd(%d) = %d, want %d", tc.pos, got, tc.end)
		}
	}
}
