package buffer

import (
	"fmt"

	"example.com/codepad/pkg/memory"
	"example.com/codepad/pkg/seq"
)

// Line is the extent of one line within the codepoint sequence. End is the
// offset of the terminating newline, or the sequence length for the last
// line, so the newline itself is never inside [Start, End).
type Line struct {
	Start int
	End   int
}

// Len returns the number of codepoints on the line, excluding the newline.
func (l Line) Len() int { return l.End - l.Start }

// LineIndex is the ordered list of line extents derived from a sequence.
// Consecutive entries satisfy lines[i+1].Start == lines[i].End+1.
type LineIndex struct {
	lines *seq.Seq[Line]
}

// NewLineIndex returns an index describing an empty document (one empty line).
func NewLineIndex(alloc memory.Allocator, capacity int) (*LineIndex, error) {
	if capacity < 1 {
		capacity = 1
	}
	s, err := seq.New[Line](alloc, capacity)
	if err != nil {
		return nil, fmt.Errorf("line index: %w", err)
	}
	if err := s.Push(Line{}); err != nil {
		return nil, fmt.Errorf("line index: %w", err)
	}
	return &LineIndex{lines: s}, nil
}

// Len returns the number of lines. It is always at least one.
func (x *LineIndex) Len() int { return x.lines.Len() }

// At returns line i.
func (x *LineIndex) At(i int) Line { return x.lines.At(i) }

// Lines returns the entries. The slice is valid until the next edit.
func (x *LineIndex) Lines() []Line { return x.lines.Items() }

// Rescan rebuilds the index from text in one pass.
func (x *LineIndex) Rescan(text []rune) error {
	x.lines.Reset()
	start := 0
	for i, r := range text {
		if r == '\n' {
			if err := x.lines.Push(Line{Start: start, End: i}); err != nil {
				return fmt.Errorf("rescan: %w", err)
			}
			start = i + 1
		}
	}
	if err := x.lines.Push(Line{Start: start, End: len(text)}); err != nil {
		return fmt.Errorf("rescan: %w", err)
	}
	return nil
}

// InsertAt records that cp was inserted at offset pos on line. Later lines
// shift right by one; a newline splits the line at pos. On error the index
// is left unchanged.
func (x *LineIndex) InsertAt(line, pos int, cp rune) error {
	cur := x.lines.At(line)
	if cp == '\n' {
		next := Line{Start: pos + 1, End: cur.End + 1}
		if err := x.lines.Insert(next, line+1); err != nil {
			return fmt.Errorf("split line %d: %w", line, err)
		}
		x.lines.Set(line, Line{Start: cur.Start, End: pos})
		x.shift(line+2, 1)
		return nil
	}
	cur.End++
	x.lines.Set(line, cur)
	x.shift(line+1, 1)
	return nil
}

// RemoveAt records that cp was removed from line. A removed newline is the
// one terminating line, so the following line is merged into it.
func (x *LineIndex) RemoveAt(line int, cp rune) {
	cur := x.lines.At(line)
	if cp == '\n' && line+1 < x.lines.Len() {
		next := x.lines.At(line + 1)
		cur.End = next.End - 1
		x.lines.Set(line, cur)
		_ = x.lines.Remove(line + 1)
		x.shift(line+1, -1)
		return
	}
	cur.End--
	x.lines.Set(line, cur)
	x.shift(line+1, -1)
}

// Find returns the line containing pos. A position equal to a line's End
// belongs to that line. When no line contains pos it returns the last line
// and false.
func (x *LineIndex) Find(pos int) (int, bool) {
	lines := x.lines.Items()
	for i, l := range lines {
		if pos >= l.Start && pos <= l.End {
			return i, true
		}
	}
	return len(lines) - 1, false
}

func (x *LineIndex) shift(from, delta int) {
	lines := x.lines.Items()
	for i := from; i < len(lines); i++ {
		lines[i].Start += delta
		lines[i].End += delta
	}
}
