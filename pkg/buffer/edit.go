package buffer

import "example.com/codepad/pkg/codec"

// Direction selects a relative cursor motion.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	WordLeft
	WordRight
)

// InsertCodepoint inserts cp at the cursor and advances past it. The line
// index is updated incrementally.
func (b *Buffer) InsertCodepoint(cp rune) error {
	if err := b.text.Insert(cp, b.cursor); err != nil {
		return b.fail("insert", err)
	}
	if err := b.lines.InsertAt(b.cursorLine, b.cursor, cp); err != nil {
		_ = b.text.Remove(b.cursor)
		return b.fail("insert", err)
	}
	b.cursor++
	if cp == '\n' {
		b.newlines++
		b.cursorLine++
	}
	return nil
}

// InsertBlock decodes data as UTF-8 and inserts it at the cursor in one
// step, then rebuilds the line index with a single rescan.
func (b *Buffer) InsertBlock(data []byte) error {
	cps := codec.Decode(data)
	at := b.cursor
	if err := b.text.InsertSlice(cps, at); err != nil {
		return b.fail("insert block", err)
	}
	if err := b.lines.Rescan(b.text.Items()); err != nil {
		_ = b.text.RemoveRange(at, at+len(cps))
		_ = b.lines.Rescan(b.text.Items())
		b.fixCursorLine()
		return b.fail("insert block", err)
	}
	for _, cp := range cps {
		if cp == '\n' {
			b.newlines++
		}
	}
	b.cursor = at + len(cps)
	b.fixCursorLine()
	return nil
}

// InsertTab inserts spaces up to the next tab stop.
func (b *Buffer) InsertTab() error {
	n := b.opt.TabWidth - b.Column()%b.opt.TabWidth
	for i := 0; i < n; i++ {
		if err := b.InsertCodepoint(' '); err != nil {
			return err
		}
	}
	return nil
}

// Backspace removes the codepoint before the cursor. It does nothing at the
// start of the buffer.
func (b *Buffer) Backspace() {
	if b.cursor == 0 || b.text.Len() == 0 {
		return
	}
	removed := b.text.At(b.cursor - 1)
	line := b.cursorLine
	if removed == '\n' {
		// the newline terminates the previous line
		line--
	}
	b.cursor--
	_ = b.text.Remove(b.cursor)
	b.lines.RemoveAt(line, removed)
	if removed == '\n' {
		b.newlines--
	}
	b.fixCursorLine()
}

// DeleteForward removes the codepoint at the cursor by stepping over it and
// backspacing. It does nothing at the end of the buffer.
func (b *Buffer) DeleteForward() {
	if b.cursor >= b.text.Len() {
		return
	}
	b.MoveCursorTo(b.cursor + 1)
	b.Backspace()
}

// MoveCursorTo places the cursor at pos clamped to [0, Len()].
func (b *Buffer) MoveCursorTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > b.text.Len() {
		pos = b.text.Len()
	}
	b.cursor = pos
	b.fixCursorLine()
}

// MoveCursorToLineCol places the cursor at col on line. The line is clamped
// to the buffer and the column to the end of that line.
func (b *Buffer) MoveCursorToLineCol(line, col int) {
	if line < 0 {
		line = 0
	}
	if line > b.lines.Len()-1 {
		line = b.lines.Len() - 1
	}
	if col < 0 {
		col = 0
	}
	l := b.lines.At(line)
	b.cursor = min(l.Start+col, l.End)
	b.cursorLine = line
}

// MoveCursor applies a relative motion. Vertical motions keep the column
// where the target line is long enough.
func (b *Buffer) MoveCursor(dir Direction) {
	switch dir {
	case Left:
		if b.cursor > 0 {
			b.MoveCursorTo(b.cursor - 1)
		}
	case Right:
		if b.cursor < b.text.Len() {
			b.MoveCursorTo(b.cursor + 1)
		}
	case Up:
		if b.cursorLine > 0 {
			b.MoveCursorToLineCol(b.cursorLine-1, b.Column())
		}
	case Down:
		if b.cursorLine < b.lines.Len()-1 {
			b.MoveCursorToLineCol(b.cursorLine+1, b.Column())
		}
	case LineStart:
		b.cursor = b.lines.At(b.cursorLine).Start
	case LineEnd:
		b.cursor = b.lines.At(b.cursorLine).End
	case WordLeft:
		b.MoveCursorTo(WordStart(b, b.cursor))
	case WordRight:
		b.MoveCursorTo(WordEnd(b, b.cursor))
	}
}

// Scroll moves the first visible line by delta, clamped to the document.
func (b *Buffer) Scroll(delta int) {
	b.view += delta
	if last := b.lines.Len() - 1; b.view > last {
		b.view = last
	}
	if b.view < 0 {
		b.view = 0
	}
}
