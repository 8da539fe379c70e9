package app

import (
	"example.com/codepad/pkg/buffer"
	"example.com/codepad/pkg/codec"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// cellWidth returns how many screen cells ch occupies when it starts at
// column x. Tabs run to the next tab stop.
func cellWidth(ch rune, x, tab int) int {
	if ch == '\t' {
		return tab - x%tab
	}
	return max(runewidth.RuneWidth(ch), 1)
}

// columnAt maps screen column x on a line to a codepoint column, the
// inverse of the layout used by draw.
func columnAt(b *buffer.Buffer, line, x int) int {
	if line < 0 || line >= b.LineCount() {
		return 0
	}
	l := b.Line(line)
	cells := 0
	for p := l.Start; p < l.End; p++ {
		cells += cellWidth(b.RuneAt(p), cells, b.TabWidth())
		if cells > x {
			return p - l.Start
		}
	}
	return l.Len()
}

// labelWidth returns the display width of UTF-8 text.
func labelWidth(text []byte) int {
	w := 0
	for off := 0; off < len(text); {
		ch, n := codec.DecodeNext(text, off)
		w += runewidth.RuneWidth(ch)
		off += n
	}
	return w
}

// drawLabel writes UTF-8 text starting at column x and returns the column
// after it. Text past limit is cut.
func drawLabel(s tcell.Screen, x, y, limit int, text []byte, style tcell.Style) int {
	for off := 0; off < len(text); {
		ch, n := codec.DecodeNext(text, off)
		off += n
		w := runewidth.RuneWidth(ch)
		if x+w > limit {
			break
		}
		s.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

// draw renders the focused buffer and its status bar.
func (r *Runner) draw() {
	if r.Screen == nil {
		return
	}
	s := r.Screen
	b := r.Editor.Current()
	width, height := s.Size()
	s.SetStyle(r.Theme.Style())
	s.Clear()

	r.drawText(s, b, width, height-1)
	r.drawStatus(s, b, width, height-1)
	s.Show()
}

func (r *Runner) drawText(s tcell.Screen, b *buffer.Buffer, width, rows int) {
	style := r.Theme.Style()
	cursorStyle := r.Theme.CursorStyle()
	text := b.Text()
	lines := b.Lines()
	cursor := b.Cursor()
	for y := 0; y < rows && b.View()+y < len(lines); y++ {
		l := lines[b.View()+y]
		x := 0
		for p := l.Start; p < l.End && x < width; p++ {
			ch := text[p]
			w := cellWidth(ch, x, b.TabWidth())
			st := style
			if p == cursor && b.Mode() == buffer.ModeNormal {
				st = cursorStyle
			}
			if ch == '\t' {
				for i := 0; i < w && x+i < width; i++ {
					s.SetContent(x+i, y, ' ', nil, st)
				}
			} else {
				s.SetContent(x, y, ch, nil, st)
			}
			x += w
		}
		// cursor at end of line
		if cursor == l.End && x < width && b.Mode() == buffer.ModeNormal {
			s.SetContent(x, y, ' ', nil, cursorStyle)
		}
	}
}

// drawStatus fills row y with the status message on the left, the buffer
// title or the path being typed in the middle and the cursor position on
// the right. Labels are formatted in per-frame arenas, and formatting one
// may reset the arena under another, so each label is drawn before the
// next is formatted.
func (r *Runner) drawStatus(s tcell.Screen, b *buffer.Buffer, width, y int) {
	if y < 0 {
		return
	}
	style := r.Theme.StatusStyle()
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}

	label, err := b.CursorLabel()
	r.logError("draw", b, err)
	right := width - labelWidth(label)
	drawLabel(s, max(right, 0), y, width, label, style)

	var centre []byte
	centreStyle := style
	if b.Mode() == buffer.ModePathEntry {
		centre, err = b.PathLabel()
		centreStyle = r.Theme.PromptStyle()
	} else {
		centre, err = r.Editor.Title()
	}
	r.logError("draw", b, err)
	mid := (width - labelWidth(centre)) / 2
	drawLabel(s, max(mid, 0), y, max(right-1, 0), centre, centreStyle)
	drawLabel(s, 0, y, max(mid-1, 0), []byte(b.Status()), style)
}
