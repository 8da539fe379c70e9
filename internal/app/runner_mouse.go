package app

import "github.com/gdamore/tcell/v2"

const wheelLines = 3

// handleMouseEvent moves the cursor to a clicked cell and scrolls on wheel
// motion. Clicks on the status bar are ignored.
func (r *Runner) handleMouseEvent(ev *tcell.EventMouse) {
	b := r.Editor.Current()
	x, y := ev.Position()
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		b.Scroll(-wheelLines)
	case btn&tcell.WheelDown != 0:
		b.Scroll(wheelLines)
	case btn&tcell.Button1 != 0:
		if y >= r.textRows() {
			return
		}
		line := min(b.View()+y, b.LineCount()-1)
		b.MoveCursorToLineCol(line, columnAt(b, line, x))
	}
}
