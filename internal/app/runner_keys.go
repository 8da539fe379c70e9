package app

import (
	"example.com/codepad/pkg/buffer"
	"github.com/gdamore/tcell/v2"
)

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	km := r.keymap()
	b := r.Editor.Current()
	switch {
	case km["quit"].Matches(ev):
		return true
	case km["save"].Matches(ev):
		r.action("save")
		r.logError("save", b, b.RequestSave())
		return false
	case km["open"].Matches(ev):
		r.action("open")
		b.EnterPathEntry(buffer.PathOpen)
		return false
	case km["next"].Matches(ev):
		r.action("next")
		r.Editor.Next()
		return false
	case km["prev"].Matches(ev):
		r.action("prev")
		r.Editor.Prev()
		return false
	}

	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		r.logError("insert", b, b.HandleRune(ev.Rune()))
	case tcell.KeyEnter:
		r.logError("enter", b, b.HandleEnter())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		b.HandleBackspace()
	case tcell.KeyDelete:
		b.HandleDelete()
	case tcell.KeyTab:
		r.logError("tab", b, b.HandleTab())
	case tcell.KeyEsc:
		b.HandleEscape()
	}
	if b.Mode() == buffer.ModePathEntry {
		return false
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		if ctrl {
			b.MoveCursor(buffer.WordLeft)
		} else {
			b.MoveCursor(buffer.Left)
		}
	case tcell.KeyRight:
		if ctrl {
			b.MoveCursor(buffer.WordRight)
		} else {
			b.MoveCursor(buffer.Right)
		}
	case tcell.KeyUp:
		b.MoveCursor(buffer.Up)
	case tcell.KeyDown:
		b.MoveCursor(buffer.Down)
	case tcell.KeyHome:
		b.MoveCursor(buffer.LineStart)
	case tcell.KeyEnd:
		b.MoveCursor(buffer.LineEnd)
	case tcell.KeyPgUp:
		for i := max(r.textRows(), 1); i > 0; i-- {
			b.MoveCursor(buffer.Up)
		}
	case tcell.KeyPgDn:
		for i := max(r.textRows(), 1); i > 0; i-- {
			b.MoveCursor(buffer.Down)
		}
	}
	return false
}

func (r *Runner) action(name string) {
	if r.Logger != nil {
		r.Logger.Event("action", map[string]any{"name": name})
	}
}
