package app

import (
	"example.com/codepad/pkg/buffer"
	"example.com/codepad/pkg/config"
	"example.com/codepad/pkg/editor"
	"example.com/codepad/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and the event loop around an Editor.
type Runner struct {
	Screen tcell.Screen
	Editor *editor.Editor
	Logger *logs.Logger
	Keymap map[string]config.Keybinding
	Theme  config.Theme
}

// New creates a Runner for ed with default keys and colors.
func New(ed *editor.Editor) *Runner {
	return &Runner{Editor: ed, Keymap: config.DefaultKeymap(), Theme: config.DefaultTheme()}
}

// LoadFile opens path into the focused buffer. An empty path does nothing.
func (r *Runner) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	return r.Editor.Current().Open(path)
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	s.SetStyle(r.Theme.Style())
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
	if r.Logger != nil {
		r.Logger.Close()
	}
}

// Run starts the event loop. Each iteration handles one event, redraws and
// drains the per-frame arenas. It returns when the quit binding is pressed
// or the screen is finalized.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	if r.Logger != nil {
		r.Logger.Event("run.start", map[string]any{"file": r.Editor.Current().Path()})
		defer r.Logger.Event("run.end", map[string]any{"file": r.Editor.Current().Path()})
	}

	r.draw()
	r.Editor.EndFrame()
	for {
		ev := r.Screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if r.Logger != nil {
				r.Logger.Event("key", map[string]any{
					"type":      "EventKey",
					"key":       int(ev.Key()),
					"rune":      string(ev.Rune()),
					"modifiers": int(ev.Modifiers()),
				})
			}
			if r.handleKeyEvent(ev) {
				if r.Logger != nil {
					r.Logger.Event("action", map[string]any{"name": "quit"})
				}
				return nil
			}
			r.ensureCursorVisible()
		case *tcell.EventMouse:
			r.handleMouseEvent(ev)
		case *tcell.EventResize:
			r.Screen.Sync()
		}
		r.draw()
		r.Editor.EndFrame()
	}
}

func (r *Runner) keymap() map[string]config.Keybinding {
	if r.Keymap == nil {
		r.Keymap = config.DefaultKeymap()
	}
	return r.Keymap
}

// textRows returns the number of screen rows available for text.
func (r *Runner) textRows() int {
	if r.Screen == nil {
		return 0
	}
	_, h := r.Screen.Size()
	return max(h-1, 0)
}

// ensureCursorVisible scrolls the focused buffer so the cursor line is on
// screen.
func (r *Runner) ensureCursorVisible() {
	b := r.Editor.Current()
	rows := r.textRows()
	if rows == 0 {
		return
	}
	switch line := b.CursorLine(); {
	case line < b.View():
		b.Scroll(line - b.View())
	case line >= b.View()+rows:
		b.Scroll(line - rows + 1 - b.View())
	}
}

func (r *Runner) logError(action string, b *buffer.Buffer, err error) {
	if err == nil || r.Logger == nil {
		return
	}
	r.Logger.Event("action.error", map[string]any{
		"name":   action,
		"error":  err.Error(),
		"status": b.Status(),
	})
}
