package config

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors used to draw a buffer and its status bar.
type Theme struct {
	Background tcell.Color
	Foreground tcell.Color

	StatusBackground tcell.Color
	StatusForeground tcell.Color

	CursorBackground tcell.Color
	CursorText       tcell.Color

	// PromptForeground colors the path while it is being typed.
	PromptForeground tcell.Color
}

// Style returns the text style.
func (t Theme) Style() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

// StatusStyle returns the status bar style.
func (t Theme) StatusStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.StatusBackground).Foreground(t.StatusForeground)
}

// CursorStyle returns the style of the cell under the cursor.
func (t Theme) CursorStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.CursorBackground).Foreground(t.CursorText)
}

// PromptStyle returns the status bar style used during path entry.
func (t Theme) PromptStyle() tcell.Style {
	return t.StatusStyle().Foreground(t.PromptForeground).Bold(true)
}

// DefaultTheme returns the built-in light theme.
func DefaultTheme() Theme {
	return Theme{
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		StatusBackground: tcell.ColorWhite,
		StatusForeground: tcell.ColorBlack,
		CursorBackground: tcell.ColorGreen,
		CursorText:       tcell.ColorBlack,
		PromptForeground: tcell.ColorNavy,
	}
}

// TerminalTheme follows the terminal's own default colors and palette.
func TerminalTheme() Theme {
	return Theme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorDefault,
		CursorBackground: tcell.ColorBlue,
		CursorText:       tcell.ColorDefault,
		PromptForeground: tcell.ColorYellow,
	}
}

// BuiltinThemes exposes the presets by name.
var BuiltinThemes = map[string]Theme{
	"default":  DefaultTheme(),
	"light":    DefaultTheme(),
	"terminal": TerminalTheme(),
	"dark": {
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorWhite,
		CursorBackground: tcell.ColorDarkGreen,
		CursorText:       tcell.ColorBlack,
		PromptForeground: tcell.ColorLightYellow,
	},
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	// tcell.GetColor supports W3C names or #RRGGBB (case-insensitive)
	c := tcell.GetColor(strings.ToLower(strings.TrimSpace(s)))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
