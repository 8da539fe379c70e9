package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	TabWidth    int // columns between tab stops
	Capacity    int // initial codepoints per buffer
	ArenaSize   int // scratch bytes per buffer
	Buffers     int
	MemoryLimit int // bytes; 0 means unbounded
	Keymap      map[string]Keybinding
	Theme       Theme
}

// file mirrors config.yaml.
type file struct {
	TabWidth    int               `yaml:"tab_width"`
	Capacity    int               `yaml:"capacity"`
	ArenaSize   int               `yaml:"arena_size"`
	Buffers     int               `yaml:"buffers"`
	MemoryLimit int               `yaml:"memory_limit"`
	Keymap      map[string]string `yaml:"keymap"`
	Theme       themeFile         `yaml:"theme"`
}

type themeFile struct {
	Name             string `yaml:"name"`
	Background       string `yaml:"background"`
	Foreground       string `yaml:"foreground"`
	StatusBackground string `yaml:"status_background"`
	StatusForeground string `yaml:"status_foreground"`
	CursorBackground string `yaml:"cursor_background"`
	CursorText       string `yaml:"cursor_text"`
	PromptForeground string `yaml:"prompt_foreground"`
}

// Default returns a Config with default values and key mappings.
func Default() *Config {
	return &Config{
		TabWidth:  4,
		Capacity:  1024,
		ArenaSize: 1024,
		Buffers:   2,
		Keymap:    DefaultKeymap(),
		Theme:     DefaultTheme(),
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit": mustParse("Ctrl+Q"),
		"save": mustParse("Ctrl+S"),
		"open": mustParse("Ctrl+O"),
		"next": mustParse("Ctrl+N"),
		"prev": mustParse("Ctrl+P"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned. Keys missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.apply(f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) apply(f file) error {
	for _, v := range []struct {
		name string
		val  int
		dst  *int
	}{
		{"tab_width", f.TabWidth, &c.TabWidth},
		{"capacity", f.Capacity, &c.Capacity},
		{"arena_size", f.ArenaSize, &c.ArenaSize},
		{"buffers", f.Buffers, &c.Buffers},
		{"memory_limit", f.MemoryLimit, &c.MemoryLimit},
	} {
		if v.val < 0 {
			return fmt.Errorf("%s must not be negative", v.name)
		}
		if v.val > 0 {
			*v.dst = v.val
		}
	}
	for cmd, binding := range f.Keymap {
		if _, ok := c.Keymap[cmd]; !ok {
			return errors.New("unknown command in keymap: " + cmd)
		}
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return err
		}
		c.Keymap[cmd] = kb
	}
	if f.Theme.Name != "" {
		t, ok := BuiltinThemes[strings.ToLower(f.Theme.Name)]
		if !ok {
			return errors.New("unknown theme: " + f.Theme.Name)
		}
		c.Theme = t
	}
	t := &c.Theme
	t.Background = ParseColor(f.Theme.Background, t.Background)
	t.Foreground = ParseColor(f.Theme.Foreground, t.Foreground)
	t.StatusBackground = ParseColor(f.Theme.StatusBackground, t.StatusBackground)
	t.StatusForeground = ParseColor(f.Theme.StatusForeground, t.StatusForeground)
	t.CursorBackground = ParseColor(f.Theme.CursorBackground, t.CursorBackground)
	t.CursorText = ParseColor(f.Theme.CursorText, t.CursorText)
	t.PromptForeground = ParseColor(f.Theme.PromptForeground, t.PromptForeground)
	return nil
}

// DefaultPath returns ~/.codepad/config.yaml, or "" without a home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codepad", "config.yaml")
}

// LoadDefault attempts to read ~/.codepad/config.yaml.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Currently only Ctrl+<letter> is supported.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(strings.TrimSpace(parts[0]), "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(strings.TrimSpace(parts[1])))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// String renders the binding the way ParseKeybinding reads it.
func (k Keybinding) String() string {
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		return "Ctrl+" + strings.ToUpper(string(k.Rune))
	}
	return tcell.KeyNames[k.Key]
}

// Matches returns true if the binding matches the provided event.
// Terminals report Ctrl+<letter> as a control key rather than a rune, so
// both forms are accepted.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
		if ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a') {
			return true
		}
	}
	return false
}
