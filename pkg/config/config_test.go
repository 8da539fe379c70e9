package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !kb.Matches(ev) {
		t.Fatalf("expected match for Ctrl+X")
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)) {
		t.Fatalf("expected match for the control key form of Ctrl+X")
	}
	if kb.Matches(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatalf("Ctrl+X must not match Ctrl+C")
	}
	if kb.String() != "Ctrl+X" {
		t.Fatalf("unexpected string %q", kb.String())
	}
}

func TestParseKeybinding_Invalid(t *testing.T) {
	for _, s := range []string{"Ctrl+", "Alt+X", "Ctrl+1", "X"} {
		if _, err := ParseKeybinding(s); err == nil {
			t.Fatalf("expected error for invalid keybinding %q", s)
		}
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabWidth != 4 || cfg.Buffers != 2 || cfg.MemoryLimit != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	ev := tcell.NewEventKey(tcell.KeyCtrlO, 0, tcell.ModCtrl)
	if !cfg.Keymap["open"].Matches(ev) {
		t.Fatalf("expected Ctrl+O to open by default")
	}
}

func TestLoadConfigRemap(t *testing.T) {
	path := writeConfig(t, "keymap:\n  quit: Ctrl+X\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !cfg.Keymap["quit"].Matches(ev) {
		t.Fatalf("expected remapped quit to Ctrl+X")
	}
	if !cfg.Keymap["save"].Matches(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) {
		t.Fatalf("unmapped commands must keep their defaults")
	}
}

func TestLoad_Values(t *testing.T) {
	path := writeConfig(t, `
tab_width: 8
capacity: 64
arena_size: 512
buffers: 3
memory_limit: 1048576
theme:
  name: dark
  status_background: "#102030"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabWidth != 8 || cfg.Capacity != 64 || cfg.ArenaSize != 512 || cfg.Buffers != 3 || cfg.MemoryLimit != 1<<20 {
		t.Fatalf("values not applied: %+v", cfg)
	}
	if cfg.Theme.StatusBackground != tcell.NewHexColor(0x102030) {
		t.Fatalf("expected status background override, got %v", cfg.Theme.StatusBackground)
	}
	if cfg.Theme.CursorBackground != BuiltinThemes["dark"].CursorBackground {
		t.Fatalf("expected the dark preset underneath the override")
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]string{
		"bad yaml":        "tab_width: [",
		"negative":        "tab_width: -1\n",
		"unknown command": "keymap:\n  launch: Ctrl+L\n",
		"bad binding":     "keymap:\n  save: Alt+S\n",
		"unknown theme":   "theme:\n  name: neon\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadDefault_UsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, ".codepad"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, ".codepad", "config.yaml"), []byte("tab_width: 2\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if cfg.TabWidth != 2 {
		t.Fatalf("expected tab width from home config, got %d", cfg.TabWidth)
	}
}

func TestParseColor(t *testing.T) {
	if c := ParseColor("red", tcell.ColorBlue); c != tcell.ColorRed {
		t.Fatalf("expected red, got %v", c)
	}
	if c := ParseColor("not-a-color", tcell.ColorBlue); c != tcell.ColorBlue {
		t.Fatalf("expected fallback, got %v", c)
	}
}
