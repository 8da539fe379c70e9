package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_NilAndDisabledDiscard(t *testing.T) {
	var l *Logger
	l.Event("ignored", nil)
	l.Close()
	if l.Enabled() {
		t.Fatalf("nil logger must report disabled")
	}
	t.Setenv("CODEPAD_LOG", "")
	t.Setenv("CODEPAD_LOG_FILE", "")
	if NewFromEnv().Enabled() {
		t.Fatalf("expected logging off without environment")
	}
}

func TestLogger_EventWritesJSONLine(t *testing.T) {
	var out bytes.Buffer
	l := New(&out)
	l.Event("open.success", map[string]any{"file": "a.txt", "runes": 3})
	l.Event("run.end", nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["event"] != "open.success" || rec["file"] != "a.txt" || rec["runes"] != float64(3) {
		t.Fatalf("unexpected record %v", rec)
	}
	if _, ok := rec["time"].(string); !ok {
		t.Fatalf("expected a timestamp, got %v", rec["time"])
	}
}

func TestLogger_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	t.Setenv("CODEPAD_LOG_FILE", path)
	l := NewFromEnv()
	if !l.Enabled() {
		t.Fatalf("expected logging on with a log file")
	}
	l.Event("key", map[string]any{"rune": "a"})
	l.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"event":"key"`) {
		t.Fatalf("expected key event in %q", data)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	var out bytes.Buffer
	root := New(&out)
	child := root.With(map[string]any{"buffer": "0", "file": "a.txt"})
	child.Event("save.attempt", map[string]any{"file": "b.txt"})
	root.Event("run.end", nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec["buffer"] != "0" || rec["file"] != "b.txt" || rec["event"] != "save.attempt" {
		t.Fatalf("unexpected derived record %v", rec)
	}
	rec = nil
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := rec["buffer"]; ok {
		t.Fatalf("derived fields leaked into the parent: %v", rec)
	}

	var off *Logger
	if off.With(map[string]any{"buffer": "1"}).Enabled() {
		t.Fatalf("deriving from a nil logger must stay disabled")
	}
}
