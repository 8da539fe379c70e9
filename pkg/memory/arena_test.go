package memory

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"example.com/codepad/pkg/logs"
)

func TestArena_AllocBumps(t *testing.T) {
	a, err := NewArena(System, 16)
	if err != nil {
		t.Fatalf("new arena: %v", err)
	}
	p, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	if len(p) != 4 || a.Used() != 4 {
		t.Fatalf("expected 4 bytes used, got len=%d used=%d", len(p), a.Used())
	}
	q, _ := a.Alloc(8)
	if a.Used() != 12 {
		t.Fatalf("expected used 12, got %d", a.Used())
	}
	// the two leases must not alias
	copy(p, "abcd")
	copy(q, "xxxxxxxx")
	if string(p) != "abcd" {
		t.Fatalf("lease overwritten: %q", p)
	}
	a.Reset()
	if a.Used() != 0 || a.Cap() != 16 {
		t.Fatalf("reset should rewind to base: used=%d cap=%d", a.Used(), a.Cap())
	}
}

func TestArena_OverflowResetsAndWarns(t *testing.T) {
	var out bytes.Buffer
	a, _ := NewArena(System, 8)
	a.Logger = logs.New(&out)
	a.Name = "status"
	if _, err := a.Alloc(6); err != nil {
		t.Fatalf("alloc: %v", err)
	}
	p, err := a.Alloc(4)
	if err != nil {
		t.Fatalf("overflowing alloc should succeed after reset: %v", err)
	}
	if len(p) != 4 || a.Used() != 4 {
		t.Fatalf("expected fresh allocation from base, used=%d", a.Used())
	}
	if a.Overflows() != 1 {
		t.Fatalf("expected 1 overflow, got %d", a.Overflows())
	}
	s := bufio.NewScanner(&out)
	found := false
	for s.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(s.Bytes(), &rec); err != nil {
			t.Fatalf("unmarshal log line: %v", err)
		}
		if rec["event"] == "arena.overflow" && rec["arena"] == "status" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected arena.overflow event, log was %q", out.String())
	}
}

func TestArena_TooLarge(t *testing.T) {
	a, _ := NewArena(System, 8)
	if _, err := a.Alloc(9); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestArena_Sprintf(t *testing.T) {
	a, _ := NewArena(System, 32)
	p, err := a.Sprintf("Line: %d Col: %d", 3, 7)
	if err != nil {
		t.Fatalf("sprintf: %v", err)
	}
	if string(p) != "Line: 3 Col: 7" {
		t.Fatalf("unexpected text %q", p)
	}
	if a.Used() != len(p) {
		t.Fatalf("expected used %d, got %d", len(p), a.Used())
	}
	q, _ := a.Sprintf("<%s>", "main.c")
	if string(p) != "Line: 3 Col: 7" || string(q) != "<main.c>" {
		t.Fatalf("leases clobbered: %q %q", p, q)
	}
	// does not fit in what is left: wraps to base
	r, err := a.Sprintf("%s", "0123456789abcdef")
	if err != nil {
		t.Fatalf("sprintf after overflow: %v", err)
	}
	if string(r) != "0123456789abcdef" || a.Overflows() != 1 {
		t.Fatalf("expected wrap, got %q overflows=%d", r, a.Overflows())
	}
	if _, err := a.Sprintf("%040d", 1); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge for oversized text, got %v", err)
	}
}

func TestArena_ReleaseOnce(t *testing.T) {
	lim := NewLimited(64)
	a, err := NewArena(lim, 32)
	if err != nil {
		t.Fatalf("new arena: %v", err)
	}
	if lim.Used() != 32 {
		t.Fatalf("expected 32 reserved, got %d", lim.Used())
	}
	a.Release()
	a.Release()
	if lim.Used() != 0 {
		t.Fatalf("expected all bytes returned once, got %d", lim.Used())
	}
	if _, err := a.Alloc(1); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
}

func TestLimited_Refuses(t *testing.T) {
	lim := NewLimited(10)
	if err := lim.Reserve(8); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := lim.Reserve(4); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
	lim.Release(8)
	if err := lim.Reserve(10); err != nil {
		t.Fatalf("reserve after release: %v", err)
	}
	if _, err := NewArena(lim, 1); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected arena creation to fail, got %v", err)
	}
}
