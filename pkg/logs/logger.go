package logs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// sink is the output shared by a logger and everything derived from it.
type sink struct {
	mu sync.Mutex
	w  *bufio.Writer
	c  io.Closer
}

// Logger writes JSON lines with a timestamp and event fields.
// A nil *Logger is valid and discards everything.
type Logger struct {
	out    *sink
	fields map[string]any
}

// NewFromEnv returns a logger if CODEPAD_LOG is set to a truthy value
// or if CODEPAD_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./codepad.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("CODEPAD_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("CODEPAD_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "codepad.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		// If we cannot open the requested file, disable logging silently.
		return &Logger{}
	}
	return &Logger{out: &sink{w: bufio.NewWriter(f), c: f}}
}

// New returns a logger writing to w. Close does not close w.
func New(w io.Writer) *Logger {
	return &Logger{out: &sink{w: bufio.NewWriter(w)}}
}

// With returns a logger that adds fields to every event and writes to the
// same output. Fields passed to Event win over these.
func (l *Logger) With(fields map[string]any) *Logger {
	if !l.Enabled() {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{out: l.out, fields: merged}
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.out != nil
}

// Close flushes and closes the underlying file if enabled. Closing a
// derived logger closes the shared output.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_ = l.out.w.Flush()
	if l.out.c != nil {
		_ = l.out.c.Close()
		l.out.c = nil
	}
}

// Event writes a JSON line with the event name and fields.
// Common fields: key, rune, modifiers, action, cursor, buffer, file.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	rec := make(map[string]any, len(l.fields)+len(fields)+2)
	for k, v := range l.fields {
		rec[k] = v
	}
	for k, v := range fields {
		rec[k] = v
	}
	rec["time"] = time.Now().Format(time.RFC3339Nano)
	rec["event"] = event
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_ = json.NewEncoder(l.out.w).Encode(rec)
	_ = l.out.w.Flush()
}
