package buffer

import (
	"errors"
	"fmt"
	"time"

	"example.com/codepad/pkg/logs"
	"example.com/codepad/pkg/memory"
	"example.com/codepad/pkg/seq"
)

const (
	defaultCapacity  = 1024
	defaultArenaSize = 1024
	defaultTabWidth  = 4
)

// Options configures a Buffer. Zero values select defaults.
type Options struct {
	Capacity  int // initial codepoint capacity
	ArenaSize int // bytes of per-frame scratch space
	TabWidth  int // columns between tab stops
	Alloc     memory.Allocator
	Logger    *logs.Logger
	Name      string           // tags log events from this buffer
	Now       func() time.Time // clock for status timings
}

// Buffer is an editable codepoint sequence with a line index, a cursor and
// the path/status text shown alongside it. The cursor offset is the source
// of truth; the cursor line is a cache kept valid by every operation.
type Buffer struct {
	text  *seq.Seq[rune]
	lines *LineIndex

	cursor     int
	cursorLine int
	newlines   int
	view       int

	mode     Mode
	action   PathAction
	path     *seq.Seq[byte]
	prevPath []byte
	status   *seq.Seq[byte]

	arena  *memory.Arena
	opt    Options
	logger *logs.Logger
}

// New creates an empty buffer.
func New(opt Options) (*Buffer, error) {
	if opt.Capacity <= 0 {
		opt.Capacity = defaultCapacity
	}
	if opt.ArenaSize <= 0 {
		opt.ArenaSize = defaultArenaSize
	}
	if opt.TabWidth <= 0 {
		opt.TabWidth = defaultTabWidth
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	opt.Alloc = memory.Or(opt.Alloc)

	b := &Buffer{opt: opt, logger: opt.Logger.With(map[string]any{"buffer": opt.Name})}
	var err error
	if b.text, err = seq.New[rune](opt.Alloc, opt.Capacity); err != nil {
		return nil, fmt.Errorf("buffer text: %w", err)
	}
	if b.lines, err = NewLineIndex(opt.Alloc, 8); err != nil {
		b.Close()
		return nil, err
	}
	if b.path, err = seq.New[byte](opt.Alloc, 8); err != nil {
		b.Close()
		return nil, fmt.Errorf("buffer path: %w", err)
	}
	if b.status, err = seq.New[byte](opt.Alloc, 8); err != nil {
		b.Close()
		return nil, fmt.Errorf("buffer status: %w", err)
	}
	if b.arena, err = memory.NewArena(opt.Alloc, opt.ArenaSize); err != nil {
		b.Close()
		return nil, fmt.Errorf("buffer arena: %w", err)
	}
	b.arena.Logger = b.logger
	b.arena.Name = opt.Name
	return b, nil
}

// Close returns all storage to the allocator. The buffer must not be used
// afterwards.
func (b *Buffer) Close() {
	if b.arena != nil {
		b.arena.Release()
	}
	b.text.Release()
	b.path.Release()
	b.status.Release()
	if b.lines != nil {
		b.lines.lines.Release()
	}
}

// Len returns the number of codepoints.
func (b *Buffer) Len() int { return b.text.Len() }

// RuneAt returns the codepoint at i, or 0 when i is out of range.
func (b *Buffer) RuneAt(i int) rune {
	if i < 0 || i >= b.text.Len() {
		return 0
	}
	return b.text.At(i)
}

// Text returns the codepoints. The slice is only valid until the next edit.
func (b *Buffer) Text() []rune { return b.text.Items() }

// String returns the content as a string.
func (b *Buffer) String() string { return string(b.text.Items()) }

// Lines returns the line index entries, valid until the next edit.
func (b *Buffer) Lines() []Line { return b.lines.Lines() }

// Line returns line i.
func (b *Buffer) Line(i int) Line { return b.lines.At(i) }

// LineCount returns the number of lines, at least one.
func (b *Buffer) LineCount() int { return b.lines.Len() }

// Newlines returns the number of newline codepoints in the buffer.
func (b *Buffer) Newlines() int { return b.newlines }

// Cursor returns the absolute cursor offset.
func (b *Buffer) Cursor() int { return b.cursor }

// CursorLine returns the index of the line holding the cursor.
func (b *Buffer) CursorLine() int { return b.cursorLine }

// Column returns the cursor offset relative to the start of its line.
func (b *Buffer) Column() int { return b.cursor - b.lines.At(b.cursorLine).Start }

// View returns the first visible line.
func (b *Buffer) View() int { return b.view }

// TabWidth returns the configured tab stop width.
func (b *Buffer) TabWidth() int { return b.opt.TabWidth }

// Mode returns the input mode.
func (b *Buffer) Mode() Mode { return b.mode }

// Path returns the path text.
func (b *Buffer) Path() string { return string(b.path.Items()) }

// Status returns the last status message.
func (b *Buffer) Status() string { return string(b.status.Items()) }

// Arena exposes the per-frame scratch arena.
func (b *Buffer) Arena() *memory.Arena { return b.arena }

// CursorLabel formats the 1-based cursor position into the arena. The
// result is valid until EndFrame.
func (b *Buffer) CursorLabel() ([]byte, error) {
	return b.arena.Sprintf("Line: %d Col: %d", b.cursorLine+1, b.Column()+1)
}

// PathLabel formats the path text into the arena.
func (b *Buffer) PathLabel() ([]byte, error) {
	return b.arena.Sprintf("<%s>", b.path.Items())
}

// EndFrame drains the arena. Labels handed out during the frame become
// invalid.
func (b *Buffer) EndFrame() { b.arena.Reset() }

func (b *Buffer) setStatus(format string, args ...any) {
	msg, err := b.arena.Sprintf(format, args...)
	if err != nil {
		msg = fmt.Appendf(nil, format, args...)
	}
	b.status.Reset()
	_ = b.status.InsertSlice(msg, 0)
}

func (b *Buffer) setPath(p []byte) {
	b.path.Reset()
	_ = b.path.InsertSlice(p, 0)
}

// fail turns err into a status message and returns it.
func (b *Buffer) fail(op string, err error) error {
	b.logger.Event("alloc.error", map[string]any{"op": op, "error": err.Error()})
	if errors.Is(err, memory.ErrOutOfMemory) {
		b.setStatus("out of memory")
	} else {
		b.setStatus("%s failed", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// fixCursorLine recomputes the cursor line from the cursor offset. An
// offset no line covers is clamped to the end of the last line.
func (b *Buffer) fixCursorLine() {
	i, ok := b.lines.Find(b.cursor)
	if !ok {
		b.cursor = b.lines.At(i).End
	}
	b.cursorLine = i
}

func (b *Buffer) clear() {
	b.text.Reset()
	_ = b.lines.Rescan(nil)
	b.cursor = 0
	b.cursorLine = 0
	b.newlines = 0
	b.view = 0
}
