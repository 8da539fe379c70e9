package editor

import (
	"errors"
	"fmt"
	"strconv"

	"example.com/codepad/pkg/buffer"
	"example.com/codepad/pkg/logs"
	"example.com/codepad/pkg/memory"
)

// Options configures an Editor. Buffer options apply to every buffer.
type Options struct {
	Buffers   int // number of buffers, default 2
	ArenaSize int // bytes of editor scratch space
	Buffer    buffer.Options
	Logger    *logs.Logger
}

// Editor owns a fixed set of buffers and the focused buffer index.
type Editor struct {
	buffers []*buffer.Buffer
	current int
	arena   *memory.Arena
	closed  bool
}

// New creates an Editor with empty buffers.
func New(opt Options) (*Editor, error) {
	if opt.Buffers <= 0 {
		opt.Buffers = 2
	}
	if opt.ArenaSize <= 0 {
		opt.ArenaSize = 256
	}
	if opt.Buffer.Logger == nil {
		opt.Buffer.Logger = opt.Logger
	}
	e := &Editor{}
	var err error
	if e.arena, err = memory.NewArena(memory.Or(opt.Buffer.Alloc), opt.ArenaSize); err != nil {
		return nil, fmt.Errorf("editor arena: %w", err)
	}
	e.arena.Logger = opt.Logger
	e.arena.Name = "editor"
	for i := 0; i < opt.Buffers; i++ {
		bo := opt.Buffer
		bo.Name = strconv.Itoa(i)
		b, err := buffer.New(bo)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
		e.buffers = append(e.buffers, b)
	}
	return e, nil
}

// Current returns the focused buffer.
func (e *Editor) Current() *buffer.Buffer { return e.buffers[e.current] }

// Index returns the focused buffer index.
func (e *Editor) Index() int { return e.current }

// Buffers returns all buffers in order.
func (e *Editor) Buffers() []*buffer.Buffer { return e.buffers }

// Next advances focus to the next buffer and returns it.
func (e *Editor) Next() *buffer.Buffer {
	e.current = (e.current + 1) % len(e.buffers)
	return e.Current()
}

// Prev moves focus to the previous buffer and returns it.
func (e *Editor) Prev() *buffer.Buffer {
	e.current = (e.current - 1 + len(e.buffers)) % len(e.buffers)
	return e.Current()
}

// Focus selects buffer i. Out of range indexes are ignored.
func (e *Editor) Focus(i int) *buffer.Buffer {
	if i >= 0 && i < len(e.buffers) {
		e.current = i
	}
	return e.Current()
}

// Title formats "[n/total] <path>" for the focused buffer into the editor
// arena. The result is valid until EndFrame. A title longer than the whole
// arena is formatted on the heap instead.
func (e *Editor) Title() ([]byte, error) {
	const format = "[%d/%d] <%s>"
	args := []any{e.current + 1, len(e.buffers), e.Current().Path()}
	title, err := e.arena.Sprintf(format, args...)
	if errors.Is(err, memory.ErrTooLarge) {
		return fmt.Appendf(nil, format, args...), nil
	}
	return title, err
}

// EndFrame drains the editor arena and every buffer arena.
func (e *Editor) EndFrame() {
	e.arena.Reset()
	for _, b := range e.buffers {
		b.EndFrame()
	}
}

// Close releases every buffer and arena. Further calls do nothing.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	for _, b := range e.buffers {
		b.Close()
	}
	e.arena.Release()
}
