package memory

import (
	"fmt"

	"example.com/codepad/pkg/logs"
)

// Arena is a fixed-capacity bump allocator. Allocations carry no metadata;
// Reset rewinds the high-water mark without touching the backing storage.
type Arena struct {
	buf       []byte
	end       int
	alloc     Allocator
	released  bool
	overflows int

	// Logger receives an arena.overflow event whenever a request forces a
	// reset. May be nil.
	Logger *logs.Logger
	// Name tags log events so arenas of different owners can be told apart.
	Name string
}

// NewArena reserves capacity bytes from alloc once.
func NewArena(alloc Allocator, capacity int) (*Arena, error) {
	if capacity < 0 {
		capacity = 0
	}
	alloc = Or(alloc)
	if err := alloc.Reserve(capacity); err != nil {
		return nil, fmt.Errorf("arena of %d bytes: %w", capacity, err)
	}
	return &Arena{buf: make([]byte, capacity), alloc: alloc}, nil
}

// Cap returns the arena capacity in bytes.
func (a *Arena) Cap() int { return len(a.buf) }

// Used returns the current high-water mark.
func (a *Arena) Used() int { return a.end }

// Overflows returns how many allocations forced an implicit reset.
func (a *Arena) Overflows() int { return a.overflows }

// Alloc returns size bytes from the arena. If the request does not fit in
// the remaining space the arena warns and resets first, invalidating every
// slice handed out before. A request larger than the whole arena fails.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if size < 0 {
		return nil, fmt.Errorf("alloc %d bytes: %w", size, ErrTooLarge)
	}
	if a.end+size > len(a.buf) {
		a.overflow(size)
	}
	if size > len(a.buf) {
		a.Logger.Event("arena.error", map[string]any{"arena": a.Name, "size": size, "capacity": len(a.buf)})
		return nil, fmt.Errorf("alloc %d bytes from %d byte arena: %w", size, len(a.buf), ErrTooLarge)
	}
	p := a.buf[a.end : a.end+size : a.end+size]
	a.end += size
	return p, nil
}

// Sprintf formats into the arena. The result is valid until the next reset.
func (a *Arena) Sprintf(format string, args ...any) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	start := a.end
	out := fmt.Appendf(a.buf[start:start], format, args...)
	if len(out) <= len(a.buf)-start {
		// formatted in place
		a.end += len(out)
		return a.buf[start:a.end:a.end], nil
	}
	p, err := a.Alloc(len(out))
	if err != nil {
		return nil, err
	}
	copy(p, out)
	return p, nil
}

// Reset rewinds the arena to its base.
func (a *Arena) Reset() {
	a.end = 0
}

// Release returns the backing storage to the allocator. Calling it more
// than once has no further effect.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.released = true
	a.alloc.Release(len(a.buf))
	a.buf = nil
	a.end = 0
}

func (a *Arena) overflow(size int) {
	a.overflows++
	a.Logger.Event("arena.overflow", map[string]any{
		"arena":    a.Name,
		"size":     size,
		"used":     a.end,
		"capacity": len(a.buf),
	})
	a.Reset()
}
