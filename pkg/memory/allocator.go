package memory

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrOutOfMemory is returned when an Allocator refuses a reservation.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrTooLarge is returned when a single arena request exceeds the arena.
	ErrTooLarge = errors.New("arena too small for allocation")
	// ErrReleased is returned by an arena whose storage was already released.
	ErrReleased = errors.New("arena released")
)

// Allocator accounts for backing storage. Reserve is called before storage
// of size bytes is created and Release after it is dropped.
type Allocator interface {
	Reserve(size int) error
	Release(size int)
}

type systemAllocator struct{}

func (systemAllocator) Reserve(size int) error {
	if size < 0 {
		return fmt.Errorf("reserve %d bytes: %w", size, ErrOutOfMemory)
	}
	return nil
}

func (systemAllocator) Release(int) {}

// System never refuses a reservation.
var System Allocator = systemAllocator{}

// Limited refuses reservations once Max bytes are outstanding.
type Limited struct {
	mu   sync.Mutex
	max  int
	used int
}

// NewLimited returns an allocator capped at max bytes.
func NewLimited(max int) *Limited {
	return &Limited{max: max}
}

// Reserve accounts size bytes or fails with ErrOutOfMemory.
func (l *Limited) Reserve(size int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if size < 0 || l.used+size > l.max {
		return fmt.Errorf("reserve %d bytes (%d of %d in use): %w", size, l.used, l.max, ErrOutOfMemory)
	}
	l.used += size
	return nil
}

// Release returns size bytes to the budget.
func (l *Limited) Release(size int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.used -= size
	if l.used < 0 {
		l.used = 0
	}
}

// Used reports the bytes currently reserved.
func (l *Limited) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Max reports the cap.
func (l *Limited) Max() int { return l.max }

// Or returns a when it is non-nil and System otherwise.
func Or(a Allocator) Allocator {
	if a == nil {
		return System
	}
	return a
}
