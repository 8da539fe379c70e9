// Package seq implements a flat growable sequence of fixed-size elements.
//
// Seq is deliberately a plain array: inserting or removing shifts every
// later element, so both are O(n). Capacity doubles when the array is full,
// and every growth is accounted against the Allocator given at construction.
package seq

import (
	"errors"
	"fmt"
	"unsafe"

	"example.com/codepad/pkg/memory"
)

// ErrIndex reports an index outside the sequence.
var ErrIndex = errors.New("index out of range")

// Seq is a resizable random-access container.
type Seq[T any] struct {
	items []T
	alloc memory.Allocator
	elem  int
}

// New allocates backing storage for exactly capacity elements.
func New[T any](alloc memory.Allocator, capacity int) (*Seq[T], error) {
	if capacity < 0 {
		capacity = 0
	}
	var zero T
	s := &Seq[T]{alloc: memory.Or(alloc), elem: int(unsafe.Sizeof(zero))}
	if err := s.alloc.Reserve(capacity * s.elem); err != nil {
		return nil, fmt.Errorf("sequence of %d elements: %w", capacity, err)
	}
	s.items = make([]T, 0, capacity)
	return s, nil
}

// Len returns the number of elements.
func (s *Seq[T]) Len() int { return len(s.items) }

// Cap returns the capacity of the backing storage.
func (s *Seq[T]) Cap() int { return cap(s.items) }

// At returns the element at i. It panics if i is out of range, like a slice.
func (s *Seq[T]) At(i int) T { return s.items[i] }

// Set overwrites the element at i.
func (s *Seq[T]) Set(i int, v T) { s.items[i] = v }

// Items returns the live elements. The slice aliases the sequence and is
// only valid until the next mutation.
func (s *Seq[T]) Items() []T { return s.items }

// Insert places v at index i, shifting later elements right. An index past
// the end first extends the sequence with zero values up to i.
func (s *Seq[T]) Insert(v T, i int) error {
	if i < 0 {
		return fmt.Errorf("insert at %d: %w", i, ErrIndex)
	}
	n := len(s.items)
	need := n + 1
	if i > n {
		need = i + 1
	}
	if err := s.reserve(need); err != nil {
		return err
	}
	if i > n {
		// zero-fill the gap; reslicing keeps stale values otherwise
		s.items = s.items[:i]
		clear(s.items[n:i])
		n = i
	}
	s.items = s.items[:n+1]
	copy(s.items[i+1:], s.items[i:n])
	s.items[i] = v
	return nil
}

// InsertSlice places vs at index i with a single shift.
func (s *Seq[T]) InsertSlice(vs []T, i int) error {
	if i < 0 || i > len(s.items) {
		return fmt.Errorf("insert %d elements at %d of %d: %w", len(vs), i, len(s.items), ErrIndex)
	}
	if len(vs) == 0 {
		return nil
	}
	n := len(s.items)
	if err := s.reserve(n + len(vs)); err != nil {
		return err
	}
	s.items = s.items[:n+len(vs)]
	copy(s.items[i+len(vs):], s.items[i:n])
	copy(s.items[i:], vs)
	return nil
}

// Remove deletes the element at i, shifting later elements left. Removing
// from an empty sequence is a no-op.
func (s *Seq[T]) Remove(i int) error {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	if i < 0 || i >= n {
		return fmt.Errorf("remove at %d of %d: %w", i, n, ErrIndex)
	}
	copy(s.items[i:], s.items[i+1:])
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return nil
}

// RemoveRange deletes the elements in [start, end) with a single shift.
func (s *Seq[T]) RemoveRange(start, end int) error {
	n := len(s.items)
	if start < 0 || end < start || end > n {
		return fmt.Errorf("remove [%d,%d) of %d: %w", start, end, n, ErrIndex)
	}
	copy(s.items[start:], s.items[end:])
	clear(s.items[n-(end-start) : n])
	s.items = s.items[:n-(end-start)]
	return nil
}

// Push appends v.
func (s *Seq[T]) Push(v T) error {
	return s.Insert(v, len(s.items))
}

// Pop removes and returns the last element. It reports false on an empty
// sequence.
func (s *Seq[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	_ = s.Remove(n - 1)
	return v, true
}

// Truncate shortens the sequence to n elements, keeping the storage.
func (s *Seq[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(s.items) {
		return
	}
	s.items = s.items[:n]
}

// Reset empties the sequence without releasing storage.
func (s *Seq[T]) Reset() { s.Truncate(0) }

// Release drops the backing storage and returns it to the allocator.
func (s *Seq[T]) Release() {
	if s == nil {
		return
	}
	s.alloc.Release(cap(s.items) * s.elem)
	s.items = nil
}

// reserve grows the storage by doubling until it holds need elements.
func (s *Seq[T]) reserve(need int) error {
	old := cap(s.items)
	if need <= old {
		return nil
	}
	c := old
	if c == 0 {
		c = 1
	}
	for c < need {
		c *= 2
	}
	if err := s.alloc.Reserve((c - old) * s.elem); err != nil {
		return fmt.Errorf("grow sequence from %d to %d elements: %w", old, c, err)
	}
	grown := make([]T, len(s.items), c)
	copy(grown, s.items)
	s.items = grown
	return nil
}
