// Package memory provides the allocation handles used by the text engine.
//
// An Allocator accounts for the bytes of backing storage a component holds.
// Components receive one explicitly instead of reaching for a process-wide
// default, so a bounded Allocator can make growth fail with ErrOutOfMemory
// rather than taking the process down.
//
// Arena is a fixed-capacity bump allocator for transient per-frame data.
// Slices it returns are leases: they stay valid only until the next Reset,
// which may also happen implicitly when an allocation overflows.
package memory
