package alloc

import "errors"

var (
	// ErrNoSpace is returned when the free list and the small-block tier
	// both fail to satisfy a request and the region cannot grow further.
	ErrNoSpace = errors.New("alloc: out of space")

	// ErrBadOffset is returned when an offset passed to Free or Realloc
	// does not address a live allocation.
	ErrBadOffset = errors.New("alloc: offset does not address a live allocation")

	// ErrGrowFailed is returned when the region's resizer refuses or fails
	// a growth request.
	ErrGrowFailed = errors.New("alloc: region grow failed")

	// ErrFixed is returned when a fixed (non-moveable) region runs out of
	// free space; there is no resizer to fall back on.
	ErrFixed = errors.New("alloc: fixed region exhausted")

	// ErrTooLarge is returned when a requested size cannot be represented,
	// e.g. it overflows the region's addressable offset space.
	ErrTooLarge = errors.New("alloc: requested size too large")

	// ErrZeroSize is returned when Allocate is asked for 0 bytes; the core
	// treats that as a malformed request rather than a valid empty cell.
	ErrZeroSize = errors.New("alloc: allocation size must be > 0")
)
