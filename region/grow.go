package region

import (
	"errors"
	"fmt"

	"github.com/pavdev/payloadbuffer/internal/wire"
)

// ErrFixed is returned by Grow when called on a region with no resizer.
var ErrFixed = errors.New("region: fixed region cannot grow")

// Grow enlarges the region to at least newSize bytes via its resizer,
// updates full_size in the header, and returns the number of newly
// available bytes. It never shrinks and never touches the free list or hwm:
// that splicing is the allocator's job, once it can see the new tail.
func (r *Region) Grow(newSize uint32) (added uint32, err error) {
	h, err := r.Header()
	if err != nil {
		return 0, err
	}
	if newSize <= h.FullSize {
		return 0, nil
	}
	if r.resizer == nil {
		return 0, ErrFixed
	}
	old := h.FullSize
	if err := r.resizer.Resize(&r.data, old, newSize); err != nil {
		return 0, fmt.Errorf("region: grow: %w", err)
	}
	if uint32(len(r.data)) < newSize {
		return 0, fmt.Errorf("region: resizer returned %d bytes, want %d", len(r.data), newSize)
	}
	h.FullSize = newSize
	wire.WriteHeader(r.data, h)
	return newSize - old, nil
}
