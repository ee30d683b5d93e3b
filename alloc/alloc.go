package alloc

import (
	"errors"
	"fmt"

	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

// Allocator carves payload cells out of a Region's arena. It holds no
// bytes of its own: every field it touches lives in the region, so an
// Allocator is cheap to construct and safe to rebuild after a region has
// been reopened from disk.
type Allocator struct {
	region *region.Region
	cfg    Config
}

// New wraps r with an Allocator governed by cfg.
func New(r *region.Region, cfg Config) *Allocator {
	return &Allocator{region: r, cfg: cfg}
}

// Region returns the allocator's underlying region.
func (a *Allocator) Region() *region.Region { return a.region }

// Allocate reserves n bytes and returns the offset of the payload. If clear
// is set the returned bytes are zeroed. Requests at or below the largest
// small-block size class are routed to the bitmap tier when enabled;
// everything else goes to the free list.
func (a *Allocator) Allocate(n int32, clear bool) (uint32, error) {
	if n == 0 {
		return 0, ErrZeroSize
	}
	if n < 0 {
		return 0, ErrTooLarge
	}
	if a.cfg.SmallBlocksEnabled {
		if classIndexFor(n) >= 0 {
			return a.allocateSmall(n, clear)
		}
	}
	return a.allocateLarge(n, clear)
}

// AllocateAligned reserves n bytes on the general free list, bypassing the
// small-block tier even when it is enabled. The free list always hands out
// 8-byte-aligned payloads (§4.2); the bitmap tier's slot stride does not
// guarantee that for every size class, so callers with an 8-byte-alignment
// requirement of their own (the main-message slot, §4.7) must use this
// instead of Allocate.
func (a *Allocator) AllocateAligned(n int32, clear bool) (uint32, error) {
	if n == 0 {
		return 0, ErrZeroSize
	}
	if n < 0 {
		return 0, ErrTooLarge
	}
	return a.allocateLarge(n, clear)
}

// Free releases the allocation at off, whichever tier it belongs to.
func (a *Allocator) Free(off uint32) error {
	if off < wire.CellHeaderSize {
		return ErrBadOffset
	}
	data := a.region.Bytes()
	if int(off) > len(data) {
		return ErrBadOffset
	}
	w := wire.ReadLengthWord(data, int32(off))
	if w.IsSmallBlock() {
		return a.freeSmall(off, w)
	}
	return a.freeLarge(off, w.FreeListSize())
}

// Realloc resizes the allocation at off to newSize, preserving the
// min(oldSize, newSize) leading bytes of its payload. It may return a
// different offset; callers must stop using off once Realloc succeeds.
func (a *Allocator) Realloc(off uint32, newSize int32) (uint32, error) {
	if off < wire.CellHeaderSize || newSize < 0 {
		return 0, ErrBadOffset
	}
	w := wire.ReadLengthWord(a.region.Bytes(), int32(off))
	if w.IsSmallBlock() {
		return a.reallocSmall(off, w, newSize)
	}
	return a.reallocLarge(off, w.FreeListSize(), newSize)
}

func (a *Allocator) grow(minAdd int32) error {
	h, err := a.region.Header()
	if err != nil {
		return err
	}
	old := h.FullSize
	target := old + uint32(minAdd)
	if grown := uint32(float64(old) * a.cfg.GrowthFactor); grown > target {
		target = grown
	}
	if floor := old + a.cfg.MinGrowth; target < floor {
		target = floor
	}

	added, err := a.region.Grow(target)
	if errors.Is(err, region.ErrFixed) {
		return ErrFixed
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGrowFailed, err)
	}
	if added == 0 {
		return ErrNoSpace
	}
	a.spliceGrowth(old, added)
	return nil
}

// spliceGrowth appends the freshly grown tail [oldSize, oldSize+added) to
// the free list. Because every existing free block has a lower address,
// the new span is always the list's new tail.
func (a *Allocator) spliceGrowth(oldSize, added uint32) {
	data := a.region.Bytes()
	h, _ := a.region.Header()

	if h.FreeList == 0 {
		wire.WriteFreeBlock(data, oldSize, wire.FreeBlock{Length: int32(added), Next: 0})
		h.FreeList = oldSize
		a.region.SetHeader(h)
		return
	}
	prevOff := h.FreeList
	prev := wire.ReadFreeBlock(data, prevOff)
	for prev.Next != 0 {
		prevOff = prev.Next
		prev = wire.ReadFreeBlock(data, prevOff)
	}
	if prevOff+uint32(prev.Length) == oldSize {
		prev.Length += int32(added)
		wire.WriteFreeBlock(data, prevOff, prev)
		return
	}
	wire.WriteFreeBlock(data, oldSize, wire.FreeBlock{Length: int32(added), Next: 0})
	prev.Next = oldSize
	wire.WriteFreeBlock(data, prevOff, prev)
}

func (a *Allocator) bumpHWM(off uint32) {
	h, _ := a.region.Header()
	if off > h.HWM {
		h.HWM = off
		a.region.SetHeader(h)
	}
}

func clearBytes(data []byte, off uint32, n int32) {
	for i := uint32(0); i < uint32(n); i++ {
		data[off+i] = 0
	}
}
