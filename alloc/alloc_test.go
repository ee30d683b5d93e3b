package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

func newFixedAllocator(t *testing.T, size uint32) *Allocator {
	t.Helper()
	r, err := region.NewFixed(size, true)
	require.NoError(t, err)
	return New(r, ConfigLargeMessages)
}

func TestAllocateFreeRoundTrip(t *testing.T) {
	a := newFixedAllocator(t, 4096)

	off, err := a.Allocate(100, true)
	require.NoError(t, err)
	require.NotZero(t, off)

	view := a.Region().ToAddress(off, 100)
	require.NotNil(t, view)
	for _, b := range view {
		require.Zero(t, b)
	}

	require.NoError(t, a.Free(off))
}

func TestAllocateHonorsAlignment(t *testing.T) {
	a := newFixedAllocator(t, 4096)
	off, err := a.Allocate(5, false)
	require.NoError(t, err)
	require.Zero(t, off%wire.BlockAlignment)
}

func TestFreeingAdjacentBlocksCoalesces(t *testing.T) {
	a := newFixedAllocator(t, 4096)

	a1, err := a.Allocate(64, false)
	require.NoError(t, err)
	a2, err := a.Allocate(64, false)
	require.NoError(t, err)
	a3, err := a.Allocate(64, false)
	require.NoError(t, err)

	require.NoError(t, a.Free(a1))
	require.NoError(t, a.Free(a2))
	require.NoError(t, a.Free(a3))

	h, err := a.Region().Header()
	require.NoError(t, err)

	// Freeing every live allocation should coalesce the whole arena back
	// into a single free block, with no dangling internal boundaries.
	fb := wire.ReadFreeBlock(a.Region().Bytes(), h.FreeList)
	require.Zero(t, fb.Next)
}

func TestFreeListStaysAddressOrdered(t *testing.T) {
	a := newFixedAllocator(t, 8192)

	offs := make([]uint32, 5)
	for i := range offs {
		off, err := a.Allocate(96, false)
		require.NoError(t, err)
		offs[i] = off
	}
	// Free out of order so the list has to insert into the middle.
	require.NoError(t, a.Free(offs[3]))
	require.NoError(t, a.Free(offs[1]))
	require.NoError(t, a.Free(offs[4]))

	h, err := a.Region().Header()
	require.NoError(t, err)

	data := a.Region().Bytes()
	prevOff := h.FreeList
	require.NotZero(t, prevOff)
	cur := wire.ReadFreeBlock(data, prevOff)
	for cur.Next != 0 {
		require.Greater(t, cur.Next, prevOff, "free list must stay in strictly ascending address order")
		prevOff = cur.Next
		cur = wire.ReadFreeBlock(data, prevOff)
	}
}

func TestAllocateGrowsMoveableRegion(t *testing.T) {
	r, err := region.NewMoveable(256, false, region.HeapResizer{})
	require.NoError(t, err)
	a := New(r, Config{GrowthFactor: 2.0, MinGrowth: 256})

	off, err := a.Allocate(1024, false)
	require.NoError(t, err)
	require.NotZero(t, off)

	h, err := r.Header()
	require.NoError(t, err)
	require.Greater(t, h.FullSize, uint32(256))
}

func TestAllocateOnFixedRegionExhausts(t *testing.T) {
	a := newFixedAllocator(t, 128)
	_, err := a.Allocate(1<<20, false)
	require.ErrorIs(t, err, ErrFixed)
}

func TestSmallBlockAllocateAndFreeReuseSlot(t *testing.T) {
	a := New(mustRegion(t, 8192), DefaultConfig)

	first, err := a.Allocate(10, false)
	require.NoError(t, err)
	w := wire.ReadLengthWord(a.Region().Bytes(), int32(first))
	require.True(t, w.IsSmallBlock())

	require.NoError(t, a.Free(first))

	second, err := a.Allocate(10, false)
	require.NoError(t, err)
	require.Equal(t, first, second, "freed small-block slot should be reused before a new run is created")
}

func TestSmallBlockGrowsNewRunWhenFull(t *testing.T) {
	a := New(mustRegion(t, 1<<16), DefaultConfig)

	// The 16-byte class ships with 20 slots per run; fill one run and
	// confirm the next allocation lands in a second run.
	for i := 0; i < 20; i++ {
		_, err := a.Allocate(16, false)
		require.NoError(t, err)
	}
	extra, err := a.Allocate(16, false)
	require.NoError(t, err)
	w := wire.ReadLengthWord(a.Region().Bytes(), int32(extra))
	runIdx, _, _ := w.DecodeSmallBlock()
	require.Equal(t, 1, runIdx)
}

func TestReallocSameRoundedSizeIsInPlace(t *testing.T) {
	a := newFixedAllocator(t, 4096)
	off, err := a.Allocate(20, false)
	require.NoError(t, err)

	next, err := a.Realloc(off, 22)
	require.NoError(t, err)
	require.Equal(t, off, next)
}

func TestReallocGrowIntoTrailingFreeBlock(t *testing.T) {
	a := newFixedAllocator(t, 4096)
	off, err := a.Allocate(32, false)
	require.NoError(t, err)
	trailing, err := a.Allocate(200, false)
	require.NoError(t, err)
	require.NoError(t, a.Free(trailing))

	copy(a.Region().ToAddress(off, 32), []byte("0123456789012345678901234567890"))

	grown, err := a.Realloc(off, 100)
	require.NoError(t, err)
	require.Equal(t, off, grown, "growth should expand in place into the adjacent free block")
}

func TestReallocShrinkReturnsTailToFreeList(t *testing.T) {
	a := newFixedAllocator(t, 4096)
	off, err := a.Allocate(200, false)
	require.NoError(t, err)

	h0, err := a.Region().Header()
	require.NoError(t, err)
	before := h0.FreeList

	shrunk, err := a.Realloc(off, 16)
	require.NoError(t, err)
	require.Equal(t, off, shrunk)

	h1, err := a.Region().Header()
	require.NoError(t, err)
	require.NotEqual(t, before, h1.FreeList, "shrinking should hand the tail back to the free list")
}

func TestReallocRelocatesWhenNoRoomAdjacent(t *testing.T) {
	a := newFixedAllocator(t, 512)
	off, err := a.Allocate(16, false)
	require.NoError(t, err)
	blocker, err := a.Allocate(16, false)
	require.NoError(t, err)
	_ = blocker

	copy(a.Region().ToAddress(off, 16), []byte("0123456789012345"))

	grown, err := a.Realloc(off, 300)
	require.NoError(t, err)
	view := a.Region().ToAddress(grown, 16)
	require.Equal(t, "0123456789012345", string(view))
}

func mustRegion(t *testing.T, size uint32) *region.Region {
	t.Helper()
	r, err := region.NewFixed(size, true)
	require.NoError(t, err)
	return r
}
