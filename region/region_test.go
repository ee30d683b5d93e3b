package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavdev/payloadbuffer/internal/wire"
)

func TestNewFixedInitialFreeBlockSpansArena(t *testing.T) {
	r, err := NewFixed(256, false)
	require.NoError(t, err)

	h, err := r.Header()
	require.NoError(t, err)
	require.True(t, h.Fixed())
	require.False(t, h.Moveable())
	require.EqualValues(t, wire.HeaderSize, h.FreeList)
	require.EqualValues(t, wire.HeaderSize, h.HWM)

	fb := wire.ReadFreeBlock(r.Bytes(), h.FreeList)
	require.EqualValues(t, 256-wire.HeaderSize, fb.Length)
	require.EqualValues(t, 0, fb.Next)
}

func TestNewMoveableReservesResizerSlot(t *testing.T) {
	r, err := NewMoveable(256, false, HeapResizer{})
	require.NoError(t, err)

	h, err := r.Header()
	require.NoError(t, err)
	require.True(t, h.Moveable())
	require.EqualValues(t, wire.HeaderSize+wire.ResizerSlotSize, h.FreeList)
}

func TestNewMoveableRequiresResizer(t *testing.T) {
	_, err := NewMoveable(256, false, nil)
	require.Error(t, err)
}

func TestToAddressRejectsNullAndOutOfRange(t *testing.T) {
	r, err := NewFixed(256, false)
	require.NoError(t, err)

	require.Nil(t, r.ToAddress(0, 8))
	require.Nil(t, r.ToAddress(200, 100))
	require.NotNil(t, r.ToAddress(wire.HeaderSize, 8))
}

func TestToAddressToOffsetRoundTrip(t *testing.T) {
	r, err := NewFixed(256, false)
	require.NoError(t, err)

	view := r.ToAddress(wire.HeaderSize, 16)
	require.NotNil(t, view)
	require.EqualValues(t, wire.HeaderSize, r.ToOffset(view))
	require.EqualValues(t, wire.HeaderSize+4, r.ToOffset(view[4:]))
}

func TestToOffsetRejectsForeignSlice(t *testing.T) {
	r, err := NewFixed(256, false)
	require.NoError(t, err)

	foreign := make([]byte, 16)
	require.EqualValues(t, 0, r.ToOffset(foreign))
	require.EqualValues(t, 0, r.ToOffset(nil))
}

func TestGrowExtendsFullSizeAndPreservesPrefix(t *testing.T) {
	r, err := NewMoveable(256, false, HeapResizer{})
	require.NoError(t, err)

	// Mark arena bytes past the header and the initial free block's
	// {length, next} pair, so the header Grow parses stays intact.
	const mark = wire.HeaderSize + wire.ResizerSlotSize + wire.FreeBlockHeaderSize
	before := r.Bytes()
	copy(before[mark:], []byte("payloadbuffer"))

	added, err := r.Grow(1024)
	require.NoError(t, err)
	require.EqualValues(t, 1024-256, added)

	h, err := r.Header()
	require.NoError(t, err)
	require.EqualValues(t, 1024, h.FullSize)
	require.Equal(t, "payloadbuffer", string(r.Bytes()[mark:mark+len("payloadbuffer")]))
}

func TestGrowOnFixedRegionFails(t *testing.T) {
	r, err := NewFixed(256, false)
	require.NoError(t, err)

	_, err = r.Grow(1024)
	require.ErrorIs(t, err, ErrFixed)
}

func TestGrowNoopWhenAlreadyLargeEnough(t *testing.T) {
	r, err := NewMoveable(256, false, HeapResizer{})
	require.NoError(t, err)

	added, err := r.Grow(128)
	require.NoError(t, err)
	require.EqualValues(t, 0, added)
}
