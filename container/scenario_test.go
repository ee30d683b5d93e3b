package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavdev/payloadbuffer/internal/wire"
)

// Replacing a string cell's contents, including a grow that forces a
// relocation, must never disturb bytes belonging to an unrelated live
// allocation sitting elsewhere in the arena.
func TestStringReplacementPreservesOtherAllocations(t *testing.T) {
	a := newAllocator(t, 4096)

	sentinel, err := a.Allocate(64, true)
	require.NoError(t, err)
	pattern := make([]byte, 64)
	for i := range pattern {
		pattern[i] = 0x7E
	}
	copy(a.Region().ToAddress(sentinel, 64), pattern)

	off, err := SetString(a, 0, "foobar")
	require.NoError(t, err)
	got, err := ReadString(a.Region(), off)
	require.NoError(t, err)
	require.Equal(t, "foobar", got)

	off, err = SetString(a, off, "foobar has been replaced")
	require.NoError(t, err)
	got, err = ReadString(a.Region(), off)
	require.NoError(t, err)
	require.Equal(t, "foobar has been replaced", got)

	require.Equal(t, pattern, a.Region().ToAddress(sentinel, 64),
		"replacing the string cell must not corrupt other live allocations")
}

// Pushing a long run of elements must keep every previously written value
// readable at each step, and the backing block's capacity, read straight off
// its recorded length word, must have doubled enough times to hold them all.
func TestVectorGrowthDoublesCapacityAsItFills(t *testing.T) {
	a := newAllocator(t, 16384)
	v, err := NewVector[uint32](a, Uint32Codec{})
	require.NoError(t, err)

	const n = 100
	var lastCapacity int32 = -1
	growthEvents := 0

	for i := uint32(0); i < n; i++ {
		require.NoError(t, v.Push(i+1))

		for j := uint32(0); j <= i; j++ {
			got, err := v.Get(j)
			require.NoError(t, err)
			require.Equal(t, j+1, got, "value at index %d must survive subsequent pushes", j)
		}

		data := a.Region().Bytes()
		cell := wire.ReadVectorCell(data, v.HeaderOffset())
		var capacity int32
		if cell.DataOffset != 0 {
			capacity = wire.CellSize(data, cell.DataOffset) / 4
		}
		if capacity != lastCapacity {
			growthEvents++
			lastCapacity = capacity
		}
	}

	require.GreaterOrEqual(t, growthEvents, 6,
		"filling a 4-slot-start vector to 100 elements must double capacity at least ceil(log2(100/2)) times")
}
