package frame

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/region"
)

func newAllocator(t *testing.T, size uint32) *alloc.Allocator {
	t.Helper()
	r, err := region.NewFixed(size, true)
	require.NoError(t, err)
	return alloc.New(r, alloc.DefaultConfig)
}

func TestSetMessageAndRead(t *testing.T) {
	a := newAllocator(t, 4096)
	require.NoError(t, SetMessage(a, []byte("hello")))

	got, err := Message(a.Region())
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestMessageDefaultsToNil(t *testing.T) {
	a := newAllocator(t, 4096)
	got, err := Message(a.Region())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSetMessageReplacesPrevious(t *testing.T) {
	a := newAllocator(t, 4096)
	require.NoError(t, SetMessage(a, []byte("first")))
	require.NoError(t, SetMessage(a, []byte("second, and longer")))

	got, err := Message(a.Region())
	require.NoError(t, err)
	require.Equal(t, []byte("second, and longer"), got)
}

func TestSetMetadataIndependentOfMessage(t *testing.T) {
	a := newAllocator(t, 4096)
	require.NoError(t, SetMessage(a, []byte("payload")))
	require.NoError(t, SetMetadata(a, []byte("meta")))

	msg, err := Message(a.Region())
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), msg)

	meta, err := Metadata(a.Region())
	require.NoError(t, err)
	require.Equal(t, []byte("meta"), meta)
}

func TestPresenceSetTracksIndividualBits(t *testing.T) {
	a := newAllocator(t, 4096)
	p, err := NewPresenceSet(a, 20)
	require.NoError(t, err)

	set, err := p.IsSet(a.Region(), 5)
	require.NoError(t, err)
	require.False(t, set)

	require.NoError(t, p.Set(a.Region(), 5))
	set, err = p.IsSet(a.Region(), 5)
	require.NoError(t, err)
	require.True(t, set)

	set, err = p.IsSet(a.Region(), 6)
	require.NoError(t, err)
	require.False(t, set, "setting one bit must not disturb its neighbors")

	require.NoError(t, p.Clear(a.Region(), 5))
	set, err = p.IsSet(a.Region(), 5)
	require.NoError(t, err)
	require.False(t, set)
}

func TestPresenceSetRejectsOutOfRange(t *testing.T) {
	a := newAllocator(t, 4096)
	p, err := NewPresenceSet(a, 4)
	require.NoError(t, err)
	require.ErrorIs(t, p.Set(a.Region(), 10), ErrCorrupt)
}

func TestDumpIncludesHeaderAndFreeList(t *testing.T) {
	a := newAllocator(t, 4096)
	require.NoError(t, SetMessage(a, []byte("x")))

	var buf bytes.Buffer
	require.NoError(t, Dump(a.Region(), &buf))
	out := buf.String()
	require.True(t, strings.Contains(out, "full_size"))
	require.True(t, strings.Contains(out, "free block"))
}
