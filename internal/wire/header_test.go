package wire

import "testing"

func TestInitFixedLeavesOneFreeBlockSpanningTheArena(t *testing.T) {
	b := make([]byte, 4096)
	h := InitFixed(b, 4096, false)

	if !h.Fixed() || h.Moveable() {
		t.Fatalf("InitFixed produced a header that doesn't read back as fixed")
	}
	if h.BitmapEnabled() {
		t.Fatalf("bitmapEnabled=false but header reports the tier enabled")
	}
	if h.FreeList != HeaderSize {
		t.Fatalf("FreeList = %d, want %d (arena starts right after the header)", h.FreeList, HeaderSize)
	}

	fb := ReadFreeBlock(b, h.FreeList)
	if want := int32(4096 - HeaderSize); fb.Length != want {
		t.Fatalf("initial free block length = %d, want %d", fb.Length, want)
	}
	if fb.Next != 0 {
		t.Fatalf("initial free block next = %d, want 0", fb.Next)
	}
}

func TestInitMoveableReservesResizerSlot(t *testing.T) {
	b := make([]byte, 4096)
	h := InitMoveable(b, 4096, true)

	if !h.Moveable() || !h.BitmapEnabled() {
		t.Fatalf("InitMoveable(bitmapEnabled=true) didn't round-trip through the magic bits")
	}
	if want := uint32(HeaderSize + ResizerSlotSize); h.FreeList != want {
		t.Fatalf("FreeList = %d, want %d (arena starts after header + resizer slot)", h.FreeList, want)
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	b := make([]byte, HeaderSize)
	PutU32(b, HeaderMagicOffset, 0xdeadbeef)

	if _, err := ParseHeader(b); err == nil {
		t.Fatalf("expected an error for an unrecognized magic")
	}
}

func TestParseHeaderRejectsTruncatedInput(t *testing.T) {
	if _, err := ParseHeader(make([]byte, HeaderSize-1)); err == nil {
		t.Fatalf("expected an error for a buffer shorter than the header")
	}
}

func TestWriteHeaderThenParseHeaderRoundTrips(t *testing.T) {
	b := make([]byte, HeaderSize)
	want := Header{
		Magic:    MagicMoveable | MagicBitmapBit,
		Message:  100,
		HWM:      200,
		FullSize: 4096,
		FreeList: 300,
		Metadata: 400,
		Bitmaps:  [HeaderNumBitmaps]uint32{1, 2, 3, 4},
	}
	WriteHeader(b, want)

	got, err := ParseHeader(b)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got != want {
		t.Fatalf("ParseHeader() = %+v, want %+v", got, want)
	}
}
