package wire

import "testing"

func TestFreeListLengthWordRoundTrips(t *testing.T) {
	b := make([]byte, 64)
	WriteLengthWord(b, 32, LengthWord(120))

	w := ReadLengthWord(b, 32)
	if w.IsSmallBlock() {
		t.Fatalf("expected a free-list length word, got small-block flag set")
	}
	if got := w.FreeListSize(); got != 120 {
		t.Fatalf("FreeListSize() = %d, want 120", got)
	}
}

func TestSmallBlockDescriptorRoundTrips(t *testing.T) {
	cases := []struct {
		runIndex, bitNumber int
		logicalSize         int32
	}{
		{0, 0, 16},
		{1, 19, 32},
		{262143, 31, 128},
		{5, 3, 64},
	}
	for _, c := range cases {
		w := EncodeSmallBlock(c.runIndex, c.bitNumber, c.logicalSize)
		if !w.IsSmallBlock() {
			t.Fatalf("EncodeSmallBlock(%d,%d,%d): IsSmallBlock() = false", c.runIndex, c.bitNumber, c.logicalSize)
		}
		runIndex, bitNumber, logicalSize := w.DecodeSmallBlock()
		if runIndex != c.runIndex || bitNumber != c.bitNumber || logicalSize != c.logicalSize {
			t.Fatalf("DecodeSmallBlock() = (%d,%d,%d), want (%d,%d,%d)",
				runIndex, bitNumber, logicalSize, c.runIndex, c.bitNumber, c.logicalSize)
		}
	}
}

func TestSmallBlockFlagNeverCollidesWithFreeListSize(t *testing.T) {
	// A free-list size is always written as a plain int32 payload size, so
	// its top bit is clear for any size that fits in the allocator's range.
	w := LengthWord(SmallBlockFlag - 1)
	if w.IsSmallBlock() {
		t.Fatalf("top bit clear should never read as a small block")
	}
	w = LengthWord(SmallBlockFlag)
	if !w.IsSmallBlock() {
		t.Fatalf("top bit set should always read as a small block")
	}
}
