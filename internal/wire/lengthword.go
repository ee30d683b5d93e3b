package wire

// LengthWord is the 32-bit word stored immediately before every allocated
// block's user-visible address (§3, §4.4).
//
// A free-list allocation stores its payload size directly, top bit clear.
// A small-block allocation instead stores an encoded descriptor with the
// top bit set:
//
//	bit  31     small-block flag (1 = small block)
//	bits 30-26  bit number within the run's bitmap (5 bits)
//	bits 25-8   index into the class's run vector (18 bits)
//	bits 7-0    logical (requested) block size
type LengthWord uint32

// IsSmallBlock reports whether w encodes a small-block descriptor rather
// than a free-list payload size.
func (w LengthWord) IsSmallBlock() bool {
	return uint32(w)&SmallBlockFlag != 0
}

// FreeListSize returns the payload size encoded by a free-list length word.
// The caller must have checked !IsSmallBlock() first.
func (w LengthWord) FreeListSize() int32 {
	return int32(w)
}

// EncodeSmallBlock packs a small-block descriptor into a length word.
func EncodeSmallBlock(runIndex int, bitNumber int, logicalSize int32) LengthWord {
	w := SmallBlockFlag
	w |= (uint32(bitNumber) & smallBlockBitMask) << smallBlockBitShift
	w |= (uint32(runIndex) & smallBlockRunMask) << smallBlockRunShift
	w |= (uint32(logicalSize) & smallBlockSizeMask) << smallBlockSizeShift
	return LengthWord(w)
}

// DecodeSmallBlock unpacks a small-block length word into its (run index,
// bit number, logical size) triple. The caller must have checked
// IsSmallBlock() first.
func (w LengthWord) DecodeSmallBlock() (runIndex int, bitNumber int, logicalSize int32) {
	raw := uint32(w)
	bitNumber = int((raw >> smallBlockBitShift) & smallBlockBitMask)
	runIndex = int((raw >> smallBlockRunShift) & smallBlockRunMask)
	logicalSize = int32((raw >> smallBlockSizeShift) & smallBlockSizeMask)
	return
}

// ReadLengthWord reads the length word preceding a block's payload address,
// where payloadOff is the block's absolute payload offset (i.e. immediately after
// the header).
func ReadLengthWord(region []byte, payloadOff int32) LengthWord {
	return LengthWord(ReadU32(region, int(payloadOff)-CellHeaderSize))
}

// CellSize returns the usable payload size of the allocation at payloadOff,
// decoding whichever of the two length-word variants is present. Callers
// that only care "how many bytes do I have here" (growth-capacity checks,
// generic cell readers) should use this instead of FreeListSize, which
// misreads a small-block descriptor as a huge negative size.
func CellSize(region []byte, payloadOff uint32) int32 {
	w := ReadLengthWord(region, int32(payloadOff))
	if w.IsSmallBlock() {
		_, _, logicalSize := w.DecodeSmallBlock()
		return logicalSize
	}
	return w.FreeListSize()
}

// WriteLengthWord writes w into the header immediately preceding payloadOff.
func WriteLengthWord(region []byte, payloadOff int32, w LengthWord) {
	PutU32(region, int(payloadOff)-CellHeaderSize, uint32(w))
}
