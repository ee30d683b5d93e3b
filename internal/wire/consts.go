// Package wire houses the byte-exact layout of the payload buffer region:
// the header, the length-word encoding shared by the free-list and
// small-block allocators, and the string/vector cell formats built on top
// of them. It stays allocation-free and independent of the higher-level
// alloc/container/region packages so every layer can share one definition
// of "what the bytes mean".
package wire

// MagicFixed and MagicMoveable identify a region's growth policy. Either
// may be OR-ed with MagicBitmapBit to indicate the small-block bitmap
// tier is enabled for that region.
const (
	MagicFixed     uint32 = 0xe5f6f1c4
	MagicMoveable  uint32 = 0xc5f6f1c4
	MagicBitmapBit uint32 = 0x1
)

// Header field offsets, per the byte-exact layout in the specification.
const (
	HeaderMagicOffset    = 0
	HeaderMessageOffset  = 4
	HeaderHWMOffset      = 8
	HeaderFullSizeOffset = 12
	HeaderFreeListOffset = 16
	HeaderMetadataOffset = 20
	HeaderBitmapsOffset  = 24
	HeaderNumBitmaps     = 4

	// HeaderSize is the size of the fixed header, including the four
	// bitmap-class vector-header slots.
	HeaderSize = HeaderBitmapsOffset + HeaderNumBitmaps*4

	// ResizerSlotSize is the machine-word slot reserved immediately after
	// the header on a moveable region for an opaque resizer handle. It is
	// never a wire field: it addresses a side-table entry held outside the
	// region, never bytes inside it.
	ResizerSlotSize = 8
)

// FreeBlockHeaderSize is the size of a free block's {length, next} pair.
const FreeBlockHeaderSize = 8

// CellHeaderSize is the size of the length word preceding every allocated
// block (free-list or small-block).
const CellHeaderSize = 4

// Alignment requirements.
const (
	BlockAlignment  = 8
	StringAlignment = 4
)

// Small-block size classes, hard-coded per the specification, along with
// the per-run slot counts used when a fresh run is created for a class.
var (
	SmallBlockSizes     = [4]int32{16, 32, 64, 128}
	SmallBlockRunCounts = [4]int{20, 10, 6, 2}
)

// Small-block length-word bit layout (see LengthWord doc comment).
const (
	SmallBlockFlag = uint32(1) << 31

	smallBlockBitShift  = 26
	smallBlockBitBits   = 5
	smallBlockBitMask   = (uint32(1) << smallBlockBitBits) - 1
	smallBlockRunShift  = 8
	smallBlockRunBits   = 18
	smallBlockRunMask   = (uint32(1) << smallBlockRunBits) - 1
	smallBlockSizeShift = 0
	smallBlockSizeBits  = 8
	smallBlockSizeMask  = (uint32(1) << smallBlockSizeBits) - 1
)

// BitmapRunHeaderSize is the size of a bitmap run's (bits, size, num, free)
// header, preceding its slots.
const BitmapRunHeaderSize = 4 + 1 + 1 + 1 + 1 // uint32 + 4 bytes, kept word aligned

// VectorHeaderSize is the size of a (num_elements, data_offset) pair.
const VectorHeaderSize = 8

// StringLengthPrefixSize is the size of a string cell's length prefix.
const StringLengthPrefixSize = 4
