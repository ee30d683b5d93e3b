package wire

import "fmt"

// Header is the fixed-layout region header (§6):
//
//	Offset  Size  Field
//	0       4     magic
//	4       4     message
//	8       4     hwm
//	12      4     full_size
//	16      4     free_list
//	20      4     metadata
//	24      16    bitmaps[0..3]
type Header struct {
	Magic    uint32
	Message  uint32
	HWM      uint32
	FullSize uint32
	FreeList uint32
	Metadata uint32
	Bitmaps  [HeaderNumBitmaps]uint32
}

// Moveable reports whether magic identifies a moveable region.
func (h Header) Moveable() bool {
	return h.Magic&^MagicBitmapBit == MagicMoveable
}

// Fixed reports whether magic identifies a fixed region.
func (h Header) Fixed() bool {
	return h.Magic&^MagicBitmapBit == MagicFixed
}

// BitmapEnabled reports whether the small-block tier is enabled.
func (h Header) BitmapEnabled() bool {
	return h.Magic&MagicBitmapBit != 0
}

// ParseHeader reads and validates a Header from the start of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("header: %w", ErrTruncated)
	}
	magic := ReadU32(b, HeaderMagicOffset)
	if magic&^MagicBitmapBit != MagicFixed && magic&^MagicBitmapBit != MagicMoveable {
		return Header{}, fmt.Errorf("header: %w", ErrSignatureMismatch)
	}
	h := Header{
		Magic:    magic,
		Message:  ReadU32(b, HeaderMessageOffset),
		HWM:      ReadU32(b, HeaderHWMOffset),
		FullSize: ReadU32(b, HeaderFullSizeOffset),
		FreeList: ReadU32(b, HeaderFreeListOffset),
		Metadata: ReadU32(b, HeaderMetadataOffset),
	}
	for i := 0; i < HeaderNumBitmaps; i++ {
		h.Bitmaps[i] = ReadU32(b, HeaderBitmapsOffset+i*4)
	}
	return h, nil
}

// WriteHeader writes h into the start of b. Callers must ensure len(b) >= HeaderSize.
func WriteHeader(b []byte, h Header) {
	PutU32(b, HeaderMagicOffset, h.Magic)
	PutU32(b, HeaderMessageOffset, h.Message)
	PutU32(b, HeaderHWMOffset, h.HWM)
	PutU32(b, HeaderFullSizeOffset, h.FullSize)
	PutU32(b, HeaderFreeListOffset, h.FreeList)
	PutU32(b, HeaderMetadataOffset, h.Metadata)
	for i := 0; i < HeaderNumBitmaps; i++ {
		PutU32(b, HeaderBitmapsOffset+i*4, h.Bitmaps[i])
	}
}

// InitFixed writes a fresh fixed-region header into b covering fullSize bytes,
// with a single free block spanning the arena that follows the header.
func InitFixed(b []byte, fullSize uint32, bitmapEnabled bool) Header {
	return initHeader(b, MagicFixed, fullSize, HeaderSize, bitmapEnabled)
}

// InitMoveable writes a fresh moveable-region header into b, reserving the
// resizer slot immediately after the header before the arena begins.
func InitMoveable(b []byte, fullSize uint32, bitmapEnabled bool) Header {
	return initHeader(b, MagicMoveable, fullSize, HeaderSize+ResizerSlotSize, bitmapEnabled)
}

func initHeader(b []byte, magic uint32, fullSize uint32, arenaStart uint32, bitmapEnabled bool) Header {
	if bitmapEnabled {
		magic |= MagicBitmapBit
	}
	h := Header{
		Magic:    magic,
		FullSize: fullSize,
		FreeList: arenaStart,
		HWM:      arenaStart,
	}
	WriteHeader(b, h)
	freeSize := fullSize - arenaStart
	PutU32(b, int(arenaStart), freeSize)
	PutU32(b, int(arenaStart)+4, 0)
	return h
}
