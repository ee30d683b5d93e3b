package wire

// FreeBlock is the two-word header of a block on the free list: its total
// length including this header, and the offset of the next free block (0
// for end-of-list). off is the absolute offset of the free block itself,
// not its payload.
type FreeBlock struct {
	Length int32
	Next   uint32
}

// ReadFreeBlock reads the free-block header at absolute offset off.
func ReadFreeBlock(region []byte, off uint32) FreeBlock {
	return FreeBlock{
		Length: ReadI32(region, int(off)),
		Next:   ReadU32(region, int(off)+4),
	}
}

// WriteFreeBlock writes fb's header at absolute offset off.
func WriteFreeBlock(region []byte, off uint32, fb FreeBlock) {
	PutI32(region, int(off), fb.Length)
	PutU32(region, int(off)+4, fb.Next)
}
