package alloc

import (
	"math"

	"github.com/pavdev/payloadbuffer/internal/wire"
)

// allocateLarge satisfies a request from the general free list: first-fit,
// address order, splitting the winning block when the remainder is big
// enough to stand on its own. It grows the region and retries when nothing
// fits.
func (a *Allocator) allocateLarge(n int32, clear bool) (uint32, error) {
	if n > math.MaxInt32-wire.BlockAlignment-wire.CellHeaderSize {
		return 0, ErrTooLarge
	}
	n = wire.Align8(n)
	full := n + wire.CellHeaderSize

	for {
		h, err := a.region.Header()
		if err != nil {
			return 0, err
		}
		data := a.region.Bytes()

		prevOff := uint32(0)
		curOff := h.FreeList
		for curOff != 0 {
			blk := wire.ReadFreeBlock(data, curOff)
			if blk.Length >= full {
				return a.takeFreeBlock(prevOff, curOff, blk, n, full, clear)
			}
			prevOff = curOff
			curOff = blk.Next
		}
		if err := a.grow(full); err != nil {
			return 0, err
		}
	}
}

func (a *Allocator) takeFreeBlock(prevOff, blockOff uint32, blk wire.FreeBlock, n, full int32, clear bool) (uint32, error) {
	data := a.region.Bytes()
	remainder := blk.Length - full

	var finalSize int32
	if remainder >= wire.FreeBlockHeaderSize {
		tailOff := blockOff + uint32(full)
		wire.WriteFreeBlock(data, tailOff, wire.FreeBlock{Length: remainder, Next: blk.Next})
		a.relink(prevOff, tailOff)
		finalSize = n
	} else {
		a.relink(prevOff, blk.Next)
		finalSize = blk.Length - wire.CellHeaderSize
	}

	payloadOff := blockOff + wire.CellHeaderSize
	wire.WriteLengthWord(data, int32(payloadOff), wire.LengthWord(finalSize))
	a.bumpHWM(payloadOff + uint32(finalSize))
	if clear {
		clearBytes(data, payloadOff, finalSize)
	}
	return payloadOff, nil
}

// relink points prevOff's Next field (or free_list, when prevOff is 0) at
// newOff, the caller having already written or removed whatever used to
// live there.
func (a *Allocator) relink(prevOff, newOff uint32) {
	if prevOff == 0 {
		h, _ := a.region.Header()
		h.FreeList = newOff
		a.region.SetHeader(h)
		return
	}
	data := a.region.Bytes()
	prev := wire.ReadFreeBlock(data, prevOff)
	prev.Next = newOff
	wire.WriteFreeBlock(data, prevOff, prev)
}

func (a *Allocator) freeLarge(payloadOff uint32, size int32) error {
	blockOff := payloadOff - wire.CellHeaderSize
	blockLen := size + wire.CellHeaderSize
	return a.insertFreeSpan(blockOff, blockLen)
}

// insertFreeSpan links [spanOff, spanOff+spanLen) into the address-ordered
// free list, coalescing with whichever neighbor(s) it now sits flush
// against.
func (a *Allocator) insertFreeSpan(spanOff uint32, spanLen int32) error {
	data := a.region.Bytes()
	h, err := a.region.Header()
	if err != nil {
		return err
	}

	prevOff := uint32(0)
	curOff := h.FreeList
	for curOff != 0 && curOff < spanOff {
		prevOff = curOff
		blk := wire.ReadFreeBlock(data, curOff)
		curOff = blk.Next
	}
	next := curOff

	if next != 0 && spanOff+uint32(spanLen) == next {
		nb := wire.ReadFreeBlock(data, next)
		spanLen += nb.Length
		next = nb.Next
	}
	wire.WriteFreeBlock(data, spanOff, wire.FreeBlock{Length: spanLen, Next: next})

	if prevOff != 0 {
		pb := wire.ReadFreeBlock(data, prevOff)
		if prevOff+uint32(pb.Length) == spanOff {
			merged := wire.ReadFreeBlock(data, spanOff)
			pb.Length += merged.Length
			pb.Next = merged.Next
			wire.WriteFreeBlock(data, prevOff, pb)
			return nil
		}
		pb.Next = spanOff
		wire.WriteFreeBlock(data, prevOff, pb)
		return nil
	}

	h.FreeList = spanOff
	a.region.SetHeader(h)
	return nil
}

func (a *Allocator) reallocLarge(off uint32, curSize, newSize int32) (uint32, error) {
	rounded := wire.Align8(newSize)
	curRounded := wire.Align8(curSize)

	if rounded == curRounded {
		wire.WriteLengthWord(a.region.Bytes(), int32(off), wire.LengthWord(newSize))
		return off, nil
	}
	if rounded < curRounded {
		return a.shrinkLarge(off, newSize, rounded, curRounded)
	}
	if newOff, ok, err := a.tryExpandUp(off, curSize, newSize); err != nil {
		return 0, err
	} else if ok {
		return newOff, nil
	}
	if newOff, ok, err := a.tryExpandDown(off, curSize, newSize); err != nil {
		return 0, err
	} else if ok {
		return newOff, nil
	}

	newOff, err := a.Allocate(newSize, false)
	if err != nil {
		return 0, err
	}
	data := a.region.Bytes()
	copy(data[newOff:newOff+uint32(curSize)], data[off:off+uint32(curSize)])
	if err := a.Free(off); err != nil {
		return 0, err
	}
	return newOff, nil
}

func (a *Allocator) shrinkLarge(off uint32, newSize, rounded, curRounded int32) (uint32, error) {
	data := a.region.Bytes()
	slack := curRounded - rounded
	if slack < wire.FreeBlockHeaderSize {
		wire.WriteLengthWord(data, int32(off), wire.LengthWord(newSize))
		return off, nil
	}
	tailOff := off + uint32(rounded)
	wire.WriteLengthWord(data, int32(off), wire.LengthWord(newSize))
	return off, a.insertFreeSpan(tailOff, slack)
}

// tryExpandUp grows the allocation at off in place by absorbing the free
// block that immediately follows it, if one exists and is large enough.
func (a *Allocator) tryExpandUp(off uint32, curSize, newSize int32) (uint32, bool, error) {
	data := a.region.Bytes()
	curRounded := wire.Align8(curSize)
	rounded := wire.Align8(newSize)
	need := rounded - curRounded
	nextOff := off + uint32(curRounded)

	h, err := a.region.Header()
	if err != nil {
		return 0, false, err
	}
	prevOff := uint32(0)
	curOff := h.FreeList
	for curOff != 0 && curOff != nextOff {
		prevOff = curOff
		blk := wire.ReadFreeBlock(data, curOff)
		curOff = blk.Next
	}
	if curOff != nextOff {
		return 0, false, nil
	}
	blk := wire.ReadFreeBlock(data, curOff)
	if blk.Length < need {
		return 0, false, nil
	}

	remainder := blk.Length - need
	if remainder >= wire.FreeBlockHeaderSize {
		tailOff := nextOff + uint32(need)
		wire.WriteFreeBlock(data, tailOff, wire.FreeBlock{Length: remainder, Next: blk.Next})
		a.relink(prevOff, tailOff)
	} else {
		a.relink(prevOff, blk.Next)
		rounded = curRounded + blk.Length
	}
	wire.WriteLengthWord(data, int32(off), wire.LengthWord(newSize))
	a.bumpHWM(off + uint32(rounded))
	return off, true, nil
}

// tryExpandDown grows the allocation at off in place by absorbing the free
// block that immediately precedes it, sliding the payload forward to the
// start of the combined span.
func (a *Allocator) tryExpandDown(off uint32, curSize, newSize int32) (uint32, bool, error) {
	data := a.region.Bytes()
	blockOff := off - wire.CellHeaderSize
	curFull := wire.Align8(curSize) + wire.CellHeaderSize
	need := (wire.Align8(newSize) + wire.CellHeaderSize) - curFull

	h, err := a.region.Header()
	if err != nil {
		return 0, false, err
	}
	gpOff, prevOff := uint32(0), uint32(0)
	cur := h.FreeList
	for cur != 0 && cur < blockOff {
		gpOff = prevOff
		prevOff = cur
		blk := wire.ReadFreeBlock(data, cur)
		cur = blk.Next
	}
	if prevOff == 0 {
		return 0, false, nil
	}
	pb := wire.ReadFreeBlock(data, prevOff)
	if prevOff+uint32(pb.Length) != blockOff || pb.Length < need {
		return 0, false, nil
	}

	newBlockOff := blockOff - uint32(need)
	remainder := pb.Length - need
	if remainder >= wire.FreeBlockHeaderSize {
		wire.WriteFreeBlock(data, prevOff, wire.FreeBlock{Length: remainder, Next: pb.Next})
	} else {
		newBlockOff = prevOff
		a.relink(gpOff, pb.Next)
	}

	newOff := newBlockOff + wire.CellHeaderSize
	copy(data[newOff:newOff+uint32(curSize)], data[off:off+uint32(curSize)])
	wire.WriteLengthWord(data, int32(newOff), wire.LengthWord(newSize))
	a.bumpHWM(newOff + uint32(wire.Align8(newSize)))
	return newOff, true, nil
}
