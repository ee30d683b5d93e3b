package alloc

import "github.com/pavdev/payloadbuffer/internal/wire"

// classIndexFor returns the small-block class index that fits a payload of
// n bytes, or -1 if n exceeds the largest class (128 bytes).
func classIndexFor(n int32) int {
	for i, size := range wire.SmallBlockSizes {
		if n <= size {
			return i
		}
	}
	return -1
}

// allocateSmall satisfies a request from the bitmap tier: scan the class's
// existing runs, newest first, for a free slot, and failing that, allocate
// a fresh run from the free list and register it.
func (a *Allocator) allocateSmall(n int32, clear bool) (uint32, error) {
	classIdx := classIndexFor(n)

	h, err := a.region.Header()
	if err != nil {
		return 0, err
	}
	vecOff := h.Bitmaps[classIdx]
	if vecOff != 0 {
		data := a.region.Bytes()
		vec := wire.ReadVectorCell(data, vecOff)
		for runIdx := int(vec.NumElements) - 1; runIdx >= 0; runIdx-- {
			runOff := wire.ReadU32(data, int(vec.DataOffset)+runIdx*4)
			run := wire.ReadBitmapRun(data, runOff)
			if run.Free > 0 {
				if bit := run.LowestClearBit(); bit >= 0 {
					return a.claimSmallSlot(runIdx, runOff, run, bit, n, clear), nil
				}
			}
		}
	}
	return a.growSmallBlockClass(classIdx, n, clear)
}

func (a *Allocator) claimSmallSlot(runIdx int, runOff uint32, run wire.BitmapRun, bit int, n int32, clear bool) uint32 {
	data := a.region.Bytes()
	run = run.WithBitSet(bit)
	run.Free--
	wire.WriteBitmapRun(data, runOff, run)

	slotOff := run.SlotOffset(runOff, bit)
	payloadOff := slotOff + wire.CellHeaderSize
	wire.WriteLengthWord(data, int32(payloadOff), wire.EncodeSmallBlock(runIdx, bit, n))
	if clear {
		clearBytes(data, payloadOff, int32(run.Size))
	}
	return payloadOff
}

// growSmallBlockClass allocates a fresh run for classIdx from the free
// list, lazily creating the class's run-offset vector if this is its first
// run, then claims the run's first slot.
func (a *Allocator) growSmallBlockClass(classIdx int, n int32, clear bool) (uint32, error) {
	size := wire.SmallBlockSizes[classIdx]
	count := wire.SmallBlockRunCounts[classIdx]
	runSize := wire.RunSize(size, count)

	runOff, err := a.allocateLarge(int32(runSize)-wire.CellHeaderSize, false)
	if err != nil {
		return 0, err
	}
	data := a.region.Bytes()
	wire.WriteBitmapRun(data, runOff, wire.BitmapRun{Size: uint8(size), Num: uint8(count), Free: uint8(count)})

	h, err := a.region.Header()
	if err != nil {
		return 0, err
	}
	vecOff := h.Bitmaps[classIdx]
	if vecOff == 0 {
		vecOff, err = a.allocateLarge(wire.VectorHeaderSize, true)
		if err != nil {
			return 0, err
		}
		wire.WriteVectorCell(a.region.Bytes(), vecOff, wire.VectorCell{})
		h, err = a.region.Header()
		if err != nil {
			return 0, err
		}
		h.Bitmaps[classIdx] = vecOff
		a.region.SetHeader(h)
	}
	if err := a.vectorPushU32(vecOff, runOff); err != nil {
		return 0, err
	}

	data = a.region.Bytes()
	vec := wire.ReadVectorCell(data, vecOff)
	runIdx := int(vec.NumElements) - 1
	run := wire.ReadBitmapRun(data, runOff)
	return a.claimSmallSlot(runIdx, runOff, run, 0, n, clear), nil
}

func (a *Allocator) freeSmall(payloadOff uint32, w wire.LengthWord) error {
	runIdx, bit, logicalSize := w.DecodeSmallBlock()
	classIdx := classIndexFor(logicalSize)
	if classIdx < 0 {
		return ErrBadOffset
	}
	h, err := a.region.Header()
	if err != nil {
		return err
	}
	vecOff := h.Bitmaps[classIdx]
	if vecOff == 0 {
		return ErrBadOffset
	}
	data := a.region.Bytes()
	vec := wire.ReadVectorCell(data, vecOff)
	if uint32(runIdx) >= vec.NumElements {
		return ErrBadOffset
	}
	runOff := wire.ReadU32(data, int(vec.DataOffset)+runIdx*4)
	run := wire.ReadBitmapRun(data, runOff)
	if bit < 0 || bit >= int(run.Num) || !run.BitSet(bit) {
		return ErrBadOffset
	}
	run = run.WithBitClear(bit)
	run.Free++
	wire.WriteBitmapRun(data, runOff, run)
	return nil
}

func (a *Allocator) reallocSmall(off uint32, w wire.LengthWord, newSize int32) (uint32, error) {
	runIdx, bit, logicalSize := w.DecodeSmallBlock()
	if classIndexFor(newSize) == classIndexFor(logicalSize) {
		wire.WriteLengthWord(a.region.Bytes(), int32(off), wire.EncodeSmallBlock(runIdx, bit, newSize))
		return off, nil
	}
	newOff, err := a.Allocate(newSize, false)
	if err != nil {
		return 0, err
	}
	data := a.region.Bytes()
	n := logicalSize
	if newSize < n {
		n = newSize
	}
	copy(data[newOff:newOff+uint32(n)], data[off:off+uint32(n)])
	if err := a.Free(off); err != nil {
		return 0, err
	}
	return newOff, nil
}

// vectorPushU32 appends value to the growable uint32 vector rooted at
// vecOff, doubling its backing storage via the free list when full.
func (a *Allocator) vectorPushU32(vecOff uint32, value uint32) error {
	data := a.region.Bytes()
	vec := wire.ReadVectorCell(data, vecOff)

	var cap int32
	if vec.DataOffset != 0 {
		cap = wire.CellSize(data, vec.DataOffset) / 4
	}
	if int32(vec.NumElements) >= cap {
		newCap := cap * 2
		if newCap < 4 {
			newCap = 4
		}
		newDataOff, err := a.allocateLarge(newCap*4, false)
		if err != nil {
			return err
		}
		data = a.region.Bytes()
		if vec.DataOffset != 0 {
			copy(data[newDataOff:newDataOff+vec.NumElements*4], data[vec.DataOffset:vec.DataOffset+vec.NumElements*4])
			if err := a.freeLarge(vec.DataOffset, wire.CellSize(data, vec.DataOffset)); err != nil {
				return err
			}
		}
		vec.DataOffset = newDataOff
	}
	wire.PutU32(data, int(vec.DataOffset)+int(vec.NumElements)*4, value)
	vec.NumElements++
	wire.WriteVectorCell(data, vecOff, vec)
	return nil
}
