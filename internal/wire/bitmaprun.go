package wire

// BitmapRun is the header of one small-block run: a bitmap with one bit
// per slot (bit set = occupied), the slot size and count for this run, and
// the number of currently free slots. It is followed immediately by Num
// slots of Size+CellHeaderSize bytes each.
type BitmapRun struct {
	Bits uint32
	Size uint8
	Num  uint8
	Free uint8
}

// ReadBitmapRun reads a run header at absolute offset off.
func ReadBitmapRun(region []byte, off uint32) BitmapRun {
	return BitmapRun{
		Bits: ReadU32(region, int(off)),
		Size: region[off+4],
		Num:  region[off+5],
		Free: region[off+6],
	}
}

// WriteBitmapRun writes a run header at absolute offset off.
func WriteBitmapRun(region []byte, off uint32, r BitmapRun) {
	PutU32(region, int(off), r.Bits)
	region[off+4] = r.Size
	region[off+5] = r.Num
	region[off+6] = r.Free
}

// SlotOffset returns the absolute offset of slot i's length-word header
// within the run starting at runOff.
func (r BitmapRun) SlotOffset(runOff uint32, i int) uint32 {
	return runOff + BitmapRunHeaderSize + uint32(i)*(uint32(r.Size)+CellHeaderSize)
}

// BitSet reports whether bit i is set in the run's occupancy bitmap.
func (r BitmapRun) BitSet(i int) bool {
	return r.Bits&(1<<uint(i)) != 0
}

// WithBitSet returns a copy of r with bit i set.
func (r BitmapRun) WithBitSet(i int) BitmapRun {
	r.Bits |= 1 << uint(i)
	return r
}

// WithBitClear returns a copy of r with bit i cleared.
func (r BitmapRun) WithBitClear(i int) BitmapRun {
	r.Bits &^= 1 << uint(i)
	return r
}

// LowestClearBit returns the index of the lowest-numbered clear bit among
// the run's Num slots, or -1 if all are set.
func (r BitmapRun) LowestClearBit() int {
	for i := 0; i < int(r.Num); i++ {
		if !r.BitSet(i) {
			return i
		}
	}
	return -1
}

// RunSize returns the total byte size of a run's header plus its slots.
func RunSize(size int32, num int) uint32 {
	return BitmapRunHeaderSize + uint32(num)*(uint32(size)+CellHeaderSize)
}
