package wire

// VectorCell is the (num_elements, data_offset) pair addressed by a vector
// header slot. data_offset points at the first element of an allocated
// block whose length word gives the current capacity in bytes.
type VectorCell struct {
	NumElements uint32
	DataOffset  uint32
}

// ReadVectorCell reads a vector cell at absolute offset off.
func ReadVectorCell(region []byte, off uint32) VectorCell {
	return VectorCell{
		NumElements: ReadU32(region, int(off)),
		DataOffset:  ReadU32(region, int(off)+4),
	}
}

// WriteVectorCell writes a vector cell at absolute offset off.
func WriteVectorCell(region []byte, off uint32, v VectorCell) {
	PutU32(region, int(off), v.NumElements)
	PutU32(region, int(off)+4, v.DataOffset)
}
