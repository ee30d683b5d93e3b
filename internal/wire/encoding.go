package wire

import "encoding/binary"

// Every multi-byte field in the region is encoded little-endian regardless
// of the host's byte order, matching the teacher's own choice to encode
// explicitly rather than rely on native struct layout; this keeps a
// serialized region portable between machines.

// PutU32 writes v to b[off:off+4] in little-endian order.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutI32 writes v to b[off:off+4] in little-endian order.
func PutI32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// ReadU32 reads a little-endian uint32 from b[off:off+4].
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadI32 reads a little-endian int32 from b[off:off+4].
func ReadI32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}

// Align8 rounds n up to the next 8-byte boundary.
func Align8(n int32) int32 {
	return (n + BlockAlignment - 1) &^ (BlockAlignment - 1)
}

// Align4 rounds n up to the next 4-byte boundary.
func Align4(n int32) int32 {
	return (n + StringAlignment - 1) &^ (StringAlignment - 1)
}
