package wire

// StringCellLength reads the 32-bit length prefix of a string cell whose
// payload begins at absolute offset off.
func StringCellLength(region []byte, off uint32) uint32 {
	return ReadU32(region, int(off))
}

// WriteStringCellLength writes the 32-bit length prefix of a string cell.
func WriteStringCellLength(region []byte, off uint32, length uint32) {
	PutU32(region, int(off), length)
}
