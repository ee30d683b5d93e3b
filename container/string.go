package container

import (
	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

// AllocateString allocates a fresh length-prefixed string cell holding s
// and returns its offset.
func AllocateString(a *alloc.Allocator, s string) (uint32, error) {
	total := int32(wire.StringLengthPrefixSize) + int32(len(s))
	off, err := a.Allocate(total, false)
	if err != nil {
		return 0, err
	}
	data := a.Region().Bytes()
	wire.WriteStringCellLength(data, off, uint32(len(s)))
	copy(data[off+wire.StringLengthPrefixSize:], s)
	return off, nil
}

// ReadString returns the string stored at off, or "" if off is 0.
func ReadString(r *region.Region, off uint32) (string, error) {
	if off == 0 {
		return "", nil
	}
	length := wire.StringCellLength(r.Bytes(), off)
	view := r.ToAddress(off+wire.StringLengthPrefixSize, int32(length))
	if view == nil {
		return "", ErrCorrupt
	}
	return string(view), nil
}

// StringLen returns the byte length recorded in the string cell at off,
// without materializing the string itself.
func StringLen(r *region.Region, off uint32) (uint32, error) {
	if off == 0 {
		return 0, nil
	}
	if r.ToAddress(off, wire.StringLengthPrefixSize) == nil {
		return 0, ErrCorrupt
	}
	return wire.StringCellLength(r.Bytes(), off), nil
}

// SetString replaces the string previously stored at off (0 if there was
// none) with s, growing, shrinking, or relocating the cell as needed, and
// returns the cell's current offset. Callers must overwrite whatever slot
// held off with the returned value.
func SetString(a *alloc.Allocator, off uint32, s string) (uint32, error) {
	if off == 0 {
		return AllocateString(a, s)
	}
	total := int32(wire.StringLengthPrefixSize) + int32(len(s))
	newOff, err := a.Realloc(off, total)
	if err != nil {
		return 0, err
	}
	data := a.Region().Bytes()
	wire.WriteStringCellLength(data, newOff, uint32(len(s)))
	copy(data[newOff+wire.StringLengthPrefixSize:], s)
	return newOff, nil
}

// ClearString frees the string cell at off. Callers must zero whatever
// slot held off afterward.
func ClearString(a *alloc.Allocator, off uint32) error {
	if off == 0 {
		return nil
	}
	return a.Free(off)
}
