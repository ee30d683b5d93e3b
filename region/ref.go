package region

import (
	"unsafe"

	"github.com/pavdev/payloadbuffer/internal/buf"
	"github.com/pavdev/payloadbuffer/internal/wire"
)

// ToAddress is the offset-to-address half of the region's translator (§4.1).
// It returns a bounds-checked view of n bytes starting at off, or nil if off
// is 0 (the reserved null offset), the region's header does not parse, or
// [off, off+n) falls outside [0, full_size). The check is O(1) so callers
// can put it on the hot path of every dereference.
func (r *Region) ToAddress(off uint32, n int32) []byte {
	if off == 0 || n < 0 {
		return nil
	}
	h, err := wire.ParseHeader(r.data)
	if err != nil {
		return nil
	}
	if uint64(off)+uint64(n) > uint64(h.FullSize) {
		return nil
	}
	b, ok := buf.Slice(r.data, int(off), int(n))
	if !ok {
		return nil
	}
	return b
}

// ToOffset is the address-to-offset half of the translator. p must be a
// slice previously produced by this Region's ToAddress (or a sub-slice of
// one); anything else, or a nil/empty slice, returns 0.
func (r *Region) ToOffset(p []byte) uint32 {
	if len(p) == 0 || len(r.data) == 0 {
		return 0
	}
	base := uintptr(unsafe.Pointer(&r.data[0]))
	ptr := uintptr(unsafe.Pointer(&p[0]))
	if ptr < base {
		return 0
	}
	diff := ptr - base
	if diff == 0 || diff >= uintptr(len(r.data)) {
		return 0
	}
	return uint32(diff)
}
