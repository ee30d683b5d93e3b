package frame

import (
	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

// PresenceSet is a bitmap tracking which of a message's optional fields
// are present, one bit per field index, addressed word = k/32, mask =
// 1<<(k%32) (§4.7), allocated as an ordinary cell.
type PresenceSet struct {
	off  uint32
	bits int
}

// NewPresenceSet allocates a fresh, all-clear presence bitmap wide enough
// for numFields bits.
func NewPresenceSet(a *alloc.Allocator, numFields int) (*PresenceSet, error) {
	off, err := a.Allocate(int32(wordLen(numFields)*4), true)
	if err != nil {
		return nil, err
	}
	return &PresenceSet{off: off, bits: numFields}, nil
}

// OpenPresenceSet wraps an existing presence bitmap at off.
func OpenPresenceSet(off uint32, numFields int) *PresenceSet {
	return &PresenceSet{off: off, bits: numFields}
}

// Offset returns the bitmap's cell offset, for storing in a parent cell.
func (p *PresenceSet) Offset() uint32 { return p.off }

// Set marks field i present.
func (p *PresenceSet) Set(r *region.Region, i int) error {
	word, view, err := p.wordView(r, i)
	if err != nil {
		return err
	}
	wire.PutU32(view, 0, word|1<<uint(i%32))
	return nil
}

// Clear marks field i absent.
func (p *PresenceSet) Clear(r *region.Region, i int) error {
	word, view, err := p.wordView(r, i)
	if err != nil {
		return err
	}
	wire.PutU32(view, 0, word&^(1<<uint(i%32)))
	return nil
}

// IsSet reports whether field i is marked present.
func (p *PresenceSet) IsSet(r *region.Region, i int) (bool, error) {
	word, _, err := p.wordView(r, i)
	if err != nil {
		return false, err
	}
	return word&(1<<uint(i%32)) != 0, nil
}

// wordView bounds-checks i and returns the 32-bit word containing bit i
// along with the 4-byte view it was read from, ready for an in-place write.
func (p *PresenceSet) wordView(r *region.Region, i int) (uint32, []byte, error) {
	if i < 0 || i >= p.bits {
		return 0, nil, ErrCorrupt
	}
	view := r.ToAddress(p.off+uint32(i/32)*4, 4)
	if view == nil {
		return 0, nil, ErrCorrupt
	}
	return wire.ReadU32(view, 0), view, nil
}

func wordLen(numFields int) int {
	return (numFields + 31) / 32
}
