package region

import (
	"fmt"

	"github.com/pavdev/payloadbuffer/internal/wire"
)

// Region is the flat byte area a payload buffer is built on, plus (for a
// moveable region) the resizer that knows how to grow it. The resizer
// handle lives here, in host memory outside the region bytes, never inside
// the wire-format resizer slot the header reserves for it.
type Region struct {
	data    []byte
	resizer Resizer
}

// NewFixed allocates a fixed-capacity region of exactly size bytes and
// writes a fresh header into it. A fixed region has no resizer: once full,
// allocation fails rather than growing.
func NewFixed(size uint32, bitmapEnabled bool) (*Region, error) {
	if size < wire.HeaderSize {
		return nil, fmt.Errorf("region: size %d smaller than header", size)
	}
	data := make([]byte, size)
	wire.InitFixed(data, size, bitmapEnabled)
	return &Region{data: data}, nil
}

// NewMoveable allocates a region of initialSize bytes governed by r, which
// Grow will call whenever the arena needs more room.
func NewMoveable(initialSize uint32, bitmapEnabled bool, r Resizer) (*Region, error) {
	if initialSize < wire.HeaderSize+wire.ResizerSlotSize {
		return nil, fmt.Errorf("region: size %d smaller than header", initialSize)
	}
	if r == nil {
		return nil, fmt.Errorf("region: moveable region requires a resizer")
	}
	data := make([]byte, initialSize)
	wire.InitMoveable(data, initialSize, bitmapEnabled)
	return &Region{data: data, resizer: r}, nil
}

// Open wraps an existing, already-initialized byte slice (for example one
// loaded from a file or produced by a resizer) as a Region. r may be nil
// for a fixed region.
func Open(data []byte, r Resizer) (*Region, error) {
	h, err := wire.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.Moveable() && r == nil {
		return nil, fmt.Errorf("region: moveable region requires a resizer")
	}
	return &Region{data: data, resizer: r}, nil
}

// Bytes returns the region's current backing array. Callers must not retain
// it across a call that may grow the region.
func (r *Region) Bytes() []byte { return r.data }

// Header parses and returns the region's current header.
func (r *Region) Header() (wire.Header, error) {
	return wire.ParseHeader(r.data)
}

// SetHeader overwrites the region's header fields in place.
func (r *Region) SetHeader(h wire.Header) {
	wire.WriteHeader(r.data, h)
}

// FullSize returns the region's current declared size.
func (r *Region) FullSize() (uint32, error) {
	h, err := r.Header()
	if err != nil {
		return 0, err
	}
	return h.FullSize, nil
}

// Moveable reports whether the region can grow.
func (r *Region) Moveable() bool {
	h, err := r.Header()
	return err == nil && h.Moveable()
}
