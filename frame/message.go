package frame

import (
	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

// SetMessage stores payload as the region's main message, replacing
// whatever was there before, and records its offset in the header.
func SetMessage(a *alloc.Allocator, payload []byte) error {
	h, err := a.Region().Header()
	if err != nil {
		return err
	}
	off, err := replaceAligned(a, h.Message, payload)
	if err != nil {
		return err
	}
	h, err = a.Region().Header()
	if err != nil {
		return err
	}
	h.Message = off
	a.Region().SetHeader(h)
	return nil
}

// Message returns the region's main message, or nil if none has been set.
func Message(r *region.Region) ([]byte, error) {
	h, err := r.Header()
	if err != nil {
		return nil, err
	}
	return readCell(r, h.Message)
}

// SetMetadata stores payload as the region's metadata cell.
func SetMetadata(a *alloc.Allocator, payload []byte) error {
	h, err := a.Region().Header()
	if err != nil {
		return err
	}
	off, err := replace(a, h.Metadata, payload)
	if err != nil {
		return err
	}
	h, err = a.Region().Header()
	if err != nil {
		return err
	}
	h.Metadata = off
	a.Region().SetHeader(h)
	return nil
}

// Metadata returns the region's metadata cell, or nil if none has been set.
func Metadata(r *region.Region) ([]byte, error) {
	h, err := r.Header()
	if err != nil {
		return nil, err
	}
	return readCell(r, h.Metadata)
}

// replace frees the cell at off (if any) and allocates a fresh one holding
// payload, returning its offset. Empty payloads are represented as offset
// 0, matching the header's null convention.
func replace(a *alloc.Allocator, off uint32, payload []byte) (uint32, error) {
	return replaceWith(a.Allocate, a, off, payload)
}

// replaceAligned is replace, but guarantees the fresh cell's 8-byte
// alignment (§4.7's requirement for the main-message slot) by allocating
// straight from the free list instead of letting small payloads land in
// the bitmap tier.
func replaceAligned(a *alloc.Allocator, off uint32, payload []byte) (uint32, error) {
	return replaceWith(a.AllocateAligned, a, off, payload)
}

func replaceWith(allocate func(int32, bool) (uint32, error), a *alloc.Allocator, off uint32, payload []byte) (uint32, error) {
	if off != 0 {
		if err := a.Free(off); err != nil {
			return 0, err
		}
	}
	if len(payload) == 0 {
		return 0, nil
	}
	newOff, err := allocate(int32(len(payload)), false)
	if err != nil {
		return 0, err
	}
	copy(a.Region().Bytes()[newOff:], payload)
	return newOff, nil
}

func readCell(r *region.Region, off uint32) ([]byte, error) {
	if off == 0 {
		return nil, nil
	}
	length := wire.CellSize(r.Bytes(), off)
	view := r.ToAddress(off, length)
	if view == nil {
		return nil, ErrCorrupt
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}
