package container

import (
	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/internal/wire"
)

// Codec knows how to lay out a fixed-size element T into region bytes. The
// vector never reasons about T itself, so any element type a caller cares
// to store just needs one of these, matching the wire package's stance of
// explicit encode/decode over reinterpreting raw memory.
type Codec[T any] interface {
	Size() int32
	Encode(b []byte, v T)
	Decode(b []byte) T
}

// Uint32Codec stores T=uint32 elements, the common case of a vector of
// offsets or other small refs.
type Uint32Codec struct{}

func (Uint32Codec) Size() int32 { return 4 }
func (Uint32Codec) Encode(b []byte, v uint32) { wire.PutU32(b, 0, v) }
func (Uint32Codec) Decode(b []byte) uint32 { return wire.ReadU32(b, 0) }

// Vector is a growable array of fixed-size elements addressed by the
// (num_elements, data_offset) header at HeaderOffset. Capacity doubles
// whenever a Push would overflow the current backing block.
type Vector[T any] struct {
	a     *alloc.Allocator
	off   uint32
	codec Codec[T]
}

// NewVector allocates a fresh, empty vector header and returns a handle to
// it. The header itself never moves; only its backing storage does.
func NewVector[T any](a *alloc.Allocator, codec Codec[T]) (*Vector[T], error) {
	off, err := a.Allocate(wire.VectorHeaderSize, true)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{a: a, off: off, codec: codec}, nil
}

// OpenVector wraps an existing vector header at off.
func OpenVector[T any](a *alloc.Allocator, off uint32, codec Codec[T]) *Vector[T] {
	return &Vector[T]{a: a, off: off, codec: codec}
}

// HeaderOffset returns the offset of the vector's (num_elements,
// data_offset) header, for storing in a parent cell.
func (v *Vector[T]) HeaderOffset() uint32 { return v.off }

// Len returns the number of elements currently stored.
func (v *Vector[T]) Len() uint32 {
	cell := wire.ReadVectorCell(v.a.Region().Bytes(), v.off)
	return cell.NumElements
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i uint32) (T, error) {
	var zero T
	cell := wire.ReadVectorCell(v.a.Region().Bytes(), v.off)
	if i >= cell.NumElements {
		return zero, ErrIndexOutOfRange
	}
	size := v.codec.Size()
	elemOff := cell.DataOffset + i*uint32(size)
	view := v.a.Region().ToAddress(elemOff, size)
	if view == nil {
		return zero, ErrCorrupt
	}
	return v.codec.Decode(view), nil
}

// Set overwrites the element at index i.
func (v *Vector[T]) Set(i uint32, val T) error {
	cell := wire.ReadVectorCell(v.a.Region().Bytes(), v.off)
	if i >= cell.NumElements {
		return ErrIndexOutOfRange
	}
	size := v.codec.Size()
	elemOff := cell.DataOffset + i*uint32(size)
	view := v.a.Region().ToAddress(elemOff, size)
	if view == nil {
		return ErrCorrupt
	}
	v.codec.Encode(view, val)
	return nil
}

// Push appends val, doubling the backing block when the current one is
// full.
func (v *Vector[T]) Push(val T) error {
	data := v.a.Region().Bytes()
	cell := wire.ReadVectorCell(data, v.off)
	size := v.codec.Size()

	capacity := int32(0)
	if cell.DataOffset != 0 {
		capacity = wire.CellSize(data, cell.DataOffset) / size
	}
	if int32(cell.NumElements) >= capacity {
		newCap := capacity * 2
		if newCap < 4 {
			newCap = 4
		}
		newDataOff, err := v.a.Allocate(newCap*size, false)
		if err != nil {
			return err
		}
		data = v.a.Region().Bytes()
		if cell.DataOffset != 0 {
			copy(data[newDataOff:newDataOff+uint32(cell.NumElements)*uint32(size)],
				data[cell.DataOffset:cell.DataOffset+uint32(cell.NumElements)*uint32(size)])
			if err := v.a.Free(cell.DataOffset); err != nil {
				return err
			}
		}
		cell.DataOffset = newDataOff
	}

	elemOff := cell.DataOffset + cell.NumElements*uint32(size)
	v.codec.Encode(data[elemOff:elemOff+uint32(size)], val)
	cell.NumElements++
	wire.WriteVectorCell(data, v.off, cell)
	return nil
}

// Clear frees the vector's backing storage (not its header) and resets it
// to empty.
func (v *Vector[T]) Clear() error {
	data := v.a.Region().Bytes()
	cell := wire.ReadVectorCell(data, v.off)
	if cell.DataOffset != 0 {
		if err := v.a.Free(cell.DataOffset); err != nil {
			return err
		}
	}
	wire.WriteVectorCell(v.a.Region().Bytes(), v.off, wire.VectorCell{})
	return nil
}
