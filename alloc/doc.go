// Package alloc implements the two allocators that carve payload cells out
// of a region's arena: a general address-ordered free list for arbitrary
// sizes, and a segregated bitmap tier for the four hard-coded small-block
// size classes (16, 32, 64, 128 bytes). Both operate purely in terms of
// region offsets; neither retains a []byte across a call that might grow
// the region.
//
// A typical caller only touches the top-level Allocator:
//
//	r, _ := region.NewMoveable(64<<10, true, region.HeapResizer{})
//	a := alloc.New(r, alloc.DefaultConfig)
//
//	off, err := a.Allocate(24, true)
//	if err != nil {
//	    // out of space and unable to grow
//	}
//	// ... use r.ToAddress(off, 24) ...
//	if err := a.Free(off); err != nil {
//	    // off was not a live allocation
//	}
package alloc
