package frame

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

// Dump writes a human-readable summary of a region's header and free list
// to w: magic, growth policy, watermark, and every free block in address
// order. It is a debugging aid, not part of the wire format.
func Dump(r *region.Region, w io.Writer) error {
	h, err := r.Header()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "field\tvalue\n")
	fmt.Fprintf(tw, "moveable\t%v\n", h.Moveable())
	fmt.Fprintf(tw, "bitmap tier\t%v\n", h.BitmapEnabled())
	fmt.Fprintf(tw, "full_size\t%d\n", h.FullSize)
	fmt.Fprintf(tw, "hwm\t%d\n", h.HWM)
	fmt.Fprintf(tw, "message\t%d\n", h.Message)
	fmt.Fprintf(tw, "metadata\t%d\n", h.Metadata)
	for i, v := range h.Bitmaps {
		fmt.Fprintf(tw, "bitmap[%d] (%d-byte class)\t%d\n", i, wire.SmallBlockSizes[i], v)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "free block\tlength\tnext\n")
	data := r.Bytes()
	off := h.FreeList
	for off != 0 {
		fb := wire.ReadFreeBlock(data, off)
		fmt.Fprintf(tw, "%d\t%d\t%d\n", off, fb.Length, fb.Next)
		off = fb.Next
	}
	return tw.Flush()
}
