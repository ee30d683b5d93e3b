package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavdev/payloadbuffer/internal/wire"
	"github.com/pavdev/payloadbuffer/region"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a region's free list for structural invariant violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		r, err := region.Open(data, region.HeapResizer{})
		if err != nil {
			return err
		}
		if errs := validateRegion(r); len(errs) > 0 {
			for _, e := range errs {
				printError("%v\n", e)
			}
			return fmt.Errorf("%d invariant violation(s) found", len(errs))
		}
		printInfo("ok\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateRegion checks the invariants a well-formed region must satisfy:
// the free list stays in strictly ascending address order, no two free
// blocks are left adjacent (they should have been coalesced), every block
// stays within [0, full_size), and the watermark never exceeds full_size.
func validateRegion(r *region.Region) []error {
	var errs []error

	h, err := r.Header()
	if err != nil {
		return []error{err}
	}
	if h.HWM > h.FullSize {
		errs = append(errs, fmt.Errorf("hwm %d exceeds full_size %d", h.HWM, h.FullSize))
	}

	data := r.Bytes()
	prevOff := uint32(0)
	var prevEnd uint32
	off := h.FreeList
	for off != 0 {
		if off >= h.FullSize {
			errs = append(errs, fmt.Errorf("free block at %d falls outside the region", off))
			break
		}
		fb := wire.ReadFreeBlock(data, off)
		if fb.Length < 0 || uint64(off)+uint64(fb.Length) > uint64(h.FullSize) {
			errs = append(errs, fmt.Errorf("free block at %d (length %d) extends past full_size %d", off, fb.Length, h.FullSize))
		}
		if prevOff != 0 {
			if off <= prevOff {
				errs = append(errs, fmt.Errorf("free list out of order: %d does not follow %d", off, prevOff))
			}
			if prevEnd == off {
				errs = append(errs, fmt.Errorf("adjacent free blocks at %d and %d were not coalesced", prevOff, off))
			}
		}
		prevOff = off
		prevEnd = off + uint32(fb.Length)
		off = fb.Next
	}

	return errs
}
