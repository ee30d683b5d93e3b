package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pavdev/payloadbuffer/frame"
	"github.com/pavdev/payloadbuffer/region"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Print a region's header and free list",
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
		if jsonOut {
			h, err := r.Header()
			if err != nil {
				return err
			}
			return printJSON(struct {
				Moveable bool     `json:"moveable"`
				Bitmap   bool     `json:"bitmap_enabled"`
				FullSize uint32   `json:"full_size"`
				HWM      uint32   `json:"hwm"`
				Message  uint32   `json:"message"`
				Metadata uint32   `json:"metadata"`
				FreeList uint32   `json:"free_list"`
				Bitmaps  []uint32 `json:"bitmaps"`
			}{
				Moveable: h.Moveable(),
				Bitmap:   h.BitmapEnabled(),
				FullSize: h.FullSize,
				HWM:      h.HWM,
				Message:  h.Message,
				Metadata: h.Metadata,
				FreeList: h.FreeList,
				Bitmaps:  h.Bitmaps[:],
			})
		}
		return frame.Dump(r, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
