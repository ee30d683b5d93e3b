package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/region"
)

var freeCmd = &cobra.Command{
	Use:   "free <path> <offset>",
	Short: "Free the allocation at offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		off, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		r, err := region.Open(data, region.HeapResizer{})
		if err != nil {
			return err
		}
		a := alloc.New(r, alloc.DefaultConfig)

		if err := a.Free(uint32(off)); err != nil {
			return err
		}
		if err := os.WriteFile(args[0], r.Bytes(), 0o644); err != nil {
			return err
		}
		printInfo("freed offset %d\n", off)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(freeCmd)
}
