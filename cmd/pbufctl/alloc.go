package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pavdev/payloadbuffer/alloc"
	"github.com/pavdev/payloadbuffer/region"
)

var allocClear bool

var allocCmd = &cobra.Command{
	Use:   "alloc <path> <size>",
	Short: "Allocate size bytes in the region and print the resulting offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := strconv.ParseInt(args[1], 10, 32)
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
		printVerbose("region opened: %d bytes before allocation\n", len(r.Bytes()))

		off, err := a.Allocate(int32(size), allocClear)
		if err != nil {
			return err
		}
		printVerbose("region is %d bytes after allocation\n", len(r.Bytes()))
		if err := os.WriteFile(args[0], r.Bytes(), 0o644); err != nil {
			return err
		}
		printInfo("allocated %d bytes at offset %d\n", size, off)
		return nil
	},
}

func init() {
	allocCmd.Flags().BoolVar(&allocClear, "clear", true, "zero the returned bytes")
	rootCmd.AddCommand(allocCmd)
}
