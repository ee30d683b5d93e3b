package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pavdev/payloadbuffer/pbuflog"
	"github.com/pavdev/payloadbuffer/region"
)

var (
	newSize     uint32
	newFixed    bool
	newBitmap   bool
	newOverride bool
)

var newCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Create a fresh payload buffer region file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !newOverride {
			if _, err := os.Stat(path); err == nil {
				return errAlreadyExists(path)
			}
		}

		var r *region.Region
		var err error
		if newFixed {
			r, err = region.NewFixed(newSize, newBitmap)
		} else {
			r, err = region.NewMoveable(newSize, newBitmap, region.HeapResizer{})
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, r.Bytes(), 0o644); err != nil {
			return err
		}
		pbuflog.Info("created region", "path", path, "size", newSize, "fixed", newFixed)
		printInfo("created %s: %d bytes, fixed=%v, bitmap=%v\n", path, newSize, newFixed, newBitmap)
		return nil
	},
}

func init() {
	newCmd.Flags().Uint32Var(&newSize, "size", 64<<10, "initial region size in bytes")
	newCmd.Flags().BoolVar(&newFixed, "fixed", false, "create a fixed-capacity region (no growth)")
	newCmd.Flags().BoolVar(&newBitmap, "bitmap", true, "enable the small-block bitmap tier")
	newCmd.Flags().BoolVar(&newOverride, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}
