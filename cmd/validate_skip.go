package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fornellas/gcarray/grid"
)

var maxParts int
var defaultMaxParts = 0

var ValidateSkipCmd = &cobra.Command{
	Use:   "validate-skip text",
	Short: "Validate a skip specification, eg: 1,3,5-7, against the number of parts.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		if maxParts < 1 {
			return fmt.Errorf("--max-parts must be at least 1: %d", maxParts)
		}
		if err := grid.ValidateSkip(args[0], maxParts); err != nil {
			return err
		}

		skipSet, err := grid.ParseSkip(args[0], maxParts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid, skipping %d of %d parts: %v\n", len(skipSet), maxParts, skipSet.Sorted())
		return nil
	}),
}

func init() {
	ValidateSkipCmd.Flags().IntVarP(&maxParts, "max-parts", "m", defaultMaxParts, "Total number of parts in the grid")

	RootCmd.AddCommand(ValidateSkipCmd)

	resetFlagsFns = append(resetFlagsFns, func() {
		maxParts = defaultMaxParts
	})
}
