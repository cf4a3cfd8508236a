package main

import (
	"fmt"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"

	"github.com/fornellas/gcarray/bounds"
	gcaFmt "github.com/fornellas/gcarray/internal/fmt"
)

var BoundsCmd = &cobra.Command{
	Use:   "bounds path",
	Short: "Print the bounding box of cutting moves of given g-code file.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ctx, logger := log.MustWithAttrs(cmd.Context(), "path", path)
		cmd.SetContext(ctx)

		program, err := readProgramFile(path)
		if err != nil {
			return err
		}
		logger.Debug("Read", "lines", len(program.Lines))

		box := bounds.Analyze(program)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Min: %s\n", box.Min)
		fmt.Fprintf(w, "Max: %s\n", box.Max)
		fmt.Fprintf(
			w, "Size: %s x %s x %s\n",
			gcaFmt.SprintFixed(box.Width(), 3),
			gcaFmt.SprintFixed(box.Height(), 3),
			gcaFmt.SprintFixed(box.Depth(), 3),
		)
		return nil
	}),
}

func init() {
	RootCmd.AddCommand(BoundsCmd)
}
