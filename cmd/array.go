package main

import (
	"errors"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"
)

var ArrayCmd = &cobra.Command{
	Use:   "array path",
	Short: "Repeat given g-code file over a grid of parts.",
	Args:  cobra.ExactArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) (err error) {
		path := args[0]
		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"path", path,
			"output", outputValue.String(),
		)
		cmd.SetContext(ctx)

		logger.Info("Running")

		program, err := readProgramFile(path)
		if err != nil {
			return err
		}

		output, err := arrayProgram(ctx, program)
		if err != nil {
			return err
		}

		w, err := outputValue.WriterCloser(cmd)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, w.Close()) }()

		return WriteProgram(w, output)
	}),
}

func init() {
	AddGridFlags(ArrayCmd)
	AddOutputFlags(ArrayCmd)

	RootCmd.AddCommand(ArrayCmd)
}
