package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var outputDir string
var defaultOutputDir = ""

var jobs int
var defaultJobs = runtime.NumCPU()

// arrayOutputPath returns the path at dir for the array of the program at path: name.array.ext.
func arrayOutputPath(dir, path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".array"+ext)
}

// arrayOutputPaths maps each input path to its output path at dir, failing when two inputs would
// be written to the same output.
func arrayOutputPaths(dir string, paths []string) (map[string]string, error) {
	outputPaths := make(map[string]string, len(paths))
	inputs := make(map[string]string, len(paths))
	var errs []error
	for _, path := range paths {
		outputPath := arrayOutputPath(dir, path)
		if other, ok := inputs[outputPath]; ok {
			errs = append(errs, fmt.Errorf("%s and %s would both be written to %s", other, path, outputPath))
			continue
		}
		inputs[outputPath] = path
		outputPaths[path] = outputPath
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return outputPaths, nil
}

func arrayFile(ctx context.Context, path, outputPath string) (err error) {
	ctx, logger := log.MustWithAttrs(ctx, "path", path)

	program, err := readProgramFile(path)
	if err != nil {
		return err
	}

	output, err := arrayProgram(ctx, program)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(0644))
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if err := WriteProgram(f, output); err != nil {
		return fmt.Errorf("%s: %w", outputPath, err)
	}
	logger.Info("Written", "output", outputPath)
	return nil
}

var ArrayBatchCmd = &cobra.Command{
	Use:   "array-batch path...",
	Short: "Repeat each given g-code file over the same grid, writing results to a directory.",
	Args:  cobra.MinimumNArgs(1),
	Run: GetRunFn(func(cmd *cobra.Command, args []string) error {
		ctx, logger := log.MustWithAttrs(
			cmd.Context(),
			"output-dir", outputDir,
			"jobs", jobs,
		)
		cmd.SetContext(ctx)

		if outputDir == "" {
			return fmt.Errorf("--output-dir is required")
		}
		if jobs < 1 {
			return fmt.Errorf("--jobs must be at least 1: %d", jobs)
		}
		outputPaths, err := arrayOutputPaths(outputDir, args)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(outputDir, os.FileMode(0755)); err != nil {
			return err
		}

		logger.Info("Running", "files", len(args))

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(jobs)
		for _, path := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return arrayFile(ctx, path, outputPaths[path])
			})
		}
		return g.Wait()
	}),
}

func init() {
	AddGridFlags(ArrayBatchCmd)

	ArrayBatchCmd.Flags().StringVarP(
		&outputDir, "output-dir", "d", defaultOutputDir,
		"Directory to write arrays to, as name.array.ext",
	)
	ArrayBatchCmd.Flags().IntVarP(&jobs, "jobs", "j", defaultJobs, "Number of files processed concurrently")

	RootCmd.AddCommand(ArrayBatchCmd)

	resetFlagsFns = append(resetFlagsFns, func() {
		outputDir = defaultOutputDir
		jobs = defaultJobs
	})
}
