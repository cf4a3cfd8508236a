package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fornellas/slogxt/log"
	"github.com/spf13/cobra"

	"github.com/fornellas/gcarray/bounds"
	"github.com/fornellas/gcarray/gcode"
	"github.com/fornellas/gcarray/grid"
	gcaFmt "github.com/fornellas/gcarray/internal/fmt"
	"github.com/fornellas/gcarray/replicate"
)

// ErrExceedsEnvelope is returned when the footprint of all instances does not fit the machine travel.
var ErrExceedsEnvelope = errors.New("grid exceeds machine envelope")

var defaultGridSpec = grid.DefaultSpec()

var rows int
var columns int
var rowDirection = defaultGridSpec.RowDirection
var columnDirection = defaultGridSpec.ColumnDirection
var spacingX float64
var spacingY float64

var gap float64
var defaultGap = 5.0

var skip string
var defaultSkip = ""

var sortByTool bool
var defaultSortByTool = false

var maxX float64
var maxY float64
var defaultMaxTravel = 0.0

// AddGridFlags adds the flags describing the grid to cmd.
func AddGridFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&rows, "rows", "r", defaultGridSpec.Rows, "Number of rows")
	cmd.Flags().IntVarP(&columns, "columns", "C", defaultGridSpec.Columns, "Number of columns")
	cmd.Flags().Var(&rowDirection, "row-direction", "Y direction in which rows are added")
	cmd.Flags().Var(&columnDirection, "column-direction", "X direction in which columns are added")
	cmd.Flags().Float64VarP(
		&spacingX, "spacing-x", "", defaultGridSpec.SpacingX,
		"Distance between column origins; 0 uses the part width plus --gap",
	)
	cmd.Flags().Float64VarP(
		&spacingY, "spacing-y", "", defaultGridSpec.SpacingY,
		"Distance between row origins; 0 uses the part height plus --gap",
	)
	cmd.Flags().Float64VarP(&gap, "gap", "g", defaultGap, "Gap between adjacent parts when spacing is derived")
	cmd.Flags().StringVarP(
		&skip, "skip", "s", defaultSkip,
		"Comma separated part numbers or ranges to omit, eg: 1,3,5-7",
	)
	cmd.Flags().BoolVarP(
		&sortByTool, "sort-by-tool", "t", defaultSortByTool,
		"Run each tool across all parts before changing to the next tool",
	)
	cmd.Flags().Float64VarP(&maxX, "max-x", "", defaultMaxTravel, "Machine X travel; 0 disables the check")
	cmd.Flags().Float64VarP(&maxY, "max-y", "", defaultMaxTravel, "Machine Y travel; 0 disables the check")
}

func init() {
	resetFlagsFns = append(resetFlagsFns, func() {
		rows = defaultGridSpec.Rows
		columns = defaultGridSpec.Columns
		rowDirection = defaultGridSpec.RowDirection
		columnDirection = defaultGridSpec.ColumnDirection
		spacingX = defaultGridSpec.SpacingX
		spacingY = defaultGridSpec.SpacingY
		gap = defaultGap
		skip = defaultSkip
		sortByTool = defaultSortByTool
		maxX = defaultMaxTravel
		maxY = defaultMaxTravel
	})
}

// GetGridSpec builds the grid from flags. Spacing not given is derived from box.
func GetGridSpec(box bounds.Box) (grid.Spec, error) {
	spec := grid.Spec{
		Rows:            rows,
		Columns:         columns,
		RowDirection:    rowDirection,
		ColumnDirection: columnDirection,
		SpacingX:        spacingX,
		SpacingY:        spacingY,
	}

	defaultX, defaultY := grid.DefaultSpacing(box, gap)
	if spec.SpacingX == 0 {
		spec.SpacingX = defaultX
	}
	if spec.SpacingY == 0 {
		spec.SpacingY = defaultY
	}

	if err := spec.Validate(); err != nil {
		return grid.Spec{}, err
	}

	skipSet, err := grid.ParseSkip(skip, spec.Parts())
	if err != nil {
		return grid.Spec{}, err
	}
	spec.Skip = skipSet

	return spec, nil
}

// CheckEnvelope fails with ErrExceedsEnvelope when extent does not fit the configured machine travel.
func CheckEnvelope(extent bounds.Box) error {
	var errs []error
	if maxX > 0 && extent.Width() > maxX {
		errs = append(errs, fmt.Errorf("%w: width %s > X travel %s", ErrExceedsEnvelope, gcaFmt.SprintFloat(extent.Width(), 3), gcaFmt.SprintFloat(maxX, 3)))
	}
	if maxY > 0 && extent.Height() > maxY {
		errs = append(errs, fmt.Errorf("%w: height %s > Y travel %s", ErrExceedsEnvelope, gcaFmt.SprintFloat(extent.Height(), 3), gcaFmt.SprintFloat(maxY, 3)))
	}
	return errors.Join(errs...)
}

func readProgramFile(path string) (program *gcode.Program, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	program, err = gcode.ReadProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}

// arrayProgram plans the grid for program and returns the assembled program.
func arrayProgram(ctx context.Context, program *gcode.Program) (string, error) {
	logger := log.MustLogger(ctx)

	box := bounds.Analyze(program)
	logger.Debug("Bounds", "box", box)

	spec, err := GetGridSpec(box)
	if err != nil {
		return "", err
	}

	instances := grid.Plan(spec)
	extent := grid.Extent(box, instances)
	_, logger = log.MustWithAttrs(
		ctx,
		"parts", spec.Parts(),
		"instances", len(instances),
		"spacing_x", spec.SpacingX,
		"spacing_y", spec.SpacingY,
	)
	logger.Info("Planned", "extent", extent)

	if err := CheckEnvelope(extent); err != nil {
		return "", err
	}

	if len(instances) == 0 {
		logger.Warn("All parts skipped")
	}

	return replicate.Assemble(program, instances, replicate.Options{SortByTool: sortByTool}), nil
}
