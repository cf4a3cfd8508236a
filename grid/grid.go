package grid

import (
	"errors"
	"fmt"

	"github.com/fornellas/gcarray/bounds"
)

// Direction is the sign applied to offsets along an axis.
type Direction int

const (
	Positive Direction = 1
	Negative Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Set parses "positive" / "+" or "negative" / "-". Along with String and Type, this allows
// Direction to be used as a flag value.
func (d *Direction) Set(value string) error {
	switch value {
	case "positive", "+":
		*d = Positive
	case "negative", "-":
		*d = Negative
	default:
		return fmt.Errorf("invalid direction %q: must be positive or negative", value)
	}
	return nil
}

func (d *Direction) Type() string {
	return "positive|negative"
}

// Spec describes a grid of program instances.
type Spec struct {
	Rows    int
	Columns int
	// RowDirection is the Y direction in which rows are added.
	RowDirection Direction
	// ColumnDirection is the X direction in which columns are added.
	ColumnDirection Direction
	// SpacingX is the distance between the origins of adjacent columns.
	SpacingX float64
	// SpacingY is the distance between the origins of adjacent rows.
	SpacingY float64
	// Skip holds the part numbers to omit.
	Skip SkipSet
}

// DefaultSpec returns the default grid: one row of two columns, growing towards positive X and Y.
// Spacing is left at 0, to be derived from the part size with DefaultSpacing.
func DefaultSpec() Spec {
	return Spec{
		Rows:            1,
		Columns:         2,
		RowDirection:    Positive,
		ColumnDirection: Positive,
		Skip:            SkipSet{},
	}
}

// Parts returns the total number of grid cells, skipped or not.
func (s Spec) Parts() int {
	return s.Rows * s.Columns
}

// Validate checks that the grid can be planned.
func (s Spec) Validate() error {
	var errs []error
	if s.Rows < 1 {
		errs = append(errs, fmt.Errorf("rows must be at least 1: %d", s.Rows))
	}
	if s.Columns < 1 {
		errs = append(errs, fmt.Errorf("columns must be at least 1: %d", s.Columns))
	}
	if s.RowDirection != Positive && s.RowDirection != Negative {
		errs = append(errs, fmt.Errorf("invalid row direction: %s", s.RowDirection))
	}
	if s.ColumnDirection != Positive && s.ColumnDirection != Negative {
		errs = append(errs, fmt.Errorf("invalid column direction: %s", s.ColumnDirection))
	}
	if !(s.SpacingX > 0) {
		errs = append(errs, fmt.Errorf("spacing X must be greater than 0: %v", s.SpacingX))
	}
	if !(s.SpacingY > 0) {
		errs = append(errs, fmt.Errorf("spacing Y must be greater than 0: %v", s.SpacingY))
	}
	return errors.Join(errs...)
}

// Instance is one placed copy of the program.
type Instance struct {
	// PartNumber is the 1-based row-major cell number.
	PartNumber int
	// Row is 1-based.
	Row int
	// Column is 1-based.
	Column  int
	OffsetX float64
	OffsetY float64
}

// Plan returns the instances of all cells not skipped, in row-major order. A spec with no rows or
// columns gives no instances.
func Plan(spec Spec) []Instance {
	instances := make([]Instance, 0, max(spec.Parts(), 0))
	for row := range spec.Rows {
		for col := range spec.Columns {
			partNumber := row*spec.Columns + col + 1
			if spec.Skip.Contains(partNumber) {
				continue
			}
			instances = append(instances, Instance{
				PartNumber: partNumber,
				Row:        row + 1,
				Column:     col + 1,
				OffsetX:    float64(col) * spec.SpacingX * float64(spec.ColumnDirection),
				OffsetY:    float64(row) * spec.SpacingY * float64(spec.RowDirection),
			})
		}
	}
	return instances
}

// DefaultSpacing returns the spacing that leaves gap between adjacent copies of box.
func DefaultSpacing(box bounds.Box, gap float64) (float64, float64) {
	return box.Width() + gap, box.Height() + gap
}

// Extent returns the box covering box placed at every instance. It is the zero box when there are
// no instances.
func Extent(box bounds.Box, instances []Instance) bounds.Box {
	if len(instances) == 0 {
		return bounds.Box{}
	}
	extent := box.Translate(instances[0].OffsetX, instances[0].OffsetY)
	for _, instance := range instances[1:] {
		extent = extent.Union(box.Translate(instance.OffsetX, instance.OffsetY))
	}
	return extent
}
