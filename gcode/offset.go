package gcode

import (
	gcaFmt "github.com/fornellas/gcarray/internal/fmt"
)

// offsetDecimals is the number of decimal digits written for offset coordinates.
const offsetDecimals = 3

// Offset translates work coordinates at the XY plane. Machine coordinates (G53) are not affected.
// It tracks the distance mode of the lines it sees, so a new Offset must be used for each
// independent pass over a program.
type Offset struct {
	x, y        float64
	positioning DistanceMode
}

// NewOffset creates a new Offset adding x and y to absolute X / Y coordinates.
func NewOffset(x, y float64) *Offset {
	return &Offset{
		x:           x,
		y:           y,
		positioning: DefaultModalState().Positioning,
	}
}

// Transform returns the text of given line with X and Y offset.
// Lines in incremental distance mode are relative displacements and are returned unchanged:
// a program that cuts in incremental mode is not translated. Z, I, J and all other words are never
// changed.
func (o *Offset) Transform(line *Line) string {
	if line.IsComment() || line.IsBlank() || line.IsOpaque() || line.IsSystem() {
		return line.String()
	}

	for _, word := range line.Commands() {
		switch word.NormalizedString() {
		case "G90":
			o.positioning = Absolute
		case "G91":
			o.positioning = Incremental
		}
	}

	if line.IsMachineCoordinate() {
		return line.String()
	}
	if o.positioning == Incremental {
		return line.String()
	}
	if !line.HasArgument('X', 'Y') {
		return line.String()
	}

	return line.ReplaceArguments(func(word *Word) (string, bool) {
		switch word.Letter() {
		case 'X':
			return gcaFmt.SprintFixed(word.Number()+o.x, offsetDecimals), true
		case 'Y':
			return gcaFmt.SprintFixed(word.Number()+o.y, offsetDecimals), true
		}
		return "", false
	})
}
