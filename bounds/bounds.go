package bounds

import (
	"fmt"
	"math"

	"github.com/fornellas/gcarray/gcode"
)

// Point holds X, Y and Z coordinates.
type Point struct {
	X float64
	Y float64
	Z float64
}

func (p Point) String() string {
	return fmt.Sprintf("X%.3f Y%.3f Z%.3f", p.X, p.Y, p.Z)
}

// GetAxis returns a pointer to the value of given axis letter, or nil for unknown axes.
func (p *Point) GetAxis(axis rune) *float64 {
	switch axis {
	case 'X':
		return &p.X
	case 'Y':
		return &p.Y
	case 'Z':
		return &p.Z
	}
	return nil
}

// Box is an axis aligned bounding box.
type Box struct {
	Min Point
	Max Point
}

// emptyBox returns a box which any point extends.
func emptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Point{X: inf, Y: inf, Z: inf},
		Max: Point{X: -inf, Y: -inf, Z: -inf},
	}
}

func (b *Box) extendAxis(axis rune, value float64) {
	min, max := b.Min.GetAxis(axis), b.Max.GetAxis(axis)
	*min = math.Min(*min, value)
	*max = math.Max(*max, value)
}

func (b *Box) extendRect(r Rect) {
	b.extendAxis('X', r.MinX)
	b.extendAxis('X', r.MaxX)
	b.extendAxis('Y', r.MinY)
	b.extendAxis('Y', r.MaxY)
}

// collapse sets axes which were never extended to 0.
func (b *Box) collapse() {
	for _, axis := range []rune{'X', 'Y', 'Z'} {
		min, max := b.Min.GetAxis(axis), b.Max.GetAxis(axis)
		if math.IsInf(*min, 1) || math.IsInf(*max, -1) {
			*min, *max = 0, 0
		}
	}
}

// Width is the size at the X axis.
func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height is the size at the Y axis.
func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Depth is the size at the Z axis.
func (b Box) Depth() float64 {
	return b.Max.Z - b.Min.Z
}

// Translate returns the box moved by x, y.
func (b Box) Translate(x, y float64) Box {
	b.Min.X += x
	b.Max.X += x
	b.Min.Y += y
	b.Max.Y += y
	return b
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y), Z: math.Min(b.Min.Z, o.Min.Z)},
		Max: Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y), Z: math.Max(b.Max.Z, o.Max.Z)},
	}
}

func (b Box) String() string {
	return fmt.Sprintf("min=(%s) max=(%s)", b.Min, b.Max)
}

var axes = []rune{'X', 'Y', 'Z'}

// Analyze returns the bounding box of all cutting (non rapid) motion of the program, in work
// coordinates, starting at the origin with Grbl's default modal state.
// Linear cuts extend the box with the start and end X / Y values present on the line, and with the
// end Z value; arcs with I / J extend it with the whole swept XY rectangle. Rapid moves update the position but
// never the box. Moves in machine coordinates (G53) are
// ignored. Axes without any cutting motion are 0 at both ends.
func Analyze(program *gcode.Program) Box {
	box := emptyBox()
	state := gcode.DefaultModalState()
	var position Point

	for _, line := range program.Lines {
		if line.IsComment() || line.IsBlank() || line.IsOpaque() || line.IsSystem() {
			continue
		}

		state = state.UpdateFromLine(line)

		if line.IsMachineCoordinate() {
			continue
		}
		// Arcs with only I / J are full circles, ending where they started.
		if !line.HasArgument(axes...) && !(state.Motion.IsArc() && line.HasArgument('I', 'J')) {
			continue
		}

		start := position
		for _, axis := range axes {
			value, ok := line.Argument(axis)
			if !ok {
				continue
			}
			if state.Positioning == gcode.Incremental {
				value += *start.GetAxis(axis)
			}
			*position.GetAxis(axis) = value
		}

		if !state.Motion.IsCutting() {
			continue
		}

		if state.Motion.IsArc() && line.HasArgument('I', 'J') {
			i, _ := line.Argument('I')
			j, _ := line.Argument('J')
			cx, cy := i, j
			if state.ArcCenter == gcode.Incremental {
				cx, cy = start.X+i, start.Y+j
			}
			radius := math.Hypot(start.X-cx, start.Y-cy)
			startAngle := math.Atan2(start.Y-cy, start.X-cx)
			endAngle := math.Atan2(position.Y-cy, position.X-cx)
			box.extendRect(ArcBox(cx, cy, radius, startAngle, endAngle, state.Motion == gcode.MotionArcCW))
			box.extendAxis('X', start.X)
			box.extendAxis('Y', start.Y)
			box.extendAxis('X', position.X)
			box.extendAxis('Y', position.Y)
			if line.HasArgument('Z') {
				box.extendAxis('Z', position.Z)
			}
			continue
		}

		// A cut spans from its start to its end point at the XY plane. Z only counts the end
		// point, so the clearance height a plunge starts from is not part of the box.
		for _, axis := range axes {
			if !line.HasArgument(axis) {
				continue
			}
			if axis != 'Z' {
				box.extendAxis(axis, *start.GetAxis(axis))
			}
			box.extendAxis(axis, *position.GetAxis(axis))
		}
	}

	box.collapse()
	return box
}
