package gcode

import "fmt"

// DistanceMode tells how coordinates are interpreted.
type DistanceMode int

const (
	// Absolute coordinates are positions in the work coordinate system.
	Absolute DistanceMode = iota
	// Incremental coordinates are displacements from the current position.
	Incremental
)

func (m DistanceMode) String() string {
	switch m {
	case Absolute:
		return "Absolute"
	case Incremental:
		return "Incremental"
	}
	panic(fmt.Sprintf("unexpected DistanceMode: %d", m))
}

// MotionMode is the modal motion command (Group 1).
type MotionMode int

const (
	MotionRapid MotionMode = iota
	MotionLinear
	MotionArcCW
	MotionArcCCW
)

var motionModeNames = map[MotionMode]string{
	MotionRapid:  "G0",
	MotionLinear: "G1",
	MotionArcCW:  "G2",
	MotionArcCCW: "G3",
}

func (m MotionMode) String() string {
	if name, ok := motionModeNames[m]; ok {
		return name
	}
	panic(fmt.Sprintf("unexpected MotionMode: %d", m))
}

// IsArc returns true for G2 / G3.
func (m MotionMode) IsArc() bool {
	return m == MotionArcCW || m == MotionArcCCW
}

// IsCutting returns true for every motion performed at feed rate.
func (m MotionMode) IsCutting() bool {
	return m != MotionRapid
}

// ModalState holds the modal groups relevant to geometry.
// See https://www.linuxcnc.org/docs/2.4/html/gcode_overview.html#sec:Modal-Groups and
// https://github.com/gnea/grbl/wiki/Grbl-v1.1-Commands
type ModalState struct {
	// Distance Mode (Group 3): G90 / G91
	Positioning DistanceMode
	// Arc IJK Distance Mode (Group 4): G90.1 / G91.1
	ArcCenter DistanceMode
	// Motion (Group 1): G0 / G1 / G2 / G3
	Motion MotionMode
}

// DefaultModalState returns Grbl's power up state for the tracked modal groups.
func DefaultModalState() ModalState {
	return ModalState{
		Positioning: Absolute,
		ArcCenter:   Incremental,
		Motion:      MotionRapid,
	}
}

// UpdateFromWord applies a single command word. Words of other groups are ignored.
func (m ModalState) UpdateFromWord(word *Word) ModalState {
	if !word.IsCommand() {
		return m
	}
	switch word.NormalizedString() {
	case "G0":
		m.Motion = MotionRapid
	case "G1":
		m.Motion = MotionLinear
	case "G2":
		m.Motion = MotionArcCW
	case "G3":
		m.Motion = MotionArcCCW
	case "G90":
		m.Positioning = Absolute
	case "G91":
		m.Positioning = Incremental
	case "G90.1":
		m.ArcCenter = Absolute
	case "G91.1":
		m.ArcCenter = Incremental
	}
	return m
}

// UpdateFromLine applies every command word of the line, in order, returning the new state.
func (m ModalState) UpdateFromLine(line *Line) ModalState {
	for _, word := range line.Commands() {
		m = m.UpdateFromWord(word)
	}
	return m
}
