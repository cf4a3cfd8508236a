// Package replicate repeats a G-code program at each instance of a grid.
package replicate

import (
	"strings"

	"github.com/fornellas/gcarray/gcode"
	"github.com/fornellas/gcarray/grid"
)

// ProgramEnd is the last command of every assembled program.
const ProgramEnd = "M30"

// TapeMarker delimits the assembled program when the source program had tape markers.
const TapeMarker = "%"

// Options controls how programs are assembled.
type Options struct {
	// SortByTool executes each tool across all instances before changing to the next tool, so the
	// number of tool changes is the number of unique tools instead of growing with instances.
	SortByTool bool
}

type assembler struct {
	lines []string
}

func (a *assembler) emit(texts ...string) {
	a.lines = append(a.lines, texts...)
}

func (a *assembler) emitRaw(lines []*gcode.Line) {
	for _, line := range lines {
		a.emit(line.String())
	}
}

// replay emits lines offset for the given instance. Spindle stops are removed unless
// keepSpindleStop is set, so the spindle keeps running between chained instances.
func (a *assembler) replay(lines []*gcode.Line, instance grid.Instance, keepSpindleStop bool) {
	offset := gcode.NewOffset(instance.OffsetX, instance.OffsetY)
	a.replayWithOffset(lines, offset, keepSpindleStop)
}

func (a *assembler) replayWithOffset(lines []*gcode.Line, offset *gcode.Offset, keepSpindleStop bool) {
	labeler := newLabeler()
	for _, line := range lines {
		if line.IsSpindleStop() && !keepSpindleStop {
			text, remaining := line.WithoutCommand("M5")
			if !remaining {
				continue
			}
			line = gcode.NewLine(text)
		}
		a.emit(labeler.Process(line, offset.Transform(line))...)
	}
}

// standard replays every segment, tool changes included, for each instance in turn.
func (a *assembler) standard(segments []*gcode.Segment, instances []grid.Instance) {
	for i, instance := range instances {
		offset := gcode.NewOffset(instance.OffsetX, instance.OffsetY)
		for j, segment := range segments {
			if !segment.IsHeader() {
				a.emit(segment.ToolChangeLine())
			}
			last := i == len(instances)-1 && j == len(segments)-1
			a.replayWithOffset(segment.Lines, offset, last)
		}
	}
}

// sortedByTool emits the header once, then for each tool, in order of first use, a single tool
// change followed by all of that tool's lines replayed for every instance.
func (a *assembler) sortedByTool(segments []*gcode.Segment, instances []grid.Instance) {
	var tools []*gcode.Segment
	toolLines := map[int][]*gcode.Line{}
	for _, segment := range segments {
		if segment.IsHeader() {
			a.emitRaw(segment.Lines)
			continue
		}
		tool := *segment.Tool
		if _, ok := toolLines[tool]; !ok {
			tools = append(tools, segment)
		}
		toolLines[tool] = append(toolLines[tool], segment.Lines...)
	}

	if len(instances) == 0 {
		return
	}

	for _, segment := range tools {
		a.emit(segment.ToolChangeLine())
		for i, instance := range instances {
			a.replay(toolLines[*segment.Tool], instance, i == len(instances)-1)
		}
	}
}

func isOperation(line *gcode.Line) bool {
	if line.IsSpindleStart() {
		return true
	}
	return !line.IsMachineCoordinate() && line.HasArgument('X', 'Y')
}

// splitSingleTool splits lines of a program without tool changes into a preamble, which ends at the
// first spindle start or X / Y move, a body and a postamble, starting at the first retract in
// machine coordinates or spindle stop after the last operation.
func splitSingleTool(lines []*gcode.Line) ([]*gcode.Line, []*gcode.Line, []*gcode.Line) {
	first, last := -1, -1
	for i, line := range lines {
		if isOperation(line) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return lines, nil, nil
	}

	post := len(lines)
	for i := last + 1; i < len(lines); i++ {
		if lines[i].IsMachineCoordinate() || lines[i].IsSpindleStop() {
			post = i
			break
		}
	}
	return lines[:first], lines[first:post], lines[post:]
}

// singleTool handles programs without tool changes: only the body is replayed per instance.
func (a *assembler) singleTool(segments []*gcode.Segment, instances []grid.Instance) {
	var lines []*gcode.Line
	for _, segment := range segments {
		lines = append(lines, segment.Lines...)
	}
	preamble, body, postamble := splitSingleTool(lines)

	a.emitRaw(preamble)
	for i, instance := range instances {
		a.replay(body, instance, i == len(instances)-1)
	}
	a.emitRaw(postamble)
}

func (a *assembler) String() string {
	var b strings.Builder
	for _, line := range a.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Assemble returns a new program repeating program at each instance, in the given order. X / Y
// coordinates are offset per instance in absolute distance mode only. Program end lines of the
// source are dropped, and the result ends with a single ProgramEnd line. Tape markers of the
// source are dropped too; when there were any, the result is enclosed by one pair of them.
func Assemble(program *gcode.Program, instances []grid.Instance, options Options) string {
	a := &assembler{}
	tapeMarked := program.HasTapeMarker()
	if tapeMarked {
		a.emit(TapeMarker)
	}
	segments, toolChanges := gcode.SplitByTool(program)
	switch {
	case !toolChanges:
		a.singleTool(segments, instances)
	case options.SortByTool:
		a.sortedByTool(segments, instances)
	default:
		a.standard(segments, instances)
	}
	a.emit(ProgramEnd)
	if tapeMarked {
		a.emit(TapeMarker)
	}
	return a.String()
}
