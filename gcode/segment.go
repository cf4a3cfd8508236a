package gcode

import "fmt"

// Segment is a contiguous run of program lines executed under one tool selection.
type Segment struct {
	// Tool is nil for the header segment: the lines before the first tool change.
	Tool *int
	// Lines excludes the tool change line itself.
	Lines []*Line
}

// IsHeader returns true for the segment preceding the first tool change.
func (s *Segment) IsHeader() bool {
	return s.Tool == nil
}

// ToolChangeLine returns the normalized tool change line that selects the segment's tool.
func (s *Segment) ToolChangeLine() string {
	if s.Tool == nil {
		panic("bug: header segment has no tool change")
	}
	return fmt.Sprintf("T%d M6", *s.Tool)
}

// SplitByTool splits the program at each tool change. The header segment, when present, is always
// the first. Empty segments are omitted, tool change lines are not kept in any segment, and program
// end lines (M2 / M30) and "%" tape markers are dropped. The returned bool is true when at least one tool change was
// found.
func SplitByTool(program *Program) ([]*Segment, bool) {
	var segments []*Segment
	current := &Segment{}
	var toolChanges bool

	for _, line := range program.Lines {
		if tool, ok := line.ToolChange(); ok {
			toolChanges = true
			if len(current.Lines) > 0 {
				segments = append(segments, current)
			}
			current = &Segment{Tool: &tool}
			continue
		}
		if line.IsProgramEnd() || line.IsTapeMarker() {
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	if len(current.Lines) > 0 {
		segments = append(segments, current)
	}

	return segments, toolChanges
}
