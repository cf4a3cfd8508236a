package gcode

import (
	"bufio"
	"io"
	"strings"
)

// maxLineBytes bounds the length of a single program line when reading.
const maxLineBytes = 1024 * 1024

// Program is an ordered sequence of classified lines.
type Program struct {
	Lines []*Line
}

// NewProgram splits text at line terminators (LF or CRLF) and classifies each line. A trailing
// terminator does not produce an extra empty line.
func NewProgram(text string) *Program {
	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if text == "" {
		return &Program{}
	}
	rawLines := strings.Split(text, "\n")
	lines := make([]*Line, len(rawLines))
	for i, raw := range rawLines {
		lines[i] = NewLine(strings.TrimSuffix(raw, "\r"))
	}
	return &Program{Lines: lines}
}

// ReadProgram reads all lines from r.
func ReadProgram(r io.Reader) (*Program, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	program := &Program{}
	for scanner.Scan() {
		program.Lines = append(program.Lines, NewLine(strings.TrimSuffix(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

// HasTapeMarker returns true when any line is a "%" tape marker.
func (p *Program) HasTapeMarker() bool {
	for _, l := range p.Lines {
		if l.IsTapeMarker() {
			return true
		}
	}
	return false
}

// String joins all lines, each terminated by a new line.
func (p *Program) String() string {
	var b strings.Builder
	for _, l := range p.Lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}
