package replicate

import (
	"regexp"
	"strings"

	"github.com/fornellas/gcarray/gcode"
)

// maxLabelLength is the length limit of operation label comments, parenthesis included.
const maxLabelLength = 50

var labelRegexp = regexp.MustCompile(`^\(\s*\w[\w .,#/+\-]*\)$`)

// isLabel returns true for short standalone comments such as "(Pocket 2)", that CAM post
// processors write to name the next operation. Comments carrying values ("(T1 D=3)") or
// "key: value" text are not labels.
func isLabel(line *gcode.Line) bool {
	if !line.IsComment() {
		return false
	}
	text := strings.TrimSpace(line.String())
	if len(text) >= maxLabelLength {
		return false
	}
	return labelRegexp.MatchString(text)
}

type labelState int

const (
	labelIdle labelState = iota
	labelBuffering
)

// labeler keeps operation labels next to the operation they name. A label found right after a
// retract in machine coordinates is held back until the next line starting an operation (spindle
// start, or a G0 / G1 move in X / Y), and emitted just before it. A label still held when the
// replayed lines end is dropped.
type labeler struct {
	state     labelState
	pending   string
	retracted bool
	modal     gcode.ModalState
}

func newLabeler() *labeler {
	return &labeler{modal: gcode.DefaultModalState()}
}

func (l *labeler) startsOperation(line *gcode.Line) bool {
	if line.IsSpindleStart() {
		return true
	}
	if line.IsMachineCoordinate() || !line.HasArgument('X', 'Y') {
		return false
	}
	return l.modal.Motion == gcode.MotionRapid || l.modal.Motion == gcode.MotionLinear
}

// Process takes a line along with the text to output for it, and returns the texts to output now.
func (l *labeler) Process(line *gcode.Line, text string) []string {
	if l.retracted && isLabel(line) {
		l.state = labelBuffering
		l.pending = text
		l.retracted = false
		return nil
	}
	if line.IsBlank() {
		return []string{text}
	}
	if line.IsComment() {
		l.retracted = false
		return []string{text}
	}

	l.modal = l.modal.UpdateFromLine(line)
	l.retracted = line.IsMachineCoordinate()

	if l.state == labelBuffering && l.startsOperation(line) {
		pending := l.pending
		l.state = labelIdle
		l.pending = ""
		return []string{pending, text}
	}
	return []string{text}
}
