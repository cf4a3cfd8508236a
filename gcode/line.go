package gcode

import (
	"fmt"
	"strings"
)

// wordTokens links a Word to the tokens that declared it.
type wordTokens struct {
	word      *Word
	letterIdx int
	numberIdx int
}

// Line is a single program line, classified once when created. The original text is always
// preserved: rewrites only touch the tokens they change.
type Line struct {
	text    string
	tokens  Tokens
	words   []wordTokens
	comment bool
	system  bool
	// opaque is set for lines that could not be tokenized or parsed into words; they are never
	// interpreted nor rewritten.
	opaque bool
}

// NewLine classifies given line text, which must not contain a line terminator.
func NewLine(text string) *Line {
	l := &Line{text: text}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 0 && isCommentStart(trimmed[0]) {
		l.comment = true
		return l
	}

	tokens, err := Tokenize(text)
	if err != nil {
		l.opaque = true
		return l
	}
	l.tokens = tokens

	if err := l.parseWords(); err != nil {
		l.opaque = true
		l.words = nil
	}
	return l
}

func (l *Line) parseWords() error {
	letterIdx := -1
	for i, token := range l.tokens {
		switch token.Type {
		case TokenTypeSpace, TokenTypeComment:
		case TokenTypeSystem:
			if len(l.words) > 0 || letterIdx >= 0 {
				return fmt.Errorf("system command cannot follow command words")
			}
			l.system = true
		case TokenTypeWordLetter:
			if letterIdx >= 0 {
				return fmt.Errorf("unexpected word letter %q after previous letter %q", token.Value, l.tokens[letterIdx].Value)
			}
			letterIdx = i
		case TokenTypeWordNumber:
			if letterIdx < 0 {
				return fmt.Errorf("unexpected word number %q without preceding letter", token.Value)
			}
			word, err := NewWordParse(rune(l.tokens[letterIdx].Value[0]), token.Value)
			if err != nil {
				return fmt.Errorf("bad number: %#v: %w", token.Value, err)
			}
			l.words = append(l.words, wordTokens{word: word, letterIdx: letterIdx, numberIdx: i})
			letterIdx = -1
		default:
			panic(fmt.Sprintf("bug: unexpected token type: %s", token.Type))
		}
	}
	if letterIdx >= 0 {
		return fmt.Errorf("unexpected word letter at end of line")
	}
	return nil
}

// String returns the original line text.
func (l *Line) String() string {
	return l.text
}

// IsBlank returns true for lines with only white space.
func (l *Line) IsBlank() bool {
	return strings.TrimSpace(l.text) == ""
}

// IsComment returns true for lines starting with "(", ";" or "%".
func (l *Line) IsComment() bool {
	return l.comment
}

// IsTapeMarker returns true for lines starting with "%", which delimit the program on tape style
// controllers.
func (l *Line) IsTapeMarker() bool {
	trimmed := strings.TrimSpace(l.text)
	return len(trimmed) > 0 && isPercentCommentStart(trimmed[0])
}

// IsSystem returns true for Grbl "$" system command lines.
func (l *Line) IsSystem() bool {
	return l.system
}

// IsOpaque returns true for lines that could not be parsed.
func (l *Line) IsOpaque() bool {
	return l.opaque
}

// Words returns all words in the line.
func (l *Line) Words() []*Word {
	words := make([]*Word, len(l.words))
	for i, wt := range l.words {
		words[i] = wt.word
	}
	return words
}

// Commands returns all G/M words in the line.
func (l *Line) Commands() []*Word {
	var cmds []*Word
	for _, wt := range l.words {
		if wt.word.IsCommand() {
			cmds = append(cmds, wt.word)
		}
	}
	return cmds
}

// Has returns true when the line carries a command normalizing to any of given strings (eg: "M5").
func (l *Line) Has(normalized ...string) bool {
	for _, wt := range l.words {
		if !wt.word.IsCommand() {
			continue
		}
		for _, n := range normalized {
			if wt.word.Is(n) {
				return true
			}
		}
	}
	return false
}

// Argument returns the number of the first argument word with given letter.
func (l *Line) Argument(letter rune) (float64, bool) {
	for _, wt := range l.words {
		if !wt.word.IsCommand() && wt.word.Letter() == letter {
			return wt.word.Number(), true
		}
	}
	return 0, false
}

// HasArgument returns true if any of the given argument letters is present.
func (l *Line) HasArgument(letters ...rune) bool {
	for _, letter := range letters {
		if _, ok := l.Argument(letter); ok {
			return true
		}
	}
	return false
}

// IsMachineCoordinate returns true for moves in machine coordinates (G53).
func (l *Line) IsMachineCoordinate() bool {
	return l.Has("G53")
}

// IsSpindleStart returns true for M3 / M4.
func (l *Line) IsSpindleStart() bool {
	return l.Has("M3", "M4")
}

// IsSpindleStop returns true for M5.
func (l *Line) IsSpindleStop() bool {
	return l.Has("M5")
}

// IsProgramEnd returns true for M2 / M30.
func (l *Line) IsProgramEnd() bool {
	return l.Has("M2", "M30")
}

// ToolChange returns the tool number for lines "M6 T<n>", "T<n> M6" or a standalone "T<n>".
func (l *Line) ToolChange() (int, bool) {
	var tool *float64
	var m6, others bool
	for _, wt := range l.words {
		switch {
		case wt.word.Letter() == 'T':
			n := wt.word.Number()
			tool = &n
		case wt.word.Letter() == 'N':
		case wt.word.Is("M6"):
			m6 = true
		default:
			others = true
		}
	}
	if tool == nil {
		return 0, false
	}
	if m6 || !others {
		return int(*tool), true
	}
	return 0, false
}

// ReplaceArguments returns the line text with the number of some argument words replaced.
// fn is called for every non command word and returns the new number text, and whether to
// replace it. Everything else in the line is preserved.
func (l *Line) ReplaceArguments(fn func(word *Word) (string, bool)) string {
	if len(l.words) == 0 {
		return l.text
	}
	replacements := map[int]string{}
	for _, wt := range l.words {
		if wt.word.IsCommand() {
			continue
		}
		if value, ok := fn(wt.word); ok {
			replacements[wt.numberIdx] = value
		}
	}
	if len(replacements) == 0 {
		return l.text
	}
	var b strings.Builder
	for i, token := range l.tokens {
		if value, ok := replacements[i]; ok {
			b.WriteString(value)
			continue
		}
		b.WriteString(token.Value)
	}
	return b.String()
}

// WithoutCommand returns the line text with all commands normalizing to given string removed.
// The returned bool is false when no word other than a line number would remain, meaning the
// line can be dropped altogether.
func (l *Line) WithoutCommand(normalized string) (string, bool) {
	remove := map[int]bool{}
	var remaining bool
	for _, wt := range l.words {
		if wt.word.Is(normalized) {
			for i := wt.letterIdx; i <= wt.numberIdx; i++ {
				remove[i] = true
			}
			// Take a separating space along with the word.
			if wt.numberIdx+1 < len(l.tokens) && l.tokens[wt.numberIdx+1].Type == TokenTypeSpace {
				remove[wt.numberIdx+1] = true
			} else if wt.letterIdx > 0 && l.tokens[wt.letterIdx-1].Type == TokenTypeSpace {
				remove[wt.letterIdx-1] = true
			}
			continue
		}
		if wt.word.Letter() != 'N' {
			remaining = true
		}
	}
	if len(remove) == 0 {
		return l.text, true
	}
	var b strings.Builder
	for i, token := range l.tokens {
		if !remove[i] {
			b.WriteString(token.Value)
		}
	}
	return b.String(), remaining
}
