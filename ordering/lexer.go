package ordering

import "strings"

// mode is the lexical context of the tracker. Exactly one is active at a time.
type mode int

const (
	modeNormal mode = iota
	modeLineComment
	modeBlockComment
	modeSingleQuote
	modeDoubleQuote
	modeTripleQuote
)

// charClass tells how the bytes consumed by one step must be read.
type charClass int

const (
	classCode charClass = iota
	classComment
	classString
)

// stringFrame is a string suspended by a "${" interpolation, with the
// nesting it was opened at.
type stringFrame struct {
	mode     mode
	quote    byte
	raw      bool
	braces   int
	parens   int
	brackets int
}

// tracker is the lexical state machine shared by the class locator and the
// feature classifier. step is the single transition function.
type tracker struct {
	src string
	pos int

	mode     mode
	quote    byte
	raw      bool
	comments int // block comment nesting level

	braces   int
	parens   int
	brackets int

	interp []stringFrame

	// negative is set once any depth counter went below zero.
	negative bool
}

func newTracker(src string) *tracker {
	return &tracker{src: src}
}

func (t *tracker) atEnd() bool {
	return t.pos >= len(t.src)
}

func (t *tracker) peek(offset int) byte {
	i := t.pos + offset
	if i >= len(t.src) {
		return 0
	}
	return t.src[i]
}

// depth is the combined brace, parenthesis and bracket nesting.
func (t *tracker) depth() int {
	return t.braces + t.parens + t.brackets
}

// clean reports whether the tracker is at code level outside any nesting.
func (t *tracker) clean() bool {
	return t.mode == modeNormal && len(t.interp) == 0 && t.depth() == 0
}

// open reports whether a string or block comment is still open. Line
// comments and single-line strings close at the end of their line.
func (t *tracker) open() bool {
	switch t.mode {
	case modeBlockComment, modeTripleQuote:
		return true
	}
	return len(t.interp) > 0
}

// step consumes the next position and returns how many bytes it took and
// how they must be read. A newline is always consumed alone.
func (t *tracker) step() (int, charClass) {
	c := t.src[t.pos]
	n, class := t.transition(c)
	t.pos += n
	return n, class
}

func (t *tracker) transition(c byte) (int, charClass) {
	switch t.mode {
	case modeLineComment:
		if c == '\n' {
			t.mode = modeNormal
			return 1, classCode
		}
		return 1, classComment

	case modeBlockComment:
		switch {
		case c == '/' && t.peek(1) == '*':
			t.comments++
			return 2, classComment
		case c == '*' && t.peek(1) == '/':
			t.comments--
			if t.comments == 0 {
				t.mode = modeNormal
			}
			return 2, classComment
		}
		return 1, classComment

	case modeSingleQuote, modeDoubleQuote:
		switch {
		case c == '\n':
			// unterminated single line string, resume as code
			t.closeString()
			t.dropLineStrings()
			return 1, classCode
		case c == '\\' && !t.raw:
			return t.escape(), classString
		case c == t.quote:
			t.closeString()
			return 1, classCode
		case c == '$' && !t.raw && t.peek(1) == '{':
			t.openInterpolation()
			return 2, classString
		}
		return 1, classString

	case modeTripleQuote:
		switch {
		case c == '\\' && !t.raw:
			return t.escape(), classString
		case c == t.quote && t.peek(1) == c && t.peek(2) == c:
			t.closeString()
			return 3, classCode
		case c == '$' && !t.raw && t.peek(1) == '{':
			t.openInterpolation()
			return 2, classString
		}
		return 1, classString
	}

	switch c {
	case '/':
		switch t.peek(1) {
		case '/':
			t.mode = modeLineComment
			return 2, classComment
		case '*':
			t.mode = modeBlockComment
			t.comments = 1
			return 2, classComment
		}
	case '\'', '"':
		t.raw = t.rawPrefix()
		t.quote = c
		if t.peek(1) == c && t.peek(2) == c {
			t.mode = modeTripleQuote
			return 3, classCode
		}
		if c == '\'' {
			t.mode = modeSingleQuote
		} else {
			t.mode = modeDoubleQuote
		}
		return 1, classCode
	case '{':
		t.braces++
	case '}':
		if n := len(t.interp); n > 0 && t.braces == t.interp[n-1].braces {
			f := t.interp[n-1]
			t.interp = t.interp[:n-1]
			t.mode, t.quote, t.raw = f.mode, f.quote, f.raw
			return 1, classString
		}
		t.braces--
	case '(':
		t.parens++
	case ')':
		t.parens--
	case '[':
		t.brackets++
	case ']':
		t.brackets--
	}
	if t.braces < 0 || t.parens < 0 || t.brackets < 0 {
		t.negative = true
	}
	return 1, classCode
}

// escape consumes a backslash and the escaped byte, never a newline.
func (t *tracker) escape() int {
	if next := t.peek(1); next == 0 || next == '\n' {
		return 1
	}
	return 2
}

func (t *tracker) closeString() {
	t.mode = modeNormal
	t.quote = 0
	t.raw = false
}

func (t *tracker) openInterpolation() {
	t.interp = append(t.interp, stringFrame{
		mode:     t.mode,
		quote:    t.quote,
		raw:      t.raw,
		braces:   t.braces,
		parens:   t.parens,
		brackets: t.brackets,
	})
	t.closeString()
}

// dropLineStrings forgets the single line strings enclosing an unterminated
// one. The code of their interpolations may span lines, the strings may not.
func (t *tracker) dropLineStrings() {
	for n := len(t.interp); n > 0; n = len(t.interp) {
		f := t.interp[n-1]
		if f.mode == modeTripleQuote {
			return
		}
		t.braces, t.parens, t.brackets = f.braces, f.parens, f.brackets
		t.interp = t.interp[:n-1]
	}
}

// rawPrefix reports whether the quote at pos is preceded by a raw string "r" prefix.
func (t *tracker) rawPrefix() bool {
	if t.pos == 0 || t.src[t.pos-1] != 'r' {
		return false
	}
	return t.pos == 1 || !isIdentChar(t.src[t.pos-2])
}

// atWord reports whether word starts at pos as a whole identifier.
func (t *tracker) atWord(word string) bool {
	if !strings.HasPrefix(t.src[t.pos:], word) {
		return false
	}
	if t.pos > 0 && (isIdentChar(t.src[t.pos-1]) || t.src[t.pos-1] == '.') {
		return false
	}
	end := t.pos + len(word)
	return end >= len(t.src) || !isIdentChar(t.src[end])
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '$'
}

// lineInfo is the lexical summary of one physical line.
type lineInfo struct {
	text string // raw text without "\n"
	code string // text with comments and string contents blanked

	startMode  mode
	startDepth int
	startOpen  bool // a string or block comment spans the line start

	endDepth int
	endClean bool // Normal mode, no nesting, nothing left open
	endOpen  bool

	hasCode bool
}

func (l *lineInfo) blank() bool {
	return strings.TrimSpace(l.text) == ""
}

// lastCode returns the last non blank byte of the code, or 0.
func (l *lineInfo) lastCode() byte {
	code := strings.TrimRight(l.code, " \t\r")
	if code == "" {
		return 0
	}
	return code[len(code)-1]
}

// scanLines runs a tracker over src and summarizes every line. negativeLine
// is the index of the first line where a depth counter went negative, or -1.
func scanLines(src string) (lines []lineInfo, t *tracker, negativeLine int) {
	t = newTracker(src)
	negativeLine = -1

	var code strings.Builder
	cur := lineInfo{}
	lineStart := 0
	begin := func() {
		cur = lineInfo{
			startMode:  t.mode,
			startDepth: t.depth(),
			startOpen:  t.open(),
		}
		code.Reset()
	}
	finish := func(end int) {
		cur.text = src[lineStart:end]
		cur.code = code.String()
		cur.endDepth = t.depth()
		cur.endClean = t.clean()
		cur.endOpen = t.open()
		lines = append(lines, cur)
	}

	begin()
	for !t.atEnd() {
		if t.src[t.pos] == '\n' {
			// the newline ends line comments and single line strings,
			// so the line summary is taken after the transition
			t.step()
			finish(t.pos - 1)
			if t.negative && negativeLine < 0 {
				negativeLine = len(lines) - 1
			}
			lineStart = t.pos
			begin()
			continue
		}
		from := t.pos
		_, class := t.step()
		for _, b := range []byte(src[from:t.pos]) {
			switch {
			case class == classCode:
				code.WriteByte(b)
				if b != ' ' && b != '\t' && b != '\r' {
					cur.hasCode = true
				}
			case b == '\t':
				code.WriteByte('\t')
			default:
				code.WriteByte(' ')
			}
		}
	}
	finish(len(src))
	if t.negative && negativeLine < 0 {
		negativeLine = len(lines) - 1
	}
	return lines, t, negativeLine
}
