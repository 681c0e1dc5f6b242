package ordering

import (
	"fmt"
	"strings"
)

// Locator enumerates the classes of a source buffer, in source order.
type Locator struct {
	src  string
	t    *tracker
	done bool
}

// NewLocator returns a Locator positioned at the start of src.
func NewLocator(src string) *Locator {
	return &Locator{src: src, t: newTracker(src)}
}

// Next returns the next class, or nil when the buffer is exhausted. A
// *ParseError is returned for a class whose body cannot be delimited; calling
// Next again continues with the rest of the buffer when possible.
func (l *Locator) Next() (*Class, error) {
	t := l.t
	for !l.done && !t.atEnd() {
		if t.mode == modeNormal && len(t.interp) == 0 && t.atWord("class") {
			keyword := t.pos
			t.pos += len("class")
			class, err := l.readClass(keyword)
			if class != nil || err != nil {
				return class, err
			}
			continue
		}
		t.step()
	}
	if !l.done && t.open() {
		l.done = true
		return nil, &ParseError{
			Kind: ErrUnterminated,
			Line: l.lineOf(len(l.src)),
			Msg:  "string or comment reaches the end of the file",
		}
	}
	l.done = true
	return nil, nil
}

// readClass reads the declaration following a "class" keyword. It returns
// nil, nil when the keyword does not introduce a class body.
func (l *Locator) readClass(keyword int) (*Class, error) {
	t := l.t
	l.skipSpace()
	name := l.readIdent()
	if name == "" {
		return nil, nil
	}

	// skip type parameters, extends, with and implements clauses
	base := t.braces
	for !t.atEnd() {
		c := t.src[t.pos]
		if t.mode == modeNormal && len(t.interp) == 0 {
			if c == ';' && t.braces == base {
				// class alias, "class A = B with C;"
				return nil, nil
			}
			if c == '{' && t.braces == base {
				break
			}
		}
		t.step()
	}
	if t.atEnd() {
		return nil, nil
	}

	open := t.pos
	t.step()
	for !t.atEnd() {
		c := t.src[t.pos]
		if t.mode == modeNormal && len(t.interp) == 0 && c == '}' && t.braces == base+1 {
			end := t.pos
			t.step()
			return &Class{
				Name:     name,
				Start:    open + 1,
				End:      end,
				OpenLine: strings.Count(l.src[:open], "\n"),
			}, nil
		}
		t.step()
	}

	if t.open() {
		l.done = true
		return nil, &ParseError{
			Kind:  ErrUnterminated,
			Line:  l.lineOf(keyword),
			Class: name,
			Msg:   "string or comment reaches the end of the file",
		}
	}

	// resume right after the opening brace so that classes swallowed by
	// the unbalanced body are still found
	l.t = newTracker(l.src)
	l.t.pos = open + 1
	return nil, &ParseError{
		Kind:  ErrUnbalanced,
		Line:  l.lineOf(keyword),
		Class: name,
		Msg:   fmt.Sprintf("no closing brace for the body opened at line %d", l.lineOf(open)),
	}
}

func (l *Locator) skipSpace() {
	t := l.t
	for !t.atEnd() {
		c := t.src[t.pos]
		if t.mode == modeNormal && c != ' ' && c != '\t' && c != '\r' && c != '\n' && !(c == '/' && (t.peek(1) == '/' || t.peek(1) == '*')) {
			return
		}
		t.step()
	}
}

func (l *Locator) readIdent() string {
	t := l.t
	start := t.pos
	for !t.atEnd() && isIdentChar(t.src[t.pos]) {
		t.pos++
	}
	return t.src[start:t.pos]
}

// lineOf returns the 1-based line of offset.
func (l *Locator) lineOf(offset int) int {
	return strings.Count(l.src[:offset], "\n") + 1
}

// FindClasses returns every class of src. Classes that fail to parse are
// reported in errs and left out.
func FindClasses(src string) (classes []*Class, errs []*ParseError) {
	loc := NewLocator(src)
	for {
		class, err := loc.Next()
		if err != nil {
			if perr, ok := err.(*ParseError); ok {
				errs = append(errs, perr)
			}
			continue
		}
		if class == nil {
			return classes, errs
		}
		classes = append(classes, class)
	}
}
