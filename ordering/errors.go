package ordering

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminated is the kind of errors raised for a string or block
	// comment still open at the end of the buffer.
	ErrUnterminated = errors.New("unterminated string or comment")

	// ErrUnbalanced is the kind of errors raised when braces, parentheses or
	// brackets do not match.
	ErrUnbalanced = errors.New("unbalanced braces")

	// ErrNoClassesFound is returned by ReorderSource when the source has no class.
	ErrNoClassesFound = errors.New("no classes found")
)

// ParseError reports a class that could not be parsed. The class is left untouched.
type ParseError struct {
	Kind  error
	Line  int // 1-based
	Class string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("line %d: class %s: %v: %s", e.Line, e.Class, e.Kind, e.Msg)
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
