package loader

import (
	"fmt"
	"strings"
)

// Position is a location in a price database.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// ParseError is a malformed line in a price database.
type ParseError struct {
	Pos Position
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) GetPosition() Position {
	return e.Pos
}

// LoadErrors collects every line error of a load.
type LoadErrors []error

func (e LoadErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors:\n%s", len(e), strings.Join(msgs, "\n"))
}

func (e LoadErrors) Unwrap() []error {
	return e
}
