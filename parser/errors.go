package parser

import (
	"fmt"
	"strings"

	"github.com/clirouter/clirouter/lexer"
)

// ErrorKind distinguishes the ways a pattern can fail to parse.
type ErrorKind int

const (
	InvalidToken ErrorKind = iota
	UnexpectedToken
	DuplicateOption
	CatchAllNotLast
	EmptyPattern
	UnterminatedBrace
	MultipleEndOfOptions
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "InvalidToken"
	case UnexpectedToken:
		return "UnexpectedToken"
	case DuplicateOption:
		return "DuplicateOption"
	case CatchAllNotLast:
		return "CatchAllNotLast"
	case EmptyPattern:
		return "EmptyPattern"
	case UnterminatedBrace:
		return "UnterminatedBrace"
	case MultipleEndOfOptions:
		return "MultipleEndOfOptions"
	default:
		return "Unknown"
	}
}

// ParseError reports one pattern-registration failure, pinpointing the
// offending token position.
type ParseError struct {
	Kind     ErrorKind
	Pattern  string
	Position lexer.Position
	Message  string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q: %s", e.Kind, e.Position.Offset, e.Pattern, e.Message)
}

// ParseErrorList aggregates every error found while parsing one pattern.
type ParseErrorList []ParseError

// Error implements the error interface for the aggregate.
func (el ParseErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}

// HasErrors reports whether the list is non-empty.
func (el ParseErrorList) HasErrors() bool {
	return len(el) > 0
}

// Count returns the number of errors collected.
func (el ParseErrorList) Count() int {
	return len(el)
}

// Format renders every error as a human-readable multi-line string.
func (el ParseErrorList) Format() string {
	if len(el) == 0 {
		return "no errors"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "found %d pattern error(s):\n", len(el))
	for i, e := range el {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, e.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}
