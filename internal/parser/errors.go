package parser

import "fmt"

// MalformedFieldError reports a row that cannot be decoded. Line is 1-based
// and counts the header; Column is 1-based and zero for row-level problems.
type MalformedFieldError struct {
	Line   int
	Column int
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedFieldError) Error() string {
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Column > 0 {
		msg += fmt.Sprintf(": column %d (%s) %q", e.Column, e.Field, e.Value)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedFieldError) Unwrap() error { return e.Err }

func rowError(line int, reason string) *MalformedFieldError {
	return &MalformedFieldError{Line: line, Reason: reason}
}

func fieldError(line, col int, value, reason string, err error) *MalformedFieldError {
	return &MalformedFieldError{
		Line:   line,
		Column: col + 1,
		Field:  columns[col],
		Value:  value,
		Reason: reason,
		Err:    err,
	}
}
