package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("profile not found")
	ErrUnsupportedFormat = errors.New("unsupported profile format")
	ErrValidationFailed  = errors.New("validation failed")
	ErrWatcherClosed     = errors.New("watcher closed")
)

// ParseError is a syntax error in a profile. Line and Column are zero
// when the decoder does not report them.
type ParseError struct {
	Path         string
	Line, Column int
	Err          error
}

func newParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return "parse error in " + where + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Problem is one schema violation. Location is a JSON pointer such as
// "/bindings/0/fingers".
type Problem struct {
	Location string
	Message  string
}

func (p Problem) String() string {
	if p.Location == "" {
		return "/: " + p.Message
	}
	return p.Location + ": " + p.Message
}

// ValidationError lists every schema violation of a profile. It matches
// ErrValidationFailed.
type ValidationError struct {
	Path     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid profile ")
	b.WriteString(e.Path)
	for i, p := range e.Problems {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
