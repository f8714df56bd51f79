package parser

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError aggregates every structural problem found in a source text.
type SyntaxError struct {
	Messages   []string
	Incomplete bool // input ended inside an unclosed construct
}

func (e *SyntaxError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return ""
	}
	if len(e.Messages) == 1 {
		return "syntax error: " + e.Messages[0]
	}
	return fmt.Sprintf("syntax errors:\n  %s", strings.Join(e.Messages, "\n  "))
}

// IllegalTokenError reports a character that starts no token.
type IllegalTokenError struct {
	Char rune
	Line int
}

func (e *IllegalTokenError) Error() string {
	return fmt.Sprintf("illegal token %q at line %d", e.Char, e.Line)
}

func newIncompleteError(format string, args ...interface{}) error {
	return &SyntaxError{
		Messages:   []string{fmt.Sprintf(format, args...)},
		Incomplete: true,
	}
}

// IsIncomplete reports whether the supplied error represents input that
// ended before a construct was closed.
func IsIncomplete(err error) bool {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return serr.Incomplete
	}
	return false
}
