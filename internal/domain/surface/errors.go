package surface

import "fmt"

// ParseError reports a malformed coordinate string.
type ParseError struct {
	Kind   string // "latitude" or "longitude"
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

func NewParseError(kind, input, reason string) *ParseError {
	return &ParseError{Kind: kind, Input: input, Reason: reason}
}
