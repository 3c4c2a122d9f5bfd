package protocol

import (
	"errors"
	"fmt"
)

// ErrEmptyLine is returned for blank lines; callers skip them and read again.
var ErrEmptyLine = errors.New("empty line")

var errMalformedHand = errors.New("malformed hand payload")

// DecodeError reports a recognised message whose fields could not be parsed.
type DecodeError struct {
	Kind   Kind
	Line   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("decode %s: %s (line=%q)", e.Kind, e.Reason, e.Line)
}
