package midi

import (
	"fmt"
)

// ParseError reports malformed or truncated input. Truncated files have Err
// set to io.ErrUnexpectedEOF.
type ParseError struct {
	Message string

	Offset int

	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (offset=%d)", e.Message, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
