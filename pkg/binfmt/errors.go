package binfmt

import "fmt"

// Errors
var (
	ErrMalformedVarint = &FormatError{"malformed 7-bit encoded integer"}
	ErrTruncatedString = &FormatError{"string length exceeds remaining buffer"}
	ErrShortBuffer     = &FormatError{"read past end of buffer"}
)

// FormatError represents a wire-format decode error.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// UnsupportedPrimitiveError reports a primitive type code outside the known set.
type UnsupportedPrimitiveError struct {
	Code byte
}

func (e *UnsupportedPrimitiveError) Error() string {
	return fmt.Sprintf("unsupported primitive type: %d", e.Code)
}
