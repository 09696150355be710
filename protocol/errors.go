package protocol

import "fmt"

// MalformedLineError indicates a wire line could not be parsed where a
// specific format was required: a decimal return code, a checksum line, or
// an encoded data block line.
type MalformedLineError struct {
	// Line is the offending line, without its terminator
	Line string

	// Reason describes what was expected
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %q: %s", e.Line, e.Reason)
}

// IsMalformedLine returns true if the error is a *MalformedLineError.
func IsMalformedLine(err error) bool {
	_, ok := err.(*MalformedLineError)
	return ok
}
