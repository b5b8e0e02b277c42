package feed

import "fmt"

// NetworkError reports a fetch that did not succeed: a non-2xx status, or a
// transport or read failure (StatusCode 0).
type NetworkError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a body that is not a well-formed listings document.
type ParseError struct {
	Location string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Location, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
