package catalogsync

import "fmt"

// FetchError reports a failure to download the remote sheet
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error, if any
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports an undecodable sheet document
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse sheet: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("parse sheet: %s", e.Message)
}

// Unwrap returns the underlying parser error, if any
func (e *ParseError) Unwrap() error {
	return e.Err
}

// CoercionError reports a cell value that could not be converted to
// its target type. It aborts the whole run.
type CoercionError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

// Error implements the error interface
func (e *CoercionError) Error() string {
	return fmt.Sprintf("row %d, column '%s': cannot coerce value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

// Unwrap returns the underlying conversion error
func (e *CoercionError) Unwrap() error {
	return e.Err
}
