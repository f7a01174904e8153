package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the input has no content
	ErrEmptyInput = errors.New("tabular input is empty")

	// ErrInvalidEncoding is returned when the input is not valid UTF-8
	ErrInvalidEncoding = errors.New("tabular input is not valid UTF-8")

	// ErrMissingHeader is returned when the input has no header row
	ErrMissingHeader = errors.New("tabular input missing header row")
)

// RowError reports a problem with a specific data row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, message, value string) RowError {
	return RowError{Row: row, Column: column, Message: message, Value: value}
}
