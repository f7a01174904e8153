package dto

import "net/http"

// Error codes used in API responses. Domain error codes pass through
// unchanged; these cover the transport-level cases.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInternal:     http.StatusInternalServerError,

	// domain error codes
	"ALREADY_EXISTS":      http.StatusConflict,
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INVALID_COUPON":      http.StatusUnprocessableEntity,
	"INVALID_ORDER_STATE": http.StatusUnprocessableEntity,
	"NOT_IN_CART":         http.StatusNotFound,
	"NOT_IN_WISHLIST":     http.StatusNotFound,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"EMPTY_ORDER":         http.StatusUnprocessableEntity,
	"INVALID_NAME":        http.StatusBadRequest,
	"INVALID_PRICE":       http.StatusBadRequest,
	"INVALID_STOCK":       http.StatusBadRequest,
	"INVALID_RATING":      http.StatusBadRequest,
	"INVALID_DISCOUNT":    http.StatusBadRequest,
	"INVALID_EMAIL":       http.StatusBadRequest,
	"INVALID_ROLE":        http.StatusBadRequest,
	"WEAK_PASSWORD":       http.StatusBadRequest,
	"INVALID_ORDER_STATUS": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// falling back to 500 for codes without a mapping
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
