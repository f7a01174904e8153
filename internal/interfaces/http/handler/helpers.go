package handler

import (
	"errors"

	"github.com/nexkart/backend/internal/infrastructure/catalogsync"
	"github.com/nexkart/backend/internal/interfaces/http/dto"
)

func isFetchError(err error) bool {
	var fetchErr *catalogsync.FetchError
	return errors.As(err, &fetchErr)
}

func isParseError(err error) bool {
	var parseErr *catalogsync.ParseError
	return errors.As(err, &parseErr)
}

func isCoercionError(err error) bool {
	var coercionErr *catalogsync.CoercionError
	return errors.As(err, &coercionErr)
}

func syncErrorBody(code string, err error) dto.Response {
	return dto.NewErrorResponse(code, err.Error(), "")
}
