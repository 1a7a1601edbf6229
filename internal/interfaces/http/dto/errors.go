package dto

import (
	"net/http"

	"github.com/openpos/backend/internal/domain/shared"
)

// Interface-level error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed requests and binding failures
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:          http.StatusBadRequest,
	shared.CodeEmptyDocument:       http.StatusUnprocessableEntity,
	shared.CodeInsufficientStock:   http.StatusUnprocessableEntity,
	shared.CodeInvalidState:        http.StatusUnprocessableEntity,
	shared.CodeDuplicateIdentifier: http.StatusConflict,
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodePersistence:         http.StatusInternalServerError,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
