package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Input and configuration errors -> 400 Bad Request
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_NAME":        http.StatusBadRequest,
	"INVALID_PRODUCT":     http.StatusBadRequest,
	"INVALID_CRON":        http.StatusBadRequest,
	"INVALID_TIMEZONE":    http.StatusBadRequest,
	"INVALID_WEBHOOK_URL": http.StatusBadRequest,
	"INVALID_PROVIDER":    http.StatusBadRequest,
	"INVALID_AUTH":        http.StatusBadRequest,
	"INVALID_REF":         http.StatusBadRequest,
	"INVALID_CREDENTIALS": http.StatusBadRequest,

	// Resource errors
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,

	// State errors
	"SYNC_IN_PROGRESS":    http.StatusConflict,
	"SYNC_DISABLED":       http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"TENANT_SUSPENDED":    http.StatusUnprocessableEntity,
	"CREDENTIALS_NOT_SET": http.StatusUnprocessableEntity,

	"UNAUTHORIZED": http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
