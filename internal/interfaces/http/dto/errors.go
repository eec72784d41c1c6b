package dto

import "net/http"

// Error codes emitted by the HTTP layer itself. Domain errors carry
// their own codes; these cover requests that never reach a service.
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when the caller's identity is missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL"
)

// ErrorCodeHTTPStatus maps domain and HTTP-layer error codes to status
// codes. Domain error codes are used verbatim; the mapping decides only
// how they surface over HTTP.
var ErrorCodeHTTPStatus = map[string]int{
	// HTTP-layer errors
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Resource errors
	"NOT_FOUND":      http.StatusNotFound,
	"ITEM_NOT_FOUND": http.StatusNotFound,

	// Write conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"INSUFFICIENT_STOCK":     http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE":    http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":     http.StatusUnprocessableEntity,
	"CANNOT_CANCEL":          http.StatusUnprocessableEntity,
	"EMPTY_ORDER":            http.StatusUnprocessableEntity,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_PAYMENT_STATUS": http.StatusUnprocessableEntity,
	"INVALID_REFUND":         http.StatusUnprocessableEntity,

	// Input validation -> 400 Bad Request
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_SIZE":          http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_PRICING":       http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":  http.StatusBadRequest,
	"INVALID_ORDER_NUMBER":  http.StatusBadRequest,
	"INVALID_USER":          http.StatusBadRequest,
	"INVALID_STOCK":         http.StatusBadRequest,
	"INVALID_CUSTOMIZATION": http.StatusBadRequest,
	"INVALID_REASON":        http.StatusBadRequest,
	"MISSING_ADDRESS":       http.StatusBadRequest,
	"INVALID_ADDRESS":       http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped codes fall back to 400: domain errors describe a rejected
// request, never a server fault.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
