package dto

import (
	"net/http"
	"strings"
)

// General error codes raised by the HTTP layer itself
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeUnauthorized is used when authentication is required but missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// INVALID_* codes not listed here fall back to 400, everything else
// to 422: unmapped codes are business rule violations raised by the
// domain layer.
var errorCodeHTTPStatus = map[string]int{
	// Input errors -> 400 Bad Request
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	"EMPTY_SALE":      http.StatusBadRequest,
	"WEAK_PASSWORD":   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	"PRODUCT_NOT_FOUND":  http.StatusNotFound,
	"CUSTOMER_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"USERNAME_TAKEN":          http.StatusConflict,
	"EMAIL_TAKEN":             http.StatusConflict,
	"ALREADY_EXISTS":          http.StatusConflict,
	"CONCURRENT_MODIFICATION": http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	"INSUFFICIENT_STOCK":     http.StatusUnprocessableEntity,
	"PRICING_NOT_CONFIGURED": http.StatusUnprocessableEntity,
	"TIER_ORDER_VIOLATION":   http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":       http.StatusUnprocessableEntity,
	"CUSTOMER_INACTIVE":      http.StatusUnprocessableEntity,
	"USER_INACTIVE":          http.StatusUnprocessableEntity,
	"DUPLICATE_PRODUCT":      http.StatusUnprocessableEntity,

	// Infrastructure errors
	"PRINTING_UNAVAILABLE":  http.StatusServiceUnavailable,
	"RECEIPT_RENDER_FAILED": http.StatusBadGateway,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
