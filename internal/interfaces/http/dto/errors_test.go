package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"PRODUCT_NOT_FOUND", http.StatusNotFound},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"USERNAME_TAKEN", http.StatusConflict},
		{"PRINTING_UNAVAILABLE", http.StatusServiceUnavailable},
		{"INVALID_DISCOUNT", http.StatusBadRequest},
		{"INVALID_SOMETHING_NEW", http.StatusBadRequest},
		{"SOME_UNKNOWN_RULE", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}
