package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	type body struct {
		Size string `validate:"required"`
	}
	validationErr := validator.New().Struct(body{})

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error is ok", err: nil, expected: http.StatusOK},
		{
			name:     "wrapped invalid argument is bad request",
			err:      fmt.Errorf("failed listing cart with error=%w", ErrInvalidArgument),
			expected: http.StatusBadRequest,
		},
		{name: "validation errors are bad request", err: validationErr, expected: http.StatusBadRequest},
		{
			name:     "wrapped not found is not found",
			err:      fmt.Errorf("productId=1: %w", ErrNotFound),
			expected: http.StatusNotFound,
		},
		{name: "invalid token is unauthorized", err: ErrTokenInvalid, expected: http.StatusUnauthorized},
		{name: "missing auth is unauthorized", err: ErrEmptyAuth, expected: http.StatusUnauthorized},
		{name: "forbidden is forbidden", err: ErrForbidden, expected: http.StatusForbidden},
		{
			name:     "store failure is internal server error",
			err:      errors.New("connection refused"),
			expected: http.StatusInternalServerError,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, StatusCode(test.err))
		})
	}
}
