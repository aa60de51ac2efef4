package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"product-catalog/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", apperror.InvalidCredentials(), http.StatusUnauthorized},
		{"unauthenticated", apperror.Unauthenticated(), http.StatusUnauthorized},
		{"invalid refresh token", apperror.InvalidRenewalToken(nil), http.StatusUnauthorized},
		{"access denied", apperror.AccessDenied(""), http.StatusForbidden},
		{"not found", apperror.NotFound("Product", "x"), http.StatusNotFound},
		{"domain state", apperror.DomainState("too many"), http.StatusBadRequest},
		{"validation", apperror.Validation(map[string]string{"name": "required"}), http.StatusBadRequest},
		{"rate limited", apperror.RateLimited(), http.StatusTooManyRequests},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperror.HTTPStatus(tc.err))
		})
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update product: %w", apperror.AccessDenied("not yours"))

	assert.True(t, errors.Is(err, apperror.AccessDenied("")))
	assert.False(t, errors.Is(err, apperror.NotFound("Product", "")))
}

func TestFromHidesUnknownErrors(t *testing.T) {
	appErr := apperror.From(errors.New("pq: connection refused"))

	assert.Equal(t, apperror.CodeUnexpected, appErr.Code)
	assert.Equal(t, "Internal server error", appErr.Message)
}
