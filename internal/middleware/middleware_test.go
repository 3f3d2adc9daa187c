package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shoppingcart/internal/auth"
	"github.com/Alturino/shoppingcart/internal/constants"
	inHttp "github.com/Alturino/shoppingcart/internal/http"
	"github.com/Alturino/shoppingcart/internal/log"
)

func TestLogging(t *testing.T) {
	t.Run("given request id header should propagate it", func(t *testing.T) {
		var got string
		handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = log.RequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"size":"M"}`))
		req.Header.Set(inHttp.KEY_HEADER_REQUEST_ID, "req-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "req-1", got)
	})

	t.Run("given no request id should generate one and keep body readable", func(t *testing.T) {
		var (
			got  string
			body map[string]string
		)
		handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = log.RequestIDFromContext(r.Context())
			_ = json.NewDecoder(r.Body).Decode(&body)
		}))

		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"size":"M"}`))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEmpty(t, got)
		assert.Equal(t, "M", body["size"])
	})
}

func TestRecoverPanic(t *testing.T) {
	handler := RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuth(t *testing.T) {
	secret := "secret"
	var subject string
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		subject, err = auth.SubjectFromContext(r.Context())
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    constants.APP_USER_SERVICE,
		Subject:   "0901234567",
		Audience:  jwt.ClaimStrings{constants.AUDIENCE_USER},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		expected      int
	}{
		{name: "given no authorization should be unauthorized", expected: http.StatusUnauthorized},
		{name: "given malformed authorization should be unauthorized", authorization: "Token abc", expected: http.StatusUnauthorized},
		{name: "given invalid token should be unauthorized", authorization: "Bearer abc", expected: http.StatusUnauthorized},
		{name: "given valid token should pass", authorization: "Bearer " + signed, expected: http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/cart/migrate", nil)
			if test.authorization != "" {
				req.Header.Set(inHttp.KEY_HEADER_AUTHORIZATION, test.authorization)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, test.expected, rec.Code)
		})
	}
	assert.Equal(t, "0901234567", subject)
}
