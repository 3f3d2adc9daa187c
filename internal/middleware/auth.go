package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/shoppingcart/internal/auth"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
	inHttp "github.com/Alturino/shoppingcart/internal/http"
	"github.com/Alturino/shoppingcart/internal/log"
	"github.com/Alturino/shoppingcart/internal/otel"
)

// Auth verifies the bearer token and attaches it to the request context.
func Auth(secretKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, span := otel.Tracer.Start(r.Context(), "middleware Auth")
			defer span.End()

			logger := zerolog.Ctx(c).With().Str(log.KeyTag, "middleware Auth").Logger()
			c = logger.WithContext(c)

			authorization := r.Header.Get(inHttp.KEY_HEADER_AUTHORIZATION)
			scheme, token, found := strings.Cut(authorization, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				err := inErrors.ErrEmptyAuth
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, http.StatusUnauthorized, err)
				return
			}

			jwtToken, err := auth.VerifyToken(c, token, secretKey)
			if err != nil {
				err = fmt.Errorf("failed verifying token with error=%w", err)
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, http.StatusUnauthorized, inErrors.ErrTokenInvalid)
				return
			}

			c = auth.AttachJwtToken(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
