package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/service"
	"github.com/arbormail/arbormail/internal/utils"
)

// auth enforces session-token authentication on the management routes.
//
// The bearer token from the Authorization header is verified via
// [service.AuthService.ParseToken]; on success the administrator login it
// carries is stored in the request context under [utils.LoginCtxKey] for
// downstream audit logging. Every rejection answers 401 with the uniform
// API error body. Verification failures other than an expired or invalid
// token are logged with detail but answered with the bare status text, so
// signing internals never leak to the client.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		header := r.Header.Get("Authorization")
		if header == "" {
			log.Err(ErrEmptyAuthorizationHeader).Msg("management request rejected")
			writeAPIError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := bearerToken(header)
		if err != nil {
			log.Err(err).Msg("management request rejected")
			writeAPIError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				log.Err(err).Msg("session token rejected")
				writeAPIError(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
				return
			}

			log.Err(err).Msg("session token verification failed")
			writeAPIError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Downstream handlers read the login for audit log lines without
		// re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.LoginCtxKey, token.Login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme comparison is case-insensitive per RFC
// 9110; anything other than the bearer scheme is rejected outright instead
// of being handed to the JWT parser.
func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
