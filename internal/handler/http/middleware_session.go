package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/service"
	"github.com/michaelhessen/chronos/internal/utils"
)

// withSession decodes the session token, if any, and stores the session in
// the request context. It never rejects a request; the gate decides what an
// anonymous caller may reach.
//
// The cookie wins over the Authorization header. A cookie that fails to
// decode is cleared so the browser stops sending it.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, fromCookie := h.tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		session, err := h.services.SessionIssuer.Decode(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) {
				log.Debug().Err(err).Msg("session expired")
			} else {
				log.Warn().Err(err).Msg("session rejected")
			}
			if fromCookie {
				h.clearSessionCookie(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithSession(ctx, session)))
	})
}

// tokenFromRequest returns the session token and whether it came from the
// session cookie.
func (h *Handler) tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(h.session.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	token, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("ignoring Authorization header")
		return "", false
	}

	return token, false
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	return strings.TrimSpace(token), nil
}
