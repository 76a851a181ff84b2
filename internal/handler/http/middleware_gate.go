package http

import (
	"net/http"
	"net/url"

	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/utils"
)

const callbackURLParam = "callbackUrl"

// withGate asks the gate about every request. Refused callers are redirected
// to the login page with the original location as callbackUrl.
func (h *Handler) withGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated := utils.GetSessionFromContext(r.Context())

		decision := h.services.Gate.Authorize(r.URL.Path, authenticated)
		h.metrics.RecordGateDecision(decision.Allow)

		if decision.Allow {
			next.ServeHTTP(w, r)
			return
		}

		logger.FromRequest(r).Debug().
			Str("path", r.URL.Path).
			Str("redirect", decision.RedirectTo).
			Msg("unauthenticated request redirected")

		http.Redirect(w, r, withCallbackURL(decision.RedirectTo, r.URL.RequestURI()), http.StatusTemporaryRedirect)
	})
}

func withCallbackURL(target, callback string) string {
	return target + "?" + url.Values{callbackURLParam: {callback}}.Encode()
}
