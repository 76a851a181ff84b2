package http

import (
	"encoding/json"
	"net/http"

	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/service"
	"github.com/michaelhessen/chronos/internal/utils"
	"github.com/michaelhessen/chronos/models"
)

const msgAccountCreated = "account created successfully"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	account, err := h.services.SignupService.Signup(ctx, req)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Msg("unexpected error occurred during signup")
		}
		utils.WriteError(w, signupErrorMessage(err), status)
		return
	}

	utils.WriteJSON(w, models.SignupResponse{Message: msgAccountCreated, User: account}, http.StatusOK)
}

// credentialsCallback verifies email and password and starts a session.
// Every failure, internal faults included, is the same 401.
func (h *Handler) credentialsCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	identity, err := h.services.Authenticator.Authenticate(ctx, creds)
	if err != nil {
		utils.WriteError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	session, err := h.services.SessionIssuer.Issue(ctx, identity)
	if err != nil {
		log.Err(err).Msg("issuing session failed")
		utils.WriteError(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, session)
	utils.WriteJSON(w, models.LoginResponse{User: identity}, http.StatusOK)
}

// getSession reports the current session, or {} for anonymous callers.
// A session older than UpdateAge is re-issued with a fresh expiry.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.SessionResponse{}, http.StatusOK)
		return
	}

	if h.session.UpdateAge > 0 && session.Age(h.now()) >= h.session.UpdateAge {
		renewed, err := h.services.SessionIssuer.Renew(ctx, session.Token)
		if err != nil {
			log.Warn().Err(err).Msg("session renewal failed")
		} else {
			session = renewed
			h.setSessionCookie(w, session)
		}
	}

	utils.WriteJSON(w, models.SessionResponse{User: &session.Identity, Expires: &session.ExpiresAt}, http.StatusOK)
}

// signout drops the session cookie. The token itself stays valid until it
// expires.
func (h *Handler) signout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.SignoutResponse{URL: h.session.LoginPath}, http.StatusOK)
}
