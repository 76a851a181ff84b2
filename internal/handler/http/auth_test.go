package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/service"
	"github.com/michaelhessen/chronos/internal/store"
	"github.com/michaelhessen/chronos/models"
)

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// ─────────────────────────────────────────────
// signup
// ─────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	var got models.SignupRequest
	svc := &fakeSignupService{
		signupFn: func(_ context.Context, req models.SignupRequest) (models.PublicAccount, error) {
			got = req
			return models.PublicAccount{ID: "id-1", Email: req.Email, FirstName: "John", LastName: "Doe", DisplayName: "John Doe"}, nil
		},
	}
	h := newTestHandler(t, &service.Services{SignupService: svc})

	body := `{"email":"john@doe.com","password":"johndoe123","firstName":"John","lastName":"Doe","role":"admin"}`
	rec := httptest.NewRecorder()
	h.signup(rec, httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.SignupRequest{Email: "john@doe.com", Password: "johndoe123", FirstName: "John", LastName: "Doe"}, got)

	resp := decodeBody[map[string]json.RawMessage](t, rec)
	assert.JSONEq(t, `"account created successfully"`, string(resp["message"]))

	user := decodeBody[struct {
		User map[string]any `json:"user"`
	}](t, rec).User
	assert.Equal(t, "john@doe.com", user["email"])
	assert.Equal(t, "John Doe", user["displayName"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
}

func TestSignup_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid JSON",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantError:  msgInvalidJSON,
		},
		{
			name:       "validation",
			body:       `{"email":"john@doe.com"}`,
			err:        &service.ValidationError{Msg: "email and password are required"},
			wantStatus: http.StatusBadRequest,
			wantError:  "email and password are required",
		},
		{
			name:       "duplicate email",
			body:       `{"email":"john@doe.com","password":"johndoe123"}`,
			err:        fmt.Errorf("signup: %w", service.ErrDuplicateEmail),
			wantStatus: http.StatusBadRequest,
			wantError:  "a user with this email already exists",
		},
		{
			name:       "store fault is not leaked",
			body:       `{"email":"john@doe.com","password":"johndoe123"}`,
			err:        fmt.Errorf("%w: connection refused", store.ErrExecutingQuery),
			wantStatus: http.StatusInternalServerError,
			wantError:  msgSignupFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSignupService{
				signupFn: func(_ context.Context, _ models.SignupRequest) (models.PublicAccount, error) {
					require.NotNil(t, tt.err, "service must not be called")
					return models.PublicAccount{}, tt.err
				},
			}
			h := newTestHandler(t, &service.Services{SignupService: svc})

			rec := httptest.NewRecorder()
			h.signup(rec, httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantError, decodeBody[models.ErrorResponse](t, rec).Error)
		})
	}
}

// ─────────────────────────────────────────────
// credentials callback
// ─────────────────────────────────────────────

func TestCredentialsCallback_Success(t *testing.T) {
	auth := &fakeAuthenticator{
		authenticateFn: func(_ context.Context, creds models.Credentials) (models.Identity, error) {
			assert.Equal(t, models.Credentials{Email: "john@doe.com", Password: "johndoe123"}, creds)
			return johnIdentity(), nil
		},
	}
	sessions := &fakeSessionIssuer{
		issueFn: func(_ context.Context, identity models.Identity) (models.Session, error) {
			s := johnSession(testNow, "signed.jwt.token")
			s.Identity = identity
			return s, nil
		},
	}
	h := newTestHandler(t, &service.Services{Authenticator: auth, SessionIssuer: sessions})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/callback/credentials",
		strings.NewReader(`{"email":"john@doe.com","password":"johndoe123"}`))
	h.credentialsCallback(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))
	assert.Equal(t, johnIdentity(), decodeBody[models.LoginResponse](t, rec).User)

	cookie := findCookie(t, rec, "chronos.session-token")
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestCredentialsCallback_UniformFailure(t *testing.T) {
	failures := map[string]error{
		"wrong password": service.ErrInvalidCredentials,
		"unknown email":  service.ErrInvalidCredentials,
		"internal fault": fmt.Errorf("%w: store unreachable", service.ErrAuthenticationFault),
	}

	var bodies []string
	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			auth := &fakeAuthenticator{
				authenticateFn: func(_ context.Context, _ models.Credentials) (models.Identity, error) {
					return models.Identity{}, failure
				},
			}
			sessions := &fakeSessionIssuer{
				issueFn: func(_ context.Context, _ models.Identity) (models.Session, error) {
					t.Fatal("no session may be issued")
					return models.Session{}, nil
				},
			}
			h := newTestHandler(t, &service.Services{Authenticator: auth, SessionIssuer: sessions})

			rec := httptest.NewRecorder()
			h.credentialsCallback(rec, httptest.NewRequest(http.MethodPost, "/api/auth/callback/credentials",
				strings.NewReader(`{"email":"john@doe.com","password":"nope"}`)))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, rec.Header().Get("Authorization"))
			assert.Empty(t, rec.Result().Cookies())
			bodies = append(bodies, rec.Body.String())
		})
	}

	require.Len(t, bodies, len(failures))
	for _, b := range bodies {
		assert.Equal(t, bodies[0], b)
	}
	assert.JSONEq(t, `{"error":"invalid email or password"}`, bodies[0])
}

func TestCredentialsCallback_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := httptest.NewRecorder()
	h.credentialsCallback(rec, httptest.NewRequest(http.MethodPost, "/api/auth/callback/credentials", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidJSON, decodeBody[models.ErrorResponse](t, rec).Error)
}

func TestCredentialsCallback_IssueFailure(t *testing.T) {
	auth := &fakeAuthenticator{
		authenticateFn: func(_ context.Context, _ models.Credentials) (models.Identity, error) {
			return johnIdentity(), nil
		},
	}
	sessions := &fakeSessionIssuer{
		issueFn: func(_ context.Context, _ models.Identity) (models.Session, error) {
			return models.Session{}, fmt.Errorf("%w: boom", service.ErrSessionIssue)
		},
	}
	h := newTestHandler(t, &service.Services{Authenticator: auth, SessionIssuer: sessions})

	rec := httptest.NewRecorder()
	h.credentialsCallback(rec, httptest.NewRequest(http.MethodPost, "/api/auth/callback/credentials",
		strings.NewReader(`{"email":"john@doe.com","password":"johndoe123"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternalError, decodeBody[models.ErrorResponse](t, rec).Error)
	assert.Empty(t, rec.Result().Cookies())
}

// ─────────────────────────────────────────────
// session
// ─────────────────────────────────────────────

func TestGetSession_Anonymous(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := httptest.NewRecorder()
	h.getSession(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestGetSession_Fresh(t *testing.T) {
	sessions := &fakeSessionIssuer{
		renewFn: func(_ context.Context, _ string) (models.Session, error) {
			t.Fatal("a fresh session must not be renewed")
			return models.Session{}, nil
		},
	}
	h := newTestHandler(t, &service.Services{SessionIssuer: sessions})
	session := johnSession(testNow.Add(-time.Hour), "fresh")

	rec := httptest.NewRecorder()
	h.getSession(rec, withSessionCtx(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), session))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.SessionResponse](t, rec)
	require.NotNil(t, resp.User)
	require.NotNil(t, resp.Expires)
	assert.Equal(t, johnIdentity(), *resp.User)
	assert.True(t, session.ExpiresAt.Equal(*resp.Expires))
	assert.Empty(t, rec.Result().Cookies())
}

func TestGetSession_SlidingRenewal(t *testing.T) {
	old := johnSession(testNow.Add(-25*time.Hour), "old")
	renewed := johnSession(testNow, "renewed")

	sessions := &fakeSessionIssuer{
		renewFn: func(_ context.Context, token string) (models.Session, error) {
			assert.Equal(t, "old", token)
			return renewed, nil
		},
	}
	h := newTestHandler(t, &service.Services{SessionIssuer: sessions})

	rec := httptest.NewRecorder()
	h.getSession(rec, withSessionCtx(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), old))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "renewed", findCookie(t, rec, "chronos.session-token").Value)
	resp := decodeBody[models.SessionResponse](t, rec)
	require.NotNil(t, resp.Expires)
	assert.True(t, renewed.ExpiresAt.Equal(*resp.Expires))
}

func TestGetSession_RenewalFailureKeepsSession(t *testing.T) {
	old := johnSession(testNow.Add(-48*time.Hour), "old")
	sessions := &fakeSessionIssuer{
		renewFn: func(_ context.Context, _ string) (models.Session, error) {
			return models.Session{}, errors.New("signing failed")
		},
	}
	h := newTestHandler(t, &service.Services{SessionIssuer: sessions})

	rec := httptest.NewRecorder()
	h.getSession(rec, withSessionCtx(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), old))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	resp := decodeBody[models.SessionResponse](t, rec)
	require.NotNil(t, resp.Expires)
	assert.True(t, old.ExpiresAt.Equal(*resp.Expires))
}

// ─────────────────────────────────────────────
// signout
// ─────────────────────────────────────────────

func TestSignout_ClearsCookie(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	rec := httptest.NewRecorder()
	h.signout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/auth/login", decodeBody[models.SignoutResponse](t, rec).URL)

	cookie := findCookie(t, rec, testSessionConfig().CookieName)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestSetSessionCookie_Secure(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	h.session.CookieSecure = true

	rec := httptest.NewRecorder()
	h.setSessionCookie(rec, johnSession(testNow, "tok"))

	cookie := findCookie(t, rec, "chronos.session-token")
	assert.True(t, cookie.Secure)
	assert.Equal(t, int(config.SessionLifetime.Seconds()), cookie.MaxAge)
}
