package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/michaelhessen/chronos/internal/config"
	"github.com/michaelhessen/chronos/internal/logger"
	"github.com/michaelhessen/chronos/internal/utils"
	"github.com/michaelhessen/chronos/models"
)

const (
	signupPath      = "/api/signup"
	credentialsPath = "/api/auth/callback/credentials"
	sessionPath     = "/api/auth/session"
	signoutPath     = "/api/auth/signout"
	versionPath     = "/api/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the resty implementation of [ServerAdapter].
// Redirects are not followed, so a gate redirect surfaces as
// [ErrNotAuthenticated].
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.PublicAccount, error) {
	var result models.SignupResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post(signupPath)
	if err != nil {
		return models.PublicAccount{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicAccount{}, err
	}

	return result.User, nil
}

// Login takes the token from the Authorization response header; the session
// cookie carries the same value.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&result).
		Post(credentialsPath)
	if err != nil {
		return models.Identity{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Identity{}, err
	}

	h.SetToken(token)
	h.logger.Debug().Str("email", result.User.Email).Msg("signed in")
	return result.User, nil
}

// Session picks up a renewed token when the server slid the expiry.
func (h *httpServerAdapter) Session(ctx context.Context) (models.SessionResponse, error) {
	var result models.SessionResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get(sessionPath)
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionResponse{}, err
	}

	if renewed, err := parseBearerToken(resp.Header().Get("Authorization")); err == nil {
		h.SetToken(renewed)
	}

	return result, nil
}

func (h *httpServerAdapter) Signout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post(signoutPath)
	if err != nil {
		return fmt.Errorf("signout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var result models.VersionResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get(versionPath)
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
