package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/config"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/utils"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

const (
	loginPath               = "/auth/login"
	credentialsPath         = "/password"
	credentialPath          = "/password/{id}"
	resetMasterPasswordPath = "/user/reset-master-password"

	requestIDHeader = "X-Request-ID"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator
	now    func() time.Time

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: log,
	}, nil
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

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the credentials to /auth/login
// and takes the bearer token from the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&user).
		Post(loginPath)
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	if user.ID == "" {
		return models.User{}, fmt.Errorf("login response: missing user id")
	}

	h.SetToken(token)
	user.Token = token
	return user, nil
}

// ListCredentials implements [ServerAdapter]. GET /password.
func (h *httpServerAdapter) ListCredentials(ctx context.Context) ([]models.CredentialRecord, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var body models.CredentialsResponse
	resp, err := req.SetResult(&body).Get(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("list credentials request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if body.Passwords == nil {
		return []models.CredentialRecord{}, nil
	}
	return body.Passwords, nil
}

// GetCredential implements [ServerAdapter]. GET /password/{id}.
func (h *httpServerAdapter) GetCredential(ctx context.Context, id string) (models.CredentialRecord, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.CredentialRecord{}, err
	}

	var record models.CredentialRecord
	resp, err := req.SetPathParam("id", id).SetResult(&record).Get(credentialPath)
	if err != nil {
		return models.CredentialRecord{}, fmt.Errorf("get credential request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialRecord{}, err
	}

	return record, nil
}

// SaveCredential implements [ServerAdapter]. POST /password.
func (h *httpServerAdapter) SaveCredential(ctx context.Context, record models.CredentialRecord) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post(credentialsPath)
	if err != nil {
		return fmt.Errorf("save credential request: %w", err)
	}

	return mapHTTPError(resp)
}

// UpdateCredential implements [ServerAdapter]. PUT /password/{id}.
func (h *httpServerAdapter) UpdateCredential(ctx context.Context, record models.CredentialRecord) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", record.ID).
		SetBody(record).
		Put(credentialPath)
	if err != nil {
		return fmt.Errorf("update credential request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteCredential implements [ServerAdapter]. DELETE /password/{id}.
func (h *httpServerAdapter) DeleteCredential(ctx context.Context, id string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetPathParam("id", id).Delete(credentialPath)
	if err != nil {
		return fmt.Errorf("delete credential request: %w", err)
	}

	return mapHTTPError(resp)
}

// ResetMasterPassword implements [ServerAdapter].
// POST /user/reset-master-password.
func (h *httpServerAdapter) ResetMasterPassword(ctx context.Context, body models.ResetMasterPasswordRequest) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(resetMasterPasswordPath)
	if err != nil {
		return fmt.Errorf("reset master password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpServerAdapter.ResetMasterPassword").
			Int("items", len(body.Items)).Msg("server rejected the password change")
		return err
	}

	return nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	id, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		id = h.ids.Generate()
	}
	return h.client.R().SetContext(ctx).SetHeader(requestIDHeader, id)
}

// authedRequest refuses to build a request when there is no token or when the
// token's exp claim has passed, so an expired session fails fast and locally.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	raw := h.Token()
	if raw == "" {
		return nil, ErrNoToken
	}

	token, err := utils.ParseTokenUnverified(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if token.Expired(h.now()) {
		return nil, ErrTokenExpired
	}

	return h.request(ctx).SetAuthToken(raw), nil
}
