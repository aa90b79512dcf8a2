package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

// defaultRequestTimeout bounds management API calls when Config.Timeout is
// left zero.
const defaultRequestTimeout = 15 * time.Second

// Config carries the connection parameters of a management client.
type Config struct {
	// Address is the management API endpoint: "host:port" or a full URL.
	// A bare host:port is promoted to http://.
	Address string

	// Timeout bounds each request. Zero selects defaultRequestTimeout.
	Timeout time.Duration
}

// managementClient is the resty-backed [ManagementClient].
type managementClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string
}

// NewManagementClient constructs the HTTP implementation of
// [ManagementClient]. It normalizes and validates the endpoint address and
// configures the underlying client with it.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a URL.
func NewManagementClient(cfg Config) (ManagementClient, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid management address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}

	return &managementClient{client: utils.NewHTTPClient(baseURL, cfg.Timeout)}, nil
}

// normalizeBaseURL promotes a bare host:port to an http:// URL and strips a
// trailing slash.
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

// SetToken implements [ManagementClient]. The token is whitespace-trimmed;
// the console calls this from concurrent command goroutines.
func (m *managementClient) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = strings.TrimSpace(token)
}

// Token implements [ManagementClient].
func (m *managementClient) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Login implements [ManagementClient]. It POSTs the credentials to
// POST /api/session; on success the returned session token is stored via
// SetToken.
func (m *managementClient) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		Post("/api/session")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	var token models.Token
	if err = json.Unmarshal(resp.Body(), &token); err != nil {
		return models.Token{}, fmt.Errorf("decode session response: %w", err)
	}
	if token.SignedString == "" {
		return models.Token{}, fmt.Errorf("session response carries no token")
	}

	m.SetToken(token.SignedString)
	token.Login = credentials.Login
	return token, nil
}

// Health implements [ManagementClient].
func (m *managementClient) Health(ctx context.Context) error {
	resp, err := m.client.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ManagementClient].
func (m *managementClient) Version(ctx context.Context) (models.BuildInfo, error) {
	resp, err := m.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return models.BuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BuildInfo{}, err
	}

	var info models.BuildInfo
	if err = json.Unmarshal(resp.Body(), &info); err != nil {
		return models.BuildInfo{}, fmt.Errorf("decode version response: %w", err)
	}
	return info, nil
}

// Check implements [ManagementClient]. The document travels as an opaque
// body; the daemon parses it server-side and always answers a report.
func (m *managementClient) Check(ctx context.Context, document []byte) (models.CheckReport, error) {
	resp, err := m.authedRequest(ctx).
		SetHeader("Content-Type", "application/toml").
		SetBody(document).
		Post("/api/config/check")
	if err != nil {
		return models.CheckReport{}, fmt.Errorf("check request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CheckReport{}, err
	}

	var report models.CheckReport
	if err = json.Unmarshal(resp.Body(), &report); err != nil {
		return models.CheckReport{}, fmt.Errorf("decode check report: %w", err)
	}
	return report, nil
}

// Keys implements [ManagementClient].
func (m *managementClient) Keys(ctx context.Context, prefix string) ([]models.ConfigKey, error) {
	req := m.authedRequest(ctx)
	if prefix != "" {
		req.SetQueryParam("prefix", prefix)
	}

	resp, err := req.Get("/api/config/keys")
	if err != nil {
		return nil, fmt.Errorf("list keys request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var list models.KeyListResponse
	if err = json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("decode key list: %w", err)
	}
	return list.Keys, nil
}

// SetKeys implements [ManagementClient].
func (m *managementClient) SetKeys(ctx context.Context, entries ...models.ConfigKey) error {
	resp, err := m.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(entries).
		Put("/api/config/keys")
	if err != nil {
		return fmt.Errorf("set keys request: %w", err)
	}

	return mapHTTPError(resp)
}

// DeleteKey implements [ManagementClient]. The dotted key travels as one
// URL-escaped path segment, so keys containing reserved characters survive
// routing.
func (m *managementClient) DeleteKey(ctx context.Context, key string) error {
	resp, err := m.authedRequest(ctx).
		Delete("/api/config/keys/" + url.PathEscape(key))
	if err != nil {
		return fmt.Errorf("delete key request: %w", err)
	}

	return mapHTTPError(resp)
}

// authedRequest starts a request carrying the session token when one is
// set.
func (m *managementClient) authedRequest(ctx context.Context) *resty.Request {
	req := m.client.R().SetContext(ctx)
	if token := m.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
