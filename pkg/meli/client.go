package meli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Mercado Livre API base URL.
	DefaultBaseURL = "https://api.mercadolibre.com"

	// defaultTimeout bounds every outbound call.
	defaultTimeout = 10 * time.Second
)

// Config holds Mercado Livre API credentials and connection settings.
// Every credential field is optional; the public API is used when none
// is configured.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	AccessToken  string // pre-provisioned token, used as-is
	RefreshToken string
	Timeout      time.Duration
}

// Client is an HTTP client for the Mercado Livre items and oauth endpoints.
type Client struct {
	httpClient *http.Client
	config     Config
	tokens     *TokenStore
	debug      bool
}

// NewClient constructs a new Mercado Livre client with sane defaults.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		tokens:     &TokenStore{},
		debug:      os.Getenv("ENV") == "development",
	}
}

// Tokens exposes the token store for status probes.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// HasCredentials reports whether any token source is configured.
func (c *Client) HasCredentials() bool {
	return c.config.AccessToken != "" ||
		c.config.RefreshToken != "" ||
		(c.config.ClientID != "" && c.config.ClientSecret != "")
}

// AcquireToken resolves a bearer token in priority order: the pre-provisioned
// static token, then a refresh_token exchange, then a client_credentials
// exchange. The first success replaces the stored token and is returned;
// ok is false when every attempt fails or nothing is configured.
func (c *Client) AcquireToken(ctx context.Context) (string, bool) {
	if c.config.AccessToken != "" {
		c.tokens.Replace(c.config.AccessToken)
		return c.config.AccessToken, true
	}

	if c.config.RefreshToken != "" {
		form := url.Values{
			"grant_type":    {"refresh_token"},
			"client_id":     {c.config.ClientID},
			"client_secret": {c.config.ClientSecret},
			"refresh_token": {c.config.RefreshToken},
		}
		token, err := c.exchangeToken(ctx, form)
		if err == nil {
			c.tokens.Replace(token)
			return token, true
		}
		log.Warn().Err(err).Msg("refresh token exchange failed")
	}

	if c.config.ClientID != "" && c.config.ClientSecret != "" {
		form := url.Values{
			"grant_type":    {"client_credentials"},
			"client_id":     {c.config.ClientID},
			"client_secret": {c.config.ClientSecret},
		}
		token, err := c.exchangeToken(ctx, form)
		if err == nil {
			c.tokens.Replace(token)
			return token, true
		}
		log.Warn().Err(err).Msg("client credentials exchange failed")
	}

	return "", false
}

// GetItem fetches an item by code from the items endpoint. On 401 it performs
// exactly one token acquisition and retries the request once. It returns the
// parsed payload together with the unmodified response body.
func (c *Client) GetItem(ctx context.Context, code string) (Payload, []byte, error) {
	body, status, err := c.getItemOnce(ctx, code, c.tokens.Current())
	if err != nil {
		return nil, nil, err
	}

	if status == http.StatusUnauthorized {
		if token, ok := c.AcquireToken(ctx); ok {
			log.Debug().Str("code", code).Msg("token refreshed, retrying item request")
			body, status, err = c.getItemOnce(ctx, code, token)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	switch status {
	case http.StatusOK:
		var payload Payload
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, nil, fmt.Errorf("failed to decode item response: %w", err)
		}
		return payload, body, nil
	case http.StatusNotFound:
		return nil, nil, ErrItemNotFound
	case http.StatusForbidden:
		return nil, nil, ErrAccessDenied
	default:
		return nil, nil, &APIError{StatusCode: status}
	}
}

// getItemOnce performs a single authenticated GET against the items endpoint.
func (c *Client) getItemOnce(ctx context.Context, code, token string) ([]byte, int, error) {
	endpoint := c.config.BaseURL + "/items/" + code

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Bool("authenticated", token != "").
			Msg("[MELI] Item response")
	}

	return body, resp.StatusCode, nil
}

// exchangeToken POSTs a form-encoded grant to the oauth endpoint and returns
// the issued access token.
func (c *Client) exchangeToken(ctx context.Context, form url.Values) (string, error) {
	endpoint := c.config.BaseURL + "/oauth/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Str("grant_type", form.Get("grant_type")).
			Int("status_code", resp.StatusCode).
			Msg("[MELI] Token response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}
	return tokenResp.AccessToken, nil
}

// classifyTransportError separates timeouts from other transport failures.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
