package auth

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/cfv2/internal/constants"
	"github.com/fivetwenty-io/cfv2/pkg/cfv2"
)

// TokenManager manages access tokens for authenticated requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures an OAuth2TokenManager.
type OAuth2Config struct {
	TokenURL      string
	ClientID      string
	ClientSecret  string
	Username      string
	Password      string
	RefreshToken  string
	AccessToken   string
	Scopes        []string
	SkipTLSVerify bool
}

// OAuth2TokenManager obtains and refreshes tokens from a UAA token
// endpoint. It supports the password, refresh_token, and
// client_credentials grants.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
}

// NewOAuth2TokenManager creates a token manager for the given config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := &http.Client{
		Timeout: constants.ShortHTTPTimeout,
	}

	if config.SkipTLSVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- opt-in for bosh-lite style development targets
		}
	}

	manager := &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "bearer",
		})
	}

	return manager
}

// CurrentToken returns the stored token without triggering a grant.
func (m *OAuth2TokenManager) CurrentToken() *Token {
	return m.store.Get()
}

// GetToken returns a valid access token, obtaining or refreshing one
// as needed.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	if refreshToken := m.refreshTokenValue(); refreshToken != "" {
		err := m.refreshGrant(ctx, refreshToken)
		if err != nil {
			return "", err
		}

		return m.store.Get().AccessToken, nil
	}

	err := m.credentialsGrant(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a refresh of the current token. When a refresh
// token is available the refresh_token grant is attempted and its
// failure is surfaced to the caller; otherwise the configured
// credentials grant runs again.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	if refreshToken := m.refreshTokenValue(); refreshToken != "" {
		return m.refreshGrant(ctx, refreshToken)
	}

	return m.credentialsGrant(ctx)
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

func (m *OAuth2TokenManager) refreshTokenValue() string {
	if token := m.store.Get(); token != nil && token.RefreshToken != "" {
		return token.RefreshToken
	}

	return m.config.RefreshToken
}

// credentialsGrant runs the grant the configured credentials allow:
// client_credentials for a client id/secret pair, password for a
// username/password pair.
func (m *OAuth2TokenManager) credentialsGrant(ctx context.Context) error {
	switch {
	case m.config.ClientID != "" && m.config.ClientSecret != "":
		form := url.Values{}
		form.Set("grant_type", constants.GrantTypeClientCredentials)
		m.addScopes(form)

		return m.requestToken(ctx, form, true)

	case m.config.Username != "" && m.config.Password != "":
		form := url.Values{}
		form.Set("grant_type", constants.GrantTypePassword)
		form.Set("username", m.config.Username)
		form.Set("password", m.config.Password)

		if m.config.ClientID != "" {
			form.Set("client_id", m.config.ClientID)
			form.Set("client_secret", m.config.ClientSecret)
		}

		m.addScopes(form)

		return m.requestToken(ctx, form, false)

	default:
		return cfv2.NewOAuthError("cannot obtain token", cfv2.ErrNoCredentials)
	}
}

func (m *OAuth2TokenManager) refreshGrant(ctx context.Context, refreshToken string) error {
	form := url.Values{}
	form.Set("grant_type", constants.GrantTypeRefreshToken)
	form.Set("refresh_token", refreshToken)

	if m.config.ClientID != "" {
		form.Set("client_id", m.config.ClientID)
		form.Set("client_secret", m.config.ClientSecret)
	}

	return m.requestToken(ctx, form, false)
}

func (m *OAuth2TokenManager) addScopes(form url.Values) {
	if len(m.config.Scopes) > 0 {
		form.Set("scope", strings.Join(m.config.Scopes, " "))
	}
}

// requestToken posts the form to the token endpoint and stores the
// resulting token.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, form url.Values, useBasicAuth bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if useBasicAuth {
		req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return cfv2.NewTransportError("token request failed", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return oauthError(resp.StatusCode, body)
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	m.store.Set(&token)

	return nil
}

// oauthError shapes a non-200 token response into an error carrying
// the UAA error code and description.
func oauthError(statusCode int, body []byte) error {
	var errResp struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}

	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return cfv2.NewOAuthError(
			fmt.Sprintf("token request failed: %s (%s)", errResp.Error, errResp.Description),
			&cfv2.Error{Kind: cfv2.ErrorKindProtocolStatus, Message: fmt.Sprintf("unexpected status code %d", statusCode), StatusCode: statusCode},
		)
	}

	return cfv2.NewOAuthError("token request failed", cfv2.NewStatusError(statusCode, nil))
}
