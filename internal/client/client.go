// Package client implements the concrete cfv2.Client.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/cfv2/internal/auth"
	"github.com/fivetwenty-io/cfv2/internal/constants"
	cfhttp "github.com/fivetwenty-io/cfv2/internal/http"
	"github.com/fivetwenty-io/cfv2/pkg/cfv2"
)

// session is the connected state: discovery info, the token manager
// bound to the discovered token endpoint, and the authenticated
// transport. A nil session is the only disconnected marker.
type session struct {
	info       *cfv2.Info
	tokens     *auth.OAuth2TokenManager
	httpClient *cfhttp.Client
}

// Client implements cfv2.Client over one Config.
type Client struct {
	config    *cfv2.Config
	logger    cfv2.Logger
	debug     bool
	userAgent string
	timeout   time.Duration
	cache     cfv2.Cache
	cacheTTL  time.Duration

	session *session
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger handed to the transport.
func WithLogger(logger cfv2.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCache caches successful GET responses for the given TTL.
func WithCache(cache cfv2.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// New creates a disconnected client. No network activity happens until
// Connect.
func New(config *cfv2.Config, opts ...Option) *Client {
	client := &Client{
		config: config,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Connect fetches /v2/info, exchanges the configured credentials for a
// token at the discovered token endpoint, and stores both. A failure at
// either stage leaves the previous session untouched and propagates
// without retry.
func (c *Client) Connect(ctx context.Context) error {
	info, err := c.fetchInfo(ctx)
	if err != nil {
		return err
	}

	tokens, err := c.newTokenManager(info)
	if err != nil {
		return err
	}

	// Acquire the first token eagerly so Connect surfaces credential
	// problems instead of the first Request.
	_, err = tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("acquiring token: %w", err)
	}

	c.session = &session{
		info:       info,
		tokens:     tokens,
		httpClient: cfhttp.NewClient(c.config.BaseURL(), tokens, c.transportOptions()...),
	}

	return nil
}

// Request issues an authenticated call to /v2/<path>. An expired token
// is refreshed first; when the refresh fails the client reconnects from
// scratch before executing the request. Any response status other than
// 200 resolves as a status error.
func (c *Client) Request(ctx context.Context, method, path string) (string, error) {
	s := c.session
	if s == nil {
		return "", cfv2.NewValidationError(cfv2.ErrNotConnected)
	}

	if !s.tokens.CurrentToken().Valid() {
		err := s.tokens.RefreshToken(ctx)
		if err != nil {
			err = c.Connect(ctx)
			if err != nil {
				return "", fmt.Errorf("reconnecting after failed refresh: %w", err)
			}

			s = c.session
		}
	}

	if method == "" {
		method = http.MethodGet
	}

	resp, err := s.httpClient.Do(ctx, &cfhttp.Request{
		Method: method,
		Path:   constants.APIPathPrefix + strings.TrimPrefix(path, "/"),
	})
	if err != nil {
		return "", err
	}

	// Only a 200 counts as success here; a 201/204/3xx means the call
	// did not behave like a v2 read and is surfaced as a status error.
	if resp.StatusCode != http.StatusOK {
		return "", cfv2.NewStatusError(resp.StatusCode, nil)
	}

	return string(resp.Body), nil
}

// Get is shorthand for Request with the GET method.
func (c *Client) Get(ctx context.Context, path string) (string, error) {
	return c.Request(ctx, http.MethodGet, path)
}

// Info returns the discovery info from the last successful Connect.
func (c *Client) Info() *cfv2.Info {
	if c.session == nil {
		return nil
	}

	return c.session.info
}

// Connected reports whether a successful Connect has happened.
func (c *Client) Connected() bool {
	return c.session != nil
}

// AccessToken returns the current bearer token, refreshing it if
// needed.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.session == nil {
		return "", cfv2.NewValidationError(cfv2.ErrNotConnected)
	}

	token, err := c.session.tokens.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// fetchInfo performs the unauthenticated discovery call.
func (c *Client) fetchInfo(ctx context.Context) (*cfv2.Info, error) {
	discovery := cfhttp.NewClient(c.config.BaseURL(), nil, c.transportOptions()...)

	resp, err := discovery.Get(ctx, constants.InfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting API info: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getting API info: %w", cfv2.NewStatusError(resp.StatusCode, nil))
	}

	var info cfv2.Info

	err = json.Unmarshal(resp.Body, &info)
	if err != nil {
		return nil, fmt.Errorf("parsing API info response: %w", err)
	}

	return &info, nil
}

// newTokenManager binds a token manager to the discovered token
// endpoint. Requiring the Info value makes a token exchange without
// discovery info unrepresentable; missing endpoints fail here without
// any network call.
func (c *Client) newTokenManager(info *cfv2.Info) (*auth.OAuth2TokenManager, error) {
	if info == nil {
		return nil, cfv2.NewValidationError(cfv2.ErrNoDiscoveryInfo)
	}

	if info.TokenEndpoint == "" {
		return nil, cfv2.NewValidationError(cfv2.ErrNoTokenEndpoint)
	}

	return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:      strings.TrimSuffix(info.TokenEndpoint, "/") + constants.TokenPath,
		ClientID:      constants.DefaultClientID,
		Username:      c.config.Username,
		Password:      c.config.Password,
		SkipTLSVerify: c.config.SkipTLSValidation,
	}), nil
}

func (c *Client) transportOptions() []cfhttp.Option {
	opts := []cfhttp.Option{
		cfhttp.WithSkipTLSVerify(c.config.SkipTLSValidation),
	}

	if c.logger != nil {
		opts = append(opts, cfhttp.WithLogger(c.logger))
	}

	if c.debug {
		opts = append(opts, cfhttp.WithDebug(true))
	}

	if c.userAgent != "" {
		opts = append(opts, cfhttp.WithUserAgent(c.userAgent))
	}

	if c.timeout > 0 {
		opts = append(opts, cfhttp.WithTimeout(c.timeout))
	}

	if c.cache != nil {
		opts = append(opts, cfhttp.WithCache(c.cache, c.cacheTTL))
	}

	return opts
}
