// Package http implements the transport used by the cfv2 client:
// request building, bearer-token injection, response decoding, and v2
// error handling.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/cfv2/internal/constants"
	"github.com/fivetwenty-io/cfv2/pkg/cfv2"
)

const defaultUserAgent = "cfv2-client/1.0"

// TokenManager supplies bearer tokens for authenticated requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Request is an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response is an API response with the body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues HTTP requests against a base URL, attaching a bearer
// token when a token manager is configured.
type Client struct {
	baseURL      string
	tokenManager TokenManager
	httpClient   *retryablehttp.Client
	userAgent    string
	logger       cfv2.Logger
	debug        bool
	cache        cfv2.Cache
	cacheTTL     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
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

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithSkipTLSVerify disables certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if skip {
			c.httpClient.HTTPClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- opt-in for bosh-lite style development targets
			}
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithCache caches successful GET responses for the given TTL.
func WithCache(cache cfv2.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewClient creates a transport client for the given base URL. The
// token manager may be nil for unauthenticated use.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	// The client performs no automatic retries; retryablehttp is used
	// purely as the HTTP client here.
	httpClient.RetryMax = 0
	httpClient.Logger = nil
	httpClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		httpClient:   httpClient,
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request. Responses with a status of 400 or above are
// returned together with a protocol error carrying the status code.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	if entry := c.cachedResponse(ctx, req, fullURL); entry != nil {
		return entry, nil
	}

	httpReq, err := c.buildRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": httpReq.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, cfv2.NewTransportError(fmt.Sprintf("%s %s failed", req.Method, req.Path), err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, cfv2.NewTransportError("reading response body", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"bytes":  len(body),
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, statusError(resp)
	}

	c.storeResponse(ctx, req, fullURL, resp)

	return resp, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var bodyReader io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func (c *Client) cachedResponse(ctx context.Context, req *Request, fullURL string) *Response {
	if c.cache == nil || req.Method != http.MethodGet {
		return nil
	}

	entry, err := c.cache.Get(ctx, fullURL)
	if err != nil {
		return nil
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       entry.Data,
	}
}

func (c *Client) storeResponse(ctx context.Context, req *Request, fullURL string, resp *Response) {
	if c.cache == nil || req.Method != http.MethodGet || resp.StatusCode != http.StatusOK {
		return
	}

	_ = c.cache.Set(ctx, fullURL, &cfv2.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
		ETag:      resp.Headers.Get("ETag"),
	})
}

// statusError shapes a non-2xx response into a protocol error, keeping
// the parsed v2 error body as the cause when the body carries one.
func statusError(resp *Response) error {
	apiErr, err := cfv2.ParseAPIError(resp.Body)
	if err == nil && apiErr.ErrorCode != "" {
		return cfv2.NewStatusError(resp.StatusCode, apiErr)
	}

	return cfv2.NewStatusError(resp.StatusCode, nil)
}
