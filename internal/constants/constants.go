package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations like discovery.
	ShortHTTPTimeout = 10 * time.Second
)

// OAuth2 grant and client identifiers.
const (
	// DefaultClientID is the OAuth2 client the CF CLI family uses for
	// the password grant.
	DefaultClientID = "cf"

	// GrantTypePassword is the resource-owner password grant.
	GrantTypePassword = "password"

	// GrantTypeRefreshToken is the refresh-token grant.
	GrantTypeRefreshToken = "refresh_token"

	// GrantTypeClientCredentials is the client-credentials grant.
	GrantTypeClientCredentials = "client_credentials"

	// TokenPath is appended to the discovered token endpoint.
	TokenPath = "/oauth/token"
)

// API paths.
const (
	// InfoPath is the unauthenticated discovery endpoint.
	InfoPath = "/v2/info"

	// APIPathPrefix prefixes every versioned resource path.
	APIPathPrefix = "/v2/"
)

// Token lifetime handling.
const (
	// TokenExpiryBuffer treats tokens expiring this soon as expired so
	// a token cannot lapse mid-request.
	TokenExpiryBuffer = 30 * time.Second
)
