package auth

import (
	"sync"
	"time"

	"github.com/fivetwenty-io/cfv2/internal/constants"
)

// Token is an OAuth2 token pair as returned by UAA.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`

	// ExpiresAt is materialized from ExpiresIn when the token is
	// received; a zero value means the token does not expire.
	ExpiresAt time.Time `json:"-"`
}

// Valid reports whether the token can still be used. Tokens expiring
// within the expiry buffer count as invalid so they cannot lapse
// mid-request.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token behind a mutex.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
