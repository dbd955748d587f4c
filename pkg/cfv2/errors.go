package cfv2

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind enumerates the failure classes surfaced by the client.
type ErrorKind int

const (
	// ErrorKindValidation covers misuse of the client API itself, such
	// as a missing configuration or a request before Connect.
	ErrorKindValidation ErrorKind = iota + 1

	// ErrorKindTransport covers network-level failures: refused
	// connections, TLS failures, DNS failures.
	ErrorKindTransport

	// ErrorKindProtocolStatus covers non-200 responses from the API.
	ErrorKindProtocolStatus

	// ErrorKindOAuthExchange covers failures of the UAA token exchange.
	ErrorKindOAuthExchange
)

// String returns the kind name used in error messages.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindValidation:
		return "validation"
	case ErrorKindTransport:
		return "transport"
	case ErrorKindProtocolStatus:
		return "protocol status"
	case ErrorKindOAuthExchange:
		return "oauth exchange"
	default:
		return "unknown"
	}
}

// Error is the normalized error shape returned by the client. It
// carries the failure class, a message, the HTTP status code for
// protocol failures, and the wrapped cause.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError builds a validation-kind error around a sentinel.
func NewValidationError(err error) *Error {
	return &Error{Kind: ErrorKindValidation, Message: err.Error(), Err: err}
}

// NewTransportError wraps a network-level failure.
func NewTransportError(message string, err error) *Error {
	return &Error{Kind: ErrorKindTransport, Message: message, Err: err}
}

// NewStatusError builds a protocol error for a non-200 response. The
// status code appears in both the message and the StatusCode field.
func NewStatusError(statusCode int, cause error) *Error {
	return &Error{
		Kind:       ErrorKindProtocolStatus,
		Message:    fmt.Sprintf("unexpected status code %d", statusCode),
		StatusCode: statusCode,
		Err:        cause,
	}
}

// NewOAuthError wraps a failure of the UAA token exchange.
func NewOAuthError(message string, err error) *Error {
	return &Error{Kind: ErrorKindOAuthExchange, Message: message, Err: err}
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrNotConnected      = errors.New("client not set, call Connect first")
	ErrNoDiscoveryInfo   = errors.New("no API discovery info, call Connect first")
	ErrNoTokenEndpoint   = errors.New("no token endpoint found in API info response")
	ErrNoCredentials     = errors.New("no valid credentials available")
	ErrCacheMiss         = errors.New("key not found in cache")
	ErrCacheDisabled     = errors.New("cache disabled")
	ErrNATSConfigMissing = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache  = errors.New("unsupported cache type")
)

// APIError represents the v2 error body returned by the Cloud
// Controller, e.g. {"code": 10000, "description": "...",
// "error_code": "CF-NotFound"}.
type APIError struct {
	Code        int    `json:"code"        yaml:"code"`
	Description string `json:"description" yaml:"description"`
	ErrorCode   string `json:"error_code"  yaml:"error_code"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (code: %d)", e.ErrorCode, e.Description, e.Code)
}

// ParseAPIError parses a v2 error body. A body that is not a v2 error
// document yields a nil result and an unmarshal error.
func ParseAPIError(data []byte) (*APIError, error) {
	var apiErr APIError

	err := json.Unmarshal(data, &apiErr)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	return &apiErr, nil
}

// IsValidation reports whether err is a validation-kind client error.
func IsValidation(err error) bool {
	return hasKind(err, ErrorKindValidation)
}

// IsTransport reports whether err is a transport-kind client error.
func IsTransport(err error) bool {
	return hasKind(err, ErrorKindTransport)
}

// IsProtocolStatus reports whether err is a protocol-status client error.
func IsProtocolStatus(err error) bool {
	return hasKind(err, ErrorKindProtocolStatus)
}

// IsOAuthExchange reports whether err is an OAuth-exchange client error.
func IsOAuthExchange(err error) bool {
	return hasKind(err, ErrorKindOAuthExchange)
}

// StatusCode extracts the HTTP status code from a protocol-status
// error, or 0 when err carries none.
func StatusCode(err error) int {
	clientErr := &Error{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}

	return 0
}

func hasKind(err error, kind ErrorKind) bool {
	clientErr := &Error{}
	if errors.As(err, &clientErr) {
		return clientErr.Kind == kind
	}

	return false
}
