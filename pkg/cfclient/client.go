// Package cfclient provides the entry point for creating Cloud Foundry
// v2 API clients.
package cfclient

import (
	"github.com/fivetwenty-io/cfv2/internal/client"
	"github.com/fivetwenty-io/cfv2/pkg/cfv2"
)

// Option configures the constructed client.
type Option = client.Option

// Re-exported client options.
var (
	WithLogger    = client.WithLogger
	WithDebug     = client.WithDebug
	WithUserAgent = client.WithUserAgent
	WithTimeout   = client.WithTimeout
	WithCache     = client.WithCache
)

// New creates a client for the given configuration. The client starts
// disconnected; call Connect before issuing requests.
func New(config *cfv2.Config, opts ...Option) (cfv2.Client, error) {
	if config == nil {
		return nil, cfv2.NewValidationError(cfv2.ErrConfigRequired)
	}

	return client.New(config, opts...), nil
}

// NewWithPassword creates a client for a host using username/password
// authentication and the remaining defaults.
func NewWithPassword(host, username, password string, opts ...Option) (cfv2.Client, error) {
	return New(cfv2.NewConfig(cfv2.Options{
		Host:     host,
		Username: username,
		Password: password,
	}), opts...)
}

// NewDefault creates a client with every default applied, targeting a
// local bosh-lite deployment.
func NewDefault(opts ...Option) (cfv2.Client, error) {
	return New(cfv2.DefaultConfig(), opts...)
}
