package cfv2

import (
	"fmt"
	"strings"
)

// Default connection settings applied by NewConfig when the
// corresponding Options fields are empty.
const (
	DefaultProtocol = "http"
	DefaultHost     = "api.bosh-lite.com"
	DefaultUsername = "admin"
	DefaultPassword = "admin"

	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"

	httpDefaultPort  = 80
	httpsDefaultPort = 443
)

// Options holds raw, user-supplied connection settings. Every field is
// optional; NewConfig fills in defaults for anything left empty.
type Options struct {
	// Protocol: "http" or "https". Anything else falls back to "http".
	Protocol string `json:"protocol,omitempty"            yaml:"protocol,omitempty"`
	// Host: API hostname, optionally with an explicit ":port".
	Host string `json:"host,omitempty"                yaml:"host,omitempty"`
	// Port: overrides the port derived from the protocol.
	Port int `json:"port,omitempty"                yaml:"port,omitempty"`
	// Username: account username for the OAuth2 password grant.
	Username string `json:"username,omitempty"            yaml:"username,omitempty"`
	// Password: account password for the OAuth2 password grant.
	Password string `json:"password,omitempty"            yaml:"password,omitempty"`
	// SkipTLSValidation disables certificate verification. Intended for
	// bosh-lite style development targets only.
	SkipTLSValidation bool `json:"skip_ssl_validation,omitempty" yaml:"skip_ssl_validation,omitempty"`
}

// Config is a validated, defaulted set of connection settings. Build it
// with NewConfig and treat it as read-only afterwards; the client that
// receives it owns it for its lifetime.
type Config struct {
	Protocol          string `json:"protocol"            yaml:"protocol"`
	Host              string `json:"host"                yaml:"host"`
	Port              int    `json:"port"                yaml:"port"`
	Username          string `json:"username"            yaml:"username"`
	Password          string `json:"password"            yaml:"password"`
	SkipTLSValidation bool   `json:"skip_ssl_validation" yaml:"skip_ssl_validation"`
}

// NewConfig normalizes options into a Config. There is no failure mode:
// absent or unrecognized fields fall back to the documented defaults.
func NewConfig(opts Options) *Config {
	protocol := strings.ToLower(strings.TrimSpace(opts.Protocol))
	if protocol != ProtocolHTTP && protocol != ProtocolHTTPS {
		protocol = DefaultProtocol
	}

	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = DefaultHost
	}

	port := opts.Port
	if port <= 0 {
		port = defaultPortFor(protocol)
	}

	username := opts.Username
	if username == "" {
		username = DefaultUsername
	}

	password := opts.Password
	if password == "" {
		password = DefaultPassword
	}

	return &Config{
		Protocol:          protocol,
		Host:              host,
		Port:              port,
		Username:          username,
		Password:          password,
		SkipTLSValidation: opts.SkipTLSValidation,
	}
}

// DefaultConfig returns the configuration produced by empty Options.
func DefaultConfig() *Config {
	return NewConfig(Options{})
}

// BaseURL builds the API base URL. The port is only spelled out when it
// differs from the protocol default and the host does not already carry
// one.
func (c *Config) BaseURL() string {
	host := c.Host
	if !strings.Contains(host, ":") && c.Port != defaultPortFor(c.Protocol) {
		host = fmt.Sprintf("%s:%d", host, c.Port)
	}

	return c.Protocol + "://" + host
}

func defaultPortFor(protocol string) int {
	if protocol == ProtocolHTTPS {
		return httpsDefaultPort
	}

	return httpDefaultPort
}
