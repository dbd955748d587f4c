package cfv2

import "context"

// Info represents the /v2/info discovery response. The authorization
// and token endpoints drive the OAuth2 exchange; the remaining fields
// are informational.
type Info struct {
	Name                     string `json:"name,omitempty"                      yaml:"name,omitempty"`
	Build                    string `json:"build,omitempty"                     yaml:"build,omitempty"`
	Support                  string `json:"support,omitempty"                   yaml:"support,omitempty"`
	Version                  int    `json:"version,omitempty"                   yaml:"version,omitempty"`
	Description              string `json:"description,omitempty"               yaml:"description,omitempty"`
	AuthorizationEndpoint    string `json:"authorization_endpoint"              yaml:"authorization_endpoint"`
	TokenEndpoint            string `json:"token_endpoint"                      yaml:"token_endpoint"`
	MinCLIVersion            string `json:"min_cli_version,omitempty"           yaml:"min_cli_version,omitempty"`
	MinRecommendedCLIVersion string `json:"min_recommended_cli_version,omitempty" yaml:"min_recommended_cli_version,omitempty"`
	APIVersion               string `json:"api_version,omitempty"               yaml:"api_version,omitempty"`
	AppSSHEndpoint           string `json:"app_ssh_endpoint,omitempty"          yaml:"app_ssh_endpoint,omitempty"`
	LoggingEndpoint          string `json:"logging_endpoint,omitempty"          yaml:"logging_endpoint,omitempty"`
	DopplerLoggingEndpoint   string `json:"doppler_logging_endpoint,omitempty"  yaml:"doppler_logging_endpoint,omitempty"`
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client is the facade over a Cloud Foundry v2 API deployment. Connect
// performs discovery and the password-grant token exchange; Request
// issues authenticated calls against /v2/<path>, transparently
// refreshing an expired token and falling back to a full reconnect
// when the refresh itself fails.
//
// A Client is not safe for concurrent overlapping Connect/Request
// calls; each call mutates the single cached session.
type Client interface {
	// Connect fetches /v2/info, then exchanges the configured
	// credentials for a token at the discovered token endpoint.
	Connect(ctx context.Context) error

	// Request issues an authenticated call to /v2/<path> and returns
	// the response body of a 200; any other status resolves as a status
	// error. An empty method defaults to GET. It fails with
	// ErrNotConnected before the first successful Connect.
	Request(ctx context.Context, method, path string) (string, error)

	// Get is shorthand for Request with the GET method.
	Get(ctx context.Context, path string) (string, error)

	// Info returns the discovery info from the last successful Connect,
	// or nil when disconnected.
	Info() *Info

	// Connected reports whether a successful Connect has happened.
	Connected() bool

	// AccessToken returns the current bearer token, refreshing it if
	// needed.
	AccessToken(ctx context.Context) (string, error)

	// Organizations lists /v2/organizations.
	Organizations(ctx context.Context) (*ListResponse[Organization], error)

	// Spaces lists /v2/spaces.
	Spaces(ctx context.Context) (*ListResponse[Space], error)

	// Apps lists /v2/apps.
	Apps(ctx context.Context) (*ListResponse[App], error)
}
