package cfv2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/cfv2/pkg/cfv2"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	config := cfv2.NewConfig(cfv2.Options{})

	assert.Equal(t, "http", config.Protocol)
	assert.Equal(t, "api.bosh-lite.com", config.Host)
	assert.Equal(t, 80, config.Port)
	assert.Equal(t, "admin", config.Username)
	assert.Equal(t, "admin", config.Password)
	assert.False(t, config.SkipTLSValidation)
}

func TestNewConfig_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     cfv2.Options
		expected cfv2.Config
	}{
		{
			name: "https derives port 443",
			opts: cfv2.Options{Protocol: "https", Host: "api.example.com"},
			expected: cfv2.Config{
				Protocol: "https", Host: "api.example.com", Port: 443,
				Username: "admin", Password: "admin",
			},
		},
		{
			name: "unknown protocol falls back to http",
			opts: cfv2.Options{Protocol: "ftp"},
			expected: cfv2.Config{
				Protocol: "http", Host: "api.bosh-lite.com", Port: 80,
				Username: "admin", Password: "admin",
			},
		},
		{
			name: "mixed case protocol is accepted",
			opts: cfv2.Options{Protocol: "HTTPS"},
			expected: cfv2.Config{
				Protocol: "https", Host: "api.bosh-lite.com", Port: 443,
				Username: "admin", Password: "admin",
			},
		},
		{
			name: "explicit values are kept",
			opts: cfv2.Options{
				Protocol: "https", Host: "api.sys.example.com", Port: 8443,
				Username: "deployer", Password: "s3cret", SkipTLSValidation: true,
			},
			expected: cfv2.Config{
				Protocol: "https", Host: "api.sys.example.com", Port: 8443,
				Username: "deployer", Password: "s3cret", SkipTLSValidation: true,
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := cfv2.NewConfig(testCase.opts)
			assert.Equal(t, testCase.expected, *config)
		})
	}
}

func TestConfig_BaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     cfv2.Options
		expected string
	}{
		{
			name:     "default port omitted",
			opts:     cfv2.Options{},
			expected: "http://api.bosh-lite.com",
		},
		{
			name:     "https default port omitted",
			opts:     cfv2.Options{Protocol: "https", Host: "api.example.com"},
			expected: "https://api.example.com",
		},
		{
			name:     "non-default port spelled out",
			opts:     cfv2.Options{Host: "localhost", Port: 8080},
			expected: "http://localhost:8080",
		},
		{
			name:     "host with explicit port kept as-is",
			opts:     cfv2.Options{Host: "127.0.0.1:9022"},
			expected: "http://127.0.0.1:9022",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, cfv2.NewConfig(testCase.opts).BaseURL())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cfv2.NewConfig(cfv2.Options{}), cfv2.DefaultConfig())
}
