package cfv2

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// File permissions for saved configuration.
const (
	configDirPerm  = 0750
	configFilePerm = 0600
)

// LoadOptions reads connection options from a YAML or JSON file,
// overlaying CF_* environment variables (CF_HOST, CF_USERNAME, ...).
// An empty path reads from the environment alone.
func LoadOptions(path string) (*Options, error) {
	loader := viper.New()
	loader.SetEnvPrefix("CF")
	loader.AutomaticEnv()

	for _, key := range []string{"protocol", "host", "port", "username", "password", "skip_ssl_validation"} {
		_ = loader.BindEnv(key)
	}

	if path != "" {
		loader.SetConfigFile(path)

		err := loader.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	opts := &Options{
		Protocol:          loader.GetString("protocol"),
		Host:              loader.GetString("host"),
		Port:              loader.GetInt("port"),
		Username:          loader.GetString("username"),
		Password:          loader.GetString("password"),
		SkipTLSValidation: loader.GetBool("skip_ssl_validation"),
	}

	return opts, nil
}

// SaveOptions writes connection options to a YAML file, creating the
// parent directory when missing.
func SaveOptions(path string, opts *Options) error {
	if opts == nil {
		return ErrConfigRequired
	}

	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, configDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	err = os.WriteFile(path, data, configFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
