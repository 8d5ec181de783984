// Package langserver holds the glue between the grammar engine's host
// and the external bau language server. The engine never talks to the
// server; this package only reads the user's server configuration and
// spawns the executable with its stdio wired through.
package langserver

import (
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrServerDisabled means the configuration turns the server off.
	ErrServerDisabled = errors.New("language server is disabled")

	// ErrNoServerPath means the configuration enables the server but
	// gives no executable path.
	ErrNoServerPath = errors.New("no language server path configured")
)

// Config is the user-supplied external language server configuration.
type Config struct {
	Enabled bool     `yaml:"enabled"`
	Path    string   `yaml:"path"`
	Args    []string `yaml:"args,omitempty"`
}

// LoadConfig reads a YAML config file from the given filesystem.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate reports whether the configuration describes a spawnable
// server.
func (c *Config) Validate() error {
	if !c.Enabled {
		return ErrServerDisabled
	}
	if c.Path == "" {
		return ErrNoServerPath
	}
	return nil
}
